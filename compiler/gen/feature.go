package gen

import (
	"slices"
	"strconv"
)

var (
	// FeatureInsert emits an Insert function in every adapter file. It
	// executes the insert statement and writes the assigned key back.
	FeatureInsert = Feature{
		Name:        "sql/insert",
		Stage:       Stable,
		Default:     true,
		Description: "Insert generates a function that inserts a model and writes back its auto-increment key",
	}

	// FeatureSchema generates the schema package with the CREATE
	// statements of all tables.
	FeatureSchema = Feature{
		Name:        "sql/schema",
		Stage:       Beta,
		Default:     false,
		Description: "Schema generates a package that creates every table and index",
	}

	// FeatureContainer emits the container functions (bind, load and
	// transfer through an adapter.Container).
	FeatureContainer = Feature{
		Name:        "container",
		Stage:       Stable,
		Default:     true,
		Description: "Container generates the functions that read and write models through key-value containers",
	}

	// AllFeatures holds a list of all feature-flags.
	AllFeatures = []Feature{
		FeatureInsert,
		FeatureSchema,
		FeatureContainer,
	}
)

// FeatureStage describes the stage of the codegen feature.
type FeatureStage int

const (
	_ FeatureStage = iota

	// Experimental features are in development, and actively being tested
	// in the integration environment.
	Experimental

	// Alpha features are features whose initial development was finished,
	// tested on the infra of the maintainers, but are still missing docs.
	Alpha

	// Beta features are Alpha features that were added to the
	// documentation and are not breaking backward compatibility.
	Beta

	// Stable features are Beta features that were running for a while.
	Stable
)

// String implements the fmt.Stringer interface.
func (s FeatureStage) String() string {
	switch s {
	case Experimental:
		return "Experimental"
	case Alpha:
		return "Alpha"
	case Beta:
		return "Beta"
	case Stable:
		return "Stable"
	default:
		return "FeatureStage(" + strconv.Itoa(int(s)) + ")"
	}
}

// A Feature of the generator.
type Feature struct {
	// Name of the feature.
	Name string
	// Stage of the feature.
	Stage FeatureStage
	// Default values indicates if this feature is enabled by default.
	Default bool
	// A Description of this feature.
	Description string
}

// FeatureByName returns the feature with the given name.
func FeatureByName(name string) (Feature, bool) {
	i := slices.IndexFunc(AllFeatures, func(f Feature) bool { return f.Name == name })
	if i < 0 {
		return Feature{}, false
	}
	return AllFeatures[i], true
}

// FeatureEnabled reports if the given feature name is enabled. Features
// not listed in the config follow their default.
func (c *Config) FeatureEnabled(name string) (bool, error) {
	for _, f := range c.Features {
		if f.Name == name {
			return true, nil
		}
	}
	if slices.Contains(c.DisabledFeatures, name) {
		return false, nil
	}
	f, ok := FeatureByName(name)
	if !ok {
		return false, NewConfigError("Feature", name, "unknown feature")
	}
	return f.Default, nil
}
