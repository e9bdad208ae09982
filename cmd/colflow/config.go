package main

import (
	"errors"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/syssam/colflow/compiler/gen"
	"github.com/syssam/colflow/compiler/load"
	"github.com/syssam/colflow/schema/field"
)

const (
	configFileName = ".colflow"
	configFileType = "yaml"
	envPrefix      = "COLFLOW"

	keyPackage    = "package"
	keyDir        = "dir"
	keyTypes      = "types"
	keyBuildTags  = "build_tags"
	keyTarget     = "target"
	keyImportPath = "import_path"
	keyHeader     = "header"
	keyWorkers    = "workers"
	keyFeatures   = "features"
	keyDisable    = "disable"
	keyLogLevel   = "log_level"
	keyConverters = "converters"
)

// flagKeys maps flag names to configuration keys.
var flagKeys = map[string]string{
	"dir":         keyDir,
	"types":       keyTypes,
	"tags":        keyBuildTags,
	"target":      keyTarget,
	"import-path": keyImportPath,
	"header":      keyHeader,
	"workers":     keyWorkers,
	"feature":     keyFeatures,
	"disable":     keyDisable,
	"log-level":   keyLogLevel,
}

// settings is the merged configuration of one command run.
type settings struct {
	Package    string             `mapstructure:"package"`
	Dir        string             `mapstructure:"dir"`
	Types      []string           `mapstructure:"types"`
	BuildTags  []string           `mapstructure:"build_tags"`
	Target     string             `mapstructure:"target"`
	ImportPath string             `mapstructure:"import_path"`
	Header     string             `mapstructure:"header"`
	Workers    int                `mapstructure:"workers"`
	Features   []string           `mapstructure:"features"`
	Disable    []string           `mapstructure:"disable"`
	LogLevel   string             `mapstructure:"log_level"`
	Converters []converterSetting `mapstructure:"converters"`
}

// converterSetting declares a converter living outside the loaded
// package:
//
//	converters:
//	  - name: MoneyConverter
//	    pkg: example.com/app/money
//	    model: example.com/app/money.Money
//	    db: int64
type converterSetting struct {
	Name  string `mapstructure:"name"`
	Pkg   string `mapstructure:"pkg"`
	Model string `mapstructure:"model"`
	DB    string `mapstructure:"db"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(keyPackage, ".")
	v.SetDefault(keyDir, "")
	v.SetDefault(keyTypes, []string{})
	v.SetDefault(keyBuildTags, []string{})
	v.SetDefault(keyTarget, "")
	v.SetDefault(keyImportPath, "")
	v.SetDefault(keyHeader, "")
	v.SetDefault(keyWorkers, 0)
	v.SetDefault(keyFeatures, []string{})
	v.SetDefault(keyDisable, []string{})
	v.SetDefault(keyLogLevel, "info")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// readConfig reads the config file. A missing default file is not an
// error; a missing explicit file is.
func readConfig(v *viper.Viper, file string) error {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// bindFlags binds the flags of cmd that have a configuration key.
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	var errs []error
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			errs = append(errs, v.BindPFlag(key, f))
		}
	}
	return errors.Join(errs...)
}

// loadSettings decodes the configuration. A positional argument overrides
// the package pattern.
func loadSettings(v *viper.Viper, args []string) (*settings, error) {
	s := &settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if len(args) > 0 {
		s.Package = args[0]
	}
	if s.Package == "" {
		return nil, gen.NewConfigError("Package", s.Package, "missing package pattern")
	}
	return s, nil
}

func (s *settings) loadConfig(logger *slog.Logger) *load.Config {
	cfg := &load.Config{
		Path:   s.Package,
		Dir:    s.Dir,
		Types:  s.Types,
		Logger: logger,
	}
	if len(s.BuildTags) > 0 {
		cfg.BuildFlags = []string{"-tags=" + strings.Join(s.BuildTags, ",")}
	}
	return cfg
}

// genConfig builds the generator configuration. The converters of the
// loaded package are registered along with the configured ones.
func (s *settings) genConfig(schema *load.Schema, requireTarget bool) (*gen.Config, error) {
	var opts []gen.Option
	if s.Target != "" || requireTarget {
		opts = append(opts, gen.WithTarget(s.Target))
	}
	if importPath, err := s.importPath(schema); err != nil {
		return nil, err
	} else if importPath != "" {
		opts = append(opts, gen.WithPackage(importPath))
	}
	if s.Header != "" {
		opts = append(opts, gen.WithHeader(s.Header))
	}
	if s.Workers != 0 {
		opts = append(opts, gen.WithWorkers(s.Workers))
	}
	if len(s.Features) > 0 {
		opts = append(opts, gen.WithFeatureNames(s.Features...))
	}
	if len(s.Disable) > 0 {
		opts = append(opts, gen.WithoutFeatures(s.Disable...))
	}
	convs := schema.Converters
	for _, cs := range s.Converters {
		conv, err := cs.converter()
		if err != nil {
			return nil, err
		}
		convs = append(convs, conv)
	}
	if len(convs) > 0 {
		opts = append(opts, gen.WithConverters(convs...))
	}
	if len(s.BuildTags) > 0 {
		opts = append(opts, gen.WithBuildFlags("-tags="+strings.Join(s.BuildTags, ",")))
	}
	return gen.NewConfig(opts...)
}

// importPath returns the configured import path of the target, or infers
// it from the module of the loaded package when the target lives inside
// that module.
func (s *settings) importPath(schema *load.Schema) (string, error) {
	if s.ImportPath != "" || s.Target == "" || schema.ModuleDir == "" {
		return s.ImportPath, nil
	}
	target, err := filepath.Abs(s.Target)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(schema.ModuleDir, target)
	if err != nil {
		return "", gen.NewConfigError("ImportPath", s.Target, "cannot infer import path: "+err.Error())
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", nil
	}
	return path.Join(schema.ModulePath, rel), nil
}

var dbTypes = map[string]field.Type{
	"bool":    field.TypeBool,
	"int":     field.TypeInt,
	"int32":   field.TypeInt32,
	"int64":   field.TypeInt64,
	"float64": field.TypeFloat64,
	"string":  field.TypeString,
	"[]byte":  field.TypeBytes,
}

func (c converterSetting) converter() (*gen.Converter, error) {
	db, ok := dbTypes[c.DB]
	if !ok {
		return nil, gen.NewConfigError("Converters", c.DB, "unsupported database type of converter "+c.Name)
	}
	i := strings.LastIndexByte(c.Model, '.')
	if c.Name == "" || c.Pkg == "" || i <= 0 || i == len(c.Model)-1 {
		return nil, gen.NewConfigError("Converters", c.Model, "converter needs name, pkg and a qualified model type")
	}
	return &gen.Converter{
		Name:      c.Name,
		PkgPath:   c.Pkg,
		ModelType: field.Named(field.TypeOther, c.Model[:i], c.Model[i+1:]),
		DBType:    field.Basic(db),
	}, nil
}

func parseLevel(s string, verbose bool) (slog.Level, error) {
	if verbose {
		return slog.LevelDebug, nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, gen.NewConfigError("LogLevel", s, "unknown log level")
	}
	return lvl, nil
}
