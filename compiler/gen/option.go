package gen

import (
	"errors"
	"path/filepath"
)

// DefaultHeader is the header comment of every generated file.
const DefaultHeader = "Code generated by colflow. DO NOT EDIT."

// Config holds the global codegen configuration.
type Config struct {
	// Target is the output directory. Adapter packages are written to
	// {Target}/{model}.
	Target string
	// Package is the import path of Target, for example
	// "github.com/org/project/db".
	Package string
	// Header is the comment written at the top of every generated file.
	// Defaults to DefaultHeader.
	Header string
	// Workers bounds the number of files generated in parallel. Zero
	// means runtime.GOMAXPROCS(0).
	Workers int
	// Features holds the explicitly enabled features.
	Features []Feature
	// DisabledFeatures names default-enabled features turned off.
	DisabledFeatures []string
	// BuildFlags are passed to the package loader.
	BuildFlags []string
	// Converters are registered in the converter registry in addition
	// to the built-in ones.
	Converters []*Converter
}

// Option configures code generation.
type Option func(*Config) error

// WithHeader sets the file header comment.
// The header is added at the top of each generated file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithPackage sets the output package import path.
// For example: "github.com/org/project/db".
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("Package", nil, "package cannot be empty")
		}
		c.Package = pkg
		return nil
	}
}

// WithTarget sets the output directory.
// The directory where generated code will be written.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = filepath.Clean(dir)
		return nil
	}
}

// WithWorkers sets the number of parallel workers.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 0 {
			return NewConfigError("Workers", n, "workers cannot be negative")
		}
		c.Workers = n
		return nil
	}
}

// WithFeatures enables specific features.
// Features control optional code generation capabilities.
func WithFeatures(features ...Feature) Option {
	return func(c *Config) error {
		c.Features = append(c.Features, features...)
		return nil
	}
}

// WithFeatureNames enables features by name.
func WithFeatureNames(names ...string) Option {
	return func(c *Config) error {
		for _, name := range names {
			f, ok := FeatureByName(name)
			if !ok {
				return NewConfigError("Features", name, "unknown feature")
			}
			c.Features = append(c.Features, f)
		}
		return nil
	}
}

// WithoutFeatures disables default-enabled features by name.
func WithoutFeatures(names ...string) Option {
	return func(c *Config) error {
		for _, name := range names {
			if _, ok := FeatureByName(name); !ok {
				return NewConfigError("DisabledFeatures", name, "unknown feature")
			}
		}
		c.DisabledFeatures = append(c.DisabledFeatures, names...)
		return nil
	}
}

// WithBuildFlags sets custom build flags for loading model packages.
func WithBuildFlags(flags ...string) Option {
	return func(c *Config) error {
		c.BuildFlags = append(c.BuildFlags, flags...)
		return nil
	}
}

// WithConverters adds compile-time converters to the registry built by
// Config.Registry.
func WithConverters(cs ...*Converter) Option {
	return func(c *Config) error {
		for _, conv := range cs {
			if conv == nil {
				return NewConfigError("Converters", nil, "converter cannot be nil")
			}
		}
		c.Converters = append(c.Converters, cs...)
		return nil
	}
}

// Registry returns a converter registry holding the built-in converters
// and the configured ones.
func (c *Config) Registry() (*Registry, error) {
	reg := NewRegistry()
	for _, conv := range c.Converters {
		if err := reg.Register(conv); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
