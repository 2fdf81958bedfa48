package generate

import (
	"fmt"

	"github.com/veraison/scaffold/pkg/template"
)

// Config contains configuration for the Generator.
type Config struct {
	// Template configures placeholder rendering.
	Template *template.Config
	// Defines are additional placeholder values. They cannot override the
	// built-in project-name and package_name placeholders.
	Defines template.Values
	// KeepOnFailure leaves a partially generated project in place instead
	// of removing it when rendering fails.
	KeepOnFailure bool
}

func NewConfig(options ...ConfigOption) *Config {
	ret := &Config{
		Template:      template.NewConfig(),
		Defines:       template.Values{},
		KeepOnFailure: false,
	}

	ret.WithOptions(options...)

	return ret
}

func (o *Config) WithOptions(options ...ConfigOption) *Config {
	for _, opt := range options {
		opt(o)
	}

	return o
}

func (o *Config) Validate() error {
	if o.Template == nil {
		return fmt.Errorf("template config not set")
	}

	if err := o.Template.Validate(); err != nil {
		return fmt.Errorf("template config: %w", err)
	}

	for key := range o.Defines {
		if key == template.ProjectNameKey || key == template.PackageNameKey {
			return fmt.Errorf("cannot define built-in placeholder %q", key)
		}
	}

	return nil
}

type ConfigOption func(c *Config)

func OptionKeepOnFailure(c *Config) {
	c.KeepOnFailure = true
}

// OptionDefine returns an option adding a placeholder value.
func OptionDefine(key, value string) ConfigOption {
	return func(c *Config) {
		if c.Defines == nil {
			c.Defines = template.Values{}
		}

		c.Defines[key] = value
	}
}

// OptionTemplate returns an option applying template options.
func OptionTemplate(options ...template.ConfigOption) ConfigOption {
	return func(c *Config) {
		if c.Template == nil {
			c.Template = template.NewConfig()
		}

		c.Template.WithOptions(options...)
	}
}
