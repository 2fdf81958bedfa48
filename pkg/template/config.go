package template

import (
	"errors"
	"strings"
)

const (
	DefaultLeftDelim  = "{{"
	DefaultRightDelim = "}}"
)

// Config contains configuration for a Renderer.
type Config struct {
	// Left and Right are the delimiters surrounding a placeholder key
	// inside template contents and paths.
	Left  string
	Right string
	// SkipNames lists file or directory base names that are never copied
	// from the template.
	SkipNames []string
}

func NewConfig(options ...ConfigOption) *Config {
	ret := &Config{
		Left:      DefaultLeftDelim,
		Right:     DefaultRightDelim,
		SkipNames: []string{".git"},
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
	if strings.TrimSpace(o.Left) == "" || strings.TrimSpace(o.Right) == "" {
		return errors.New("placeholder delimiters must not be empty")
	}

	return nil
}

type ConfigOption func(c *Config)

// OptionDelims returns an option setting the placeholder delimiters.
func OptionDelims(left, right string) ConfigOption {
	return func(c *Config) {
		c.Left = left
		c.Right = right
	}
}

// OptionSkip returns an option adding base names to skip while copying.
func OptionSkip(names ...string) ConfigOption {
	return func(c *Config) {
		c.SkipNames = append(c.SkipNames, names...)
	}
}
