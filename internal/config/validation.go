package config

import (
	"fmt"
	"time"

	"git.home.luguber.info/inful/docmigrate/internal/convert"
	"git.home.luguber.info/inful/docmigrate/internal/util/sets"
)

var validAsides = sets.New(
	convert.AsideNote,
	convert.AsideTip,
	convert.AsideCaution,
	convert.AsideDanger,
)

// Validate checks the configuration for values no command could act on.
func (c *Config) Validate() error {
	if c.Source.Dir == "" {
		return fmt.Errorf("source.dir must be set")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir must be set")
	}
	if ext := c.Output.Extension; ext != "" && ext[0] != '.' {
		return fmt.Errorf("output.extension %q must start with a dot", ext)
	}

	for src, target := range c.Convert.Admonitions {
		if !validAsides.Has(target) {
			return fmt.Errorf("convert.admonitions[%s]: unknown aside type %q", src, target)
		}
	}

	for name, value := range map[string]string{
		"watch.debounce": c.Watch.Debounce,
		"watch.resync":   c.Watch.Resync,
	} {
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%s: invalid duration %q", name, value)
		}
		if d <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}

	seen := sets.New[string]()
	for _, tab := range c.Nav.Tabs {
		if tab == "" {
			return fmt.Errorf("nav.tabs entries cannot be empty")
		}
		if seen.Has(tab) {
			return fmt.Errorf("duplicate nav tab %q", tab)
		}
		seen.Add(tab)
	}

	return nil
}

// ConvertConfig builds the conversion tables: the built-in defaults with this
// configuration's overrides merged in.
func (c *Config) ConvertConfig() convert.Config {
	cc := convert.DefaultConfig()

	for name, value := range c.Convert.Variables {
		cc.Macros.Variables[name] = value
	}
	for src, target := range c.Convert.Admonitions {
		cc.AdmonitionTypes[src] = target
	}
	if len(c.Convert.DefaultLanguages) > 0 {
		cc.Markers.LanguagesDefault = c.Convert.DefaultLanguages
	}

	return cc
}
