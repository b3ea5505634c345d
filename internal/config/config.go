// Package config loads the docmigrate.yaml configuration: source and output
// locations, conversion tables and the navigation tab declarations.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Source  SourceConfig  `yaml:"source"`
	Output  OutputConfig  `yaml:"output"`
	Convert ConvertConfig `yaml:"convert,omitempty"`
	Nav     NavConfig     `yaml:"nav,omitempty"`
	Watch   WatchConfig   `yaml:"watch,omitempty"`
}

// SourceConfig locates the source documentation tree.
type SourceConfig struct {
	// Dir is the root of the source corpus checkout.
	Dir string `yaml:"dir"`
	// Repo optionally names a Git repository to fetch Dir from.
	Repo   string `yaml:"repo,omitempty"`
	Branch string `yaml:"branch,omitempty"`
	// NavFile is the source site configuration, relative to Dir.
	NavFile string `yaml:"nav_file,omitempty"`
}

// OutputConfig locates the converted tree.
type OutputConfig struct {
	Dir string `yaml:"dir"`
	// Clean removes the output directory before a batch run.
	Clean bool `yaml:"clean"`
	// Extension is the file extension of converted documents.
	Extension string `yaml:"extension,omitempty"`
	// SidebarFile is where the nav command writes the sidebar JSON,
	// relative to Dir.
	SidebarFile string `yaml:"sidebar_file,omitempty"`
}

// ConvertConfig overrides the built-in conversion tables.
type ConvertConfig struct {
	// Variables are substituted into `{{ name }}` macro sites.
	Variables map[string]string `yaml:"variables,omitempty"`
	// Admonitions maps additional source admonition types onto target
	// aside types, on top of the built-in table.
	Admonitions map[string]string `yaml:"admonitions,omitempty"`
	// DefaultLanguages is the value of the `languages` frontmatter field
	// for pages carrying the language sentinel.
	DefaultLanguages []string `yaml:"default_languages,omitempty"`
}

// NavConfig declares the top-level navigation tabs.
type NavConfig struct {
	// Tabs lists the top-level nav group labels that become tabs, in
	// display order.
	Tabs []string `yaml:"tabs,omitempty"`
}

// WatchConfig tunes the watch command. Durations are duration strings
// ("500ms", "15m") validated at load time.
type WatchConfig struct {
	// Debounce is how long the watcher waits after the last filesystem
	// event before reconverting.
	Debounce string `yaml:"debounce,omitempty"`
	// Resync is the interval of the periodic full reconversion.
	Resync string `yaml:"resync,omitempty"`
	// MetricsAddr is the listen address of the metrics endpoint. Empty
	// disables the endpoint.
	MetricsAddr string `yaml:"metrics_addr,omitempty"`
}

// DebounceDuration returns the parsed debounce interval.
func (w WatchConfig) DebounceDuration() time.Duration {
	d, _ := time.ParseDuration(w.Debounce)
	return d
}

// ResyncDuration returns the parsed resync interval.
func (w WatchConfig) ResyncDuration() time.Duration {
	d, _ := time.ParseDuration(w.Resync)
	return d
}

// Load loads configuration from the specified file.
func Load(configPath string) (*Config, error) {
	// Pick up a .env if one exists; existing process env wins.
	_ = godotenv.Load()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	return Parse(data)
}

// Parse parses configuration data, expands environment variable references
// and applies defaults.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Source.Dir == "" {
		c.Source.Dir = "./docs"
	}
	if c.Source.Branch == "" {
		c.Source.Branch = "main"
	}
	if c.Source.NavFile == "" {
		c.Source.NavFile = "mkdocs.yml"
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "./site/src/content/docs"
	}
	if c.Output.Extension == "" {
		c.Output.Extension = ".mdx"
	}
	if c.Output.SidebarFile == "" {
		c.Output.SidebarFile = "sidebar.json"
	}
	if c.Watch.Debounce == "" {
		c.Watch.Debounce = "500ms"
	}
	if c.Watch.Resync == "" {
		c.Watch.Resync = "15m"
	}
}

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := Config{
		Source: SourceConfig{
			Dir:     "./docs",
			Repo:    "https://github.com/example/docs.git",
			Branch:  "main",
			NavFile: "mkdocs.yml",
		},
		Output: OutputConfig{
			Dir:         "./site/src/content/docs",
			Clean:       true,
			Extension:   ".mdx",
			SidebarFile: "sidebar.json",
		},
		Convert: ConvertConfig{
			Variables: map[string]string{
				"product_name": "Example Product",
			},
		},
		Nav: NavConfig{
			Tabs: []string{"User Guide", "Reference"},
		},
		Watch: WatchConfig{
			Debounce:    "500ms",
			Resync:      "15m",
			MetricsAddr: ":9090",
		},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
