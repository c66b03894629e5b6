package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Feeds     []Feed        `yaml:"feeds"`
	Interests []Interest    `yaml:"interests"`
	Logging   LoggingConfig `yaml:"logging"`
	Output    OutputConfig  `yaml:"output"`
	Fetch     FetchConfig   `yaml:"fetching"`
}

type Feed struct {
	Name     string  `yaml:"name"`
	URL      string  `yaml:"url"`
	Category string  `yaml:"category"`
	Priority float64 `yaml:"priority,omitempty"`
}

type Interest struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
	Weight   float64  `yaml:"weight,omitempty"`
}

type LoggingConfig struct {
	Level     string `yaml:"level"`
	Directory string `yaml:"directory"`
	Filename  string `yaml:"filename"`
	Console   bool   `yaml:"console"`
}

type OutputConfig struct {
	Directory      string  `yaml:"directory"`
	FilenamePrefix string  `yaml:"filename_prefix"`
	MaxArticles    int     `yaml:"max_articles"`
	MinScore       float64 `yaml:"min_score"`
}

type FetchConfig struct {
	TimeoutSeconds int    `yaml:"timeout"`
	Concurrency    int    `yaml:"max_workers"`
	UserAgent      string `yaml:"user_agent"`
}

// Error reports an invalid or missing configuration value. Key holds the
// path of the offending field, e.g. "feeds[2].url".
type Error struct {
	Key     string
	Message string
}

func (e *Error) Error() string {
	if e.Key == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Key)
}

func Default() *Config {
	return &Config{
		Feeds:     []Feed{},
		Interests: []Interest{},
		Logging: LoggingConfig{
			Level:     "INFO",
			Directory: "logs",
			Filename:  "aggregator.log",
			Console:   true,
		},
		Output: OutputConfig{
			Directory:      "output",
			FilenamePrefix: "techpulse_report",
			MaxArticles:    50,
			MinScore:       0.5,
		},
		Fetch: FetchConfig{
			TimeoutSeconds: 10,
			Concurrency:    5,
			UserAgent:      "TechPulse RSS Aggregator/1.0",
		},
	}
}

// Load reads the YAML file at path, merges it over Default values and
// validates the result. Optional sections may be omitted entirely.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &Error{Message: fmt.Sprintf("config file not found: %s", path)}
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &Error{Message: fmt.Sprintf("invalid YAML in %s: %v", path, err)}
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(cfg *Config, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// applyDefaults fills per-entry values that the zero value cannot express
// as "unset": feed priority and interest weight both default to 1.0.
func (c *Config) applyDefaults() {
	for i := range c.Feeds {
		if c.Feeds[i].Priority == 0 {
			c.Feeds[i].Priority = 1.0
		}
	}
	for i := range c.Interests {
		if c.Interests[i].Weight == 0 {
			c.Interests[i].Weight = 1.0
		}
	}
}

func (c *Config) Validate() error {
	if err := c.validateFeeds(); err != nil {
		return err
	}
	if err := c.validateInterests(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return c.validateOutput()
}

func (c *Config) validateFeeds() error {
	if len(c.Feeds) == 0 {
		return &Error{
			Key:     "feeds",
			Message: "no feeds configured, at least one RSS feed is required",
		}
	}

	for i, f := range c.Feeds {
		if f.Name == "" {
			return &Error{
				Key:     fmt.Sprintf("feeds[%d].name", i),
				Message: fmt.Sprintf("feed #%d: name is missing or empty", i+1),
			}
		}
		if f.URL == "" {
			return &Error{
				Key:     fmt.Sprintf("feeds[%d].url", i),
				Message: fmt.Sprintf("feed %q: url is missing or empty", f.Name),
			}
		}
		if f.Category == "" {
			return &Error{
				Key:     fmt.Sprintf("feeds[%d].category", i),
				Message: fmt.Sprintf("feed %q: category is missing or empty", f.Name),
			}
		}
		if !strings.HasPrefix(f.URL, "http://") && !strings.HasPrefix(f.URL, "https://") {
			return &Error{
				Key:     fmt.Sprintf("feeds[%d].url", i),
				Message: fmt.Sprintf("feed %q: url %q must start with http:// or https://", f.Name, f.URL),
			}
		}
	}
	return nil
}

func (c *Config) validateInterests() error {
	if len(c.Interests) == 0 {
		return &Error{
			Key:     "interests",
			Message: "no interests configured, at least one interest with keywords is required",
		}
	}

	for i, in := range c.Interests {
		if in.Name == "" {
			return &Error{
				Key:     fmt.Sprintf("interests[%d].name", i),
				Message: fmt.Sprintf("interest #%d: name is missing or empty", i+1),
			}
		}
		if len(in.Keywords) == 0 {
			return &Error{
				Key:     fmt.Sprintf("interests[%d].keywords", i),
				Message: fmt.Sprintf("interest %q: at least one keyword is required", in.Name),
			}
		}
		if in.Weight <= 0 {
			return &Error{
				Key:     fmt.Sprintf("interests[%d].weight", i),
				Message: fmt.Sprintf("interest %q: weight %v is invalid (must be > 0)", in.Name, in.Weight),
			}
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToUpper(c.Logging.Level) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
		return nil
	}
	return &Error{
		Key:     "logging.level",
		Message: fmt.Sprintf("invalid log level %q (allowed: DEBUG, INFO, WARN, ERROR)", c.Logging.Level),
	}
}

func (c *Config) validateOutput() error {
	if c.Output.MaxArticles < 0 {
		return &Error{
			Key:     "output.max_articles",
			Message: fmt.Sprintf("max_articles=%d is invalid (must be >= 0)", c.Output.MaxArticles),
		}
	}
	if c.Output.MinScore < 0 {
		return &Error{
			Key:     "output.min_score",
			Message: fmt.Sprintf("min_score=%v is invalid (must be >= 0)", c.Output.MinScore),
		}
	}
	return nil
}

// ArchivePath is the sqlite article history location, kept next to the
// generated reports.
func (c *Config) ArchivePath() string {
	return filepath.Join(c.Output.Directory, "techpulse.db")
}
