package config

import (
	"bytes"
	"errors"
	"os"
	"time"

	"github.com/adrianliechti/prism/pkg/aggregator"
	"github.com/adrianliechti/prism/pkg/engine"
	"github.com/adrianliechti/prism/pkg/searcher"
	"github.com/adrianliechti/prism/pkg/session"
	"github.com/adrianliechti/prism/pkg/summarizer"

	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Address string

	// Timeout bounds every single search provider call.
	Timeout time.Duration

	// Limit caps the results requested from each provider.
	Limit *int

	// Concurrency bounds the provider calls in flight. Zero means unbounded.
	Concurrency int

	SummaryTimeout time.Duration

	engines  []engine.Engine
	searcher map[engine.Engine]searcher.Provider

	summarizer summarizer.Provider
}

// Load parses the file at path, or returns the default configuration if
// the file does not exist.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default()
	}

	return Parse(path)
}

func Parse(path string) (*Config, error) {
	file, err := parseFile(path)

	if err != nil {
		return nil, err
	}

	return fromFile(file)
}

// Default simulates every engine and summarizes with Gemini if
// GEMINI_API_KEY is set.
func Default() (*Config, error) {
	return fromFile(&configFile{})
}

func fromFile(file *configFile) (*Config, error) {
	c := &Config{
		Address: ":8080",

		Timeout: aggregator.DefaultTimeout,
		Limit:   file.Limit,

		Concurrency: file.Concurrency,

		SummaryTimeout: session.DefaultSummaryTimeout,
	}

	if file.Address != "" {
		c.Address = file.Address
	}

	if file.Timeout > 0 {
		c.Timeout = file.Timeout
	}

	if err := c.registerSearchers(file); err != nil {
		return nil, err
	}

	if err := c.registerSummarizer(file); err != nil {
		return nil, err
	}

	return c, nil
}

type configFile struct {
	Address string `yaml:"address"`

	Timeout time.Duration `yaml:"timeout"`
	Limit   *int          `yaml:"limit"`

	Concurrency int `yaml:"concurrency"`

	Engines    yaml.Node         `yaml:"engines"`
	Summarizer *summarizerConfig `yaml:"summarizer"`
}

func parseFile(path string) (*configFile, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	data = []byte(os.ExpandEnv(string(data)))

	var config configFile

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// decodeNode decodes a nested node with the same strictness as the file.
func decodeNode(node *yaml.Node, v any) error {
	data, err := yaml.Marshal(node)

	if err != nil {
		return err
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	return decoder.Decode(v)
}

type breakerConfig struct {
	Failures uint32        `yaml:"failures"`
	Timeout  time.Duration `yaml:"timeout"`
	Interval time.Duration `yaml:"interval"`
}

func createLimiter(limit *int) *rate.Limiter {
	if limit == nil || *limit <= 0 {
		return nil
	}

	return rate.NewLimiter(rate.Limit(*limit), *limit)
}
