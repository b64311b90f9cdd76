package config

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/adrianliechti/prism/pkg/aggregator"
	"github.com/adrianliechti/prism/pkg/breaker"
	"github.com/adrianliechti/prism/pkg/engine"
	"github.com/adrianliechti/prism/pkg/limiter"
	"github.com/adrianliechti/prism/pkg/otel"
	"github.com/adrianliechti/prism/pkg/searcher"
	"github.com/adrianliechti/prism/pkg/searcher/brave"
	"github.com/adrianliechti/prism/pkg/searcher/duckduckgo"
	"github.com/adrianliechti/prism/pkg/searcher/mock"
	"github.com/adrianliechti/prism/pkg/searcher/serpapi"
	"github.com/adrianliechti/prism/pkg/searcher/tavily"

	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

func (cfg *Config) RegisterSearcher(e engine.Engine, p searcher.Provider) {
	if cfg.searcher == nil {
		cfg.searcher = make(map[engine.Engine]searcher.Provider)
	}

	if _, ok := cfg.searcher[e]; !ok {
		cfg.engines = append(cfg.engines, e)
	}

	cfg.searcher[e] = p
}

func (cfg *Config) Searcher(e engine.Engine) (searcher.Provider, error) {
	if cfg.searcher != nil {
		if p, ok := cfg.searcher[e]; ok {
			return p, nil
		}
	}

	return nil, errors.New("searcher not found: " + e.String())
}

// Engines returns the configured engines in configuration order.
func (cfg *Config) Engines() []engine.Engine {
	return append([]engine.Engine(nil), cfg.engines...)
}

func (cfg *Config) Aggregator() *aggregator.Aggregator {
	options := []aggregator.Option{
		aggregator.WithTimeout(cfg.Timeout),
		aggregator.WithConcurrency(cfg.Concurrency),
	}

	if cfg.Limit != nil {
		options = append(options, aggregator.WithLimit(*cfg.Limit))
	}

	for _, e := range cfg.engines {
		options = append(options, aggregator.WithProvider(e, cfg.searcher[e]))
	}

	return aggregator.New(options...)
}

type searcherConfig struct {
	Type string `yaml:"type"`

	URL   string `yaml:"url"`
	Token string `yaml:"token"`

	Delay *time.Duration `yaml:"delay"`

	Location string `yaml:"location"`
	Language string `yaml:"language"`

	Rate    *int           `yaml:"rate"`
	Breaker *breakerConfig `yaml:"breaker"`
	Proxy   *proxyConfig   `yaml:"proxy"`
}

type searcherContext struct {
	Client  *http.Client
	Limiter *rate.Limiter
}

func (cfg *Config) registerSearchers(f *configFile) error {
	if f.Engines.Kind == 0 {
		for _, e := range engine.All() {
			p, err := createSearcher(e, searcherConfig{Type: "mock"}, searcherContext{})

			if err != nil {
				return err
			}

			cfg.RegisterSearcher(e, otel.NewSearcher("mock", e.String(), p))
		}

		return nil
	}

	if f.Engines.Kind != yaml.MappingNode {
		return errors.New("engines must be a mapping")
	}

	for i := 0; i+1 < len(f.Engines.Content); i += 2 {
		key := f.Engines.Content[i]

		e, err := engine.Parse(key.Value)

		if err != nil {
			return err
		}

		var config searcherConfig

		if err := decodeNode(f.Engines.Content[i+1], &config); err != nil {
			return err
		}

		context := searcherContext{
			Limiter: createLimiter(config.Rate),
		}

		if config.Proxy != nil {
			client, err := config.Proxy.proxyClient()

			if err != nil {
				return err
			}

			context.Client = client
		}

		p, err := createSearcher(e, config, context)

		if err != nil {
			return err
		}

		if context.Limiter != nil {
			p = limiter.NewSearcher(context.Limiter, p)
		}

		if config.Breaker != nil {
			p = breaker.NewSearcher(e.String(), p, breaker.Config{
				MaxFailures: config.Breaker.Failures,
				Timeout:     config.Breaker.Timeout,
				Interval:    config.Breaker.Interval,
			})
		}

		if _, ok := p.(otel.Searcher); !ok {
			p = otel.NewSearcher(config.Type, e.String(), p)
		}

		cfg.RegisterSearcher(e, p)
	}

	return nil
}

func createSearcher(e engine.Engine, cfg searcherConfig, context searcherContext) (searcher.Provider, error) {
	switch strings.ToLower(cfg.Type) {
	case "", "mock":
		return mockSearch(e, cfg)

	case "duckduckgo":
		return duckduckgoSearch(cfg, context)

	case "tavily":
		return tavilySearch(e, cfg, context)

	case "brave":
		return braveSearch(cfg, context)

	case "serpapi":
		return serpapiSearch(e, cfg)

	default:
		return nil, errors.New("invalid search type: " + cfg.Type)
	}
}

func mockSearch(e engine.Engine, cfg searcherConfig) (searcher.Provider, error) {
	var options []mock.Option

	if cfg.Delay != nil {
		options = append(options, mock.WithDelay(*cfg.Delay))
	}

	return mock.New(e, options...)
}

func duckduckgoSearch(cfg searcherConfig, context searcherContext) (searcher.Provider, error) {
	var options []duckduckgo.Option

	if cfg.URL != "" {
		options = append(options, duckduckgo.WithURL(cfg.URL))
	}

	if context.Client != nil {
		options = append(options, duckduckgo.WithClient(context.Client))
	}

	return duckduckgo.New(options...)
}

func tavilySearch(e engine.Engine, cfg searcherConfig, context searcherContext) (searcher.Provider, error) {
	var options []tavily.Option

	if cfg.URL != "" {
		options = append(options, tavily.WithURL(cfg.URL))
	}

	if context.Client != nil {
		options = append(options, tavily.WithClient(context.Client))
	}

	return tavily.New(e, cfg.Token, options...)
}

func braveSearch(cfg searcherConfig, context searcherContext) (searcher.Provider, error) {
	var options []brave.Option

	if cfg.URL != "" {
		options = append(options, brave.WithURL(cfg.URL))
	}

	if context.Client != nil {
		options = append(options, brave.WithClient(context.Client))
	}

	return brave.New(cfg.Token, options...)
}

func serpapiSearch(e engine.Engine, cfg searcherConfig) (searcher.Provider, error) {
	var options []serpapi.Option

	if cfg.Location != "" {
		options = append(options, serpapi.WithLocation(cfg.Location))
	}

	if cfg.Language != "" {
		options = append(options, serpapi.WithLanguage(cfg.Language))
	}

	return serpapi.New(e, cfg.Token, options...)
}
