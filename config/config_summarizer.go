package config

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/adrianliechti/prism/pkg/breaker"
	"github.com/adrianliechti/prism/pkg/limiter"
	"github.com/adrianliechti/prism/pkg/otel"
	"github.com/adrianliechti/prism/pkg/provider"
	"github.com/adrianliechti/prism/pkg/provider/anthropic"
	"github.com/adrianliechti/prism/pkg/provider/bedrock"
	"github.com/adrianliechti/prism/pkg/provider/google"
	"github.com/adrianliechti/prism/pkg/provider/openai"
	"github.com/adrianliechti/prism/pkg/summarizer"
	"github.com/adrianliechti/prism/pkg/summarizer/adapter"
	"github.com/adrianliechti/prism/pkg/summarizer/remote"

	"golang.org/x/time/rate"
)

const defaultGeminiModel = "gemini-2.5-flash"

func (cfg *Config) RegisterSummarizer(p summarizer.Provider) {
	cfg.summarizer = p
}

// Summarizer returns the configured summarizer or nil if answers are disabled.
func (cfg *Config) Summarizer() summarizer.Provider {
	return cfg.summarizer
}

type summarizerConfig struct {
	Type string `yaml:"type"`

	URL   string `yaml:"url"`
	Token string `yaml:"token"`
	Model string `yaml:"model"`

	Region string `yaml:"region"`

	MaxTokens   *int     `yaml:"max_tokens"`
	Temperature *float32 `yaml:"temperature"`

	Timeout time.Duration `yaml:"timeout"`

	Rate    *int           `yaml:"rate"`
	Breaker *breakerConfig `yaml:"breaker"`
	Proxy   *proxyConfig   `yaml:"proxy"`
}

type summarizerContext struct {
	Client  *http.Client
	Limiter *rate.Limiter
}

func (cfg *Config) registerSummarizer(f *configFile) error {
	config := f.Summarizer

	if config == nil {
		token := os.Getenv("GEMINI_API_KEY")

		if token == "" {
			return nil
		}

		config = &summarizerConfig{
			Type:  "google",
			Token: token,
		}
	}

	if config.Type == "" || strings.EqualFold(config.Type, "none") {
		return nil
	}

	if config.Model == "" && isGoogle(config.Type) {
		config.Model = defaultGeminiModel
	}

	if config.Timeout > 0 {
		cfg.SummaryTimeout = config.Timeout
	}

	context := summarizerContext{
		Limiter: createLimiter(config.Rate),
	}

	if config.Proxy != nil {
		client, err := config.Proxy.proxyClient()

		if err != nil {
			return err
		}

		context.Client = client
	}

	p, err := createSummarizer(*config, context)

	if err != nil {
		return err
	}

	if context.Limiter != nil {
		p = limiter.NewSummarizer(context.Limiter, p)
	}

	if config.Breaker != nil {
		p = breaker.NewSummarizer("summarizer", p, breaker.Config{
			MaxFailures: config.Breaker.Failures,
			Timeout:     config.Breaker.Timeout,
			Interval:    config.Breaker.Interval,
		})
	}

	if _, ok := p.(otel.Summarizer); !ok {
		p = otel.NewSummarizer(config.Type, config.Model, p)
	}

	cfg.RegisterSummarizer(p)

	return nil
}

func createSummarizer(cfg summarizerConfig, context summarizerContext) (summarizer.Provider, error) {
	var completer provider.Completer
	var err error

	switch strings.ToLower(cfg.Type) {
	case "google", "gemini":
		completer, err = googleCompleter(cfg, context)

	case "openai":
		completer, err = openaiCompleter(cfg, context)

	case "anthropic":
		completer, err = anthropicCompleter(cfg, context)

	case "bedrock":
		completer, err = bedrockCompleter(cfg)

	case "remote", "custom":
		return remoteSummarizer(cfg, context)

	default:
		return nil, errors.New("invalid summarizer type: " + cfg.Type)
	}

	if err != nil {
		return nil, err
	}

	var options []adapter.Option

	if cfg.MaxTokens != nil {
		options = append(options, adapter.WithMaxTokens(*cfg.MaxTokens))
	}

	if cfg.Temperature != nil {
		options = append(options, adapter.WithTemperature(*cfg.Temperature))
	}

	return adapter.FromCompleter(completer, options...), nil
}

func googleCompleter(cfg summarizerConfig, context summarizerContext) (provider.Completer, error) {
	var options []google.Option

	if cfg.URL != "" {
		options = append(options, google.WithURL(cfg.URL))
	}

	if cfg.Token != "" {
		options = append(options, google.WithToken(cfg.Token))
	}

	if context.Client != nil {
		options = append(options, google.WithClient(context.Client))
	}

	return google.NewCompleter(cfg.Model, options...)
}

func openaiCompleter(cfg summarizerConfig, context summarizerContext) (provider.Completer, error) {
	var options []openai.Option

	if cfg.Token != "" {
		options = append(options, openai.WithToken(cfg.Token))
	}

	if context.Client != nil {
		options = append(options, openai.WithClient(context.Client))
	}

	return openai.NewCompleter(cfg.URL, cfg.Model, options...)
}

func anthropicCompleter(cfg summarizerConfig, context summarizerContext) (provider.Completer, error) {
	var options []anthropic.Option

	if cfg.Token != "" {
		options = append(options, anthropic.WithToken(cfg.Token))
	}

	if context.Client != nil {
		options = append(options, anthropic.WithClient(context.Client))
	}

	return anthropic.NewCompleter(cfg.URL, cfg.Model, options...)
}

func bedrockCompleter(cfg summarizerConfig) (provider.Completer, error) {
	var options []bedrock.Option

	if cfg.URL != "" {
		options = append(options, bedrock.WithURL(cfg.URL))
	}

	if cfg.Region != "" {
		options = append(options, bedrock.WithRegion(cfg.Region))
	}

	return bedrock.NewCompleter(cfg.Model, options...)
}

func remoteSummarizer(cfg summarizerConfig, context summarizerContext) (summarizer.Provider, error) {
	var options []remote.Option

	if cfg.Token != "" {
		options = append(options, remote.WithToken(cfg.Token))
	}

	if context.Client != nil {
		options = append(options, remote.WithClient(context.Client))
	}

	return remote.New(cfg.URL, options...)
}

func isGoogle(val string) bool {
	return strings.EqualFold(val, "google") || strings.EqualFold(val, "gemini")
}
