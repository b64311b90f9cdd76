package otel

import (
	"context"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/attribute"

	sdkresource "go.opentelemetry.io/otel/sdk/resource"
)

const instrumentationName = "github.com/adrianliechti/prism"

var (
	EnableDebug     = false
	EnableTelemetry = false
)

func init() {
	EnableDebug = os.Getenv("DEBUG") != ""
	EnableTelemetry = os.Getenv("TELEMETRY") != ""
}

type Observable interface {
	otelSetup()
}

// Setup configures logging and, if TELEMETRY is set, exports traces,
// metrics and logs over OTLP.
func Setup(ctx context.Context, serviceName, serviceVersion string) error {
	if EnableDebug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	if !EnableTelemetry {
		return nil
	}

	resource, err := sdkresource.Merge(
		sdkresource.Default(),
		sdkresource.NewSchemaless(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
		),
	)

	if err != nil {
		return err
	}

	if err := setupTracer(ctx, resource); err != nil {
		return err
	}

	if err := setupMeter(ctx, resource); err != nil {
		return err
	}

	if err := setupLogger(ctx, resource); err != nil {
		return err
	}

	return nil
}
