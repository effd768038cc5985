package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-lambda-go/otellambda"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-lambda-go/otellambda/xrayconfig"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/tim0git/timdevs-contact-me-store-message/handler"
	"github.com/tim0git/timdevs-contact-me-store-message/internal/observability"
	"github.com/tim0git/timdevs-contact-me-store-message/internal/repository"
	"github.com/tim0git/timdevs-contact-me-store-message/internal/usecase"
)

const serviceName = "timdevs-contact-me-store-message"

func main() {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// ---- Configuration (read only here) ----
	tableName := mustEnv("TABLE_NAME", logger)

	// ---- AWS SDK config ----
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		logger.Error("failed to load AWS config", "err", err)
		os.Exit(1)
	}

	// ---- Tracing (exports to the X-Ray collector) ----
	tp, err := xrayconfig.NewTracerProvider(ctx)
	if err != nil {
		logger.Error("failed to create tracer provider", "err", err)
		os.Exit(1)
	}
	defer func() { _ = tp.Shutdown(ctx) }()
	otel.SetTracerProvider(tp)

	// ---- Metrics (exports to the same collector endpoint) ----
	metricExporter, err := otlpmetricgrpc.New(ctx)
	if err != nil {
		logger.Error("failed to create metric exporter", "err", err)
		os.Exit(1)
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)),
	)
	defer func() { _ = mp.Shutdown(ctx) }()
	otel.SetMeterProvider(mp)

	// ---- Clients ----
	storeClient, err := repository.New(awsdynamodb.NewFromConfig(cfg), tableName, logger)
	if err != nil {
		logger.Error("failed to create store client", "err", err)
		os.Exit(1)
	}

	storeService, err := usecase.NewStoreService(storeClient, logger, tp.Tracer(serviceName))
	if err != nil {
		logger.Error("failed to create store service", "err", err)
		os.Exit(1)
	}

	metrics, err := observability.NewMetrics(mp.Meter(serviceName))
	if err != nil {
		logger.Error("failed to create metrics", "err", err)
		os.Exit(1)
	}

	// ---- Handler ----
	h, err := handler.NewHandler(storeService, logger, metrics)
	if err != nil {
		logger.Error("failed to create handler", "err", err)
		os.Exit(1)
	}

	lambda.Start(otellambda.InstrumentHandler(h.Handle, xrayconfig.WithRecommendedOptions(tp)...))
}

func mustEnv(key string, logger *slog.Logger) string {
	v := os.Getenv(key)
	if v == "" {
		logger.Error("required environment variable is not set", "key", key)
		os.Exit(1)
	}
	return v
}
