// Package app contains the application setup for the product service.
package app

import (
	"log/slog"
	"net/http"

	"github.com/abgdnv/product-api/internal/config"
	"github.com/abgdnv/product-api/internal/service"
	"github.com/abgdnv/product-api/internal/store"
	"github.com/abgdnv/product-api/internal/transport/rest"
	"github.com/abgdnv/product-api/pkg/server"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/metric"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const instrumentationName = "github.com/abgdnv/product-api"

type Dependencies struct {
	ProductService service.ProductService
	Store          store.ProductStore
	Logger         *slog.Logger
	// MeterProvider instruments HTTP requests and service operations. Optional.
	MeterProvider metric.MeterProvider
	// MetricsHandler serves /metrics. Optional.
	MetricsHandler http.Handler
}

// SetupDependencies wires the product service on top of the given store.
func SetupDependencies(productStore store.ProductStore, logger *slog.Logger, mp metric.MeterProvider, metricsHandler http.Handler) *Dependencies {
	var meter metric.Meter
	if mp != nil {
		meter = mp.Meter(instrumentationName)
	}
	return &Dependencies{
		ProductService: service.NewService(productStore, meter),
		Store:          productStore,
		Logger:         logger,
		MeterProvider:  mp,
		MetricsHandler: metricsHandler,
	}
}

// SetupHttpHandler initializes the routes and middleware of the product service.
// Used by E2E tests to set up the HTTP server with the necessary routes and middleware.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)

	var opts []otelhttp.Option
	if deps.MeterProvider != nil {
		opts = append(opts, otelhttp.WithMeterProvider(deps.MeterProvider))
	}
	return otelhttp.NewHandler(mux, "http-server", opts...)
}

// wireRoutes sets up the HTTP routes for the product service.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	productHandler := rest.NewHandler(deps.ProductService, deps.Logger)
	productHandler.RegisterRoutes(mux)

	mux.Method(http.MethodGet, "/healthz", rest.NewHealthHandler(deps.Store, deps.Logger))
	if deps.MetricsHandler != nil {
		mux.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}
}

// SetupHttpServer creates and configures an HTTP server for the product service.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	handler := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, handler)
}

// SetupGrpcServer initializes the gRPC server exposing the standard health service.
func SetupGrpcServer(healthServer *health.Server, reflectionEnabled bool) *grpc.Server {
	healthRegisterFunc := func(s *grpc.Server) {
		healthpb.RegisterHealthServer(s, healthServer)
	}
	// create a new gRPC server with reflection if enabled
	return server.NewGRPCServer(reflectionEnabled, healthRegisterFunc)
}
