package graphql

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/stormhead-org/community/internal/jwt"
	"github.com/stormhead-org/community/internal/metrics"
	"github.com/stormhead-org/community/internal/middleware"
	"github.com/stormhead-org/community/internal/services"
)

type Config struct {
	Host            string
	Port            string
	RateLimitRPS    float64
	RateLimitBurst  int
	MaxRequestBytes int64
}

type GraphQL struct {
	logger *zap.Logger
	host   string
	port   string
	server *http.Server
}

func NewGraphQL(
	logger *zap.Logger,
	jwt *jwt.JWT,
	config Config,
	resolver *Resolver,
	profiles services.ProfileService,
	metrics *metrics.Metrics,
) (*GraphQL, error) {
	schema, err := NewSchema(resolver)
	if err != nil {
		return nil, fmt.Errorf("could not build graphql schema: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/graphql", NewHandler(logger, schema, config.MaxRequestBytes))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	if metrics != nil {
		mux.Handle("/metrics", metrics.Handler())
	}

	rateLimitMiddleware := middleware.NewRateLimitMiddleware(config.RateLimitRPS, config.RateLimitBurst)
	authMiddleware := middleware.NewAuthorizationMiddleware(logger, jwt, profiles)

	return &GraphQL{
		logger: logger,
		host:   config.Host,
		port:   config.Port,
		server: &http.Server{
			Handler:           rateLimitMiddleware(authMiddleware(mux)),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

func (this *GraphQL) Handler() http.Handler {
	return this.server.Handler
}

func (this *GraphQL) Start() error {
	listener, err := net.Listen("tcp", net.JoinHostPort(this.host, this.port))
	if err != nil {
		return err
	}

	go func() {
		this.logger.Info("GraphQL server started", zap.String("addr", listener.Addr().String()))
		err := this.server.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			this.logger.Error("GraphQL server stopped", zap.Error(err))
		}
	}()

	return nil
}

func (this *GraphQL) Stop(ctx context.Context) error {
	err := this.server.Shutdown(ctx)
	this.logger.Info("GraphQL server stopped gracefully")
	return err
}
