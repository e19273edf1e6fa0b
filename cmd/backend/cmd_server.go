package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"

	clientpkg "github.com/stormhead-org/community/internal/client"
	eventpkg "github.com/stormhead-org/community/internal/event"
	graphqlpkg "github.com/stormhead-org/community/internal/graphql"
	jwtpkg "github.com/stormhead-org/community/internal/jwt"
	metricspkg "github.com/stormhead-org/community/internal/metrics"
	ormpkg "github.com/stormhead-org/community/internal/orm"
	"github.com/stormhead-org/community/internal/services"
	communitypkg "github.com/stormhead-org/community/internal/services/community"
	memberpkg "github.com/stormhead-org/community/internal/services/member"
	profilepkg "github.com/stormhead-org/community/internal/services/profile"
)

var serverCommand = &cobra.Command{
	Use:   "server",
	Short: "server",
	Long:  "",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serverCommandImpl()
	},
}

func serverCommandImpl() error {
	loadEnv()

	// Application
	application := fx.New(
		fx.NopLogger,
		fx.Provide(
			newLogger,

			// Config/Secrets from .env
			func(logger *zap.Logger) (*jwtpkg.JWT, error) {
				return jwtpkg.NewJWT(getenv("JWT_SECRET", "123456")), nil
			},

			// Clients
			func(lc fx.Lifecycle, logger *zap.Logger) (*ormpkg.PostgresClient, error) {
				client, err := newPostgresClient(logger)
				if err != nil {
					return nil, err
				}
				lc.Append(fx.Hook{
					OnStop: func(ctx context.Context) error {
						return client.Close()
					},
				})
				return client, nil
			},
			func(lc fx.Lifecycle, logger *zap.Logger) (*eventpkg.KafkaClient, error) {
				client, err := newKafkaClient(logger)
				if err != nil {
					return nil, err
				}
				lc.Append(fx.Hook{
					OnStop: func(ctx context.Context) error {
						return client.Close()
					},
				})
				return client, nil
			},
			func(client *eventpkg.KafkaClient) eventpkg.Broker {
				return client
			},
			func(logger *zap.Logger) (*clientpkg.S3Client, error) {
				return clientpkg.NewS3Client(
					context.Background(),
					getenv("S3_BUCKET", "community"),
					os.Getenv("S3_ENDPOINT"),
					getenv("S3_PUBLIC_URL", "http://127.0.0.1:9000/community"),
				)
			},
			func(client *clientpkg.S3Client) graphqlpkg.ImageStore {
				return client
			},
			metricspkg.NewMetrics,

			// Services
			profilepkg.NewProfileService,
			memberpkg.NewMemberPolicy,
			communitypkg.NewCommunityService,

			// GraphQL
			graphqlpkg.NewResolver,
			func(
				lc fx.Lifecycle,
				log *zap.Logger,
				jwt *jwtpkg.JWT,
				resolver *graphqlpkg.Resolver,
				profiles services.ProfileService,
				metrics *metricspkg.Metrics,
			) (*graphqlpkg.GraphQL, error) {
				server, err := graphqlpkg.NewGraphQL(
					log,
					jwt,
					graphqlpkg.Config{
						Host:            getenv("HTTP_HOST", "0.0.0.0"),
						Port:            getenv("HTTP_PORT", "8080"),
						RateLimitRPS:    getenvFloat("RATE_LIMIT_RPS", 5),
						RateLimitBurst:  getenvInt("RATE_LIMIT_BURST", 600),
						MaxRequestBytes: getenvInt64("REQUEST_MAX_BYTES", graphqlpkg.DefaultMaxRequestBytes),
					},
					resolver,
					profiles,
					metrics,
				)
				if err != nil {
					return nil, err
				}
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return server.Start()
					},
					OnStop: func(ctx context.Context) error {
						return server.Stop(ctx)
					},
				})
				return server, nil
			},
		),
		fx.Invoke(func(*graphqlpkg.GraphQL) {}),
	)
	application.Run()

	err := application.Err()
	if err != nil {
		os.Exit(1)
	}

	return nil
}

func init() {
	rootCommand.AddCommand(serverCommand)
}
