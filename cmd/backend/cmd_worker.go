package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"

	eventpkg "github.com/stormhead-org/community/internal/event"
	metricspkg "github.com/stormhead-org/community/internal/metrics"
	ormpkg "github.com/stormhead-org/community/internal/orm"
	workerpkg "github.com/stormhead-org/community/internal/worker"
)

var workerCommand = &cobra.Command{
	Use:   "worker",
	Short: "worker",
	Long:  "",
	RunE: func(cmd *cobra.Command, args []string) error {
		return workerCommandImpl()
	},
}

func workerCommandImpl() error {
	loadEnv()

	// Application
	application := fx.New(
		fx.NopLogger,
		fx.Provide(
			newLogger,

			// Kafka client
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

			newPostgresClient,
			metricspkg.NewMetrics,

			// Application
			func(
				lifecycle fx.Lifecycle,
				logger *zap.Logger,
				kafkaClient *eventpkg.KafkaClient,
				databaseClient *ormpkg.PostgresClient,
				metrics *metricspkg.Metrics,
			) (*workerpkg.Worker, error) {
				worker := workerpkg.NewWorker(logger, kafkaClient, databaseClient, metrics)

				lifecycle.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return worker.Start()
					},
					OnStop: func(ctx context.Context) error {
						return worker.Stop()
					},
				})

				return worker, nil
			},
		),
		fx.Invoke(
			func(*workerpkg.Worker) {},
		),
	)
	application.Run()

	err := application.Err()
	if err != nil {
		os.Exit(1)
	}

	return nil
}

func init() {
	rootCommand.AddCommand(workerCommand)
}
