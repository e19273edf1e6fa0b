package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCommand = &cobra.Command{
	Use:   "migrate",
	Short: "create or update the database schema",
	Long:  "",
	RunE: func(cmd *cobra.Command, args []string) error {
		return migrateCommandImpl()
	},
}

func migrateCommandImpl() error {
	loadEnv()

	logger := newLogger()
	defer logger.Sync()

	client, err := newPostgresClient(logger)
	if err != nil {
		logger.Error("could not connect to postgres", zap.Error(err))
		return err
	}
	defer client.Close()

	if err := client.Migrate(); err != nil {
		logger.Error("migration failed", zap.Error(err))
		return err
	}

	logger.Info("database schema migrated")
	return nil
}

func init() {
	rootCommand.AddCommand(migrateCommand)
}
