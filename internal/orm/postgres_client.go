package orm

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type PostgresClient struct {
	database *gorm.DB
}

// PoolConfig sizes the connection pool shared by every request.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
}

func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxOpenConns:    20,
		MaxIdleConns:    5,
		ConnMaxIdleTime: 5 * time.Minute,
	}
}

func NewPostgresClient(host string, port string, user string, password string, name string, pool PoolConfig) (*PostgresClient, error) {
	return NewClient(
		postgres.Open(
			fmt.Sprintf(
				"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
				host,
				port,
				user,
				password,
				name,
			),
		),
		pool,
	)
}

// NewClient opens a client over any gorm dialector. Tests use it with sqlite.
func NewClient(dialector gorm.Dialector, pool PoolConfig) (*PostgresClient, error) {
	database, err := gorm.Open(
		dialector,
		&gorm.Config{
			TranslateError: true,
		},
	)
	if err != nil {
		return nil, err
	}

	rawDatabase, err := database.DB()
	if err != nil {
		return nil, err
	}

	rawDatabase.SetMaxOpenConns(pool.MaxOpenConns)
	rawDatabase.SetMaxIdleConns(pool.MaxIdleConns)
	rawDatabase.SetConnMaxIdleTime(pool.ConnMaxIdleTime)

	return &PostgresClient{
		database: database,
	}, nil
}

func (c *PostgresClient) Migrate() error {
	return c.database.AutoMigrate(
		&Profile{},
		&Server{},
		&Channel{},
		&Member{},
	)
}

// Transaction runs fn against a client bound to a single database transaction.
func (c *PostgresClient) Transaction(ctx context.Context, fn func(tx *PostgresClient) error) error {
	return c.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresClient{database: tx})
	})
}

func (c *PostgresClient) Stats() sql.DBStats {
	rawDatabase, err := c.database.DB()
	if err != nil {
		return sql.DBStats{}
	}
	return rawDatabase.Stats()
}

func (c *PostgresClient) Close() error {
	rawDatabase, err := c.database.DB()
	if err != nil {
		return err
	}
	return rawDatabase.Close()
}
