// Package ormtest provides a throwaway database for package tests.
package ormtest

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"

	"github.com/stormhead-org/community/internal/orm"
)

// NewClient returns a migrated client over a private in-memory sqlite database.
func NewClient(t testing.TB) *orm.PostgresClient {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	// One connection keeps every statement on the same in-memory database.
	client, err := orm.NewClient(sqlite.Open(dsn), orm.PoolConfig{
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxIdleTime: time.Minute,
	})
	require.NoError(t, err)
	require.NoError(t, client.Migrate())

	t.Cleanup(func() {
		client.Close()
	})
	return client
}
