package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/stormhead-org/community/internal/lib"
)

func TestObserveOperation(t *testing.T) {
	m := NewMetrics()

	m.ObserveOperation("createServer", nil)
	m.ObserveOperation("createServer", nil)
	m.ObserveOperation("createServer", lib.ProfileNotFoundError())
	m.ObserveOperation("getServer", errors.New("boom"))

	require.Equal(t, 2.0, testutil.ToFloat64(m.operations.WithLabelValues("createServer", "ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("createServer", "PROFILE_NOT_FOUND")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("getServer", "INTERNAL")))
}
