package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRegisterCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	RegisterCollectors(reg)

	Fetches.WithLabelValues(ResultOK).Inc()
	require.Equal(t, 1, testutil.CollectAndCount(Fetches))

	// registering twice on the same registry is a programming error
	require.Panics(t, func() { RegisterCollectors(reg) })
}
