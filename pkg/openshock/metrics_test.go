package openshock

import (
	"context"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_CountsByRouteTemplate(t *testing.T) {
	api := newMockAPI(t, http.StatusNotFound, `{"error":"nope"}`)
	c := newTestClient(t, api.URL)

	counter := requestsTotal.WithLabelValues("/1/shockers/{id}", http.MethodGet, "404")
	before := testutil.ToFloat64(counter)

	_, err := c.GetShocker(context.Background(), "raw-id-1")
	require.Error(t, err)
	_, err = c.GetShocker(context.Background(), "raw-id-2")
	require.Error(t, err)

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestMetrics_TransportErrors(t *testing.T) {
	c := newTestClient(t, "http://127.0.0.1:1")

	counter := requestsTotal.WithLabelValues("/1/devices", http.MethodGet, "error")
	before := testutil.ToFloat64(counter)

	_, err := c.ListDevices(context.Background())
	require.Error(t, err)

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
