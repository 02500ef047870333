package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"checklist/internal/domain/entity"
	"checklist/internal/domain/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Records(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordLogin(entity.ClaimOriginLocal, true)
	c.RecordLogin(entity.ClaimOriginLocal, false)
	c.RecordLogin(entity.ClaimOriginOneTap, true)
	c.RecordResolution(service.ResolutionLinked)
	c.RecordGuardRejection("role_denied")
	c.RecordGuardRejection("role_denied")
	c.RecordRenewal()

	assert.Equal(t, 1.0, testutil.ToFloat64(c.logins.WithLabelValues("local", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.logins.WithLabelValues("local", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.logins.WithLabelValues("one_tap", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.resolutions.WithLabelValues("linked")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.guardRejections.WithLabelValues("role_denied")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.renewals))
}

func TestHandler_ServesMetrics(t *testing.T) {
	reg := NewRegistry()
	c := NewCollector(reg)
	c.RecordRenewal()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, req)

	resp := w.Result()
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "checklist_session_renewals_total 1")
	assert.Contains(t, string(body), "go_goroutines")
}
