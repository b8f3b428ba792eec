package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"trustcms/internal/form"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Observe(t *testing.T) {
	m := New()
	m.ObserveCoercions("gallery", map[form.FieldType]int{form.TypeInteger: 1, form.TypeBoolean: 2})
	m.ObserveRejection("team", []form.Violation{
		{Field: "order", Reason: form.ReasonConstraint},
		{Field: "active", Reason: form.ReasonTypeMismatch},
	})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.coercions.WithLabelValues("gallery", "boolean")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rejections.WithLabelValues("team")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.violations.WithLabelValues("team", "order", "constraint_violation")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "trustcms_form_rejections_total"))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveCoercions("x", map[form.FieldType]int{form.TypeInteger: 1})
		m.ObserveRejection("x", nil)
	})
}
