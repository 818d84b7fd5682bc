package metrics

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry(), "test")

	m.IncAppointmentCreated("public")
	m.IncAppointmentCreated("public")
	m.IncOverlapRejected("constraint")
	m.IncStatusTransition("completed")
	m.IncFinancialEntry()
	m.AddOutboxPublished("finance.entry.created", 3)
	m.RecordHTTPRequest("GET", "/healthz", 200, 10*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.appointmentsCreated.WithLabelValues("public")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.overlapRejections.WithLabelValues("constraint")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.statusTransitions.WithLabelValues("completed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.financialEntries))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.outboxPublished.WithLabelValues("finance.entry.created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/healthz", "200")))
}

func TestMetrics_DBQueryErrorsSkipNoRows(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry(), "test")

	m.RecordDBQuery("query_row", time.Millisecond, sql.ErrNoRows)
	m.RecordDBQuery("exec", time.Millisecond, errors.New("boom"))

	assert.Equal(t, 0.0, testutil.ToFloat64(m.dbQueryErrors.WithLabelValues("query_row")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dbQueryErrors.WithLabelValues("exec")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncAppointmentCreated("staff")
		m.RecordDBQuery("exec", time.Millisecond, nil)
		m.SetDBPoolStats(sql.DBStats{})
		m.IncRateLimited()
	})
}
