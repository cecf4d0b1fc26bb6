package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollectorCounts(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRegistration()
	c.RecordRegistration()
	c.RecordLoginSuccess()
	c.RecordLoginFailure("invalid_password")
	c.RecordLoginFailure("invalid_password")
	c.RecordLoginFailure("user_not_found")

	if got := testutil.ToFloat64(c.registrations); got != 2 {
		t.Fatalf("registrations = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.loginSuccess); got != 1 {
		t.Fatalf("login successes = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.loginFailure.WithLabelValues("invalid_password")); got != 2 {
		t.Fatalf("invalid_password failures = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.loginFailure.WithLabelValues("user_not_found")); got != 1 {
		t.Fatalf("user_not_found failures = %v, want 1", got)
	}
}
