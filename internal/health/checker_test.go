package health_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/udanya23/job-portal/internal/health"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

func gaugeValue(t *testing.T, reg *prometheus.Registry, dependency string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != "jobportal_health_check_up" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "dependency" && l.GetValue() == dependency {
					return m.GetGauge().GetValue()
				}
			}
		}
	}
	t.Fatalf("no gauge sample for dependency %q", dependency)
	return 0
}

func TestLiveness_AlwaysUp(t *testing.T) {
	c := health.NewChecker(&mockPinger{}, testLogger, prometheus.NewRegistry())
	if got := c.Liveness(context.Background()); got.Status != "up" {
		t.Errorf("status = %q, want up", got.Status)
	}
}

func TestReadiness_DatabaseUp(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := health.NewChecker(&mockPinger{}, testLogger, reg)

	got := c.Readiness(context.Background())
	if got.Status != "up" {
		t.Errorf("status = %q, want up", got.Status)
	}
	if got.Checks["mongodb"].Status != "up" {
		t.Errorf("mongodb check = %+v, want up", got.Checks["mongodb"])
	}
	if v := gaugeValue(t, reg, "mongodb"); v != 1 {
		t.Errorf("gauge = %v, want 1", v)
	}
}

func TestReadiness_DatabaseDown(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := health.NewChecker(&mockPinger{err: errors.New("no reachable servers")}, testLogger, reg)

	got := c.Readiness(context.Background())
	if got.Status != "down" {
		t.Errorf("status = %q, want down", got.Status)
	}
	check := got.Checks["mongodb"]
	if check.Status != "down" || check.Error == "" {
		t.Errorf("mongodb check = %+v, want down with error", check)
	}
	if v := gaugeValue(t, reg, "mongodb"); v != 0 {
		t.Errorf("gauge = %v, want 0", v)
	}
}
