package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters(t *testing.T) {
	m := New()
	m.AuthAttempt("login", true)
	m.AuthAttempt("login", false)
	m.AuthAttempt("login", false)
	m.XPAwarded(250)
	m.XPAwarded(-10)
	m.MissionCompleted()
	m.AvatarUpload(true)

	if got := testutil.ToFloat64(m.authAttempts.WithLabelValues("login", "failure")); got != 2 {
		t.Fatalf("login failures=%v, want 2", got)
	}
	if got := testutil.ToFloat64(m.xpAwarded); got != 250 {
		t.Fatalf("xp awarded=%v, want 250", got)
	}
	if got := testutil.ToFloat64(m.missionsCompleted); got != 1 {
		t.Fatalf("missions completed=%v, want 1", got)
	}
	if got := testutil.ToFloat64(m.avatarUploads.WithLabelValues("success")); got != 1 {
		t.Fatalf("avatar uploads=%v, want 1", got)
	}
}

func TestObserveRequest(t *testing.T) {
	m := New()
	m.ObserveRequest("/api/authentication/login", 200, 30*time.Millisecond)
	m.ObserveRequest("/api/authentication/login", 0, time.Second)
	if got := testutil.CollectAndCount(m.requestDuration); got != 2 {
		t.Fatalf("histogram series=%d, want 2", got)
	}
}

func TestAppEndpoints(t *testing.T) {
	m := New()
	m.MissionCompleted()
	app := NewApp(m)

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != 200 || !strings.Contains(string(body), "missionboard_missions_completed_total 1") {
		t.Fatalf("status=%d body missing counter", resp.StatusCode)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/health", nil))
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	body, _ = io.ReadAll(resp.Body)
	if resp.StatusCode != 200 || !strings.Contains(string(body), `"status":"healthy"`) {
		t.Fatalf("health status=%d body=%s", resp.StatusCode, body)
	}
}
