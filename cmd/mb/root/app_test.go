package root

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/authentication/login":
			body, _ := io.ReadAll(r.Body)
			if !strings.Contains(string(body), `"password":"pw"`) {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = io.WriteString(w, `{"message":"Invalid username or password"}`)
				return
			}
			_, _ = io.WriteString(w, `{"access_token":"tok","display_name":"Nova","xp":180}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func useTestEnv(t *testing.T, api string) {
	t.Helper()
	t.Setenv("MB_DATA_DIR", t.TempDir())
	t.Setenv("MB_CACHE", "sqlite")
	t.Setenv("MB_METRICS_ADDR", "")
	apiURL, dataDir = api+"/", ""
	t.Cleanup(func() { apiURL, dataDir = "", "" })
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	useTestEnv(t, "http://example.test")
	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.APIBaseURL != "http://example.test" {
		t.Fatalf("APIBaseURL=%q", cfg.APIBaseURL)
	}
}

func TestSessionSurvivesAcrossCommands(t *testing.T) {
	useTestEnv(t, fakeAPI(t).URL)

	var out bytes.Buffer
	login := newLoginCmd()
	login.SetOut(&out)
	login.SetArgs([]string{"-u", "nova", "-p", "pw"})
	if err := login.Execute(); err != nil {
		t.Fatalf("login: %v", err)
	}

	a, cleanup, err := openApp(context.Background())
	if err != nil {
		t.Fatalf("openApp: %v", err)
	}
	p, ok := a.store.Current()
	cleanup()
	if !ok || p.DisplayName != "Nova" || p.Level != 2 {
		t.Fatalf("restored=%+v ok=%v", p, ok)
	}

	logout := newLogoutCmd()
	logout.SetOut(&out)
	logout.SetArgs(nil)
	if err := logout.Execute(); err != nil {
		t.Fatalf("logout: %v", err)
	}

	a, cleanup, err = openApp(context.Background())
	if err != nil {
		t.Fatalf("openApp: %v", err)
	}
	defer cleanup()
	if _, ok := a.store.Current(); ok {
		t.Fatalf("session restored after logout")
	}
}

func TestLoginShowsBackendMessage(t *testing.T) {
	useTestEnv(t, fakeAPI(t).URL)

	login := newLoginCmd()
	login.SetOut(io.Discard)
	login.SetErr(io.Discard)
	login.SetArgs([]string{"-u", "nova", "-p", "wrong"})
	err := login.Execute()
	if err == nil || err.Error() != "Invalid username or password" {
		t.Fatalf("err=%v", err)
	}
}

func TestLoginRequiresFields(t *testing.T) {
	useTestEnv(t, "http://unused.test")

	login := newLoginCmd()
	login.SetOut(io.Discard)
	login.SetErr(io.Discard)
	login.SetArgs([]string{"-u", "nova"})
	err := login.Execute()
	if err == nil || !strings.Contains(err.Error(), "password: Required") {
		t.Fatalf("err=%v", err)
	}
}
