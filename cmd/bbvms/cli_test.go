package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/domdoescode/blue-billywig/client"
)

// stubVMS answers the VMS endpoints with a single shared session.
func stubVMS(t *testing.T) (*httptest.Server, func() []string) {
	t.Helper()
	var mu sync.Mutex
	var queries []string

	mux := http.NewServeMux()
	mux.HandleFunc("/api/getRandom", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<response code="200">abc</response>`))
	})
	mux.HandleFunc("/api/bbauth", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch q.Get("action") {
		case "get_user":
			if q.Get("password") != client.HashPassword("ac3", "abc") {
				_, _ = w.Write([]byte(`<response code="404"/>`))
				return
			}
			http.SetCookie(w, &http.Cookie{Name: "sid", Value: "1", Path: "/"})
			_, _ = w.Write([]byte(`<user name="D.Udall" id="12"/>`))
		case "checkSession", "logoff":
			if _, err := r.Cookie("sid"); err != nil {
				_, _ = w.Write([]byte(`<response code="404"/>`))
				return
			}
			_, _ = w.Write([]byte(`<response code="200"/>`))
		}
	})
	mux.HandleFunc("/json/search", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		queries = append(queries, r.URL.RawQuery)
		mu.Unlock()
		_, _ = w.Write([]byte(`{"items":[{"id":"5","assets":"[]","thumbnails":"[]"}]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), queries...)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := runCapture(t, args...)
	return out, err
}

// runCapture executes the CLI and returns stdout and the log output.
func runCapture(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestCLI_Token(t *testing.T) {
	srv, _ := stubVMS(t)
	out, err := run(t, "token", "--base-url", srv.URL)
	if err != nil {
		t.Fatalf("token failed: %v", err)
	}
	if strings.TrimSpace(out) != "abc" {
		t.Fatalf("unexpected token output %q", out)
	}
}

func TestCLI_Login(t *testing.T) {
	srv, _ := stubVMS(t)
	out, err := run(t, "login", "--base-url", srv.URL, "-u", "dom", "-p", "ac3")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	var user map[string]string
	if err := json.Unmarshal([]byte(out), &user); err != nil {
		t.Fatalf("output not JSON: %v\n%s", err, out)
	}
	if user["name"] != "D.Udall" || user["element"] != "user" {
		t.Fatalf("unexpected user %v", user)
	}

	if _, err := run(t, "login", "--base-url", srv.URL, "-u", "dom", "-p", "wrong"); !client.IsNotAuthenticated(err) {
		t.Fatalf("expected not authenticated, got %v", err)
	}
	if _, err := run(t, "login", "--base-url", srv.URL, "-u", ""); err == nil {
		t.Fatal("expected error without username")
	}
}

func TestCLI_CheckSessionAndLogOff(t *testing.T) {
	srv, _ := stubVMS(t)

	out, err := run(t, "check-session", "--base-url", srv.URL, "-u", "")
	if err != nil || !strings.Contains(out, "Session exists: false") {
		t.Fatalf("anonymous check-session: %q, %v", out, err)
	}
	out, err = run(t, "check-session", "--base-url", srv.URL, "-u", "dom", "-p", "ac3")
	if err != nil || !strings.Contains(out, "Session exists: true") {
		t.Fatalf("logged in check-session: %q, %v", out, err)
	}
	out, err = run(t, "logoff", "--base-url", srv.URL, "-u", "dom", "-p", "ac3")
	if err != nil || !strings.Contains(out, "Logged off") {
		t.Fatalf("logoff: %q, %v", out, err)
	}
	if _, err := run(t, "logoff", "--base-url", srv.URL, "-u", ""); !client.IsStructural(err) {
		t.Fatalf("logoff without session should fail, got %v", err)
	}
}

func TestCLI_Search(t *testing.T) {
	srv, queries := stubVMS(t)

	out, err := run(t, "search", "--base-url", srv.URL, "-u", "", "--published", "-q", "cats")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	var results []map[string]any
	if err := json.Unmarshal([]byte(out), &results); err != nil || len(results) != 1 {
		t.Fatalf("unexpected search output %q (%v)", out, err)
	}
	if _, err := run(t, "search", "--base-url", srv.URL, "-u", "", "-q", "dogs", "--param", "sort=createddate desc"); err != nil {
		t.Fatalf("search failed: %v", err)
	}

	got := queries()
	if len(got) != 2 {
		t.Fatalf("expected 2 searches, got %v", got)
	}
	if !strings.Contains(got[0], "limit=50") || !strings.Contains(got[0], "status%3Apublished") {
		t.Fatalf("legacy query not applied: %s", got[0])
	}
	if strings.Contains(got[1], "limit=") || !strings.Contains(got[1], "sort=createddate+desc") {
		t.Fatalf("passthrough params not sent verbatim: %s", got[1])
	}
}

func TestSearchParams_InvalidParam(t *testing.T) {
	if _, err := searchParams("", []string{"novalue"}, false); err == nil {
		t.Fatal("expected error for malformed --param")
	}
	sp, err := searchParams("", []string{"limit=5"}, true)
	if err != nil {
		t.Fatalf("searchParams: %v", err)
	}
	if sp["query"] != "status:published" || sp["limit"] != "5" {
		t.Fatalf("unexpected params %v", sp)
	}
}

func TestCLI_URLBuilders(t *testing.T) {
	out, err := run(t, "image-url", "--base-url", "http://localhost:3001", "--width", "500", "--height", "500", "--image", "/test-image.jpeg")
	if err != nil || strings.TrimSpace(out) != "http://localhost:3001/image/500/500/test-image.jpeg" {
		t.Fatalf("image-url: %q, %v", out, err)
	}
	out, err = run(t, "player-url", "--base-url", "http://localhost:3001", "--clip", "130")
	if err != nil || strings.TrimSpace(out) != "http://localhost:3001/p/default/c/130.js" {
		t.Fatalf("player-url: %q, %v", out, err)
	}
	out, err = run(t, "player-url", "--base-url", "http://localhost:3001", "--clip", "120", "--playout", "main")
	if err != nil || strings.TrimSpace(out) != "http://localhost:3001/p/main/c/120.js" {
		t.Fatalf("player-url: %q, %v", out, err)
	}
}

func TestCLI_LogJSON_RejectedLoginHasStack(t *testing.T) {
	srv, _ := stubVMS(t)
	_, logs, err := runCapture(t, "login", "--base-url", srv.URL, "-u", "dom", "-p", "wrong", "--log-json")
	if !client.IsNotAuthenticated(err) {
		t.Fatalf("expected not authenticated, got %v", err)
	}

	var warn map[string]any
	for _, line := range strings.Split(logs, "\n") {
		var payload map[string]any
		if json.Unmarshal([]byte(line), &payload) != nil {
			continue
		}
		if payload["level"] == "warn" {
			warn = payload
		}
	}
	if warn == nil {
		t.Fatalf("no JSON warn line in logs:\n%s", logs)
	}
	if warn["service"] != "bbvms" || warn["op"] != "authenticate" {
		t.Fatalf("unexpected warn line %v", warn)
	}
	if _, ok := warn["stack"]; !ok {
		t.Fatalf("expected stack field: %v", warn)
	}
}

func TestCLI_ConsoleLogsByDefault(t *testing.T) {
	srv, _ := stubVMS(t)
	_, logs, err := runCapture(t, "login", "--base-url", srv.URL, "-u", "dom", "-p", "wrong")
	if err == nil {
		t.Fatalf("expected login failure")
	}
	if !strings.Contains(logs, "WRN") || !strings.Contains(logs, "service=bbvms") {
		t.Fatalf("expected console warn line, got %q", logs)
	}
}
