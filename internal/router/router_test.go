package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/a573364948/trainee-evaluation-system-sub001/internal/config"
	"github.com/a573364948/trainee-evaluation-system-sub001/internal/hub"
	"github.com/a573364948/trainee-evaluation-system-sub001/internal/store"
)

func newTestServer(t *testing.T) (*httptest.Server, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	log := zap.NewNop()
	st := store.New(filepath.Join(dir, "state.json"), filepath.Join(dir, "backups"), 10, log)
	if err := st.Open(); err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	cfg := &config.Config{
		Server: config.ServerConfig{
			SessionSecret: "test-secret",
			AdminPassword: "hunter2",
		},
		Hub: config.HubConfig{
			HeartbeatInterval: time.Second,
			StaleTimeout:      time.Minute,
			QueueSize:         16,
		},
	}
	h := hub.New(log, cfg.Hub.HeartbeatInterval, cfg.Hub.StaleTimeout, cfg.Hub.QueueSize)
	st.SetNotifier(h)

	srv := httptest.NewServer(Setup(log, cfg, st, h))
	t.Cleanup(srv.Close)
	return srv, st
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &http.Client{Jar: jar}
}

func postJSON(t *testing.T, client *http.Client, url string, body any) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	resp, err := client.Post(url, "application/json", bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func loginAdmin(t *testing.T, client *http.Client, base string) {
	t.Helper()
	resp := postJSON(t, client, base+"/api/auth/admin-login", gin.H{"password": "hunter2"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin login status = %d", resp.StatusCode)
	}
}

func TestAdminRoutesRequireLogin(t *testing.T) {
	srv, _ := newTestServer(t)
	client := newClient(t)

	resp := postJSON(t, client, srv.URL+"/api/batches", gin.H{"name": "Round 1"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("unauthenticated create batch status = %d, want 401", resp.StatusCode)
	}
}

func TestPublicRoutesNeedNoLogin(t *testing.T) {
	srv, _ := newTestServer(t)
	client := newClient(t)

	for _, path := range []string{"/api/snapshot", "/api/display", "/api/timer"} {
		resp, err := client.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, resp.StatusCode)
		}
	}
}

func TestBatchConflictResponseShape(t *testing.T) {
	srv, _ := newTestServer(t)
	client := newClient(t)
	loginAdmin(t, client, srv.URL)

	var first, second struct {
		ID string `json:"id"`
	}
	resp := postJSON(t, client, srv.URL+"/api/batches", gin.H{"name": "Morning"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create batch status = %d", resp.StatusCode)
	}
	decodeBody(t, resp, &first)
	resp = postJSON(t, client, srv.URL+"/api/batches", gin.H{"name": "Afternoon"})
	decodeBody(t, resp, &second)

	resp = postJSON(t, client, srv.URL+"/api/batches/"+first.ID+"/start", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("start first batch status = %d", resp.StatusCode)
	}

	// Starting a second batch while one is active must explain the refusal.
	resp = postJSON(t, client, srv.URL+"/api/batches/"+second.ID+"/start", nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("start second batch status = %d, want 409", resp.StatusCode)
	}
	var conflict struct {
		Error          string `json:"error"`
		Kind           string `json:"kind"`
		CurrentState   string `json:"currentState"`
		RequestedState string `json:"requestedState"`
	}
	decodeBody(t, resp, &conflict)
	if conflict.Kind != "conflict" {
		t.Errorf("kind = %q, want conflict", conflict.Kind)
	}
	if conflict.CurrentState == "" || conflict.RequestedState == "" {
		t.Errorf("conflict body missing states: %+v", conflict)
	}
}

func TestJudgeScoringFlow(t *testing.T) {
	srv, st := newTestServer(t)

	judge, err := st.CreateJudge("Alice", "Senior Engineer", "s3cret")
	if err != nil {
		t.Fatalf("create judge: %v", err)
	}
	if _, err := st.CreateDimension("Communication", 10, 1); err != nil {
		t.Fatalf("create dimension: %v", err)
	}
	candidate, err := st.CreateCandidate("001", "Bob", "Platform")
	if err != nil {
		t.Fatalf("create candidate: %v", err)
	}

	client := newClient(t)
	resp := postJSON(t, client, srv.URL+"/api/auth/judge-login",
		gin.H{"judgeId": judge.ID, "password": "s3cret"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("judge login status = %d", resp.StatusCode)
	}

	// The judge can read the working set but not the operator surface.
	resp, err = client.Get(srv.URL + "/api/candidates")
	if err != nil {
		t.Fatalf("GET candidates: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("judge list candidates status = %d, want 200", resp.StatusCode)
	}
	resp, err = client.Get(srv.URL + "/api/judges")
	if err != nil {
		t.Fatalf("GET judges: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("judge listing judges status = %d, want 401", resp.StatusCode)
	}

	var dimList []struct {
		ID string `json:"id"`
	}
	resp, err = client.Get(srv.URL + "/api/dimensions")
	if err != nil {
		t.Fatalf("GET dimensions: %v", err)
	}
	decodeBody(t, resp, &dimList)
	if len(dimList) != 1 {
		t.Fatalf("dimensions = %d, want 1", len(dimList))
	}

	resp = postJSON(t, client, srv.URL+"/api/scores", gin.H{
		"candidateId": candidate.ID,
		"values":      gin.H{dimList[0].ID: 8},
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("submit score status = %d", resp.StatusCode)
	}

	updated, err := st.Candidate(candidate.ID)
	if err != nil {
		t.Fatalf("reload candidate: %v", err)
	}
	if updated.TotalScore != 8 {
		t.Errorf("TotalScore = %v, want 8", updated.TotalScore)
	}
	if len(updated.Scores) != 1 || updated.Scores[0].JudgeID != judge.ID {
		t.Errorf("score not attributed to the logged-in judge: %+v", updated.Scores)
	}
}
