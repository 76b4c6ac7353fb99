package cli

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/taxoviz/pkg/observability"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := newServer(sampleTaxonomy(t), serverOptions{}, log.New(io.Discard))
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string) (int, string, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, resp.Header.Get("Content-Type"), string(body)
}

func TestServeRoutes(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantType   string
		wantBody   string
	}{
		{"index", "/", 200, "text/html", "Green Plants</a>"},
		{"view root", "/view?id=ex:animals", 200, "text/html", "vis.Network"},
		{"view inner concept", "/view?id=ex:mammals", 200, "text/html", `"label":"Mammals"`},
		{"graph", "/graph?id=ex:animals", 200, "application/json", `"root": "ex:animals"`},
		{"health", "/healthz", 200, "", "ok"},
		{"missing id", "/view", 400, "", "missing id"},
		{"unknown id", "/view?id=ex:ghost", 404, "", "unknown concept"},
		{"unknown graph id", "/graph?id=ex:ghost", 404, "", "unknown concept"},
		{"no route", "/nope", 404, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, ctype, body := get(t, ts.URL+tt.path)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if tt.wantType != "" && !strings.HasPrefix(ctype, tt.wantType) {
				t.Errorf("Content-Type = %q, want %q", ctype, tt.wantType)
			}
			if !strings.Contains(body, tt.wantBody) {
				t.Errorf("body missing %q:\n%.300s", tt.wantBody, body)
			}
		})
	}
}

func TestServeGraphJSON(t *testing.T) {
	ts := newTestServer(t)
	_, _, body := get(t, ts.URL+"/graph?id=ex:animals")

	var doc struct {
		Root  string `json:"root"`
		Nodes []struct {
			ID string `json:"id"`
		} `json:"nodes"`
		Edges []struct{} `json:"edges"`
	}
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.Root != "ex:animals" || len(doc.Nodes) != 3 || len(doc.Edges) != 3 {
		t.Errorf("graph = root %q, %d nodes, %d edges; want ex:animals, 3, 3", doc.Root, len(doc.Nodes), len(doc.Edges))
	}
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	mu       sync.Mutex
	statuses []int
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses = append(h.statuses, status)
}

func TestServeObserveHooks(t *testing.T) {
	h := &recordingHTTPHooks{}
	observability.SetHTTPHooks(h)
	t.Cleanup(observability.Reset)

	ts := newTestServer(t)
	get(t, ts.URL+"/healthz")
	get(t, ts.URL+"/view")

	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.statuses) != 2 || h.statuses[0] != 200 || h.statuses[1] != 400 {
		t.Errorf("observed statuses = %v, want [200 400]", h.statuses)
	}
}

func TestServeShutdown(t *testing.T) {
	srv := newServer(sampleTaxonomy(t), serverOptions{}, log.New(io.Discard))
	captureStdout(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.listenAndServe(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("listenAndServe() = %v, want nil after cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
