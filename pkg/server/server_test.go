package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bleed/pkg/cache"
	"github.com/matzehuels/bleed/pkg/observability"
	"github.com/matzehuels/bleed/pkg/painting"
	"github.com/matzehuels/bleed/pkg/pipeline"
)

func testServer(t *testing.T, opts ...Option) (*Server, *bytes.Buffer) {
	t.Helper()
	cfg := painting.DefaultConfig()
	cfg.Width, cfg.Height = 100, 80
	cfg.RadiusMin, cfg.RadiusMax = 10, 30
	cfg.FacetsMax = 6
	cfg.Layers = 4
	cfg.IterationsPerLayer = 1

	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	runner := pipeline.NewRunner(c, nil, logger)
	all := append([]Option{WithConfig(cfg), WithLogger(logger)}, opts...)
	return New(runner, all...), &buf
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s, _ := testServer(t)
	rec := do(t, s.Handler(), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" || body["version"] == "" {
		t.Errorf("body = %v", body)
	}
	if !strings.HasPrefix(rec.Header().Get("Server"), "bleed/") {
		t.Errorf("Server header = %q", rec.Header().Get("Server"))
	}
}

func TestGetPaintingSVG(t *testing.T) {
	s, logs := testServer(t)
	rec := do(t, s.Handler(), http.MethodGet, "/paintings/42", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if rec.Header().Get("X-Cache") != "MISS" || rec.Header().Get("X-Painting-Seed") != "42" {
		t.Errorf("headers = %v", rec.Header())
	}
	if n := strings.Count(rec.Body.String(), "<path "); n != 4 {
		t.Errorf("paths = %d, want 4", n)
	}
	etag := rec.Header().Get("ETag")

	again := do(t, s.Handler(), http.MethodGet, "/paintings/42", "")
	if again.Header().Get("X-Cache") != "HIT" {
		t.Error("second request should hit the cache")
	}
	if again.Body.String() != rec.Body.String() || again.Header().Get("ETag") != etag {
		t.Error("same seed should serve identical content")
	}
	if !strings.Contains(logs.String(), "path=/paintings/42") {
		t.Errorf("request not logged:\n%s", logs)
	}
}

func TestGetPaintingFormats(t *testing.T) {
	s, _ := testServer(t)

	rec := do(t, s.Handler(), http.MethodGet, "/paintings/7?format=png&scale=2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("png status = %d: %s", rec.Code, rec.Body)
	}
	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 200 {
		t.Errorf("png width = %d, want 200", img.Bounds().Dx())
	}

	rec = do(t, s.Handler(), http.MethodGet, "/paintings/7?format=json&shapes=2&layers=3", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("json status = %d: %s", rec.Code, rec.Body)
	}
	var doc struct {
		Shapes   []json.RawMessage `json:"shapes"`
		Polygons []json.RawMessage `json:"polygons"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Shapes) != 2 || len(doc.Polygons) != 6 {
		t.Errorf("%d shapes, %d polygons", len(doc.Shapes), len(doc.Polygons))
	}
}

func TestGetPaintingErrors(t *testing.T) {
	s, _ := testServer(t)
	tests := []struct {
		target string
		status int
		code   string
	}{
		{"/paintings/abc", http.StatusBadRequest, "INVALID_INPUT"},
		{"/paintings/0", http.StatusBadRequest, "INVALID_INPUT"},
		{"/paintings/1?format=gif", http.StatusBadRequest, "INVALID_FORMAT"},
		{"/paintings/1?layers=x", http.StatusBadRequest, "INVALID_INPUT"},
		{"/paintings/1?width=100000", http.StatusUnprocessableEntity, "LIMIT_EXCEEDED"},
		{"/paintings/1?shapes=1000", http.StatusUnprocessableEntity, "LIMIT_EXCEEDED"},
		{"/paintings/1?format=png&width=4096&height=4096&scale=8&shapes=64&layers=1000", http.StatusUnprocessableEntity, "LIMIT_EXCEEDED"},
		{"/paintings/1?format=png&width=4096&height=4096&scale=8", http.StatusUnprocessableEntity, "LIMIT_EXCEEDED"},
		{"/paintings/1?format=json&shapes=64&layers=1000", http.StatusUnprocessableEntity, "LIMIT_EXCEEDED"},
		{"/nope", http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := do(t, s.Handler(), http.MethodGet, tt.target, "")
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d (%s)", rec.Code, tt.status, rec.Body)
			}
			var body errorBody
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if string(body.Code) != tt.code || body.Error == "" {
				t.Errorf("body = %+v, want code %s", body, tt.code)
			}
		})
	}
}

func TestCreatePainting(t *testing.T) {
	s, _ := testServer(t)
	rec := do(t, s.Handler(), http.MethodPost, "/paintings", `{"shapes": 2, "layers": 3}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}

	var body createResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.ID.Version() != 4 || body.Seed == 0 {
		t.Errorf("id %v seed %d", body.ID, body.Seed)
	}
	if len(body.Shapes) != 2 || body.Stats.Polygons != 6 {
		t.Errorf("shapes %d, stats %+v", len(body.Shapes), body.Stats)
	}
	svgLink := body.Links["svg"]
	if !strings.HasPrefix(svgLink, "/paintings/") || rec.Header().Get("Location") != svgLink {
		t.Errorf("links = %v, Location = %q", body.Links, rec.Header().Get("Location"))
	}

	// The link renders the same painting.
	got := do(t, s.Handler(), http.MethodGet, svgLink, "")
	if got.Code != http.StatusOK || strings.Count(got.Body.String(), "<path ") != 6 {
		t.Errorf("link status %d with %d paths", got.Code, strings.Count(got.Body.String(), "<path "))
	}
}

func TestCreatePaintingEmptyBody(t *testing.T) {
	s, _ := testServer(t)
	a := do(t, s.Handler(), http.MethodPost, "/paintings", "")
	b := do(t, s.Handler(), http.MethodPost, "/paintings/", "")
	if a.Code != http.StatusCreated || b.Code != http.StatusCreated {
		t.Fatalf("status = %d / %d", a.Code, b.Code)
	}
	var ra, rb createResponse
	_ = json.Unmarshal(a.Body.Bytes(), &ra)
	_ = json.Unmarshal(b.Body.Bytes(), &rb)
	if ra.ID == rb.ID || ra.Seed == rb.Seed {
		t.Error("each POST should pick a fresh id and seed")
	}
}

func TestCreatePaintingBadBody(t *testing.T) {
	s, _ := testServer(t)
	for _, body := range []string{`{"shapes":`, `{"colour": "red"}`, `{"layers": -1}`} {
		rec := do(t, s.Handler(), http.MethodPost, "/paintings", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d", body, rec.Code)
		}
	}
}

type statusHooks struct {
	observability.NoopHTTPHooks
	requests int
	statuses []int
}

func (h *statusHooks) OnRequest(context.Context, string, string) { h.requests++ }
func (h *statusHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.statuses = append(h.statuses, status)
}

func TestHTTPHooks(t *testing.T) {
	hooks := &statusHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	s, _ := testServer(t)
	do(t, s.Handler(), http.MethodGet, "/healthz", "")
	do(t, s.Handler(), http.MethodGet, "/paintings/x", "")

	if hooks.requests != 2 || len(hooks.statuses) != 2 || hooks.statuses[0] != 200 || hooks.statuses[1] != 400 {
		t.Errorf("hooks = %+v", hooks)
	}
}

func TestServeShutdown(t *testing.T) {
	s, _ := testServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() = %v, want clean shutdown", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
