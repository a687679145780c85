package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/potplant/pkg/cache"
	errs "github.com/matzehuels/potplant/pkg/errors"
	"github.com/matzehuels/potplant/pkg/observability"
	"github.com/matzehuels/potplant/pkg/pipeline"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(cache.NewMemoryCache(64), nil, logger)
	srv := httptest.NewServer(newServer(runner, logger))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if s, ok := body.(string); ok {
		buf.WriteString(s)
	} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(srv.URL+path, "application/json", &buf)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func get(t *testing.T, srv *httptest.Server, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func randomCode(t *testing.T, srv *httptest.Server, seed string) string {
	t.Helper()
	resp := get(t, srv, "/v1/plants/random?seed="+seed)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("random: status %d", resp.StatusCode)
	}
	return decodeBody[plantResponse](t, resp).Code
}

func TestServeHealth(t *testing.T) {
	srv := newTestServer(t)
	resp := get(t, srv, "/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if resp.Header.Get(headerRequestID) == "" {
		t.Error("response has no request ID")
	}
	body := decodeBody[healthResponse](t, resp)
	if body.Status != "ok" || body.Build.Version == "" {
		t.Errorf("health = %+v", body)
	}
}

func TestServeRequestIDPropagates(t *testing.T) {
	srv := newTestServer(t)
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	req.Header.Set(headerRequestID, "abc-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get(headerRequestID); got != "abc-123" {
		t.Errorf("request ID = %q, want abc-123", got)
	}
}

func TestServeRandom(t *testing.T) {
	srv := newTestServer(t)

	a := decodeBody[plantResponse](t, get(t, srv, "/v1/plants/random?seed=42"))
	b := decodeBody[plantResponse](t, get(t, srv, "/v1/plants/random?seed=42&tree"))
	if a.Code == "" || a.Code != b.Code {
		t.Errorf("seed 42 grew %q and %q", a.Code, b.Code)
	}
	if a.Seed != 42 || a.Stats.Stalks == 0 {
		t.Errorf("response = %+v", a)
	}
	if a.Plant != nil || b.Plant == nil {
		t.Error("the tree should only be included with ?tree")
	}

	fresh := decodeBody[plantResponse](t, get(t, srv, "/v1/plants/random"))
	if fresh.Seed == 0 {
		t.Error("random without a seed should report the drawn seed")
	}
}

func TestServeRandomBadSeed(t *testing.T) {
	srv := newTestServer(t)
	resp := get(t, srv, "/v1/plants/random?seed=-4")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if e := decodeBody[errorResponse](t, resp); e.Code != errs.ErrCodeInvalidInput {
		t.Errorf("code = %s", e.Code)
	}
}

func TestServeDecode(t *testing.T) {
	srv := newTestServer(t)
	code := randomCode(t, srv, "8")

	resp := post(t, srv, "/v1/genotypes/decode", codeRequest{Code: code})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	got := decodeBody[plantResponse](t, resp)
	if got.Plant == nil || got.Plant.StalkCount != got.Stats.Stalks {
		t.Errorf("decode = %+v", got)
	}
}

func TestServeRejectsGenotypes(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		name   string
		body   any
		status int
		code   errs.Code
		msg    string
	}{
		{"syntax", codeRequest{Code: ">3Sd"}, 400, errs.ErrCodeInvalidSyntax, errs.RejectedMessage},
		{"schema", codeRequest{Code: "{}"}, 400, errs.ErrCodeSchemaViolation, errs.RejectedMessage},
		{"empty", codeRequest{Code: "  "}, 400, errs.ErrCodeInvalidSyntax, errs.RejectedMessage},
		{"control", codeRequest{Code: ">3\x07"}, 400, errs.ErrCodeInvalidSyntax, errs.RejectedMessage},
		{"body", "not json", 400, errs.ErrCodeInvalidInput, "malformed request body"},
		{"unknown field", `{"genome": "x"}`, 400, errs.ErrCodeInvalidInput, "malformed request body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, path := range []string{"/v1/genotypes/decode", "/v1/genotypes/validate", "/v1/genotypes/geometry"} {
				resp := post(t, srv, path, tt.body)
				if resp.StatusCode != tt.status {
					t.Fatalf("%s: status = %d, want %d", path, resp.StatusCode, tt.status)
				}
				e := decodeBody[errorResponse](t, resp)
				if e.Code != tt.code || e.Message != tt.msg {
					t.Errorf("%s: error = %+v, want %s %q", path, e, tt.code, tt.msg)
				}
				if e.RequestID == "" {
					t.Errorf("%s: error has no request ID", path)
				}
			}
		})
	}
}

func TestServeRejectsHugeResolution(t *testing.T) {
	srv := newTestServer(t)
	code := strings.Replace(randomCode(t, srv, "21"), "?3(", "?1000000000000000(", 1)

	for _, path := range []string{"/v1/genotypes/decode", "/v1/genotypes/validate", "/v1/genotypes/geometry"} {
		resp := post(t, srv, path, codeRequest{Code: code})
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", path, resp.StatusCode)
		}
		if e := decodeBody[errorResponse](t, resp); e.Code != errs.ErrCodeSchemaViolation || e.Message != errs.RejectedMessage {
			t.Errorf("%s: error = %+v", path, e)
		}
	}

	// The server is still up.
	if resp := get(t, srv, "/healthz"); resp.StatusCode != http.StatusOK {
		t.Errorf("healthz after rejection: status = %d", resp.StatusCode)
	}
}

func TestServeValidate(t *testing.T) {
	srv := newTestServer(t)
	code := randomCode(t, srv, "13")

	resp := post(t, srv, "/v1/genotypes/validate", codeRequest{Code: code})
	got := decodeBody[struct {
		Valid bool          `json:"valid"`
		Stats statsResponse `json:"stats"`
	}](t, resp)
	if !got.Valid || got.Stats.Vertices == 0 {
		t.Errorf("validate = %+v", got)
	}
}

func TestServeGeometryIsCached(t *testing.T) {
	srv := newTestServer(t)
	code := randomCode(t, srv, "4")

	first := post(t, srv, "/v1/genotypes/geometry", codeRequest{Code: code})
	second := post(t, srv, "/v1/genotypes/geometry", codeRequest{Code: code})
	if first.Header.Get(headerCache) != "miss" || second.Header.Get(headerCache) != "hit" {
		t.Errorf("X-Cache = %q then %q, want miss then hit",
			first.Header.Get(headerCache), second.Header.Get(headerCache))
	}
	a, _ := io.ReadAll(first.Body)
	b, _ := io.ReadAll(second.Body)
	if !bytes.Equal(a, b) || !json.Valid(a) {
		t.Error("cached geometry differs or is not JSON")
	}
}

func TestServeDiagramDOT(t *testing.T) {
	srv := newTestServer(t)
	code := randomCode(t, srv, "4")

	resp := post(t, srv, "/v1/genotypes/diagram", diagramRequest{Code: code, Format: pipeline.DiagramDOT})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/vnd.graphviz") {
		t.Errorf("content type = %q", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.HasPrefix(string(body), "digraph G {") {
		t.Errorf("body = %s", body)
	}

	bad := post(t, srv, "/v1/genotypes/diagram", diagramRequest{Code: code, Format: "png"})
	if bad.StatusCode != http.StatusBadRequest {
		t.Errorf("png: status = %d, want 400", bad.StatusCode)
	}
}

func TestServeEncode(t *testing.T) {
	srv := newTestServer(t)
	grown := decodeBody[plantResponse](t, get(t, srv, "/v1/plants/random?seed=17&tree"))

	resp := post(t, srv, "/v1/genotypes/encode", grown.Plant)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got := decodeBody[plantResponse](t, resp); got.Code != grown.Code {
		t.Errorf("encode = %q, want %q", got.Code, grown.Code)
	}

	bad := post(t, srv, "/v1/genotypes/encode", `{"stalkCount": 1}`)
	if bad.StatusCode != http.StatusBadRequest {
		t.Fatalf("partial tree: status = %d, want 400", bad.StatusCode)
	}
	e := decodeBody[errorResponse](t, bad)
	if e.Code != errs.ErrCodeInvalidInput || !strings.Contains(e.Message, "invalid parameter tree") {
		t.Errorf("error = %+v", e)
	}
}

func TestServeNotFound(t *testing.T) {
	srv := newTestServer(t)
	if resp := get(t, srv, "/v1/nope"); resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
	if resp := get(t, srv, "/v1/genotypes/decode"); resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET decode: status = %d, want 405", resp.StatusCode)
	}
}

type httpEvents struct {
	observability.NoopHTTPHooks
	routes chan string
}

func (h httpEvents) OnResponse(_ context.Context, method, route string, status int, _ time.Duration) {
	h.routes <- method + " " + route
}

func TestServeReportsRoutePattern(t *testing.T) {
	events := httpEvents{routes: make(chan string, 1)}
	observability.SetHTTPHooks(events)
	defer observability.Reset()

	srv := newTestServer(t)
	get(t, srv, "/v1/plants/random?seed=1")

	select {
	case got := <-events.routes:
		if got != "GET /v1/plants/random" {
			t.Errorf("route = %q", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no response event")
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errs.New(errs.ErrCodeSchemaViolation, "x"), 400},
		{errs.New(errs.ErrCodeInvalidFormat, "x"), 400},
		{errs.New(errs.ErrCodeFileNotFound, "x"), 404},
		{errs.New(errs.ErrCodeUnsupported, "x"), 501},
		{errs.New(errs.ErrCodeInternal, "x"), 500},
		{context.Canceled, 499},
		{io.ErrUnexpectedEOF, 500},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
