package server

import (
	"math"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
)

func TestPathParam(t *testing.T) {
	tests := []struct {
		path, prefix, suffix, want string
	}{
		{"/api/quote/AAPL", "/api/quote/", "", "AAPL"},
		{"/api/quote/AAPL/extra", "/api/quote/", "", "AAPL"},
		{"/api/companies/MSFT/profile", "/api/companies/", "/profile", "MSFT"},
		{"/api/other/MSFT", "/api/companies/", "", ""},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		if got := PathParam(req, tt.prefix, tt.suffix); got != tt.want {
			t.Errorf("PathParam(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestWantsMarkdown(t *testing.T) {
	tests := map[string]bool{
		"/api/quote/AAPL":                 false,
		"/api/quote/AAPL?format=markdown": true,
		"/api/quote/AAPL?format=Markdown": true,
		"/api/quote/AAPL?format=json":     false,
	}
	for target, want := range tests {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		if got := wantsMarkdown(req); got != want {
			t.Errorf("wantsMarkdown(%q) = %v, want %v", target, got, want)
		}
	}
}

func TestQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x?limit=7&bad=seven", nil)

	v, err := queryInt(req, "limit")
	if err != nil || v != 7 {
		t.Errorf("limit: got %d, %v", v, err)
	}
	v, err = queryInt(req, "missing")
	if err != nil || v != 0 {
		t.Errorf("missing: got %d, %v", v, err)
	}
	if _, err := queryInt(req, "bad"); err == nil || !strings.Contains(err.Error(), "must be an integer") {
		t.Errorf("bad: expected integer error, got %v", err)
	}
}

func TestQueryFloat(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x?rate=4.25&bad=abc", nil)

	v, err := queryFloat(req, "rate")
	if err != nil || v == nil || *v != 4.25 {
		t.Errorf("rate: got %v, %v", v, err)
	}
	v, err = queryFloat(req, "missing")
	if err != nil || v != nil {
		t.Errorf("missing: expected nil, got %v, %v", v, err)
	}
	if _, err := queryFloat(req, "bad"); err == nil || !strings.Contains(err.Error(), "must be a number") {
		t.Errorf("bad: expected number error, got %v", err)
	}
}

func TestQueryFloatList(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x?range=8,%209,,10.5&bad=8,x", nil)

	got, err := queryFloatList(req, "range")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{8, 9, 10.5}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}

	if got, err := queryFloatList(req, "missing"); err != nil || got != nil {
		t.Errorf("missing: expected nil, got %v, %v", got, err)
	}
	if _, err := queryFloatList(req, "bad"); err == nil {
		t.Error("expected error for non-numeric entry")
	}
}

func TestQueryFloat_RejectsNonFinite(t *testing.T) {
	for _, raw := range []string{"NaN", "nan", "Inf", "+Inf", "-Inf", "1e400"} {
		req := httptest.NewRequest(http.MethodGet, "/x?rate="+raw, nil)
		if v, err := queryFloat(req, "rate"); err == nil {
			t.Errorf("%s: expected error, got %v", raw, *v)
		}
	}
}

func TestQueryFloatList_RejectsNonFinite(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x?range=8,NaN,10&inf=8,-Inf", nil)
	if _, err := queryFloatList(req, "range"); err == nil || !strings.Contains(err.Error(), "finite") {
		t.Errorf("range: expected finite error, got %v", err)
	}
	if _, err := queryFloatList(req, "inf"); err == nil {
		t.Error("inf: expected error")
	}
}

func TestQueryFloatList_Cap(t *testing.T) {
	parts := make([]string, maxQueryListItems)
	for i := range parts {
		parts[i] = strconv.Itoa(i + 1)
	}
	req := httptest.NewRequest(http.MethodGet, "/x?range="+strings.Join(parts, ","), nil)
	got, err := queryFloatList(req, "range")
	if err != nil || len(got) != maxQueryListItems {
		t.Fatalf("expected %d values, got %d, %v", maxQueryListItems, len(got), err)
	}

	req = httptest.NewRequest(http.MethodGet, "/x?range="+strings.Join(append(parts, "99"), ","), nil)
	if _, err := queryFloatList(req, "range"); err == nil || !strings.Contains(err.Error(), "at most 20") {
		t.Errorf("expected cap error, got %v", err)
	}
}

func TestWriteJSON_EncodeFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusOK, map[string]float64{"value": math.NaN()})

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "failed to encode response") {
		t.Errorf("expected error body, got %q", rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON content type, got %q", ct)
	}
}

func TestWriteJSON_Success(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, map[string]int{"n": 1})

	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != `{"n":1}` {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}

func TestRequireMethod(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/health", nil)
	rr := httptest.NewRecorder()

	if RequireMethod(rr, req, http.MethodGet, http.MethodHead) {
		t.Fatal("expected POST to be rejected")
	}
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rr.Code)
	}
	if allow := rr.Header().Get("Allow"); allow != "GET, HEAD" {
		t.Errorf("expected Allow=GET, HEAD, got %q", allow)
	}
}

func TestDecodeJSON_Invalid(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/math/add", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()

	var v map[string]interface{}
	if DecodeJSON(rr, req, &v) {
		t.Fatal("expected decode to fail")
	}
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rr.Code)
	}
}
