package httputil

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	dErrors "vetgate/pkg/domain-errors"
)

func TestWriteError(t *testing.T) {
	t.Run("internal error omits description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeInternal, "db failed"))

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
		}

		var body map[string]string
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body["error"] != "internal_error" {
			t.Fatalf("expected error code internal_error, got %q", body["error"])
		}
		if _, ok := body["error_description"]; ok {
			t.Fatalf("expected error_description to be omitted for internal errors")
		}
	})

	t.Run("bad request includes description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid input"))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}

		var body map[string]string
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body["error"] != "bad_request" {
			t.Fatalf("expected error code bad_request, got %q", body["error"])
		}
		if body["error_description"] != "invalid input" {
			t.Fatalf("expected error_description to be returned for bad request")
		}
	})
}

type fakeRequest struct {
	Name string `json:"name"`
}

func (r *fakeRequest) Validate() error {
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	return nil
}

func TestDecodeAndPrepare(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	newReq := func(body string) *http.Request {
		return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	}

	t.Run("decodes and validates", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := newReq(`{"name":"ok"}`)

		req, ok := DecodeAndPrepare[fakeRequest](w, r, logger, r.Context(), "req-1")
		if !ok {
			t.Fatal("expected decode to succeed")
		}
		if req.Name != "ok" {
			t.Fatalf("expected decoded name, got %q", req.Name)
		}
	})

	t.Run("malformed body writes bad_request", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := newReq(`{not json`)

		_, ok := DecodeAndPrepare[fakeRequest](w, r, logger, r.Context(), "req-2")
		if ok {
			t.Fatal("expected decode to fail")
		}
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}
	})

	t.Run("validation failure writes the coded error", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := newReq(`{}`)

		_, ok := DecodeAndPrepare[fakeRequest](w, r, logger, r.Context(), "req-3")
		if ok {
			t.Fatal("expected validation to fail")
		}
		var body map[string]string
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body["error"] != "validation" {
			t.Fatalf("expected error code validation, got %q", body["error"])
		}
	})
}
