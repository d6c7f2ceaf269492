package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/lamuse/classtee-backend/pkg/errors"
	"github.com/lamuse/classtee-backend/pkg/redis/redistest"
)

const confirmPath = "/api/v1/checkout/o-1/confirm"

func confirmRequest(key, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, confirmPath, strings.NewReader(body))
	if key != "" {
		req.Header.Set(idempotencyHeader, key)
	}
	return req
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("parse error response: %v", err)
	}
	return payload.Error.Code
}

func TestIdempotencyMiddlewareRequiresHeader(t *testing.T) {
	mw := Idempotency(redistest.NewMemory(), ConfirmIdempotencyTTL, nil)
	handlerCalled := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
	})

	resp := httptest.NewRecorder()
	mw(handler).ServeHTTP(resp, confirmRequest("", `{}`))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if handlerCalled {
		t.Fatalf("handler should not run without idempotency key")
	}

	resp = httptest.NewRecorder()
	mw(handler).ServeHTTP(resp, confirmRequest(strings.Repeat("k", maxIdempotencyKeyBytes+1), `{}`))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for oversized key got %d", resp.Code)
	}
}

func TestIdempotencyMiddlewarePassesThroughWithoutStore(t *testing.T) {
	mw := Idempotency(nil, ConfirmIdempotencyTTL, nil)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	resp := httptest.NewRecorder()
	mw(handler).ServeHTTP(resp, confirmRequest("", `{}`))
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected pass-through, got %d", resp.Code)
	}
}

func TestIdempotencyMiddlewareReplaysStoredResponse(t *testing.T) {
	mw := Idempotency(redistest.NewMemory(), ConfirmIdempotencyTTL, nil)
	var calls int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"data":{"order_id":"o-1"}}`))
	})

	resp := httptest.NewRecorder()
	mw(handler).ServeHTTP(resp, confirmRequest("abc", `{}`))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected first response 200 got %d", resp.Code)
	}
	if resp.Header().Get(replayedHeader) != "" {
		t.Fatalf("first response must not be marked as replayed")
	}

	rec := httptest.NewRecorder()
	mw(handler).ServeHTTP(rec, confirmRequest("abc", `{}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected replay status 200 got %d", rec.Code)
	}
	if rec.Header().Get("Content-Type") != "application/json" {
		t.Fatalf("expected content-type header preserved")
	}
	if rec.Header().Get(replayedHeader) != "true" {
		t.Fatalf("expected replay marker header")
	}
	if strings.TrimSpace(rec.Body.String()) != `{"data":{"order_id":"o-1"}}` {
		t.Fatalf("expected stored body got %s", rec.Body.String())
	}
	if calls != 1 {
		t.Fatalf("handler executed %d times, expected 1", calls)
	}
}

func TestIdempotencyMiddlewareScopesKeysByPath(t *testing.T) {
	mw := Idempotency(redistest.NewMemory(), ConfirmIdempotencyTTL, nil)
	var calls int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	mw(handler).ServeHTTP(httptest.NewRecorder(), confirmRequest("same", `{}`))
	other := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/o-2/confirm", strings.NewReader(`{}`))
	other.Header.Set(idempotencyHeader, "same")
	mw(handler).ServeHTTP(httptest.NewRecorder(), other)

	if calls != 2 {
		t.Fatalf("expected separate orders to run independently, handler ran %d times", calls)
	}
}

func TestIdempotencyMiddlewareDoesNotStoreFailures(t *testing.T) {
	mw := Idempotency(redistest.NewMemory(), ConfirmIdempotencyTTL, nil)
	var calls int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	for i := 0; i < 2; i++ {
		mw(handler).ServeHTTP(httptest.NewRecorder(), confirmRequest("retry-me", `{}`))
	}
	if calls != 2 {
		t.Fatalf("expected failed confirmation to be retried, handler ran %d times", calls)
	}
}

func TestIdempotencyMiddlewareDetectsBodyChange(t *testing.T) {
	mw := Idempotency(redistest.NewMemory(), ConfirmIdempotencyTTL, nil)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	mw(handler).ServeHTTP(httptest.NewRecorder(), confirmRequest("xyz", `{"a":1}`))

	resp := httptest.NewRecorder()
	mw(handler).ServeHTTP(resp, confirmRequest("xyz", `{"a":2}`))

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}
	if code := errorCode(t, resp); code != string(pkgerrors.CodeIdempotency) {
		t.Fatalf("expected error code %s got %s", pkgerrors.CodeIdempotency, code)
	}
}

func TestIdempotencyMiddlewareStoreFailureIsDependencyError(t *testing.T) {
	store := redistest.NewMemory()
	store.Err = errors.New("connection refused")
	mw := Idempotency(store, ConfirmIdempotencyTTL, nil)
	handlerCalled := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
	})

	resp := httptest.NewRecorder()
	mw(handler).ServeHTTP(resp, confirmRequest("abc", `{}`))
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
	if handlerCalled {
		t.Fatalf("handler should not run when the idempotency store is down")
	}
	if code := errorCode(t, resp); code != string(pkgerrors.CodeDependency) {
		t.Fatalf("expected %s got %s", pkgerrors.CodeDependency, code)
	}
}
