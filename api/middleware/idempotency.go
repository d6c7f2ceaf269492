package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lamuse/classtee-backend/api/responses"
	pkgerrors "github.com/lamuse/classtee-backend/pkg/errors"
	"github.com/lamuse/classtee-backend/pkg/logger"
	pkgredis "github.com/lamuse/classtee-backend/pkg/redis"
)

const (
	idempotencyHeader      = "Idempotency-Key"
	replayedHeader         = "Idempotent-Replayed"
	maxIdempotencyKeyBytes = 128

	// ConfirmIdempotencyTTL bounds how long a confirmed checkout replays.
	ConfirmIdempotencyTTL = 24 * time.Hour
)

// replay is what gets stored per key: enough to answer a retry byte for byte.
type replay struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type,omitempty"`
	Body        string `json:"body"`
	Fingerprint string `json:"fingerprint"`
}

// Idempotency guards a single route. The Idempotency-Key header is required;
// a repeated key with the same body replays the stored response, a repeated
// key with a different body is rejected. Responses >= 400 are not stored so
// the shopper can retry a failed confirmation with the same key.
func Idempotency(store pkgredis.IdempotencyStore, ttl time.Duration, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if store == nil {
				next.ServeHTTP(w, r)
				return
			}
			ctx := r.Context()

			idemKey, err := idempotencyKeyFrom(r)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}

			fingerprint, err := fingerprintBody(r)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read request"))
				return
			}

			key := store.IdempotencyKey(r.Method+"|"+r.URL.Path, idemKey)
			stored, err := lookupReplay(ctx, store, key)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			if stored != nil {
				if stored.Fingerprint != fingerprint {
					responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeIdempotency, "idempotency key reused with different request body"))
					return
				}
				stored.writeTo(w)
				return
			}

			capture := &responseCapture{ResponseWriter: w}
			next.ServeHTTP(capture, r)

			status := capture.statusOrOK()
			if status >= http.StatusBadRequest {
				return
			}
			persistReplay(ctx, store, logg, key, ttl, replay{
				Status:      status,
				ContentType: capture.Header().Get("Content-Type"),
				Body:        base64.StdEncoding.EncodeToString(capture.body.Bytes()),
				Fingerprint: fingerprint,
			})
		})
	}
}

func idempotencyKeyFrom(r *http.Request) (string, error) {
	key := strings.TrimSpace(r.Header.Get(idempotencyHeader))
	switch {
	case key == "":
		return "", pkgerrors.New(pkgerrors.CodeValidation, "Idempotency-Key header required")
	case len(key) > maxIdempotencyKeyBytes:
		return "", pkgerrors.New(pkgerrors.CodeValidation, "Idempotency-Key header too long")
	}
	return key, nil
}

// fingerprintBody hashes the body and rewinds it for the next handler.
func fingerprintBody(r *http.Request) (string, error) {
	if r.Body == nil {
		sum := sha256.Sum256(nil)
		return base64.StdEncoding.EncodeToString(sum[:]), nil
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return "", err
	}
	r.Body = io.NopCloser(bytes.NewReader(body))
	sum := sha256.Sum256(body)
	return base64.StdEncoding.EncodeToString(sum[:]), nil
}

func lookupReplay(ctx context.Context, store pkgredis.IdempotencyStore, key string) (*replay, error) {
	raw, err := store.Get(ctx, key)
	if pkgredis.IsNil(err) || (err == nil && raw == "") {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check idempotency")
	}
	var stored replay
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode idempotency record")
	}
	return &stored, nil
}

func persistReplay(ctx context.Context, store pkgredis.IdempotencyStore, logg *logger.Logger, key string, ttl time.Duration, rec replay) {
	payload, err := json.Marshal(rec)
	if err == nil {
		// The response is already on the wire; a canceled request must not lose the record.
		_, err = store.SetNX(context.WithoutCancel(ctx), key, string(payload), ttl)
	}
	if err != nil && logg != nil {
		logg.Error(ctx, "idempotency.persist_failed", err)
	}
}

func (rp *replay) writeTo(w http.ResponseWriter) {
	if rp.ContentType != "" {
		w.Header().Set("Content-Type", rp.ContentType)
	}
	w.Header().Set(replayedHeader, "true")
	w.WriteHeader(rp.Status)
	if body, err := base64.StdEncoding.DecodeString(rp.Body); err == nil {
		_, _ = w.Write(body)
	}
}

type responseCapture struct {
	http.ResponseWriter
	body   bytes.Buffer
	status int
}

func (r *responseCapture) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseCapture) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseCapture) statusOrOK() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}
