package router

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shandysiswandi/nova/internal/pkg/config"
	"github.com/shandysiswandi/nova/internal/pkg/goerror"
	"github.com/shandysiswandi/nova/internal/pkg/instrument"
	"github.com/shandysiswandi/nova/internal/pkg/jwt"
)

type fakeConfig struct {
	config.Config
	arrays map[string][]string
}

func (f *fakeConfig) GetArray(key string) []string { return f.arrays[key] }

type fakeJWT struct {
	claims jwt.Claims
	err    error
}

func (f *fakeJWT) Generate(string, string) (string, error) { return "token", nil }

func (f *fakeJWT) Verify(string) (jwt.Claims, error) { return f.claims, f.err }

type fakeUID struct{}

func (fakeUID) Generate() string { return "generated-cid" }

func newTestRouter(t *testing.T, verifier jwt.JWT, maintenance ...string) *Router {
	t.Helper()

	return NewRouter(Config{
		Config:     &fakeConfig{arrays: map[string][]string{"app.maintenance.endpoints": maintenance}},
		UUID:       fakeUID{},
		JWT:        verifier,
		Instrument: instrument.NewNoop(),
	})
}

func do(r *Router, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not json: %v", err)
	}
	return body
}

func TestPublicEndpointSkipsAuthentication(t *testing.T) {
	r := newTestRouter(t, &fakeJWT{err: jwt.ErrInvalidToken})
	r.POST("/api/v1/auth/login", func(_ *Request) (any, error) {
		return map[string]string{"access_token": "abc"}, nil
	})

	rec := do(r, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader("{}")))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 without a bearer token", rec.Code)
	}

	body := decodeBody(t, rec)
	data, _ := body["data"].(map[string]any)
	if data["access_token"] != "abc" {
		t.Fatalf("data = %v, want the handler payload under data", body)
	}
}

func TestProtectedEndpointRequiresBearer(t *testing.T) {
	r := newTestRouter(t, &fakeJWT{})
	r.GET("/api/v1/auth/profile", func(_ *Request) (any, error) {
		t.Fatal("handler must not run without credentials")
		return nil, nil
	})

	rec := do(r, httptest.NewRequest(http.MethodGet, "/api/v1/auth/profile", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if body := decodeBody(t, rec); body["message"] != "Authentication required" {
		t.Fatalf("message = %v, want Authentication required", body["message"])
	}
}

func TestProtectedEndpointRejectsBadToken(t *testing.T) {
	r := newTestRouter(t, &fakeJWT{err: jwt.ErrTokenExpired})
	r.GET("/api/v1/auth/profile", func(_ *Request) (any, error) { return nil, nil })

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer stale")

	rec := do(r, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if body := decodeBody(t, rec); body["message"] != "Invalid or expired token" {
		t.Fatalf("message = %v, want Invalid or expired token", body["message"])
	}
}

func TestProtectedEndpointInjectsClaims(t *testing.T) {
	claims := jwt.Claims{UserID: "user-1", Username: "ada@example.com"}
	r := newTestRouter(t, &fakeJWT{claims: claims})

	r.GET("/api/v1/auth/profile", func(req *Request) (any, error) {
		auth := jwt.GetAuth(req.Context())
		if auth == nil || auth.UserID != "user-1" {
			t.Fatalf("claims in context = %+v, want user-1", auth)
		}
		return map[string]string{"user_id": auth.UserID}, nil
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer good")

	if rec := do(r, req); rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestHandlerErrorMapsToStatus(t *testing.T) {
	r := newTestRouter(t, &fakeJWT{})
	r.POST("/api/v1/account/otp/send", func(_ *Request) (any, error) {
		return nil, goerror.NewBusiness("user not found", goerror.CodeNotFound)
	})

	rec := do(r, httptest.NewRequest(http.MethodPost, "/api/v1/account/otp/send", strings.NewReader("{}")))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if body := decodeBody(t, rec); body["message"] != "user not found" {
		t.Fatalf("message = %v, want user not found", body["message"])
	}
}

func TestUnknownErrorIsHidden(t *testing.T) {
	r := newTestRouter(t, &fakeJWT{})
	r.POST("/api/v1/account/otp/send", func(_ *Request) (any, error) {
		return nil, errors.New("pq: column does not exist")
	})

	rec := do(r, httptest.NewRequest(http.MethodPost, "/api/v1/account/otp/send", strings.NewReader("{}")))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if body := decodeBody(t, rec); body["message"] != "Internal server error" {
		t.Fatalf("message = %v, internals must not leak", body["message"])
	}
}

func TestMaintenanceBlocksEndpoint(t *testing.T) {
	r := newTestRouter(t, &fakeJWT{}, "/api/v1/auth/login")
	r.POST("/api/v1/auth/login", func(_ *Request) (any, error) {
		t.Fatal("handler must not run during maintenance")
		return nil, nil
	})

	rec := do(r, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader("{}")))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestCorrelationIDEchoedAndGenerated(t *testing.T) {
	r := newTestRouter(t, &fakeJWT{})
	r.POST("/api/v1/auth/login", func(_ *Request) (any, error) { return nil, nil })

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader("{}"))
	req.Header.Set(HeaderCorrelationID, "cid-123")
	if got := do(r, req).Header().Get(HeaderCorrelationID); got != "cid-123" {
		t.Fatalf("correlation id = %q, want the caller's cid-123", got)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader("{}"))
	if got := do(r, req).Header().Get(HeaderCorrelationID); got != "generated-cid" {
		t.Fatalf("correlation id = %q, want a generated one", got)
	}
}

func TestUnknownRoute(t *testing.T) {
	r := newTestRouter(t, &fakeJWT{})

	rec := do(r, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if body := decodeBody(t, rec); body["message"] != "endpoint not found" {
		t.Fatalf("message = %v, want endpoint not found", body["message"])
	}
}
