package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/utils"
)

const testSecret = "mw-test-secret"

// call runs a request through TokenAuth in front of a handler that records
// whether it was reached and what user id the gate attached.
func call(t *testing.T, header string) (rec *httptest.ResponseRecorder, reached bool, uid interface{}) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/movies", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec = httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := TokenAuth(testSecret, 0)(func(c echo.Context) error {
		reached = true
		uid = c.Get("user_id")
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec, reached, uid
}

func TestTokenAuthMissing(t *testing.T) {
	rec, reached, _ := call(t, "")
	if reached {
		t.Error("handler must not run without a token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No token") {
		t.Errorf("body = %q, want No token error", rec.Body.String())
	}
}

func TestTokenAuthInvalid(t *testing.T) {
	expired, err := utils.NewSessionToken(testSecret, 5, -1)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	foreign, err := utils.NewSessionToken("another-secret", 5, 60)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	for name, header := range map[string]string{
		"garbage":      "definitely-not-a-jwt",
		"expired":      expired.Token,
		"wrong secret": foreign.Token,
	} {
		t.Run(name, func(t *testing.T) {
			rec, reached, _ := call(t, header)
			if reached {
				t.Error("handler must not run with an invalid token")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), "Invalid token") {
				t.Errorf("body = %q, want Invalid token error", rec.Body.String())
			}
		})
	}
}

func TestTokenAuthValid(t *testing.T) {
	st, err := utils.NewSessionToken(testSecret, 77, 60)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Bare token, as the admin console sends it.
	rec, reached, uid := call(t, st.Token)
	if !reached {
		t.Fatal("handler should run with a valid token")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if got, ok := uid.(uint64); !ok || got != 77 {
		t.Errorf("user_id = %v, want 77", uid)
	}

	// Bearer prefix is accepted too.
	_, reached, uid = call(t, "Bearer "+st.Token)
	if !reached {
		t.Fatal("handler should run with a Bearer token")
	}
	if got, ok := uid.(uint64); !ok || got != 77 {
		t.Errorf("user_id = %v, want 77", uid)
	}
}

func TestTokenAuthLeeway(t *testing.T) {
	st, err := utils.NewSessionToken(testSecret, 8, -1) // expired a minute ago
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/movies", nil)
	req.Header.Set("Authorization", st.Token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	h := TokenAuth(testSecret, 2*time.Minute)(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !reached {
		t.Error("a just-expired token should pass inside the configured leeway")
	}
}
