package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Foragefoxoffice/Cotco-backend/internal/domain/models"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newManager(t *testing.T, expiry time.Duration) *Manager {
	t.Helper()
	m, err := NewManager(testSecret, expiry, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

func TestNewManagerSecretRules(t *testing.T) {
	if _, err := NewManager("", time.Hour, false, zap.NewNop()); err == nil {
		t.Error("empty secret should be rejected")
	}
	if _, err := NewManager("short", time.Hour, true, zap.NewNop()); err == nil {
		t.Error("weak secret should be rejected in secure mode")
	}
	// Dev mode warns but accepts a weak secret.
	if _, err := NewManager("short", time.Hour, false, zap.NewNop()); err != nil {
		t.Errorf("weak secret in dev mode: %v", err)
	}

	m := newManager(t, 0)
	if m.Expiry() != DefaultExpiry {
		t.Errorf("zero expiry should fall back to default, got %v", m.Expiry())
	}
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	m := newManager(t, time.Hour)
	userID := primitive.NewObjectID()
	roleID := primitive.NewObjectID()

	tok, err := m.Issue(userID, roleID)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	claims, err := m.Verify(tok)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != userID || claims.RoleID != roleID {
		t.Errorf("claims: got %+v", claims)
	}
}

func TestVerifyRejections(t *testing.T) {
	m := newManager(t, time.Hour)

	// NewManager replaces a non-positive expiry with the default, so build
	// the expired-token signer directly.
	expired := &Manager{secret: []byte(testSecret), expiry: -time.Minute, logger: zap.NewNop()}
	tok, err := expired.Issue(primitive.NewObjectID(), primitive.NewObjectID())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := m.Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired token: got %v, want %v", err, ErrInvalidToken)
	}

	other, err := NewManager("another-secret-another-secret-xx", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	tok, err = other.Issue(primitive.NewObjectID(), primitive.NewObjectID())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := m.Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("wrong signature: got %v, want %v", err, ErrInvalidToken)
	}

	if _, err := m.Verify("not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("garbage token: got %v, want %v", err, ErrInvalidToken)
	}
}

func TestTokenFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, err := TokenFromRequest(req); !errors.Is(err, ErrNoToken) {
		t.Errorf("bare request: got %v, want %v", err, ErrNoToken)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer abc123")
	if tok, err := TokenFromRequest(req); err != nil || tok != "abc123" {
		t.Errorf("bearer header: got %q, %v", tok, err)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "cookie-token"})
	if tok, err := TokenFromRequest(req); err != nil || tok != "cookie-token" {
		t.Errorf("cookie: got %q, %v", tok, err)
	}

	// The header wins when both are present.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer header-token")
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "cookie-token"})
	if tok, _ := TokenFromRequest(req); tok != "header-token" {
		t.Errorf("precedence: got %q, want header-token", tok)
	}
}

func TestCookieAttributes(t *testing.T) {
	m := newManager(t, time.Hour)

	rec := httptest.NewRecorder()
	m.SetCookie(rec, "tok")
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies: got %d, want 1", len(cookies))
	}
	c := cookies[0]
	if c.Name != CookieName || c.Value != "tok" || !c.HttpOnly || c.Path != "/" {
		t.Errorf("set cookie: %+v", c)
	}
	if c.SameSite != http.SameSiteLaxMode {
		t.Errorf("samesite: got %v", c.SameSite)
	}

	rec = httptest.NewRecorder()
	m.ClearCookie(rec)
	cookies = rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies: got %d, want 1", len(cookies))
	}
	c = cookies[0]
	if c.Value != "" || c.MaxAge != -1 {
		t.Errorf("clear cookie should expire the token: %+v", c)
	}
}

// stubPrincipals resolves every lookup to a fixed principal, or fails when
// err is set.
type stubPrincipals struct {
	p   *Principal
	err error
}

func (s stubPrincipals) Principal(ctx context.Context, userID, roleID primitive.ObjectID) (*Principal, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.p, nil
}

func TestProtect(t *testing.T) {
	m := newManager(t, time.Hour)
	userID := primitive.NewObjectID()
	roleID := primitive.NewObjectID()
	principal := &Principal{
		User: &models.User{ID: userID},
		Role: &models.Role{ID: roleID},
	}

	var seen *Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = CurrentUser(r)
		w.WriteHeader(http.StatusOK)
	})

	tok, err := m.Issue(userID, roleID)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	handler := m.Protect(stubPrincipals{p: principal})(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid token: got %d (body %s)", rec.Code, rec.Body.String())
	}
	if seen == nil || seen.User.ID != userID {
		t.Errorf("principal not injected: %+v", seen)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized || !strings.Contains(rec.Body.String(), "Not authorized to access this route") {
		t.Errorf("missing token: got %d %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad token: got %d", rec.Code)
	}

	rejecting := m.Protect(stubPrincipals{err: errors.New("user inactive")})(next)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec = httptest.NewRecorder()
	rejecting.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("rejected principal: got %d", rec.Code)
	}
}
