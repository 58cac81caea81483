// Package auth issues and verifies the JWTs that protect the admin API.
//
// A token carries the user's ID and role ID (claims "uid" and "rid") and is
// accepted either as an Authorization bearer header or as the "token"
// httpOnly cookie the login handler sets.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Foragefoxoffice/Cotco-backend/internal/domain/models"
)

// CookieName is the auth cookie the login handler sets.
const CookieName = "token"

// DefaultExpiry is the token lifetime when none is configured.
const DefaultExpiry = 30 * 24 * time.Hour

var (
	ErrNoToken      = errors.New("no auth token in request")
	ErrInvalidToken = errors.New("invalid or expired auth token")
)

// Claims is the verified identity a token carries.
type Claims struct {
	UserID primitive.ObjectID
	RoleID primitive.ObjectID
}

// Manager signs and verifies tokens and owns the auth cookie settings.
type Manager struct {
	secret []byte
	expiry time.Duration
	secure bool
	logger *zap.Logger
}

// NewManager builds a Manager. secret must be at least 32 characters when
// secure (production) mode is on; in dev mode a weak secret is allowed with
// a warning.
func NewManager(secret string, expiry time.Duration, secure bool, logger *zap.Logger) (*Manager, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty; provide >=32 random chars")
	}
	if len(secret) < 32 {
		if secure {
			return nil, errors.New("jwt secret is too weak for production; provide >=32 random chars")
		}
		logger.Warn("jwt secret is weak; 32+ random chars required in production",
			zap.Int("length", len(secret)))
	}
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	return &Manager{secret: []byte(secret), expiry: expiry, secure: secure, logger: logger}, nil
}

// Expiry returns the configured token lifetime.
func (m *Manager) Expiry() time.Duration { return m.expiry }

// Issue signs a token for the given user and role.
func (m *Manager) Issue(userID, roleID primitive.ObjectID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"uid": userID.Hex(),
		"rid": roleID.Hex(),
		"iat": now.Unix(),
		"exp": now.Add(m.expiry).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify parses and validates a token string.
func (m *Manager) Verify(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	uid, _ := mc["uid"].(string)
	rid, _ := mc["rid"].(string)

	userID, err := primitive.ObjectIDFromHex(uid)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}
	roleID, err := primitive.ObjectIDFromHex(rid)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}
	return Claims{UserID: userID, RoleID: roleID}, nil
}

// TokenFromRequest extracts the raw token from the Authorization header or
// the auth cookie.
func TokenFromRequest(r *http.Request) (string, error) {
	if h := r.Header.Get("Authorization"); h != "" {
		if tok, ok := strings.CutPrefix(h, "Bearer "); ok && tok != "" {
			return tok, nil
		}
	}
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value, nil
	}
	return "", ErrNoToken
}

// SetCookie writes the auth cookie alongside the JSON token response so
// browser clients stay signed in without storing the token themselves.
func (m *Manager) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(m.expiry),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the auth cookie (logout).
func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| Request context                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

type ctxKey int

const userCtxKey ctxKey = iota

// Principal is the authenticated user plus their resolved role, as injected
// into the request context by Protect.
type Principal struct {
	User *models.User
	Role *models.Role
}

// Principals loads the user and role behind a verified token. It returns an
// error when the user no longer exists or is inactive.
type Principals interface {
	Principal(ctx context.Context, userID, roleID primitive.ObjectID) (*Principal, error)
}

// CurrentUser returns the authenticated principal from the request context.
func CurrentUser(r *http.Request) (*Principal, bool) {
	p, ok := r.Context().Value(userCtxKey).(*Principal)
	return p, ok && p != nil
}

// WithPrincipal returns a request whose context carries p. Exposed for
// handler tests.
func WithPrincipal(r *http.Request, p *Principal) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userCtxKey, p))
}
