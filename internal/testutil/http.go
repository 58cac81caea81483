package testutil

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Foragefoxoffice/Cotco-backend/internal/app/system/auth"
	"github.com/Foragefoxoffice/Cotco-backend/internal/domain/models"
)

// SuperAdmin returns a principal carrying the Super Admin role, which
// bypasses every permission check.
func SuperAdmin() *auth.Principal {
	return &auth.Principal{
		User: &models.User{
			ID:     primitive.NewObjectID(),
			Email:  "admin@test.com",
			Status: models.StatusActive,
		},
		Role: &models.Role{
			ID:   primitive.NewObjectID(),
			Name: models.SuperAdminRoleName,
		},
	}
}

// WithPrincipal injects a principal into the request context, bypassing the
// token middleware for handler tests.
func WithPrincipal(r *http.Request, p *auth.Principal) *http.Request {
	return auth.WithPrincipal(r, p)
}

// MultipartForm builds a multipart request body. fields are form values;
// files maps a form key to an uploaded file name (content is the name
// itself, enough for handlers that only move bytes).
func MultipartForm(t *testing.T, fields map[string]string, files map[string]string) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write form field %q: %v", k, err)
		}
	}
	for key, name := range files {
		fw, err := mw.CreateFormFile(key, name)
		if err != nil {
			t.Fatalf("create form file %q: %v", key, err)
		}
		if _, err := io.WriteString(fw, name); err != nil {
			t.Fatalf("write form file %q: %v", key, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

// ResponseRecorder wraps httptest.ResponseRecorder with helper methods.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder creates a new ResponseRecorder.
func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t interface{ Errorf(string, ...any) }, expected int) {
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d", r.Code, expected)
	}
}

// AssertContains checks if the response body contains the expected string.
func (r *ResponseRecorder) AssertContains(t interface{ Errorf(string, ...any) }, expected string) {
	body := r.Body.String()
	if !strings.Contains(body, expected) {
		t.Errorf("response body does not contain %q", expected)
	}
}
