package contacts

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/waffle/pantry/storage"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/Foragefoxoffice/Cotco-backend/internal/app/system/uploads"
	"github.com/Foragefoxoffice/Cotco-backend/internal/domain/models"
	"github.com/Foragefoxoffice/Cotco-backend/internal/testutil"
)

func newRouter(t *testing.T, db *mongo.Database) http.Handler {
	t.Helper()
	backend, err := storage.NewLocal(storage.LocalConfig{
		BasePath: t.TempDir(),
		BaseURL:  uploads.URLPrefix,
	})
	if err != nil {
		t.Fatalf("local storage: %v", err)
	}
	h := NewHandler(db, uploads.New(backend, zap.NewNop()), zap.NewNop())
	protect := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, testutil.WithPrincipal(r, testutil.SuperAdmin()))
		})
	}
	return Routes(h, protect)
}

func validFields() map[string]string {
	return map[string]string{
		"name":    "Nguyen Van A",
		"company": "ACME Textiles",
		"email":   "buyer@acme.example",
		"phone":   "+84 912 345 678",
		"product": "cotton",
		"message": "We would like a quotation for two containers of cotton.",
	}
}

func TestCreatePublicAndCORS(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newRouter(t, db)

	body, ctype := testutil.MultipartForm(t, validFields(), nil)
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d (body %s)", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("CORS origin header: got %q, want *", got)
	}

	// Preflight succeeds without a body.
	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight status: got %d, want %d", rec.Code, http.StatusNoContent)
	}
}

func TestCreateWithAttachment(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newRouter(t, db)

	body, ctype := testutil.MultipartForm(t, validFields(), map[string]string{"file": "quote.pdf"})
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d (body %s)", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data models.ContactEntry `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasPrefix(resp.Data.FileURL, uploads.URLPrefix+"/contacts/") {
		t.Errorf("file url: got %q", resp.Data.FileURL)
	}
	if !strings.HasSuffix(resp.Data.FileURL, "quote.pdf") {
		t.Errorf("file url should keep the original name: %q", resp.Data.FileURL)
	}
}

func TestCreateValidationError(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newRouter(t, db)

	fields := validFields()
	fields["message"] = "too short"
	body, ctype := testutil.MultipartForm(t, fields, nil)
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d (body %s)", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Message must be at least 20 characters") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestListAndDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newRouter(t, db)

	body, ctype := testutil.MultipartForm(t, validFields(), nil)
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status: got %d", rec.Code)
	}
	var created struct {
		Data models.ContactEntry `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "buyer@acme.example") {
		t.Errorf("list: got %d %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodDelete, "/"+created.Data.ID.Hex(), nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Contact deleted successfully") {
		t.Errorf("delete: got %d %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodDelete, "/"+created.Data.ID.Hex(), nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}
