package roles

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	rolestore "github.com/Foragefoxoffice/Cotco-backend/internal/app/store/roles"
	userstore "github.com/Foragefoxoffice/Cotco-backend/internal/app/store/users"
	"github.com/Foragefoxoffice/Cotco-backend/internal/app/system/authutil"
	"github.com/Foragefoxoffice/Cotco-backend/internal/domain/models"
	"github.com/Foragefoxoffice/Cotco-backend/internal/testutil"
)

func newRouter(db *mongo.Database) http.Handler {
	h := NewHandler(db, zap.NewNop())
	protect := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, testutil.WithPrincipal(r, testutil.SuperAdmin()))
		})
	}
	return Routes(h, protect)
}

func TestCreateAndDuplicateName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newRouter(db)

	body := `{"name":"Editor","description":"Content editors","permissions":{"blogs":["read","write"]},"status":"Active"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status: got %d (body %s)", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("duplicate create status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestUpdateGuardsSuperAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newRouter(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	superRole, err := rolestore.New(db).EnsureSuperAdmin(ctx)
	if err != nil {
		t.Fatalf("ensure super admin role: %v", err)
	}

	body := `{"name":"Renamed","permissions":{}}`
	req := httptest.NewRequest(http.MethodPut, "/"+superRole.ID.Hex(), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("super admin update status: got %d, want %d (body %s)", rec.Code, http.StatusForbidden, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodDelete, "/"+superRole.ID.Hex(), nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("super admin delete status: got %d, want %d (body %s)", rec.Code, http.StatusForbidden, rec.Body.String())
	}
}

func TestDeleteAssignedRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newRouter(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	role, err := rolestore.New(db).Create(ctx, models.Role{Name: "Editor", Status: models.StatusActive})
	if err != nil {
		t.Fatalf("create role: %v", err)
	}
	hash, err := authutil.HashPassword("Sup3rSecret!")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if _, err := userstore.New(db).Create(ctx, models.User{
		Email:        "member@test.com",
		PasswordHash: hash,
		RoleID:       role.ID,
		Status:       models.StatusActive,
	}); err != nil {
		t.Fatalf("create user: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/"+role.ID.Hex(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "Role is assigned to users") {
		t.Fatalf("assigned delete: got %d %s", rec.Code, rec.Body.String())
	}

	// Once the member is gone the role deletes normally.
	u, err := userstore.New(db).GetByEmail(ctx, "member@test.com")
	if err != nil {
		t.Fatalf("get member: %v", err)
	}
	if _, err := userstore.New(db).Delete(ctx, u.ID); err != nil {
		t.Fatalf("delete member: %v", err)
	}
	req = httptest.NewRequest(http.MethodDelete, "/"+role.ID.Hex(), nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("delete status: got %d (body %s)", rec.Code, rec.Body.String())
	}
}

func TestGetNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newRouter(db)

	req := httptest.NewRequest(http.MethodGet, "/ffffffffffffffffffffffff", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "Role not found") {
		t.Errorf("got %d %s", rec.Code, rec.Body.String())
	}
}
