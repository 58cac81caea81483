package machines

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

func postForm(t *testing.T, router http.Handler, method, path string, fields, files map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	body, ctype := testutil.MultipartForm(t, fields, files)
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func createCategory(t *testing.T, router http.Handler, slug string) models.MachineCategory {
	t.Helper()
	rec := postForm(t, router, http.MethodPost, "/categories", map[string]string{
		"name": `{"en":"Spinning","vi":"Kéo sợi"}`,
		"slug": slug,
	}, map[string]string{"image": "spinning.jpg"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create category: got %d (body %s)", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data models.MachineCategory `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp.Data
}

func TestCreateCategorySlugConflict(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newRouter(t, db)

	cat := createCategory(t, router, "spinning")
	if cat.Name.EN != "Spinning" || cat.Name.VI != "Kéo sợi" {
		t.Errorf("name: got %+v", cat.Name)
	}
	if !strings.HasPrefix(cat.Image, uploads.URLPrefix+"/categories/") {
		t.Errorf("image url: got %q", cat.Image)
	}

	rec := postForm(t, router, http.MethodPost, "/categories", map[string]string{
		"name": `{"en":"Other"}`,
		"slug": "spinning",
	}, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate slug: got %d, want %d", rec.Code, http.StatusConflict)
	}
	if !strings.Contains(rec.Body.String(), "Slug already exists. Please use a unique slug.") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestUpdateCategoryKeepsUnsentFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newRouter(t, db)

	cat := createCategory(t, router, "weaving")

	rec := postForm(t, router, http.MethodPut, "/categories/"+cat.ID.Hex(), map[string]string{
		"description": `{"en":"Looms and accessories","vi":"Máy dệt"}`,
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: got %d (body %s)", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data models.MachineCategory `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Name.EN != "Spinning" {
		t.Errorf("name should survive a partial update: got %+v", resp.Data.Name)
	}
	if resp.Data.Description.EN != "Looms and accessories" {
		t.Errorf("description: got %+v", resp.Data.Description)
	}
	if resp.Data.Image != cat.Image {
		t.Errorf("image should survive: got %q, want %q", resp.Data.Image, cat.Image)
	}
}

func TestSectionTemplateLifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newRouter(t, db)

	rec := postForm(t, router, http.MethodPost, "/sections", map[string]string{
		"type":     models.SectionRichText,
		"title":    `{"en":"Overview","vi":"Tổng quan"}`,
		"richtext": `{"en":"<p>Details</p>"}`,
		"order":    "2",
		"isActive": "true",
	}, map[string]string{"image": "overview.png"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create section: got %d (body %s)", rec.Code, rec.Body.String())
	}
	var created struct {
		Data models.MachineSection `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	sec := created.Data
	if sec.Type != models.SectionRichText || sec.Order != 2 || !sec.IsActive {
		t.Errorf("section fields: %+v", sec.MachineSectionContent)
	}
	if sec.Title.VI != "Tổng quan" {
		t.Errorf("title: got %+v", sec.Title)
	}
	if !strings.HasPrefix(sec.Image, uploads.URLPrefix+"/sections/") || !strings.HasSuffix(sec.Image, "overview.png") {
		t.Errorf("image url: got %q", sec.Image)
	}

	req := httptest.NewRequest(http.MethodGet, "/sections", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Overview") {
		t.Errorf("list: got %d %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodDelete, "/sections/"+sec.ID.Hex(), nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Section deleted") {
		t.Errorf("delete: got %d %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodDelete, "/sections/"+sec.ID.Hex(), nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestCreatePageReconcilesSectionImages(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newRouter(t, db)

	cat := createCategory(t, router, "carding")

	sections := `[{
		"type": "imageLeft",
		"order": 1,
		"title": {"en": "Feeding unit"},
		"image": "sec0_image",
		"blocks": [{"title": {"en": "Motor"}, "image": "block0_image", "order": 1}]
	}]`
	rec := postForm(t, router, http.MethodPost, "/pages", map[string]string{
		"title":       `{"en":"TC 30i Card","vi":"Máy chải TC 30i"}`,
		"description": `{"en":"High production card"}`,
		"slug":        "tc-30i",
		"categoryId":  cat.ID.Hex(),
		"seo":         `{"metaTitle":"TC 30i","keywords":["card","spinning"]}`,
		"sections":    sections,
	}, map[string]string{
		"banner":       "banner.jpg",
		"sec0_image":   "feeding.png",
		"block0_image": "motor.png",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create page: got %d (body %s)", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data models.MachinePage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	p := resp.Data
	if p.Category != cat.ID {
		t.Errorf("category: got %s, want %s", p.Category.Hex(), cat.ID.Hex())
	}
	if !p.IsActive {
		t.Error("new pages should be active")
	}
	if !strings.HasPrefix(p.Banner, uploads.URLPrefix+"/pages/") || !strings.HasSuffix(p.Banner, "banner.jpg") {
		t.Errorf("banner url: got %q", p.Banner)
	}
	if len(p.Sections) != 1 {
		t.Fatalf("sections: got %d, want 1", len(p.Sections))
	}
	sec := p.Sections[0]
	if !strings.HasPrefix(sec.Image, uploads.URLPrefix+"/sections/") || !strings.HasSuffix(sec.Image, "feeding.png") {
		t.Errorf("section image should be the uploaded file, got %q", sec.Image)
	}
	if len(sec.Blocks) != 1 {
		t.Fatalf("blocks: got %d, want 1", len(sec.Blocks))
	}
	if !strings.HasPrefix(sec.Blocks[0].Image, uploads.URLPrefix+"/blocks/") || !strings.HasSuffix(sec.Blocks[0].Image, "motor.png") {
		t.Errorf("block image: got %q", sec.Blocks[0].Image)
	}
	if p.SEO.MetaTitle != "TC 30i" || len(p.SEO.Keywords) != 2 {
		t.Errorf("seo: got %+v", p.SEO)
	}
}

func TestUpdatePageJSONMergesLanguages(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newRouter(t, db)

	cat := createCategory(t, router, "combing")
	rec := postForm(t, router, http.MethodPost, "/pages", map[string]string{
		"title":      `{"en":"TCO 21","vi":"Máy chải kỹ TCO 21"}`,
		"slug":       "tco-21",
		"categoryId": cat.ID.Hex(),
	}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create page: got %d (body %s)", rec.Code, rec.Body.String())
	}
	var created struct {
		Data models.MachinePage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	// A JSON body carrying only one locale must not wipe the other.
	req := httptest.NewRequest(http.MethodPut, "/pages/"+created.Data.ID.Hex(),
		strings.NewReader(`{"title":{"vi":"Máy chải kỹ mới"}}`))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: got %d (body %s)", rec.Code, rec.Body.String())
	}
	var updated struct {
		Data models.MachinePage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if updated.Data.Title.EN != "TCO 21" {
		t.Errorf("english title should survive: got %+v", updated.Data.Title)
	}
	if updated.Data.Title.VI != "Máy chải kỹ mới" {
		t.Errorf("vietnamese title: got %+v", updated.Data.Title)
	}
}

func TestUpdatePageSlugConflict(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newRouter(t, db)

	cat := createCategory(t, router, "winding")
	for _, slug := range []string{"autoconer-x6", "autoconer-x5"} {
		rec := postForm(t, router, http.MethodPost, "/pages", map[string]string{
			"title":      `{"en":"Winder"}`,
			"slug":       slug,
			"categoryId": cat.ID.Hex(),
		}, nil)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create %s: got %d (body %s)", slug, rec.Code, rec.Body.String())
		}
	}

	req := httptest.NewRequest(http.MethodPut, "/pages/autoconer-x5",
		strings.NewReader(`{"slug":"autoconer-x6"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("slug conflict: got %d (body %s)", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Slug already in use") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestPagesByCategorySlug(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newRouter(t, db)

	spinning := createCategory(t, router, "spinning")
	weaving := createCategory(t, router, "weaving")
	for slug, cat := range map[string]models.MachineCategory{
		"ring-frame": spinning,
		"roving":     spinning,
		"rapier":     weaving,
	} {
		rec := postForm(t, router, http.MethodPost, "/pages", map[string]string{
			"title":      `{"en":"Machine"}`,
			"slug":       slug,
			"categoryId": cat.ID.Hex(),
		}, nil)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create %s: got %d", slug, rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/pages/category/spinning", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("list by category: got %d (body %s)", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data []struct {
			Slug     string                  `json:"slug"`
			Category *models.MachineCategory `json:"category"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("pages in spinning: got %d, want 2", len(resp.Data))
	}
	for _, p := range resp.Data {
		if p.Category == nil || p.Category.ID != spinning.ID {
			t.Errorf("page %s: category not populated: %+v", p.Slug, p.Category)
		}
	}

	req = httptest.NewRequest(http.MethodGet, "/pages/category/no-such-category", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown category: got %d, want %d", rec.Code, http.StatusNotFound)
	}

	// Single page fetch works by slug as well as by ID.
	req = httptest.NewRequest(http.MethodGet, "/pages/rapier", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), weaving.ID.Hex()) {
		t.Errorf("get by slug: got %d %s", rec.Code, rec.Body.String())
	}
}
