package pages

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/dalemusser/waffle/pantry/storage"
	"go.uber.org/zap"

	"github.com/Foragefoxoffice/Cotco-backend/internal/app/system/uploads"
	"github.com/Foragefoxoffice/Cotco-backend/internal/testutil"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	db := testutil.SetupTestDB(t)
	backend, err := storage.NewLocal(storage.LocalConfig{
		BasePath: t.TempDir(),
		BaseURL:  "http://localhost:8080/uploads",
	})
	if err != nil {
		t.Fatalf("init local storage: %v", err)
	}
	up := uploads.New(backend, zap.NewNop())
	return Routes(NewHandler(db, up, zap.NewNop()), nil)
}

func decodeBody(t *testing.T, body string) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal([]byte(body), &m); err != nil {
		t.Fatalf("decode response %q: %v", body, err)
	}
	return m
}

func sections(t *testing.T, doc any) map[string]any {
	t.Helper()
	m, ok := doc.(map[string]any)
	if !ok {
		t.Fatalf("document is %T, want object", doc)
	}
	s, ok := m["sections"].(map[string]any)
	if !ok {
		t.Fatalf("document has no sections: %v", m)
	}
	return s
}

func TestGetUnsavedPageReturnsShell(t *testing.T) {
	router := newTestRouter(t)

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/aboutpage/", nil))

	rec.AssertStatus(t, http.StatusOK)
	body := decodeBody(t, rec.Body.String())
	if body["success"] != true {
		t.Fatalf("success = %v", body["success"])
	}
	secs := sections(t, body["data"])
	hero, ok := secs["aboutHero"].(map[string]any)
	if !ok {
		t.Fatalf("aboutHero missing from shell: %v", secs)
	}
	title, ok := hero["aboutTitle"].(map[string]any)
	if !ok || title["en"] != "" || title["vi"] != "" {
		t.Errorf("aboutTitle = %v, want empty bilingual value", hero["aboutTitle"])
	}
	if _, ok := secs["aboutHistory"].([]any); !ok {
		t.Errorf("aboutHistory = %v, want empty list", secs["aboutHistory"])
	}
}

func TestUpdateMergesPostedSection(t *testing.T) {
	router := newTestRouter(t)

	form, contentType := testutil.MultipartForm(t,
		map[string]string{
			"aboutHero": `{"aboutTitle":{"en":"About us","vi":"Gioi thieu"}}`,
		},
		map[string]string{"aboutBannerFile": "banner.jpg"},
	)
	req := httptest.NewRequest(http.MethodPost, "/aboutpage/", form)
	req.Header.Set("Content-Type", contentType)

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	body := decodeBody(t, rec.Body.String())
	if body["message"] != "About Page updated successfully" {
		t.Errorf("message = %v", body["message"])
	}
	secs := sections(t, body["about"])
	hero := secs["aboutHero"].(map[string]any)
	if hero["aboutTitle"].(map[string]any)["en"] != "About us" {
		t.Errorf("aboutTitle = %v", hero["aboutTitle"])
	}
	banner, _ := hero["aboutBanner"].(string)
	if !strings.HasPrefix(banner, "/uploads/about/") {
		t.Errorf("aboutBanner = %q, want a stored /uploads/about/ path", banner)
	}
}

func TestUpdateLeavesOtherSectionsAlone(t *testing.T) {
	router := newTestRouter(t)

	post := func(fields map[string]string) map[string]any {
		form, contentType := testutil.MultipartForm(t, fields, nil)
		req := httptest.NewRequest(http.MethodPost, "/aboutpage/", form)
		req.Header.Set("Content-Type", contentType)
		rec := testutil.NewRecorder()
		router.ServeHTTP(rec, req)
		rec.AssertStatus(t, http.StatusOK)
		return decodeBody(t, rec.Body.String())
	}

	post(map[string]string{"aboutHero": `{"aboutTitle":{"en":"First","vi":""}}`})
	body := post(map[string]string{"aboutOverview": `{"aboutOverviewTitle":{"en":"Second","vi":""}}`})

	secs := sections(t, body["about"])
	hero := secs["aboutHero"].(map[string]any)
	if hero["aboutTitle"].(map[string]any)["en"] != "First" {
		t.Errorf("aboutHero lost on unrelated update: %v", hero)
	}
	overview := secs["aboutOverview"].(map[string]any)
	if overview["aboutOverviewTitle"].(map[string]any)["en"] != "Second" {
		t.Errorf("aboutOverview = %v", overview)
	}
}

func TestUpdateSectionDiscriminator(t *testing.T) {
	router := newTestRouter(t)

	form, contentType := testutil.MultipartForm(t, map[string]string{
		"section":       "aboutOverview",
		"aboutHero":     `{"aboutTitle":{"en":"Ignored","vi":""}}`,
		"aboutOverview": `{"aboutOverviewTitle":{"en":"Applied","vi":""}}`,
	}, nil)
	req := httptest.NewRequest(http.MethodPost, "/aboutpage/", form)
	req.Header.Set("Content-Type", contentType)
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	secs := sections(t, decodeBody(t, rec.Body.String())["about"])
	if _, ok := secs["aboutHero"]; ok {
		t.Errorf("aboutHero merged despite section=aboutOverview: %v", secs["aboutHero"])
	}
	overview := secs["aboutOverview"].(map[string]any)
	if overview["aboutOverviewTitle"].(map[string]any)["en"] != "Applied" {
		t.Errorf("aboutOverview = %v", overview)
	}
}

func TestDeleteTeamKey(t *testing.T) {
	router := newTestRouter(t)

	form, contentType := testutil.MultipartForm(t, map[string]string{
		"aboutTeam": `{"cottonTeam":[{"teamName":{"en":"A","vi":""}}],"fiberTeam":[]}`,
	}, nil)
	req := httptest.NewRequest(http.MethodPost, "/aboutpage/", form)
	req.Header.Set("Content-Type", contentType)
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/aboutpage/team/cottonTeam", nil))
	rec.AssertStatus(t, http.StatusOK)

	secs := sections(t, decodeBody(t, rec.Body.String())["about"])
	team := secs["aboutTeam"].(map[string]any)
	if _, ok := team["cottonTeam"]; ok {
		t.Errorf("cottonTeam still present after delete: %v", team)
	}
	if _, ok := team["fiberTeam"]; !ok {
		t.Errorf("unrelated team dropped: %v", team)
	}
}

func TestDeleteTeamKeyOnUnsavedPage(t *testing.T) {
	router := newTestRouter(t)

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/aboutpage/team/cottonTeam", nil))
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestHeaderLogoSizeLimit(t *testing.T) {
	router := newTestRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="headerLogoFile"; filename="logo.png"`)
	hdr.Set("Content-Type", "image/png")
	fw, err := mw.CreatePart(hdr)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := fw.Write(make([]byte, 3<<20)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/headerpage/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "must be less than 2MB")
}

func TestUpdateMalformedSectionDegradesToNoOp(t *testing.T) {
	router := newTestRouter(t)

	post := func(fields map[string]string) map[string]any {
		form, contentType := testutil.MultipartForm(t, fields, nil)
		req := httptest.NewRequest(http.MethodPost, "/aboutpage/", form)
		req.Header.Set("Content-Type", contentType)
		rec := testutil.NewRecorder()
		router.ServeHTTP(rec, req)
		rec.AssertStatus(t, http.StatusOK)
		return decodeBody(t, rec.Body.String())
	}

	post(map[string]string{"aboutHero": `{"aboutTitle":{"en":"Kept","vi":""}}`})
	body := post(map[string]string{"aboutHero": `{not json`})

	secs := sections(t, body["about"])
	hero := secs["aboutHero"].(map[string]any)
	if hero["aboutTitle"].(map[string]any)["en"] != "Kept" {
		t.Errorf("malformed payload clobbered the section: %v", hero)
	}
}
