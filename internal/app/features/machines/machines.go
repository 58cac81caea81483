// Package machines implements the machine catalog: categories, reusable
// section templates, and full machine detail pages assembled from ordered
// sections.
//
// Page sections arrive as a JSON array in a multipart form. An "image" value
// inside a section is not a URL yet: it names the multipart file part that
// carries the actual upload. Reconciliation walks the section tree (blocks
// and tabs included), uploads every referenced file, and swaps the part name
// for the stored URL.
package machines

import (
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	machinecategorystore "github.com/Foragefoxoffice/Cotco-backend/internal/app/store/machinecategories"
	machinepagestore "github.com/Foragefoxoffice/Cotco-backend/internal/app/store/machinepages"
	machinesectionstore "github.com/Foragefoxoffice/Cotco-backend/internal/app/store/machinesections"
	"github.com/Foragefoxoffice/Cotco-backend/internal/app/system/coerce"
	"github.com/Foragefoxoffice/Cotco-backend/internal/app/system/jsonutil"
	"github.com/Foragefoxoffice/Cotco-backend/internal/app/system/uploads"
	"github.com/Foragefoxoffice/Cotco-backend/internal/domain/models"
)

const maxFormMemory = 50 << 20

type Handler struct {
	cats     *machinecategorystore.Store
	sections *machinesectionstore.Store
	pages    *machinepagestore.Store
	uploads  *uploads.Store
	logger   *zap.Logger
}

func NewHandler(db *mongo.Database, up *uploads.Store, logger *zap.Logger) *Handler {
	return &Handler{
		cats:     machinecategorystore.New(db),
		sections: machinesectionstore.New(db),
		pages:    machinepagestore.New(db),
		uploads:  up,
		logger:   logger,
	}
}

// Routes wires the machine catalog. Reads are public; writes require
// authentication.
func Routes(h *Handler, protect func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/categories", h.listCategories)
	r.Get("/categories/{id}", h.getCategory)
	r.Get("/sections", h.listSections)
	r.Get("/sections/{id}", h.getSection)
	r.Get("/pages", h.listPages)
	r.Get("/pages/category/{categorySlug}", h.pagesByCategorySlug)
	r.Get("/pages/{param}", h.getPage)

	r.Group(func(r chi.Router) {
		if protect != nil {
			r.Use(protect)
		}
		r.Post("/categories", h.createCategory)
		r.Put("/categories/{id}", h.updateCategory)
		r.Delete("/categories/{id}", h.deleteCategory)

		r.Post("/sections", h.createSection)
		r.Put("/sections/{id}", h.updateSection)
		r.Delete("/sections/{id}", h.deleteSection)

		r.Post("/pages", h.createPage)
		// The admin UI posts multipart updates and puts JSON-only ones.
		r.Post("/pages/{id}", h.updatePage)
		r.Put("/pages/{id}", h.updatePage)
		r.Delete("/pages/{id}", h.deletePage)
	})

	return r
}

/* ---------- categories ---------- */

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.cats.List(r.Context(), primitive.NilObjectID)
	if err != nil {
		jsonutil.InternalError(w, "Could not list machine categories")
		return
	}
	jsonutil.OK(w, cats)
}

func (h *Handler) getCategory(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.NotFound(w, "Category not found")
		return
	}
	c, err := h.cats.GetByID(r.Context(), oid)
	if err != nil {
		jsonutil.NotFound(w, "Category not found")
		return
	}
	jsonutil.OK(w, c)
}

// categoryFromForm reads the multipart category fields. Bilingual values
// arrive as JSON strings; image, icon, and bgImage as file parts.
func (h *Handler) categoryFromForm(r *http.Request, existing *models.MachineCategory) (models.MachineCategory, error) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return models.MachineCategory{}, err
	}

	var mc models.MachineCategory
	if existing != nil {
		mc = *existing
	}

	if v := r.FormValue("name"); v != "" {
		mc.Name = langModel(coerce.Object(v, nil))
	}
	if v := r.FormValue("description"); v != "" {
		mc.Description = langModel(coerce.Object(v, nil))
	}
	if v := strings.TrimSpace(r.FormValue("slug")); v != "" {
		mc.Slug = v
	}
	if v := r.FormValue("mainCategory"); v != "" {
		if oid, err := primitive.ObjectIDFromHex(v); err == nil {
			mc.MainCategory = oid
		}
	}

	if r.MultipartForm != nil {
		for key, dst := range map[string]*string{
			"image":                   &mc.Image,
			"icon":                    &mc.Icon,
			"createMachineCatBgImage": &mc.BgImage,
			"bgImage":                 &mc.BgImage,
		} {
			fhs := r.MultipartForm.File[key]
			if len(fhs) == 0 {
				continue
			}
			url, err := h.uploads.Save(r.Context(), fhs[0], "categories")
			if err != nil {
				return models.MachineCategory{}, err
			}
			*dst = url
		}
	}
	return mc, nil
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	mc, err := h.categoryFromForm(r, nil)
	if err != nil {
		jsonutil.BadRequest(w, "Invalid form data")
		return
	}
	if mc.Slug == "" {
		jsonutil.BadRequest(w, "Slug is required")
		return
	}
	if _, err := h.cats.GetBySlug(r.Context(), mc.Slug); err == nil {
		jsonutil.Error(w, http.StatusConflict, "Slug already exists. Please use a unique slug.")
		return
	}

	created, err := h.cats.Create(r.Context(), mc)
	if err != nil {
		jsonutil.BadRequest(w, err.Error())
		return
	}
	jsonutil.JSON(w, http.StatusCreated, struct {
		Success bool                   `json:"success"`
		Message string                 `json:"message"`
		Data    models.MachineCategory `json:"data"`
	}{true, "Machine category created successfully", created})
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.NotFound(w, "Category not found")
		return
	}
	existing, err := h.cats.GetByID(r.Context(), oid)
	if err != nil {
		jsonutil.NotFound(w, "Category not found")
		return
	}

	mc, err := h.categoryFromForm(r, existing)
	if err != nil {
		jsonutil.BadRequest(w, "Invalid form data")
		return
	}

	updated, err := h.cats.Update(r.Context(), oid, mc)
	if err != nil {
		switch {
		case err == mongo.ErrNoDocuments:
			jsonutil.NotFound(w, "Category not found")
		case errors.Is(err, machinecategorystore.ErrDuplicateSlug):
			jsonutil.BadRequest(w, err.Error())
		default:
			jsonutil.InternalError(w, "Could not update category")
		}
		return
	}
	jsonutil.OK(w, updated)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.NotFound(w, "Category not found")
		return
	}
	deleted, err := h.cats.Delete(r.Context(), oid)
	if err != nil {
		jsonutil.InternalError(w, "Could not delete category")
		return
	}
	if deleted == 0 {
		jsonutil.NotFound(w, "Category not found")
		return
	}
	jsonutil.JSON(w, http.StatusOK, struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}{true, "Category deleted"})
}

/* ---------- section templates ---------- */

func (h *Handler) listSections(w http.ResponseWriter, r *http.Request) {
	secs, err := h.sections.List(r.Context())
	if err != nil {
		jsonutil.InternalError(w, "Could not list sections")
		return
	}
	jsonutil.OK(w, secs)
}

func (h *Handler) getSection(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.NotFound(w, "Section not found")
		return
	}
	sec, err := h.sections.GetByID(r.Context(), oid)
	if err != nil {
		jsonutil.NotFound(w, "Section not found")
		return
	}
	jsonutil.OK(w, sec)
}

// sectionContentFromForm assembles section content from multipart fields.
// Structured values (table, blocks, tabs, ...) arrive as JSON strings; a
// file part named "image" replaces the image URL.
func (h *Handler) sectionContentFromForm(r *http.Request) (models.MachineSectionContent, error) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return models.MachineSectionContent{}, err
	}

	payload := map[string]any{
		"type":        r.FormValue("type"),
		"title":       langAny(formAny(r, "title")),
		"description": langAny(formAny(r, "description")),
	}
	if v := r.FormValue("richtext"); v != "" {
		payload["richtext"] = langAny(v)
	}
	if v := r.FormValue("order"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			payload["order"] = n
		}
	}
	if v := r.FormValue("isActive"); v != "" {
		payload["isActive"] = v == "true"
	}
	if v := r.FormValue("image"); v != "" {
		payload["image"] = v
	}
	if v := r.FormValue("table"); v != "" {
		payload["table"] = coerce.Object(v, nil)
	}
	if v := r.FormValue("button"); v != "" {
		payload["button"] = coerce.Object(v, nil)
	}
	for _, key := range []string{"listItems", "blocks", "tabs"} {
		if v := r.FormValue(key); v != "" {
			payload[key] = coerce.List(v, nil)
		}
	}

	var files map[string][]*multipart.FileHeader
	if r.MultipartForm != nil {
		files = r.MultipartForm.File
		if fhs := files["image"]; len(fhs) > 0 {
			url, err := h.uploads.Save(r.Context(), fhs[0], "sections")
			if err != nil {
				return models.MachineSectionContent{}, err
			}
			payload["image"] = url
		}
	}

	processed := h.processSection(r.Context(), files, payload)

	var content models.MachineSectionContent
	b, err := json.Marshal(processed)
	if err != nil {
		return models.MachineSectionContent{}, err
	}
	if err := json.Unmarshal(b, &content); err != nil {
		return models.MachineSectionContent{}, err
	}
	return content, nil
}

func (h *Handler) createSection(w http.ResponseWriter, r *http.Request) {
	content, err := h.sectionContentFromForm(r)
	if err != nil {
		jsonutil.BadRequest(w, "Invalid form data")
		return
	}
	sec, err := h.sections.Create(r.Context(), models.MachineSection{MachineSectionContent: content})
	if err != nil {
		jsonutil.BadRequest(w, err.Error())
		return
	}
	jsonutil.Created(w, sec)
}

func (h *Handler) updateSection(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.NotFound(w, "Section not found")
		return
	}
	content, err := h.sectionContentFromForm(r)
	if err != nil {
		jsonutil.BadRequest(w, "Invalid form data")
		return
	}
	sec, err := h.sections.Update(r.Context(), oid, content)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			jsonutil.NotFound(w, "Section not found")
			return
		}
		jsonutil.InternalError(w, "Could not update section")
		return
	}
	jsonutil.OK(w, sec)
}

func (h *Handler) deleteSection(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.NotFound(w, "Section not found")
		return
	}
	deleted, err := h.sections.Delete(r.Context(), oid)
	if err != nil {
		jsonutil.InternalError(w, "Could not delete section")
		return
	}
	if deleted == 0 {
		jsonutil.NotFound(w, "Section not found")
		return
	}
	jsonutil.JSON(w, http.StatusOK, struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}{true, "Section deleted"})
}

/* ---------- pages ---------- */

// pageWithCategory replaces the raw category ObjectID with the populated
// category document; the outer field shadows the embedded "category" tag.
type pageWithCategory struct {
	*models.MachinePage
	Category *models.MachineCategory `json:"category"`
}

func (h *Handler) populate(ctx context.Context, pages []models.MachinePage) []pageWithCategory {
	cache := map[primitive.ObjectID]*models.MachineCategory{}
	out := make([]pageWithCategory, len(pages))
	for i := range pages {
		id := pages[i].Category
		cat, seen := cache[id]
		if !seen {
			cat, _ = h.cats.GetByID(ctx, id)
			cache[id] = cat
		}
		out[i] = pageWithCategory{MachinePage: &pages[i], Category: cat}
	}
	return out
}

func (h *Handler) listPages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.pages.List(r.Context(), primitive.NilObjectID)
	if err != nil {
		jsonutil.InternalError(w, "Could not list machine pages")
		return
	}
	jsonutil.OK(w, h.populate(r.Context(), pages))
}

func (h *Handler) getPage(w http.ResponseWriter, r *http.Request) {
	p, err := h.pages.GetByIDOrSlug(r.Context(), chi.URLParam(r, "param"))
	if err != nil {
		jsonutil.NotFound(w, "Page not found")
		return
	}
	cat, _ := h.cats.GetByID(r.Context(), p.Category)
	jsonutil.OK(w, pageWithCategory{MachinePage: p, Category: cat})
}

func (h *Handler) pagesByCategorySlug(w http.ResponseWriter, r *http.Request) {
	cat, err := h.cats.GetBySlug(r.Context(), chi.URLParam(r, "categorySlug"))
	if err != nil {
		jsonutil.NotFound(w, "Category not found")
		return
	}
	pages, err := h.pages.List(r.Context(), cat.ID)
	if err != nil {
		jsonutil.InternalError(w, "Could not list machine pages")
		return
	}
	out := make([]pageWithCategory, len(pages))
	for i := range pages {
		out[i] = pageWithCategory{MachinePage: &pages[i], Category: cat}
	}
	jsonutil.OK(w, out)
}

// pageInput reads a page payload from either a JSON body or a multipart
// form, returning the raw fields plus any file parts.
func pageInput(r *http.Request) (map[string]any, map[string][]*multipart.FileHeader, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var body map[string]any
		if err := jsonutil.Decode(r, &body); err != nil {
			return nil, nil, err
		}
		return body, nil, nil
	}

	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, nil, err
	}
	body := map[string]any{}
	for _, key := range []string{"slug", "categoryId", "banner"} {
		if v := r.FormValue(key); v != "" {
			body[key] = v
		}
	}
	for _, key := range []string{"title", "description", "seo"} {
		if v := r.FormValue(key); v != "" {
			body[key] = coerce.Object(v, nil)
		}
	}
	if v := r.FormValue("sections"); v != "" {
		body["sections"] = coerce.List(v, nil)
	}

	var files map[string][]*multipart.FileHeader
	if r.MultipartForm != nil {
		files = r.MultipartForm.File
	}
	return body, files, nil
}

func (h *Handler) createPage(w http.ResponseWriter, r *http.Request) {
	body, files, err := pageInput(r)
	if err != nil {
		jsonutil.BadRequest(w, "Invalid request body")
		return
	}

	p := models.MachinePage{
		Title:       langModel(body["title"]),
		Description: langModel(body["description"]),
		Slug:        asString(body["slug"]),
		Banner:      asString(body["banner"]),
		SEO:         seoModel(body["seo"]),
	}
	if oid, err := primitive.ObjectIDFromHex(asString(body["categoryId"])); err == nil {
		p.Category = oid
	}

	if fhs := files["banner"]; len(fhs) > 0 {
		url, err := h.uploads.Save(r.Context(), fhs[0], "pages")
		if err != nil {
			jsonutil.InternalError(w, "Could not upload banner")
			return
		}
		p.Banner = url
	}

	if raw, ok := body["sections"].([]any); ok {
		p.Sections = h.processSections(r.Context(), files, raw)
	}

	created, err := h.pages.Create(r.Context(), p)
	if err != nil {
		jsonutil.BadRequest(w, err.Error())
		return
	}
	jsonutil.Created(w, created)
}

func (h *Handler) updatePage(w http.ResponseWriter, r *http.Request) {
	existing, err := h.pages.GetByIDOrSlug(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.NotFound(w, "Page not found")
		return
	}

	body, files, err := pageInput(r)
	if err != nil {
		jsonutil.BadRequest(w, "Invalid request body")
		return
	}

	p := *existing
	p.Title = mergeLang(body["title"], existing.Title)
	p.Description = mergeLang(body["description"], existing.Description)
	p.SEO = mergeSEO(body["seo"], existing.SEO)
	if slug := asString(body["slug"]); slug != "" {
		p.Slug = slug
	}
	if oid, err := primitive.ObjectIDFromHex(asString(body["categoryId"])); err == nil {
		p.Category = oid
	}
	if banner := asString(body["banner"]); banner != "" {
		p.Banner = banner
	}
	if fhs := files["banner"]; len(fhs) > 0 {
		url, err := h.uploads.Save(r.Context(), fhs[0], "pages")
		if err != nil {
			jsonutil.InternalError(w, "Could not upload banner")
			return
		}
		p.Banner = url
	}
	if raw, ok := body["sections"].([]any); ok {
		p.Sections = h.processSections(r.Context(), files, raw)
	}

	updated, err := h.pages.Replace(r.Context(), existing.ID, p)
	if err != nil {
		if errors.Is(err, machinepagestore.ErrDuplicateSlug) {
			jsonutil.BadRequest(w, err.Error())
			return
		}
		jsonutil.InternalError(w, "Could not update page")
		return
	}
	jsonutil.OK(w, updated)
}

func (h *Handler) deletePage(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.NotFound(w, "Page not found")
		return
	}
	deleted, err := h.pages.Delete(r.Context(), oid)
	if err != nil {
		jsonutil.InternalError(w, "Could not delete page")
		return
	}
	if deleted == 0 {
		jsonutil.NotFound(w, "Page not found")
		return
	}
	jsonutil.JSON(w, http.StatusOK, struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}{true, "Page deleted"})
}

/* ---------- section reconciliation ---------- */

func (h *Handler) processSections(ctx context.Context, files map[string][]*multipart.FileHeader, raw []any) []models.MachineSectionContent {
	processed := make([]any, 0, len(raw))
	for _, item := range raw {
		sec, ok := item.(map[string]any)
		if !ok {
			continue
		}
		processed = append(processed, h.processSection(ctx, files, sec))
	}

	b, err := json.Marshal(processed)
	if err != nil {
		h.logger.Warn("could not encode processed sections", zap.Error(err))
		return nil
	}
	var secs []models.MachineSectionContent
	if err := json.Unmarshal(b, &secs); err != nil {
		h.logger.Warn("could not decode processed sections", zap.Error(err))
		return nil
	}
	return secs
}

// processSection resolves file-part references and normalizes bilingual
// values for one section, recursing into blocks and tabs.
func (h *Handler) processSection(ctx context.Context, files map[string][]*multipart.FileHeader, sec map[string]any) map[string]any {
	out := make(map[string]any, len(sec))
	for k, v := range sec {
		out[k] = v
	}

	out["image"] = h.resolveImage(ctx, files, out["image"], "sections")

	if blocks, ok := out["blocks"].([]any); ok {
		nb := make([]any, 0, len(blocks))
		for _, raw := range blocks {
			block, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			b := make(map[string]any, len(block))
			for k, v := range block {
				b[k] = v
			}
			b["image"] = h.resolveImage(ctx, files, b["image"], "blocks")
			b["title"] = langAny(b["title"])
			b["description"] = langAny(b["description"])
			nb = append(nb, b)
		}
		out["blocks"] = nb
	}

	if tabs, ok := out["tabs"].([]any); ok {
		nt := make([]any, 0, len(tabs))
		for _, raw := range tabs {
			tab, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			t := make(map[string]any, len(tab))
			for k, v := range tab {
				t[k] = v
			}
			t["tabTitle"] = langAny(t["tabTitle"])
			if nested, ok := t["sections"].([]any); ok {
				ns := make([]any, 0, len(nested))
				for _, n := range nested {
					if m, ok := n.(map[string]any); ok {
						ns = append(ns, h.processSection(ctx, files, m))
					}
				}
				t["sections"] = ns
			} else {
				t["sections"] = []any{}
			}
			nt = append(nt, t)
		}
		out["tabs"] = nt
	}

	if rawTable, present := out["table"]; present {
		if s, ok := rawTable.(string); ok {
			rawTable = coerce.Object(s, nil)
		}
		if table, ok := rawTable.(map[string]any); ok {
			t := make(map[string]any, len(table))
			for k, v := range table {
				t[k] = v
			}
			t["header"] = langAny(t["header"])
			rows := []any{}
			if rr, ok := t["rows"].([]any); ok {
				for _, rawRow := range rr {
					row, ok := rawRow.([]any)
					if !ok {
						rows = append(rows, []any{})
						continue
					}
					cells := make([]any, len(row))
					for i, cell := range row {
						cells[i] = langAny(cell)
					}
					rows = append(rows, cells)
				}
			}
			t["rows"] = rows
			out["table"] = t
		}
	}

	out["title"] = langAny(out["title"])
	out["description"] = langAny(out["description"])
	if rt, present := out["richtext"]; present {
		out["richtext"] = langAny(rt)
	}
	return out
}

// resolveImage uploads the file part an image value points at, if any.
// A value that is already a URL (or empty) passes through unchanged.
func (h *Handler) resolveImage(ctx context.Context, files map[string][]*multipart.FileHeader, v any, folder string) any {
	key, ok := v.(string)
	if !ok || key == "" {
		return v
	}
	fhs := files[key]
	if len(fhs) == 0 {
		return v
	}
	url, err := h.uploads.Save(ctx, fhs[0], folder)
	if err != nil {
		h.logger.Warn("section image upload failed", zap.String("part", key), zap.Error(err))
		return v
	}
	return url
}

/* ---------- small helpers ---------- */

func formAny(r *http.Request, key string) any {
	if v := r.FormValue(key); v != "" {
		return v
	}
	return nil
}

// langAny normalizes a bilingual value that may arrive as a JSON string or
// an object into an {en, vi} map.
func langAny(v any) map[string]any {
	if s, ok := v.(string); ok {
		return coerce.Lang(coerce.Object(s, nil))
	}
	return coerce.Lang(v)
}

func langModel(v any) models.Lang {
	m := langAny(v)
	return models.Lang{EN: asString(m["en"]), VI: asString(m["vi"])}
}

// mergeLang overlays the locales present in raw onto the existing value, so
// a partial payload does not wipe the other language.
func mergeLang(raw any, existing models.Lang) models.Lang {
	m, ok := raw.(map[string]any)
	if !ok {
		return existing
	}
	out := existing
	if en, ok := m["en"].(string); ok {
		out.EN = en
	}
	if vi, ok := m["vi"].(string); ok {
		out.VI = vi
	} else if vn, ok := m["vn"].(string); ok {
		out.VI = vn
	}
	return out
}

func seoModel(raw any) models.MachineSEO {
	return mergeSEO(raw, models.MachineSEO{})
}

func mergeSEO(raw any, existing models.MachineSEO) models.MachineSEO {
	m, ok := raw.(map[string]any)
	if !ok {
		return existing
	}
	out := existing
	if v, ok := m["metaTitle"].(string); ok {
		out.MetaTitle = v
	}
	if v, ok := m["metaDescription"].(string); ok {
		out.MetaDescription = v
	}
	if v, ok := m["ogImage"].(string); ok {
		out.OGImage = v
	}
	if kw, ok := m["keywords"].([]any); ok {
		out.Keywords = make([]string, 0, len(kw))
		for _, k := range kw {
			if s, ok := k.(string); ok {
				out.Keywords = append(out.Keywords, s)
			}
		}
	}
	return out
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
