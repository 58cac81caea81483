// Package pages serves the singleton page documents of the marketing site
// (about, cotton, fiber, homepage, ...).
//
// Every page is declared as a Page value: its page_documents key, route
// path, and the SectionSpec tables the merge engine consumes. The handlers
// are generic over that declaration, so adding a page is adding one schema
// file.
package pages

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/Foragefoxoffice/Cotco-backend/internal/app/store/pagedoc"
	"github.com/Foragefoxoffice/Cotco-backend/internal/app/system/coerce"
	"github.com/Foragefoxoffice/Cotco-backend/internal/app/system/jsonutil"
	"github.com/Foragefoxoffice/Cotco-backend/internal/app/system/merge"
	"github.com/Foragefoxoffice/Cotco-backend/internal/app/system/uploads"
	"github.com/Foragefoxoffice/Cotco-backend/internal/domain/models"
)

// maxFormMemory caps how much of a multipart body is held in memory while
// parsing; larger uploads spill to temp files.
const maxFormMemory = 50 << 20

// Page declares one singleton page document.
type Page struct {
	// Type is the page_documents key.
	Type string

	// Path is the route mount under /api/v1.
	Path string

	// Entity is the singular key carrying the document in update
	// responses ({message, about: doc}).
	Entity string

	// Message is the update success message.
	Message string

	Sections []merge.SectionSpec

	// TeamSection, when set, is the dotted path of the page's keyed team
	// map and enables DELETE <path>/team/{key}.
	TeamSection string

	// Finalize, when set, post-processes the merged sections before they
	// are persisted.
	Finalize func(sections map[string]any)
}

// Pages lists every page the engine serves.
func Pages() []Page {
	return []Page{
		aboutPage,
		cottonPage,
		fiberPage,
		contactPage,
		privacyPage,
		termsPage,
		homePage,
		machineCMSPage,
		headerPage,
		footerPage,
	}
}

// seoSection is the shared SEO block. The payload arrives under
// <page>SeoMeta and the og image under <page>SeoOgImageFile.
func seoSection(page string) merge.SectionSpec {
	return merge.SectionSpec{
		Key:     "seoMeta",
		BodyKey: page + "SeoMeta",
		Folder:  page + "/seo",
		Fields: []merge.Field{
			{Name: "metaTitle", Kind: merge.Lang},
			{Name: "metaDescription", Kind: merge.Lang},
			{Name: "metaKeywords", Kind: merge.Lang},
			{Name: "ogTitle", Kind: merge.Lang},
			{Name: "ogDescription", Kind: merge.Lang},
			{Name: "ogImage", Kind: merge.File, UploadKey: page + "SeoOgImageFile"},
		},
	}
}

// Handler provides the page document handlers.
type Handler struct {
	docs    *pagedocstore.Store
	uploads *uploads.Store
	logger  *zap.Logger
}

// NewHandler creates a new pages Handler.
func NewHandler(db *mongo.Database, up *uploads.Store, logger *zap.Logger) *Handler {
	return &Handler{
		docs:    pagedocstore.New(db),
		uploads: up,
		logger:  logger,
	}
}

// Routes returns a chi.Router with every page mounted. guard protects the
// mutating routes; reads stay public for the marketing site.
func Routes(h *Handler, guard func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	for _, p := range Pages() {
		p := p
		r.Route(p.Path, func(pr chi.Router) {
			pr.Get("/", h.get(p))
			pr.Group(func(gr chi.Router) {
				if guard != nil {
					gr.Use(guard)
				}
				gr.Post("/", h.update(p))
				if p.TeamSection != "" {
					gr.Delete("/team/{key}", h.deleteTeamKey(p))
				}
			})
		})
	}
	return r
}

// get returns the stored document, or an empty shell shaped from the page
// schema when the page has never been saved.
func (h *Handler) get(p Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := h.docs.Get(r.Context(), p.Type)
		if err != nil {
			h.logger.Error("load page failed", zap.String("page", p.Type), zap.Error(err))
			jsonutil.InternalError(w, "could not load page")
			return
		}
		if doc == nil {
			doc = &models.PageDocument{PageType: p.Type, Sections: shell(p)}
		}
		jsonutil.OK(w, doc)
	}
}

// update merges the posted sections over the stored document and persists
// the result once. Only sections named in the body (or carrying uploads)
// change; a "section" form value restricts the merge to that one section.
func (h *Handler) update(p Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			jsonutil.BadRequest(w, "invalid form payload")
			return
		}
		var files merge.Files
		if r.MultipartForm != nil {
			files = merge.Files(r.MultipartForm.File)
		}

		if msg := oversizeUpload(p, files); msg != "" {
			jsonutil.BadRequest(w, msg)
			return
		}

		stored, err := h.docs.Get(r.Context(), p.Type)
		if err != nil {
			h.logger.Error("load page failed", zap.String("page", p.Type), zap.Error(err))
			jsonutil.InternalError(w, "could not load page")
			return
		}
		existing := map[string]any{}
		if stored != nil {
			existing = stored.Sections
		}

		// Unknown stored sections survive schema drift.
		sections := make(map[string]any, len(existing)+len(p.Sections))
		for k, v := range existing {
			sections[k] = v
		}

		only := r.FormValue("section")
		var warnings []string

		for _, spec := range p.Sections {
			if only != "" && spec.Key != only && spec.PayloadKey() != only {
				continue
			}
			raw := r.FormValue(spec.PayloadKey())

			if spec.Records != nil {
				exList := toList(existing[spec.Key])
				in := coerce.List(raw, exList)
				merged, warns := merge.RecordList(r.Context(), h.uploads, spec, in, exList, files)
				sections[spec.Key] = merged
				warnings = append(warnings, warns...)
				continue
			}

			exMap, _ := existing[spec.Key].(map[string]any)
			in := coerce.Object(raw, exMap)
			merged, warns := merge.Section(r.Context(), h.uploads, spec, in, exMap, files)
			sections[spec.Key] = merged
			warnings = append(warnings, warns...)
		}

		if p.Finalize != nil {
			p.Finalize(sections)
		}

		doc, err := h.docs.Replace(r.Context(), p.Type, sections)
		if err != nil {
			h.logger.Error("save page failed", zap.String("page", p.Type), zap.Error(err))
			jsonutil.InternalError(w, "could not save page")
			return
		}
		jsonutil.Message(w, p.Message, p.Entity, doc, warnings)
	}
}

// deleteTeamKey removes one named team from the page's keyed team map.
func (h *Handler) deleteTeamKey(p Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "key")
		doc, err := h.docs.DeleteSectionKey(r.Context(), p.Type, p.TeamSection, key)
		if err != nil {
			h.logger.Error("delete team failed",
				zap.String("page", p.Type),
				zap.String("team", key),
				zap.Error(err),
			)
			jsonutil.InternalError(w, "could not update page")
			return
		}
		if doc == nil {
			jsonutil.NotFound(w, "Page not found")
			return
		}
		jsonutil.Message(w, "Team removed successfully", p.Entity, doc, nil)
	}
}

// oversizeUpload returns a rejection message when an image upload exceeds a
// field's declared size cap.
func oversizeUpload(p Page, files merge.Files) string {
	for _, s := range p.Sections {
		for _, f := range s.Fields {
			if f.MaxBytes == 0 {
				continue
			}
			fh := files.First(f.FormKey())
			if fh == nil || fh.Size <= f.MaxBytes {
				continue
			}
			if strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
				return fmt.Sprintf("%s must be less than %dMB", f.Name, f.MaxBytes>>20)
			}
		}
	}
	return ""
}

// shell builds the empty document shape for a never-saved page: every
// section present, bilingual fields as {en:"", vi:""}.
func shell(p Page) map[string]any {
	sections := make(map[string]any, len(p.Sections))
	for _, s := range p.Sections {
		switch {
		case s.Records != nil:
			sections[s.Key] = []any{}
		case s.KeyedMap:
			sections[s.Key] = map[string]any{}
		case s.Lang:
			sections[s.Key] = map[string]any{"en": "", "vi": ""}
		default:
			m := make(map[string]any, len(s.Fields))
			for _, f := range s.Fields {
				if f.Records != nil {
					m[f.Name] = []any{}
					continue
				}
				switch f.Kind {
				case merge.Lang:
					m[f.Name] = map[string]any{"en": "", "vi": ""}
				case merge.GalleryOverwrite, merge.GalleryAppend:
					m[f.Name] = []any{}
				case merge.Raw:
					// Free-form fields have no default shape.
				default:
					m[f.Name] = ""
				}
			}
			sections[s.Key] = m
		}
	}
	return sections
}

func toList(v any) []any {
	if l, ok := v.([]any); ok {
		return l
	}
	return nil
}
