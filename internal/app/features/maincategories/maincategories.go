// Package maincategories implements CRUD for the top-level product areas
// shown on the machines landing page. The background image arrives as a
// multipart upload alongside the form fields.
package maincategories

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	maincategorystore "github.com/Foragefoxoffice/Cotco-backend/internal/app/store/maincategories"
	"github.com/Foragefoxoffice/Cotco-backend/internal/app/system/jsonutil"
	"github.com/Foragefoxoffice/Cotco-backend/internal/app/system/uploads"
	"github.com/Foragefoxoffice/Cotco-backend/internal/domain/models"
)

const maxFormMemory = 20 << 20

type Handler struct {
	cats    *maincategorystore.Store
	uploads *uploads.Store
	logger  *zap.Logger
}

func NewHandler(db *mongo.Database, up *uploads.Store, logger *zap.Logger) *Handler {
	return &Handler{cats: maincategorystore.New(db), uploads: up, logger: logger}
}

func Routes(h *Handler, protect func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.list)
	r.Get("/{id}", h.get)

	r.Group(func(r chi.Router) {
		if protect != nil {
			r.Use(protect)
		}
		r.Post("/", h.create)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.remove)
	})

	return r
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	cats, err := h.cats.List(r.Context())
	if err != nil {
		jsonutil.InternalError(w, "Could not list main categories")
		return
	}
	jsonutil.List(w, len(cats), cats)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.NotFound(w, "Main category not found")
		return
	}
	mc, err := h.cats.GetByID(r.Context(), oid)
	if err != nil {
		jsonutil.NotFound(w, "Main category not found")
		return
	}
	jsonutil.OK(w, mc)
}

// formCategory reads the multipart fields. The admin UI posts the bilingual
// name as dotted keys ("name.en", "name.vi") and the alt text as
// "bgImage.alt"; the image itself comes as the "bgImageFile" part.
func (h *Handler) formCategory(r *http.Request) (models.MainCategory, error) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return models.MainCategory{}, err
	}

	mc := models.MainCategory{
		Name: models.Lang{
			EN: strings.TrimSpace(r.FormValue("name.en")),
			VI: strings.TrimSpace(r.FormValue("name.vi")),
		},
		Slug: strings.TrimSpace(r.FormValue("slug")),
		BgImage: models.Image{
			Alt: r.FormValue("bgImage.alt"),
		},
	}

	if r.MultipartForm != nil {
		if fhs := r.MultipartForm.File["bgImageFile"]; len(fhs) > 0 {
			url, err := h.uploads.Save(r.Context(), fhs[0], "maincategory")
			if err != nil {
				return models.MainCategory{}, err
			}
			mc.BgImage.URL = url
		}
	}
	return mc, nil
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	mc, err := h.formCategory(r)
	if err != nil {
		jsonutil.BadRequest(w, "Invalid form data")
		return
	}
	if mc.Name.EN == "" {
		jsonutil.BadRequest(w, "English name is required")
		return
	}
	if mc.Slug == "" {
		jsonutil.BadRequest(w, "Slug is required")
		return
	}

	created, err := h.cats.Create(r.Context(), mc)
	if err != nil {
		jsonutil.BadRequest(w, err.Error())
		return
	}
	jsonutil.Created(w, created)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.NotFound(w, "Main category not found")
		return
	}

	mc, err := h.formCategory(r)
	if err != nil {
		jsonutil.BadRequest(w, "Invalid form data")
		return
	}

	if mc.Name.EN != "" || mc.Name.VI != "" {
		taken, err := h.nameTaken(r, mc.Name, oid)
		if err != nil {
			jsonutil.InternalError(w, "Could not update main category")
			return
		}
		if taken {
			jsonutil.BadRequest(w, "Another main category with this name already exists")
			return
		}
	}

	updated, err := h.cats.Update(r.Context(), oid, mc)
	if err != nil {
		switch {
		case err == mongo.ErrNoDocuments:
			jsonutil.NotFound(w, "Main category not found")
		case errors.Is(err, maincategorystore.ErrDuplicateSlug):
			jsonutil.BadRequest(w, err.Error())
		default:
			jsonutil.InternalError(w, "Could not update main category")
		}
		return
	}
	jsonutil.OK(w, updated)
}

// nameTaken reports whether another main category already uses either
// locale of the given name. The collection stays tiny, so a scan is fine.
func (h *Handler) nameTaken(r *http.Request, name models.Lang, exclude primitive.ObjectID) (bool, error) {
	cats, err := h.cats.List(r.Context())
	if err != nil {
		return false, err
	}
	for i := range cats {
		if cats[i].ID == exclude {
			continue
		}
		if (name.EN != "" && cats[i].Name.EN == name.EN) ||
			(name.VI != "" && cats[i].Name.VI == name.VI) {
			return true, nil
		}
	}
	return false, nil
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.NotFound(w, "Main category not found")
		return
	}
	deleted, err := h.cats.Delete(r.Context(), oid)
	if err != nil {
		jsonutil.InternalError(w, "Could not delete main category")
		return
	}
	if deleted == 0 {
		jsonutil.NotFound(w, "Main category not found")
		return
	}
	jsonutil.OK(w, struct{}{})
}
