// Package blogs implements blog post CRUD. Listing supports status,
// category, tag, and author filters; single posts are fetched by slug.
package blogs

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	blogstore "github.com/Foragefoxoffice/Cotco-backend/internal/app/store/blogs"
	categorystore "github.com/Foragefoxoffice/Cotco-backend/internal/app/store/categories"
	maincategorystore "github.com/Foragefoxoffice/Cotco-backend/internal/app/store/maincategories"
	"github.com/Foragefoxoffice/Cotco-backend/internal/app/system/jsonutil"
	"github.com/Foragefoxoffice/Cotco-backend/internal/domain/models"
)

type Handler struct {
	blogs    *blogstore.Store
	cats     *categorystore.Store
	maincats *maincategorystore.Store
	logger   *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		blogs:    blogstore.New(db),
		cats:     categorystore.New(db),
		maincats: maincategorystore.New(db),
		logger:   logger,
	}
}

func Routes(h *Handler, protect func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.list)
	r.Get("/{slug}", h.getBySlug)

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

// blogWithRefs replaces the category ObjectIDs with the populated documents.
type blogWithRefs struct {
	*models.Blog
	Category     *models.Category     `json:"category"`
	MainCategory *models.MainCategory `json:"mainCategory,omitempty"`
}

func (h *Handler) withRefs(r *http.Request, b *models.Blog) blogWithRefs {
	out := blogWithRefs{Blog: b}
	out.Category, _ = h.cats.GetByID(r.Context(), b.Category)
	if b.MainCategory != primitive.NilObjectID {
		out.MainCategory, _ = h.maincats.GetByID(r.Context(), b.MainCategory)
	}
	return out
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := blogstore.Filter{
		Status: q.Get("status"),
		Tag:    q.Get("tag"),
		Author: q.Get("author"),
	}
	if v := q.Get("category"); v != "" {
		oid, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			jsonutil.BadRequest(w, "Invalid category filter")
			return
		}
		f.Category = oid
	}
	if v := q.Get("mainCategory"); v != "" {
		oid, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			jsonutil.BadRequest(w, "Invalid mainCategory filter")
			return
		}
		f.MainCategory = oid
	}

	blogs, err := h.blogs.List(r.Context(), f)
	if err != nil {
		jsonutil.InternalError(w, "Could not list blogs")
		return
	}

	out := make([]blogWithRefs, len(blogs))
	for i := range blogs {
		out[i] = h.withRefs(r, &blogs[i])
	}
	jsonutil.OK(w, out)
}

func (h *Handler) getBySlug(w http.ResponseWriter, r *http.Request) {
	b, err := h.blogs.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		jsonutil.NotFound(w, "Blog not found")
		return
	}
	jsonutil.OK(w, h.withRefs(r, b))
}

type blogRequest struct {
	Title        models.Lang        `json:"title"`
	Slug         string             `json:"slug"`
	Excerpt      models.Lang        `json:"excerpt"`
	CoverImage   models.Image       `json:"coverImage"`
	Blocks       []models.BlogBlock `json:"blocks"`
	Status       string             `json:"status"`
	Author       string             `json:"author"`
	Category     string             `json:"category"`
	MainCategory string             `json:"mainCategory"`
	Tags         []string           `json:"tags"`
	SEO          models.BlogSEO     `json:"seo"`
}

func (req *blogRequest) toModel() (models.Blog, error) {
	b := models.Blog{
		Title:      req.Title,
		Slug:       req.Slug,
		Excerpt:    req.Excerpt,
		CoverImage: req.CoverImage,
		Blocks:     req.Blocks,
		Status:     req.Status,
		Author:     req.Author,
		Tags:       req.Tags,
		SEO:        req.SEO,
	}
	if req.Category != "" {
		oid, err := primitive.ObjectIDFromHex(req.Category)
		if err != nil {
			return models.Blog{}, errors.New("Invalid category ID")
		}
		b.Category = oid
	}
	if req.MainCategory != "" {
		oid, err := primitive.ObjectIDFromHex(req.MainCategory)
		if err != nil {
			return models.Blog{}, errors.New("Invalid main category ID")
		}
		b.MainCategory = oid
	}
	return b, nil
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req blogRequest
	if err := jsonutil.Decode(r, &req); err != nil {
		jsonutil.BadRequest(w, "Invalid request body")
		return
	}
	b, err := req.toModel()
	if err != nil {
		jsonutil.BadRequest(w, err.Error())
		return
	}

	created, err := h.blogs.Create(r.Context(), b)
	if err != nil {
		jsonutil.BadRequest(w, err.Error())
		return
	}
	jsonutil.Created(w, created)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.NotFound(w, "Blog not found")
		return
	}

	var req blogRequest
	if err := jsonutil.Decode(r, &req); err != nil {
		jsonutil.BadRequest(w, "Invalid request body")
		return
	}
	b, err := req.toModel()
	if err != nil {
		jsonutil.BadRequest(w, err.Error())
		return
	}

	updated, err := h.blogs.Update(r.Context(), oid, b)
	if err != nil {
		switch {
		case err == mongo.ErrNoDocuments:
			jsonutil.NotFound(w, "Blog not found")
		case errors.Is(err, blogstore.ErrDuplicateSlug):
			jsonutil.BadRequest(w, err.Error())
		default:
			jsonutil.InternalError(w, "Could not update blog")
		}
		return
	}
	jsonutil.OK(w, updated)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.NotFound(w, "Blog not found")
		return
	}
	deleted, err := h.blogs.Delete(r.Context(), oid)
	if err != nil {
		jsonutil.InternalError(w, "Could not delete blog")
		return
	}
	if deleted == 0 {
		jsonutil.NotFound(w, "Blog not found")
		return
	}
	jsonutil.JSON(w, http.StatusOK, struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}{true, "Blog deleted"})
}
