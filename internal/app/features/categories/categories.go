// Package categories implements CRUD for blog categories. Reads are public;
// writes require authentication.
package categories

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	categorystore "github.com/Foragefoxoffice/Cotco-backend/internal/app/store/categories"
	"github.com/Foragefoxoffice/Cotco-backend/internal/app/system/jsonutil"
	"github.com/Foragefoxoffice/Cotco-backend/internal/domain/models"
)

type Handler struct {
	cats   *categorystore.Store
	logger *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{cats: categorystore.New(db), logger: logger}
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
		jsonutil.InternalError(w, "Could not list categories")
		return
	}
	jsonutil.List(w, len(cats), cats)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
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

type categoryRequest struct {
	Name        models.Lang `json:"name"`
	Description models.Lang `json:"description"`
	Slug        string      `json:"slug"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := jsonutil.Decode(r, &req); err != nil {
		jsonutil.BadRequest(w, "Invalid request body")
		return
	}

	c, err := h.cats.Create(r.Context(), models.Category{
		Name:        req.Name,
		Description: req.Description,
		Slug:        req.Slug,
	})
	if err != nil {
		jsonutil.BadRequest(w, err.Error())
		return
	}
	jsonutil.Created(w, c)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.NotFound(w, "Category not found")
		return
	}

	var req categoryRequest
	if err := jsonutil.Decode(r, &req); err != nil {
		jsonutil.BadRequest(w, "Invalid request body")
		return
	}

	c, err := h.cats.Update(r.Context(), oid, models.Category{
		Name:        req.Name,
		Description: req.Description,
		Slug:        req.Slug,
	})
	if err != nil {
		switch {
		case err == mongo.ErrNoDocuments:
			jsonutil.NotFound(w, "Category not found")
		case errors.Is(err, categorystore.ErrDuplicateName),
			errors.Is(err, categorystore.ErrDuplicateSlug):
			jsonutil.BadRequest(w, err.Error())
		default:
			jsonutil.InternalError(w, "Could not update category")
		}
		return
	}
	jsonutil.OK(w, c)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.NotFound(w, "Category not found")
		return
	}

	reassigned, err := h.cats.Delete(r.Context(), oid)
	if err != nil {
		switch {
		case err == mongo.ErrNoDocuments:
			jsonutil.NotFound(w, "Category not found")
		case errors.Is(err, categorystore.ErrCommonCategory):
			jsonutil.BadRequest(w, err.Error())
		default:
			jsonutil.InternalError(w, "Could not delete category")
		}
		return
	}
	if reassigned > 0 {
		h.logger.Info("reassigned blogs to Common after category delete",
			zap.String("category_id", oid.Hex()), zap.Int64("blogs", reassigned))
	}
	jsonutil.OK(w, struct{}{})
}
