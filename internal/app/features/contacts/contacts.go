// Package contacts implements the public contact form and the admin view of
// its entries. Submission is open to any origin; listing and deleting are
// admin operations.
package contacts

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	contactstore "github.com/Foragefoxoffice/Cotco-backend/internal/app/store/contacts"
	"github.com/Foragefoxoffice/Cotco-backend/internal/app/system/apicors"
	"github.com/Foragefoxoffice/Cotco-backend/internal/app/system/jsonutil"
	"github.com/Foragefoxoffice/Cotco-backend/internal/app/system/uploads"
	"github.com/Foragefoxoffice/Cotco-backend/internal/domain/models"
)

const maxFormMemory = 20 << 20

type Handler struct {
	contacts *contactstore.Store
	uploads  *uploads.Store
	logger   *zap.Logger
}

func NewHandler(db *mongo.Database, up *uploads.Store, logger *zap.Logger) *Handler {
	return &Handler{contacts: contactstore.New(db), uploads: up, logger: logger}
}

func Routes(h *Handler, protect func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	// The marketing site posts enquiries cross-origin without cookies.
	r.With(apicors.Middleware()).Post("/", h.create)
	r.With(apicors.Middleware()).Options("/", func(w http.ResponseWriter, r *http.Request) {})

	r.Group(func(r chi.Router) {
		if protect != nil {
			r.Use(protect)
		}
		r.Get("/", h.list)
		r.Delete("/{id}", h.remove)
	})

	return r
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		jsonutil.BadRequest(w, "Invalid form data")
		return
	}

	entry := models.ContactEntry{
		Name:    r.FormValue("name"),
		Company: r.FormValue("company"),
		Email:   r.FormValue("email"),
		Phone:   r.FormValue("phone"),
		Product: r.FormValue("product"),
		Message: r.FormValue("message"),
	}

	if r.MultipartForm != nil {
		if fhs := r.MultipartForm.File["file"]; len(fhs) > 0 {
			url, err := h.uploads.Save(r.Context(), fhs[0], "contacts")
			if err != nil {
				jsonutil.BadRequest(w, "Could not store attachment")
				return
			}
			entry.FileURL = url
		}
	}

	created, err := h.contacts.Create(r.Context(), entry)
	if err != nil {
		jsonutil.BadRequest(w, err.Error())
		return
	}
	jsonutil.Created(w, created)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	entries, err := h.contacts.List(r.Context())
	if err != nil {
		jsonutil.InternalError(w, "Could not list contact entries")
		return
	}
	jsonutil.OK(w, entries)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.NotFound(w, "Contact not found")
		return
	}

	entry, err := h.contacts.Delete(r.Context(), oid)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			jsonutil.NotFound(w, "Contact not found")
			return
		}
		jsonutil.InternalError(w, "Could not delete contact")
		return
	}

	if entry.FileURL != "" {
		if err := h.uploads.Delete(r.Context(), entry.FileURL); err != nil {
			h.logger.Warn("could not remove contact attachment",
				zap.String("url", entry.FileURL), zap.Error(err))
		}
	}

	jsonutil.JSON(w, http.StatusOK, struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}{true, "Contact deleted successfully"})
}
