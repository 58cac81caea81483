// Package roles implements CRUD for roles and their permission maps.
package roles

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	rolestore "github.com/Foragefoxoffice/Cotco-backend/internal/app/store/roles"
	userstore "github.com/Foragefoxoffice/Cotco-backend/internal/app/store/users"
	"github.com/Foragefoxoffice/Cotco-backend/internal/app/system/jsonutil"
	"github.com/Foragefoxoffice/Cotco-backend/internal/domain/models"
)

type Handler struct {
	roles  *rolestore.Store
	users  *userstore.Store
	logger *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		roles:  rolestore.New(db),
		users:  userstore.New(db),
		logger: logger,
	}
}

// Routes wires the role CRUD endpoints, all behind authentication.
func Routes(h *Handler, protect func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	if protect != nil {
		r.Use(protect)
	}

	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.remove)

	return r
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roles.List(r.Context())
	if err != nil {
		jsonutil.InternalError(w, "Could not list roles")
		return
	}
	jsonutil.OK(w, roles)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.NotFound(w, "Role not found")
		return
	}
	role, err := h.roles.GetByID(r.Context(), oid)
	if err != nil {
		jsonutil.NotFound(w, "Role not found")
		return
	}
	jsonutil.OK(w, role)
}

type roleRequest struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Permissions map[string][]string `json:"permissions"`
	Status      string              `json:"status"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req roleRequest
	if err := jsonutil.Decode(r, &req); err != nil {
		jsonutil.BadRequest(w, "Invalid request body")
		return
	}

	role, err := h.roles.Create(r.Context(), models.Role{
		Name:        req.Name,
		Description: req.Description,
		Permission:  req.Permissions,
		Status:      req.Status,
	})
	if err != nil {
		jsonutil.BadRequest(w, err.Error())
		return
	}
	jsonutil.Created(w, role)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.NotFound(w, "Role not found")
		return
	}

	var req roleRequest
	if err := jsonutil.Decode(r, &req); err != nil {
		jsonutil.BadRequest(w, "Invalid request body")
		return
	}

	role, err := h.roles.Update(r.Context(), oid, models.Role{
		Name:        req.Name,
		Description: req.Description,
		Permission:  req.Permissions,
		Status:      req.Status,
	})
	if err != nil {
		switch {
		case err == mongo.ErrNoDocuments:
			jsonutil.NotFound(w, "Role not found")
		case errors.Is(err, rolestore.ErrSuperAdmin):
			jsonutil.Forbidden(w, err.Error())
		default:
			jsonutil.BadRequest(w, err.Error())
		}
		return
	}
	jsonutil.OK(w, role)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.NotFound(w, "Role not found")
		return
	}

	// A role that still has members cannot be removed; reassign them first.
	n, err := h.users.CountByRole(r.Context(), oid)
	if err != nil {
		jsonutil.InternalError(w, "Could not delete role")
		return
	}
	if n > 0 {
		jsonutil.BadRequest(w, "Role is assigned to users and cannot be deleted")
		return
	}

	deleted, err := h.roles.Delete(r.Context(), oid)
	if err != nil {
		if errors.Is(err, rolestore.ErrSuperAdmin) {
			jsonutil.Forbidden(w, err.Error())
			return
		}
		jsonutil.InternalError(w, "Could not delete role")
		return
	}
	if deleted == 0 {
		jsonutil.NotFound(w, "Role not found")
		return
	}

	jsonutil.JSON(w, http.StatusOK, struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}{true, "Role deleted successfully"})
}
