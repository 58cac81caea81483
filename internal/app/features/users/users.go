// Package users implements admin CRUD for staff accounts.
package users

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	rolestore "github.com/Foragefoxoffice/Cotco-backend/internal/app/store/roles"
	userstore "github.com/Foragefoxoffice/Cotco-backend/internal/app/store/users"
	"github.com/Foragefoxoffice/Cotco-backend/internal/app/system/authutil"
	"github.com/Foragefoxoffice/Cotco-backend/internal/app/system/authz"
	"github.com/Foragefoxoffice/Cotco-backend/internal/app/system/jsonutil"
	"github.com/Foragefoxoffice/Cotco-backend/internal/domain/models"
)

type Handler struct {
	users  *userstore.Store
	roles  *rolestore.Store
	logger *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		users:  userstore.New(db),
		roles:  rolestore.New(db),
		logger: logger,
	}
}

// Routes wires the user CRUD endpoints. The whole surface is admin-only.
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

type roleRef struct {
	ID          primitive.ObjectID  `json:"_id"`
	Name        string              `json:"name"`
	Permissions map[string][]string `json:"permissions"`
}

// userWithRole replaces the raw role ObjectID with the populated role
// document. The outer Role field shadows the embedded user's "role" tag.
type userWithRole struct {
	*models.User
	Role *roleRef `json:"role"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		jsonutil.InternalError(w, "Could not list users")
		return
	}

	rolesByID := map[primitive.ObjectID]*roleRef{}
	if roles, err := h.roles.List(r.Context()); err == nil {
		for i := range roles {
			ro := &roles[i]
			rolesByID[ro.ID] = &roleRef{ID: ro.ID, Name: ro.Name, Permissions: ro.Permission}
		}
	} else {
		h.logger.Warn("could not populate roles for user list", zap.Error(err))
	}

	out := make([]userWithRole, len(users))
	for i := range users {
		out[i] = userWithRole{User: &users[i], Role: rolesByID[users[i].RoleID]}
	}
	jsonutil.List(w, len(out), out)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		jsonutil.NotFound(w, "User not found with id of "+id)
		return
	}
	u, err := h.users.GetByID(r.Context(), oid)
	if err != nil {
		jsonutil.NotFound(w, "User not found with id of "+id)
		return
	}
	jsonutil.OK(w, u)
}

type createRequest struct {
	EmployeeID    string      `json:"employeeId"`
	FirstName     models.Lang `json:"firstName"`
	MiddleName    models.Lang `json:"middleName"`
	LastName      models.Lang `json:"lastName"`
	Email         string      `json:"email"`
	Phone         string      `json:"phone"`
	Password      string      `json:"password"`
	RoleID        string      `json:"role"`
	Status        string      `json:"status"`
	Department    models.Lang `json:"department"`
	Designation   models.Lang `json:"designation"`
	Gender        string      `json:"gender"`
	DateOfBirth   *time.Time  `json:"dateOfBirth"`
	DateOfJoining *time.Time  `json:"dateOfJoining"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := jsonutil.Decode(r, &req); err != nil {
		jsonutil.BadRequest(w, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		jsonutil.BadRequest(w, "Email and password are required")
		return
	}
	if err := authutil.ValidatePassword(req.Password); err != nil {
		jsonutil.BadRequest(w, err.Error())
		return
	}

	roleID, err := primitive.ObjectIDFromHex(req.RoleID)
	if err != nil {
		jsonutil.BadRequest(w, "Invalid role ID")
		return
	}
	if _, err := h.roles.GetByID(r.Context(), roleID); err != nil {
		jsonutil.BadRequest(w, "Invalid role ID")
		return
	}

	hash, err := authutil.HashPassword(req.Password)
	if err != nil {
		jsonutil.InternalError(w, "Could not create user")
		return
	}

	status := req.Status
	if status == "" {
		status = models.StatusActive
	}

	u, err := h.users.Create(r.Context(), models.User{
		EmployeeID:    req.EmployeeID,
		FirstName:     req.FirstName,
		MiddleName:    req.MiddleName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		PasswordHash:  hash,
		RoleID:        roleID,
		Status:        status,
		Department:    req.Department,
		Designation:   req.Designation,
		Gender:        req.Gender,
		DateOfBirth:   req.DateOfBirth,
		DateOfJoining: req.DateOfJoining,
		IsVerified:    true,
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicate) {
			jsonutil.BadRequest(w, "User already exists")
			return
		}
		jsonutil.BadRequest(w, err.Error())
		return
	}
	jsonutil.Created(w, u)
}

type updateRequest struct {
	EmployeeID    *string      `json:"employeeId"`
	FirstName     *models.Lang `json:"firstName"`
	MiddleName    *models.Lang `json:"middleName"`
	LastName      *models.Lang `json:"lastName"`
	Email         *string      `json:"email"`
	Phone         *string      `json:"phone"`
	RoleID        *string      `json:"role"`
	Status        *string      `json:"status"`
	Department    *models.Lang `json:"department"`
	Designation   *models.Lang `json:"designation"`
	Gender        *string      `json:"gender"`
	DateOfBirth   *time.Time   `json:"dateOfBirth"`
	DateOfJoining *time.Time   `json:"dateOfJoining"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		jsonutil.NotFound(w, "User not found with id of "+id)
		return
	}

	var req updateRequest
	if err := jsonutil.Decode(r, &req); err != nil {
		jsonutil.BadRequest(w, "Invalid request body")
		return
	}

	upd := userstore.Update{
		EmployeeID:    req.EmployeeID,
		FirstName:     req.FirstName,
		MiddleName:    req.MiddleName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		Status:        req.Status,
		Department:    req.Department,
		Designation:   req.Designation,
		Gender:        req.Gender,
		DateOfBirth:   req.DateOfBirth,
		DateOfJoining: req.DateOfJoining,
	}
	if req.RoleID != nil {
		roleID, err := primitive.ObjectIDFromHex(*req.RoleID)
		if err != nil {
			jsonutil.BadRequest(w, "Invalid role ID")
			return
		}
		if _, err := h.roles.GetByID(r.Context(), roleID); err != nil {
			jsonutil.BadRequest(w, "Invalid role ID")
			return
		}
		upd.RoleID = &roleID
	}

	u, err := h.users.Update(r.Context(), oid, upd)
	if err != nil {
		switch {
		case err == mongo.ErrNoDocuments:
			jsonutil.NotFound(w, "User not found with id of "+id)
		case errors.Is(err, userstore.ErrDuplicate):
			jsonutil.BadRequest(w, "User already exists")
		default:
			jsonutil.BadRequest(w, err.Error())
		}
		return
	}
	jsonutil.OK(w, u)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	if !authz.IsSuperAdmin(r) {
		jsonutil.Forbidden(w, "Only Super Admin can delete users")
		return
	}

	id := chi.URLParam(r, "id")
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		jsonutil.NotFound(w, "User not found with id of "+id)
		return
	}
	u, err := h.users.GetByID(r.Context(), oid)
	if err != nil {
		jsonutil.NotFound(w, "User not found with id of "+id)
		return
	}

	// The seeded administrator account must always survive.
	if role, err := h.roles.GetByID(r.Context(), u.RoleID); err == nil && role.IsSuperAdmin() {
		jsonutil.Forbidden(w, "You cannot delete the Super Admin account")
		return
	}

	if _, err := h.users.Delete(r.Context(), oid); err != nil {
		jsonutil.InternalError(w, "Could not delete user")
		return
	}

	jsonutil.JSON(w, http.StatusOK, struct {
		Success bool     `json:"success"`
		Data    struct{} `json:"data"`
		Message string   `json:"message"`
	}{Success: true, Message: "User deleted successfully"})
}
