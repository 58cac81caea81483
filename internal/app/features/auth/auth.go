// Package auth implements account endpoints: admin-provisioned
// registration, login with email or employee ID, profile and password
// updates, and the OTP-based password reset flow.
package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	rolestore "github.com/Foragefoxoffice/Cotco-backend/internal/app/store/roles"
	userstore "github.com/Foragefoxoffice/Cotco-backend/internal/app/store/users"
	sysauth "github.com/Foragefoxoffice/Cotco-backend/internal/app/system/auth"
	"github.com/Foragefoxoffice/Cotco-backend/internal/app/system/authutil"
	"github.com/Foragefoxoffice/Cotco-backend/internal/app/system/coerce"
	"github.com/Foragefoxoffice/Cotco-backend/internal/app/system/jsonutil"
	"github.com/Foragefoxoffice/Cotco-backend/internal/app/system/mailer"
	"github.com/Foragefoxoffice/Cotco-backend/internal/app/system/uploads"
	"github.com/Foragefoxoffice/Cotco-backend/internal/domain/models"
)

const maxFormMemory = 10 << 20

// Config carries the handler settings that come from app configuration.
type Config struct {
	AppName   string
	LoginURL  string
	OTPExpiry time.Duration
}

type Handler struct {
	users   *userstore.Store
	roles   *rolestore.Store
	tokens  *sysauth.Manager
	mail    *mailer.Mailer
	uploads *uploads.Store
	cfg     Config
	logger  *zap.Logger
}

func NewHandler(db *mongo.Database, tokens *sysauth.Manager, mail *mailer.Mailer, up *uploads.Store, cfg Config, logger *zap.Logger) *Handler {
	if cfg.OTPExpiry <= 0 {
		cfg.OTPExpiry = 30 * time.Minute
	}
	return &Handler{
		users:   userstore.New(db),
		roles:   rolestore.New(db),
		tokens:  tokens,
		mail:    mail,
		uploads: up,
		cfg:     cfg,
		logger:  logger,
	}
}

// Routes wires the auth endpoints. Login and the password-reset flow are
// public; everything else, registration included, requires a valid token.
// Accounts are provisioned by an admin, never self-service.
func Routes(h *Handler, protect func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/login", h.login)
	r.Post("/forgotpassword", h.forgotPassword)
	r.Post("/resetpassword", h.resetPassword)

	r.Group(func(r chi.Router) {
		if protect != nil {
			r.Use(protect)
		}
		r.Post("/register", h.register)
		r.Get("/me", h.me)
		r.Post("/logout", h.logout)
		r.Put("/updatedetails", h.updateDetails)
		r.Put("/updatepassword", h.updatePassword)
	})

	return r
}

type roleSummary struct {
	ID   primitive.ObjectID `json:"id"`
	Name string             `json:"name"`
}

type registeredUser struct {
	ID            primitive.ObjectID `json:"id"`
	EmployeeID    string             `json:"employeeId"`
	Name          models.Lang        `json:"name"`
	Email         string             `json:"email"`
	Gender        string             `json:"gender,omitempty"`
	DateOfBirth   *time.Time         `json:"dateOfBirth,omitempty"`
	DateOfJoining *time.Time         `json:"dateOfJoining,omitempty"`
	Role          roleSummary        `json:"role"`
	ProfileImage  string             `json:"profileImage,omitempty"`
}

// register provisions a new staff account. The caller supplies the profile
// fields as a multipart form (profile image optional); the account gets a
// generated temporary password which is emailed to the new user.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		jsonutil.BadRequest(w, "Invalid form data")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	if email == "" {
		jsonutil.BadRequest(w, "Email is required")
		return
	}
	if existing, err := h.users.GetByEmail(r.Context(), email); err == nil && existing != nil {
		jsonutil.BadRequest(w, "User already exists")
		return
	} else if err != nil && err != mongo.ErrNoDocuments {
		jsonutil.InternalError(w, "Could not create user")
		return
	}

	roleID, err := primitive.ObjectIDFromHex(r.FormValue("roleId"))
	if err != nil {
		jsonutil.BadRequest(w, "Invalid role ID")
		return
	}
	role, err := h.roles.GetByID(r.Context(), roleID)
	if err != nil {
		jsonutil.BadRequest(w, "Invalid role ID")
		return
	}

	firstName := langValue(r, "firstName")
	tempPassword, err := authutil.GenerateTempPassword(firstName.EN)
	if err != nil {
		jsonutil.InternalError(w, "Could not create user")
		return
	}
	hash, err := authutil.HashPassword(tempPassword)
	if err != nil {
		jsonutil.InternalError(w, "Could not create user")
		return
	}

	u := models.User{
		EmployeeID:    r.FormValue("employeeId"),
		FirstName:     firstName,
		MiddleName:    langValue(r, "middleName"),
		LastName:      langValue(r, "lastName"),
		Email:         email,
		Phone:         r.FormValue("phone"),
		PasswordHash:  hash,
		RoleID:        role.ID,
		Status:        models.StatusActive,
		Department:    langValue(r, "department"),
		Designation:   langValue(r, "designation"),
		Gender:        r.FormValue("gender"),
		DateOfBirth:   dateValue(r.FormValue("dateOfBirth")),
		DateOfJoining: dateValue(r.FormValue("dateOfJoining")),
		IsVerified:    true,
	}

	if r.MultipartForm != nil {
		if fhs := r.MultipartForm.File["profileImage"]; len(fhs) > 0 {
			url, err := h.uploads.Save(r.Context(), fhs[0], "profile")
			if err != nil {
				h.logger.Warn("profile image upload failed", zap.Error(err))
			} else {
				u.ProfileImage = url
			}
		}
	}

	created, err := h.users.Create(r.Context(), u)
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicate) {
			jsonutil.BadRequest(w, "User already exists")
			return
		}
		jsonutil.InternalError(w, "Could not create user")
		return
	}

	text, html := mailer.WelcomeEmail(mailer.WelcomeEmailData{
		AppName:      h.cfg.AppName,
		UserName:     created.FullName(),
		Email:        created.Email,
		EmployeeID:   created.EmployeeID,
		TempPassword: tempPassword,
		LoginURL:     h.cfg.LoginURL,
	})
	if err := h.mail.Send(mailer.Email{
		To:       created.Email,
		Subject:  "Welcome to " + h.cfg.AppName,
		TextBody: text,
		HTMLBody: html,
	}); err != nil {
		// The account is useless without its temporary password, so roll
		// it back rather than leave an orphan the admin has to clean up.
		if _, derr := h.users.Delete(r.Context(), created.ID); derr != nil {
			h.logger.Error("could not roll back user after failed welcome email",
				zap.String("user_id", created.ID.Hex()), zap.Error(derr))
		}
		jsonutil.InternalError(w, "User created but email could not be sent")
		return
	}

	jsonutil.OK(w, registeredUser{
		ID:         created.ID,
		EmployeeID: created.EmployeeID,
		Name: models.Lang{
			EN: created.FullName(),
			VI: fullNameVI(&created),
		},
		Email:         created.Email,
		Gender:        created.Gender,
		DateOfBirth:   created.DateOfBirth,
		DateOfJoining: created.DateOfJoining,
		Role:          roleSummary{ID: role.ID, Name: role.Name},
		ProfileImage:  created.ProfileImage,
	})
}

type loginRequest struct {
	Email      string `json:"email"`
	EmployeeID string `json:"employeeId"`
	Password   string `json:"password"`
}

type loginRole struct {
	ID          primitive.ObjectID  `json:"id"`
	Name        string              `json:"name"`
	Permissions map[string][]string `json:"permissions"`
}

type loginUser struct {
	ID           primitive.ObjectID `json:"id"`
	EmployeeID   string             `json:"employeeId"`
	Name         models.Lang        `json:"name"`
	Email        string             `json:"email"`
	Role         loginRole          `json:"role"`
	ProfileImage string             `json:"profileImage,omitempty"`
}

type loginResponse struct {
	Success bool      `json:"success"`
	Token   string    `json:"token"`
	User    loginUser `json:"user"`
}

// login authenticates with email or employee ID plus password. The token is
// returned in the body and also set as an httpOnly cookie.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := jsonutil.Decode(r, &req); err != nil {
		jsonutil.BadRequest(w, "Please provide email or employee ID and password")
		return
	}
	identifier := strings.TrimSpace(req.Email)
	if identifier == "" {
		identifier = strings.TrimSpace(req.EmployeeID)
	}
	if identifier == "" || req.Password == "" {
		jsonutil.BadRequest(w, "Please provide email or employee ID and password")
		return
	}

	u, err := h.users.GetByLogin(r.Context(), identifier)
	if err != nil {
		jsonutil.Unauthorized(w, "Invalid credentials")
		return
	}
	if !authutil.CheckPassword(req.Password, u.PasswordHash) {
		jsonutil.Unauthorized(w, "Invalid credentials")
		return
	}
	if u.Status != models.StatusActive {
		jsonutil.Unauthorized(w, "Invalid credentials")
		return
	}

	role, err := h.roles.GetByID(r.Context(), u.RoleID)
	if err != nil {
		jsonutil.Unauthorized(w, "Invalid credentials")
		return
	}

	token, err := h.tokens.Issue(u.ID, u.RoleID)
	if err != nil {
		jsonutil.InternalError(w, "Could not sign in")
		return
	}
	h.tokens.SetCookie(w, token)

	jsonutil.JSON(w, http.StatusOK, loginResponse{
		Success: true,
		Token:   token,
		User: loginUser{
			ID:         u.ID,
			EmployeeID: u.EmployeeID,
			Name: models.Lang{
				EN: u.FullName(),
				VI: fullNameVI(u),
			},
			Email: u.Email,
			Role: loginRole{
				ID:          role.ID,
				Name:        role.Name,
				Permissions: role.Permission,
			},
			ProfileImage: u.ProfileImage,
		},
	})
}

type meResponse struct {
	User *models.User `json:"user"`
	Role *models.Role `json:"role"`
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	p, ok := sysauth.CurrentUser(r)
	if !ok {
		jsonutil.Unauthorized(w, "Not authorized to access this route")
		return
	}
	jsonutil.OK(w, meResponse{User: p.User, Role: p.Role})
}

type updateDetailsRequest struct {
	FirstName  *models.Lang `json:"firstName"`
	MiddleName *models.Lang `json:"middleName"`
	LastName   *models.Lang `json:"lastName"`
	Email      *string      `json:"email"`
	Phone      *string      `json:"phone"`
}

func (h *Handler) updateDetails(w http.ResponseWriter, r *http.Request) {
	p, ok := sysauth.CurrentUser(r)
	if !ok {
		jsonutil.Unauthorized(w, "Not authorized to access this route")
		return
	}
	var req updateDetailsRequest
	if err := jsonutil.Decode(r, &req); err != nil {
		jsonutil.BadRequest(w, "Invalid request body")
		return
	}

	upd := userstore.Update{
		FirstName:  req.FirstName,
		MiddleName: req.MiddleName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
	}
	u, err := h.users.Update(r.Context(), p.User.ID, upd)
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicate) {
			jsonutil.BadRequest(w, "User already exists")
			return
		}
		jsonutil.InternalError(w, "Could not update details")
		return
	}
	jsonutil.OK(w, u)
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *Handler) updatePassword(w http.ResponseWriter, r *http.Request) {
	p, ok := sysauth.CurrentUser(r)
	if !ok {
		jsonutil.Unauthorized(w, "Not authorized to access this route")
		return
	}
	var req updatePasswordRequest
	if err := jsonutil.Decode(r, &req); err != nil {
		jsonutil.BadRequest(w, "Invalid request body")
		return
	}

	if !authutil.CheckPassword(req.CurrentPassword, p.User.PasswordHash) {
		jsonutil.Unauthorized(w, "Password incorrect")
		return
	}
	if err := authutil.ValidatePassword(req.NewPassword); err != nil {
		jsonutil.BadRequest(w, err.Error())
		return
	}
	hash, err := authutil.HashPassword(req.NewPassword)
	if err != nil {
		jsonutil.InternalError(w, "Could not update password")
		return
	}
	if err := h.users.SetPassword(r.Context(), p.User.ID, hash); err != nil {
		jsonutil.InternalError(w, "Could not update password")
		return
	}

	// Re-issue so the session survives a later token-rotation policy.
	token, err := h.tokens.Issue(p.User.ID, p.User.RoleID)
	if err != nil {
		jsonutil.InternalError(w, "Could not update password")
		return
	}
	h.tokens.SetCookie(w, token)

	jsonutil.JSON(w, http.StatusOK, struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Token   string `json:"token"`
	}{true, "Password updated successfully", token})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// forgotPassword emails a 6-digit OTP that is valid for a short window.
func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := jsonutil.Decode(r, &req); err != nil || strings.TrimSpace(req.Email) == "" {
		jsonutil.BadRequest(w, "Provide email")
		return
	}

	u, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		jsonutil.NotFound(w, "No user found")
		return
	}

	otp, err := authutil.GenerateOTP()
	if err != nil {
		jsonutil.InternalError(w, "Email could not be sent")
		return
	}
	expire := time.Now().Add(h.cfg.OTPExpiry)
	if err := h.users.SetResetOTP(r.Context(), u.ID, otp, expire); err != nil {
		jsonutil.InternalError(w, "Email could not be sent")
		return
	}

	text, html := mailer.ResetOTPEmail(mailer.ResetOTPEmailData{
		AppName:   h.cfg.AppName,
		UserName:  u.FirstName.EN,
		OTP:       otp,
		ExpiryMin: int(h.cfg.OTPExpiry / time.Minute),
	})
	if err := h.mail.Send(mailer.Email{
		To:       u.Email,
		Subject:  "Password reset code",
		TextBody: text,
		HTMLBody: html,
	}); err != nil {
		if cerr := h.users.ClearResetOTP(r.Context(), u.ID); cerr != nil {
			h.logger.Error("could not clear reset OTP after failed email",
				zap.String("user_id", u.ID.Hex()), zap.Error(cerr))
		}
		jsonutil.InternalError(w, "Email could not be sent")
		return
	}

	jsonutil.JSON(w, http.StatusOK, struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}{true, "OTP sent to email"})
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := jsonutil.Decode(r, &req); err != nil ||
		strings.TrimSpace(req.Email) == "" || req.OTP == "" || req.NewPassword == "" {
		jsonutil.BadRequest(w, "Email, OTP & new password required")
		return
	}

	u, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		jsonutil.BadRequest(w, "Invalid or expired OTP")
		return
	}
	if u.ResetPasswordToken == "" || u.ResetPasswordToken != req.OTP ||
		u.ResetPasswordExpire == nil || time.Now().After(*u.ResetPasswordExpire) {
		jsonutil.BadRequest(w, "Invalid or expired OTP")
		return
	}

	if err := authutil.ValidatePassword(req.NewPassword); err != nil {
		jsonutil.BadRequest(w, err.Error())
		return
	}
	hash, err := authutil.HashPassword(req.NewPassword)
	if err != nil {
		jsonutil.InternalError(w, "Could not reset password")
		return
	}
	if err := h.users.SetPassword(r.Context(), u.ID, hash); err != nil {
		jsonutil.InternalError(w, "Could not reset password")
		return
	}
	if err := h.users.ClearResetOTP(r.Context(), u.ID); err != nil {
		h.logger.Error("could not clear reset OTP", zap.String("user_id", u.ID.Hex()), zap.Error(err))
	}

	jsonutil.JSON(w, http.StatusOK, struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}{true, "Password reset successful"})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.tokens.ClearCookie(w)
	jsonutil.OK(w, struct{}{})
}

// langValue reads a bilingual form field. The frontend posts these as JSON
// objects; a plain string is treated as the English value.
func langValue(r *http.Request, key string) models.Lang {
	raw := strings.TrimSpace(r.FormValue(key))
	if raw == "" {
		return models.Lang{}
	}
	m := coerce.Lang(coerce.Object(raw, map[string]any{"en": raw}))
	return models.Lang{EN: asString(m["en"]), VI: asString(m["vi"])}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// dateValue parses a form date, accepting RFC 3339 or a bare yyyy-mm-dd.
func dateValue(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func fullNameVI(u *models.User) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{u.FirstName.VI, u.MiddleName.VI, u.LastName.VI} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
