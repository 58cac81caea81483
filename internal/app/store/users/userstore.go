// Package userstore persists CMS staff accounts.
package userstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Foragefoxoffice/Cotco-backend/internal/app/system/normalize"
	"github.com/Foragefoxoffice/Cotco-backend/internal/domain/models"
)

var (
	// ErrDuplicate is returned when the email or employee ID is already taken.
	ErrDuplicate = errors.New("User already exists")
	errBadStatus = errors.New(`status must be "Active" or "Inactive"`)
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by normalized email. Returns
// mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByLogin looks up a user by email or employee ID, the two identifiers
// the login form accepts.
func (s *Store) GetByLogin(ctx context.Context, identifier string) (*models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"$or": []bson.M{
		{"email": normalize.Email(identifier)},
		{"employee_id": normalize.EmployeeID(identifier)},
	}}).Decode(&u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns all users, newest first.
func (s *Store) List(ctx context.Context) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Create inserts a new user after normalizing & validating fields.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.Email = normalize.Email(u.Email)
	u.EmployeeID = normalize.EmployeeID(u.EmployeeID)

	if u.Status == "" {
		u.Status = models.StatusActive
	}
	u.Status = normalize.Status(u.Status)
	if !models.IsValidStatus(u.Status) {
		return models.User{}, errBadStatus
	}

	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicate
		}
		return models.User{}, err
	}
	return u, nil
}

// Update holds the fields that can be updated for a user. Nil pointers leave
// the stored value untouched.
type Update struct {
	FirstName     *models.Lang
	MiddleName    *models.Lang
	LastName      *models.Lang
	Email         *string
	Phone         *string
	EmployeeID    *string
	RoleID        *primitive.ObjectID
	Status        *string
	ProfileImage  *string
	Department    *models.Lang
	Designation   *models.Lang
	Gender        *string
	DateOfBirth   *time.Time
	DateOfJoining *time.Time
}

// Update applies the given changes and returns the updated user.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) (*models.User, error) {
	set := bson.M{"updated_at": time.Now()}

	if upd.FirstName != nil {
		set["first_name"] = *upd.FirstName
	}
	if upd.MiddleName != nil {
		set["middle_name"] = *upd.MiddleName
	}
	if upd.LastName != nil {
		set["last_name"] = *upd.LastName
	}
	if upd.Email != nil {
		set["email"] = normalize.Email(*upd.Email)
	}
	if upd.Phone != nil {
		set["phone"] = *upd.Phone
	}
	if upd.EmployeeID != nil {
		set["employee_id"] = normalize.EmployeeID(*upd.EmployeeID)
	}
	if upd.RoleID != nil {
		set["role_id"] = *upd.RoleID
	}
	if upd.Status != nil {
		status := normalize.Status(*upd.Status)
		if !models.IsValidStatus(status) {
			return nil, errBadStatus
		}
		set["status"] = status
	}
	if upd.ProfileImage != nil {
		set["profile_image"] = *upd.ProfileImage
	}
	if upd.Department != nil {
		set["department"] = *upd.Department
	}
	if upd.Designation != nil {
		set["designation"] = *upd.Designation
	}
	if upd.Gender != nil {
		set["gender"] = *upd.Gender
	}
	if upd.DateOfBirth != nil {
		set["date_of_birth"] = *upd.DateOfBirth
	}
	if upd.DateOfJoining != nil {
		set["date_of_joining"] = *upd.DateOfJoining
	}

	var u models.User
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return &u, nil
}

// SetPassword replaces the user's password hash.
func (s *Store) SetPassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"password_hash": hash,
		"updated_at":    time.Now(),
	}})
	return err
}

// SetResetOTP stores the password-reset OTP and its expiry on the user.
func (s *Store) SetResetOTP(ctx context.Context, id primitive.ObjectID, otp string, expire time.Time) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"reset_password_token":  otp,
		"reset_password_expire": expire,
	}})
	return err
}

// ClearResetOTP removes any pending reset OTP, e.g. after a successful reset
// or when the OTP email could not be sent.
func (s *Store) ClearResetOTP(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$unset": bson.M{
		"reset_password_token":  "",
		"reset_password_expire": "",
	}})
	return err
}

// Delete deletes a user by ID.
// Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// CountByRole returns how many users hold the given role. Role deletion is
// blocked while this is non-zero.
func (s *Store) CountByRole(ctx context.Context, roleID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"role_id": roleID})
}
