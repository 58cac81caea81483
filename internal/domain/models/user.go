package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a CMS staff account. Accounts are provisioned by an admin;
// the user receives a temporary password by email and signs in with either
// their email address or employee ID.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	EmployeeID string             `bson:"employee_id" json:"employeeId"`

	FirstName  Lang `bson:"first_name" json:"firstName"`
	MiddleName Lang `bson:"middle_name" json:"middleName"`
	LastName   Lang `bson:"last_name" json:"lastName"`

	Email string `bson:"email" json:"email"` // stored lowercase
	Phone string `bson:"phone" json:"phone"`

	// PasswordHash is the bcrypt hash. Never serialized to JSON.
	PasswordHash string `bson:"password_hash" json:"-"`

	RoleID primitive.ObjectID `bson:"role_id" json:"role"`

	Status string `bson:"status" json:"status"` // Active, Inactive

	ProfileImage string `bson:"profile_image,omitempty" json:"profileImage,omitempty"`

	Department  Lang `bson:"department" json:"department"`
	Designation Lang `bson:"designation" json:"designation"`

	Gender        string     `bson:"gender,omitempty" json:"gender,omitempty"` // Male, Female, Others
	DateOfBirth   *time.Time `bson:"date_of_birth,omitempty" json:"dateOfBirth,omitempty"`
	DateOfJoining *time.Time `bson:"date_of_joining,omitempty" json:"dateOfJoining,omitempty"`

	IsVerified bool `bson:"is_verified" json:"isVerified"`

	// OTP-based password reset. The token is the 6-digit code emailed to the
	// user; it is only valid until ResetPasswordExpire.
	ResetPasswordToken  string     `bson:"reset_password_token,omitempty" json:"-"`
	ResetPasswordExpire *time.Time `bson:"reset_password_expire,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// User status values.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// IsValidStatus checks a user/role status value.
func IsValidStatus(s string) bool {
	return s == StatusActive || s == StatusInactive
}

// FullName returns the assembled English display name.
func (u *User) FullName() string {
	name := u.FirstName.EN
	if u.MiddleName.EN != "" {
		name += " " + u.MiddleName.EN
	}
	if u.LastName.EN != "" {
		name += " " + u.LastName.EN
	}
	return name
}
