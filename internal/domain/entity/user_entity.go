package entity

import (
	"time"
)

// User is the aggregate root for user domain
// Passwords are stored as bcrypt hashes in PasswordHash field.
//
// PendingEmailVerificationToken is set from signup until the email is
// verified and is empty afterwards.
type User struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	PasswordHash       string    `json:"-"`
	UserName           string    `json:"userName"`
	Age                int       `json:"age"`
	FitnessGoal        string    `json:"fitnessGoal"`
	FitnessLevel       string    `json:"fitnessLevel"`
	SubscriptionStatus string    `json:"subscriptionStatus"`
	EmailVerified      bool      `json:"emailVerified"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`

	PendingEmailVerificationToken string `json:"-"`
}

// ProfileUpdate carries the editable profile attributes. Nil fields are left untouched.
type ProfileUpdate struct {
	UserName           *string
	Age                *int
	FitnessGoal        *string
	FitnessLevel       *string
	SubscriptionStatus *string
}

// Empty reports whether the update changes nothing.
func (p ProfileUpdate) Empty() bool {
	return p.UserName == nil && p.Age == nil && p.FitnessGoal == nil &&
		p.FitnessLevel == nil && p.SubscriptionStatus == nil
}

// Apply copies the set fields onto u.
func (p ProfileUpdate) Apply(u *User) {
	if p.UserName != nil {
		u.UserName = *p.UserName
	}
	if p.Age != nil {
		u.Age = *p.Age
	}
	if p.FitnessGoal != nil {
		u.FitnessGoal = *p.FitnessGoal
	}
	if p.FitnessLevel != nil {
		u.FitnessLevel = *p.FitnessLevel
	}
	if p.SubscriptionStatus != nil {
		u.SubscriptionStatus = *p.SubscriptionStatus
	}
}
