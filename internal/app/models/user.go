package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`
	Email       string     `json:"email" db:"email" example:"user@formatrack.app"`
	Password    string     `json:"-" db:"password"` // hashed, excluded from JSON
	FirstName   string     `json:"firstName" db:"first_name" example:"Claire"`
	LastName    string     `json:"lastName" db:"last_name" example:"Moreau"`
	Phone       *string    `json:"phone,omitempty" db:"phone"`
	RoleType    RoleType   `json:"roleType" db:"role_type" example:"STUDENT"`
	IsActive    bool       `json:"isActive" db:"is_active" example:"true"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// FullName returns "First Last" for display and email salutations.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Student defines the student profile based on the 'students' table
type Student struct {
	ID            int64      `json:"id" db:"id"`
	UserID        int64      `json:"userId" db:"user_id"`
	StudentNumber string     `json:"studentNumber" db:"student_number"`
	BirthDate     *time.Time `json:"birthDate,omitempty" db:"birth_date"`
	Address       *string    `json:"address,omitempty" db:"address"`
	City          *string    `json:"city,omitempty" db:"city"`
	PostalCode    *string    `json:"postalCode,omitempty" db:"postal_code"`
	Country       *string    `json:"country,omitempty" db:"country"`
	User          *User      `json:"user,omitempty"` // Relation, no db tag
}

// Trainer defines the trainer profile based on the 'trainers' table
type Trainer struct {
	ID              int64   `json:"id" db:"id"`
	UserID          int64   `json:"userId" db:"user_id"`
	BadgeNumber     string  `json:"badgeNumber" db:"badge_number"`
	Specialty       string  `json:"specialty" db:"specialty"`
	YearsExperience int     `json:"yearsExperience" db:"years_experience"`
	Bio             *string `json:"bio,omitempty" db:"bio"`
	User            *User   `json:"user,omitempty"` // Relation, no db tag
}
