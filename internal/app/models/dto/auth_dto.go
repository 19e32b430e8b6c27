package dto

import (
	"time"

	"github.com/avelin/formatrack/internal/app/models"
)

// RegisterStudentRequest represents a student self-registration
type RegisterStudentRequest struct {
	Email         string  `json:"email" validate:"required,email"`
	Password      string  `json:"password" validate:"required,min=8"`
	FirstName     string  `json:"firstName" validate:"required,min=2,max=100"`
	LastName      string  `json:"lastName" validate:"required,min=2,max=100"`
	Phone         *string `json:"phone,omitempty"`
	StudentNumber string  `json:"studentNumber" validate:"required"`
	BirthDate     *string `json:"birthDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Address       *string `json:"address,omitempty"`
	City          *string `json:"city,omitempty"`
	PostalCode    *string `json:"postalCode,omitempty"`
	Country       *string `json:"country,omitempty"`
}

// RegisterTrainerRequest represents a trainer self-registration
type RegisterTrainerRequest struct {
	Email           string  `json:"email" validate:"required,email"`
	Password        string  `json:"password" validate:"required,min=8"`
	FirstName       string  `json:"firstName" validate:"required,min=2,max=100"`
	LastName        string  `json:"lastName" validate:"required,min=2,max=100"`
	Phone           *string `json:"phone,omitempty"`
	BadgeNumber     string  `json:"badgeNumber" validate:"required"`
	Specialty       string  `json:"specialty" validate:"required"`
	YearsExperience int     `json:"yearsExperience" validate:"min=0,max=60"`
	Bio             *string `json:"bio,omitempty"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest carries the opaque refresh token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// TokenResponse carries a freshly issued token pair
type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	TokenType        string `json:"tokenType" example:"Bearer"`
	ExpiresIn        int    `json:"expiresIn" example:"3600"`
	RefreshExpiresIn int    `json:"refreshExpiresIn" example:"2592000"`
}

// AuthResponse is returned after registration and login
type AuthResponse struct {
	User   UserResponse  `json:"user"`
	Tokens TokenResponse `json:"tokens"`
}

// UserResponse is the public view of a user with its role profile
type UserResponse struct {
	ID          int64            `json:"id"`
	Email       string           `json:"email"`
	FirstName   string           `json:"firstName"`
	LastName    string           `json:"lastName"`
	Phone       *string          `json:"phone,omitempty"`
	RoleType    string           `json:"roleType" enums:"STUDENT,TRAINER,ADMIN"`
	IsActive    bool             `json:"isActive"`
	LastLoginAt *time.Time       `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	Student     *StudentProfile  `json:"student,omitempty"`
	Trainer     *TrainerProfile  `json:"trainer,omitempty"`
}

// StudentProfile is the student part of a user response
type StudentProfile struct {
	ID            int64   `json:"id"`
	StudentNumber string  `json:"studentNumber"`
	BirthDate     *string `json:"birthDate,omitempty"`
	Address       *string `json:"address,omitempty"`
	City          *string `json:"city,omitempty"`
	PostalCode    *string `json:"postalCode,omitempty"`
	Country       *string `json:"country,omitempty"`
}

// TrainerProfile is the trainer part of a user response
type TrainerProfile struct {
	ID              int64   `json:"id"`
	BadgeNumber     string  `json:"badgeNumber"`
	Specialty       string  `json:"specialty"`
	YearsExperience int     `json:"yearsExperience"`
	Bio             *string `json:"bio,omitempty"`
}

// UpdateProfileRequest updates the caller's own user row and, depending on
// role, the matching profile fields
type UpdateProfileRequest struct {
	FirstName  *string `json:"firstName,omitempty" validate:"omitempty,min=2,max=100"`
	LastName   *string `json:"lastName,omitempty" validate:"omitempty,min=2,max=100"`
	Phone      *string `json:"phone,omitempty"`
	Address    *string `json:"address,omitempty"`
	City       *string `json:"city,omitempty"`
	PostalCode *string `json:"postalCode,omitempty"`
	Country    *string `json:"country,omitempty"`
	Specialty  *string `json:"specialty,omitempty"`
	Bio        *string `json:"bio,omitempty"`
}

// FromUser builds a UserResponse from the user row and optional profiles
func FromUser(user *models.User, student *models.Student, trainer *models.Trainer) UserResponse {
	resp := UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Phone:       user.Phone,
		RoleType:    string(user.RoleType),
		IsActive:    user.IsActive,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}

	if student != nil {
		var birthDate *string
		if student.BirthDate != nil {
			s := student.BirthDate.Format("2006-01-02")
			birthDate = &s
		}
		resp.Student = &StudentProfile{
			ID:            student.ID,
			StudentNumber: student.StudentNumber,
			BirthDate:     birthDate,
			Address:       student.Address,
			City:          student.City,
			PostalCode:    student.PostalCode,
			Country:       student.Country,
		}
	}

	if trainer != nil {
		resp.Trainer = &TrainerProfile{
			ID:              trainer.ID,
			BadgeNumber:     trainer.BadgeNumber,
			Specialty:       trainer.Specialty,
			YearsExperience: trainer.YearsExperience,
			Bio:             trainer.Bio,
		}
	}

	return resp
}
