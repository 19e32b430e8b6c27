package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	appauth "github.com/avelin/formatrack/internal/app/auth"
	"github.com/avelin/formatrack/internal/app/models"
	"github.com/avelin/formatrack/internal/app/models/dto"
	"github.com/avelin/formatrack/internal/app/repositories"
	"github.com/avelin/formatrack/internal/db"
	"github.com/avelin/formatrack/internal/pkg/apperrors"
	"github.com/avelin/formatrack/internal/pkg/auth"
	"github.com/avelin/formatrack/internal/pkg/dberrors"
	"github.com/avelin/formatrack/internal/pkg/email"
	"github.com/avelin/formatrack/internal/pkg/helpers"
	"github.com/avelin/formatrack/internal/pkg/logger"
)

// AuthService handles registration, login and token lifecycle
type AuthService struct {
	db           *db.PostgresDB
	users        *repositories.UserRepository
	tokens       *repositories.TokenRepository
	jwtService   *auth.JWTService
	emailService email.EmailService
}

// NewAuthService creates a new AuthService
func NewAuthService(
	database *db.PostgresDB,
	users *repositories.UserRepository,
	tokens *repositories.TokenRepository,
	jwtService *auth.JWTService,
	emailService email.EmailService,
) *AuthService {
	return &AuthService{
		db:           database,
		users:        users,
		tokens:       tokens,
		jwtService:   jwtService,
		emailService: emailService,
	}
}

// RegisterStudent creates a user with the student role and its profile in
// one transaction
func (s *AuthService) RegisterStudent(ctx context.Context, req dto.RegisterStudentRequest) (*dto.AuthResponse, error) {
	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var birthDate *time.Time
	if req.BirthDate != nil {
		parsed, err := time.Parse(helpers.DateLayout, *req.BirthDate)
		if err != nil {
			return nil, apperrors.NewValidationError("birthDate must be formatted as YYYY-MM-DD")
		}
		birthDate = &parsed
	}

	user := &models.User{
		Email:     req.Email,
		Password:  hashed,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		RoleType:  models.RoleStudent,
		IsActive:  true,
	}
	student := &models.Student{
		StudentNumber: req.StudentNumber,
		BirthDate:     birthDate,
		Address:       req.Address,
		City:          req.City,
		PostalCode:    req.PostalCode,
		Country:       req.Country,
	}

	err = s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		userID, err := s.users.CreateUserTx(ctx, tx, user)
		if err != nil {
			return err
		}
		user.ID = userID
		student.UserID = userID

		studentID, err := s.users.CreateStudentTx(ctx, tx, student)
		if err != nil {
			return err
		}
		student.ID = studentID
		return nil
	})
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_users_email") {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, "uq_students_number") {
			return nil, apperrors.ErrStudentNumberAlreadyExists
		}
		return nil, err
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		User:   dto.FromUser(user, student, nil),
		Tokens: *tokens,
	}, nil
}

// RegisterTrainer creates a user with the trainer role and its profile in
// one transaction, then sends a welcome email without blocking the response
func (s *AuthService) RegisterTrainer(ctx context.Context, req dto.RegisterTrainerRequest) (*dto.AuthResponse, error) {
	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:     req.Email,
		Password:  hashed,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		RoleType:  models.RoleTrainer,
		IsActive:  true,
	}
	trainer := &models.Trainer{
		BadgeNumber:     req.BadgeNumber,
		Specialty:       req.Specialty,
		YearsExperience: req.YearsExperience,
		Bio:             req.Bio,
	}

	err = s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		userID, err := s.users.CreateUserTx(ctx, tx, user)
		if err != nil {
			return err
		}
		user.ID = userID
		trainer.UserID = userID

		trainerID, err := s.users.CreateTrainerTx(ctx, tx, trainer)
		if err != nil {
			return err
		}
		trainer.ID = trainerID
		return nil
	})
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_users_email") {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, "uq_trainers_badge") {
			return nil, apperrors.ErrBadgeNumberAlreadyExists
		}
		return nil, err
	}

	go func() {
		if err := s.emailService.SendTrainerWelcomeEmail(user.Email, user.FullName()); err != nil {
			logger.Warn().Err(err).Str("email", user.Email).Msg("Failed to send trainer welcome email")
		}
	}()

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		User:   dto.FromUser(user, nil, trainer),
		Tokens: *tokens,
	}, nil
}

// Login authenticates a user and issues a token pair
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	s.users.UpdateLastLogin(ctx, user.ID)

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	profile, err := s.GetProfile(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{User: *profile, Tokens: *tokens}, nil
}

// Refresh exchanges a valid refresh token for a new token pair. The used
// token is revoked so each refresh token works exactly once.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	stored, err := s.tokens.Get(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	if stored.Revoked {
		return nil, apperrors.ErrTokenRevoked
	}
	if time.Now().After(stored.ExpiresAt) {
		return nil, apperrors.ErrTokenExpired
	}

	user, err := s.users.GetUserByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokens.Revoke(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes the given refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokens.Revoke(ctx, refreshToken)
}

// GetProfile returns the user with its role profile attached
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var student *models.Student
	var trainer *models.Trainer
	switch user.RoleType {
	case models.RoleStudent:
		student, err = s.users.GetStudentByUserID(ctx, userID)
	case models.RoleTrainer:
		trainer, err = s.users.GetTrainerByUserID(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	resp := dto.FromUser(user, student, trainer)
	return &resp, nil
}

// UpdateProfile updates the caller's own user row and, per role, the
// matching profile fields
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, req dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	switch user.RoleType {
	case models.RoleStudent:
		student, err := s.users.GetStudentByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if req.Address != nil {
			student.Address = req.Address
		}
		if req.City != nil {
			student.City = req.City
		}
		if req.PostalCode != nil {
			student.PostalCode = req.PostalCode
		}
		if req.Country != nil {
			student.Country = req.Country
		}
		if err := s.users.UpdateStudent(ctx, student); err != nil {
			return nil, err
		}
	case models.RoleTrainer:
		trainer, err := s.users.GetTrainerByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if req.Specialty != nil {
			trainer.Specialty = *req.Specialty
		}
		if req.Bio != nil {
			trainer.Bio = req.Bio
		}
		if err := s.users.UpdateTrainer(ctx, trainer); err != nil {
			return nil, err
		}
	}

	return s.GetProfile(ctx, userID)
}

// ResolveActor turns validated token claims into the actor used for
// authorization, loading the role profile id when the role has one
func (s *AuthService) ResolveActor(ctx context.Context, claims *auth.Claims) (appauth.Actor, error) {
	actor := appauth.Actor{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   models.RoleType(claims.RoleType),
	}

	switch actor.Role {
	case models.RoleStudent:
		student, err := s.users.GetStudentByUserID(ctx, claims.UserID)
		if err != nil {
			return appauth.Actor{}, err
		}
		actor.StudentID = student.ID
	case models.RoleTrainer:
		trainer, err := s.users.GetTrainerByUserID(ctx, claims.UserID)
		if err != nil {
			return appauth.Actor{}, err
		}
		actor.TrainerID = trainer.ID
	case models.RoleAdmin:
	default:
		return appauth.Actor{}, apperrors.ErrTokenInvalid
	}

	return actor, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.Store(ctx, user.ID, refreshToken, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		TokenType:        "Bearer",
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
	}, nil
}
