package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/avelin/formatrack/internal/pkg/auth"
)

// defaultAdmin is created on first startup so the instance is never
// locked out. The password must be changed through the profile endpoint.
const (
	defaultAdminEmail    = "admin@formatrack.app"
	defaultAdminPassword = "ChangeMe123!"
)

var starterDomains = []struct {
	name        string
	description string
	color       string
}{
	{"Informatique", "Développement, réseaux et administration systèmes", "#2563eb"},
	{"Gestion", "Comptabilité, management et ressources humaines", "#16a34a"},
	{"Langues", "Formations linguistiques professionnelles", "#d97706"},
}

// CreateDefaultData inserts the default admin account and the starter
// catalog domains when they are missing. Errors are collected rather than
// aborting so a partial seed never blocks startup.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	var finalErr error

	if err := seedAdminUser(ctx, dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Error creating default admin user")
		finalErr = errors.Join(finalErr, err)
	}

	if err := seedDomains(ctx, dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Error creating starter domains")
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}

func seedAdminUser(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	var exists bool
	err := dbPool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE role_type = 'ADMIN')`).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hashed, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		return err
	}

	_, err = dbPool.Exec(ctx, `
		INSERT INTO users (email, password, first_name, last_name, role_type, is_active)
		VALUES ($1, $2, 'Admin', 'FormaTrack', 'ADMIN', TRUE)
		ON CONFLICT (email) DO NOTHING`,
		defaultAdminEmail, hashed)
	if err != nil {
		return err
	}

	lgr.Info().Str("email", defaultAdminEmail).Msg("Default admin account created")
	return nil
}

func seedDomains(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	var count int64
	if err := dbPool.QueryRow(ctx, `SELECT COUNT(*) FROM domains`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, d := range starterDomains {
		_, err := dbPool.Exec(ctx, `
			INSERT INTO domains (name, description, color)
			VALUES ($1, $2, $3)
			ON CONFLICT (name) DO NOTHING`,
			d.name, d.description, d.color)
		if err != nil {
			return err
		}
	}

	lgr.Info().Int("count", len(starterDomains)).Msg("Starter domains created")
	return nil
}
