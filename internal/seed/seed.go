package seed

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/masilo/registra/internal/db"
	"github.com/masilo/registra/internal/pkg/auth"
	"github.com/rs/zerolog"
)

// Default admin credentials for a fresh deployment. The password should be
// rotated immediately after first login.
const (
	defaultAdminName     = "System Administrator"
	defaultAdminEmail    = "admin@registra.local"
	defaultAdminPassword = "Admin123!"
)

// CreateDefaultData creates the default admin account if no account with its
// email exists yet, so a fresh deployment is immediately usable. The check and
// insert run in one transaction so concurrent instances cannot both seed.
func CreateDefaultData(ctx context.Context, database *db.PostgresDB, lgr zerolog.Logger) error {
	return database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var exists bool
		err := tx.QueryRow(ctx, `
			SELECT EXISTS(SELECT 1 FROM admins WHERE email = $1)`,
			defaultAdminEmail).Scan(&exists)
		if err != nil {
			lgr.Error().Err(err).Msg("Error checking if default admin exists")
			return err
		}
		if exists {
			return nil
		}

		lgr.Info().Msg("Creating default admin account...")

		hashedPassword, err := auth.HashPassword(defaultAdminPassword)
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing default admin password")
			return err
		}

		var id int64
		err = tx.QueryRow(ctx, `
			INSERT INTO admins (full_name, email, password)
			VALUES ($1, $2, $3)
			RETURNING id`,
			defaultAdminName, defaultAdminEmail, hashedPassword).Scan(&id)
		if err != nil {
			lgr.Error().Err(err).Msg("Error creating default admin account")
			return err
		}

		lgr.Info().Int64("adminID", id).Str("email", defaultAdminEmail).Msg("Default admin account created")
		return nil
	})
}
