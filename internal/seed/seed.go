package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/internhub/internhub/internal/app/models"
	"github.com/internhub/internhub/internal/app/repositories"
)

const (
	defaultAdminUsername = "admin"
	defaultAdminEmail    = "admin@internhub.app"
	defaultAdminPassword = "Admin123!"
)

// defaultSecurityQuestions is the catalog interns pick three questions from.
var defaultSecurityQuestions = []string{
	"What was the name of your first pet?",
	"What is your mother's maiden name?",
	"What was the name of your first school?",
	"In what city were you born?",
	"What was the make of your first car?",
	"What is the name of your favorite teacher?",
	"What was your childhood nickname?",
	"What is the name of the street you grew up on?",
}

// CreateDefaultData seeds the security question catalog and a default admin
// account. Safe to run on every startup.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	questionRepo := repositories.NewSecurityQuestionRepository(dbPool)
	adminRepo := repositories.NewAdminRepository(dbPool)
	loginRepo := repositories.NewLoginRepository(dbPool)

	var finalErr error

	count, err := questionRepo.Count(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error counting security questions")
		finalErr = errors.Join(finalErr, err)
	} else if count == 0 {
		lgr.Info().Msg("Seeding security question catalog...")
		for _, question := range defaultSecurityQuestions {
			q := &models.SecurityQuestion{Question: question}
			if err := questionRepo.Create(ctx, q); err != nil {
				lgr.Error().Err(err).Str("question", question).Msg("Error seeding security question")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	exists, err := adminRepo.EmailExists(ctx, defaultAdminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if default admin exists")
		return errors.Join(finalErr, err)
	}
	if exists {
		return finalErr
	}

	lgr.Info().Msg("Creating default admin account...")
	hash, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing default admin password")
		return errors.Join(finalErr, err)
	}

	admin := &models.Admin{
		Username: defaultAdminUsername,
		Email:    defaultAdminEmail,
		Password: string(hash),
		Role:     models.RoleAdmin,
	}
	if err := adminRepo.Create(ctx, admin); err != nil {
		lgr.Error().Err(err).Msg("Error creating default admin")
		return errors.Join(finalErr, err)
	}

	login := &models.Login{
		Email:    defaultAdminEmail,
		Password: string(hash),
		Role:     models.RoleAdmin,
		UserID:   admin.ID,
	}
	if err := loginRepo.Create(ctx, login); err != nil {
		lgr.Error().Err(err).Msg("Error creating default admin login")
		return errors.Join(finalErr, err)
	}

	lgr.Info().Str("email", defaultAdminEmail).Msg("Default admin account created")
	return finalErr
}
