package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/kaan/traintrack/internal/app/models"
	appRepos "github.com/kaan/traintrack/internal/app/repositories"
	"github.com/kaan/traintrack/internal/config"
	"github.com/kaan/traintrack/internal/pkg/apperrors"
	"github.com/kaan/traintrack/internal/pkg/auth"
)

// CreateDefaultData creates the initial admin account and a starter curriculum
// if the database is empty. Safe to run on every startup.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	curriculumRepo := appRepos.NewCurriculumRepository(dbPool)

	var finalErr error

	if err := seedUser(ctx, userRepo, lgr, seedUserSpec{
		email:     config.GetEnv("SEED_ADMIN_EMAIL", "admin@traintrack.app"),
		password:  config.GetEnv("SEED_ADMIN_PASSWORD", "admin1234"),
		firstName: "Admin",
		lastName:  "User",
		role:      appModels.RoleAdmin,
	}); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	if err := seedUser(ctx, userRepo, lgr, seedUserSpec{
		email:     config.GetEnv("SEED_INSTRUCTOR_EMAIL", "instructor@traintrack.app"),
		password:  config.GetEnv("SEED_INSTRUCTOR_PASSWORD", "instructor1234"),
		firstName: "Default",
		lastName:  "Instructor",
		role:      appModels.RoleInstructor,
	}); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	if err := seedStarterCurriculum(ctx, curriculumRepo, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}

type seedUserSpec struct {
	email     string
	password  string
	firstName string
	lastName  string
	role      appModels.RoleType
}

func seedUser(ctx context.Context, userRepo *appRepos.UserRepository, lgr zerolog.Logger, spec seedUserSpec) error {
	_, err := userRepo.GetByEmail(ctx, spec.email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		lgr.Error().Err(err).Str("email", spec.email).Msg("Error checking seed user")
		return err
	}

	hashed, err := auth.HashPassword(spec.password)
	if err != nil {
		return err
	}

	user := &appModels.User{
		Email:     spec.email,
		Password:  hashed,
		FirstName: spec.firstName,
		LastName:  spec.lastName,
		RoleType:  spec.role,
		IsActive:  true,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		lgr.Error().Err(err).Str("email", spec.email).Msg("Error creating seed user")
		return err
	}

	lgr.Info().Str("email", spec.email).Str("role", string(spec.role)).Msg("Seed user created")
	return nil
}

func seedStarterCurriculum(ctx context.Context, curriculumRepo *appRepos.CurriculumRepository, lgr zerolog.Logger) error {
	existing, err := curriculumRepo.GetAll(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking existing curricula")
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	description := "Introductory track for new training projects"
	curriculum := &appModels.Curriculum{
		Name:        "Onboarding Basics",
		Description: &description,
	}
	if err := curriculumRepo.Create(ctx, curriculum); err != nil {
		lgr.Error().Err(err).Msg("Error creating starter curriculum")
		return err
	}

	maxParticipants := 20
	course := &appModels.Course{
		CurriculumID:    curriculum.ID,
		Name:            "Orientation",
		MaxParticipants: &maxParticipants,
		Position:        0,
	}
	if err := curriculumRepo.CreateCourse(ctx, course); err != nil {
		lgr.Error().Err(err).Msg("Error creating starter course")
		return err
	}

	lgr.Info().Str("curriculum", curriculum.Name).Msg("Starter curriculum created")
	return nil
}
