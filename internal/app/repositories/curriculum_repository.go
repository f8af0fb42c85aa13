package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kaan/traintrack/internal/app/models"
	"github.com/kaan/traintrack/internal/pkg/apperrors"
)

// CurriculumRepository handles database operations for the content
// hierarchy (curricula, courses, modules, activities).
type CurriculumRepository struct {
	db *pgxpool.Pool
}

// NewCurriculumRepository creates a new curriculum repository
func NewCurriculumRepository(db *pgxpool.Pool) *CurriculumRepository {
	return &CurriculumRepository{db: db}
}

// Create stores a new curriculum
func (r *CurriculumRepository) Create(ctx context.Context, curriculum *models.Curriculum) error {
	query := `
		INSERT INTO curricula (name, description)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	return r.db.QueryRow(ctx, query, curriculum.Name, curriculum.Description).
		Scan(&curriculum.ID, &curriculum.CreatedAt)
}

// GetAll retrieves all curricula without their course trees
func (r *CurriculumRepository) GetAll(ctx context.Context) ([]*models.Curriculum, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, description, created_at FROM curricula ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var curricula []*models.Curriculum
	for rows.Next() {
		var curriculum models.Curriculum
		if err := rows.Scan(&curriculum.ID, &curriculum.Name, &curriculum.Description, &curriculum.CreatedAt); err != nil {
			return nil, err
		}
		curricula = append(curricula, &curriculum)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return curricula, nil
}

// GetByID retrieves a curriculum with its full course/module/activity tree
func (r *CurriculumRepository) GetByID(ctx context.Context, id int64) (*models.Curriculum, error) {
	var curriculum models.Curriculum
	err := r.db.QueryRow(ctx,
		`SELECT id, name, description, created_at FROM curricula WHERE id = $1`, id).
		Scan(&curriculum.ID, &curriculum.Name, &curriculum.Description, &curriculum.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCurriculumNotFound
		}
		return nil, fmt.Errorf("error retrieving curriculum: %w", err)
	}

	courses, err := r.getCourses(ctx, id)
	if err != nil {
		return nil, err
	}
	curriculum.Courses = courses

	return &curriculum, nil
}

// GetCourseByID retrieves a single course
func (r *CurriculumRepository) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	query := `
		SELECT id, curriculum_id, name, description, max_participants, position
		FROM courses
		WHERE id = $1
	`

	var course models.Course
	err := r.db.QueryRow(ctx, query, id).Scan(
		&course.ID, &course.CurriculumID, &course.Name, &course.Description,
		&course.MaxParticipants, &course.Position,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return &course, nil
}

// CreateCourse stores a new course under a curriculum
func (r *CurriculumRepository) CreateCourse(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (curriculum_id, name, description, max_participants, position)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	return r.db.QueryRow(ctx, query,
		course.CurriculumID, course.Name, course.Description,
		course.MaxParticipants, course.Position,
	).Scan(&course.ID)
}

// UpdateCourse updates a course, including its enrollment cap
func (r *CurriculumRepository) UpdateCourse(ctx context.Context, course *models.Course) error {
	query := `
		UPDATE courses
		SET name = $1, description = $2, max_participants = $3, position = $4
		WHERE id = $5
	`

	cmdTag, err := r.db.Exec(ctx, query,
		course.Name, course.Description, course.MaxParticipants, course.Position, course.ID)
	if err != nil {
		return fmt.Errorf("error updating course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// CreateModule stores a new module under a course
func (r *CurriculumRepository) CreateModule(ctx context.Context, module *models.Module) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO modules (course_id, name, position) VALUES ($1, $2, $3) RETURNING id`,
		module.CourseID, module.Name, module.Position,
	).Scan(&module.ID)
}

// CreateActivity stores a new activity under a module
func (r *CurriculumRepository) CreateActivity(ctx context.Context, activity *models.Activity) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO activities (module_id, name, duration_minutes, position, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		activity.ModuleID, activity.Name, activity.DurationMinutes, activity.Position, activity.Notes,
	).Scan(&activity.ID)
}

func (r *CurriculumRepository) getCourses(ctx context.Context, curriculumID int64) ([]*models.Course, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, curriculum_id, name, description, max_participants, position
		FROM courses
		WHERE curriculum_id = $1
		ORDER BY position`, curriculumID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []*models.Course
	byID := make(map[int64]*models.Course)
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(
			&course.ID, &course.CurriculumID, &course.Name, &course.Description,
			&course.MaxParticipants, &course.Position,
		); err != nil {
			return nil, err
		}
		courses = append(courses, &course)
		byID[course.ID] = &course
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(courses) == 0 {
		return courses, nil
	}

	if err := r.loadModules(ctx, curriculumID, byID); err != nil {
		return nil, err
	}

	return courses, nil
}

func (r *CurriculumRepository) loadModules(ctx context.Context, curriculumID int64, courses map[int64]*models.Course) error {
	rows, err := r.db.Query(ctx, `
		SELECT m.id, m.course_id, m.name, m.position
		FROM modules m
		JOIN courses c ON c.id = m.course_id
		WHERE c.curriculum_id = $1
		ORDER BY m.position`, curriculumID)
	if err != nil {
		return err
	}
	defer rows.Close()

	byID := make(map[int64]*models.Module)
	for rows.Next() {
		var module models.Module
		if err := rows.Scan(&module.ID, &module.CourseID, &module.Name, &module.Position); err != nil {
			return err
		}
		if course, ok := courses[module.CourseID]; ok {
			course.Modules = append(course.Modules, &module)
		}
		byID[module.ID] = &module
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if len(byID) == 0 {
		return nil
	}

	return r.loadActivities(ctx, curriculumID, byID)
}

func (r *CurriculumRepository) loadActivities(ctx context.Context, curriculumID int64, modules map[int64]*models.Module) error {
	rows, err := r.db.Query(ctx, `
		SELECT a.id, a.module_id, a.name, a.duration_minutes, a.position, a.notes
		FROM activities a
		JOIN modules m ON m.id = a.module_id
		JOIN courses c ON c.id = m.course_id
		WHERE c.curriculum_id = $1
		ORDER BY a.position`, curriculumID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var activity models.Activity
		if err := rows.Scan(
			&activity.ID, &activity.ModuleID, &activity.Name,
			&activity.DurationMinutes, &activity.Position, &activity.Notes,
		); err != nil {
			return err
		}
		if module, ok := modules[activity.ModuleID]; ok {
			module.Activities = append(module.Activities, &activity)
		}
	}

	return rows.Err()
}
