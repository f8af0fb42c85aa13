package services

import (
	"context"

	"github.com/kaan/traintrack/internal/app/models"
	"github.com/kaan/traintrack/internal/app/models/dto"
	"github.com/kaan/traintrack/internal/app/repositories"
)

// CurriculumService defines the interface for content hierarchy operations
type CurriculumService interface {
	GetAllCurricula(ctx context.Context) ([]*models.Curriculum, error)
	GetCurriculumByID(ctx context.Context, id int64) (*models.Curriculum, error)
	CreateCurriculum(ctx context.Context, req *dto.CreateCurriculumRequest) (*models.Curriculum, error)
	CreateCourse(ctx context.Context, curriculumID int64, req *dto.CreateCourseRequest) (*models.Course, error)
	UpdateCourse(ctx context.Context, courseID int64, req *dto.UpdateCourseRequest) (*models.Course, error)
	CreateModule(ctx context.Context, courseID int64, req *dto.CreateModuleRequest) (*models.Module, error)
	CreateActivity(ctx context.Context, moduleID int64, req *dto.CreateActivityRequest) (*models.Activity, error)
}

// curriculumServiceImpl implements CurriculumService
type curriculumServiceImpl struct {
	curriculumRepo *repositories.CurriculumRepository
}

// NewCurriculumService creates a new CurriculumService
func NewCurriculumService(curriculumRepo *repositories.CurriculumRepository) CurriculumService {
	return &curriculumServiceImpl{curriculumRepo: curriculumRepo}
}

// GetAllCurricula retrieves all curricula
func (s *curriculumServiceImpl) GetAllCurricula(ctx context.Context) ([]*models.Curriculum, error) {
	return s.curriculumRepo.GetAll(ctx)
}

// GetCurriculumByID retrieves a curriculum with its full content tree
func (s *curriculumServiceImpl) GetCurriculumByID(ctx context.Context, id int64) (*models.Curriculum, error) {
	return s.curriculumRepo.GetByID(ctx, id)
}

// CreateCurriculum creates a new curriculum
func (s *curriculumServiceImpl) CreateCurriculum(ctx context.Context, req *dto.CreateCurriculumRequest) (*models.Curriculum, error) {
	curriculum := &models.Curriculum{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.curriculumRepo.Create(ctx, curriculum); err != nil {
		return nil, err
	}

	return curriculum, nil
}

// CreateCourse adds a course to a curriculum. MaxParticipants, when set,
// caps enrollment of every event taught from this course.
func (s *curriculumServiceImpl) CreateCourse(ctx context.Context, curriculumID int64, req *dto.CreateCourseRequest) (*models.Course, error) {
	if _, err := s.curriculumRepo.GetByID(ctx, curriculumID); err != nil {
		return nil, err
	}

	course := &models.Course{
		CurriculumID:    curriculumID,
		Name:            req.Name,
		Description:     req.Description,
		MaxParticipants: req.MaxParticipants,
		Position:        req.Position,
	}

	if err := s.curriculumRepo.CreateCourse(ctx, course); err != nil {
		return nil, err
	}

	return course, nil
}

// UpdateCourse updates a course. Lowering MaxParticipants below the
// current attendance of an event does not evict anyone; it only blocks
// further additions.
func (s *curriculumServiceImpl) UpdateCourse(ctx context.Context, courseID int64, req *dto.UpdateCourseRequest) (*models.Course, error) {
	course, err := s.curriculumRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	course.Name = req.Name
	course.Description = req.Description
	course.MaxParticipants = req.MaxParticipants
	course.Position = req.Position

	if err := s.curriculumRepo.UpdateCourse(ctx, course); err != nil {
		return nil, err
	}

	return course, nil
}

// CreateModule adds a module to a course
func (s *curriculumServiceImpl) CreateModule(ctx context.Context, courseID int64, req *dto.CreateModuleRequest) (*models.Module, error) {
	if _, err := s.curriculumRepo.GetCourseByID(ctx, courseID); err != nil {
		return nil, err
	}

	module := &models.Module{
		CourseID: courseID,
		Name:     req.Name,
		Position: req.Position,
	}

	if err := s.curriculumRepo.CreateModule(ctx, module); err != nil {
		return nil, err
	}

	return module, nil
}

// CreateActivity adds an activity to a module
func (s *curriculumServiceImpl) CreateActivity(ctx context.Context, moduleID int64, req *dto.CreateActivityRequest) (*models.Activity, error) {
	activity := &models.Activity{
		ModuleID:        moduleID,
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
		Position:        req.Position,
		Notes:           req.Notes,
	}

	if err := s.curriculumRepo.CreateActivity(ctx, activity); err != nil {
		return nil, err
	}

	return activity, nil
}
