package dto

// CreateCurriculumRequest creates a curriculum
type CreateCurriculumRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// CreateCourseRequest adds a course to a curriculum
type CreateCourseRequest struct {
	Name            string  `json:"name" binding:"required"`
	Description     *string `json:"description"`
	MaxParticipants *int    `json:"maxParticipants" binding:"omitempty,min=1"`
	Position        int     `json:"position"`
}

// UpdateCourseRequest updates a course, including its participant cap
type UpdateCourseRequest struct {
	Name            string  `json:"name" binding:"required"`
	Description     *string `json:"description"`
	MaxParticipants *int    `json:"maxParticipants" binding:"omitempty,min=1"`
	Position        int     `json:"position"`
}

// CreateModuleRequest adds a module to a course
type CreateModuleRequest struct {
	Name     string `json:"name" binding:"required"`
	Position int    `json:"position"`
}

// CreateActivityRequest adds an activity to a module
type CreateActivityRequest struct {
	Name            string  `json:"name" binding:"required"`
	DurationMinutes *int    `json:"durationMinutes" binding:"omitempty,min=1"`
	Position        int     `json:"position"`
	Notes           *string `json:"notes"`
}
