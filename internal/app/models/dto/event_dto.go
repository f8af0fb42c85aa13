package dto

import "time"

// CreateEventRequest schedules a session
type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description *string   `json:"description"`
	StartsAt    time.Time `json:"startsAt" binding:"required"`
	EndsAt      time.Time `json:"endsAt" binding:"required"`
	CourseID    *int64    `json:"courseId"`
	Location    *string   `json:"location"`
}

// UpdateEventRequest reschedules or retitles a session
type UpdateEventRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description *string   `json:"description"`
	StartsAt    time.Time `json:"startsAt" binding:"required"`
	EndsAt      time.Time `json:"endsAt" binding:"required"`
	CourseID    *int64    `json:"courseId"`
	Location    *string   `json:"location"`
}
