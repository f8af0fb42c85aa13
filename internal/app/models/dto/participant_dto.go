package dto

// CreateParticipantRequest enrolls a person into a project
type CreateParticipantRequest struct {
	FirstName string  `json:"firstName" binding:"required"`
	LastName  string  `json:"lastName" binding:"required"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Phone     *string `json:"phone"`
	Role      *string `json:"role" example:"Team Lead"`
}

// UpdateParticipantRequest updates a participant's contact fields
type UpdateParticipantRequest struct {
	FirstName string  `json:"firstName" binding:"required"`
	LastName  string  `json:"lastName" binding:"required"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Phone     *string `json:"phone"`
	Role      *string `json:"role"`
}

// CreateGroupRequest creates a named participant group
type CreateGroupRequest struct {
	Name  string  `json:"name" binding:"required"`
	Color *string `json:"color" example:"#4F8A10"`
}

// UpdateGroupRequest renames or recolors a group
type UpdateGroupRequest struct {
	Name  string  `json:"name" binding:"required"`
	Color *string `json:"color"`
}
