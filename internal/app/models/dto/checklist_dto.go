package dto

// CreateChecklistRequest creates a project checklist with its items
type CreateChecklistRequest struct {
	Name  string   `json:"name" binding:"required"`
	Items []string `json:"items"`
}

// SetProgressRequest marks a checklist item done or not done for one
// participant.
type SetProgressRequest struct {
	ParticipantID int64 `json:"participantId" binding:"required"`
	ItemID        int64 `json:"itemId" binding:"required"`
	Done          bool  `json:"done"`
}

// ParticipantProgress is one participant's completion state over a
// checklist.
type ParticipantProgress struct {
	ParticipantID int64   `json:"participantId"`
	DoneItemIDs   []int64 `json:"doneItemIds"`
	DoneCount     int     `json:"doneCount"`
	TotalItems    int     `json:"totalItems"`
}

// ChecklistProgressResponse is the progress of every participant over one
// checklist.
type ChecklistProgressResponse struct {
	ChecklistID  int64                  `json:"checklistId"`
	Participants []*ParticipantProgress `json:"participants"`
}
