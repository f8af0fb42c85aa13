package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository        *UserRepository
	TokenRepository       *TokenRepository
	ProjectRepository     *ProjectRepository
	ParticipantRepository *ParticipantRepository
	GroupRepository       *GroupRepository
	EventRepository       *EventRepository
	CurriculumRepository  *CurriculumRepository
	ChecklistRepository   *ChecklistRepository
	DailyFocusRepository  *DailyFocusRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(db),
		TokenRepository:       NewTokenRepository(db),
		ProjectRepository:     NewProjectRepository(db),
		ParticipantRepository: NewParticipantRepository(db),
		GroupRepository:       NewGroupRepository(db),
		EventRepository:       NewEventRepository(db),
		CurriculumRepository:  NewCurriculumRepository(db),
		ChecklistRepository:   NewChecklistRepository(db),
		DailyFocusRepository:  NewDailyFocusRepository(db),
	}
}
