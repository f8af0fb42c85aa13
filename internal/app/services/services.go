package services

// Services defined in this package:
// - AuthService: sign-in, token refresh, profile
// - ProjectService: training programs and the denormalized agenda
// - ParticipantService: per-project roster with soft removal
// - GroupService: named participant groups and membership
// - EventService: session scheduling and group attachment lifecycle
// - AttendanceService: merged attendee lists and all attendee mutations
// - CurriculumService: content hierarchy, including course capacity
// - ChecklistService: project checklists and per-participant progress
// - DailyFocusService: per-day focus notes behind a bounded cache
