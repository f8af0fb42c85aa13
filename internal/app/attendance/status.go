package attendance

import (
	"github.com/kaan/traintrack/internal/app/models"
)

// ProjectStatus maps a raw attendance value to one of the four canonical
// states for display. Empty or unrecognized values project to scheduled;
// the stored value is left alone, only the projection defaults it.
func ProjectStatus(raw models.AttendanceStatus) models.AttendanceStatus {
	if raw.IsCanonical() {
		return raw
	}
	return models.AttendanceScheduled
}
