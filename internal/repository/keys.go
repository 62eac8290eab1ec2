package repository

// Persistence key space. Each key holds a JSON array.
const (
	KeyProgrammes    = "church_programmes"
	KeyAttendance    = "programme_attendance"
	KeyResources     = "programme_resources"
	KeyFeedback      = "programme_feedback"
	KeyReminders     = "programme_reminders"
	KeyKPIs          = "programme_kpis"
	KeyTemplates     = "programme_templates"
	KeyCategories    = "programme_categories"
	KeyTags          = "programme_tags"
	KeyProgrammeTags = "programme_to_tags"
)

// Keys lists every key owned by the entity stores.
var Keys = []string{
	KeyProgrammes,
	KeyAttendance,
	KeyResources,
	KeyFeedback,
	KeyReminders,
	KeyKPIs,
	KeyTemplates,
	KeyCategories,
	KeyTags,
	KeyProgrammeTags,
}
