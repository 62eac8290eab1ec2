package models

// ProgrammeTemplate pre-fills new programmes.
type ProgrammeTemplate struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Type            string   `json:"type"`
	Category        string   `json:"category,omitempty"`
	DurationMinutes int      `json:"duration_minutes"`
	Capacity        *int     `json:"capacity,omitempty"`
	Tags            []string `json:"tags"`
}

// ProgrammeCategory groups programmes for reporting.
type ProgrammeCategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
}

// ProgrammeTag labels programmes.
type ProgrammeTag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// ProgrammeTagLink is one row of the programme/tag join table.
type ProgrammeTagLink struct {
	ProgrammeID string `json:"programme_id"`
	TagID       string `json:"tag_id"`
}

// CreateTemplateRequest registers a template.
type CreateTemplateRequest struct {
	Name            string   `json:"name" validate:"required,max=200"`
	Description     string   `json:"description" validate:"max=4000"`
	Type            string   `json:"type" validate:"required,max=64"`
	Category        string   `json:"category" validate:"max=64"`
	DurationMinutes int      `json:"duration_minutes" validate:"gte=0"`
	Capacity        *int     `json:"capacity" validate:"omitempty,min=1"`
	Tags            []string `json:"tags"`
}

// CreateCategoryRequest registers a category.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=64"`
	Description string `json:"description" validate:"max=500"`
	Color       string `json:"color" validate:"omitempty,hexcolor"`
}

// CreateTagRequest registers a tag.
type CreateTagRequest struct {
	Name  string `json:"name" validate:"required,max=64"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}
