package models

import "time"

// Source says how a capture entered the system.
type Source string

const (
	SourceVoice Source = "Voice"
	SourceTyped Source = "Typed"
)

func (s Source) Valid() bool {
	return s == SourceVoice || s == SourceTyped
}

// Category is the closed set of capture kinds. CategoryAll is a filter
// wildcard only and is never stored on an Idea.
type Category string

const (
	CategoryNote        Category = "Note"
	CategoryTask        Category = "Task"
	CategoryInspiration Category = "Inspiration"
	CategoryMeeting     Category = "Meeting"
	CategoryProject     Category = "Project"
	CategoryQuestion    Category = "Question"

	CategoryAll Category = "All"
)

// Categories lists the storable categories in display order.
var Categories = []Category{
	CategoryNote,
	CategoryTask,
	CategoryInspiration,
	CategoryMeeting,
	CategoryProject,
	CategoryQuestion,
}

// Valid reports whether c may be stored on an Idea (excludes CategoryAll).
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Idea is a single capture record. Records belong to one user by id
// reference; the collection in storage is shared and every display read
// filters to the session's user id.
type Idea struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Content   string    `json:"content"`
	Source    Source    `json:"source"`
	Category  Category  `json:"category"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	Starred   bool      `json:"starred"`
	AISummary string    `json:"aiSummary,omitempty"`
}

// WebResult is one hit from the deep-search workflow. Ephemeral, never
// persisted.
type WebResult struct {
	Title   string `json:"title"`
	URI     string `json:"uri"`
	Snippet string `json:"snippet,omitempty"`
}

// Stats is the derived usage summary for one user's captures.
type Stats struct {
	Total int `json:"total"`
	Voice int `json:"voice"`
	Typed int `json:"typed"`
	Today int `json:"today"`
}

// Announcement is a CMS entry shown on the dashboard.
type Announcement struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}
