package models

// PreferenceRequest describes what the user wants recommended.
type PreferenceRequest struct {
	Genre  string `json:"genre"`
	Length string `json:"length"`
	Mood   string `json:"mood"`
	Gems   bool   `json:"gems"`
}

// Title is a recommended title and its URL slug.
type Title struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Recommendation is the generator's free text plus the titles found in it.
type Recommendation struct {
	Text   string  `json:"recommendation"`
	Titles []Title `json:"titles"`
}
