package models

// CoachCard is the display-ready projection of a catalog-eligible coach
// profile: prices and locations are pre-formatted strings, the avatar falls
// back to initials.
type CoachCard struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Initials    string   `json:"initials"`
	AvatarURL   *string  `json:"avatar_url"`
	Bio         string   `json:"bio"`
	Specialties []string `json:"specialties"`
	Location    string   `json:"location"`
	Price       string   `json:"price"`
	Rating      float64  `json:"rating"`
	RatingCount int      `json:"rating_count"`
	IsVerified  bool     `json:"is_verified"`
}

type CatalogView struct {
	Coaches    []CoachCard `json:"coaches"`
	CountLabel string      `json:"count_label"`
}

type PaginationMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}
