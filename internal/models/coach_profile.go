package models

import "time"

type CoachProfile struct {
	ID                int64     `json:"id"`
	UserID            int64     `json:"user_id"`
	FullName          *string   `json:"full_name"`
	AvatarURL         *string   `json:"avatar_url"`
	Bio               *string   `json:"bio"`
	Specialties       []string  `json:"specialties"`
	City              *string   `json:"city"`
	CountryCode       *string   `json:"country_code"`
	Latitude          *float64  `json:"latitude"`
	Longitude         *float64  `json:"longitude"`
	YearsExperience   *int      `json:"years_experience"`
	MonthlyPriceCents *int64    `json:"monthly_price_cents"`
	Currency          string    `json:"currency"`
	AvgRating         float64   `json:"avg_rating"`
	RatingCount       int       `json:"rating_count"`
	IsVerified        bool      `json:"is_verified"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// CatalogEligible reports whether the profile carries everything required for a
// public listing: bio, city, country code, price and at least one specialty.
func (p *CoachProfile) CatalogEligible() bool {
	return p.Bio != nil && *p.Bio != "" &&
		p.City != nil && *p.City != "" &&
		p.CountryCode != nil && *p.CountryCode != "" &&
		p.MonthlyPriceCents != nil && *p.MonthlyPriceCents > 0 &&
		len(p.Specialties) > 0
}

// Coordinates returns the precomputed profile coordinates, or nil when the
// profile city has never been geocoded.
func (p *CoachProfile) Coordinates() *Coordinates {
	if p.Latitude == nil || p.Longitude == nil {
		return nil
	}
	return &Coordinates{Lat: *p.Latitude, Lon: *p.Longitude}
}
