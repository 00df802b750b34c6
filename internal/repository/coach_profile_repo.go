package repository

import (
	"context"
	"strings"

	"github.com/fitlyapps/fitly-api/internal/models"
)

const coachProfileColumns = `id, user_id, full_name, avatar_url, bio, specialties, city, country_code,
	   latitude, longitude, years_experience, monthly_price_cents, currency,
	   avg_rating, rating_count, is_verified, created_at, updated_at`

// catalogEligibleWhere is the completeness invariant: only profiles with a
// bio, a city, a country code, a price and at least one specialty appear in
// the public catalog.
const catalogEligibleWhere = `bio IS NOT NULL AND bio <> ''
	  AND city IS NOT NULL AND city <> ''
	  AND country_code IS NOT NULL AND country_code <> ''
	  AND monthly_price_cents IS NOT NULL AND monthly_price_cents > 0
	  AND cardinality(specialties) > 0`

type CoachProfileRepository struct {
	db DBTX
}

func NewCoachProfileRepository(db DBTX) *CoachProfileRepository {
	return &CoachProfileRepository{db: db}
}

func (r *CoachProfileRepository) CreateEmpty(ctx context.Context, userID int64) error {
	query := `INSERT INTO coach_profiles (user_id) VALUES ($1)`
	_, err := r.db.Exec(ctx, query, userID)
	return err
}

func (r *CoachProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.CoachProfile, error) {
	query := `
		SELECT ` + coachProfileColumns + `
		FROM coach_profiles
		WHERE user_id = $1
	`
	return r.scanOne(r.db.QueryRow(ctx, query, userID))
}

// GetCatalogByID returns the profile only when it is catalog-eligible, so a
// half-finished onboarding never leaks onto a public page.
func (r *CoachProfileRepository) GetCatalogByID(ctx context.Context, id int64) (*models.CoachProfile, error) {
	query := `
		SELECT ` + coachProfileColumns + `
		FROM coach_profiles
		WHERE id = $1 AND ` + catalogEligibleWhere
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

type CatalogQuery struct {
	Country string
}

// ListCatalog returns every catalog-eligible profile, optionally narrowed to
// one country. Free-text, specialty and geo criteria are applied in memory by
// the catalog service.
func (r *CoachProfileRepository) ListCatalog(ctx context.Context, q CatalogQuery) ([]models.CoachProfile, error) {
	query := `
		SELECT ` + coachProfileColumns + `
		FROM coach_profiles
		WHERE ` + catalogEligibleWhere
	args := []any{}
	if country := strings.TrimSpace(q.Country); country != "" {
		query += ` AND UPPER(country_code) = UPPER($1)`
		args = append(args, country)
	}
	query += ` ORDER BY id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := make([]models.CoachProfile, 0)
	for rows.Next() {
		var profile models.CoachProfile
		if err := rows.Scan(
			&profile.ID,
			&profile.UserID,
			&profile.FullName,
			&profile.AvatarURL,
			&profile.Bio,
			&profile.Specialties,
			&profile.City,
			&profile.CountryCode,
			&profile.Latitude,
			&profile.Longitude,
			&profile.YearsExperience,
			&profile.MonthlyPriceCents,
			&profile.Currency,
			&profile.AvgRating,
			&profile.RatingCount,
			&profile.IsVerified,
			&profile.CreatedAt,
			&profile.UpdatedAt,
		); err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}

type CoachOnboardingInput struct {
	FullName          string
	Bio               string
	Specialties       []string
	City              string
	CountryCode       string
	Latitude          *float64
	Longitude         *float64
	YearsExperience   *int
	MonthlyPriceCents *int64
	Currency          string
}

func (r *CoachProfileRepository) UpdateOnboarding(ctx context.Context, userID int64, req CoachOnboardingInput) (*models.CoachProfile, error) {
	query := `
		UPDATE coach_profiles
		SET full_name = $1,
			bio = $2,
			specialties = $3,
			city = $4,
			country_code = $5,
			latitude = $6,
			longitude = $7,
			years_experience = $8,
			monthly_price_cents = $9,
			currency = $10,
			updated_at = NOW()
		WHERE user_id = $11
		RETURNING ` + coachProfileColumns
	return r.scanOne(r.db.QueryRow(ctx, query,
		req.FullName,
		req.Bio,
		req.Specialties,
		req.City,
		req.CountryCode,
		req.Latitude,
		req.Longitude,
		req.YearsExperience,
		req.MonthlyPriceCents,
		req.Currency,
		userID,
	))
}

type UpdateCoachProfileInput struct {
	FullName          *string
	AvatarURL         *string
	Bio               *string
	Specialties       *[]string
	City              *string
	CountryCode       *string
	Latitude          *float64
	Longitude         *float64
	YearsExperience   *int
	MonthlyPriceCents *int64
	Currency          *string
}

func (r *CoachProfileRepository) UpdatePartial(ctx context.Context, userID int64, req UpdateCoachProfileInput) (*models.CoachProfile, error) {
	query := `
		UPDATE coach_profiles
		SET full_name = COALESCE($1, full_name),
			avatar_url = COALESCE($2, avatar_url),
			bio = COALESCE($3, bio),
			specialties = COALESCE($4, specialties),
			city = COALESCE($5, city),
			country_code = COALESCE($6, country_code),
			latitude = COALESCE($7, latitude),
			longitude = COALESCE($8, longitude),
			years_experience = COALESCE($9, years_experience),
			monthly_price_cents = COALESCE($10, monthly_price_cents),
			currency = COALESCE($11, currency),
			updated_at = NOW()
		WHERE user_id = $12
		RETURNING ` + coachProfileColumns
	return r.scanOne(r.db.QueryRow(ctx, query,
		req.FullName,
		req.AvatarURL,
		req.Bio,
		req.Specialties,
		req.City,
		req.CountryCode,
		req.Latitude,
		req.Longitude,
		req.YearsExperience,
		req.MonthlyPriceCents,
		req.Currency,
		userID,
	))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *CoachProfileRepository) scanOne(row rowScanner) (*models.CoachProfile, error) {
	var profile models.CoachProfile
	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.FullName,
		&profile.AvatarURL,
		&profile.Bio,
		&profile.Specialties,
		&profile.City,
		&profile.CountryCode,
		&profile.Latitude,
		&profile.Longitude,
		&profile.YearsExperience,
		&profile.MonthlyPriceCents,
		&profile.Currency,
		&profile.AvgRating,
		&profile.RatingCount,
		&profile.IsVerified,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
