package services

import (
	"context"
	"strings"
	"sync"

	"github.com/fitlyapps/fitly-api/internal/geo"
	"github.com/fitlyapps/fitly-api/internal/models"
)

// CityGeocoder resolves a free-text place name to candidate cities.
type CityGeocoder interface {
	Autocomplete(ctx context.Context, text string, limit int) ([]models.CitySuggestion, error)
}

// FilterCriteria describes one discovery request. The zero value matches
// everything.
type FilterCriteria struct {
	Query       string
	Specialties []string
	City        string
	RadiusKm    float64
}

type CatalogService struct {
	geocoder CityGeocoder
}

func NewCatalogService(geocoder CityGeocoder) *CatalogService {
	return &CatalogService{geocoder: geocoder}
}

// Filter returns the subsequence of profiles, in their original order, that
// satisfy every active criterion: case-insensitive substring query, specialty
// intersection, and city match (exact name when the radius is zero, haversine
// distance from the resolved target otherwise).
//
// When the target city cannot be resolved, the radius search fails closed and
// no profile matches. A geocoding failure for a single profile's city only
// removes that profile.
func (s *CatalogService) Filter(ctx context.Context, profiles []models.CoachProfile, criteria FilterCriteria) []models.CoachProfile {
	query := strings.ToLower(strings.TrimSpace(criteria.Query))
	city := strings.TrimSpace(criteria.City)

	var target *models.Coordinates
	coordsByCity := map[string]*models.Coordinates{}

	if city != "" && criteria.RadiusKm > 0 {
		target = s.resolveTarget(ctx, city)
		if target == nil {
			return []models.CoachProfile{}
		}
		coordsByCity = s.resolveProfileCoordinates(ctx, profiles)
	}

	matched := make([]models.CoachProfile, 0, len(profiles))
	for _, profile := range profiles {
		if !matchesQuery(&profile, query) {
			continue
		}
		if !matchesSpecialties(&profile, criteria.Specialties) {
			continue
		}
		if city != "" && !s.matchesGeo(&profile, city, criteria.RadiusKm, target, coordsByCity) {
			continue
		}
		matched = append(matched, profile)
	}
	return matched
}

// resolveTarget picks the best autocomplete result for the requested city: an
// exact case-insensitive city-name match when one exists, else the first
// suggestion. Nil means the radius search cannot proceed.
func (s *CatalogService) resolveTarget(ctx context.Context, city string) *models.Coordinates {
	suggestions, err := s.geocoder.Autocomplete(ctx, city, 5)
	if err != nil || len(suggestions) == 0 {
		return nil
	}

	match := bestSuggestion(suggestions, city)
	coords := match.Coordinates()
	return &coords
}

// resolveProfileCoordinates geocodes, concurrently, every distinct city among
// profiles that carry no precomputed coordinates. One lookup per unique city
// per invocation; a failed lookup maps the city to nil.
func (s *CatalogService) resolveProfileCoordinates(ctx context.Context, profiles []models.CoachProfile) map[string]*models.Coordinates {
	pending := make(map[string]string)
	for _, profile := range profiles {
		if profile.Coordinates() != nil || profile.City == nil {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(*profile.City))
		if key == "" {
			continue
		}
		if _, seen := pending[key]; !seen {
			pending[key] = *profile.City
		}
	}

	resolved := make(map[string]*models.Coordinates, len(pending))
	if len(pending) == 0 {
		return resolved
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	for key, cityName := range pending {
		wg.Add(1)
		go func(key, cityName string) {
			defer wg.Done()

			var coords *models.Coordinates
			suggestions, err := s.geocoder.Autocomplete(ctx, cityName, 5)
			if err == nil && len(suggestions) > 0 {
				match := bestSuggestion(suggestions, cityName)
				c := match.Coordinates()
				coords = &c
			}

			mu.Lock()
			resolved[key] = coords
			mu.Unlock()
		}(key, cityName)
	}
	wg.Wait()

	return resolved
}

func (s *CatalogService) matchesGeo(
	profile *models.CoachProfile,
	city string,
	radiusKm float64,
	target *models.Coordinates,
	coordsByCity map[string]*models.Coordinates,
) bool {
	if profile.City == nil {
		return false
	}

	if radiusKm == 0 {
		return strings.EqualFold(strings.TrimSpace(*profile.City), city)
	}

	coords := profile.Coordinates()
	if coords == nil {
		coords = coordsByCity[strings.ToLower(strings.TrimSpace(*profile.City))]
	}
	if coords == nil {
		return false
	}

	return geo.DistanceKm(*target, *coords) <= radiusKm
}

func matchesQuery(profile *models.CoachProfile, query string) bool {
	if query == "" {
		return true
	}

	for _, field := range []*string{profile.FullName, profile.Bio, profile.City} {
		if field != nil && strings.Contains(strings.ToLower(*field), query) {
			return true
		}
	}
	for _, specialty := range profile.Specialties {
		if strings.Contains(strings.ToLower(specialty), query) {
			return true
		}
	}
	return false
}

func matchesSpecialties(profile *models.CoachProfile, wanted []string) bool {
	if len(wanted) == 0 {
		return true
	}

	for _, want := range wanted {
		for _, have := range profile.Specialties {
			if have == want {
				return true
			}
		}
	}
	return false
}

func bestSuggestion(suggestions []models.CitySuggestion, city string) models.CitySuggestion {
	for _, suggestion := range suggestions {
		if strings.EqualFold(suggestion.City, strings.TrimSpace(city)) {
			return suggestion
		}
	}
	return suggestions[0]
}
