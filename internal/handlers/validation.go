package handlers

import "strings"

func validateCoachOnboardingRequest(req coachOnboardingRequest) string {
	if strings.TrimSpace(req.FullName) == "" {
		return "full_name is required"
	}
	if strings.TrimSpace(req.Bio) == "" {
		return "bio is required"
	}
	if len(normalizeSpecialties(req.Specialties)) == 0 {
		return "specialties must contain at least one item"
	}
	if strings.TrimSpace(req.City) == "" {
		return "city is required"
	}
	if code := strings.TrimSpace(req.CountryCode); len(code) != 2 {
		return "country_code must be a 2-letter ISO code"
	}
	if req.YearsExperience != nil && *req.YearsExperience < 0 {
		return "years_experience must be 0 or greater"
	}
	if req.MonthlyPrice != nil && *req.MonthlyPrice <= 0 {
		return "monthly_price must be greater than 0"
	}
	if currency := strings.TrimSpace(req.Currency); currency != "" && len(currency) != 3 {
		return "currency must be a 3-letter ISO code"
	}
	return ""
}

func validateClientOnboardingRequest(req clientOnboardingRequest) string {
	if len(req.Goals) == 0 {
		return "goals must contain at least one item"
	}
	for _, goal := range req.Goals {
		if strings.TrimSpace(goal) == "" {
			return "goals must not contain empty values"
		}
	}
	return ""
}
