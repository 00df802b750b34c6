package services

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/fitlyapps/fitly-api/internal/models"
)

// PriceOnRequest is displayed for coaches without a published monthly price.
const PriceOnRequest = "Tarif sur demande"

var frenchPrinter = message.NewPrinter(language.French)

// SortProfiles orders profiles for the public catalog: verified first, then
// by rating, then most recently created. The sort is stable, so ties keep
// their incoming order.
func SortProfiles(profiles []models.CoachProfile) {
	sort.SliceStable(profiles, func(i, j int) bool {
		a, b := profiles[i], profiles[j]
		if a.IsVerified != b.IsVerified {
			return a.IsVerified
		}
		if a.AvgRating != b.AvgRating {
			return a.AvgRating > b.AvgRating
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}

// BuildCatalogView projects profiles into display-ready coach cards plus a
// count label. Profiles are expected to be filtered and sorted already.
func BuildCatalogView(profiles []models.CoachProfile) models.CatalogView {
	cards := make([]models.CoachCard, 0, len(profiles))
	for _, profile := range profiles {
		cards = append(cards, buildCoachCard(profile))
	}

	return models.CatalogView{
		Coaches:    cards,
		CountLabel: CountLabel(len(cards)),
	}
}

func buildCoachCard(profile models.CoachProfile) models.CoachCard {
	name := ""
	if profile.FullName != nil {
		name = *profile.FullName
	}
	bio := ""
	if profile.Bio != nil {
		bio = *profile.Bio
	}
	specialties := profile.Specialties
	if specialties == nil {
		specialties = []string{}
	}

	return models.CoachCard{
		ID:          strconv.FormatInt(profile.ID, 10),
		Name:        name,
		Initials:    initials(name),
		AvatarURL:   profile.AvatarURL,
		Bio:         bio,
		Specialties: specialties,
		Location:    FormatLocation(profile.City, profile.CountryCode),
		Price:       FormatPrice(profile.MonthlyPriceCents, profile.Currency),
		Rating:      profile.AvgRating,
		RatingCount: profile.RatingCount,
		IsVerified:  profile.IsVerified,
	}
}

// FormatPrice renders a monthly price in minor units as a French-locale
// amount with no fraction digits, or "Tarif sur demande" when the coach has
// no published price.
func FormatPrice(monthlyPriceCents *int64, currency string) string {
	if monthlyPriceCents == nil || *monthlyPriceCents == 0 {
		return PriceOnRequest
	}

	amount := int64(math.Round(float64(*monthlyPriceCents) / 100))
	formatted := frenchPrinter.Sprintf("%d", amount)

	switch strings.ToUpper(currency) {
	case "", "EUR":
		return formatted + " €"
	case "USD":
		return formatted + " $US"
	default:
		return formatted + " " + strings.ToUpper(currency)
	}
}

// FormatLocation joins city and country code, or returns "Remote" when the
// profile has neither.
func FormatLocation(city, countryCode *string) string {
	parts := make([]string, 0, 2)
	if city != nil && *city != "" {
		parts = append(parts, *city)
	}
	if countryCode != nil && *countryCode != "" {
		parts = append(parts, *countryCode)
	}
	if len(parts) == 0 {
		return "Remote"
	}
	return strings.Join(parts, ", ")
}

func initials(name string) string {
	var b strings.Builder
	parts := strings.Fields(name)
	if len(parts) > 2 {
		parts = parts[:2]
	}
	for _, part := range parts {
		for _, r := range part {
			b.WriteRune(unicode.ToUpper(r))
			break
		}
	}
	return b.String()
}

// CountLabel renders the "N coachs trouvés" badge shown above the catalog.
func CountLabel(count int) string {
	noun := "coach"
	if count > 1 {
		noun = "coachs"
	}
	return fmt.Sprintf("%d %s trouvés", count, noun)
}
