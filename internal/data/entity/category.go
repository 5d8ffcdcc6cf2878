package entity

import "strings"

type ServiceCategory string

const (
	CategoryCleaning    ServiceCategory = "Cleaning"
	CategoryPlumbing    ServiceCategory = "Plumbing"
	CategoryElectrical  ServiceCategory = "Electrical"
	CategoryBabysitting ServiceCategory = "Babysitting"
	CategoryGardening   ServiceCategory = "Gardening"
	CategoryCooking     ServiceCategory = "Cooking"
	CategoryPainting    ServiceCategory = "Painting"
	CategoryMoving      ServiceCategory = "Moving"
	CategoryLaundry     ServiceCategory = "Laundry"
)

var serviceCategories = []ServiceCategory{
	CategoryCleaning,
	CategoryPlumbing,
	CategoryElectrical,
	CategoryBabysitting,
	CategoryGardening,
	CategoryCooking,
	CategoryPainting,
	CategoryMoving,
	CategoryLaundry,
}

func AllCategories() []ServiceCategory {
	out := make([]ServiceCategory, len(serviceCategories))
	copy(out, serviceCategories)
	return out
}

// ParseCategory normalizes a user-supplied category string to its canonical
// form. Matching is case-insensitive; unknown categories fail with a
// validation error instead of silently producing zero matches.
func ParseCategory(s string) (ServiceCategory, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", NewValidationError("service category is required")
	}

	for _, c := range serviceCategories {
		if strings.EqualFold(trimmed, string(c)) {
			return c, nil
		}
	}

	return "", NewValidationError("unknown service category: " + trimmed)
}
