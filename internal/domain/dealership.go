package domain

import (
	"cmp"
	"math"
	"slices"
	"strings"
)

// Dealership is a rollup of every review left for one dealership in one city.
// It is computed on demand and never stored.
type Dealership struct {
	Name        string   `json:"name"`
	Location    string   `json:"location"`
	SalesRating float64  `json:"salesRating"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"reviewCount"`
	Brands      []string `json:"brands"`
}

// DealershipReview is the slice of a Review the rollup needs.
type DealershipReview struct {
	DealershipName        string
	City                  string
	CarModel              string
	Rating                int
	SalesExperienceRating int
}

// DealershipFilter narrows a rollup. Empty fields do not filter.
type DealershipFilter struct {
	City  string
	Brand string
}

// BrandToken returns the first whitespace-delimited word of a car model,
// used as the manufacturer. "Maruti Suzuki Swift" yields "Maruti".
func BrandToken(carModel string) string {
	fields := strings.Fields(carModel)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// MatchesCity reports whether city equals the filter ignoring case.
func (f DealershipFilter) MatchesCity(city string) bool {
	want := strings.TrimSpace(f.City)
	return want == "" || strings.EqualFold(city, want)
}

// MatchesBrands reports whether any brand contains the filter ignoring case.
func (f DealershipFilter) MatchesBrands(brands []string) bool {
	want := strings.ToLower(strings.TrimSpace(f.Brand))
	if want == "" {
		return true
	}
	return slices.ContainsFunc(brands, func(b string) bool {
		return strings.Contains(strings.ToLower(b), want)
	})
}

// RoundRating rounds to one decimal place, halves to even.
func RoundRating(v float64) float64 {
	return math.RoundToEven(v*10) / 10
}

type dealershipKey struct {
	name, city string
}

type dealershipAcc struct {
	salesSum, ratingSum, count int
	brands                     map[string]struct{}
}

// RollUpDealerships groups reviews by (dealership name, city), averages both
// ratings, collects brand tokens and applies filter. The result is ordered by
// sales rating descending, then name and location ascending.
func RollUpDealerships(reviews []DealershipReview, filter DealershipFilter) []Dealership {
	groups := make(map[dealershipKey]*dealershipAcc)
	var order []dealershipKey

	for _, r := range reviews {
		if !filter.MatchesCity(r.City) {
			continue
		}
		key := dealershipKey{name: r.DealershipName, city: r.City}
		acc, ok := groups[key]
		if !ok {
			acc = &dealershipAcc{brands: make(map[string]struct{})}
			groups[key] = acc
			order = append(order, key)
		}
		acc.salesSum += r.SalesExperienceRating
		acc.ratingSum += r.Rating
		acc.count++
		if brand := BrandToken(r.CarModel); brand != "" {
			acc.brands[brand] = struct{}{}
		}
	}

	out := make([]Dealership, 0, len(groups))
	for _, key := range order {
		acc := groups[key]
		brands := make([]string, 0, len(acc.brands))
		for b := range acc.brands {
			brands = append(brands, b)
		}
		slices.Sort(brands)
		if !filter.MatchesBrands(brands) {
			continue
		}
		out = append(out, Dealership{
			Name:        key.name,
			Location:    key.city,
			SalesRating: RoundRating(float64(acc.salesSum) / float64(acc.count)),
			Rating:      RoundRating(float64(acc.ratingSum) / float64(acc.count)),
			ReviewCount: acc.count,
			Brands:      brands,
		})
	}

	slices.SortFunc(out, func(a, b Dealership) int {
		if c := cmp.Compare(b.SalesRating, a.SalesRating); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.Location, b.Location)
	})
	return out
}
