package domain

import (
	"strings"
	"time"
)

// Review is an immutable record of one owner's experience with a car and
// the dealership that sold it.
type Review struct {
	ID                    string    `json:"id"`
	CarModel              string    `json:"carModel"`
	Rating                int       `json:"rating"`
	Comment               string    `json:"comment"`
	DealershipName        string    `json:"dealershipName"`
	City                  string    `json:"city"`
	Variant               string    `json:"variant"`
	PurchaseDate          string    `json:"purchaseDate"`
	SalesExperienceRating int       `json:"salesExperienceRating"`
	PricePaid             float64   `json:"pricePaid"`
	OwnershipDuration     int       `json:"ownershipDuration"`
	Pros                  []string  `json:"pros"`
	Cons                  []string  `json:"cons"`
	FuelEfficiency        float64   `json:"fuelEfficiency"`
	CreatedAt             time.Time `json:"createdAt"`
}

// Rating bounds for both the overall and the sales experience rating.
const (
	MinRating = 1
	MaxRating = 5
)

// CleanList trims every entry and drops the ones left empty. The result is
// never nil so it encodes as a JSON array.
func CleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
