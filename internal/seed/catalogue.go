package seed

// ReviewRequest is the review submission body the API accepts.
type ReviewRequest struct {
	CarModel              string   `json:"carModel"`
	Rating                int      `json:"rating"`
	Comment               string   `json:"comment"`
	DealershipName        string   `json:"dealershipName"`
	City                  string   `json:"city"`
	Variant               string   `json:"variant"`
	PurchaseDate          string   `json:"purchaseDate"`
	SalesExperienceRating int      `json:"salesExperienceRating"`
	PricePaid             float64  `json:"pricePaid"`
	OwnershipDuration     int      `json:"ownershipDuration"`
	Pros                  []string `json:"pros"`
	Cons                  []string `json:"cons"`
	FuelEfficiency        float64  `json:"fuelEfficiency"`
}

// GuideRequest is the guide creation body the API accepts.
type GuideRequest struct {
	Title      string   `json:"title"`
	Summary    string   `json:"summary"`
	Content    string   `json:"content"`
	Category   string   `json:"category,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	AuthorName string   `json:"authorName,omitempty"`
	ReadTime   int      `json:"readTime,omitempty"`
}

// Reviews returns the sample review catalogue. OwnershipDuration is left
// zero; the seeder derives it from the purchase date.
func Reviews() []ReviewRequest {
	return []ReviewRequest{
		{
			CarModel:              "Maruti Suzuki Swift",
			Rating:                4,
			Comment:               "Great fuel efficiency and easy to drive in city traffic. Perfect for the daily commute.",
			DealershipName:        "Nexa Premium",
			City:                  "Mumbai",
			Variant:               "VXI",
			PurchaseDate:          "04/2023",
			SalesExperienceRating: 4,
			PricePaid:             850000,
			Pros:                  []string{"Great mileage", "Easy to park", "Low maintenance cost"},
			Cons:                  []string{"Average build quality", "Limited boot space"},
			FuelEfficiency:        22,
		},
		{
			CarModel:              "Hyundai Creta",
			Rating:                4,
			Comment:               "Excellent SUV with premium features. Comfortable for long drives and city commutes alike.",
			DealershipName:        "Lakshmi Hyundai",
			City:                  "Bangalore",
			Variant:               "SX Turbo",
			PurchaseDate:          "06/2022",
			SalesExperienceRating: 5,
			PricePaid:             1450000,
			Pros:                  []string{"Feature loaded", "Good ground clearance", "Comfortable seats"},
			Cons:                  []string{"Average mileage", "Service costs increase after warranty"},
			FuelEfficiency:        16,
		},
		{
			CarModel:              "Tata Nexon",
			Rating:                4,
			Comment:               "Safe and reliable SUV with excellent build quality. Good value for money.",
			DealershipName:        "Tata Motors Showroom",
			City:                  "Delhi",
			Variant:               "XZ+ Diesel",
			PurchaseDate:          "01/2023",
			SalesExperienceRating: 4,
			PricePaid:             1250000,
			Pros:                  []string{"5-star safety rating", "Powerful engine", "Modern design"},
			Cons:                  []string{"Interior quality could be better", "Average after-sales service"},
			FuelEfficiency:        18,
		},
		{
			CarModel:              "Mahindra XUV700",
			Rating:                5,
			Comment:               "Outstanding features and performance for the price. Best in class safety and technology.",
			DealershipName:        "Mahindra Authorized",
			City:                  "Pune",
			Variant:               "AX7 Luxury",
			PurchaseDate:          "11/2022",
			SalesExperienceRating: 4,
			PricePaid:             1850000,
			Pros:                  []string{"ADAS features", "Powerful engine", "Spacious 7-seater"},
			Cons:                  []string{"Waiting period", "Some software glitches initially"},
			FuelEfficiency:        14,
		},
		{
			CarModel:              "Kia Seltos",
			Rating:                4,
			Comment:               "Premium feel with great driving dynamics. Feature-rich interiors make for a pleasant experience.",
			DealershipName:        "Kia Motors",
			City:                  "Chennai",
			Variant:               "GTX+ DCT",
			PurchaseDate:          "08/2022",
			SalesExperienceRating: 4,
			PricePaid:             1550000,
			Pros:                  []string{"Premium interiors", "Multiple drive modes", "Good highway stability"},
			Cons:                  []string{"Rear seat space is limited", "AC could be better"},
			FuelEfficiency:        16.5,
		},
		{
			CarModel:              "Toyota Innova Crysta",
			Rating:                5,
			Comment:               "Reliable family vehicle with excellent ride quality. Perfect for long journeys with family.",
			DealershipName:        "Nippon Toyota",
			City:                  "Kochi",
			Variant:               "VX Diesel",
			PurchaseDate:          "03/2022",
			SalesExperienceRating: 5,
			PricePaid:             2250000,
			Pros:                  []string{"Solid build quality", "Comfortable seating for 7", "Reliable engine"},
			Cons:                  []string{"High maintenance cost", "Average fuel efficiency"},
			FuelEfficiency:        13,
		},
		{
			CarModel:              "Honda City",
			Rating:                4,
			Comment:               "Classic sedan with a refined driving experience. The engine is responsive and the cabin is well insulated.",
			DealershipName:        "Arya Honda",
			City:                  "Ahmedabad",
			Variant:               "ZX CVT",
			PurchaseDate:          "05/2023",
			SalesExperienceRating: 4,
			PricePaid:             1320000,
			Pros:                  []string{"Refined engine", "Spacious cabin", "Good resale value"},
			Cons:                  []string{"Road noise at high speeds", "Limited ground clearance"},
			FuelEfficiency:        19,
		},
		{
			CarModel:              "Tata Harrier",
			Rating:                5,
			Comment:               "Stunning design with commanding road presence. Comfortable highway cruiser with good stability.",
			DealershipName:        "Tata Motors Premium",
			City:                  "Lucknow",
			Variant:               "XZA+ Dark Edition",
			PurchaseDate:          "11/2022",
			SalesExperienceRating: 4,
			PricePaid:             2050000,
			Pros:                  []string{"Head-turning design", "Mature ride quality", "Spacious cabin"},
			Cons:                  []string{"No petrol option", "Average infotainment system"},
			FuelEfficiency:        15.5,
		},
		{
			CarModel:              "Hyundai i20",
			Rating:                4,
			Comment:               "Premium hatchback with a European feel. Well equipped with good driving dynamics.",
			DealershipName:        "Capital Hyundai",
			City:                  "Chennai",
			Variant:               "Asta Turbo DCT",
			PurchaseDate:          "06/2023",
			SalesExperienceRating: 4,
			PricePaid:             1020000,
			Pros:                  []string{"Feature-loaded cabin", "Strong engine options", "Premium feel"},
			Cons:                  []string{"Stiff ride quality", "Higher price than competitors"},
			FuelEfficiency:        18,
		},
		{
			CarModel:              "Toyota Fortuner",
			Rating:                5,
			Comment:               "Legendary SUV with bulletproof reliability. Commanding presence and comfortable for long journeys.",
			DealershipName:        "Toyota Landmark",
			City:                  "Mumbai",
			Variant:               "Legender 4x4 AT",
			PurchaseDate:          "07/2022",
			SalesExperienceRating: 5,
			PricePaid:             3650000,
			Pros:                  []string{"Tank-like build quality", "Excellent resale value", "Reliable mechanicals"},
			Cons:                  []string{"Expensive for the features offered", "Heavy steering in city"},
			FuelEfficiency:        11.5,
		},
		{
			CarModel:              "Honda Amaze",
			Rating:                4,
			Comment:               "Compact sedan with a big car feel. Spacious interior and a refined CVT make it a good city car.",
			DealershipName:        "Honda Galleria",
			City:                  "Pune",
			Variant:               "VX CVT Petrol",
			PurchaseDate:          "03/2023",
			SalesExperienceRating: 4,
			PricePaid:             940000,
			Pros:                  []string{"Spacious cabin", "Refined engine", "Good build quality"},
			Cons:                  []string{"Basic infotainment", "Average ground clearance"},
			FuelEfficiency:        20.5,
		},
	}
}

// Guides returns the sample buying guide catalogue.
func Guides() []GuideRequest {
	return []GuideRequest{
		{
			Title:   "Petrol vs Diesel vs CNG: Which Fuel Type is Right for You?",
			Summary: "Choose a fuel type based on how far you drive, what you can spend and where you refuel.",
			Content: `# Petrol vs Diesel vs CNG

## Petrol
Petrol cars cost less up front, run quieter and are cheaper to service. They
suit city drivers covering under 1,000 km a month.

## Diesel
Diesel engines return better mileage and strong low-end torque. They pay off
for drivers covering more than 1,500 km a month, mostly on highways.

## CNG
CNG has the lowest running cost per kilometre but gives up boot space and
depends on local refuelling infrastructure.

## Conclusion
Match the fuel to your monthly distance and to the stations near you.`,
			Category: "Buying Guide",
			Tags:     []string{"Fuel Types", "Petrol", "Diesel", "CNG", "Buying Decision"},
			ReadTime: 8,
		},
		{
			Title:   "Top Budget-Friendly Cars Under ₹10 Lakh",
			Summary: "Value-for-money cars that balance features, performance and affordability.",
			Content: `# Budget-Friendly Cars Under ₹10 Lakh

Hatchbacks such as the Swift and i20 lead on mileage and ease of parking.
Compact SUVs such as the Nexon and Venue add ground clearance and safety
equipment for a small premium. Test drive at least two segments before you
decide, and compare on-road prices rather than ex-showroom figures.`,
			Category: "Buying Guide",
			Tags:     []string{"Budget Cars", "Affordable Cars", "Best Value", "Under 10 Lakh"},
			ReadTime: 10,
		},
		{
			Title:   "How to Choose the Right Car for a Family of Four",
			Summary: "Balance space, safety and convenience features when picking a family car.",
			Content: `# Choosing a Family Car

Start with safety ratings and the number of airbags. Check rear seat
legroom with child seats fitted, and load the boot with a week of luggage
before you commit. Sedans ride better on highways; compact SUVs cope better
with broken city roads.`,
			Category: "Buying Guide",
			Tags:     []string{"Family Cars", "Car Selection", "Safety", "Space", "Practicality"},
			ReadTime: 9,
		},
		{
			Title:   "Understanding Car Financing and Loan Options in India",
			Summary: "Interest rates, eligibility, documentation and strategies for financing a car.",
			Content: `# Car Financing in India

Compare the effective interest rate, not the advertised flat rate. A larger
down payment lowers the EMI and total interest paid. Keep the tenure within
five years so the loan does not outlive the car's best resale window, and
ask for the processing fee and foreclosure charges in writing.`,
			Category: "Financial Guide",
			Tags:     []string{"Car Loans", "Vehicle Financing", "Auto Loans", "Interest Rates", "EMI"},
			ReadTime: 12,
		},
	}
}
