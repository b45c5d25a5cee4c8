package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MinPurchaseYear is the earliest accepted purchase year.
const MinPurchaseYear = 1900

var purchaseDatePattern = regexp.MustCompile(`^\d{2}/\d{4}$`)

// Purchase date validation failures, in the order they are checked.
var (
	ErrPurchaseDateFormat = errors.New("Purchase date is required in MM/YYYY format")
	ErrPurchaseMonth      = errors.New("Month must be between 01 and 12")
	ErrPurchaseDateFuture = errors.New("Purchase date cannot be in the future")
)

// PurchaseYearError reports a year outside [MinPurchaseYear, current year].
type PurchaseYearError struct {
	Max int
}

func (e *PurchaseYearError) Error() string {
	return fmt.Sprintf("Year must be between %d and %d", MinPurchaseYear, e.Max)
}

// PurchaseDate is a calendar month in which a car was bought.
type PurchaseDate struct {
	Month time.Month
	Year  int
}

// ParsePurchaseDate parses an MM/YYYY string. It checks only the shape and
// the month range; use Check to compare against the current date.
func ParsePurchaseDate(s string) (PurchaseDate, error) {
	s = strings.TrimSpace(s)
	if !purchaseDatePattern.MatchString(s) {
		return PurchaseDate{}, ErrPurchaseDateFormat
	}
	month, _ := strconv.Atoi(s[:2])
	year, _ := strconv.Atoi(s[3:])
	if month < 1 || month > 12 {
		return PurchaseDate{}, ErrPurchaseMonth
	}
	return PurchaseDate{Month: time.Month(month), Year: year}, nil
}

// Check reports whether the purchase date lies between January 1900 and the
// month containing now.
func (p PurchaseDate) Check(now time.Time) error {
	if p.Year < MinPurchaseYear || p.Year > now.Year() {
		return &PurchaseYearError{Max: now.Year()}
	}
	if p.Year == now.Year() && p.Month > now.Month() {
		return ErrPurchaseDateFuture
	}
	return nil
}

// String formats the date as MM/YYYY.
func (p PurchaseDate) String() string {
	return fmt.Sprintf("%02d/%04d", int(p.Month), p.Year)
}

// CheckPurchaseDate parses s and checks it against now.
func CheckPurchaseDate(s string, now time.Time) error {
	p, err := ParsePurchaseDate(s)
	if err != nil {
		return err
	}
	return p.Check(now)
}

// OwnershipMonths returns the whole months between the purchase month and the
// month containing now. Unparsable or future dates yield 0.
func OwnershipMonths(purchaseDate string, now time.Time) int {
	p, err := ParsePurchaseDate(purchaseDate)
	if err != nil {
		return 0
	}
	months := (now.Year()-p.Year)*12 + int(now.Month()-p.Month)
	return max(0, months)
}

// FormatOwnership renders a month count as "1 year, 2 months".
func FormatOwnership(months int) string {
	if months <= 0 {
		return "0 months"
	}
	years, rest := months/12, months%12

	var parts []string
	if years > 0 {
		parts = append(parts, plural(years, "year"))
	}
	if rest > 0 {
		parts = append(parts, plural(rest, "month"))
	}
	return strings.Join(parts, ", ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
