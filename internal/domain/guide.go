package domain

import (
	"time"
	"unicode/utf8"
)

// Guide defaults.
const (
	DefaultGuideCategory = "Buying Guide"
	DefaultGuideAuthor   = "CarMitra Team"

	// charsPerMinute is the reading speed used to estimate ReadTime.
	charsPerMinute = 1000
)

// Guide is a long-form article addressed externally only by its UUID.
type Guide struct {
	UUID        string    `json:"uuid"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Content     string    `json:"content"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	AuthorName  string    `json:"authorName"`
	PublishDate time.Time `json:"publishDate"`
	LastUpdated time.Time `json:"lastUpdated"`
	ReadTime    int       `json:"readTime"`
}

// GuideSummary is the list projection of a Guide.
type GuideSummary struct {
	UUID        string    `json:"uuid"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	AuthorName  string    `json:"authorName"`
	PublishDate time.Time `json:"publishDate"`
	ReadTime    int       `json:"readTime"`
}

// EstimateReadTime returns the minutes needed to read content, at least 1.
func EstimateReadTime(content string) int {
	n := utf8.RuneCountInString(content)
	return max(1, (n+charsPerMinute-1)/charsPerMinute)
}

// UniqueTags cleans tags and drops repeats, keeping first occurrences.
func UniqueTags(tags []string) []string {
	cleaned := CleanList(tags)
	seen := make(map[string]struct{}, len(cleaned))
	out := cleaned[:0]
	for _, t := range cleaned {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
