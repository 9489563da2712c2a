// Package validation contains input validation shared by the service layer
// and the admin editor.
package validation

import (
	"regexp"
	"strconv"
	"strings"

	"inkwell/internal/models"
)

var nonAlphanumRuns = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe slug from a title: lowercase, runs of
// non-alphanumeric characters collapsed to a single hyphen, leading and
// trailing hyphens trimmed.
func Slugify(title string) string {
	slug := nonAlphanumRuns.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

// NormalizeReadTime parses a read time entered as free text. Absent or
// unparsable input falls back to models.DefaultReadTime, as does anything
// non-positive.
func NormalizeReadTime(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return models.DefaultReadTime
	}
	return n
}

// Draft is the not-yet-persisted field set checked before a create or
// update call reaches the store.
type Draft struct {
	Title    string
	Excerpt  string
	Content  string
	Category models.Category
	Slug     string
	ReadTime int
}

// ValidateDraft checks the client-detectable constraints of spec'd required
// fields. It returns a VALIDATION_ERROR AppError so callers can surface it
// without contacting the store.
func ValidateDraft(d Draft) error {
	if strings.TrimSpace(d.Title) == "" {
		return models.NewValidationError("Title is required")
	}
	if strings.TrimSpace(d.Excerpt) == "" {
		return models.NewValidationError("Excerpt is required")
	}
	if strings.TrimSpace(d.Content) == "" {
		return models.NewValidationError("Content is required")
	}
	if !d.Category.Valid() {
		return models.NewValidationError("Category must be one of: Web Design, Technology, History, Personal Life")
	}
	if d.ReadTime <= 0 {
		return models.NewValidationError("Read time must be a positive number of minutes")
	}
	return nil
}
