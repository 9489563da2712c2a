package validation

import (
	"testing"

	"inkwell/internal/models"
)

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		title string
		want  string
	}{
		{name: "punctuation and year", title: "Hello, World! 2024", want: "hello-world-2024"},
		{name: "plain title", title: "Learning React", want: "learning-react"},
		{name: "already a slug", title: "university-life-balance", want: "university-life-balance"},
		{name: "leading and trailing junk", title: "  ...Web Design?  ", want: "web-design"},
		{name: "consecutive separators", title: "A -- B", want: "a-b"},
		{name: "uppercase", title: "AI In Everyday Technology", want: "ai-in-everyday-technology"},
		{name: "empty", title: "", want: ""},
		{name: "only punctuation", title: "!!!", want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Slugify(tc.title); got != tc.want {
				t.Fatalf("Slugify(%q) = %q, want %q", tc.title, got, tc.want)
			}
		})
	}
}

func TestNormalizeReadTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want int
	}{
		{name: "valid", raw: "8", want: 8},
		{name: "with spaces", raw: " 12 ", want: 12},
		{name: "empty", raw: "", want: models.DefaultReadTime},
		{name: "not a number", raw: "abc", want: models.DefaultReadTime},
		{name: "zero", raw: "0", want: models.DefaultReadTime},
		{name: "negative", raw: "-3", want: models.DefaultReadTime},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeReadTime(tc.raw); got != tc.want {
				t.Fatalf("NormalizeReadTime(%q) = %d, want %d", tc.raw, got, tc.want)
			}
		})
	}
}

func TestValidateDraft(t *testing.T) {
	t.Parallel()

	valid := Draft{
		Title:    "The Evolution of Web Design",
		Excerpt:  "From static pages to interactive experiences.",
		Content:  "Web design has come a long way...",
		Category: models.CategoryWebDesign,
		Slug:     "evolution-of-web-design",
		ReadTime: 5,
	}

	if err := ValidateDraft(valid); err != nil {
		t.Fatalf("expected valid draft, got error: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(d *Draft)
	}{
		{name: "missing title", mutate: func(d *Draft) { d.Title = "" }},
		{name: "whitespace title", mutate: func(d *Draft) { d.Title = "   " }},
		{name: "missing excerpt", mutate: func(d *Draft) { d.Excerpt = "" }},
		{name: "missing content", mutate: func(d *Draft) { d.Content = "" }},
		{name: "unknown category", mutate: func(d *Draft) { d.Category = "Cooking" }},
		{name: "empty category", mutate: func(d *Draft) { d.Category = "" }},
		{name: "all filter is not storable", mutate: func(d *Draft) { d.Category = models.CategoryAll }},
		{name: "zero read time", mutate: func(d *Draft) { d.ReadTime = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := valid
			tc.mutate(&d)
			err := ValidateDraft(d)
			if err == nil {
				t.Fatalf("expected validation error, got nil")
			}
			if models.ErrorCode(err) != models.CodeValidation {
				t.Fatalf("expected %s, got %s", models.CodeValidation, models.ErrorCode(err))
			}
		})
	}
}
