package blogposts

import (
	"strings"
	"unicode"

	"remedypedia/internal/common/errors"
)

// Slugify lower-cases s and joins its letter and digit runs with single hyphens.
func Slugify(s string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

// normalize trims the input and fills the slug from the title when it is missing.
func normalize(input *PostInput) (*PostInput, error) {
	if input == nil {
		return nil, errors.NewInputValidationError("Invalid blog post", "body required")
	}

	out := *input
	out.Title = strings.TrimSpace(out.Title)
	out.Content = strings.TrimSpace(out.Content)
	if out.Title == "" {
		return nil, errors.NewInputValidationError("Invalid blog post", "title is required")
	}
	if out.Content == "" {
		return nil, errors.NewInputValidationError("Invalid blog post", "content is required")
	}

	source := out.Slug
	if strings.TrimSpace(source) == "" {
		source = out.Title
	}
	out.Slug = Slugify(source)
	if out.Slug == "" {
		return nil, errors.NewInputValidationError("Invalid blog post", "slug must contain letters or digits")
	}

	tags := make([]string, 0, len(out.Tags))
	for _, tag := range out.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	out.Tags = tags
	return &out, nil
}
