package newslettersubscribe

import (
	"strings"

	"remedypedia/internal/common/errors"
	"remedypedia/internal/common/validation"
)

const maxEmailLength = 254

func normalizeInput(input *Input) (*Input, error) {
	if input == nil {
		return nil, errors.NewInputValidationError("Invalid email address", "email is required")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, errors.NewInputValidationError("Invalid email address", "email is required")
	}
	if len(email) > maxEmailLength || !validation.ValidateEmail(email) {
		return nil, errors.NewInputValidationError("Invalid email address", email)
	}

	source := strings.TrimSpace(input.Source)
	if source == "" {
		source = DefaultSource
	}
	return &Input{Email: email, Source: source}, nil
}
