// internal/workers/remedy/generate-remedies/models.go
package generateremedies

import "remedypedia/internal/models"

type Input struct {
	Query                string                      `json:"query"`
	ClarificationAnswers models.ClarificationAnswers `json:"clarificationAnswers"`
}

// Output is returned to the caller as is, not wrapped.
type Output = models.RemedyResponse
