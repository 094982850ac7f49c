// internal/workers/remedy/generate-clarification-questions/models.go
package generatequestions

import "remedypedia/internal/models"

type Input struct {
	Query string `json:"query"`
}

type Output struct {
	Questions []models.ClarificationQuestion `json:"questions"`
}
