// internal/workers/remedy/extract-answers/extractor.go
package extractanswers

import (
	"strings"

	"remedypedia/internal/models"
)

// Bucket names an ExtractedInfo field.
type Bucket string

const (
	BucketAllergies         Bucket = "allergies"
	BucketAgeGroup          Bucket = "ageGroup"
	BucketDuration          Bucket = "duration"
	BucketSymptoms          Bucket = "symptoms"
	BucketTreatments        Bucket = "treatments"
	BucketAdditionalDetails Bucket = "additionalDetails"
	BucketConditionSpecific Bucket = "conditionSpecific"
)

type rule struct {
	bucket Bucket
	match  func(key string) bool
}

func equals(name string) func(string) bool {
	name = strings.ToLower(name)
	return func(key string) bool { return key == name }
}

func containsAny(substrs ...string) func(string) bool {
	return func(key string) bool {
		for _, s := range substrs {
			if strings.Contains(key, s) {
				return true
			}
		}
		return false
	}
}

// rules are evaluated in order against the lower-cased key; the first match wins.
// The additional-comments key is handled before the table.
var rules = []rule{
	{BucketAllergies, equals(models.AnswerKeyAllergyDetails)},
	{BucketAllergies, containsAny("allerg")},
	{BucketAgeGroup, containsAny("age")},
	{BucketDuration, containsAny("duration", "long")},
	{BucketSymptoms, containsAny("symptoms", "accompanying")},
	{BucketTreatments, containsAny("treatment", "tried")},
}

var negativeAllergyMarkers = []string{"none", "no known"}

// Classify returns the bucket a clarification answer key lands in.
func Classify(key string) Bucket {
	k := strings.ToLower(key)
	if k == strings.ToLower(models.AnswerKeyAdditionalComments) {
		return BucketAdditionalDetails
	}
	for _, r := range rules {
		if r.match(k) {
			return r.bucket
		}
	}
	return BucketConditionSpecific
}

// Extract derives the structured profile from clarification answers in their given order.
func Extract(answers models.ClarificationAnswers) models.ExtractedInfo {
	info := models.NewExtractedInfo()
	for _, entry := range answers {
		store(&info, entry, Classify(entry.Key))
	}
	return info
}

func store(info *models.ExtractedInfo, entry models.AnswerEntry, bucket Bucket) {
	switch bucket {
	case BucketAllergies:
		explicit := strings.EqualFold(entry.Key, models.AnswerKeyAllergyDetails)
		for _, v := range nonBlank(entry.Value) {
			if !explicit && isNegativeAllergy(v) {
				continue
			}
			info.Allergies = append(info.Allergies, v)
		}
	case BucketSymptoms:
		info.Symptoms = append(info.Symptoms, nonBlank(entry.Value)...)
	case BucketTreatments:
		info.Treatments = append(info.Treatments, nonBlank(entry.Value)...)
	case BucketAgeGroup:
		setScalar(&info.AgeGroup, entry.Value)
	case BucketDuration:
		setScalar(&info.Duration, entry.Value)
	case BucketAdditionalDetails:
		setScalar(&info.AdditionalDetails, entry.Value)
	default:
		setScalar(&info.ConditionSpecific, entry.Value)
	}
}

// setScalar overwrites even with a blank answer so the last key wins.
func setScalar(dst *string, v models.AnswerValue) {
	*dst = strings.TrimSpace(v.Text())
}

func nonBlank(v models.AnswerValue) []string {
	out := make([]string, 0, len(v.Values))
	for _, s := range v.Values {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func isNegativeAllergy(v string) bool {
	lv := strings.ToLower(v)
	for _, marker := range negativeAllergyMarkers {
		if strings.Contains(lv, marker) {
			return true
		}
	}
	return false
}
