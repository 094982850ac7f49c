package extractanswers

import (
	"encoding/json"
	"testing"

	"remedypedia/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Classification Tests
// ==========================

func TestClassify(t *testing.T) {
	tests := []struct {
		key  string
		want Bucket
	}{
		{"allergyDetails", BucketAllergies},
		{"ALLERGYDETAILS", BucketAllergies},
		{"known_allergies", BucketAllergies},
		{"age_group", BucketAgeGroup},
		{"Age", BucketAgeGroup},
		{"duration", BucketDuration},
		{"how_long", BucketDuration},
		{"accompanying_symptoms", BucketSymptoms},
		{"other symptoms", BucketSymptoms},
		{"treatments", BucketTreatments},
		{"what_have_you_tried", BucketTreatments},
		{"additionalComments", BucketAdditionalDetails},
		{"severity", BucketConditionSpecific},
		{"originalQuery", BucketConditionSpecific},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.key))
		})
	}
}

func TestClassify_FirstRuleWins(t *testing.T) {
	// "allergy_age" matches both the allergy and age rules.
	assert.Equal(t, BucketAllergies, Classify("allergy_age"))
	// "long_term_treatment" matches duration before treatments.
	assert.Equal(t, BucketDuration, Classify("long_term_treatment"))
	// "message" contains "age".
	assert.Equal(t, BucketAgeGroup, Classify("message"))
}

// ==========================
// Extraction Tests
// ==========================

func TestExtract_AllergyNegatives(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  []string
	}{
		{name: "none is dropped", value: "None", want: []string{}},
		{name: "no known is dropped", value: "No known allergies", want: []string{}},
		{name: "real allergy kept", value: "Penicillin", want: []string{"Penicillin"}},
		{name: "list filtered per element", value: []string{"None", "Pollen", "Nuts"}, want: []string{"Pollen", "Nuts"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Extract(models.NewAnswers("allergies", tt.value))
			assert.Equal(t, tt.want, info.Allergies)
		})
	}
}

func TestExtract_AllergyDetailsBypassesNegativeFilter(t *testing.T) {
	info := Extract(models.NewAnswers(
		"allergies", []string{"None"},
		"allergyDetails", "none that I know of, maybe latex",
	))
	assert.Equal(t, []string{"none that I know of, maybe latex"}, info.Allergies)
}

func TestExtract_FullProfile(t *testing.T) {
	answers := models.NewAnswers(
		"originalQuery", "headache",
		"allergies", []string{"Pollen"},
		"age_group", "Adult (18-64)",
		"duration", "1-4 weeks",
		"accompanying_symptoms", []string{"Nausea", "Light sensitivity"},
		"treatments_tried", []string{"Rest", "Over-the-counter medication"},
		"severity", "Moderate",
		"additionalComments", "Worse in the evening",
	)

	info := Extract(answers)

	assert.Equal(t, []string{"Pollen"}, info.Allergies)
	assert.Equal(t, "Adult (18-64)", info.AgeGroup)
	assert.Equal(t, "1-4 weeks", info.Duration)
	assert.Equal(t, []string{"Nausea", "Light sensitivity"}, info.Symptoms)
	assert.Equal(t, []string{"Rest", "Over-the-counter medication"}, info.Treatments)
	assert.Equal(t, "Moderate", info.ConditionSpecific)
	assert.Equal(t, "Worse in the evening", info.AdditionalDetails)
}

func TestExtract_LastUnmatchedKeyWins(t *testing.T) {
	info := Extract(models.NewAnswers(
		"severity", "Mild",
		"trigger", "Screens",
		"pattern", []string{"Mornings", "Evenings"},
	))
	assert.Equal(t, "Mornings, Evenings", info.ConditionSpecific)
}

func TestExtract_LastUnmatchedKeyWinsFromJSONOrder(t *testing.T) {
	var answers models.ClarificationAnswers
	require.NoError(t, json.Unmarshal([]byte(`{"zeta":"first","alpha":"second","mid":"third"}`), &answers))

	info := Extract(answers)
	assert.Equal(t, "third", info.ConditionSpecific)
}

func TestExtract_ScalarLastWriteWins(t *testing.T) {
	info := Extract(models.NewAnswers(
		"age", "Teen (12-17)",
		"age_group", "Senior (65+)",
	))
	assert.Equal(t, "Senior (65+)", info.AgeGroup)
}

func TestExtract_ListValuesJoinedForScalarBuckets(t *testing.T) {
	info := Extract(models.NewAnswers("duration", []string{"Days", "Weeks"}))
	assert.Equal(t, "Days, Weeks", info.Duration)
}

func TestExtract_BlankScalarAnswers(t *testing.T) {
	tests := []struct {
		name     string
		answers  models.ClarificationAnswers
		expected models.ExtractedInfo
	}{
		{
			name: "blank answers overwrite earlier scalar values",
			answers: models.NewAnswers(
				"cough_type", "Dry",
				"severity", "",
				"age_group", "Senior (65+)",
				"patient_age", "",
			),
			expected: models.ExtractedInfo{ConditionSpecific: "", AgeGroup: ""},
		},
		{
			name:     "whitespace answer is stored trimmed",
			answers:  models.NewAnswers("severity", "Mild", "trigger", "   "),
			expected: models.ExtractedInfo{ConditionSpecific: ""},
		},
		{
			name:     "later non-blank answer still wins",
			answers:  models.NewAnswers("duration", "", "how_long", "Weeks"),
			expected: models.ExtractedInfo{Duration: "Weeks"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Extract(tt.answers)
			assert.Equal(t, tt.expected.ConditionSpecific, info.ConditionSpecific)
			assert.Equal(t, tt.expected.AgeGroup, info.AgeGroup)
			assert.Equal(t, tt.expected.Duration, info.Duration)
		})
	}
}

func TestExtract_BlankListElementsSkipped(t *testing.T) {
	info := Extract(models.NewAnswers("symptoms", []string{"", "Fever", "  "}))
	assert.Equal(t, []string{"Fever"}, info.Symptoms)
}

func TestExtract_EmptyAnswers(t *testing.T) {
	for _, answers := range []models.ClarificationAnswers{nil, {}} {
		info := Extract(answers)
		assert.Equal(t, models.NewExtractedInfo(), info)
		assert.NotNil(t, info.Allergies)
		assert.NotNil(t, info.Symptoms)
		assert.NotNil(t, info.Treatments)
	}
}

func TestExtract_EveryKeyLandsInOneBucket(t *testing.T) {
	keys := []string{"allergyDetails", "allergies", "age", "how_long", "symptoms", "tried", "additionalComments", "other"}
	seen := map[Bucket]int{}
	for _, k := range keys {
		seen[Classify(k)]++
	}

	total := 0
	for _, n := range seen {
		total += n
	}
	assert.Equal(t, len(keys), total)
	assert.Len(t, seen, 7)
}
