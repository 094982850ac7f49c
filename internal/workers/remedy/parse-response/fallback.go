package parseresponse

import (
	"strings"

	"remedypedia/internal/models"
)

// Ginger dosage tiers chosen by age group.
const (
	GingerUsageSenior = "Steep 1/2 teaspoon of freshly grated ginger in hot water for 5 to 10 minutes. Drink up to 2 mild cups daily and start with a smaller amount to check tolerance."
	GingerUsageChild  = "For children over 2, offer a weak ginger tea made with 1/4 teaspoon of grated ginger in a cup of warm water, once daily. Check with a pediatrician first."
	GingerUsageAdult  = "Steep 1 teaspoon of freshly grated ginger in hot water for 10 minutes. Drink up to 3 cups daily, or take 250 mg ginger capsules up to 4 times daily."
)

// FallbackQuestions returns the fixed clarification questions. Each call returns
// a fresh slice.
func FallbackQuestions() []models.ClarificationQuestion {
	return []models.ClarificationQuestion{
		{
			Title:   "Do you have any known allergies?",
			Type:    models.QuestionTypeCheckbox,
			Options: []string{"None", "Pollen", "Nuts", "Dairy", "Medications", "Other"},
		},
		{
			Title:   "What is your age group?",
			Type:    models.QuestionTypeRadio,
			Options: []string{"Child (under 12)", "Teen (12-17)", "Adult (18-64)", "Senior (65+)"},
		},
		{
			Title:   "How long have you been experiencing this?",
			Type:    models.QuestionTypeRadio,
			Options: []string{"Less than a week", "1-4 weeks", "1-6 months", "More than 6 months"},
		},
		{
			Title:   "Are you experiencing any accompanying symptoms?",
			Type:    models.QuestionTypeCheckbox,
			Options: []string{"None", "Fever", "Fatigue", "Nausea", "Pain", "Sleep problems"},
		},
		{
			Title:   "What treatments have you already tried?",
			Type:    models.QuestionTypeCheckbox,
			Options: []string{"Nothing yet", "Rest", "Over-the-counter medication", "Prescription medication", "Herbal remedies", "Diet changes"},
		},
		{
			Title:   "Which of these best describes your main concern?",
			Type:    models.QuestionTypeRadio,
			Options: []string{"Comes and goes", "Constant but mild", "Constant and getting worse", "Triggered by specific activities or foods", "Worse at certain times of day"},
		},
	}
}

// FallbackRemedies builds the deterministic remedy response for condition and info.
// It never calls out to the network.
func FallbackRemedies(condition string, info models.ExtractedInfo) models.RemedyResponse {
	allergyNote := ""
	if len(info.Allergies) > 0 {
		allergyNote = " You reported allergies to: " + strings.Join(info.Allergies, ", ") + ". Check every ingredient against them before use."
	}

	return models.RemedyResponse{
		Summary: fallbackSummary(condition, info),
		Remedies: []models.Remedy{
			{
				Name:        "Ginger",
				Description: "Ginger root has anti-inflammatory compounds (gingerols) that may ease pain, nausea and digestive discomfort.",
				Usage:       gingerUsage(info.AgeGroup),
				Warnings:    "May interact with blood thinners and diabetes medication. Avoid large amounts during pregnancy." + allergyNote,
			},
			{
				Name:        "Chamomile",
				Description: "Chamomile is a gentle calming herb traditionally used for relaxation, sleep and mild stomach upset.",
				Usage:       "Steep 1 to 2 teaspoons of dried chamomile flowers in hot water for 5 minutes. Drink up to 3 cups daily, ideally one before bed.",
				Warnings:    "Avoid if allergic to ragweed, daisies or related plants. May increase drowsiness with sedatives." + allergyNote,
			},
			{
				Name:        "Peppermint",
				Description: "Peppermint contains menthol, which may relax muscles and soothe tension headaches and indigestion.",
				Usage:       "Drink 1 cup of peppermint tea up to 3 times daily, or apply diluted peppermint oil (2 to 3 drops in a carrier oil) to the temples.",
				Warnings:    "Avoid with acid reflux. Do not apply peppermint oil near the face of young children." + allergyNote,
			},
		},
		AncientRemedies: []models.AncientRemedy{
			{
				Name:           "Willow Bark Decoction",
				Culture:        "Ancient Egypt and Greece",
				TraditionalUse: "Willow bark was simmered into a decoction and taken for pain, fever and inflammation.",
				ModernFindings: "Willow bark contains salicin, a natural precursor of aspirin, and studies support modest pain relief.",
			},
			{
				Name:           "Tulsi (Holy Basil) Infusion",
				Culture:        "Ayurvedic medicine, India",
				TraditionalUse: "Tulsi leaves were infused as a daily tea to restore balance, ease stress and support breathing.",
				ModernFindings: "Research suggests tulsi has adaptogenic properties that may help the body cope with stress.",
			},
		},
	}
}

func fallbackSummary(condition string, info models.ExtractedInfo) string {
	var b strings.Builder
	b.WriteString("Based on your health concerns regarding ")
	b.WriteString(condition)
	if info.Duration != "" {
		b.WriteString(", experienced for ")
		b.WriteString(info.Duration)
	}
	if info.AgeGroup != "" {
		b.WriteString(", and your age group (")
		b.WriteString(info.AgeGroup)
		b.WriteString(")")
	}
	b.WriteString(", here are some gentle natural remedies that may help. Please consult a healthcare professional before starting any new treatment.")
	return b.String()
}

func gingerUsage(ageGroup string) string {
	age := strings.ToLower(ageGroup)
	switch {
	case strings.Contains(age, "senior"):
		return GingerUsageSenior
	case strings.Contains(age, "child"):
		return GingerUsageChild
	default:
		return GingerUsageAdult
	}
}
