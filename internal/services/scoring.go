package services

import (
	"fmt"

	"github.com/mente-leve/wellbeing-service/internal/models"
)

// Risk tier thresholds over the 8-question, 1..5 answer scale.
const (
	lowTierMax    = 16
	mediumTierMax = 28

	questionCount = 8
	answerMin     = 1
	answerMax     = 5
)

// questionCategories maps each question id to its wellbeing category.
// One question per category in the current questionnaire.
var questionCategories = map[int]string{
	1: "academic_stress",
	2: "sleep_rest",
	3: "relationships",
	4: "mood_emotions",
	5: "anxiety",
	6: "self_care",
	7: "concentration",
	8: "general_wellbeing",
}

// tierRecommendations holds the fixed advice block for each risk tier.
var tierRecommendations = map[models.RiskTier][]string{
	models.RiskLow: {
		"Keep up your good mental wellbeing habits.",
		"Regularly make time for activities you enjoy.",
		"Maintain a healthy sleep routine.",
	},
	models.RiskMedium: {
		"Consider adding relaxation techniques to your routine.",
		"Reach out to friends, family or professionals when you need support.",
		"Review your workload and organize your time better.",
	},
	models.RiskHigh: {
		"Seeking professional support from a psychologist is recommended.",
		"Consider talking to someone you trust about how you feel.",
		"Practice breathing and mindfulness techniques.",
		"Do not hesitate to seek immediate help if you need it.",
	},
}

// categoryTips holds extra advice appended when a category scores 4 or more.
// Only these four categories carry specific tips.
var categoryTips = map[string]string{
	"academic_stress": "Organize your studies better and set clear priorities.",
	"sleep_rest":      "Improve your sleep hygiene and keep regular hours.",
	"anxiety":         "Practice breathing and relaxation techniques.",
	"self_care":       "Set aside more time for self-care activities.",
}

// ScoringResult is the derived output of one questionnaire submission.
type ScoringResult struct {
	TotalScore        int
	RiskTier          models.RiskTier
	CategoryBreakdown map[string]int
	Recommendations   []string
}

// ValidateAnswers checks that every question is answered exactly once with a
// value on the 1..5 scale. Validation fails fast on the first bad answer.
func ValidateAnswers(answers models.AnswerSet) error {
	if len(answers) != questionCount {
		return fmt.Errorf("%w: got %d of %d answers", ErrIncompleteAnswers, len(answers), questionCount)
	}
	for id := 1; id <= questionCount; id++ {
		value, ok := answers[id]
		if !ok {
			return fmt.Errorf("%w: question %d missing", ErrIncompleteAnswers, id)
		}
		if value < answerMin || value > answerMax {
			return fmt.Errorf("%w: question %d has value %d", ErrAnswerOutOfRange, id, value)
		}
	}
	for id := range answers {
		if _, ok := questionCategories[id]; !ok {
			return fmt.Errorf("%w: question %d", ErrUnknownAssessmentAnswer, id)
		}
	}
	return nil
}

// Score computes the total, risk tier, category breakdown and recommendations
// for a validated answer set. Scoring is deterministic: the tier block comes
// first, then category tips in question order.
func Score(answers models.AnswerSet) ScoringResult {
	total := 0
	breakdown := make(map[string]int, len(answers))
	for id, value := range answers {
		total += value
		if category, ok := questionCategories[id]; ok {
			breakdown[category] = value
		}
	}

	tier := riskTierFor(total)

	recommendations := make([]string, 0, len(tierRecommendations[tier])+len(categoryTips))
	recommendations = append(recommendations, tierRecommendations[tier]...)
	for id := 1; id <= questionCount; id++ {
		category := questionCategories[id]
		if answers[id] >= 4 {
			if tip, ok := categoryTips[category]; ok {
				recommendations = append(recommendations, tip)
			}
		}
	}

	return ScoringResult{
		TotalScore:        total,
		RiskTier:          tier,
		CategoryBreakdown: breakdown,
		Recommendations:   recommendations,
	}
}

func riskTierFor(total int) models.RiskTier {
	switch {
	case total <= lowTierMax:
		return models.RiskLow
	case total <= mediumTierMax:
		return models.RiskMedium
	default:
		return models.RiskHigh
	}
}
