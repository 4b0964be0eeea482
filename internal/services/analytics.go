package services

import (
	"fmt"
	"math"
	"sort"

	"github.com/mente-leve/wellbeing-service/internal/models"
)

// minTagOccurrences is the floor below which a tag is excluded from
// correlation output; a single occurrence carries no signal.
const minTagOccurrences = 2

// trendWindowDays is the number of distinct days compared at each end of the
// period when classifying the overall mood trend.
const trendWindowDays = 7

// TagCorrelation relates one journal tag to the mood levels recorded
// alongside it.
type TagCorrelation struct {
	Item      string  `json:"item"`
	MeanMood  float64 `json:"mean_mood"`
	Frequency int     `json:"frequency"`
	Impact    string  `json:"impact"` // positive, neutral or negative
}

// CorrelationReport groups tag correlations by tag kind with overall insights.
type CorrelationReport struct {
	Activities []TagCorrelation `json:"activities"`
	Emotions   []TagCorrelation `json:"emotions"`
	Factors    []TagCorrelation `json:"factors"`

	TotalEntries int      `json:"total_entries"`
	PeriodDays   int      `json:"period_days"`
	MeanMood     float64  `json:"mean_mood"`
	Insights     []string `json:"insights"`
}

// TrendPoint is one plotted day in a mood trend series.
type TrendPoint struct {
	Date string `json:"date"`
	Mood int    `json:"mood"`
}

// TrendReport describes how mood moved over the requested period.
type TrendReport struct {
	Points     []TrendPoint `json:"points"`
	Trend      string       `json:"trend"` // improving, worsening or stable
	TotalDays  int          `json:"total_days"`
	PeriodMean float64      `json:"period_mean"`
}

// MoodReport is the full 30-day summary of a user's journal.
type MoodReport struct {
	TotalEntries     int                `json:"total_entries"`
	MeanMood         float64            `json:"mean_mood"`
	MostFrequentMood int                `json:"most_frequent_mood"`
	MoodDistribution map[string]float64 `json:"mood_distribution"` // level -> percentage
	TopActivities    []TagFrequency     `json:"top_activities"`
	TopFactors       []TagFrequency     `json:"top_factors"`
	MeanSleepQuality *float64           `json:"mean_sleep_quality,omitempty"`
	MeanStressLevel  *float64           `json:"mean_stress_level,omitempty"`
	Recommendations  []string           `json:"recommendations"`
}

// TagFrequency counts how often one tag appears across entries.
type TagFrequency struct {
	Tag       string `json:"tag"`
	Frequency int    `json:"frequency"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

func impactFor(meanMood float64) string {
	switch {
	case meanMood >= 4:
		return "positive"
	case meanMood >= 3:
		return "neutral"
	default:
		return "negative"
	}
}

// correlate builds per-tag correlations from a tag -> observed moods mapping.
// Tags below the occurrence floor are dropped; output sorts by mean mood
// descending with the tag name as tie-breaker for determinism.
func correlate(moodsByTag map[string][]int) []TagCorrelation {
	correlations := make([]TagCorrelation, 0, len(moodsByTag))
	for tag, moods := range moodsByTag {
		if len(moods) < minTagOccurrences {
			continue
		}
		m := round2(mean(moods))
		correlations = append(correlations, TagCorrelation{
			Item:      tag,
			MeanMood:  m,
			Frequency: len(moods),
			Impact:    impactFor(m),
		})
	}
	sort.Slice(correlations, func(i, j int) bool {
		if correlations[i].MeanMood != correlations[j].MeanMood {
			return correlations[i].MeanMood > correlations[j].MeanMood
		}
		return correlations[i].Item < correlations[j].Item
	})
	return correlations
}

// CorrelateMood analyzes how activities, emotions and influencing factors
// relate to recorded mood levels over the given period.
func CorrelateMood(entries []*models.MoodEntry, periodDays int) CorrelationReport {
	report := CorrelationReport{
		Activities:   []TagCorrelation{},
		Emotions:     []TagCorrelation{},
		Factors:      []TagCorrelation{},
		TotalEntries: len(entries),
		PeriodDays:   periodDays,
		Insights:     []string{},
	}
	if len(entries) == 0 {
		return report
	}

	activityMoods := make(map[string][]int)
	emotionMoods := make(map[string][]int)
	factorMoods := make(map[string][]int)
	moodSum := 0
	for _, entry := range entries {
		moodSum += entry.MoodLevel
		for _, tag := range entry.Activities.Data() {
			activityMoods[tag] = append(activityMoods[tag], entry.MoodLevel)
		}
		for _, tag := range entry.Emotions.Data() {
			emotionMoods[tag] = append(emotionMoods[tag], entry.MoodLevel)
		}
		for _, tag := range entry.Factors.Data() {
			factorMoods[tag] = append(factorMoods[tag], entry.MoodLevel)
		}
	}

	report.Activities = correlate(activityMoods)
	report.Emotions = correlate(emotionMoods)
	report.Factors = correlate(factorMoods)
	report.MeanMood = round2(float64(moodSum) / float64(len(entries)))

	if len(report.Activities) > 0 {
		best := report.Activities[0]
		if best.MeanMood >= 4 {
			report.Insights = append(report.Insights,
				fmt.Sprintf("The activity '%s' is associated with your best mood (mean %.2f).", best.Item, best.MeanMood))
		}
	}
	for i := len(report.Factors) - 1; i >= 0; i-- {
		if report.Factors[i].Impact == "negative" {
			report.Insights = append(report.Insights,
				fmt.Sprintf("The factor '%s' seems to impact your mood negatively (mean %.2f).", report.Factors[i].Item, report.Factors[i].MeanMood))
			break
		}
	}
	switch {
	case report.MeanMood >= 4:
		report.Insights = append(report.Insights, "Your mood has been consistently positive over this period!")
	case report.MeanMood <= 2:
		report.Insights = append(report.Insights, "Your mood has been low. Consider seeking out activities that do you good.")
	}
	return report
}

// AnalyzeTrend classifies mood movement by comparing the mean of the earliest
// seven recorded days against the latest seven. One mood value is kept per
// day; a later entry for the same day supersedes the earlier one.
func AnalyzeTrend(entries []*models.MoodEntry) TrendReport {
	moodByDate := make(map[string]int)
	for _, entry := range entries {
		moodByDate[entry.EntryDate.Format("2006-01-02")] = entry.MoodLevel
	}

	dates := make([]string, 0, len(moodByDate))
	for date := range moodByDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	report := TrendReport{
		Points:    make([]TrendPoint, 0, len(dates)),
		Trend:     "stable",
		TotalDays: len(dates),
	}
	moodSum := 0
	for _, date := range dates {
		report.Points = append(report.Points, TrendPoint{Date: date, Mood: moodByDate[date]})
		moodSum += moodByDate[date]
	}
	if len(dates) > 0 {
		report.PeriodMean = round2(float64(moodSum) / float64(len(dates)))
	}

	if len(dates) >= trendWindowDays {
		// Shrink the window when the ends would overlap, so a short period
		// still compares its beginning against its end.
		window := trendWindowDays
		if len(dates) < 2*window {
			window = len(dates) / 2
		}
		var firstSum, lastSum int
		for _, date := range dates[:window] {
			firstSum += moodByDate[date]
		}
		for _, date := range dates[len(dates)-window:] {
			lastSum += moodByDate[date]
		}
		diff := float64(lastSum-firstSum) / float64(window)
		if diff > 0.5 {
			report.Trend = "improving"
		} else if diff < -0.5 {
			report.Trend = "worsening"
		}
	}
	return report
}

// BuildMoodReport produces the full journal summary for the report endpoints.
func BuildMoodReport(entries []*models.MoodEntry) MoodReport {
	report := MoodReport{
		TotalEntries:     len(entries),
		MoodDistribution: map[string]float64{},
		TopActivities:    []TagFrequency{},
		TopFactors:       []TagFrequency{},
		Recommendations:  []string{},
	}
	if len(entries) == 0 {
		return report
	}

	moodCounts := make(map[int]int)
	activityCounts := make(map[string]int)
	factorCounts := make(map[string]int)
	moodSum := 0
	var sleepValues, stressValues []int
	for _, entry := range entries {
		moodSum += entry.MoodLevel
		moodCounts[entry.MoodLevel]++
		for _, tag := range entry.Activities.Data() {
			activityCounts[tag]++
		}
		for _, tag := range entry.Factors.Data() {
			factorCounts[tag]++
		}
		if entry.SleepQuality != nil {
			sleepValues = append(sleepValues, *entry.SleepQuality)
		}
		if entry.StressLevel != nil {
			stressValues = append(stressValues, *entry.StressLevel)
		}
	}

	report.MeanMood = round2(float64(moodSum) / float64(len(entries)))
	mostFrequent, bestCount := 0, 0
	for level, count := range moodCounts {
		if count > bestCount || (count == bestCount && level < mostFrequent) {
			mostFrequent, bestCount = level, count
		}
		report.MoodDistribution[fmt.Sprintf("%d", level)] =
			math.Round(float64(count)/float64(len(entries))*1000) / 10
	}
	report.MostFrequentMood = mostFrequent
	report.TopActivities = topTags(activityCounts, 5)
	report.TopFactors = topTags(factorCounts, 5)

	if len(sleepValues) > 0 {
		m := round2(mean(sleepValues))
		report.MeanSleepQuality = &m
	}
	if len(stressValues) > 0 {
		m := round2(mean(stressValues))
		report.MeanStressLevel = &m
	}

	if report.MeanMood >= 4 {
		report.Recommendations = append(report.Recommendations,
			"Well done! Your mood has been great. Keep doing the activities that do you good!")
	} else if report.MeanMood <= 2 {
		report.Recommendations = append(report.Recommendations,
			"Your mood has been low. Consider seeking professional help and doing activities that bring you joy.")
	}
	if report.MeanSleepQuality != nil && *report.MeanSleepQuality < 3 {
		report.Recommendations = append(report.Recommendations,
			"Your sleep quality may be affecting your mood. Try improving your sleep hygiene.")
	}
	if report.MeanStressLevel != nil && *report.MeanStressLevel > 3 {
		report.Recommendations = append(report.Recommendations,
			"Your stress levels are elevated. Consider relaxation and stress management techniques.")
	}
	return report
}

func topTags(counts map[string]int, limit int) []TagFrequency {
	tags := make([]TagFrequency, 0, len(counts))
	for tag, count := range counts {
		tags = append(tags, TagFrequency{Tag: tag, Frequency: count})
	}
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Frequency != tags[j].Frequency {
			return tags[i].Frequency > tags[j].Frequency
		}
		return tags[i].Tag < tags[j].Tag
	})
	if len(tags) > limit {
		tags = tags[:limit]
	}
	return tags
}
