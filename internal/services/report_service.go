package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mente-leve/wellbeing-service/internal/models"
	"github.com/mente-leve/wellbeing-service/internal/repositories"
	"github.com/xuri/excelize/v2"
)

// ReportService exports the mood journal as a spreadsheet.
type ReportService interface {
	ExportMoodJournal(ctx context.Context, userID uint, days int) ([]byte, error)
}

type reportService struct {
	repo   repositories.Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewReportService(repo repositories.Repository, logger *slog.Logger) ReportService {
	return &reportService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// ExportMoodJournal renders the trailing window of mood entries plus a
// summary block into an xlsx workbook.
func (s *reportService) ExportMoodJournal(ctx context.Context, userID uint, days int) ([]byte, error) {
	if days <= 0 {
		days = defaultAnalyticsWindowDays
	}
	since := s.now().AddDate(0, 0, -days)
	entries, err := s.repo.Moods().ListByUserSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load mood entries: %w", err)
	}

	f := excelize.NewFile()
	sheetName := "Mood Journal"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{
		"Date", "Mood", "Emotions", "Activities", "Factors",
		"Sleep Hours", "Sleep Quality", "Stress Level", "Description",
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, entry := range entries {
		row := moodEntryRow(entry)
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	// Summary sheet from the same window.
	report := BuildMoodReport(entries)
	summaryName := "Summary"
	if _, err := f.NewSheet(summaryName); err != nil {
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}
	summary := [][]interface{}{
		{"Total entries", report.TotalEntries},
		{"Mean mood", report.MeanMood},
		{"Most frequent mood", report.MostFrequentMood},
	}
	if report.MeanSleepQuality != nil {
		summary = append(summary, []interface{}{"Mean sleep quality", *report.MeanSleepQuality})
	}
	if report.MeanStressLevel != nil {
		summary = append(summary, []interface{}{"Mean stress level", *report.MeanStressLevel})
	}
	for _, recommendation := range report.Recommendations {
		summary = append(summary, []interface{}{"Recommendation", recommendation})
	}
	for rowIndex, row := range summary {
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+1)
			f.SetCellValue(summaryName, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	s.logger.Info("mood journal exported", "user_id", userID, "entries", len(entries), "days", days)
	return buf.Bytes(), nil
}

func moodEntryRow(entry *models.MoodEntry) []interface{} {
	row := []interface{}{
		entry.EntryDate.Format("2006-01-02"),
		entry.MoodLevel,
		strings.Join(entry.Emotions.Data(), ", "),
		strings.Join(entry.Activities.Data(), ", "),
		strings.Join(entry.Factors.Data(), ", "),
	}
	if entry.SleepHours != nil {
		row = append(row, *entry.SleepHours)
	} else {
		row = append(row, "")
	}
	if entry.SleepQuality != nil {
		row = append(row, *entry.SleepQuality)
	} else {
		row = append(row, "")
	}
	if entry.StressLevel != nil {
		row = append(row, *entry.StressLevel)
	} else {
		row = append(row, "")
	}
	if entry.Description != nil {
		row = append(row, *entry.Description)
	} else {
		row = append(row, "")
	}
	return row
}
