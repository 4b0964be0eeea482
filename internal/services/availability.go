package services

import (
	"sort"
	"time"

	"github.com/mente-leve/wellbeing-service/internal/models"
)

// availabilityHorizonDays is how far ahead concrete slots are projected.
const availabilityHorizonDays = 30

// weekdayNames maps template weekday keys to time.Weekday. Unrecognized keys
// in a template are skipped.
var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// AvailabilityProjection maps weekday name to ISO date to the ordered free
// "HH:MM" slots on that date. Dates with no free slots and weekdays with no
// dates are omitted.
type AvailabilityProjection map[string]map[string][]string

type occupiedSlot struct {
	date string // ISO date
	time string // "HH:MM"
}

// ProjectAvailability expands a recurring weekly template into concrete free
// slots over the next 30 days, subtracting slots held by active appointments.
// The result reflects live occupancy and must never be cached.
func ProjectAvailability(template models.WeeklyAvailability, active []*models.Appointment, today time.Time) AvailabilityProjection {
	occupied := make(map[occupiedSlot]struct{}, len(active))
	for _, appt := range active {
		occupied[occupiedSlot{
			date: appt.Date.Format("2006-01-02"),
			time: appt.Time,
		}] = struct{}{}
	}

	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())

	projection := make(AvailabilityProjection)
	for weekdayName, times := range template {
		weekday, ok := weekdayNames[weekdayName]
		if !ok || len(times) == 0 {
			continue
		}

		dates := make(map[string][]string)
		for offset := 0; offset < availabilityHorizonDays; offset++ {
			day := start.AddDate(0, 0, offset)
			if day.Weekday() != weekday {
				continue
			}
			date := day.Format("2006-01-02")

			free := make([]string, 0, len(times))
			for _, slot := range times {
				if _, taken := occupied[occupiedSlot{date: date, time: slot}]; !taken {
					free = append(free, slot)
				}
			}
			if len(free) > 0 {
				sort.Strings(free)
				dates[date] = free
			}
		}
		if len(dates) > 0 {
			projection[weekdayName] = dates
		}
	}
	return projection
}
