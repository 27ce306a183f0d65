package services

import (
	"context"
	"sort"

	"github.com/teambition/rrule-go"

	"github.com/peoplekit/teamcal/modules/calendar/domain/aggregates/holiday"
	"github.com/peoplekit/teamcal/modules/calendar/domain/entities/daterange"
	"github.com/peoplekit/teamcal/pkg/composables"
)

// HolidayService supplies jurisdiction-scoped non-working days for a range.
// Holidays are organization-public: there is no role gating here.
type HolidayService struct {
	repo          holiday.Repository
	defaultRegion string
}

func NewHolidayService(repo holiday.Repository, defaultRegion string) *HolidayService {
	return &HolidayService{
		repo:          repo,
		defaultRegion: holiday.NormalizeRegion(defaultRegion),
	}
}

// InRange returns active holidays for the region within [from, to]
// inclusive, ascending by date. Recurring records are expanded into concrete
// occurrences; a concrete record wins over an expanded occurrence on the same
// (region, date).
func (s *HolidayService) InRange(ctx context.Context, region string, r daterange.Range) ([]holiday.Record, error) {
	region = holiday.NormalizeRegion(region)
	if region == "" {
		region = s.defaultRegion
	}

	records, err := s.repo.FindActive(ctx, region, r)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]holiday.Record, len(records))

	for _, rec := range records {
		if rec.IsRecurring() {
			continue
		}
		if r.Contains(rec.Date()) {
			byDate[rec.Date().Format("2006-01-02")] = rec
		}
	}

	for _, rec := range records {
		if !rec.IsRecurring() {
			continue
		}
		rule, err := rrule.StrToRRule(rec.Recurrence())
		if err != nil {
			// A malformed administrative rule must not take down reads.
			if logger, ok := composables.TryUseLogger(ctx); ok {
				logger.WithError(err).WithField("holiday", rec.ID()).Warn("skipping holiday with invalid recurrence rule")
			}
			continue
		}
		rule.DTStart(rec.Date())
		for _, occurrence := range rule.Between(r.From, r.To, true) {
			key := daterange.Day(occurrence).Format("2006-01-02")
			if _, exists := byDate[key]; exists {
				continue
			}
			byDate[key] = rec.OnDate(occurrence)
		}
	}

	out := make([]holiday.Record, 0, len(byDate))
	for _, rec := range byDate {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date().Before(out[j].Date()) })
	return out, nil
}
