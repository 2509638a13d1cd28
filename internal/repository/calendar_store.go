package repository

import (
	"context"
	"time"
)

// CalendarStore bundles the holiday and weekend repositories behind the
// tracker service's CalendarSource interface.
type CalendarStore struct {
	holidays *HolidayRepository
	config   *CompanyConfigRepository
}

func NewCalendarStore(holidays *HolidayRepository, config *CompanyConfigRepository) *CalendarStore {
	return &CalendarStore{holidays: holidays, config: config}
}

func (s *CalendarStore) HolidayDates(ctx context.Context) ([]time.Time, error) {
	return s.holidays.Dates(ctx)
}

func (s *CalendarStore) WeekendDays(ctx context.Context) ([]string, error) {
	return s.config.WeekdayNames(ctx)
}
