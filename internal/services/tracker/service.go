package tracker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"bgv-casetracker-backend/internal/models"
	"bgv-casetracker-backend/internal/services/workdays"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Scope narrows counting and listing to one customer or one branch; the
// zero value means system-wide.
type Scope struct {
	CustomerID *uuid.UUID
	BranchID   *uuid.UUID
}

// StatusCount is one entry of an aggregation result, in bucket order.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// CaseSource is the read side of the case store.
type CaseSource interface {
	Count(ctx context.Context, scope Scope, p Predicate, w MonthWindow) (int64, error)
	List(ctx context.Context, scope Scope, p Predicate, explicitStatus string, w MonthWindow) ([]CaseRecord, error)
}

// CaseStore is the write side: intake and status updates.
type CaseStore interface {
	CreateCase(ctx context.Context, c *models.Case, rec *models.VerificationRecord) error
	RecordByCaseID(ctx context.Context, caseID uuid.UUID) (*models.VerificationRecord, error)
	SaveRecord(ctx context.Context, rec *models.VerificationRecord, caseStatus string) error
	AppendAudit(ctx context.Context, entry *models.StatusAuditLog) error
}

// CalendarSource supplies the holiday and weekend configuration the
// due-date calculator consumes.
type CalendarSource interface {
	HolidayDates(ctx context.Context) ([]time.Time, error)
	WeekendDays(ctx context.Context) ([]string, error)
}

// PartialAggregationError reports which bucket's count query failed. The
// whole aggregation fails with it; callers never see a zero-filled result
// masking a store error.
type PartialAggregationError struct {
	Bucket string
	Err    error
}

func (e *PartialAggregationError) Error() string {
	return fmt.Sprintf("aggregation failed at bucket %q: %v", e.Bucket, e.Err)
}

func (e *PartialAggregationError) Unwrap() error { return e.Err }

type Service struct {
	cases    CaseSource
	store    CaseStore
	calendar CalendarSource
	log      *zap.Logger
	cacheTTL time.Duration
	now      func() time.Time

	mu        sync.Mutex
	cachedCal *workdays.Calendar
	cachedAt  time.Time
}

func NewService(cases CaseSource, store CaseStore, calendar CalendarSource, logger *zap.Logger, cacheTTL time.Duration) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		cases:    cases,
		store:    store,
		calendar: calendar,
		log:      logger,
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
}

// Aggregate counts the current-month cases in scope for every bucket, in
// the fixed enumeration order. Empty buckets come back with count 0.
func (s *Service) Aggregate(ctx context.Context, scope Scope) ([]StatusCount, error) {
	w := CurrentMonth(s.now())
	out := make([]StatusCount, 0, len(Buckets))
	for _, b := range Buckets {
		n, err := s.cases.Count(ctx, scope, b.Pred, w)
		if err != nil {
			s.log.Error("bucket count failed",
				zap.String("bucket", b.Key), zap.Error(err))
			return nil, &PartialAggregationError{Bucket: b.Key, Err: err}
		}
		out = append(out, StatusCount{Status: b.Key, Count: n})
	}
	return out, nil
}

// workingCalendar returns the cached calendar, refreshing it from the
// stores once the TTL lapses. Holiday and weekend writes call
// InvalidateCalendar so admin edits take effect immediately.
func (s *Service) workingCalendar(ctx context.Context) (*workdays.Calendar, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cachedCal != nil && s.now().Sub(s.cachedAt) < s.cacheTTL {
		return s.cachedCal, nil
	}

	holidays, err := s.calendar.HolidayDates(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading holidays: %w", err)
	}
	weekends, err := s.calendar.WeekendDays(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading weekend config: %w", err)
	}
	cal, err := workdays.NewCalendar(holidays, weekends)
	if err != nil {
		return nil, err
	}
	s.cachedCal = cal
	s.cachedAt = s.now()
	return cal, nil
}

func (s *Service) InvalidateCalendar() {
	s.mu.Lock()
	s.cachedCal = nil
	s.mu.Unlock()
}
