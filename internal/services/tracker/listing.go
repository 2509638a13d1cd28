package tracker

import (
	"context"
)

// CaseWithDeadline is a listed case row annotated with its computed TAT
// deadline and urgency.
type CaseWithDeadline struct {
	CaseRecord
	DeadlineDate  string `json:"deadline_date"`
	DaysRemaining int    `json:"days_remaining"`
	Urgency       string `json:"urgency"`
	CreatedAtText string `json:"created_at_text"`
}

// ListCases returns the cases in scope, newest first, optionally narrowed
// by a bucket predicate and/or an explicit coarse status. Each row carries
// the deadline computed from the owning customer's TAT days against the
// calendar fetched once per call.
func (s *Service) ListCases(ctx context.Context, scope Scope, bucketKey, explicitStatus string) ([]CaseWithDeadline, error) {
	var pred Predicate
	if bucketKey != "" {
		b, err := BucketByKey(bucketKey)
		if err != nil {
			return nil, err
		}
		pred = b.Pred
	}

	cal, err := s.workingCalendar(ctx)
	if err != nil {
		return nil, err
	}

	w := CurrentMonth(s.now())
	recs, err := s.cases.List(ctx, scope, pred, explicitStatus, w)
	if err != nil {
		return nil, err
	}

	today := s.now()
	out := make([]CaseWithDeadline, 0, len(recs))
	for _, rec := range recs {
		deadline := cal.DueDate(rec.CreatedAt, rec.TATDays)
		remaining, urgency := cal.Classify(deadline, today)
		out = append(out, CaseWithDeadline{
			CaseRecord:    rec,
			DeadlineDate:  deadline.Format("2006-01-02"),
			DaysRemaining: remaining,
			Urgency:       urgency,
			CreatedAtText: rec.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		})
	}
	return out, nil
}
