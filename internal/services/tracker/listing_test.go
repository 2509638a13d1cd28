package tracker

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bgv-casetracker-backend/internal/services/workdays"
)

func newUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	require.NoError(t, err)
	return id
}

var satSun = []string{"saturday", "sunday"}

func TestListCasesAnnotatesDeadline(t *testing.T) {
	// Created Mon 2026-03-02 with TAT 5 and a holiday on Wed 03-04:
	// working days 3, 5, 6, 9, 10 -> deadline Tue 2026-03-10.
	created := time.Date(2026, time.March, 2, 9, 30, 0, 0, time.UTC)
	src := &fakeCaseSource{records: []CaseRecord{{
		OverallStatus: StatusWIP,
		CaseStatus:    "wip",
		TATDays:       5,
		CreatedAt:     created,
	}}}
	cal := &fakeCalendar{
		holidays: []time.Time{time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC)},
		weekends: satSun,
	}
	now := time.Date(2026, time.March, 16, 12, 0, 0, 0, time.UTC)
	s := newTestService(src, cal, now)

	rows, err := s.ListCases(context.Background(), Scope{}, "", "")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "2026-03-10", rows[0].DeadlineDate)
	assert.Equal(t, workdays.UrgencyOverdue, rows[0].Urgency)
	assert.Negative(t, rows[0].DaysRemaining)
	assert.Equal(t, "2026-03-02 09:30:00", rows[0].CreatedAtText)
}

func TestListCasesBucketFilter(t *testing.T) {
	src := &fakeCaseSource{records: []CaseRecord{
		{OverallStatus: StatusWIP, CreatedAt: aggNow.AddDate(0, 0, -1)},
		{OverallStatus: StatusCompleted, ReportDate: thisMonth(), CreatedAt: aggNow.AddDate(0, 0, -2)},
	}}
	s := newTestService(src, &fakeCalendar{weekends: satSun}, aggNow)

	rows, err := s.ListCases(context.Background(), Scope{}, "wipCount", "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, StatusWIP, rows[0].OverallStatus)
}

func TestListCasesExplicitStatusNarrows(t *testing.T) {
	src := &fakeCaseSource{records: []CaseRecord{
		{OverallStatus: StatusWIP, CaseStatus: "wip"},
		{OverallStatus: StatusCompleted, CaseStatus: "completed", ReportDate: thisMonth()},
	}}
	s := newTestService(src, &fakeCalendar{}, aggNow)

	rows, err := s.ListCases(context.Background(), Scope{}, "", "completed")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "completed", rows[0].CaseStatus)
	assert.Equal(t, "completed", src.lastStatus)
}

func TestListCasesNewestFirst(t *testing.T) {
	older := aggNow.AddDate(0, 0, -5)
	newer := aggNow.AddDate(0, 0, -1)
	src := &fakeCaseSource{records: []CaseRecord{
		{OverallStatus: StatusWIP, ApplicantName: "older", CreatedAt: older},
		{OverallStatus: StatusWIP, ApplicantName: "newer", CreatedAt: newer},
	}}
	s := newTestService(src, &fakeCalendar{}, aggNow)

	rows, err := s.ListCases(context.Background(), Scope{}, "", "")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "newer", rows[0].ApplicantName)
}

func TestListCasesRejectsUnknownBucketBeforeQuerying(t *testing.T) {
	src := &fakeCaseSource{}
	cal := &fakeCalendar{}
	s := newTestService(src, cal, aggNow)

	_, err := s.ListCases(context.Background(), Scope{}, "nopeCount", "")
	assert.ErrorIs(t, err, ErrUnknownBucket)
	assert.Zero(t, src.listCalls)
	assert.Zero(t, cal.loads)
}

func TestCalendarCachedAcrossCalls(t *testing.T) {
	src := &fakeCaseSource{}
	cal := &fakeCalendar{weekends: satSun}
	s := newTestService(src, cal, aggNow)

	_, err := s.ListCases(context.Background(), Scope{}, "", "")
	require.NoError(t, err)
	_, err = s.ListCases(context.Background(), Scope{}, "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, cal.loads)

	s.InvalidateCalendar()
	_, err = s.ListCases(context.Background(), Scope{}, "", "")
	require.NoError(t, err)
	assert.Equal(t, 2, cal.loads)
}
