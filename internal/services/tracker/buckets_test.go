package tracker

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testWindow = MonthWindow{Year: 2026, Month: time.March}

func boolPtr(b bool) *bool { return &b }

func timePtr(t time.Time) *time.Time { return &t }

func thisMonth() *time.Time {
	return timePtr(time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC))
}

func lastMonth() *time.Time {
	return timePtr(time.Date(2026, time.February, 20, 0, 0, 0, 0, time.UTC))
}

func mustBucket(t *testing.T, key string) Bucket {
	t.Helper()
	b, err := BucketByKey(key)
	require.NoError(t, err)
	return b
}

func TestSimpleStatusBuckets(t *testing.T) {
	tests := []struct {
		bucket string
		status string
	}{
		{"wipCount", StatusWIP},
		{"insuffCount", StatusInsuff},
		{"stopcheckCount", StatusStopcheck},
		{"activeEmploymentCount", StatusActiveEmployment},
		{"notDoableCount", StatusNotDoable},
		{"candidateDeniedCount", StatusCandidateDenied},
		{"initiatedCount", StatusInitiated},
		{"holdCount", StatusHold},
		{"closureAdviceCount", StatusClosureAdvice},
	}
	for _, tt := range tests {
		t.Run(tt.bucket, func(t *testing.T) {
			b := mustBucket(t, tt.bucket)
			assert.True(t, b.Pred.Matches(CaseRecord{OverallStatus: tt.status}, testWindow))
			// matching is case-insensitive
			assert.True(t, b.Pred.Matches(CaseRecord{OverallStatus: strings.ToUpper(tt.status)}, testWindow))
			assert.False(t, b.Pred.Matches(CaseRecord{OverallStatus: StatusCompleted}, testWindow))
		})
	}
}

func TestNilBucketMatchesEmptyStatus(t *testing.T) {
	b := mustBucket(t, "nilCount")
	assert.True(t, b.Pred.Matches(CaseRecord{OverallStatus: "nil"}, testWindow))
	assert.True(t, b.Pred.Matches(CaseRecord{OverallStatus: ""}, testWindow))
	assert.False(t, b.Pred.Matches(CaseRecord{OverallStatus: StatusWIP}, testWindow))
}

func TestCompletedColorBuckets(t *testing.T) {
	green := CaseRecord{
		OverallStatus: StatusCompleted,
		FinalStatus:   "Green",
		ReportDate:    thisMonth(),
	}
	assert.True(t, mustBucket(t, "completedGreenCount").Pred.Matches(green, testWindow))
	assert.False(t, mustBucket(t, "completedRedCount").Pred.Matches(green, testWindow))

	// A green report from a previous month is not a this-month green.
	stale := green
	stale.ReportDate = lastMonth()
	assert.False(t, mustBucket(t, "completedGreenCount").Pred.Matches(stale, testWindow))
	assert.True(t, mustBucket(t, "previousCompletedCount").Pred.Matches(stale, testWindow))
}

func TestPreviousCompletedIgnoresMissingReportDate(t *testing.T) {
	rec := CaseRecord{OverallStatus: StatusCompleted}
	assert.False(t, mustBucket(t, "previousCompletedCount").Pred.Matches(rec, testWindow))
}

func TestOverallCount(t *testing.T) {
	b := mustBucket(t, "overallCount")

	assert.True(t, b.Pred.Matches(CaseRecord{OverallStatus: StatusWIP}, testWindow))
	assert.True(t, b.Pred.Matches(CaseRecord{OverallStatus: ""}, testWindow))
	assert.True(t, b.Pred.Matches(CaseRecord{
		OverallStatus: StatusCompleted, ReportDate: thisMonth(),
	}, testWindow))
	// completed outside the current month does not count toward overall
	assert.False(t, b.Pred.Matches(CaseRecord{
		OverallStatus: StatusCompleted, ReportDate: lastMonth(),
	}, testWindow))
	assert.False(t, b.Pred.Matches(CaseRecord{OverallStatus: StatusCompleted}, testWindow))
}

func TestQCStatusPending(t *testing.T) {
	b := mustBucket(t, "qcStatusPendingCount")

	pending := CaseRecord{
		CaseStatus:       "completed",
		IsVerify:         "NO",
		ReportDownloaded: boolPtr(true),
	}
	assert.True(t, b.Pred.Matches(pending, testWindow))

	signed := pending
	signed.IsVerify = "yes"
	assert.False(t, b.Pred.Matches(signed, testWindow))

	notDownloaded := pending
	notDownloaded.ReportDownloaded = nil
	assert.False(t, b.Pred.Matches(notDownloaded, testWindow))
}

func TestDownloadReportCount(t *testing.T) {
	b := mustBucket(t, "downloadReportCount")

	assert.True(t, b.Pred.Matches(CaseRecord{
		OverallStatus: StatusCompleted, ReportDownloaded: boolPtr(true),
	}, testWindow))
	// unset download flag still counts as download-ready
	assert.True(t, b.Pred.Matches(CaseRecord{OverallStatus: StatusCompleted}, testWindow))
	assert.False(t, b.Pred.Matches(CaseRecord{
		OverallStatus: StatusCompleted, ReportDownloaded: boolPtr(false),
	}, testWindow))
	assert.False(t, b.Pred.Matches(CaseRecord{OverallStatus: StatusWIP}, testWindow))
}

func TestNotReadyCount(t *testing.T) {
	b := mustBucket(t, "notReadyCount")
	assert.True(t, b.Pred.Matches(CaseRecord{OverallStatus: StatusWIP}, testWindow))
	assert.False(t, b.Pred.Matches(CaseRecord{OverallStatus: "COMPLETED"}, testWindow))
}

// Buckets are independent filters, not a partition: one record may land in
// several at once.
func TestBucketsOverlap(t *testing.T) {
	rec := CaseRecord{
		CaseStatus:       "completed",
		OverallStatus:    StatusCompleted,
		FinalStatus:      ColorGreen,
		ReportDate:       thisMonth(),
		ReportDownloaded: boolPtr(true),
	}
	for _, key := range []string{"overallCount", "completedGreenCount", "downloadReportCount"} {
		assert.True(t, mustBucket(t, key).Pred.Matches(rec, testWindow), key)
	}
}

func TestBucketByKeyUnknown(t *testing.T) {
	_, err := BucketByKey("bogusCount")
	assert.ErrorIs(t, err, ErrUnknownBucket)
}

func TestBucketEnumerationOrder(t *testing.T) {
	want := []string{
		"overallCount", "qcStatusPendingCount", "wipCount", "insuffCount",
		"completedGreenCount", "completedRedCount", "completedYellowCount",
		"completedPinkCount", "completedOrangeCount", "previousCompletedCount",
		"stopcheckCount", "activeEmploymentCount", "nilCount", "notDoableCount",
		"candidateDeniedCount", "initiatedCount", "holdCount",
		"closureAdviceCount", "notReadyCount", "downloadReportCount",
	}
	got := make([]string, len(Buckets))
	for i, b := range Buckets {
		got[i] = b.Key
	}
	assert.Equal(t, want, got)
}

// Predicates must render parameterized fragments only; values travel as
// bind arguments, never inline.
func TestPredicateSQLIsParameterized(t *testing.T) {
	for _, b := range Buckets {
		cond, args := b.Pred.SQL(testWindow)
		assert.NotEmpty(t, cond, b.Key)
		for _, s := range OverallStatuses {
			if s == "" {
				continue
			}
			assert.NotContains(t, cond, "'"+s+"'", b.Key)
		}
		_ = args
	}

	cond, args := mustBucket(t, "wipCount").Pred.SQL(testWindow)
	assert.Equal(t, "LOWER(verification_records.overall_status) = ?", cond)
	assert.Equal(t, []any{"wip"}, args)
}

func TestMonthWindow(t *testing.T) {
	w := MonthWindow{Year: 2026, Month: time.March}
	assert.True(t, w.Contains(thisMonth()))
	assert.False(t, w.Contains(lastMonth()))
	assert.False(t, w.Contains(nil))

	start, end := w.Bounds()
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC), end)
}
