package tracker

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Fine-grained workflow statuses carried on VerificationRecord.OverallStatus.
const (
	StatusWIP              = "wip"
	StatusInsuff           = "insuff"
	StatusCompleted        = "completed"
	StatusStopcheck        = "stopcheck"
	StatusActiveEmployment = "active employment"
	StatusNil              = "nil"
	StatusNotDoable        = "not doable"
	StatusCandidateDenied  = "candidate denied"
	StatusInitiated        = "initiated"
	StatusHold             = "hold"
	StatusClosureAdvice    = "closure advice"
)

// Final verification colors, meaningful only on completed records.
const (
	ColorGreen  = "green"
	ColorRed    = "red"
	ColorYellow = "yellow"
	ColorPink   = "pink"
	ColorOrange = "orange"
)

var ErrUnknownBucket = errors.New("unknown status bucket")

// OverallStatuses is the closed set of valid fine-grained statuses.
var OverallStatuses = []string{
	StatusWIP, StatusInsuff, StatusCompleted, StatusStopcheck,
	StatusActiveEmployment, StatusNil, StatusNotDoable,
	StatusCandidateDenied, StatusInitiated, StatusHold, StatusClosureAdvice,
}

func IsValidOverallStatus(s string) bool {
	for _, v := range OverallStatuses {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

func IsValidColor(s string) bool {
	switch strings.ToLower(s) {
	case ColorGreen, ColorRed, ColorYellow, ColorPink, ColorOrange:
		return true
	}
	return false
}

// CaseRecord is the flattened case + verification row the predicates
// evaluate against. The repository produces it from a three-way join; the
// in-memory source used in tests builds it directly.
type CaseRecord struct {
	CaseID           uuid.UUID  `gorm:"column:case_id" json:"case_id"`
	BranchID         uuid.UUID  `gorm:"column:branch_id" json:"branch_id"`
	CustomerID       uuid.UUID  `gorm:"column:customer_id" json:"customer_id"`
	ApplicantName    string     `gorm:"column:applicant_name" json:"applicant_name"`
	Services         string     `gorm:"column:services" json:"services"`
	CaseStatus       string     `gorm:"column:case_status" json:"case_status"`
	OverallStatus    string     `gorm:"column:overall_status" json:"overall_status"`
	FinalStatus      string     `gorm:"column:final_status" json:"final_status"`
	IsVerify         string     `gorm:"column:is_verify" json:"is_verify"`
	ReportDownloaded *bool      `gorm:"column:report_downloaded" json:"report_downloaded"`
	ReportDate       *time.Time `gorm:"column:report_date" json:"report_date"`
	TATDays          int        `gorm:"column:tat_days" json:"tat_days"`
	CreatedAt        time.Time  `gorm:"column:created_at" json:"created_at"`
}

// MonthWindow is the calendar month the "current month" buckets compare
// report dates against.
type MonthWindow struct {
	Year  int
	Month time.Month
}

func CurrentMonth(now time.Time) MonthWindow {
	return MonthWindow{Year: now.Year(), Month: now.Month()}
}

func (w MonthWindow) Contains(t *time.Time) bool {
	return t != nil && t.Year() == w.Year && t.Month() == w.Month
}

// Bounds returns the half-open [start, end) range of the window in UTC.
func (w MonthWindow) Bounds() (time.Time, time.Time) {
	start := time.Date(w.Year, w.Month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// Predicate is one bucket's matching rule. SQL renders a parameterized
// fragment over the joined cases/verification_records columns; Matches
// evaluates the same rule against an in-memory record. The two paths must
// agree, which the bucket tests pin.
type Predicate interface {
	Matches(rec CaseRecord, w MonthWindow) bool
	SQL(w MonthWindow) (string, []any)
}

// Column names as seen by the joined listing/count query.
const (
	colOverallStatus = "verification_records.overall_status"
	colFinalStatus   = "verification_records.final_verification_status"
	colIsVerify      = "verification_records.is_verify"
	colDownloaded    = "verification_records.is_report_downloaded"
	colReportDate    = "verification_records.report_date"
	colCaseStatus    = "cases.status"
)

type statusEquals struct {
	column string
	value  string
}

func (p statusEquals) Matches(rec CaseRecord, _ MonthWindow) bool {
	return strings.EqualFold(fieldValue(rec, p.column), p.value)
}

func (p statusEquals) SQL(_ MonthWindow) (string, []any) {
	return fmt.Sprintf("LOWER(%s) = ?", p.column), []any{strings.ToLower(p.value)}
}

type statusNotEquals struct {
	column string
	value  string
}

func (p statusNotEquals) Matches(rec CaseRecord, _ MonthWindow) bool {
	return !strings.EqualFold(fieldValue(rec, p.column), p.value)
}

func (p statusNotEquals) SQL(_ MonthWindow) (string, []any) {
	return fmt.Sprintf("LOWER(%s) <> ?", p.column), []any{strings.ToLower(p.value)}
}

type statusIn struct {
	column string
	values []string
}

func (p statusIn) Matches(rec CaseRecord, _ MonthWindow) bool {
	got := fieldValue(rec, p.column)
	for _, v := range p.values {
		if strings.EqualFold(got, v) {
			return true
		}
	}
	return false
}

func (p statusIn) SQL(_ MonthWindow) (string, []any) {
	lowered := make([]string, len(p.values))
	for i, v := range p.values {
		lowered[i] = strings.ToLower(v)
	}
	return fmt.Sprintf("LOWER(%s) IN ?", p.column), []any{lowered}
}

// downloaded matches on the nullable download flag.
type downloaded struct {
	orUnset bool
}

func (p downloaded) Matches(rec CaseRecord, _ MonthWindow) bool {
	if rec.ReportDownloaded == nil {
		return p.orUnset
	}
	return *rec.ReportDownloaded
}

func (p downloaded) SQL(_ MonthWindow) (string, []any) {
	if p.orUnset {
		return fmt.Sprintf("(%s = TRUE OR %s IS NULL)", colDownloaded, colDownloaded), nil
	}
	return fmt.Sprintf("%s = TRUE", colDownloaded), nil
}

// reportInWindow matches records whose report date falls in the current
// month window. Report dates are typed columns; the legacy dual text-format
// matching is intentionally gone.
type reportInWindow struct{}

func (reportInWindow) Matches(rec CaseRecord, w MonthWindow) bool {
	return w.Contains(rec.ReportDate)
}

func (reportInWindow) SQL(w MonthWindow) (string, []any) {
	start, end := w.Bounds()
	return fmt.Sprintf("(%s >= ? AND %s < ?)", colReportDate, colReportDate), []any{start, end}
}

// reportOutsideWindow requires a report date that exists and falls outside
// the window. A missing report date matches neither in nor outside.
type reportOutsideWindow struct{}

func (reportOutsideWindow) Matches(rec CaseRecord, w MonthWindow) bool {
	return rec.ReportDate != nil && !w.Contains(rec.ReportDate)
}

func (reportOutsideWindow) SQL(w MonthWindow) (string, []any) {
	start, end := w.Bounds()
	return fmt.Sprintf("(%s IS NOT NULL AND (%s < ? OR %s >= ?))",
		colReportDate, colReportDate, colReportDate), []any{start, end}
}

type and []Predicate

func (ps and) Matches(rec CaseRecord, w MonthWindow) bool {
	for _, p := range ps {
		if !p.Matches(rec, w) {
			return false
		}
	}
	return true
}

func (ps and) SQL(w MonthWindow) (string, []any) {
	return joinSQL(ps, " AND ", w)
}

type or []Predicate

func (ps or) Matches(rec CaseRecord, w MonthWindow) bool {
	for _, p := range ps {
		if p.Matches(rec, w) {
			return true
		}
	}
	return false
}

func (ps or) SQL(w MonthWindow) (string, []any) {
	return joinSQL(ps, " OR ", w)
}

func joinSQL(ps []Predicate, sep string, w MonthWindow) (string, []any) {
	parts := make([]string, 0, len(ps))
	var args []any
	for _, p := range ps {
		s, a := p.SQL(w)
		parts = append(parts, "("+s+")")
		args = append(args, a...)
	}
	return strings.Join(parts, sep), args
}

func fieldValue(rec CaseRecord, column string) string {
	switch column {
	case colOverallStatus:
		return rec.OverallStatus
	case colFinalStatus:
		return rec.FinalStatus
	case colIsVerify:
		return rec.IsVerify
	case colCaseStatus:
		return rec.CaseStatus
	}
	return ""
}

// Bucket is one named dashboard filter. Buckets overlap by design: they are
// independent filters over the same record set, not a partition.
type Bucket struct {
	Key  string
	Pred Predicate
}

func completedWithColor(color string) Predicate {
	return and{
		statusEquals{colOverallStatus, StatusCompleted},
		statusEquals{colFinalStatus, color},
		reportInWindow{},
	}
}

// Buckets is the fixed, ordered enumeration the aggregation walks.
var Buckets = []Bucket{
	{"overallCount", or{
		statusIn{colOverallStatus, []string{
			StatusWIP, StatusInsuff, StatusInitiated, StatusHold,
			StatusClosureAdvice, StatusStopcheck, StatusActiveEmployment,
			StatusNil, "", StatusNotDoable, StatusCandidateDenied,
		}},
		and{statusEquals{colOverallStatus, StatusCompleted}, reportInWindow{}},
	}},
	{"qcStatusPendingCount", and{
		downloaded{},
		statusEquals{colIsVerify, "no"},
		statusEquals{colCaseStatus, StatusCompleted},
	}},
	{"wipCount", statusEquals{colOverallStatus, StatusWIP}},
	{"insuffCount", statusEquals{colOverallStatus, StatusInsuff}},
	{"completedGreenCount", completedWithColor(ColorGreen)},
	{"completedRedCount", completedWithColor(ColorRed)},
	{"completedYellowCount", completedWithColor(ColorYellow)},
	{"completedPinkCount", completedWithColor(ColorPink)},
	{"completedOrangeCount", completedWithColor(ColorOrange)},
	{"previousCompletedCount", and{
		statusEquals{colOverallStatus, StatusCompleted},
		reportOutsideWindow{},
	}},
	{"stopcheckCount", statusEquals{colOverallStatus, StatusStopcheck}},
	{"activeEmploymentCount", statusEquals{colOverallStatus, StatusActiveEmployment}},
	{"nilCount", statusIn{colOverallStatus, []string{StatusNil, ""}}},
	{"notDoableCount", statusEquals{colOverallStatus, StatusNotDoable}},
	{"candidateDeniedCount", statusEquals{colOverallStatus, StatusCandidateDenied}},
	{"initiatedCount", statusEquals{colOverallStatus, StatusInitiated}},
	{"holdCount", statusEquals{colOverallStatus, StatusHold}},
	{"closureAdviceCount", statusEquals{colOverallStatus, StatusClosureAdvice}},
	{"notReadyCount", statusNotEquals{colOverallStatus, StatusCompleted}},
	{"downloadReportCount", and{
		statusEquals{colOverallStatus, StatusCompleted},
		downloaded{orUnset: true},
	}},
}

// BucketByKey resolves a caller-supplied bucket name against the fixed
// enumeration before any query is issued.
func BucketByKey(key string) (Bucket, error) {
	for _, b := range Buckets {
		if b.Key == key {
			return b, nil
		}
	}
	return Bucket{}, fmt.Errorf("%w: %q", ErrUnknownBucket, key)
}
