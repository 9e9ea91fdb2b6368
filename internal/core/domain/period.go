package domain

import "time"

// PeriodStatus enumerates valid accounting period states.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodLocked PeriodStatus = "LOCKED"
)

// Period is one calendar month's accounting window for an organization.
// LastCorrelativo is the monotonic counter correlativos are allocated from;
// it is only ever advanced inside the entry-create transaction.
type Period struct {
	PeriodID        string       `json:"periodID"`
	OrganizationID  string       `json:"organizationID"`
	StartDate       time.Time    `json:"startDate"` // First instant of the month, UTC
	EndDate         time.Time    `json:"endDate"`   // Last instant of the month, UTC
	Status          PeriodStatus `json:"status"`
	LastCorrelativo int64        `json:"lastCorrelativo"`
	AuditFields
}

// MonthBounds returns the first and last instant of the calendar month
// containing date, in UTC.
func MonthBounds(date time.Time) (time.Time, time.Time) {
	d := date.UTC()
	start := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

// Contains reports whether date falls inside the period window.
func (p Period) Contains(date time.Time) bool {
	d := date.UTC()
	return !d.Before(p.StartDate) && !d.After(p.EndDate)
}
