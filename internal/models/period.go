package models

import "time"

// PeriodStatus indicates whether a period accepts postings.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodLocked PeriodStatus = "LOCKED"
)

// Period mirrors the periods table. last_correlativo backs the sequential
// document numbering inside each month.
type Period struct {
	PeriodID        string       `json:"periodID"`
	OrganizationID  string       `json:"organizationID"`
	StartDate       time.Time    `json:"startDate"`
	EndDate         time.Time    `json:"endDate"`
	Status          PeriodStatus `json:"status"`
	LastCorrelativo int64        `json:"lastCorrelativo"`
	AuditFields
}
