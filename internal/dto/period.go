package dto

import (
	"time"

	"github.com/kipuerp/ledger_core/internal/core/domain"
)

// ResolvePeriodRequest asks for the period covering a date, creating it OPEN
// if absent.
type ResolvePeriodRequest struct {
	Date time.Time `json:"date" binding:"required"`
}

// PeriodResponse defines the data returned for an accounting period.
type PeriodResponse struct {
	PeriodID        string              `json:"periodID"`
	StartDate       time.Time           `json:"startDate"`
	EndDate         time.Time           `json:"endDate"`
	Status          domain.PeriodStatus `json:"status"`
	LastCorrelativo int64               `json:"lastCorrelativo"`
	CreatedAt       time.Time           `json:"createdAt"`
}

// ToPeriodResponse converts a domain.Period to PeriodResponse DTO.
func ToPeriodResponse(p *domain.Period) PeriodResponse {
	return PeriodResponse{
		PeriodID:        p.PeriodID,
		StartDate:       p.StartDate,
		EndDate:         p.EndDate,
		Status:          p.Status,
		LastCorrelativo: p.LastCorrelativo,
		CreatedAt:       p.CreatedAt,
	}
}

// ToPeriodResponses converts a slice of periods to response DTOs.
func ToPeriodResponses(periods []domain.Period) []PeriodResponse {
	out := make([]PeriodResponse, len(periods))
	for i := range periods {
		out[i] = ToPeriodResponse(&periods[i])
	}
	return out
}
