package mapping

import (
	"github.com/kipuerp/ledger_core/internal/core/domain"
	"github.com/kipuerp/ledger_core/internal/models"
)

// ToModelPeriod converts a domain Period to a model Period
func ToModelPeriod(d domain.Period) models.Period {
	return models.Period{
		PeriodID:        d.PeriodID,
		OrganizationID:  d.OrganizationID,
		StartDate:       d.StartDate,
		EndDate:         d.EndDate,
		Status:          models.PeriodStatus(d.Status),
		LastCorrelativo: d.LastCorrelativo,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPeriod converts a model Period to a domain Period
func ToDomainPeriod(m models.Period) domain.Period {
	return domain.Period{
		PeriodID:        m.PeriodID,
		OrganizationID:  m.OrganizationID,
		StartDate:       m.StartDate,
		EndDate:         m.EndDate,
		Status:          domain.PeriodStatus(m.Status),
		LastCorrelativo: m.LastCorrelativo,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPeriodSlice converts a slice of model Periods to domain Periods
func ToDomainPeriodSlice(ms []models.Period) []domain.Period {
	ds := make([]domain.Period, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPeriod(m)
	}
	return ds
}
