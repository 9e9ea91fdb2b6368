package domain_test

import (
	"testing"
	"time"

	"github.com/kipuerp/ledger_core/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestEntryLifecycleTransitions(t *testing.T) {
	tests := []struct {
		name    string
		status  domain.EntryStatus
		canPost bool
		canVoid bool
		mutable bool
	}{
		{name: "draft", status: domain.StatusDraft, canPost: true, canVoid: false, mutable: true},
		{name: "posted", status: domain.StatusPosted, canPost: false, canVoid: true, mutable: false},
		{name: "void", status: domain.StatusVoid, canPost: false, canVoid: false, mutable: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := domain.JournalEntry{Status: tt.status}
			assert.Equal(t, tt.canPost, entry.CanPost())
			assert.Equal(t, tt.canVoid, entry.CanVoid())
			assert.Equal(t, tt.mutable, entry.IsMutable())
		})
	}
}

func TestInitialStatusForSource(t *testing.T) {
	status, ok := domain.InitialStatusForSource(domain.SourceManual)
	assert.True(t, ok)
	assert.Equal(t, domain.StatusDraft, status)

	for _, source := range []domain.EntrySource{
		domain.SourceSale,
		domain.SourcePurchase,
		domain.SourceAdjustment,
		domain.SourceCreditNote,
		domain.SourceDebitNote,
		domain.SourcePayment,
	} {
		status, ok := domain.InitialStatusForSource(source)
		assert.True(t, ok, "source %s", source)
		assert.Equal(t, domain.StatusPosted, status, "source %s", source)
	}

	_, ok = domain.InitialStatusForSource(domain.EntrySource("WIRE_TRANSFER"))
	assert.False(t, ok)
}

func TestFormatCorrelativo(t *testing.T) {
	assert.Equal(t, "A001", domain.FormatCorrelativo(1))
	assert.Equal(t, "A042", domain.FormatCorrelativo(42))
	assert.Equal(t, "A999", domain.FormatCorrelativo(999))
	// The width is a minimum, not a cap.
	assert.Equal(t, "A1000", domain.FormatCorrelativo(1000))
}

func TestMonthBounds(t *testing.T) {
	date := time.Date(2025, time.March, 15, 17, 30, 0, 0, time.UTC)
	start, end := domain.MonthBounds(date)

	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.March, end.Month())
	assert.Equal(t, 31, end.Day())

	period := domain.Period{StartDate: start, EndDate: end}
	assert.True(t, period.Contains(date))
	assert.True(t, period.Contains(start))
	assert.True(t, period.Contains(end))
	assert.False(t, period.Contains(end.Add(time.Nanosecond)))
	assert.False(t, period.Contains(start.Add(-time.Nanosecond)))
}

func TestMonthBoundsDecember(t *testing.T) {
	start, end := domain.MonthBounds(time.Date(2025, time.December, 31, 23, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, 2025, end.Year())
	assert.Equal(t, time.December, end.Month())
	assert.Equal(t, 31, end.Day())
}

func TestTenantContextValid(t *testing.T) {
	assert.False(t, domain.TenantContext{}.Valid())
	assert.True(t, domain.TenantContext{OrganizationID: "org-1"}.Valid())
}
