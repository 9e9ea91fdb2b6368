package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kipuerp/ledger_core/internal/apperrors"
	"github.com/kipuerp/ledger_core/internal/core/domain"
	portsrepo "github.com/kipuerp/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/kipuerp/ledger_core/internal/core/ports/services"
	"github.com/kipuerp/ledger_core/internal/dto"
	"github.com/kipuerp/ledger_core/internal/middleware"
	"github.com/kipuerp/ledger_core/internal/utils/accounting"
)

var (
	ErrNotDraft          = errors.New("entry is not in draft status")
	ErrNotPosted         = errors.New("entry is not in posted status")
	ErrUnknownSource     = errors.New("unknown entry source")
	ErrSourceRefRequired = errors.New("event-sourced entries require a source reference")
	ErrInactiveAccount   = errors.New("account is inactive")
	ErrNonPostingAccount = errors.New("account does not accept entry lines")
)

// ledgerService implements the journal entry lifecycle. Every mutating
// operation checks that the entry's period is still OPEN; a locked period
// rejects updates, posting, voiding and deletion alike.
type ledgerService struct {
	journalRepo  portsrepo.JournalRepositoryFacade
	chartSvc     portssvc.ChartSvcFacade
	periodSvc    portssvc.PeriodSvcFacade
	currencySvc  portssvc.CurrencySvcFacade
	rateSvc      portssvc.ExchangeRateSvcFacade
	baseCurrency string
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(journalRepo portsrepo.JournalRepositoryFacade, chartSvc portssvc.ChartSvcFacade, periodSvc portssvc.PeriodSvcFacade, currencySvc portssvc.CurrencySvcFacade, rateSvc portssvc.ExchangeRateSvcFacade, baseCurrency string) portssvc.LedgerSvcFacade {
	return &ledgerService{
		journalRepo:  journalRepo,
		chartSvc:     chartSvc,
		periodSvc:    periodSvc,
		currencySvc:  currencySvc,
		rateSvc:      rateSvc,
		baseCurrency: baseCurrency,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// resolveLines turns line requests into domain lines with concrete account
// ids, resolving chart codes and checking every referenced account is an
// active posting account of the tenant's organization.
func (s *ledgerService) resolveLines(ctx context.Context, tenant domain.TenantContext, reqs []dto.LineRequest) ([]domain.EntryLine, error) {
	lines := make([]domain.EntryLine, len(reqs))
	codes := make([]string, 0)
	for i, lr := range reqs {
		lines[i] = domain.EntryLine{
			AccountID:   lr.AccountID,
			AccountCode: lr.AccountCode,
			Description: lr.Description,
			Debit:       lr.Debit,
			Credit:      lr.Credit,
		}
		if lr.AccountID == "" && lr.AccountCode != "" {
			codes = append(codes, lr.AccountCode)
		}
	}

	if err := accounting.ValidateLines(lines); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	if len(codes) > 0 {
		byCode, err := s.chartSvc.ResolveCodes(ctx, tenant, codes)
		if err != nil {
			return nil, err
		}
		for i := range lines {
			if lines[i].AccountID == "" {
				acc := byCode[lines[i].AccountCode]
				lines[i].AccountID = acc.AccountID
			}
		}
	}

	ids := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.AccountID]; !ok {
			seen[line.AccountID] = struct{}{}
			ids = append(ids, line.AccountID)
		}
	}

	accounts, err := s.chartSvc.GetAccountsByIDs(ctx, tenant, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range ids {
		acc, found := accounts[id]
		if !found {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: %w: %s", apperrors.ErrValidation, ErrInactiveAccount, acc.Code)
		}
		if !acc.IsPosting {
			return nil, fmt.Errorf("%w: %w: %s", apperrors.ErrValidation, ErrNonPostingAccount, acc.Code)
		}
	}
	for i := range lines {
		lines[i].AccountCode = accounts[lines[i].AccountID].Code
	}
	return lines, nil
}

// stampCurrency fills in the entry currency and, for non-base currencies
// without an explicit rate, the latest known exchange rate.
func (s *ledgerService) stampCurrency(ctx context.Context, entry *domain.JournalEntry) error {
	if entry.CurrencyCode == "" {
		entry.CurrencyCode = s.baseCurrency
	}
	if _, err := s.currencySvc.GetCurrency(ctx, entry.CurrencyCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: unknown currency %s", apperrors.ErrValidation, entry.CurrencyCode)
		}
		return err
	}
	if entry.CurrencyCode == s.baseCurrency || entry.ExchangeRate != nil {
		return nil
	}
	rate, err := s.rateSvc.LatestRate(ctx, entry.CurrencyCode, s.baseCurrency, entry.Date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// No rate registered yet; the entry is stored unstamped.
			return nil
		}
		return err
	}
	entry.ExchangeRate = &rate
	return nil
}

// CreateEntry validates and persists a new journal entry. The storage layer
// resolves the accounting period, allocates the correlativo, and enforces the
// source reference idempotency guard inside one transaction.
func (s *ledgerService) CreateEntry(ctx context.Context, tenant domain.TenantContext, req dto.CreateEntryRequest, actor string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !tenant.Valid() {
		return nil, apperrors.ErrInvalidTenant
	}

	status, known := domain.InitialStatusForSource(req.Source)
	if !known {
		return nil, fmt.Errorf("%w: %w: %s", apperrors.ErrValidation, ErrUnknownSource, req.Source)
	}
	if req.Source != domain.SourceManual && (req.SourceRef == nil || *req.SourceRef == "") {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrSourceRefRequired)
	}

	lines, err := s.resolveLines(ctx, tenant, req.Lines)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()
	debitTotal, creditTotal := accounting.SumLines(lines)
	for i := range lines {
		lines[i].LineID = uuid.NewString()
		lines[i].EntryID = entryID
	}

	entry := domain.JournalEntry{
		EntryID:        entryID,
		OrganizationID: tenant.OrganizationID,
		CompanyID:      tenant.CompanyID,
		Date:           req.Date,
		Description:    req.Description,
		Source:         req.Source,
		Status:         status,
		AuditCode:      uuid.NewString(),
		CurrencyCode:   req.CurrencyCode,
		ExchangeRate:   req.ExchangeRate,
		DebitTotal:     debitTotal,
		CreditTotal:    creditTotal,
		SourceRef:      req.SourceRef,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}
	if err := s.stampCurrency(ctx, &entry); err != nil {
		return nil, err
	}

	created, err := s.journalRepo.CreateEntry(ctx, entry, lines)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) || errors.Is(err, apperrors.ErrPeriodLocked) {
			return nil, err
		}
		logger.Error("Failed to save journal entry", slog.String("error", err.Error()), slog.String("organization_id", tenant.OrganizationID))
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	logger.Info("Journal entry created",
		slog.String("entry_id", created.EntryID),
		slog.String("correlativo", created.Correlativo),
		slog.String("source", string(created.Source)),
		slog.String("status", string(created.Status)))
	created.Lines = lines
	return created, nil
}

// GetEntryByID retrieves an entry with chart codes resolved on its lines.
func (s *ledgerService) GetEntryByID(ctx context.Context, tenant domain.TenantContext, entryID string) (*domain.JournalEntry, error) {
	if !tenant.Valid() {
		return nil, apperrors.ErrInvalidTenant
	}
	entry, err := s.journalRepo.FindEntryByID(ctx, tenant.OrganizationID, entryID)
	if err != nil {
		return nil, err
	}
	if err := s.decorateLines(ctx, tenant, entry.Lines); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to resolve account codes for entry lines", slog.String("entry_id", entryID), slog.String("error", err.Error()))
	}
	return entry, nil
}

// decorateLines fills AccountCode on lines fetched from storage.
func (s *ledgerService) decorateLines(ctx context.Context, tenant domain.TenantContext, lines []domain.EntryLine) error {
	if len(lines) == 0 {
		return nil
	}
	ids := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.AccountID]; !ok {
			seen[line.AccountID] = struct{}{}
			ids = append(ids, line.AccountID)
		}
	}
	accounts, err := s.chartSvc.GetAccountsByIDs(ctx, tenant, ids)
	if err != nil {
		return err
	}
	for i := range lines {
		lines[i].AccountCode = accounts[lines[i].AccountID].Code
	}
	return nil
}

// ListEntries retrieves one page of entries. The balanced filter is an audit
// aid applied after retrieval; the stored totals of a healthy ledger always
// reconcile, so the filtered page is normally identical to the raw one.
func (s *ledgerService) ListEntries(ctx context.Context, tenant domain.TenantContext, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	if !tenant.Valid() {
		return nil, apperrors.ErrInvalidTenant
	}
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Size < 1 {
		params.Size = 20
	}
	filters := portsrepo.EntryFilters{
		DateFrom:   params.DateFrom,
		DateTo:     params.DateTo,
		Sources:    params.Sources,
		Statuses:   params.Statuses,
		AccountIDs: params.AccountIDs,
	}
	offset := (params.Page - 1) * params.Size
	entries, total, err := s.journalRepo.ListEntries(ctx, tenant.OrganizationID, filters, params.Size, offset)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list journal entries", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve entries: %w", err)
	}

	if params.Balanced != nil {
		filtered := entries[:0]
		for _, e := range entries {
			if accounting.Balanced(e.DebitTotal, e.CreditTotal) == *params.Balanced {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}

	return &dto.ListEntriesResponse{
		Entries: dto.ToEntryResponses(entries),
		Total:   total,
		Page:    params.Page,
		Size:    params.Size,
	}, nil
}

// ListLinesByAccount retrieves one page of an account's activity.
func (s *ledgerService) ListLinesByAccount(ctx context.Context, tenant domain.TenantContext, accountID string, params dto.ListLinesParams) (*dto.ListLinesResponse, error) {
	if !tenant.Valid() {
		return nil, apperrors.ErrInvalidTenant
	}
	account, err := s.chartSvc.GetAccountByID(ctx, tenant, accountID)
	if err != nil {
		return nil, err
	}
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Size < 1 {
		params.Size = 20
	}
	offset := (params.Page - 1) * params.Size
	lines, total, err := s.journalRepo.ListLinesByAccount(ctx, tenant.OrganizationID, accountID, params.Size, offset)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list account lines", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to retrieve account lines: %w", err)
	}
	for i := range lines {
		lines[i].AccountCode = account.Code
	}
	responses := make([]dto.EntryLineResponse, len(lines))
	for i := range lines {
		responses[i] = dto.ToEntryLineResponse(&lines[i])
	}
	return &dto.ListLinesResponse{
		Lines: responses,
		Total: total,
		Page:  params.Page,
		Size:  params.Size,
	}, nil
}

// UpdateEntry patches a DRAFT entry. When lines are supplied the whole line
// set is replaced and totals recomputed; POSTED and VOID entries reject any
// change.
func (s *ledgerService) UpdateEntry(ctx context.Context, tenant domain.TenantContext, entryID string, req dto.UpdateEntryRequest, actor string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !tenant.Valid() {
		return nil, apperrors.ErrInvalidTenant
	}
	entry, err := s.journalRepo.FindEntryByID(ctx, tenant.OrganizationID, entryID)
	if err != nil {
		return nil, err
	}
	if err := s.periodSvc.AssertOpen(ctx, tenant, entry.PeriodID); err != nil {
		return nil, err
	}
	if !entry.IsMutable() {
		return nil, fmt.Errorf("%w: %w: status is %s", apperrors.ErrConflict, ErrNotDraft, entry.Status)
	}

	if req.Date != nil {
		entry.Date = *req.Date
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}

	lines := entry.Lines
	if req.Lines != nil {
		lines, err = s.resolveLines(ctx, tenant, req.Lines)
		if err != nil {
			return nil, err
		}
		for i := range lines {
			lines[i].LineID = uuid.NewString()
			lines[i].EntryID = entry.EntryID
		}
		entry.DebitTotal, entry.CreditTotal = accounting.SumLines(lines)
	}

	now := time.Now().UTC()
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = actor

	if err := s.journalRepo.ReplaceEntryLines(ctx, *entry, lines); err != nil {
		logger.Error("Failed to update journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}

	logger.Info("Journal entry updated", slog.String("entry_id", entryID))
	entry.Lines = lines
	return entry, nil
}

// PostEntry transitions DRAFT -> POSTED after a final balance check against
// the stored totals.
func (s *ledgerService) PostEntry(ctx context.Context, tenant domain.TenantContext, entryID, actor string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !tenant.Valid() {
		return nil, apperrors.ErrInvalidTenant
	}
	entry, err := s.journalRepo.FindEntryByID(ctx, tenant.OrganizationID, entryID)
	if err != nil {
		return nil, err
	}
	if err := s.periodSvc.AssertOpen(ctx, tenant, entry.PeriodID); err != nil {
		return nil, err
	}
	if !entry.CanPost() {
		return nil, fmt.Errorf("%w: %w: status is %s", apperrors.ErrConflict, ErrNotDraft, entry.Status)
	}
	if !accounting.Balanced(entry.DebitTotal, entry.CreditTotal) {
		return nil, fmt.Errorf("%w: %w: debits %s, credits %s", apperrors.ErrValidation, accounting.ErrUnbalanced, entry.DebitTotal, entry.CreditTotal)
	}

	now := time.Now().UTC()
	if err := s.journalRepo.UpdateEntryStatus(ctx, tenant.OrganizationID, entryID, domain.StatusDraft, domain.StatusPosted, actor, now); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			logger.Error("Failed to post journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, err
	}

	logger.Info("Journal entry posted", slog.String("entry_id", entryID), slog.String("correlativo", entry.Correlativo))
	entry.Status = domain.StatusPosted
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = actor
	return entry, nil
}

// VoidEntry transitions POSTED -> VOID. The entry and its lines remain
// stored untouched for the audit trail; nothing is reversed or deleted.
func (s *ledgerService) VoidEntry(ctx context.Context, tenant domain.TenantContext, entryID, actor string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !tenant.Valid() {
		return nil, apperrors.ErrInvalidTenant
	}
	entry, err := s.journalRepo.FindEntryByID(ctx, tenant.OrganizationID, entryID)
	if err != nil {
		return nil, err
	}
	if err := s.periodSvc.AssertOpen(ctx, tenant, entry.PeriodID); err != nil {
		return nil, err
	}
	if !entry.CanVoid() {
		return nil, fmt.Errorf("%w: %w: status is %s", apperrors.ErrConflict, ErrNotPosted, entry.Status)
	}

	now := time.Now().UTC()
	if err := s.journalRepo.UpdateEntryStatus(ctx, tenant.OrganizationID, entryID, domain.StatusPosted, domain.StatusVoid, actor, now); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			logger.Error("Failed to void journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, err
	}

	logger.Info("Journal entry voided", slog.String("entry_id", entryID), slog.String("correlativo", entry.Correlativo))
	entry.Status = domain.StatusVoid
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = actor
	return entry, nil
}

// DeleteEntry hard-deletes a DRAFT entry and its lines. Posted work is never
// deleted; its exit is VoidEntry.
func (s *ledgerService) DeleteEntry(ctx context.Context, tenant domain.TenantContext, entryID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !tenant.Valid() {
		return apperrors.ErrInvalidTenant
	}
	entry, err := s.journalRepo.FindEntryByID(ctx, tenant.OrganizationID, entryID)
	if err != nil {
		return err
	}
	if err := s.periodSvc.AssertOpen(ctx, tenant, entry.PeriodID); err != nil {
		return err
	}
	if !entry.IsMutable() {
		return fmt.Errorf("%w: %w: status is %s", apperrors.ErrConflict, ErrNotDraft, entry.Status)
	}
	if err := s.journalRepo.DeleteEntry(ctx, tenant.OrganizationID, entryID); err != nil {
		logger.Error("Failed to delete journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	logger.Info("Journal entry deleted", slog.String("entry_id", entryID))
	return nil
}
