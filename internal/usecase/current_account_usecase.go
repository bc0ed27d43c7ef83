package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/iho/goaccounts/internal/domain"
)

// CurrentAccountConfig holds optional collaborators for CurrentAccountUseCase.
type CurrentAccountConfig struct {
	Logger      *zerolog.Logger
	Recorder    Recorder
	Concurrency int              // Max reports built at once by a rollup
	Now         func() time.Time // Reference time for aging
}

// CurrentAccountUseCase builds current-account reports for customers and suppliers.
type CurrentAccountUseCase struct {
	entityRepo   EntityRepository
	documentRepo DocumentRepository
	logger       zerolog.Logger
	recorder     Recorder
	concurrency  int
	now          func() time.Time
}

// NewCurrentAccountUseCase creates a new CurrentAccountUseCase.
func NewCurrentAccountUseCase(entityRepo EntityRepository, documentRepo DocumentRepository, cfg CurrentAccountConfig) *CurrentAccountUseCase {
	uc := &CurrentAccountUseCase{
		entityRepo:   entityRepo,
		documentRepo: documentRepo,
		logger:       zerolog.Nop(),
		recorder:     noopRecorder{},
		concurrency:  DefaultRollupConcurrency,
		now:          func() time.Time { return time.Now().UTC() },
	}

	if cfg.Logger != nil {
		uc.logger = *cfg.Logger
	}
	if cfg.Recorder != nil {
		uc.recorder = cfg.Recorder
	}
	if cfg.Concurrency > 0 {
		uc.concurrency = cfg.Concurrency
	}
	if cfg.Now != nil {
		uc.now = cfg.Now
	}

	return uc
}

// GetCurrentAccountReport builds the report of one entity. A missing entity or
// a failed query fails the whole report; no partial report is returned.
func (uc *CurrentAccountUseCase) GetCurrentAccountReport(
	ctx context.Context,
	entityID string,
	kind domain.EntityKind,
	filters domain.ReportFilters,
) (*domain.CurrentAccountReport, error) {
	start := time.Now()

	report, err := uc.buildReport(ctx, entityID, kind, filters)

	movements := 0
	if report != nil {
		movements = len(report.Movements)
	}
	uc.recorder.ObserveReport(kind, reportStatus(err), time.Since(start), movements)

	return report, err
}

func (uc *CurrentAccountUseCase) buildReport(
	ctx context.Context,
	entityID string,
	kind domain.EntityKind,
	filters domain.ReportFilters,
) (*domain.CurrentAccountReport, error) {
	if err := validateKind(kind); err != nil {
		return nil, invalidParameters("report", entityID, kind, err)
	}
	if err := domain.ValidateReportFilters(filters); err != nil {
		return nil, invalidParameters("report", entityID, kind, err)
	}

	entity, err := uc.entityRepo.GetByID(ctx, entityID, kind)
	if err != nil {
		return nil, wrapLookupError("get_entity", entityID, kind, err)
	}

	docs, err := uc.documentRepo.ListBillingDocuments(ctx, entityID, kind, filters.Window)
	if err != nil {
		return nil, wrapLookupError("list_documents", entityID, kind, err)
	}

	return assembleReport(entity, kind, docs, filters.MovementTypes, uc.now()), nil
}

// assembleReport runs the ledger, aging and payment-velocity passes. Aging and
// totals always see the unfiltered movements.
func assembleReport(
	entity *domain.Entity,
	kind domain.EntityKind,
	docs []domain.BillingDocument,
	types []domain.MovementType,
	now time.Time,
) *domain.CurrentAccountReport {
	ledger := domain.BuildLedger(kind, docs)

	report := &domain.CurrentAccountReport{
		EntityID:       entity.ID,
		EntityName:     entity.Name,
		EntityType:     kind,
		CurrentBalance: ledger.Balance,
		Movements:      domain.FilterMovements(ledger.Movements, types),
		Summary: domain.AccountSummary{
			TotalDebits:        ledger.TotalDebits,
			TotalCredits:       ledger.TotalCredits,
			OldestMovement:     ledger.OldestMovement,
			LastMovement:       ledger.LastMovement,
			AveragePaymentDays: domain.AveragePaymentDays(docs),
		},
		Aging:       domain.ClassifyAging(ledger.Movements, now),
		GeneratedAt: now,
	}

	if kind == domain.EntityKindCustomer {
		report.CreditLimit = entity.CreditLimit
	}

	return report
}

// RollupFailure records an entity left out of a rollup.
type RollupFailure struct {
	EntityID   string
	EntityName string
	Err        error
}

// Rollup is the outcome of building every report of a company.
type Rollup struct {
	Reports  []*domain.CurrentAccountReport
	Failures []RollupFailure
}

type rollupOutcome struct {
	entity *domain.Entity
	report *domain.CurrentAccountReport
	err    error
}

// BuildRollup builds the report of every entity of the given kind in a
// company. Reports are built concurrently, bounded by the configured limit.
// An entity whose report fails is logged and left out; only listing the
// entities is fatal.
func (uc *CurrentAccountUseCase) BuildRollup(
	ctx context.Context,
	companyID string,
	kind domain.EntityKind,
	filters domain.RollupFilters,
) (*Rollup, error) {
	if err := validateKind(kind); err != nil {
		return nil, invalidParameters("rollup", companyID, kind, err)
	}
	if err := domain.ValidateRollupFilters(filters); err != nil {
		return nil, invalidParameters("rollup", companyID, kind, err)
	}

	entities, err := uc.listEntities(ctx, companyID, kind)
	if err != nil {
		return nil, wrapLookupError("list_entities", companyID, kind, err)
	}

	outcomes := make([]rollupOutcome, len(entities))

	var g errgroup.Group
	g.SetLimit(uc.concurrency)

	for i, entity := range entities {
		i, entity := i, entity
		g.Go(func() error {
			report, err := uc.GetCurrentAccountReport(ctx, entity.ID, kind, filters.ReportFilters)
			outcomes[i] = rollupOutcome{entity: entity, report: report, err: err}
			return nil
		})
	}

	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, wrapLookupError("rollup", companyID, kind, err)
	}

	rollup := uc.foldOutcomes(kind, outcomes, filters)
	sortByBalanceDesc(rollup.Reports)

	uc.logger.Debug().
		Str("company_id", companyID).
		Str("kind", string(kind)).
		Int("entities", len(entities)).
		Int("reports", len(rollup.Reports)).
		Int("failures", len(rollup.Failures)).
		Msg("rollup built")

	return rollup, nil
}

func (uc *CurrentAccountUseCase) foldOutcomes(kind domain.EntityKind, outcomes []rollupOutcome, filters domain.RollupFilters) *Rollup {
	rollup := &Rollup{
		Reports: make([]*domain.CurrentAccountReport, 0, len(outcomes)),
	}

	for _, o := range outcomes {
		if o.err != nil {
			uc.logger.Warn().
				Err(o.err).
				Str("entity_id", o.entity.ID).
				Str("kind", string(kind)).
				Msg("skipping entity in current accounts rollup")
			uc.recorder.IncRollupFailure(kind)

			rollup.Failures = append(rollup.Failures, RollupFailure{
				EntityID:   o.entity.ID,
				EntityName: o.entity.Name,
				Err:        o.err,
			})
			continue
		}

		if filters.Match(o.report) {
			rollup.Reports = append(rollup.Reports, o.report)
		}
	}

	return rollup
}

// GetAllCurrentAccounts returns the reports of every entity of a company,
// sorted by balance descending. Entities whose report fails are omitted.
func (uc *CurrentAccountUseCase) GetAllCurrentAccounts(
	ctx context.Context,
	companyID string,
	kind domain.EntityKind,
	filters domain.RollupFilters,
) ([]*domain.CurrentAccountReport, error) {
	rollup, err := uc.BuildRollup(ctx, companyID, kind, filters)
	if err != nil {
		return nil, err
	}

	return rollup.Reports, nil
}

// GetAccountsOverview aggregates a company's rollup into dashboard totals.
func (uc *CurrentAccountUseCase) GetAccountsOverview(
	ctx context.Context,
	companyID string,
	kind domain.EntityKind,
	filters domain.RollupFilters,
) (*domain.AccountsOverview, error) {
	rollup, err := uc.BuildRollup(ctx, companyID, kind, filters)
	if err != nil {
		return nil, err
	}

	overview := &domain.AccountsOverview{
		CompanyID:      companyID,
		Kind:           kind,
		Accounts:       len(rollup.Reports),
		FailedAccounts: len(rollup.Failures),
		TotalBalance:   decimal.Zero,
		GeneratedAt:    uc.now(),
	}

	for _, r := range rollup.Reports {
		overview.TotalBalance = overview.TotalBalance.Add(r.CurrentBalance)
		overview.Aging = overview.Aging.Add(r.Aging)
		if r.IsActive() {
			overview.ActiveAccounts++
		}
		if r.OverCreditLimit() {
			overview.OverCreditLimit++
		}
	}

	return overview, nil
}

func (uc *CurrentAccountUseCase) listEntities(ctx context.Context, companyID string, kind domain.EntityKind) ([]*domain.Entity, error) {
	var all []*domain.Entity

	limit, offset, _ := domain.ValidatePagination(EntityPageSize, 0)
	for {
		page, err := uc.entityRepo.ListByCompany(ctx, companyID, kind, limit, offset)
		if err != nil {
			return nil, err
		}

		all = append(all, page...)
		if len(page) < limit {
			return all, nil
		}
		offset += limit
	}
}

func sortByBalanceDesc(reports []*domain.CurrentAccountReport) {
	sort.SliceStable(reports, func(i, j int) bool {
		if c := reports[i].CurrentBalance.Cmp(reports[j].CurrentBalance); c != 0 {
			return c > 0
		}
		if reports[i].EntityName != reports[j].EntityName {
			return reports[i].EntityName < reports[j].EntityName
		}
		return reports[i].EntityID < reports[j].EntityID
	})
}

func validateKind(kind domain.EntityKind) error {
	if !kind.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidEntityKind, kind)
	}
	return nil
}

func invalidParameters(op, id string, kind domain.EntityKind, err error) error {
	return &domain.AccountError{
		Op:       op,
		EntityID: id,
		Kind:     kind,
		Message:  domain.MsgInvalidParameters,
		Err:      err,
	}
}

// wrapLookupError turns a repository error into an AccountError that unwraps
// to domain.ErrEntityNotFound, domain.ErrQueryFailure or, when the caller gave
// up, the context error.
func wrapLookupError(op, id string, kind domain.EntityKind, err error) error {
	if errors.Is(err, domain.ErrEntityNotFound) {
		return &domain.AccountError{
			Op:       op,
			EntityID: id,
			Kind:     kind,
			Message:  domain.NotFoundMessage(kind),
			Err:      err,
		}
	}

	if !domain.IsCanceled(err) && !errors.Is(err, domain.ErrQueryFailure) {
		err = fmt.Errorf("%w: %w", domain.ErrQueryFailure, err)
	}

	return &domain.AccountError{
		Op:       op,
		EntityID: id,
		Kind:     kind,
		Message:  domain.MsgReportFailed,
		Err:      err,
	}
}

func reportStatus(err error) string {
	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, domain.ErrEntityNotFound):
		return StatusNotFound
	case domain.IsCanceled(err):
		return StatusCanceled
	default:
		return StatusFailure
	}
}
