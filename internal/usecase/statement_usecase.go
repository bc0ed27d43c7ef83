package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/goaccounts/internal/domain"
)

// Statement messages shown to the user.
const (
	msgStatementSent     = "Estado de cuenta enviado a %s"
	msgStatementFailed   = "Error al enviar el estado de cuenta: %s"
	reasonInvalidEmail   = "correo electrónico inválido"
	reasonRenderFailed   = "no se pudo generar el archivo"
	reasonPublishFailed  = "no se pudo encolar el envío"
	statementStatusSent  = "sent"
	statementStatusError = "error"
)

// StatementConfig holds optional collaborators for StatementUseCase.
type StatementConfig struct {
	Logger   *zerolog.Logger
	Recorder Recorder
	Now      func() time.Time
}

// StatementUseCase exports and sends account statements.
type StatementUseCase struct {
	reports   ReportBuilder
	renderer  StatementRenderer
	publisher StatementPublisher
	idGen     IDGenerator
	logger    zerolog.Logger
	recorder  Recorder
	now       func() time.Time
}

// NewStatementUseCase creates a new StatementUseCase.
func NewStatementUseCase(
	reports ReportBuilder,
	renderer StatementRenderer,
	publisher StatementPublisher,
	idGen IDGenerator,
	cfg StatementConfig,
) *StatementUseCase {
	uc := &StatementUseCase{
		reports:   reports,
		renderer:  renderer,
		publisher: publisher,
		idGen:     idGen,
		logger:    zerolog.Nop(),
		recorder:  noopRecorder{},
		now:       func() time.Time { return time.Now().UTC() },
	}

	if cfg.Logger != nil {
		uc.logger = *cfg.Logger
	}
	if cfg.Recorder != nil {
		uc.recorder = cfg.Recorder
	}
	if cfg.Now != nil {
		uc.now = cfg.Now
	}

	return uc
}

// StatementResult is the user-facing outcome of a statement request.
type StatementResult struct {
	Success bool
	Message string
	EventID string
}

// SendAccountStatement renders the entity's statement and queues it for
// delivery to email. It never fails: problems are reported in the result.
func (uc *StatementUseCase) SendAccountStatement(ctx context.Context, entityID string, kind domain.EntityKind, email string) StatementResult {
	email = strings.TrimSpace(email)
	log := uc.logger.With().Str("entity_id", entityID).Str("kind", string(kind)).Logger()

	if err := domain.ValidateEmail(email); err != nil {
		return uc.failed(log, reasonInvalidEmail, err)
	}

	report, err := uc.reports.GetCurrentAccountReport(ctx, entityID, kind, domain.ReportFilters{})
	if err != nil {
		return uc.failed(log, failureReason(err), err)
	}

	attachment, err := uc.renderer.Render(report)
	if err != nil {
		return uc.failed(log, reasonRenderFailed, err)
	}

	event := &domain.StatementRequested{
		ID:             uc.idGen.Generate(),
		Type:           domain.EventTypeStatementRequested,
		EntityID:       report.EntityID,
		EntityKind:     string(kind),
		EntityName:     report.EntityName,
		Email:          email,
		CurrentBalance: report.CurrentBalance.StringFixed(2),
		FileName:       uc.renderer.FileName(report),
		Attachment:     attachment,
		RequestedAt:    uc.now(),
	}

	if err := uc.publisher.Publish(ctx, event); err != nil {
		return uc.failed(log, reasonPublishFailed, err)
	}

	uc.recorder.IncStatement(statementStatusSent)
	log.Info().Str("event_id", event.ID).Msg("account statement queued")

	return StatementResult{
		Success: true,
		Message: fmt.Sprintf(msgStatementSent, email),
		EventID: event.ID,
	}
}

func (uc *StatementUseCase) failed(log zerolog.Logger, reason string, err error) StatementResult {
	uc.recorder.IncStatement(statementStatusError)
	log.Error().Err(err).Str("reason", reason).Msg("account statement not sent")

	return StatementResult{
		Success: false,
		Message: fmt.Sprintf(msgStatementFailed, reason),
	}
}

// ExportStatement renders the entity's statement for download and returns the
// file contents with a suggested file name.
func (uc *StatementUseCase) ExportStatement(
	ctx context.Context,
	entityID string,
	kind domain.EntityKind,
	filters domain.ReportFilters,
) ([]byte, string, error) {
	report, err := uc.reports.GetCurrentAccountReport(ctx, entityID, kind, filters)
	if err != nil {
		return nil, "", err
	}

	data, err := uc.renderer.Render(report)
	if err != nil {
		return nil, "", fmt.Errorf("render statement: %w", err)
	}

	return data, uc.renderer.FileName(report), nil
}

func failureReason(err error) string {
	var accountErr *domain.AccountError
	if errors.As(err, &accountErr) {
		return strings.ToLower(accountErr.Message[:1]) + accountErr.Message[1:]
	}
	return strings.ToLower(domain.MsgReportFailed[:1]) + domain.MsgReportFailed[1:]
}
