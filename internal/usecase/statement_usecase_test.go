package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/goaccounts/internal/domain"
	"github.com/iho/goaccounts/internal/usecase"
	"github.com/iho/goaccounts/internal/usecase/mocks"
)

type statementMocks struct {
	reports   *mocks.MockReportBuilder
	renderer  *mocks.MockStatementRenderer
	publisher *mocks.MockStatementPublisher
	idGen     *mocks.MockIDGenerator
	recorder  *mocks.MockRecorder
}

func newStatementUseCase(t *testing.T) (*usecase.StatementUseCase, statementMocks) {
	ctrl := gomock.NewController(t)
	m := statementMocks{
		reports:   mocks.NewMockReportBuilder(ctrl),
		renderer:  mocks.NewMockStatementRenderer(ctrl),
		publisher: mocks.NewMockStatementPublisher(ctrl),
		idGen:     mocks.NewMockIDGenerator(ctrl),
		recorder:  mocks.NewMockRecorder(ctrl),
	}

	uc := usecase.NewStatementUseCase(m.reports, m.renderer, m.publisher, m.idGen, usecase.StatementConfig{
		Recorder: m.recorder,
		Now:      fixedNow,
	})
	return uc, m
}

func sampleReport() *domain.CurrentAccountReport {
	return &domain.CurrentAccountReport{
		EntityID:       "c1",
		EntityName:     "Acme",
		EntityType:     domain.EntityKindCustomer,
		CurrentBalance: amount(1250),
		GeneratedAt:    reportDay,
	}
}

func TestStatementUseCase_SendAccountStatement(t *testing.T) {
	uc, m := newStatementUseCase(t)
	report := sampleReport()

	m.reports.EXPECT().
		GetCurrentAccountReport(gomock.Any(), "c1", domain.EntityKindCustomer, domain.ReportFilters{}).
		Return(report, nil)
	m.renderer.EXPECT().Render(report).Return([]byte("xlsx"), nil)
	m.renderer.EXPECT().FileName(report).Return("estado-de-cuenta-acme.xlsx")
	m.idGen.EXPECT().Generate().Return("evt-1")
	m.recorder.EXPECT().IncStatement("sent")

	var published *domain.StatementRequested
	m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event *domain.StatementRequested) error {
			published = event
			return nil
		})

	result := uc.SendAccountStatement(context.Background(), "c1", domain.EntityKindCustomer, " ana@example.com ")

	assert.True(t, result.Success)
	assert.Equal(t, "Estado de cuenta enviado a ana@example.com", result.Message)
	assert.Equal(t, "evt-1", result.EventID)

	require.NotNil(t, published)
	assert.Equal(t, "evt-1", published.ID)
	assert.Equal(t, domain.EventTypeStatementRequested, published.Type)
	assert.Equal(t, "c1", published.EntityID)
	assert.Equal(t, "customer", published.EntityKind)
	assert.Equal(t, "Acme", published.EntityName)
	assert.Equal(t, "ana@example.com", published.Email)
	assert.Equal(t, "1250.00", published.CurrentBalance)
	assert.Equal(t, "estado-de-cuenta-acme.xlsx", published.FileName)
	assert.Equal(t, []byte("xlsx"), published.Attachment)
	assert.Equal(t, reportDay, published.RequestedAt)
}

func TestStatementUseCase_SendAccountStatementFailures(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		setup   func(m statementMocks)
		wantMsg string
	}{
		{
			name:    "invalid email",
			email:   "not-an-email",
			setup:   func(statementMocks) {},
			wantMsg: "Error al enviar el estado de cuenta: correo electrónico inválido",
		},
		{
			name:  "entity not found",
			email: "ana@example.com",
			setup: func(m statementMocks) {
				m.reports.EXPECT().GetCurrentAccountReport(gomock.Any(), "c1", domain.EntityKindCustomer, gomock.Any()).
					Return(nil, &domain.AccountError{Message: domain.MsgCustomerNotFound, Err: domain.ErrEntityNotFound})
			},
			wantMsg: "Error al enviar el estado de cuenta: cliente no encontrado",
		},
		{
			name:  "render fails",
			email: "ana@example.com",
			setup: func(m statementMocks) {
				m.reports.EXPECT().GetCurrentAccountReport(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(sampleReport(), nil)
				m.renderer.EXPECT().Render(gomock.Any()).Return(nil, errors.New("disk full"))
			},
			wantMsg: "Error al enviar el estado de cuenta: no se pudo generar el archivo",
		},
		{
			name:  "publish fails",
			email: "ana@example.com",
			setup: func(m statementMocks) {
				m.reports.EXPECT().GetCurrentAccountReport(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(sampleReport(), nil)
				m.renderer.EXPECT().Render(gomock.Any()).Return([]byte("xlsx"), nil)
				m.renderer.EXPECT().FileName(gomock.Any()).Return("f.xlsx")
				m.idGen.EXPECT().Generate().Return("evt-2")
				m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))
			},
			wantMsg: "Error al enviar el estado de cuenta: no se pudo encolar el envío",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, m := newStatementUseCase(t)
			tt.setup(m)
			m.recorder.EXPECT().IncStatement("error")

			result := uc.SendAccountStatement(context.Background(), "c1", domain.EntityKindCustomer, tt.email)

			assert.False(t, result.Success)
			assert.Equal(t, tt.wantMsg, result.Message)
			assert.Empty(t, result.EventID)
		})
	}
}

func TestStatementUseCase_ExportStatement(t *testing.T) {
	uc, m := newStatementUseCase(t)
	report := sampleReport()
	filters := domain.ReportFilters{MovementTypes: []domain.MovementType{domain.MovementTypeSale}}

	m.reports.EXPECT().GetCurrentAccountReport(gomock.Any(), "c1", domain.EntityKindCustomer, filters).Return(report, nil)
	m.renderer.EXPECT().Render(report).Return([]byte("xlsx"), nil)
	m.renderer.EXPECT().FileName(report).Return("acme.xlsx")

	data, name, err := uc.ExportStatement(context.Background(), "c1", domain.EntityKindCustomer, filters)
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), data)
	assert.Equal(t, "acme.xlsx", name)
}

func TestStatementUseCase_ExportStatementPropagatesErrors(t *testing.T) {
	uc, m := newStatementUseCase(t)
	notFound := &domain.AccountError{Message: domain.MsgSupplierNotFound, Err: domain.ErrEntityNotFound}

	m.reports.EXPECT().GetCurrentAccountReport(gomock.Any(), "p1", domain.EntityKindSupplier, gomock.Any()).Return(nil, notFound)

	data, name, err := uc.ExportStatement(context.Background(), "p1", domain.EntityKindSupplier, domain.ReportFilters{})
	assert.Nil(t, data)
	assert.Empty(t, name)
	assert.ErrorIs(t, err, domain.ErrEntityNotFound)
}
