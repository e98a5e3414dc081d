package invoice_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"go-fleetops/internal/events"
	"go-fleetops/internal/invoice"
	invoiceerrors "go-fleetops/internal/invoice/errors"
	"go-fleetops/internal/messaging/kafka"
	kafkaMock "go-fleetops/internal/messaging/kafka/mock"
	counterMock "go-fleetops/internal/shared/counter/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type fakeInvoiceRepository struct {
	withTxFn              func(tx *sql.Tx) invoice.Repository
	createFn              func(ctx context.Context, inv *invoice.Invoice) error
	findAllFn             func(ctx context.Context) ([]invoice.Invoice, error)
	findByIDFn            func(ctx context.Context, id string) (*invoice.Invoice, error)
	updateFn              func(ctx context.Context, inv *invoice.Invoice) error
	findJobForInvoicingFn func(ctx context.Context, jobID string) (*invoice.InvoicingJob, error)
	createItemFn          func(ctx context.Context, item *invoice.InvoiceItem) error
	findItemByIDFn        func(ctx context.Context, invoiceID, itemID string) (*invoice.InvoiceItem, error)
	updateItemFn          func(ctx context.Context, item *invoice.InvoiceItem) error
	deleteItemFn          func(ctx context.Context, invoiceID, itemID string) error
	sumItemAmountsFn      func(ctx context.Context, invoiceID string) (float64, error)
	countItemsFn          func(ctx context.Context, invoiceID string) (int64, error)
}

func (f *fakeInvoiceRepository) WithTx(tx *sql.Tx) invoice.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeInvoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	if f.createFn != nil {
		return f.createFn(ctx, inv)
	}
	return nil
}

func (f *fakeInvoiceRepository) FindAll(ctx context.Context) ([]invoice.Invoice, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeInvoiceRepository) FindByID(ctx context.Context, id string) (*invoice.Invoice, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeInvoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, inv)
	}
	return nil
}

func (f *fakeInvoiceRepository) FindJobForInvoicing(ctx context.Context, jobID string) (*invoice.InvoicingJob, error) {
	if f.findJobForInvoicingFn != nil {
		return f.findJobForInvoicingFn(ctx, jobID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeInvoiceRepository) CreateItem(ctx context.Context, item *invoice.InvoiceItem) error {
	if f.createItemFn != nil {
		return f.createItemFn(ctx, item)
	}
	return nil
}

func (f *fakeInvoiceRepository) FindItemByID(ctx context.Context, invoiceID, itemID string) (*invoice.InvoiceItem, error) {
	if f.findItemByIDFn != nil {
		return f.findItemByIDFn(ctx, invoiceID, itemID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeInvoiceRepository) UpdateItem(ctx context.Context, item *invoice.InvoiceItem) error {
	if f.updateItemFn != nil {
		return f.updateItemFn(ctx, item)
	}
	return nil
}

func (f *fakeInvoiceRepository) DeleteItem(ctx context.Context, invoiceID, itemID string) error {
	if f.deleteItemFn != nil {
		return f.deleteItemFn(ctx, invoiceID, itemID)
	}
	return nil
}

func (f *fakeInvoiceRepository) SumItemAmounts(ctx context.Context, invoiceID string) (float64, error) {
	if f.sumItemAmountsFn != nil {
		return f.sumItemAmountsFn(ctx, invoiceID)
	}
	return 0, nil
}

func (f *fakeInvoiceRepository) CountItems(ctx context.Context, invoiceID string) (int64, error) {
	if f.countItemsFn != nil {
		return f.countItemsFn(ctx, invoiceID)
	}
	return 0, nil
}

type invoiceServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service invoice.Service
	repo    *fakeInvoiceRepository
	counter *counterMock.MockRepository
	outbox  *kafkaMock.MockOutboxRepository
}

func setupInvoiceServiceTest(t *testing.T) *invoiceServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	ctrl := gomock.NewController(t)
	counterRepo := counterMock.NewMockRepository(ctrl)
	outboxRepo := kafkaMock.NewMockOutboxRepository(ctrl)

	repo := &fakeInvoiceRepository{}
	svc := invoice.NewServiceWithOutbox(db, repo, counterRepo, outboxRepo)

	return &invoiceServiceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
		counter: counterRepo,
		outbox:  outboxRepo,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestInvoiceService_CreateFromJob(t *testing.T) {
	ctx := context.Background()
	jobID := uuid.New()
	clientID := uuid.New()

	completedJob := func() *invoice.InvoicingJob {
		return &invoice.InvoicingJob{
			ID:       jobID,
			ClientID: &clientID,
			Status:   "COMPLETED",
			Lines: []invoice.InvoicingLine{
				{
					ID:           uuid.New(),
					ProductName:  "Road Base",
					UnitPrice:    18.89,
					DocketNumber: "DK-4411",
					Quantity:     45,
				},
			},
		}
	}

	t.Run("success snapshots lines and mints number", func(t *testing.T) {
		deps := setupInvoiceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		year := time.Now().UTC().Year()
		deps.counter.EXPECT().
			GetNextValue(gomock.Any(), year, "invoice_number").
			Return(int64(7), nil)

		deps.repo.findJobForInvoicingFn = func(ctx context.Context, jid string) (*invoice.InvoicingJob, error) {
			assert.Equal(t, jobID.String(), jid)
			return completedJob(), nil
		}
		deps.repo.createFn = func(ctx context.Context, inv *invoice.Invoice) error {
			assert.Equal(t, jobID, inv.JobID)
			assert.Equal(t, invoice.StatusDraft, inv.Status)
			assert.Equal(t, "AUD", inv.Currency)
			assert.Len(t, inv.Items, 1)
			assert.Equal(t, "Road Base", inv.Items[0].ProductName)
			assert.Equal(t, 850.05, inv.Items[0].Amount)
			assert.Equal(t, 850.05, inv.TotalAmount)
			return nil
		}

		resp, err := deps.service.CreateFromJob(ctx, invoice.CreateInvoiceRequest{JobID: jobID.String()})

		assert.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("INV-%d-000007", year), resp.Number)
		assert.Equal(t, 850.05, resp.TotalAmount)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative job not completed", func(t *testing.T) {
		deps := setupInvoiceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findJobForInvoicingFn = func(ctx context.Context, jid string) (*invoice.InvoicingJob, error) {
			j := completedJob()
			j.Status = "ASSIGNED"
			return j, nil
		}

		_, err := deps.service.CreateFromJob(ctx, invoice.CreateInvoiceRequest{JobID: jobID.String()})

		assert.ErrorIs(t, err, invoiceerrors.ErrJobNotCompleted)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative duplicate invoice for job", func(t *testing.T) {
		deps := setupInvoiceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.counter.EXPECT().
			GetNextValue(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(int64(8), nil)

		deps.repo.findJobForInvoicingFn = func(ctx context.Context, jid string) (*invoice.InvoicingJob, error) {
			return completedJob(), nil
		}
		deps.repo.createFn = func(ctx context.Context, inv *invoice.Invoice) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_invoices_job"}
		}

		_, err := deps.service.CreateFromJob(ctx, invoice.CreateInvoiceRequest{JobID: jobID.String()})

		assert.ErrorIs(t, err, invoiceerrors.ErrJobAlreadyInvoiced)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative unknown job", func(t *testing.T) {
		deps := setupInvoiceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findJobForInvoicingFn = func(ctx context.Context, jid string) (*invoice.InvoicingJob, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.CreateFromJob(ctx, invoice.CreateInvoiceRequest{JobID: jobID.String()})

		assert.ErrorIs(t, err, invoiceerrors.ErrJobNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestInvoiceService_AddItem(t *testing.T) {
	ctx := context.Background()
	invoiceID := uuid.New()

	draftInvoice := func() *invoice.Invoice {
		return &invoice.Invoice{
			ID:       invoiceID,
			JobID:    uuid.New(),
			Number:   "INV-2026-000007",
			Status:   invoice.StatusDraft,
			Currency: "AUD",
		}
	}

	t.Run("success recomputes total", func(t *testing.T) {
		deps := setupInvoiceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*invoice.Invoice, error) {
			return draftInvoice(), nil
		}
		deps.repo.createItemFn = func(ctx context.Context, item *invoice.InvoiceItem) error {
			assert.Equal(t, invoiceID, item.InvoiceID)
			assert.Equal(t, 850.05, item.Amount)
			return nil
		}
		deps.repo.sumItemAmountsFn = func(ctx context.Context, id string) (float64, error) {
			return 850.05, nil
		}

		var persistedTotal float64
		deps.repo.updateFn = func(ctx context.Context, inv *invoice.Invoice) error {
			persistedTotal = inv.TotalAmount
			return nil
		}

		_, err := deps.service.AddItem(ctx, invoiceID.String(), invoice.AddInvoiceItemRequest{
			ProductName: "Road Base",
			Qty:         45,
			UnitPrice:   18.89,
		})

		assert.NoError(t, err)
		assert.Equal(t, 850.05, persistedTotal)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative issued invoice rejects item changes", func(t *testing.T) {
		deps := setupInvoiceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*invoice.Invoice, error) {
			inv := draftInvoice()
			inv.Status = invoice.StatusIssued
			return inv, nil
		}

		_, err := deps.service.AddItem(ctx, invoiceID.String(), invoice.AddInvoiceItemRequest{
			ProductName: "Road Base",
			Qty:         1,
			UnitPrice:   10,
		})

		assert.ErrorIs(t, err, invoiceerrors.ErrInvoiceNotDraft)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestInvoiceService_DeleteItem(t *testing.T) {
	ctx := context.Background()
	invoiceID := uuid.New()
	itemID := uuid.New().String()

	t.Run("negative item not found", func(t *testing.T) {
		deps := setupInvoiceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*invoice.Invoice, error) {
			return &invoice.Invoice{ID: invoiceID, JobID: uuid.New(), Status: invoice.StatusDraft}, nil
		}
		deps.repo.deleteItemFn = func(ctx context.Context, iid, itid string) error {
			return gorm.ErrRecordNotFound
		}

		_, err := deps.service.DeleteItem(ctx, invoiceID.String(), itemID)

		assert.ErrorIs(t, err, invoiceerrors.ErrInvoiceItemNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestInvoiceService_Issue(t *testing.T) {
	ctx := context.Background()
	invoiceID := uuid.New()
	clientID := uuid.New()

	invoiceWithStatus := func(status string) *invoice.Invoice {
		return &invoice.Invoice{
			ID:          invoiceID,
			JobID:       uuid.New(),
			ClientID:    &clientID,
			Number:      "INV-2026-000007",
			Status:      status,
			Currency:    "AUD",
			TotalAmount: 850.05,
		}
	}

	t.Run("success stamps issued_at and queues event", func(t *testing.T) {
		deps := setupInvoiceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*invoice.Invoice, error) {
			return invoiceWithStatus(invoice.StatusDraft), nil
		}
		deps.repo.countItemsFn = func(ctx context.Context, id string) (int64, error) {
			return 1, nil
		}
		deps.repo.updateFn = func(ctx context.Context, inv *invoice.Invoice) error {
			assert.Equal(t, invoice.StatusIssued, inv.Status)
			assert.NotNil(t, inv.IssuedAt)
			return nil
		}

		deps.outbox.EXPECT().
			WithTx(gomock.Any()).
			Return(deps.outbox)
		deps.outbox.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, event kafka.OutboxEvent) error {
				assert.Equal(t, "invoice", event.AggregateType)
				assert.Equal(t, "invoice_issued", event.EventType)
				assert.Equal(t, events.InvoiceIssuedTopic, event.Topic)

				var payload events.InvoiceIssuedEvent
				assert.NoError(t, json.Unmarshal(event.Payload, &payload))
				assert.Equal(t, "INV-2026-000007", payload.Number)
				assert.Equal(t, 850.05, payload.TotalAmount)
				return nil
			})

		resp, err := deps.service.Issue(ctx, invoiceID.String())

		assert.NoError(t, err)
		assert.Equal(t, invoice.StatusIssued, resp.Status)
		assert.NotNil(t, resp.IssuedAt)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative zero items", func(t *testing.T) {
		deps := setupInvoiceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*invoice.Invoice, error) {
			return invoiceWithStatus(invoice.StatusDraft), nil
		}
		deps.repo.countItemsFn = func(ctx context.Context, id string) (int64, error) {
			return 0, nil
		}

		_, err := deps.service.Issue(ctx, invoiceID.String())

		assert.ErrorIs(t, err, invoiceerrors.ErrInvoiceHasNoItems)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative already issued", func(t *testing.T) {
		deps := setupInvoiceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*invoice.Invoice, error) {
			return invoiceWithStatus(invoice.StatusIssued), nil
		}

		_, err := deps.service.Issue(ctx, invoiceID.String())

		assert.ErrorIs(t, err, invoiceerrors.ErrInvalidStatusTransition)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative cancelled is terminal", func(t *testing.T) {
		deps := setupInvoiceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*invoice.Invoice, error) {
			return invoiceWithStatus(invoice.StatusCancelled), nil
		}

		_, err := deps.service.Issue(ctx, invoiceID.String())

		assert.ErrorIs(t, err, invoiceerrors.ErrInvoiceTerminal)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestInvoiceService_Cancel(t *testing.T) {
	ctx := context.Background()
	invoiceID := uuid.New()

	t.Run("success cancel issued invoice", func(t *testing.T) {
		deps := setupInvoiceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		now := time.Now().UTC()
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*invoice.Invoice, error) {
			return &invoice.Invoice{
				ID:       invoiceID,
				JobID:    uuid.New(),
				Number:   "INV-2026-000007",
				Status:   invoice.StatusIssued,
				Currency: "AUD",
				IssuedAt: &now,
			}, nil
		}
		deps.repo.updateFn = func(ctx context.Context, inv *invoice.Invoice) error {
			assert.Equal(t, invoice.StatusCancelled, inv.Status)
			return nil
		}

		resp, err := deps.service.Cancel(ctx, invoiceID.String())

		assert.NoError(t, err)
		assert.Equal(t, invoice.StatusCancelled, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestInvoiceService_RenderPDF(t *testing.T) {
	ctx := context.Background()
	invoiceID := uuid.New()

	t.Run("success", func(t *testing.T) {
		deps := setupInvoiceServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*invoice.Invoice, error) {
			return &invoice.Invoice{
				ID:          invoiceID,
				JobID:       uuid.New(),
				Number:      "INV-2026-000007",
				Status:      invoice.StatusIssued,
				Currency:    "AUD",
				TotalAmount: 850.05,
				Items: []invoice.InvoiceItem{
					{
						ID:          uuid.New(),
						InvoiceID:   invoiceID,
						ProductName: "Road Base",
						Qty:         45,
						UnitPrice:   18.89,
						Amount:      850.05,
					},
				},
			}, nil
		}

		pdf, filename, err := deps.service.RenderPDF(ctx, invoiceID.String())

		assert.NoError(t, err)
		assert.Equal(t, "INV-2026-000007.pdf", filename)
		assert.True(t, len(pdf) > 0)
		assert.Contains(t, string(pdf[:8]), "%PDF-1.4")
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative unknown invoice", func(t *testing.T) {
		deps := setupInvoiceServiceTest(t)
		defer deps.db.Close()

		_, _, err := deps.service.RenderPDF(ctx, invoiceID.String())

		assert.ErrorIs(t, err, invoiceerrors.ErrInvoiceNotFound)
	})
}
