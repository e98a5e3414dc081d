package invoice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-fleetops/internal/events"
	invoiceerrors "go-fleetops/internal/invoice/errors"
	"go-fleetops/internal/messaging/kafka"
	"go-fleetops/internal/shared/contextutil"
	"go-fleetops/internal/shared/counter"
	"go-fleetops/internal/shared/money"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const DefaultCurrency = "AUD"

// Job status checked before drafting; mirrors the job package FSM without
// importing it.
const jobStatusCompleted = "COMPLETED"

//go:generate mockgen -source=invoice_service.go -destination=mock/invoice_service_mock.go -package=mock
type Service interface {
	CreateFromJob(ctx context.Context, req CreateInvoiceRequest) (InvoiceResponse, error)
	GetAll(ctx context.Context) ([]InvoiceResponse, error)
	GetByID(ctx context.Context, id string) (InvoiceResponse, error)
	AddItem(ctx context.Context, invoiceID string, req AddInvoiceItemRequest) (InvoiceResponse, error)
	UpdateItem(ctx context.Context, invoiceID, itemID string, req UpdateInvoiceItemRequest) (InvoiceResponse, error)
	DeleteItem(ctx context.Context, invoiceID, itemID string) (InvoiceResponse, error)
	Issue(ctx context.Context, id string) (InvoiceResponse, error)
	Cancel(ctx context.Context, id string) (InvoiceResponse, error)
	RenderPDF(ctx context.Context, id string) ([]byte, string, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counterRepo counter.Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, counterRepo, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("invoice.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("invoice.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counterRepo,
		outbox:  outboxRepo,
		logger:  l,
	}
}

// CreateFromJob drafts the invoice for a completed job, snapshotting every
// job line with the product's current name and default unit price. The
// unique index uq_invoices_job keeps the job/invoice relation strictly 1:1;
// a second attempt surfaces as CONFLICT.
func (s *service) CreateFromJob(ctx context.Context, req CreateInvoiceRequest) (InvoiceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create invoice requested",
		zap.String("request_id", rid),
		zap.String("job_id", req.JobID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create invoice begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return InvoiceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	j, err := qtx.FindJobForInvoicing(ctx, req.JobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return InvoiceResponse{}, invoiceerrors.ErrJobNotFound
		}
		s.logger.Error("create invoice job lookup failed", zap.Error(err))
		return InvoiceResponse{}, err
	}
	if j.Status != jobStatusCompleted {
		s.logger.Warn("create invoice rejected, job not completed",
			zap.String("job_id", req.JobID),
			zap.String("job_status", j.Status),
		)
		return InvoiceResponse{}, invoiceerrors.ErrJobNotCompleted
	}

	year := time.Now().UTC().Year()
	nextVal, err := s.counter.GetNextValue(ctx, year, "invoice_number")
	if err != nil {
		s.logger.Error("create invoice number allocation failed", zap.Error(err))
		return InvoiceResponse{}, err
	}
	number := fmt.Sprintf("INV-%d-%06d", year, nextVal)

	currency := req.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	inv := &Invoice{
		ID:       uuid.New(),
		JobID:    j.ID,
		ClientID: j.ClientID,
		Number:   number,
		Status:   StatusDraft,
		Currency: currency,
	}

	var total float64
	for _, line := range j.Lines {
		lineID := line.ID
		docket := line.DocketNumber
		amount := money.LineAmount(line.Quantity, line.UnitPrice)
		inv.Items = append(inv.Items, InvoiceItem{
			ID:           uuid.New(),
			InvoiceID:    inv.ID,
			JobLineID:    &lineID,
			ProductName:  line.ProductName,
			DocketNumber: &docket,
			Qty:          line.Quantity,
			UnitPrice:    line.UnitPrice,
			Amount:       amount,
		})
		total += amount
	}
	inv.TotalAmount = money.Round2(total)

	if err := qtx.Create(ctx, inv); err != nil {
		s.logger.Error("create invoice persist failed", zap.Error(err))
		return InvoiceResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create invoice commit failed", zap.String("request_id", rid), zap.Error(err))
		return InvoiceResponse{}, err
	}

	s.logger.Info("create invoice success",
		zap.String("request_id", rid),
		zap.String("invoice_id", inv.ID.String()),
		zap.String("number", number),
		zap.Float64("total_amount", inv.TotalAmount),
	)
	return mapToResponse(*inv), nil
}

func (s *service) GetAll(ctx context.Context) ([]InvoiceResponse, error) {
	invoices, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all invoices failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(invoices), nil
}

func (s *service) GetByID(ctx context.Context, id string) (InvoiceResponse, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return InvoiceResponse{}, invoiceerrors.ErrInvoiceNotFound
		}
		return InvoiceResponse{}, err
	}
	return mapToResponse(*inv), nil
}

func (s *service) AddItem(ctx context.Context, invoiceID string, req AddInvoiceItemRequest) (InvoiceResponse, error) {
	jobLineID, err := parseOptionalID(req.JobLineID)
	if err != nil {
		return InvoiceResponse{}, err
	}
	return s.mutateItems(ctx, invoiceID, func(qtx Repository, inv *Invoice) error {
		item := &InvoiceItem{
			ID:           uuid.New(),
			InvoiceID:    inv.ID,
			JobLineID:    jobLineID,
			ProductName:  req.ProductName,
			DocketNumber: req.DocketNumber,
			Qty:          req.Qty,
			UnitPrice:    req.UnitPrice,
			Amount:       money.LineAmount(req.Qty, req.UnitPrice),
		}
		return qtx.CreateItem(ctx, item)
	})
}

func (s *service) UpdateItem(ctx context.Context, invoiceID, itemID string, req UpdateInvoiceItemRequest) (InvoiceResponse, error) {
	return s.mutateItems(ctx, invoiceID, func(qtx Repository, inv *Invoice) error {
		item, err := qtx.FindItemByID(ctx, invoiceID, itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return invoiceerrors.ErrInvoiceItemNotFound
			}
			return err
		}

		item.ProductName = req.ProductName
		item.DocketNumber = req.DocketNumber
		item.Qty = req.Qty
		item.UnitPrice = req.UnitPrice
		item.Amount = money.LineAmount(req.Qty, req.UnitPrice)

		return qtx.UpdateItem(ctx, item)
	})
}

func (s *service) DeleteItem(ctx context.Context, invoiceID, itemID string) (InvoiceResponse, error) {
	return s.mutateItems(ctx, invoiceID, func(qtx Repository, inv *Invoice) error {
		if err := qtx.DeleteItem(ctx, invoiceID, itemID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return invoiceerrors.ErrInvoiceItemNotFound
			}
			return err
		}
		return nil
	})
}

// mutateItems runs an item mutation and the total recompute inside one
// transaction, so total_amount never drifts from the item sum.
func (s *service) mutateItems(ctx context.Context, invoiceID string, mutate func(qtx Repository, inv *Invoice) error) (InvoiceResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return InvoiceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	inv, err := qtx.FindByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return InvoiceResponse{}, invoiceerrors.ErrInvoiceNotFound
		}
		return InvoiceResponse{}, err
	}

	if inv.Status != StatusDraft {
		return InvoiceResponse{}, invoiceerrors.ErrInvoiceNotDraft
	}

	if err := mutate(qtx, inv); err != nil {
		s.logger.Error("invoice item mutation failed",
			zap.String("invoice_id", invoiceID),
			zap.Error(err),
		)
		return InvoiceResponse{}, err
	}

	total, err := qtx.SumItemAmounts(ctx, invoiceID)
	if err != nil {
		s.logger.Error("invoice total recompute failed", zap.String("invoice_id", invoiceID), zap.Error(err))
		return InvoiceResponse{}, err
	}
	inv.TotalAmount = money.Round2(total)

	if err := qtx.Update(ctx, inv); err != nil {
		s.logger.Error("invoice total persist failed", zap.String("invoice_id", invoiceID), zap.Error(err))
		return InvoiceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return InvoiceResponse{}, err
	}

	s.logger.Info("invoice items updated",
		zap.String("invoice_id", invoiceID),
		zap.Float64("total_amount", inv.TotalAmount),
	)

	refreshed, err := s.repo.FindByID(ctx, invoiceID)
	if err != nil {
		return InvoiceResponse{}, err
	}
	return mapToResponse(*refreshed), nil
}

func (s *service) Issue(ctx context.Context, id string) (InvoiceResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return InvoiceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	inv, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return InvoiceResponse{}, invoiceerrors.ErrInvoiceNotFound
		}
		return InvoiceResponse{}, err
	}

	if IsTerminal(inv.Status) {
		return InvoiceResponse{}, invoiceerrors.ErrInvoiceTerminal
	}
	if !IsAllowedTransition(inv.Status, StatusIssued) {
		return InvoiceResponse{}, invoiceerrors.ErrInvalidStatusTransition
	}

	itemCount, err := qtx.CountItems(ctx, id)
	if err != nil {
		return InvoiceResponse{}, err
	}
	if itemCount == 0 {
		s.logger.Warn("issue invoice rejected, no items", zap.String("invoice_id", id))
		return InvoiceResponse{}, invoiceerrors.ErrInvoiceHasNoItems
	}

	now := time.Now().UTC()
	inv.Status = StatusIssued
	inv.IssuedAt = &now

	if err := qtx.Update(ctx, inv); err != nil {
		s.logger.Error("issue invoice persist failed", zap.String("invoice_id", id), zap.Error(err))
		return InvoiceResponse{}, err
	}

	if s.outbox != nil {
		event := events.InvoiceIssuedEvent{
			EventType:   "invoice_issued",
			RequestID:   rid,
			InvoiceID:   inv.ID.String(),
			JobID:       inv.JobID.String(),
			Number:      inv.Number,
			Currency:    inv.Currency,
			TotalAmount: inv.TotalAmount,
			OccurredAt:  now,
		}
		if inv.ClientID != nil {
			event.ClientID = inv.ClientID.String()
		}

		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal invoice_issued event failed", zap.Error(err))
			return InvoiceResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "invoice",
			AggregateID:   inv.ID.String(),
			EventType:     event.EventType,
			Topic:         events.InvoiceIssuedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("issue invoice outbox persist failed",
				zap.String("invoice_id", inv.ID.String()),
				zap.Error(err),
			)
			return InvoiceResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("issue invoice commit failed", zap.String("invoice_id", id), zap.Error(err))
		return InvoiceResponse{}, err
	}

	s.logger.Info("issue invoice success",
		zap.String("request_id", rid),
		zap.String("invoice_id", id),
		zap.String("number", inv.Number),
	)
	return mapToResponse(*inv), nil
}

func (s *service) Cancel(ctx context.Context, id string) (InvoiceResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return InvoiceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	inv, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return InvoiceResponse{}, invoiceerrors.ErrInvoiceNotFound
		}
		return InvoiceResponse{}, err
	}

	if IsTerminal(inv.Status) {
		return InvoiceResponse{}, invoiceerrors.ErrInvoiceTerminal
	}
	if !IsAllowedTransition(inv.Status, StatusCancelled) {
		return InvoiceResponse{}, invoiceerrors.ErrInvalidStatusTransition
	}

	inv.Status = StatusCancelled

	if err := qtx.Update(ctx, inv); err != nil {
		s.logger.Error("cancel invoice persist failed", zap.String("invoice_id", id), zap.Error(err))
		return InvoiceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return InvoiceResponse{}, err
	}

	s.logger.Info("cancel invoice success", zap.String("invoice_id", id))
	return mapToResponse(*inv), nil
}

func (s *service) RenderPDF(ctx context.Context, id string) ([]byte, string, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", invoiceerrors.ErrInvoiceNotFound
		}
		return nil, "", err
	}

	pdf, err := buildSimpleInvoicePDF(invoicePDFLines(*inv))
	if err != nil {
		s.logger.Error("render invoice pdf failed", zap.String("invoice_id", id), zap.Error(err))
		return nil, "", err
	}

	filename := fmt.Sprintf("%s.pdf", inv.Number)
	return pdf, filename, nil
}

func parseOptionalID(v *string) (*uuid.UUID, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*v)
	if err != nil {
		return nil, invoiceerrors.ErrInvalidID
	}
	return &id, nil
}

func mapToResponse(inv Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		ID:          inv.ID.String(),
		JobID:       inv.JobID.String(),
		Number:      inv.Number,
		Status:      inv.Status,
		Currency:    inv.Currency,
		TotalAmount: inv.TotalAmount,
		Items:       make([]InvoiceItemResponse, len(inv.Items)),
	}
	if inv.ClientID != nil {
		v := inv.ClientID.String()
		resp.ClientID = &v
	}
	if inv.IssuedAt != nil {
		v := inv.IssuedAt.Format(time.RFC3339)
		resp.IssuedAt = &v
	}
	for i, item := range inv.Items {
		resp.Items[i] = mapItemToResponse(item)
	}
	return resp
}

func mapItemToResponse(item InvoiceItem) InvoiceItemResponse {
	resp := InvoiceItemResponse{
		ID:           item.ID.String(),
		InvoiceID:    item.InvoiceID.String(),
		ProductName:  item.ProductName,
		DocketNumber: item.DocketNumber,
		Qty:          item.Qty,
		UnitPrice:    item.UnitPrice,
		Amount:       item.Amount,
	}
	if item.JobLineID != nil {
		v := item.JobLineID.String()
		resp.JobLineID = &v
	}
	return resp
}

func mapToListResponse(invoices []Invoice) []InvoiceResponse {
	resp := make([]InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		resp[i] = mapToResponse(inv)
	}
	return resp
}
