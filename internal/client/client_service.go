package client

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"go-fleetops/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrClientNotFound = apperror.New(
	apperror.CodeNotFound,
	"client not found",
	http.StatusNotFound,
)

//go:generate mockgen -source=client_service.go -destination=mock/client_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateClientRequest) (ClientResponse, error)
	GetAll(ctx context.Context) ([]ClientResponse, error)
	GetByID(ctx context.Context, id string) (ClientResponse, error)
	Update(ctx context.Context, id string, req UpdateClientRequest) (ClientResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("client.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("client.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateClientRequest) (ClientResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ClientResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	cl := &Client{
		ID:             uuid.New(),
		Name:           req.Name,
		ContactEmail:   req.ContactEmail,
		ContactPhone:   req.ContactPhone,
		BillingAddress: req.BillingAddress,
	}

	if err := qtx.Create(ctx, cl); err != nil {
		s.logger.Error("create client persist failed", zap.Error(err))
		return ClientResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ClientResponse{}, err
	}

	s.logger.Info("create client success", zap.String("client_id", cl.ID.String()))
	return mapToResponse(*cl), nil
}

func (s *service) GetAll(ctx context.Context) ([]ClientResponse, error) {
	clients, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(clients), nil
}

func (s *service) GetByID(ctx context.Context, id string) (ClientResponse, error) {
	cl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ClientResponse{}, ErrClientNotFound
		}
		return ClientResponse{}, err
	}
	return mapToResponse(*cl), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateClientRequest) (ClientResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ClientResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	cl, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ClientResponse{}, ErrClientNotFound
		}
		return ClientResponse{}, err
	}

	cl.Name = req.Name
	cl.ContactEmail = req.ContactEmail
	cl.ContactPhone = req.ContactPhone
	cl.BillingAddress = req.BillingAddress

	if err := qtx.Update(ctx, cl); err != nil {
		s.logger.Error("update client persist failed", zap.String("client_id", id), zap.Error(err))
		return ClientResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ClientResponse{}, err
	}

	return mapToResponse(*cl), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	return tx.Commit()
}

func mapToResponse(cl Client) ClientResponse {
	resp := ClientResponse{
		ID:             cl.ID.String(),
		Name:           cl.Name,
		ContactEmail:   cl.ContactEmail,
		ContactPhone:   cl.ContactPhone,
		BillingAddress: cl.BillingAddress,
	}
	if !cl.CreatedAt.IsZero() {
		resp.CreatedAt = cl.CreatedAt.Format(time.RFC3339)
	}
	if !cl.UpdatedAt.IsZero() {
		resp.UpdatedAt = cl.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(clients []Client) []ClientResponse {
	resp := make([]ClientResponse, len(clients))
	for i, cl := range clients {
		resp[i] = mapToResponse(cl)
	}
	return resp
}
