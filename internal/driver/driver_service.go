package driver

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"go-fleetops/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrDriverNotFound = apperror.New(
		apperror.CodeNotFound,
		"driver not found",
		http.StatusNotFound,
	)
	ErrLicenceNumberAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"a driver with this licence number already exists",
		http.StatusConflict,
	)
)

//go:generate mockgen -source=driver_service.go -destination=mock/driver_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateDriverRequest) (DriverResponse, error)
	GetAll(ctx context.Context) ([]DriverResponse, error)
	GetByID(ctx context.Context, id string) (DriverResponse, error)
	Update(ctx context.Context, id string, req UpdateDriverRequest) (DriverResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("driver.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("driver.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateDriverRequest) (DriverResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DriverResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	d := &Driver{
		ID:            uuid.New(),
		FullName:      req.FullName,
		LicenceNumber: req.LicenceNumber,
		Phone:         req.Phone,
		Active:        true,
	}

	if err := qtx.Create(ctx, d); err != nil {
		s.logger.Error("create driver persist failed", zap.Error(err))
		return DriverResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return DriverResponse{}, err
	}

	s.logger.Info("create driver success", zap.String("driver_id", d.ID.String()))
	return mapToResponse(*d), nil
}

func (s *service) GetAll(ctx context.Context) ([]DriverResponse, error) {
	drivers, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(drivers), nil
}

func (s *service) GetByID(ctx context.Context, id string) (DriverResponse, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DriverResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*d), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateDriverRequest) (DriverResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DriverResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	d, err := qtx.FindByID(ctx, id)
	if err != nil {
		return DriverResponse{}, mapRepositoryError(err)
	}

	d.FullName = req.FullName
	d.LicenceNumber = req.LicenceNumber
	d.Phone = req.Phone
	if req.Active != nil {
		d.Active = *req.Active
	}

	if err := qtx.Update(ctx, d); err != nil {
		s.logger.Error("update driver persist failed", zap.String("driver_id", id), zap.Error(err))
		return DriverResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return DriverResponse{}, err
	}

	return mapToResponse(*d), nil
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

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrDriverNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_drivers_licence" {
			return ErrLicenceNumberAlreadyExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_drivers_licence") {
		return ErrLicenceNumberAlreadyExists
	}

	return err
}

func mapToResponse(d Driver) DriverResponse {
	resp := DriverResponse{
		ID:            d.ID.String(),
		FullName:      d.FullName,
		LicenceNumber: d.LicenceNumber,
		Phone:         d.Phone,
		Active:        d.Active,
	}
	if !d.CreatedAt.IsZero() {
		resp.CreatedAt = d.CreatedAt.Format(time.RFC3339)
	}
	if !d.UpdatedAt.IsZero() {
		resp.UpdatedAt = d.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(drivers []Driver) []DriverResponse {
	resp := make([]DriverResponse, len(drivers))
	for i, d := range drivers {
		resp[i] = mapToResponse(d)
	}
	return resp
}
