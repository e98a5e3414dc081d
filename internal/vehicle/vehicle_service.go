package vehicle

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
	ErrVehicleNotFound = apperror.New(
		apperror.CodeNotFound,
		"vehicle not found",
		http.StatusNotFound,
	)
	ErrRegoAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"a vehicle with this rego already exists",
		http.StatusConflict,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrNextDueBeforeService = apperror.New(
		apperror.CodeInvalidInput,
		"next_due must be on or after serviced_at",
		http.StatusBadRequest,
	)
)

//go:generate mockgen -source=vehicle_service.go -destination=mock/vehicle_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateVehicleRequest) (VehicleResponse, error)
	GetAll(ctx context.Context) ([]VehicleResponse, error)
	GetByID(ctx context.Context, id string) (VehicleResponse, error)
	Update(ctx context.Context, id string, req UpdateVehicleRequest) (VehicleResponse, error)
	Delete(ctx context.Context, id string) error
	AddServiceRecord(ctx context.Context, vehicleID string, req CreateServiceRecordRequest) (ServiceRecordResponse, error)
	GetServiceRecords(ctx context.Context, vehicleID string) ([]ServiceRecordResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("vehicle.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("vehicle.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateVehicleRequest) (VehicleResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return VehicleResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	v := &Vehicle{
		ID:        uuid.New(),
		Rego:      strings.ToUpper(strings.TrimSpace(req.Rego)),
		Make:      req.Make,
		Model:     req.Model,
		IsTrailer: req.IsTrailer,
		Odometer:  req.Odometer,
		Active:    true,
	}

	if err := qtx.Create(ctx, v); err != nil {
		s.logger.Error("create vehicle persist failed", zap.Error(err))
		return VehicleResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return VehicleResponse{}, err
	}

	s.logger.Info("create vehicle success",
		zap.String("vehicle_id", v.ID.String()),
		zap.String("rego", v.Rego),
	)
	return mapToResponse(*v), nil
}

func (s *service) GetAll(ctx context.Context) ([]VehicleResponse, error) {
	vehicles, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(vehicles), nil
}

func (s *service) GetByID(ctx context.Context, id string) (VehicleResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return VehicleResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*v), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateVehicleRequest) (VehicleResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return VehicleResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	v, err := qtx.FindByID(ctx, id)
	if err != nil {
		return VehicleResponse{}, mapRepositoryError(err)
	}

	v.Rego = strings.ToUpper(strings.TrimSpace(req.Rego))
	v.Make = req.Make
	v.Model = req.Model
	v.IsTrailer = req.IsTrailer
	v.Odometer = req.Odometer
	if req.Active != nil {
		v.Active = *req.Active
	}

	if err := qtx.Update(ctx, v); err != nil {
		s.logger.Error("update vehicle persist failed", zap.String("vehicle_id", id), zap.Error(err))
		return VehicleResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return VehicleResponse{}, err
	}

	return mapToResponse(*v), nil
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

func (s *service) AddServiceRecord(ctx context.Context, vehicleID string, req CreateServiceRecordRequest) (ServiceRecordResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ServiceRecordResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	v, err := qtx.FindByID(ctx, vehicleID)
	if err != nil {
		return ServiceRecordResponse{}, mapRepositoryError(err)
	}

	servicedAt, err := parseDate(req.ServicedAt)
	if err != nil {
		return ServiceRecordResponse{}, err
	}

	var nextDue *time.Time
	if req.NextDue != nil && *req.NextDue != "" {
		due, err := parseDate(*req.NextDue)
		if err != nil {
			return ServiceRecordResponse{}, err
		}
		if due.Before(servicedAt) {
			return ServiceRecordResponse{}, ErrNextDueBeforeService
		}
		nextDue = &due
	}

	rec := &ServiceRecord{
		ID:         uuid.New(),
		VehicleID:  v.ID,
		ServicedAt: servicedAt,
		Odometer:   req.Odometer,
		Notes:      req.Notes,
		NextDue:    nextDue,
	}

	if err := qtx.CreateServiceRecord(ctx, rec); err != nil {
		s.logger.Error("create service record persist failed",
			zap.String("vehicle_id", vehicleID),
			zap.Error(err),
		)
		return ServiceRecordResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ServiceRecordResponse{}, err
	}

	s.logger.Info("service record added",
		zap.String("vehicle_id", vehicleID),
		zap.String("service_record_id", rec.ID.String()),
	)
	return mapServiceRecordToResponse(*rec), nil
}

func (s *service) GetServiceRecords(ctx context.Context, vehicleID string) ([]ServiceRecordResponse, error) {
	if _, err := s.repo.FindByID(ctx, vehicleID); err != nil {
		return nil, mapRepositoryError(err)
	}

	records, err := s.repo.FindServiceRecordsByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	resp := make([]ServiceRecordResponse, len(records))
	for i, rec := range records {
		resp[i] = mapServiceRecordToResponse(rec)
	}
	return resp, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrVehicleNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_vehicles_rego" {
			return ErrRegoAlreadyExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_vehicles_rego") {
		return ErrRegoAlreadyExists
	}

	return err
}

func mapToResponse(v Vehicle) VehicleResponse {
	resp := VehicleResponse{
		ID:        v.ID.String(),
		Rego:      v.Rego,
		Make:      v.Make,
		Model:     v.Model,
		IsTrailer: v.IsTrailer,
		Odometer:  v.Odometer,
		Active:    v.Active,
	}
	if !v.CreatedAt.IsZero() {
		resp.CreatedAt = v.CreatedAt.Format(time.RFC3339)
	}
	if !v.UpdatedAt.IsZero() {
		resp.UpdatedAt = v.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(vehicles []Vehicle) []VehicleResponse {
	resp := make([]VehicleResponse, len(vehicles))
	for i, v := range vehicles {
		resp[i] = mapToResponse(v)
	}
	return resp
}

func mapServiceRecordToResponse(rec ServiceRecord) ServiceRecordResponse {
	resp := ServiceRecordResponse{
		ID:         rec.ID.String(),
		VehicleID:  rec.VehicleID.String(),
		ServicedAt: rec.ServicedAt.Format("2006-01-02"),
		Odometer:   rec.Odometer,
		Notes:      rec.Notes,
	}
	if rec.NextDue != nil {
		v := rec.NextDue.Format("2006-01-02")
		resp.NextDue = &v
	}
	return resp
}
