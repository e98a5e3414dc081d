package fuel

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"go-fleetops/internal/shared/apperror"
	"go-fleetops/internal/shared/money"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrFuelPurchaseNotFound = apperror.New(
		apperror.CodeNotFound,
		"fuel purchase not found",
		http.StatusNotFound,
	)
	ErrVehicleNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"vehicle does not exist",
		http.StatusBadRequest,
	)
	ErrDriverNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"driver does not exist",
		http.StatusBadRequest,
	)
	ErrInvalidID = apperror.New(
		apperror.CodeInvalidInput,
		"identifier must be a valid UUID",
		http.StatusBadRequest,
	)
	ErrInvalidTimeFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid filled_at format, expected RFC3339",
		http.StatusBadRequest,
	)
)

//go:generate mockgen -source=fuel_service.go -destination=mock/fuel_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateFuelPurchaseRequest) (FuelPurchaseResponse, error)
	GetAll(ctx context.Context) ([]FuelPurchaseResponse, error)
	GetByID(ctx context.Context, id string) (FuelPurchaseResponse, error)
	Update(ctx context.Context, id string, req UpdateFuelPurchaseRequest) (FuelPurchaseResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("fuel.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("fuel.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateFuelPurchaseRequest) (FuelPurchaseResponse, error) {
	filledAt, err := time.Parse(time.RFC3339, req.FilledAt)
	if err != nil {
		return FuelPurchaseResponse{}, ErrInvalidTimeFormat
	}

	vehicleID, err := uuid.Parse(req.VehicleID)
	if err != nil {
		return FuelPurchaseResponse{}, ErrInvalidID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create fuel purchase begin tx failed", zap.Error(err))
		return FuelPurchaseResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.VehicleExists(ctx, req.VehicleID)
	if err != nil {
		s.logger.Error("create fuel purchase vehicle lookup failed", zap.Error(err))
		return FuelPurchaseResponse{}, err
	}
	if !exists {
		return FuelPurchaseResponse{}, ErrVehicleNotFound
	}

	driverID, err := s.resolveDriver(ctx, qtx, req.DriverID)
	if err != nil {
		return FuelPurchaseResponse{}, err
	}

	// total_cost is always derived here; the client value is ignored.
	fp := &FuelPurchase{
		ID:            uuid.New(),
		VehicleID:     vehicleID,
		DriverID:      driverID,
		FilledAt:      filledAt.UTC(),
		Litres:        req.Litres,
		PricePerLitre: req.PricePerLitre,
		TotalCost:     money.LineAmount(req.Litres, req.PricePerLitre),
		Odometer:      req.Odometer,
	}

	if err := qtx.Create(ctx, fp); err != nil {
		s.logger.Error("create fuel purchase persist failed", zap.Error(err))
		return FuelPurchaseResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create fuel purchase commit failed", zap.Error(err))
		return FuelPurchaseResponse{}, err
	}

	s.logger.Info("create fuel purchase success",
		zap.String("fuel_purchase_id", fp.ID.String()),
		zap.String("vehicle_id", req.VehicleID),
		zap.Float64("total_cost", fp.TotalCost),
	)
	return mapToResponse(*fp), nil
}

func (s *service) GetAll(ctx context.Context) ([]FuelPurchaseResponse, error) {
	purchases, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all fuel purchases failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(purchases), nil
}

func (s *service) GetByID(ctx context.Context, id string) (FuelPurchaseResponse, error) {
	fp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return FuelPurchaseResponse{}, ErrFuelPurchaseNotFound
		}
		return FuelPurchaseResponse{}, err
	}
	return mapToResponse(*fp), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateFuelPurchaseRequest) (FuelPurchaseResponse, error) {
	filledAt, err := time.Parse(time.RFC3339, req.FilledAt)
	if err != nil {
		return FuelPurchaseResponse{}, ErrInvalidTimeFormat
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return FuelPurchaseResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	fp, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return FuelPurchaseResponse{}, ErrFuelPurchaseNotFound
		}
		return FuelPurchaseResponse{}, err
	}

	driverID, err := s.resolveDriver(ctx, qtx, req.DriverID)
	if err != nil {
		return FuelPurchaseResponse{}, err
	}

	fp.DriverID = driverID
	fp.FilledAt = filledAt.UTC()
	fp.Litres = req.Litres
	fp.PricePerLitre = req.PricePerLitre
	fp.TotalCost = money.LineAmount(req.Litres, req.PricePerLitre)
	fp.Odometer = req.Odometer

	if err := qtx.Update(ctx, fp); err != nil {
		s.logger.Error("update fuel purchase persist failed", zap.String("fuel_purchase_id", id), zap.Error(err))
		return FuelPurchaseResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return FuelPurchaseResponse{}, err
	}

	return mapToResponse(*fp), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFuelPurchaseNotFound
		}
		s.logger.Error("delete fuel purchase failed", zap.String("fuel_purchase_id", id), zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("delete fuel purchase success", zap.String("fuel_purchase_id", id))
	return nil
}

func (s *service) resolveDriver(ctx context.Context, repo Repository, driverID *string) (*uuid.UUID, error) {
	if driverID == nil || *driverID == "" {
		return nil, nil
	}

	parsed, err := uuid.Parse(*driverID)
	if err != nil {
		return nil, ErrInvalidID
	}

	exists, err := repo.DriverExists(ctx, *driverID)
	if err != nil {
		s.logger.Error("fuel purchase driver lookup failed", zap.Error(err))
		return nil, err
	}
	if !exists {
		return nil, ErrDriverNotFound
	}

	return &parsed, nil
}

func mapToResponse(fp FuelPurchase) FuelPurchaseResponse {
	resp := FuelPurchaseResponse{
		ID:            fp.ID.String(),
		VehicleID:     fp.VehicleID.String(),
		FilledAt:      fp.FilledAt.Format(time.RFC3339),
		Litres:        fp.Litres,
		PricePerLitre: fp.PricePerLitre,
		TotalCost:     fp.TotalCost,
		Odometer:      fp.Odometer,
	}
	if fp.DriverID != nil {
		v := fp.DriverID.String()
		resp.DriverID = &v
	}
	return resp
}

func mapToListResponse(purchases []FuelPurchase) []FuelPurchaseResponse {
	resp := make([]FuelPurchaseResponse, len(purchases))
	for i, fp := range purchases {
		resp[i] = mapToResponse(fp)
	}
	return resp
}
