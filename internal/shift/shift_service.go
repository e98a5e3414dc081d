package shift

import (
	"context"
	"database/sql"
	"errors"
	"time"

	shifterrors "go-fleetops/internal/shift/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=shift_service.go -destination=mock/shift_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error)
	Start(ctx context.Context, req StartShiftRequest) (ShiftResponse, error)
	End(ctx context.Context, id string, req EndShiftRequest) (ShiftResponse, error)
	Transition(ctx context.Context, id, targetStatus string) (ShiftResponse, error)
	GetAll(ctx context.Context) ([]ShiftResponse, error)
	GetByID(ctx context.Context, id string) (ShiftResponse, error)
	Update(ctx context.Context, id string, req UpdateShiftRequest) (ShiftResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("shift.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("shift.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error) {
	s.logger.Debug("create shift requested", zap.String("driver_id", req.DriverID))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create shift begin tx failed", zap.Error(err))
		return ShiftResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	driverUUID, err := uuid.Parse(req.DriverID)
	if err != nil {
		return ShiftResponse{}, shifterrors.ErrInvalidDriverID
	}

	if _, err := s.requireActiveDriver(ctx, qtx, req.DriverID); err != nil {
		return ShiftResponse{}, err
	}

	startTime := time.Now().UTC()
	if req.StartTime != "" {
		startTime, err = parseTime(req.StartTime)
		if err != nil {
			return ShiftResponse{}, err
		}
	}

	sh := &Shift{
		ID:        uuid.New(),
		DriverID:  driverUUID,
		StartTime: startTime,
		Status:    StatusDraft,
		Notes:     req.Notes,
	}

	if err := qtx.Create(ctx, sh); err != nil {
		s.logger.Error("create shift persist failed", zap.Error(err))
		return ShiftResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create shift commit failed", zap.Error(err))
		return ShiftResponse{}, err
	}

	s.logger.Info("create shift success",
		zap.String("shift_id", sh.ID.String()),
		zap.String("driver_id", req.DriverID),
	)
	return mapToResponse(*sh), nil
}

// Start creates a shift that is immediately ACTIVE. The single-active-shift
// rule is checked inside the same transaction as the insert.
func (s *service) Start(ctx context.Context, req StartShiftRequest) (ShiftResponse, error) {
	s.logger.Debug("start shift requested", zap.String("driver_id", req.DriverID))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("start shift begin tx failed", zap.Error(err))
		return ShiftResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	driverUUID, err := uuid.Parse(req.DriverID)
	if err != nil {
		return ShiftResponse{}, shifterrors.ErrInvalidDriverID
	}

	if _, err := s.requireActiveDriver(ctx, qtx, req.DriverID); err != nil {
		return ShiftResponse{}, err
	}

	onShift, err := qtx.HasActiveShiftForDriver(ctx, req.DriverID, nil)
	if err != nil {
		s.logger.Error("start shift active check failed", zap.Error(err))
		return ShiftResponse{}, err
	}
	if onShift {
		s.logger.Warn("start shift rejected, driver already active",
			zap.String("driver_id", req.DriverID),
		)
		return ShiftResponse{}, shifterrors.ErrDriverAlreadyOnShift
	}

	sh := &Shift{
		ID:        uuid.New(),
		DriverID:  driverUUID,
		StartTime: time.Now().UTC(),
		Status:    StatusActive,
		Notes:     req.Notes,
	}

	if err := qtx.Create(ctx, sh); err != nil {
		s.logger.Error("start shift persist failed", zap.Error(err))
		return ShiftResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("start shift commit failed", zap.Error(err))
		return ShiftResponse{}, err
	}

	s.logger.Info("start shift success",
		zap.String("shift_id", sh.ID.String()),
		zap.String("driver_id", req.DriverID),
	)
	return mapToResponse(*sh), nil
}

func (s *service) End(ctx context.Context, id string, req EndShiftRequest) (ShiftResponse, error) {
	endTime := time.Now().UTC()
	if req.EndTime != nil && *req.EndTime != "" {
		parsed, err := parseTime(*req.EndTime)
		if err != nil {
			return ShiftResponse{}, err
		}
		endTime = parsed
	}
	return s.transitionShift(ctx, id, StatusCompleted, &endTime)
}

func (s *service) Transition(ctx context.Context, id, targetStatus string) (ShiftResponse, error) {
	var endTime *time.Time
	if targetStatus == StatusCompleted {
		now := time.Now().UTC()
		endTime = &now
	}
	return s.transitionShift(ctx, id, targetStatus, endTime)
}

func (s *service) transitionShift(ctx context.Context, id, targetStatus string, endTime *time.Time) (ShiftResponse, error) {
	s.logger.Debug("transition shift requested",
		zap.String("shift_id", id),
		zap.String("target_status", targetStatus),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("transition shift begin tx failed", zap.Error(err))
		return ShiftResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sh, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ShiftResponse{}, shifterrors.ErrShiftNotFound
		}
		return ShiftResponse{}, err
	}

	if IsTerminal(sh.Status) {
		return ShiftResponse{}, shifterrors.ErrShiftTerminal
	}
	if !IsAllowedTransition(sh.Status, targetStatus) {
		s.logger.Warn("transition shift invalid",
			zap.String("shift_id", id),
			zap.String("from_status", sh.Status),
			zap.String("to_status", targetStatus),
		)
		return ShiftResponse{}, shifterrors.ErrInvalidStatusTransition
	}

	switch targetStatus {
	case StatusActive:
		onShift, err := qtx.HasActiveShiftForDriver(ctx, sh.DriverID.String(), strPtr(id))
		if err != nil {
			return ShiftResponse{}, err
		}
		if onShift {
			return ShiftResponse{}, shifterrors.ErrDriverAlreadyOnShift
		}
	case StatusCompleted:
		if endTime == nil {
			now := time.Now().UTC()
			endTime = &now
		}
		if endTime.Before(sh.StartTime) {
			return ShiftResponse{}, shifterrors.ErrEndBeforeStart
		}
		sh.EndTime = endTime
	}

	sh.Status = targetStatus

	if err := qtx.Update(ctx, sh); err != nil {
		s.logger.Error("transition shift persist failed",
			zap.String("shift_id", id),
			zap.String("target_status", targetStatus),
			zap.Error(err),
		)
		return ShiftResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("transition shift commit failed", zap.String("shift_id", id), zap.Error(err))
		return ShiftResponse{}, err
	}

	s.logger.Info("transition shift success",
		zap.String("shift_id", id),
		zap.String("status", targetStatus),
	)
	return mapToResponse(*sh), nil
}

func (s *service) GetAll(ctx context.Context) ([]ShiftResponse, error) {
	shifts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(shifts), nil
}

func (s *service) GetByID(ctx context.Context, id string) (ShiftResponse, error) {
	sh, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ShiftResponse{}, shifterrors.ErrShiftNotFound
		}
		return ShiftResponse{}, err
	}
	return mapToResponse(*sh), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateShiftRequest) (ShiftResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ShiftResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sh, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ShiftResponse{}, shifterrors.ErrShiftNotFound
		}
		return ShiftResponse{}, err
	}

	if IsTerminal(sh.Status) {
		return ShiftResponse{}, shifterrors.ErrShiftTerminal
	}

	startTime, err := parseTime(req.StartTime)
	if err != nil {
		return ShiftResponse{}, err
	}

	var endTime *time.Time
	if req.EndTime != nil && *req.EndTime != "" {
		parsed, err := parseTime(*req.EndTime)
		if err != nil {
			return ShiftResponse{}, err
		}
		if parsed.Before(startTime) {
			return ShiftResponse{}, shifterrors.ErrEndBeforeStart
		}
		endTime = &parsed
	}

	sh.StartTime = startTime
	sh.EndTime = endTime
	sh.Notes = req.Notes

	if err := qtx.Update(ctx, sh); err != nil {
		s.logger.Error("update shift persist failed", zap.String("shift_id", id), zap.Error(err))
		return ShiftResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ShiftResponse{}, err
	}

	return mapToResponse(*sh), nil
}

func (s *service) requireActiveDriver(ctx context.Context, repo Repository, driverID string) (*DriverRef, error) {
	d, err := repo.FindDriver(ctx, driverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shifterrors.ErrDriverNotFound
		}
		s.logger.Error("driver lookup failed", zap.String("driver_id", driverID), zap.Error(err))
		return nil, err
	}
	if !d.Active {
		return nil, shifterrors.ErrDriverInactive
	}
	return d, nil
}

func parseTime(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, shifterrors.ErrInvalidTimeFormat
	}
	return t.UTC(), nil
}

func strPtr(v string) *string {
	return &v
}

func mapToResponse(sh Shift) ShiftResponse {
	resp := ShiftResponse{
		ID:        sh.ID.String(),
		DriverID:  sh.DriverID.String(),
		StartTime: sh.StartTime.Format(time.RFC3339),
		Status:    sh.Status,
		Notes:     sh.Notes,
	}
	if sh.Driver != nil {
		resp.DriverName = sh.Driver.FullName
	}
	if sh.EndTime != nil {
		v := sh.EndTime.Format(time.RFC3339)
		resp.EndTime = &v
	}
	return resp
}

func mapToListResponse(shifts []Shift) []ShiftResponse {
	resp := make([]ShiftResponse, len(shifts))
	for i, sh := range shifts {
		resp[i] = mapToResponse(sh)
	}
	return resp
}
