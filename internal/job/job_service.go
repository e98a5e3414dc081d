package job

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-fleetops/internal/events"
	joberrors "go-fleetops/internal/job/errors"
	"go-fleetops/internal/messaging/kafka"
	"go-fleetops/internal/shared/contextutil"
	"go-fleetops/internal/shared/counter"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=job_service.go -destination=mock/job_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateJobRequest) (JobResponse, error)
	GetAll(ctx context.Context) ([]JobResponse, error)
	GetByID(ctx context.Context, id string) (JobResponse, error)
	Update(ctx context.Context, id string, req UpdateJobRequest) (JobResponse, error)
	Transition(ctx context.Context, id, targetStatus string) (JobResponse, error)
	AddLine(ctx context.Context, jobID string, req CreateJobLineRequest) (JobLineResponse, error)
	UpdateLine(ctx context.Context, jobID, lineID string, req UpdateJobLineRequest) (JobLineResponse, error)
	DeleteLine(ctx context.Context, jobID, lineID string) error
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
	l := zap.L().Named("job.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("job.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counterRepo,
		outbox:  outboxRepo,
		logger:  l,
	}
}

func (s *service) Create(ctx context.Context, req CreateJobRequest) (JobResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create job requested",
		zap.String("request_id", rid),
		zap.String("shift_id", req.ShiftID),
	)

	jobDate, err := time.Parse("2006-01-02", req.JobDate)
	if err != nil {
		return JobResponse{}, joberrors.ErrInvalidDateFormat
	}

	shiftID, err := uuid.Parse(req.ShiftID)
	if err != nil {
		return JobResponse{}, joberrors.ErrInvalidID
	}
	clientID, err := parseOptionalID(req.ClientID)
	if err != nil {
		return JobResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create job begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return JobResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.ShiftExists(ctx, req.ShiftID)
	if err != nil {
		s.logger.Error("create job shift lookup failed", zap.Error(err))
		return JobResponse{}, err
	}
	if !exists {
		return JobResponse{}, joberrors.ErrShiftNotFound
	}

	if clientID != nil {
		exists, err := qtx.ClientExists(ctx, *req.ClientID)
		if err != nil {
			s.logger.Error("create job client lookup failed", zap.Error(err))
			return JobResponse{}, err
		}
		if !exists {
			return JobResponse{}, joberrors.ErrClientNotFound
		}
	}

	nextVal, err := s.counter.GetNextValue(ctx, jobDate.Year(), "job_reference")
	if err != nil {
		s.logger.Error("create job reference allocation failed", zap.Error(err))
		return JobResponse{}, err
	}
	reference := fmt.Sprintf("JOB-%d-%06d", jobDate.Year(), nextVal)

	j := &Job{
		ID:        uuid.New(),
		ShiftID:   shiftID,
		ClientID:  clientID,
		JobDate:   jobDate,
		Reference: reference,
		Status:    StatusDraft,
		Notes:     req.Notes,
	}

	if err := qtx.Create(ctx, j); err != nil {
		s.logger.Error("create job persist failed", zap.Error(err))
		return JobResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create job commit failed", zap.String("request_id", rid), zap.Error(err))
		return JobResponse{}, err
	}

	s.logger.Info("create job success",
		zap.String("request_id", rid),
		zap.String("job_id", j.ID.String()),
		zap.String("reference", reference),
	)
	return mapToResponse(*j), nil
}

func (s *service) GetAll(ctx context.Context) ([]JobResponse, error) {
	jobs, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all jobs failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(jobs), nil
}

func (s *service) GetByID(ctx context.Context, id string) (JobResponse, error) {
	j, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return JobResponse{}, joberrors.ErrJobNotFound
		}
		return JobResponse{}, err
	}
	return mapToResponse(*j), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateJobRequest) (JobResponse, error) {
	jobDate, err := time.Parse("2006-01-02", req.JobDate)
	if err != nil {
		return JobResponse{}, joberrors.ErrInvalidDateFormat
	}

	clientID, err := parseOptionalID(req.ClientID)
	if err != nil {
		return JobResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return JobResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	j, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return JobResponse{}, joberrors.ErrJobNotFound
		}
		return JobResponse{}, err
	}

	if IsTerminal(j.Status) {
		return JobResponse{}, joberrors.ErrJobTerminal
	}

	if clientID != nil {
		exists, err := qtx.ClientExists(ctx, *req.ClientID)
		if err != nil {
			return JobResponse{}, err
		}
		if !exists {
			return JobResponse{}, joberrors.ErrClientNotFound
		}
	}

	j.ClientID = clientID
	j.JobDate = jobDate
	j.Notes = req.Notes

	if err := qtx.Update(ctx, j); err != nil {
		s.logger.Error("update job persist failed", zap.String("job_id", id), zap.Error(err))
		return JobResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return JobResponse{}, err
	}

	return mapToResponse(*j), nil
}

// Transition moves the job through its lifecycle. Completing a job also
// verifies every line carries pickup and delivery times and queues the
// job_completed event in the same transaction.
func (s *service) Transition(ctx context.Context, id, targetStatus string) (JobResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("transition job requested",
		zap.String("request_id", rid),
		zap.String("job_id", id),
		zap.String("target_status", targetStatus),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("transition job begin tx failed", zap.Error(err))
		return JobResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	j, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return JobResponse{}, joberrors.ErrJobNotFound
		}
		return JobResponse{}, err
	}

	if IsTerminal(j.Status) {
		return JobResponse{}, joberrors.ErrJobTerminal
	}
	if !IsAllowedTransition(j.Status, targetStatus) {
		s.logger.Warn("transition job invalid",
			zap.String("job_id", id),
			zap.String("from_status", j.Status),
			zap.String("to_status", targetStatus),
		)
		return JobResponse{}, joberrors.ErrInvalidStatusTransition
	}

	if targetStatus == StatusCompleted {
		untimed, err := qtx.CountUntimedLines(ctx, id)
		if err != nil {
			s.logger.Error("transition job line check failed", zap.Error(err))
			return JobResponse{}, err
		}
		if untimed > 0 {
			s.logger.Warn("transition job rejected, untimed lines",
				zap.String("job_id", id),
				zap.Int64("untimed_lines", untimed),
			)
			return JobResponse{}, joberrors.ErrLinesNotTimed
		}
	}

	j.Status = targetStatus

	if err := qtx.Update(ctx, j); err != nil {
		s.logger.Error("transition job persist failed", zap.String("job_id", id), zap.Error(err))
		return JobResponse{}, err
	}

	if targetStatus == StatusCompleted && s.outbox != nil {
		event := events.JobCompletedEvent{
			EventType:  "job_completed",
			RequestID:  rid,
			JobID:      j.ID.String(),
			JobNumber:  j.Reference,
			OccurredAt: time.Now().UTC(),
		}
		if j.ClientID != nil {
			event.ClientID = j.ClientID.String()
		}

		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal job_completed event failed", zap.Error(err))
			return JobResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "job",
			AggregateID:   j.ID.String(),
			EventType:     event.EventType,
			Topic:         events.JobCompletedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("transition job outbox persist failed",
				zap.String("job_id", j.ID.String()),
				zap.Error(err),
			)
			return JobResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("transition job commit failed", zap.String("job_id", id), zap.Error(err))
		return JobResponse{}, err
	}

	s.logger.Info("transition job success",
		zap.String("request_id", rid),
		zap.String("job_id", id),
		zap.String("status", targetStatus),
	)
	return mapToResponse(*j), nil
}

func (s *service) AddLine(ctx context.Context, jobID string, req CreateJobLineRequest) (JobLineResponse, error) {
	pickup, delivery, err := parseLineTimes(req.PickupTime, req.DeliveryTime)
	if err != nil {
		return JobLineResponse{}, err
	}
	productID, driverID, vehicleID, trailerID, err := parseLineRefs(req.ProductID, req.DriverID, req.VehicleID, req.TrailerID)
	if err != nil {
		return JobLineResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return JobLineResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	j, err := qtx.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return JobLineResponse{}, joberrors.ErrJobNotFound
		}
		return JobLineResponse{}, err
	}
	if IsTerminal(j.Status) {
		return JobLineResponse{}, joberrors.ErrJobTerminal
	}

	line := &JobLine{
		ID:           uuid.New(),
		JobID:        j.ID,
		ProductID:    productID,
		DriverID:     driverID,
		VehicleID:    vehicleID,
		TrailerID:    trailerID,
		DocketNumber: req.DocketNumber,
		Quantity:     req.Quantity,
		PickupTime:   pickup,
		DeliveryTime: delivery,
	}

	if err := qtx.CreateLine(ctx, line); err != nil {
		s.logger.Error("add job line persist failed", zap.String("job_id", jobID), zap.Error(err))
		return JobLineResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return JobLineResponse{}, err
	}

	s.logger.Info("add job line success",
		zap.String("job_id", jobID),
		zap.String("line_id", line.ID.String()),
		zap.String("docket_number", line.DocketNumber),
	)
	return mapLineToResponse(*line), nil
}

func (s *service) UpdateLine(ctx context.Context, jobID, lineID string, req UpdateJobLineRequest) (JobLineResponse, error) {
	pickup, delivery, err := parseLineTimes(req.PickupTime, req.DeliveryTime)
	if err != nil {
		return JobLineResponse{}, err
	}
	productID, driverID, vehicleID, trailerID, err := parseLineRefs(req.ProductID, req.DriverID, req.VehicleID, req.TrailerID)
	if err != nil {
		return JobLineResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return JobLineResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	j, err := qtx.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return JobLineResponse{}, joberrors.ErrJobNotFound
		}
		return JobLineResponse{}, err
	}
	if IsTerminal(j.Status) {
		return JobLineResponse{}, joberrors.ErrJobTerminal
	}

	line, err := qtx.FindLineByID(ctx, jobID, lineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return JobLineResponse{}, joberrors.ErrJobLineNotFound
		}
		return JobLineResponse{}, err
	}

	line.ProductID = productID
	line.DriverID = driverID
	line.VehicleID = vehicleID
	line.TrailerID = trailerID
	line.DocketNumber = req.DocketNumber
	line.Quantity = req.Quantity
	line.PickupTime = pickup
	line.DeliveryTime = delivery

	if err := qtx.UpdateLine(ctx, line); err != nil {
		s.logger.Error("update job line persist failed",
			zap.String("job_id", jobID),
			zap.String("line_id", lineID),
			zap.Error(err),
		)
		return JobLineResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return JobLineResponse{}, err
	}

	return mapLineToResponse(*line), nil
}

func (s *service) DeleteLine(ctx context.Context, jobID, lineID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	j, err := qtx.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return joberrors.ErrJobNotFound
		}
		return err
	}
	if IsTerminal(j.Status) {
		return joberrors.ErrJobTerminal
	}

	if err := qtx.DeleteLine(ctx, jobID, lineID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return joberrors.ErrJobLineNotFound
		}
		s.logger.Error("delete job line failed",
			zap.String("job_id", jobID),
			zap.String("line_id", lineID),
			zap.Error(err),
		)
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("delete job line success",
		zap.String("job_id", jobID),
		zap.String("line_id", lineID),
	)
	return nil
}

// parseLineTimes validates the optional pickup/delivery pair. Delivery may
// not precede pickup when both are present.
func parseLineTimes(pickupRaw, deliveryRaw *string) (*time.Time, *time.Time, error) {
	var pickup, delivery *time.Time

	if pickupRaw != nil && *pickupRaw != "" {
		t, err := time.Parse(time.RFC3339, *pickupRaw)
		if err != nil {
			return nil, nil, joberrors.ErrInvalidTimeFormat
		}
		utc := t.UTC()
		pickup = &utc
	}
	if deliveryRaw != nil && *deliveryRaw != "" {
		t, err := time.Parse(time.RFC3339, *deliveryRaw)
		if err != nil {
			return nil, nil, joberrors.ErrInvalidTimeFormat
		}
		utc := t.UTC()
		delivery = &utc
	}

	if pickup != nil && delivery != nil && delivery.Before(*pickup) {
		return nil, nil, joberrors.ErrDeliveryBeforePickup
	}
	return pickup, delivery, nil
}

func parseID(v string) (uuid.UUID, error) {
	id, err := uuid.Parse(v)
	if err != nil {
		return uuid.Nil, joberrors.ErrInvalidID
	}
	return id, nil
}

func parseOptionalID(v *string) (*uuid.UUID, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	id, err := parseID(*v)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseLineRefs(productID, driverID, vehicleID string, trailerID *string) (uuid.UUID, uuid.UUID, uuid.UUID, *uuid.UUID, error) {
	p, err := parseID(productID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, nil, err
	}
	d, err := parseID(driverID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, nil, err
	}
	v, err := parseID(vehicleID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, nil, err
	}
	t, err := parseOptionalID(trailerID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, nil, err
	}
	return p, d, v, t, nil
}

func mapToResponse(j Job) JobResponse {
	resp := JobResponse{
		ID:        j.ID.String(),
		ShiftID:   j.ShiftID.String(),
		JobDate:   j.JobDate.Format("2006-01-02"),
		Reference: j.Reference,
		Status:    j.Status,
		Notes:     j.Notes,
		Lines:     make([]JobLineResponse, len(j.Lines)),
	}
	if j.ClientID != nil {
		v := j.ClientID.String()
		resp.ClientID = &v
	}
	for i, line := range j.Lines {
		resp.Lines[i] = mapLineToResponse(line)
	}
	return resp
}

func mapLineToResponse(line JobLine) JobLineResponse {
	resp := JobLineResponse{
		ID:           line.ID.String(),
		JobID:        line.JobID.String(),
		ProductID:    line.ProductID.String(),
		DriverID:     line.DriverID.String(),
		VehicleID:    line.VehicleID.String(),
		DocketNumber: line.DocketNumber,
		Quantity:     line.Quantity,
	}
	if line.TrailerID != nil {
		v := line.TrailerID.String()
		resp.TrailerID = &v
	}
	if line.PickupTime != nil {
		v := line.PickupTime.Format(time.RFC3339)
		resp.PickupTime = &v
	}
	if line.DeliveryTime != nil {
		v := line.DeliveryTime.Format(time.RFC3339)
		resp.DeliveryTime = &v
	}
	return resp
}

func mapToListResponse(jobs []Job) []JobResponse {
	resp := make([]JobResponse, len(jobs))
	for i, j := range jobs {
		resp[i] = mapToResponse(j)
	}
	return resp
}
