package job_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"go-fleetops/internal/events"
	"go-fleetops/internal/job"
	joberrors "go-fleetops/internal/job/errors"
	"go-fleetops/internal/messaging/kafka"
	kafkaMock "go-fleetops/internal/messaging/kafka/mock"
	counterMock "go-fleetops/internal/shared/counter/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type fakeJobRepository struct {
	withTxFn            func(tx *sql.Tx) job.Repository
	createFn            func(ctx context.Context, j *job.Job) error
	findAllFn           func(ctx context.Context) ([]job.Job, error)
	findByIDFn          func(ctx context.Context, id string) (*job.Job, error)
	updateFn            func(ctx context.Context, j *job.Job) error
	shiftExistsFn       func(ctx context.Context, shiftID string) (bool, error)
	clientExistsFn      func(ctx context.Context, clientID string) (bool, error)
	createLineFn        func(ctx context.Context, line *job.JobLine) error
	findLineByIDFn      func(ctx context.Context, jobID, lineID string) (*job.JobLine, error)
	updateLineFn        func(ctx context.Context, line *job.JobLine) error
	deleteLineFn        func(ctx context.Context, jobID, lineID string) error
	countUntimedLinesFn func(ctx context.Context, jobID string) (int64, error)
}

func (f *fakeJobRepository) WithTx(tx *sql.Tx) job.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeJobRepository) Create(ctx context.Context, j *job.Job) error {
	if f.createFn != nil {
		return f.createFn(ctx, j)
	}
	return nil
}

func (f *fakeJobRepository) FindAll(ctx context.Context) ([]job.Job, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeJobRepository) FindByID(ctx context.Context, id string) (*job.Job, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeJobRepository) Update(ctx context.Context, j *job.Job) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, j)
	}
	return nil
}

func (f *fakeJobRepository) ShiftExists(ctx context.Context, shiftID string) (bool, error) {
	if f.shiftExistsFn != nil {
		return f.shiftExistsFn(ctx, shiftID)
	}
	return true, nil
}

func (f *fakeJobRepository) ClientExists(ctx context.Context, clientID string) (bool, error) {
	if f.clientExistsFn != nil {
		return f.clientExistsFn(ctx, clientID)
	}
	return true, nil
}

func (f *fakeJobRepository) CreateLine(ctx context.Context, line *job.JobLine) error {
	if f.createLineFn != nil {
		return f.createLineFn(ctx, line)
	}
	return nil
}

func (f *fakeJobRepository) FindLineByID(ctx context.Context, jobID, lineID string) (*job.JobLine, error) {
	if f.findLineByIDFn != nil {
		return f.findLineByIDFn(ctx, jobID, lineID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeJobRepository) UpdateLine(ctx context.Context, line *job.JobLine) error {
	if f.updateLineFn != nil {
		return f.updateLineFn(ctx, line)
	}
	return nil
}

func (f *fakeJobRepository) DeleteLine(ctx context.Context, jobID, lineID string) error {
	if f.deleteLineFn != nil {
		return f.deleteLineFn(ctx, jobID, lineID)
	}
	return nil
}

func (f *fakeJobRepository) CountUntimedLines(ctx context.Context, jobID string) (int64, error) {
	if f.countUntimedLinesFn != nil {
		return f.countUntimedLinesFn(ctx, jobID)
	}
	return 0, nil
}

type jobServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service job.Service
	repo    *fakeJobRepository
	counter *counterMock.MockRepository
	outbox  *kafkaMock.MockOutboxRepository
}

func setupJobServiceTest(t *testing.T) *jobServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	ctrl := gomock.NewController(t)
	counterRepo := counterMock.NewMockRepository(ctrl)
	outboxRepo := kafkaMock.NewMockOutboxRepository(ctrl)

	repo := &fakeJobRepository{}
	svc := job.NewServiceWithOutbox(db, repo, counterRepo, outboxRepo)

	return &jobServiceDeps{
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

func TestJobService_Create(t *testing.T) {
	ctx := context.Background()
	shiftID := uuid.New().String()

	t.Run("success mints reference from counter", func(t *testing.T) {
		deps := setupJobServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.counter.EXPECT().
			GetNextValue(gomock.Any(), 2026, "job_reference").
			Return(int64(12), nil)

		deps.repo.createFn = func(ctx context.Context, j *job.Job) error {
			assert.Equal(t, "JOB-2026-000012", j.Reference)
			assert.Equal(t, job.StatusDraft, j.Status)
			assert.Equal(t, uuid.MustParse(shiftID), j.ShiftID)
			assert.Nil(t, j.ClientID)
			return nil
		}

		resp, err := deps.service.Create(ctx, job.CreateJobRequest{
			ShiftID: shiftID,
			JobDate: "2026-06-15",
		})

		assert.NoError(t, err)
		assert.Equal(t, "JOB-2026-000012", resp.Reference)
		assert.Equal(t, job.StatusDraft, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative unknown shift", func(t *testing.T) {
		deps := setupJobServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.shiftExistsFn = func(ctx context.Context, sid string) (bool, error) {
			return false, nil
		}

		_, err := deps.service.Create(ctx, job.CreateJobRequest{
			ShiftID: shiftID,
			JobDate: "2026-06-15",
		})

		assert.ErrorIs(t, err, joberrors.ErrShiftNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative unknown client", func(t *testing.T) {
		deps := setupJobServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		clientID := uuid.New().String()
		deps.repo.clientExistsFn = func(ctx context.Context, cid string) (bool, error) {
			assert.Equal(t, clientID, cid)
			return false, nil
		}

		_, err := deps.service.Create(ctx, job.CreateJobRequest{
			ShiftID:  shiftID,
			ClientID: &clientID,
			JobDate:  "2026-06-15",
		})

		assert.ErrorIs(t, err, joberrors.ErrClientNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative bad job date", func(t *testing.T) {
		deps := setupJobServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, job.CreateJobRequest{
			ShiftID: shiftID,
			JobDate: "15/06/2026",
		})

		assert.ErrorIs(t, err, joberrors.ErrInvalidDateFormat)
	})
}

func TestJobService_Transition(t *testing.T) {
	ctx := context.Background()
	jobID := uuid.New().String()
	clientID := uuid.New()

	jobWithStatus := func(status string) *job.Job {
		return &job.Job{
			ID:        uuid.MustParse(jobID),
			ShiftID:   uuid.New(),
			ClientID:  &clientID,
			JobDate:   time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
			Reference: "JOB-2026-000012",
			Status:    status,
		}
	}

	t.Run("success complete queues outbox event", func(t *testing.T) {
		deps := setupJobServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*job.Job, error) {
			return jobWithStatus(job.StatusAssigned), nil
		}
		deps.repo.countUntimedLinesFn = func(ctx context.Context, jid string) (int64, error) {
			assert.Equal(t, jobID, jid)
			return 0, nil
		}
		deps.repo.updateFn = func(ctx context.Context, j *job.Job) error {
			assert.Equal(t, job.StatusCompleted, j.Status)
			return nil
		}

		deps.outbox.EXPECT().
			WithTx(gomock.Any()).
			Return(deps.outbox)
		deps.outbox.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, event kafka.OutboxEvent) error {
				assert.Equal(t, "job", event.AggregateType)
				assert.Equal(t, jobID, event.AggregateID)
				assert.Equal(t, "job_completed", event.EventType)
				assert.Equal(t, events.JobCompletedTopic, event.Topic)
				assert.Equal(t, kafka.OutboxStatusPending, event.Status)

				var payload events.JobCompletedEvent
				assert.NoError(t, json.Unmarshal(event.Payload, &payload))
				assert.Equal(t, jobID, payload.JobID)
				assert.Equal(t, "JOB-2026-000012", payload.JobNumber)
				assert.Equal(t, clientID.String(), payload.ClientID)
				return nil
			})

		resp, err := deps.service.Transition(ctx, jobID, job.StatusCompleted)

		assert.NoError(t, err)
		assert.Equal(t, job.StatusCompleted, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative complete with untimed lines", func(t *testing.T) {
		deps := setupJobServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*job.Job, error) {
			return jobWithStatus(job.StatusAssigned), nil
		}
		deps.repo.countUntimedLinesFn = func(ctx context.Context, jid string) (int64, error) {
			return 2, nil
		}

		_, err := deps.service.Transition(ctx, jobID, job.StatusCompleted)

		assert.ErrorIs(t, err, joberrors.ErrLinesNotTimed)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative draft to completed", func(t *testing.T) {
		deps := setupJobServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*job.Job, error) {
			return jobWithStatus(job.StatusDraft), nil
		}

		_, err := deps.service.Transition(ctx, jobID, job.StatusCompleted)

		assert.ErrorIs(t, err, joberrors.ErrInvalidStatusTransition)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative completed job is terminal", func(t *testing.T) {
		deps := setupJobServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*job.Job, error) {
			return jobWithStatus(job.StatusCompleted), nil
		}

		_, err := deps.service.Transition(ctx, jobID, job.StatusAssigned)

		assert.ErrorIs(t, err, joberrors.ErrJobTerminal)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestJobService_AddLine(t *testing.T) {
	ctx := context.Background()
	jobID := uuid.New().String()

	draftJob := func() *job.Job {
		return &job.Job{
			ID:        uuid.MustParse(jobID),
			ShiftID:   uuid.New(),
			JobDate:   time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
			Reference: "JOB-2026-000012",
			Status:    job.StatusDraft,
		}
	}

	lineReq := func() job.CreateJobLineRequest {
		return job.CreateJobLineRequest{
			ProductID:    uuid.New().String(),
			DriverID:     uuid.New().String(),
			VehicleID:    uuid.New().String(),
			DocketNumber: "DK-4411",
			Quantity:     32.5,
		}
	}

	t.Run("success", func(t *testing.T) {
		deps := setupJobServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*job.Job, error) {
			return draftJob(), nil
		}
		deps.repo.createLineFn = func(ctx context.Context, line *job.JobLine) error {
			assert.Equal(t, uuid.MustParse(jobID), line.JobID)
			assert.Equal(t, "DK-4411", line.DocketNumber)
			assert.Equal(t, 32.5, line.Quantity)
			assert.Nil(t, line.PickupTime)
			return nil
		}

		resp, err := deps.service.AddLine(ctx, jobID, lineReq())

		assert.NoError(t, err)
		assert.Equal(t, "DK-4411", resp.DocketNumber)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative delivery before pickup", func(t *testing.T) {
		deps := setupJobServiceTest(t)
		defer deps.db.Close()

		req := lineReq()
		pickup := "2026-06-15T10:00:00Z"
		delivery := "2026-06-15T09:00:00Z"
		req.PickupTime = &pickup
		req.DeliveryTime = &delivery

		_, err := deps.service.AddLine(ctx, jobID, req)

		assert.ErrorIs(t, err, joberrors.ErrDeliveryBeforePickup)
	})

	t.Run("negative malformed product id", func(t *testing.T) {
		deps := setupJobServiceTest(t)
		defer deps.db.Close()

		req := lineReq()
		req.ProductID = "not-a-uuid"

		_, err := deps.service.AddLine(ctx, jobID, req)

		assert.ErrorIs(t, err, joberrors.ErrInvalidID)
	})

	t.Run("negative terminal job", func(t *testing.T) {
		deps := setupJobServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*job.Job, error) {
			j := draftJob()
			j.Status = job.StatusCancelled
			return j, nil
		}

		_, err := deps.service.AddLine(ctx, jobID, lineReq())

		assert.ErrorIs(t, err, joberrors.ErrJobTerminal)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestJobService_DeleteLine(t *testing.T) {
	ctx := context.Background()
	jobID := uuid.New().String()
	lineID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupJobServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*job.Job, error) {
			return &job.Job{
				ID:        uuid.MustParse(jobID),
				ShiftID:   uuid.New(),
				JobDate:   time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
				Reference: "JOB-2026-000012",
				Status:    job.StatusDraft,
			}, nil
		}
		deleted := false
		deps.repo.deleteLineFn = func(ctx context.Context, jid, lid string) error {
			assert.Equal(t, jobID, jid)
			assert.Equal(t, lineID, lid)
			deleted = true
			return nil
		}

		err := deps.service.DeleteLine(ctx, jobID, lineID)

		assert.NoError(t, err)
		assert.True(t, deleted)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative line not found", func(t *testing.T) {
		deps := setupJobServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*job.Job, error) {
			return &job.Job{
				ID:      uuid.MustParse(jobID),
				ShiftID: uuid.New(),
				JobDate: time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
				Status:  job.StatusDraft,
			}, nil
		}
		deps.repo.deleteLineFn = func(ctx context.Context, jid, lid string) error {
			return gorm.ErrRecordNotFound
		}

		err := deps.service.DeleteLine(ctx, jobID, lineID)

		assert.ErrorIs(t, err, joberrors.ErrJobLineNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}
