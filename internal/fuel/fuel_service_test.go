package fuel_test

import (
	"context"
	"database/sql"
	"testing"

	"go-fleetops/internal/fuel"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeFuelRepository struct {
	withTxFn        func(tx *sql.Tx) fuel.Repository
	createFn        func(ctx context.Context, fp *fuel.FuelPurchase) error
	findAllFn       func(ctx context.Context) ([]fuel.FuelPurchase, error)
	findByIDFn      func(ctx context.Context, id string) (*fuel.FuelPurchase, error)
	updateFn        func(ctx context.Context, fp *fuel.FuelPurchase) error
	deleteFn        func(ctx context.Context, id string) error
	vehicleExistsFn func(ctx context.Context, vehicleID string) (bool, error)
	driverExistsFn  func(ctx context.Context, driverID string) (bool, error)
}

func (f *fakeFuelRepository) WithTx(tx *sql.Tx) fuel.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeFuelRepository) Create(ctx context.Context, fp *fuel.FuelPurchase) error {
	if f.createFn != nil {
		return f.createFn(ctx, fp)
	}
	return nil
}

func (f *fakeFuelRepository) FindAll(ctx context.Context) ([]fuel.FuelPurchase, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeFuelRepository) FindByID(ctx context.Context, id string) (*fuel.FuelPurchase, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeFuelRepository) Update(ctx context.Context, fp *fuel.FuelPurchase) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, fp)
	}
	return nil
}

func (f *fakeFuelRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeFuelRepository) VehicleExists(ctx context.Context, vehicleID string) (bool, error) {
	if f.vehicleExistsFn != nil {
		return f.vehicleExistsFn(ctx, vehicleID)
	}
	return true, nil
}

func (f *fakeFuelRepository) DriverExists(ctx context.Context, driverID string) (bool, error) {
	if f.driverExistsFn != nil {
		return f.driverExistsFn(ctx, driverID)
	}
	return true, nil
}

type fuelServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service fuel.Service
	repo    *fakeFuelRepository
}

func setupFuelServiceTest(t *testing.T) *fuelServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeFuelRepository{}
	svc := fuel.NewService(db, repo)

	return &fuelServiceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
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

func TestFuelService_Create(t *testing.T) {
	ctx := context.Background()
	vehicleID := uuid.New().String()

	t.Run("success derives total cost", func(t *testing.T) {
		deps := setupFuelServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.createFn = func(ctx context.Context, fp *fuel.FuelPurchase) error {
			// 62.35 L at 1.989 -> 124.01 after rounding
			assert.Equal(t, 124.01, fp.TotalCost)
			assert.Equal(t, uuid.MustParse(vehicleID), fp.VehicleID)
			return nil
		}

		resp, err := deps.service.Create(ctx, fuel.CreateFuelPurchaseRequest{
			VehicleID:     vehicleID,
			FilledAt:      "2026-06-01T08:15:00Z",
			Litres:        62.35,
			PricePerLitre: 1.989,
		})

		assert.NoError(t, err)
		assert.Equal(t, 124.01, resp.TotalCost)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative unknown vehicle", func(t *testing.T) {
		deps := setupFuelServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.vehicleExistsFn = func(ctx context.Context, vid string) (bool, error) {
			return false, nil
		}

		_, err := deps.service.Create(ctx, fuel.CreateFuelPurchaseRequest{
			VehicleID:     vehicleID,
			FilledAt:      "2026-06-01T08:15:00Z",
			Litres:        10,
			PricePerLitre: 2,
		})

		assert.ErrorIs(t, err, fuel.ErrVehicleNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative unknown driver", func(t *testing.T) {
		deps := setupFuelServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		driverID := uuid.New().String()
		deps.repo.driverExistsFn = func(ctx context.Context, did string) (bool, error) {
			return false, nil
		}

		_, err := deps.service.Create(ctx, fuel.CreateFuelPurchaseRequest{
			VehicleID:     vehicleID,
			DriverID:      &driverID,
			FilledAt:      "2026-06-01T08:15:00Z",
			Litres:        10,
			PricePerLitre: 2,
		})

		assert.ErrorIs(t, err, fuel.ErrDriverNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative bad filled_at", func(t *testing.T) {
		deps := setupFuelServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, fuel.CreateFuelPurchaseRequest{
			VehicleID:     vehicleID,
			FilledAt:      "01/06/2026",
			Litres:        10,
			PricePerLitre: 2,
		})

		assert.ErrorIs(t, err, fuel.ErrInvalidTimeFormat)
	})

	t.Run("negative malformed vehicle id", func(t *testing.T) {
		deps := setupFuelServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, fuel.CreateFuelPurchaseRequest{
			VehicleID:     "not-a-uuid",
			FilledAt:      "2026-06-01T08:00:00Z",
			Litres:        10,
			PricePerLitre: 2,
		})

		assert.ErrorIs(t, err, fuel.ErrInvalidID)
	})
}

func TestFuelService_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("success recomputes total cost", func(t *testing.T) {
		deps := setupFuelServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, targetID string) (*fuel.FuelPurchase, error) {
			return &fuel.FuelPurchase{
				ID:            id,
				VehicleID:     uuid.New(),
				Litres:        50,
				PricePerLitre: 2,
				TotalCost:     100,
			}, nil
		}
		deps.repo.updateFn = func(ctx context.Context, fp *fuel.FuelPurchase) error {
			assert.Equal(t, 850.05, fp.TotalCost)
			return nil
		}

		resp, err := deps.service.Update(ctx, id.String(), fuel.UpdateFuelPurchaseRequest{
			FilledAt:      "2026-06-01T08:15:00Z",
			Litres:        45,
			PricePerLitre: 18.89,
		})

		assert.NoError(t, err)
		assert.Equal(t, 850.05, resp.TotalCost)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupFuelServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Update(ctx, id.String(), fuel.UpdateFuelPurchaseRequest{
			FilledAt:      "2026-06-01T08:15:00Z",
			Litres:        10,
			PricePerLitre: 2,
		})

		assert.ErrorIs(t, err, fuel.ErrFuelPurchaseNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}
