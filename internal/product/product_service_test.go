package product_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-fleetops/internal/product"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeProductRepository struct {
	withTxFn      func(tx *sql.Tx) product.Repository
	createFn      func(ctx context.Context, p *product.Product) error
	findAllFn     func(ctx context.Context) ([]product.Product, error)
	findOptionsFn func(ctx context.Context) ([]product.Product, error)
	findByIDFn    func(ctx context.Context, id string) (*product.Product, error)
	updateFn      func(ctx context.Context, p *product.Product) error
	deleteFn      func(ctx context.Context, id string) error
}

func (f *fakeProductRepository) WithTx(tx *sql.Tx) product.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeProductRepository) Create(ctx context.Context, p *product.Product) error {
	if f.createFn != nil {
		return f.createFn(ctx, p)
	}
	return nil
}

func (f *fakeProductRepository) FindAll(ctx context.Context) ([]product.Product, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeProductRepository) FindOptions(ctx context.Context) ([]product.Product, error) {
	if f.findOptionsFn != nil {
		return f.findOptionsFn(ctx)
	}
	return nil, nil
}

func (f *fakeProductRepository) FindByID(ctx context.Context, id string) (*product.Product, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProductRepository) Update(ctx context.Context, p *product.Product) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, p)
	}
	return nil
}

func (f *fakeProductRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type productServiceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	repo      *fakeProductRepository
	redismock redismock.ClientMock
	service   product.Service
}

func setupProductServiceTest(t *testing.T) *productServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	dbRedis, redisMock := redismock.NewClientMock()
	repo := &fakeProductRepository{}
	svc := product.NewService(db, repo, dbRedis)

	return &productServiceDeps{
		db:        db,
		sqlMock:   sqlMock,
		repo:      repo,
		redismock: redisMock,
		service:   svc,
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

func TestProductService_Create(t *testing.T) {
	t.Run("success normalizes code and rounds price", func(t *testing.T) {
		deps := setupProductServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		var created *product.Product
		deps.repo.createFn = func(ctx context.Context, p *product.Product) error {
			created = p
			return nil
		}
		deps.redismock.ExpectDel(product.ProductOptionsKey).SetVal(1)

		resp, err := deps.service.Create(context.Background(), product.CreateProductRequest{
			Code:      "  sand ",
			Name:      "Washed Sand",
			Unit:      "TONNE",
			UnitPrice: 18.885,
		})

		assert.NoError(t, err)
		assert.Equal(t, "SAND", created.Code)
		assert.Equal(t, 18.89, created.UnitPrice)
		assert.True(t, resp.Active)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate code", func(t *testing.T) {
		deps := setupProductServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.createFn = func(ctx context.Context, p *product.Product) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_products_code"}
		}

		_, err := deps.service.Create(context.Background(), product.CreateProductRequest{
			Code:      "SAND",
			Name:      "Washed Sand",
			Unit:      "TONNE",
			UnitPrice: 18.89,
		})

		assert.ErrorIs(t, err, product.ErrProductCodeAlreadyExists)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestProductService_GetOptions(t *testing.T) {
	t.Run("cache hit skips repository", func(t *testing.T) {
		deps := setupProductServiceTest(t)
		defer deps.db.Close()

		cached := []product.ProductResponse{
			{ID: uuid.NewString(), Code: "SAND", Name: "Washed Sand", UnitPrice: 18.89, Active: true},
		}
		jsonResp, _ := json.Marshal(cached)
		deps.redismock.ExpectGet(product.ProductOptionsKey).SetVal(string(jsonResp))

		repoCalls := 0
		deps.repo.findOptionsFn = func(ctx context.Context) ([]product.Product, error) {
			repoCalls++
			return nil, nil
		}

		resp, err := deps.service.GetOptions(context.Background())

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "SAND", resp[0].Code)
		assert.Zero(t, repoCalls)
	})

	t.Run("cache miss reads DB and repopulates", func(t *testing.T) {
		deps := setupProductServiceTest(t)
		defer deps.db.Close()

		deps.redismock.ExpectGet(product.ProductOptionsKey).RedisNil()

		deps.repo.findOptionsFn = func(ctx context.Context) ([]product.Product, error) {
			return []product.Product{
				{ID: uuid.New(), Code: "GRAVEL", Name: "Road Gravel", Unit: "TONNE", UnitPrice: 24.50, Active: true},
			}, nil
		}

		deps.redismock.Regexp().ExpectSet(product.ProductOptionsKey, `.*GRAVEL.*`, time.Hour).SetVal("OK")

		resp, err := deps.service.GetOptions(context.Background())

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "GRAVEL", resp[0].Code)
	})

	t.Run("database error surfaces", func(t *testing.T) {
		deps := setupProductServiceTest(t)
		defer deps.db.Close()

		deps.redismock.ExpectGet(product.ProductOptionsKey).RedisNil()
		deps.repo.findOptionsFn = func(ctx context.Context) ([]product.Product, error) {
			return nil, errors.New("db connection error")
		}

		resp, err := deps.service.GetOptions(context.Background())

		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestProductService_Update(t *testing.T) {
	t.Run("success invalidates options cache", func(t *testing.T) {
		deps := setupProductServiceTest(t)
		defer deps.db.Close()

		id := uuid.New()
		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, lookupID string) (*product.Product, error) {
			assert.Equal(t, id.String(), lookupID)
			return &product.Product{ID: id, Code: "SAND", Name: "Washed Sand", Unit: "TONNE", UnitPrice: 18.89, Active: true}, nil
		}

		var updated *product.Product
		deps.repo.updateFn = func(ctx context.Context, p *product.Product) error {
			updated = p
			return nil
		}
		deps.redismock.ExpectDel(product.ProductOptionsKey).SetVal(1)

		inactive := false
		resp, err := deps.service.Update(context.Background(), id.String(), product.UpdateProductRequest{
			Code:      "SAND",
			Name:      "Washed Sand Fine",
			Unit:      "TONNE",
			UnitPrice: 19.10,
			Active:    &inactive,
		})

		assert.NoError(t, err)
		assert.Equal(t, "Washed Sand Fine", updated.Name)
		assert.False(t, updated.Active)
		assert.False(t, resp.Active)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupProductServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*product.Product, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.Update(context.Background(), uuid.NewString(), product.UpdateProductRequest{
			Code:      "SAND",
			Name:      "Washed Sand",
			Unit:      "TONNE",
			UnitPrice: 18.89,
		})

		assert.ErrorIs(t, err, product.ErrProductNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}
