package product

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go-fleetops/internal/shared/apperror"
	"go-fleetops/internal/shared/money"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const ProductOptionsKey = "products:options"

var (
	ErrProductNotFound = apperror.New(
		apperror.CodeNotFound,
		"product not found",
		http.StatusNotFound,
	)
	ErrProductCodeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"a product with this code already exists",
		http.StatusConflict,
	)
)

//go:generate mockgen -source=product_service.go -destination=mock/product_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateProductRequest) (ProductResponse, error)
	GetAll(ctx context.Context) ([]ProductResponse, error)
	GetOptions(ctx context.Context) ([]ProductResponse, error)
	GetByID(ctx context.Context, id string) (ProductResponse, error)
	Update(ctx context.Context, id string, req UpdateProductRequest) (ProductResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("product.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("product.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateProductRequest) (ProductResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ProductResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p := &Product{
		ID:        uuid.New(),
		Code:      strings.ToUpper(strings.TrimSpace(req.Code)),
		Name:      req.Name,
		Unit:      req.Unit,
		UnitPrice: money.Round2(req.UnitPrice),
		Active:    true,
	}

	if err := qtx.Create(ctx, p); err != nil {
		s.logger.Error("create product persist failed", zap.Error(err))
		return ProductResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return ProductResponse{}, err
	}

	s.invalidateOptionsCache(ctx)
	s.logger.Info("create product success", zap.String("product_id", p.ID.String()))
	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(products), nil
}

// GetOptions serves the option list job-line forms hit repeatedly: redis
// first, then a singleflight-collapsed DB read that repopulates the cache.
func (s *service) GetOptions(ctx context.Context) ([]ProductResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, ProductOptionsKey).Result(); err == nil {
			var resp []ProductResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(ProductOptionsKey, func() (interface{}, error) {
		products, err := s.repo.FindOptions(ctx)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(products)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, ProductOptionsKey, jsonData, time.Hour)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]ProductResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ProductResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*p), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateProductRequest) (ProductResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ProductResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByID(ctx, id)
	if err != nil {
		return ProductResponse{}, mapRepositoryError(err)
	}

	p.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	p.Name = req.Name
	p.Unit = req.Unit
	p.UnitPrice = money.Round2(req.UnitPrice)
	if req.Active != nil {
		p.Active = *req.Active
	}

	if err := qtx.Update(ctx, p); err != nil {
		s.logger.Error("update product persist failed", zap.String("product_id", id), zap.Error(err))
		return ProductResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return ProductResponse{}, err
	}

	s.invalidateOptionsCache(ctx)
	return mapToResponse(*p), nil
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
	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateOptionsCache(ctx)
	return nil
}

func (s *service) invalidateOptionsCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, ProductOptionsKey).Err(); err != nil {
		s.logger.Error("failed to invalidate product options cache",
			zap.String("key", ProductOptionsKey),
			zap.Error(err),
		)
	}
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProductNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_products_code" {
			return ErrProductCodeAlreadyExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_products_code") {
		return ErrProductCodeAlreadyExists
	}

	return err
}

func mapToResponse(p Product) ProductResponse {
	resp := ProductResponse{
		ID:        p.ID.String(),
		Code:      p.Code,
		Name:      p.Name,
		Unit:      p.Unit,
		UnitPrice: p.UnitPrice,
		Active:    p.Active,
	}
	if !p.CreatedAt.IsZero() {
		resp.CreatedAt = p.CreatedAt.Format(time.RFC3339)
	}
	if !p.UpdatedAt.IsZero() {
		resp.UpdatedAt = p.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(products []Product) []ProductResponse {
	resp := make([]ProductResponse, len(products))
	for i, p := range products {
		resp[i] = mapToResponse(p)
	}
	return resp
}
