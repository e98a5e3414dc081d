package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go-fleetops/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const settingCacheKeyPrefix = "settings:"

// Well-known keys.
const (
	KeyInvoiceCurrency = "invoice.currency"
)

func settingCacheKey(key string) string {
	return settingCacheKeyPrefix + key
}

var ErrSettingNotFound = apperror.New(
	apperror.CodeNotFound,
	"setting not found",
	http.StatusNotFound,
)

//go:generate mockgen -source=settings_service.go -destination=mock/settings_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context) ([]SettingResponse, error)
	Get(ctx context.Context, key string) (SettingResponse, error)
	Upsert(ctx context.Context, key string, req UpsertSettingRequest) (SettingResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("settings.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("settings.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) GetAll(ctx context.Context) ([]SettingResponse, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all settings failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(items), nil
}

// Get reads through redis; concurrent misses for the same key collapse into
// one DB round trip.
func (s *service) Get(ctx context.Context, key string) (SettingResponse, error) {
	cacheKey := settingCacheKey(key)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp SettingResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		setting, err := s.repo.FindByKey(ctx, key)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSettingNotFound
			}
			return nil, err
		}

		resp := mapToResponse(*setting)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, time.Hour)
			}
		}

		return resp, nil
	})

	if err != nil {
		return SettingResponse{}, err
	}

	return v.(SettingResponse), nil
}

func (s *service) Upsert(ctx context.Context, key string, req UpsertSettingRequest) (SettingResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SettingResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	setting := &Setting{
		ID:    uuid.New(),
		Key:   key,
		Value: req.Value,
	}

	if err := qtx.Upsert(ctx, setting); err != nil {
		s.logger.Error("upsert setting persist failed", zap.String("key", key), zap.Error(err))
		return SettingResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return SettingResponse{}, err
	}

	if s.rdb != nil {
		cacheKey := settingCacheKey(key)
		if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
			s.logger.Error("failed to invalidate setting cache",
				zap.Error(err),
				zap.String("key", cacheKey),
			)
		}
	}

	s.logger.Info("upsert setting success", zap.String("key", key))
	return mapToResponse(*setting), nil
}

func mapToResponse(s Setting) SettingResponse {
	return SettingResponse{
		Key:   s.Key,
		Value: s.Value,
	}
}

func mapToListResponse(items []Setting) []SettingResponse {
	resp := make([]SettingResponse, len(items))
	for i, s := range items {
		resp[i] = mapToResponse(s)
	}
	return resp
}
