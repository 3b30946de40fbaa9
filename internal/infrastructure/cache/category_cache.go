// Package cache caché Redis opcional delante del repositorio de categorías.
// El listado de categorías se lee en cada consulta de chat y en cada búsqueda en lenguaje natural.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Inventario-ai/internal/domain/entity"
	"github.com/jhoicas/Inventario-ai/internal/domain/repository"
	"github.com/jhoicas/Inventario-ai/internal/infrastructure/observability"
	"github.com/jhoicas/Inventario-ai/pkg/config"
	"github.com/jhoicas/Inventario-ai/pkg/logger"
)

const (
	categoryListKey = "inventario:categories:list"
	cacheName       = "categories"
)

var _ repository.CategoryRepository = (*CategoryCache)(nil)

// store subconjunto de redis.Cmdable que usa la caché.
type store interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// CategoryCache cachea List; cualquier escritura invalida la entrada.
// Los errores de Redis nunca se propagan: se registran y se lee del repositorio.
type CategoryCache struct {
	next   repository.CategoryRepository
	client store
	ttl    time.Duration
	log    *logger.Logger
}

// NewClient conecta con Redis y verifica con PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// NewCategoryCache decora next. ttl <= 0 usa 60s.
func NewCategoryCache(next repository.CategoryRepository, client store, ttl time.Duration, log *logger.Logger) *CategoryCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &CategoryCache{next: next, client: client, ttl: ttl, log: log}
}

type cachedCategory struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedBy   string    `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (c *CategoryCache) List(ctx context.Context) ([]*entity.Category, error) {
	val, err := c.client.Get(ctx, categoryListKey).Result()
	switch {
	case err == nil:
		var cached []cachedCategory
		if jsonErr := json.Unmarshal([]byte(val), &cached); jsonErr == nil {
			observability.CacheHits.WithLabelValues(cacheName).Inc()
			out := make([]*entity.Category, 0, len(cached))
			for _, cc := range cached {
				out = append(out, &entity.Category{
					ID: cc.ID, Name: cc.Name, Description: cc.Description,
					CreatedBy: cc.CreatedBy, CreatedAt: cc.CreatedAt,
				})
			}
			return out, nil
		}
		c.log.Warn().Str("key", categoryListKey).Msg("entrada de caché corrupta")
	case errors.Is(err, redis.Nil):
	default:
		c.log.Warn().Err(err).Msg("cache get error")
	}
	observability.CacheMisses.WithLabelValues(cacheName).Inc()

	list, err := c.next.List(ctx)
	if err != nil {
		return nil, err
	}

	cached := make([]cachedCategory, 0, len(list))
	for _, cat := range list {
		cached = append(cached, cachedCategory{
			ID: cat.ID, Name: cat.Name, Description: cat.Description,
			CreatedBy: cat.CreatedBy, CreatedAt: cat.CreatedAt,
		})
	}
	if data, err := json.Marshal(cached); err == nil {
		if err := c.client.Set(ctx, categoryListKey, data, c.ttl).Err(); err != nil {
			c.log.Warn().Err(err).Msg("cache set error")
		}
	}
	return list, nil
}

func (c *CategoryCache) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	return c.next.GetByID(ctx, id)
}

func (c *CategoryCache) Create(ctx context.Context, category *entity.Category) error {
	return c.invalidateAfter(ctx, c.next.Create(ctx, category))
}

func (c *CategoryCache) Update(ctx context.Context, category *entity.Category) error {
	return c.invalidateAfter(ctx, c.next.Update(ctx, category))
}

func (c *CategoryCache) Delete(ctx context.Context, id string) error {
	return c.invalidateAfter(ctx, c.next.Delete(ctx, id))
}

// Invalidate descarta el listado cacheado. Lo usan las escrituras que no pasan por la caché,
// como el borrado transaccional de categorías.
func (c *CategoryCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, categoryListKey).Err(); err != nil {
		c.log.Warn().Err(err).Msg("cache delete error")
	}
}

func (c *CategoryCache) invalidateAfter(ctx context.Context, err error) error {
	if err != nil {
		return err
	}
	c.Invalidate(ctx)
	return nil
}
