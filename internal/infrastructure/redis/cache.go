// Package redis implementa el puerto de caché sobre Redis (valores JSON con TTL).
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/Siparis-api/internal/application/ports"
	"github.com/jhoicas/Siparis-api/pkg/config"
)

var _ ports.Cache = (*Cache)(nil)

// scanBatch claves por iteración de SCAN al invalidar por prefijo.
const scanBatch = 200

// Cache caché de lectura. Todas las claves llevan el namespace de la aplicación.
type Cache struct {
	rdb       *goredis.Client
	namespace string
}

// NewClient conecta y verifica con Ping.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}

// NewCache construye la caché sobre un cliente ya conectado.
func NewCache(rdb *goredis.Client, namespace string) *Cache {
	return &Cache{rdb: rdb, namespace: namespace + ":"}
}

// Get decodifica el JSON guardado en dest. Clave inexistente: (false, nil).
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.rdb.Get(ctx, c.namespace+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decodificar %s: %w", key, err)
	}
	return true, nil
}

// Set guarda value como JSON con expiración ttl.
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.namespace+key, raw, ttl).Err()
}

// DeletePrefix elimina las claves que empiezan por prefix recorriendo con SCAN (sin bloquear con KEYS).
func (c *Cache) DeletePrefix(ctx context.Context, prefix string) error {
	iter := c.rdb.Scan(ctx, 0, c.namespace+prefix+"*", scanBatch).Iterator()
	var batch []string
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == scanBatch {
			if err := c.rdb.Del(ctx, batch...).Err(); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(batch) > 0 {
		return c.rdb.Del(ctx, batch...).Err()
	}
	return nil
}
