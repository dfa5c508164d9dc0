package ports

import (
	"context"
	"time"
)

// Cache define el puerto de salida para la caché de lectura (Redis u otra).
// Un fallo de caché nunca debe romper la operación: los casos de uso lo registran y siguen.
type Cache interface {
	// Get decodifica el valor en dest. Devuelve false si la clave no existe.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	// DeletePrefix elimina todas las claves que empiezan por prefix.
	DeletePrefix(ctx context.Context, prefix string) error
}

// NopCache caché deshabilitada: nunca encuentra nada y no guarda nada.
type NopCache struct{}

func (NopCache) Get(context.Context, string, any) (bool, error) { return false, nil }
func (NopCache) Set(context.Context, string, any, time.Duration) error { return nil }
func (NopCache) DeletePrefix(context.Context, string) error { return nil }
