package storage

import "context"

// Local es el almacenamiento clave/valor del proceso (equivalente a localStorage).
// GetItem devuelve ok=false si la clave no existe.
type Local interface {
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}

// Snapshot copia todas las claves del store a un mapa.
func Snapshot(ctx context.Context, s Local) (map[string]string, error) {
	keys, err := s.Keys(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		v, ok, err := s.GetItem(ctx, k)
		if err != nil {
			return nil, err
		}
		if ok {
			out[k] = v
		}
	}
	return out, nil
}
