package repository

import "context"

// Namespaces del caché de respaldo. Replican las claves que el dashboard
// guarda por entidad: `<entidad>Estados` (id → último estado conocido) y
// `<entidad>Data` (id → último registro conocido).
const (
	NSUserStatus     = "usuarioEstados"
	NSUserData       = "usuarioData"
	NSCustomerStatus = "clienteEstados"
	NSCustomerData   = "clienteData"
)

// CacheStore caché durable de respaldo, clave-valor por namespace.
//
// Se escribe en cada mutación (incluidas las que fallaron contra la API,
// para que la UI conserve el estado optimista) y se lee solo para
// continuidad de presentación. Nunca es fuente de verdad para decisiones
// de sincronización. Get devuelve (nil, nil) si la clave no existe.
type CacheStore interface {
	Get(ctx context.Context, namespace, id string) ([]byte, error)
	Set(ctx context.Context, namespace, id string, value []byte) error
}
