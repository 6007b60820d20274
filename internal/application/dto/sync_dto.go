package dto

import (
	"github.com/jhoicas/petstore-sync/internal/domain/entity"
)

// SyncUserRequest petición del dashboard tras mutar un usuario.
// El usuario viaja completo, tal como quedó después de la mutación primaria;
// rol y estado pueden venir en cualquiera de sus codificaciones (la entidad
// los normaliza al deserializar).
type SyncUserRequest struct {
	Operation string       `json:"operacion" validate:"required,oneof=crear actualizar eliminar cambiarEstado"`
	User      *entity.User `json:"usuario" validate:"required"`
}

// SyncCustomerRequest petición del dashboard tras mutar un cliente.
type SyncCustomerRequest struct {
	Operation string           `json:"operacion" validate:"required,oneof=crear actualizar eliminar cambiarEstado"`
	Customer  *entity.Customer `json:"cliente" validate:"required"`
}

// SyncResponse resultado best-effort. Siempre viaja con HTTP 200: un fallo
// de sincronización no es un fallo de la petición.
type SyncResponse struct {
	Synced        bool   `json:"sincronizado"`
	Reason        string `json:"motivo,omitempty"`
	CorrelationID string `json:"idCorrelacion"`
}

// CachedStatusResponse último estado conocido de una entidad según el caché
// de respaldo (continuidad optimista de la UI tras recargas).
type CachedStatusResponse struct {
	Entity string `json:"entidad"`
	ID     string `json:"id"`
	Status string `json:"estado"`
}
