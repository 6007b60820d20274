package entity

import "fmt"

// Operaciones de sincronización reportadas por el dashboard.
// Los valores coinciden con los que viajan en el cuerpo de la petición.
const (
	OpCreate       SyncOperation = "crear"
	OpUpdate       SyncOperation = "actualizar"
	OpDelete       SyncOperation = "eliminar"
	OpChangeStatus SyncOperation = "cambiarEstado"
)

// SyncOperation qué mutación del recurso primario disparó la sincronización.
// No se persiste; es un valor transitorio del ciclo de reconciliación.
type SyncOperation string

// ParseOperation valida la operación recibida en la petición.
func ParseOperation(s string) (SyncOperation, error) {
	switch SyncOperation(s) {
	case OpCreate, OpUpdate, OpDelete, OpChangeStatus:
		return SyncOperation(s), nil
	}
	return "", fmt.Errorf("operación de sincronización desconocida: %q", s)
}
