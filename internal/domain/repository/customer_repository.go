package repository

import (
	"context"

	"github.com/jhoicas/petstore-sync/internal/domain/entity"
)

// CustomerRepository puerto sobre la API de recursos /clientes.
//
// Convención: las búsquedas devuelven (nil, nil) cuando el registro no
// existe; la ausencia de un cliente vinculado es un estado válido, no un
// error.
type CustomerRepository interface {
	List(ctx context.Context) ([]*entity.Customer, error)
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	// FindByUserID busca el cliente vinculado a una cuenta de usuario.
	// La API no expone un filtro por idUsuario, así que la implementación
	// REST recorre la colección completa; el puerto lo esconde.
	FindByUserID(ctx context.Context, userID string) (*entity.Customer, error)
	Create(ctx context.Context, customer *entity.Customer) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id string) error
}
