package repository

import (
	"context"

	"github.com/jhoicas/petstore-sync/internal/domain/entity"
)

// UserRepository puerto sobre la API de recursos /usuarios.
// GetByID devuelve (nil, nil) si la cuenta no existe.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	// ChangeStatus usa el PATCH de solo-estado que expone la API.
	ChangeStatus(ctx context.Context, id string, status entity.Status) error
}
