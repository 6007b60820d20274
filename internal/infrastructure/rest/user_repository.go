package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jhoicas/petstore-sync/internal/domain"
	"github.com/jhoicas/petstore-sync/internal/domain/entity"
	"github.com/jhoicas/petstore-sync/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre la API REST /usuarios.
type UserRepo struct {
	client *Client
}

// NewUserRepository construye el adaptador.
func NewUserRepository(client *Client) *UserRepo {
	return &UserRepo{client: client}
}

// GetByID obtiene una cuenta por ID. Devuelve (nil, nil) si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var u entity.User
	err := r.client.doJSON(ctx, http.MethodGet, "/usuarios/"+id, nil, &u)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("obtener usuario: %w", err)
	}
	return &u, nil
}

// Update actualiza la cuenta completa.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	if user.ID == "" {
		return domain.ErrInvalidInput
	}
	if err := r.client.doJSON(ctx, http.MethodPut, "/usuarios/"+user.ID, user, nil); err != nil {
		return fmt.Errorf("actualizar usuario: %w", err)
	}
	return nil
}

// ChangeStatus cambia solo el estado usando el PATCH dedicado de la API.
func (r *UserRepo) ChangeStatus(ctx context.Context, id string, status entity.Status) error {
	body := map[string]entity.Status{"estado": status}
	if err := r.client.doJSON(ctx, http.MethodPatch, "/usuarios/"+id+"/estado", body, nil); err != nil {
		return fmt.Errorf("cambiar estado de usuario: %w", err)
	}
	return nil
}
