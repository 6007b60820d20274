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

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación del puerto CustomerRepository sobre la API
// REST /clientes.
type CustomerRepo struct {
	client *Client
}

// NewCustomerRepository construye el adaptador.
func NewCustomerRepository(client *Client) *CustomerRepo {
	return &CustomerRepo{client: client}
}

// List trae la colección completa de clientes.
func (r *CustomerRepo) List(ctx context.Context) ([]*entity.Customer, error) {
	var list []*entity.Customer
	if err := r.client.doJSON(ctx, http.MethodGet, "/clientes", nil, &list); err != nil {
		return nil, fmt.Errorf("listar clientes: %w", err)
	}
	return list, nil
}

// GetByID obtiene un cliente por ID. Devuelve (nil, nil) si no existe.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	var c entity.Customer
	err := r.client.doJSON(ctx, http.MethodGet, "/clientes/"+id, nil, &c)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("obtener cliente: %w", err)
	}
	return &c, nil
}

// FindByUserID busca el cliente vinculado a una cuenta.
// La API no tiene filtro por idUsuario: se trae la colección y se recorre.
// Devuelve (nil, nil) si ningún cliente está vinculado a ese usuario.
func (r *CustomerRepo) FindByUserID(ctx context.Context, userID string) (*entity.Customer, error) {
	if userID == "" {
		return nil, nil
	}
	list, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range list {
		if c.UserID == userID {
			return c, nil
		}
	}
	return nil, nil
}

// Create crea un cliente y devuelve el registro con el ID asignado por la API.
func (r *CustomerRepo) Create(ctx context.Context, customer *entity.Customer) (*entity.Customer, error) {
	var created entity.Customer
	if err := r.client.doJSON(ctx, http.MethodPost, "/clientes", customer, &created); err != nil {
		return nil, fmt.Errorf("crear cliente: %w", err)
	}
	if created.ID == "" {
		// Algunas APIs responden el cuerpo vacío en el POST; conservar lo enviado.
		created = *customer
	}
	return &created, nil
}

// Update actualiza un cliente existente.
func (r *CustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	if customer.ID == "" {
		return domain.ErrInvalidInput
	}
	if err := r.client.doJSON(ctx, http.MethodPut, "/clientes/"+customer.ID, customer, nil); err != nil {
		return fmt.Errorf("actualizar cliente: %w", err)
	}
	return nil
}

// Delete elimina un cliente por ID.
func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	if err := r.client.doJSON(ctx, http.MethodDelete, "/clientes/"+id, nil, nil); err != nil {
		return fmt.Errorf("eliminar cliente: %w", err)
	}
	return nil
}
