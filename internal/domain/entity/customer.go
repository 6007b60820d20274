package entity

import "time"

// Customer registro comercial usado por ventas, mascotas y compras
// (recurso /clientes). UserID es la referencia opcional a la cuenta dueña;
// vacío significa cliente sin cuenta de acceso.
type Customer struct {
	ID        string    `json:"id"`
	UserID    string    `json:"idUsuario,omitempty"`
	Document  string    `json:"documento"`
	Name      string    `json:"nombre"`
	LastName  string    `json:"apellido"`
	Email     string    `json:"correo"`
	Phone     string    `json:"telefono"`
	Address   string    `json:"direccion"`
	Status    Status    `json:"estado"`
	CreatedAt time.Time `json:"fechaCreacion,omitempty"`
}

// ProjectCustomer construye la proyección Customer de un usuario con rol
// cliente: campos de contacto y estado del usuario, vinculada por UserID.
// Si existing no es nil se conservan su ID y fecha de creación para que la
// operación sea un update y no un duplicado.
func ProjectCustomer(u *User, existing *Customer) *Customer {
	c := &Customer{
		UserID:   u.ID,
		Document: u.Document,
		Name:     u.Name,
		LastName: u.LastName,
		Email:    u.Email,
		Phone:    u.Phone,
		Address:  u.Address,
		Status:   ParseStatus(u.Status),
	}
	if existing != nil {
		c.ID = existing.ID
		c.CreatedAt = existing.CreatedAt
	}
	return c
}
