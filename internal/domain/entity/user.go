package entity

import "time"

// User cuenta de acceso a la plataforma (recurso /usuarios).
// Si Role es cliente debe existir un Customer vinculado por UserID; esa
// consistencia la mantiene el sincronizador, no esta entidad.
type User struct {
	ID        string    `json:"id"`
	Role      Role      `json:"rol"`
	Document  string    `json:"documento"`
	Name      string    `json:"nombre"`
	LastName  string    `json:"apellido"`
	Email     string    `json:"correo"`
	Phone     string    `json:"telefono"`
	Address   string    `json:"direccion"`
	Status    Status    `json:"estado"`
	CreatedAt time.Time `json:"fechaCreacion,omitempty"`
}
