package entity

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Roles canónicos de usuario.
const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "cliente"
	RoleStaff    Role = "empleado"
	RoleUnknown  Role = ""
)

// IDs numéricos de rol usados por la API de usuarios.
const (
	roleAdminID    = 1
	roleCustomerID = 2
	roleStaffID    = 3
)

// Role rol canónico de un usuario.
//
// La API de usuarios manda el rol a veces como ID numérico (2), a veces como
// cadena numérica ("2") y a veces como nombre ("Cliente"). Comparaciones
// sueltas entre esas formas causaban sincronizaciones omitidas en silencio;
// ParseRole es el único punto de normalización.
type Role string

// ParseRole normaliza cualquier codificación de rol a su forma canónica.
// Un valor no reconocido produce RoleUnknown (nunca error: el sincronizador
// trata rol desconocido como "no es cliente").
func ParseRole(v any) Role {
	switch r := v.(type) {
	case Role:
		return r
	case int:
		return roleFromID(r)
	case int64:
		return roleFromID(int(r))
	case float64:
		return roleFromID(int(r))
	case string:
		s := strings.ToLower(strings.TrimSpace(r))
		if n, err := strconv.Atoi(s); err == nil {
			return roleFromID(n)
		}
		switch s {
		case "admin", "administrador":
			return RoleAdmin
		case "cliente", "customer":
			return RoleCustomer
		case "empleado", "vendedor", "staff":
			return RoleStaff
		}
	}
	return RoleUnknown
}

func roleFromID(id int) Role {
	switch id {
	case roleAdminID:
		return RoleAdmin
	case roleCustomerID:
		return RoleCustomer
	case roleStaffID:
		return RoleStaff
	}
	return RoleUnknown
}

// IsCustomer indica si el rol corresponde a un cliente de la tienda.
func (r Role) IsCustomer() bool {
	return r == RoleCustomer
}

// UnmarshalJSON acepta número o cadena y normaliza al canónico.
func (r *Role) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = ParseRole(raw)
	return nil
}
