package entity

import (
	"encoding/json"
	"strings"
)

// Estados canónicos de usuarios y clientes.
//
// Las APIs de recursos y el dashboard envían el estado en formas mixtas:
// booleano, entero (1/0) o cadena ("Activo"/"Inactivo", con mayúsculas
// variables). Internamente solo existen estos dos valores; toda entrada pasa
// por ParseStatus.
const (
	StatusActive   Status = "Activo"
	StatusInactive Status = "Inactivo"
)

// Status estado canónico Activo/Inactivo.
type Status string

// ParseStatus normaliza cualquier codificación de estado observada en la API.
// Regla: Activo ⇔ true, 1 o la cadena "activo" (sin distinguir mayúsculas).
// Todo lo demás (false, 0, "Inactivo", nil, basura) es Inactivo.
func ParseStatus(v any) Status {
	switch s := v.(type) {
	case Status:
		if s == StatusActive {
			return StatusActive
		}
		return StatusInactive
	case bool:
		if s {
			return StatusActive
		}
	case int:
		if s == 1 {
			return StatusActive
		}
	case int64:
		if s == 1 {
			return StatusActive
		}
	case float64:
		// json.Unmarshal entrega números como float64
		if s == 1 {
			return StatusActive
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "activo", "true", "1":
			return StatusActive
		}
	}
	return StatusInactive
}

// IsActive indica si el estado es el canónico Activo.
func (s Status) IsActive() bool {
	return s == StatusActive
}

// UnmarshalJSON acepta bool, número o cadena y normaliza al canónico.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = ParseStatus(raw)
	return nil
}

// MarshalJSON serializa siempre la forma canónica ("Activo"/"Inactivo").
func (s Status) MarshalJSON() ([]byte, error) {
	if s.IsActive() {
		return json.Marshal(string(StatusActive))
	}
	return json.Marshal(string(StatusInactive))
}
