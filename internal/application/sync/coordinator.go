package sync

import (
	"context"
	"encoding/json"

	"github.com/jhoicas/petstore-sync/internal/domain"
	"github.com/jhoicas/petstore-sync/internal/domain/entity"
	"github.com/jhoicas/petstore-sync/internal/domain/repository"
	"github.com/jhoicas/petstore-sync/pkg/logger"
)

// Motivos de fallo de sincronización (viajan en la respuesta del servicio).
const (
	ReasonMissingID     = "registroSinId"
	ReasonNotCustomer   = "rolNoEsCliente"
	ReasonNoLinkedUser  = "sinUsuarioVinculado"
	ReasonUserNotFound  = "usuarioVinculadoNoExiste"
	ReasonMutationError = "errorDeMutacion"
)

// Coordinator reconcilia el par User/Customer en ambas direcciones.
//
// Invariante que mantiene: toda cuenta con rol cliente tiene exactamente un
// Customer vinculado por UserID y con los mismos campos de contacto y estado.
// Ambos métodos son best-effort: jamás devuelven error; un fallo se reduce a
// SyncResult con Synced=false y la mutación primaria que los disparó queda
// intacta.
type Coordinator struct {
	users     repository.UserRepository
	customers repository.CustomerRepository
	cache     repository.CacheStore
	log       *logger.Logger
}

// NewCoordinator construye el sincronizador. cache puede ser nil (sin respaldo).
func NewCoordinator(users repository.UserRepository, customers repository.CustomerRepository, cache repository.CacheStore, log *logger.Logger) *Coordinator {
	return &Coordinator{users: users, customers: customers, cache: cache, log: log}
}

// SyncUserToCustomer reconcilia la proyección Customer de un usuario mutado.
//
// Tabla de despacho:
//   - crear:         upsert (si ya hay proyección se actualiza, nunca duplica)
//   - actualizar:    update, o create si la proyección no existía (auto-repara
//     un usuario que ganó el rol cliente sin proyección)
//   - eliminar:      delete si existe, si no nada que hacer
//   - cambiarEstado: update de solo estado si existe; create completo si no
//     (backfill)
//
// Un usuario sin rol cliente solo dispara trabajo en actualizar: si conserva
// una proyección vinculada, el descenso de rol la elimina.
func (c *Coordinator) SyncUserToCustomer(ctx context.Context, user *entity.User, op entity.SyncOperation) domain.SyncResult {
	if user == nil || user.ID == "" {
		// Fallo silencioso: la UI que nos invoca no debe bloquearse.
		return domain.SyncFailed(ReasonMissingID)
	}

	linked, err := c.customers.FindByUserID(ctx, user.ID)
	if err != nil {
		// Error de lectura tolerado: se procede como si no hubiera vinculado.
		c.log.Warn().Err(err).Str("usuario", user.ID).Msg("búsqueda de cliente vinculado falló; se asume inexistente")
		linked = nil
	}

	if !user.Role.IsCustomer() {
		if linked != nil && op == entity.OpUpdate {
			// Descenso de rol: la proyección comercial sobra.
			if err := c.customers.Delete(ctx, linked.ID); err != nil {
				return c.customerMutationFailed(ctx, err, "eliminar", entity.ProjectCustomer(user, linked))
			}
			c.log.Info().Str("usuario", user.ID).Str("cliente", linked.ID).Msg("proyección de cliente eliminada por descenso de rol")
			return domain.SyncOK()
		}
		return domain.SyncFailed(ReasonNotCustomer)
	}

	payload := entity.ProjectCustomer(user, linked)

	switch op {
	case entity.OpCreate, entity.OpUpdate:
		if linked != nil {
			if err := c.customers.Update(ctx, payload); err != nil {
				return c.customerMutationFailed(ctx, err, "actualizar", payload)
			}
		} else {
			created, err := c.customers.Create(ctx, payload)
			if err != nil {
				return c.customerMutationFailed(ctx, err, "crear", payload)
			}
			payload = created
		}
	case entity.OpDelete:
		if linked == nil {
			return domain.SyncOK()
		}
		if err := c.customers.Delete(ctx, linked.ID); err != nil {
			return c.customerMutationFailed(ctx, err, "eliminar", payload)
		}
		return domain.SyncOK()
	case entity.OpChangeStatus:
		if linked != nil {
			// Solo estado: el resto de campos del cliente queda como estaba.
			payload = cloneWithStatus(linked, entity.ParseStatus(user.Status))
			if err := c.customers.Update(ctx, payload); err != nil {
				return c.customerMutationFailed(ctx, err, "cambiarEstado", payload)
			}
		} else {
			// Backfill: el usuario con rol cliente nunca tuvo proyección.
			created, err := c.customers.Create(ctx, payload)
			if err != nil {
				return c.customerMutationFailed(ctx, err, "cambiarEstado", payload)
			}
			payload = created
		}
	default:
		return domain.SyncFailed("operación desconocida")
	}

	c.writeCustomerCache(ctx, payload)
	return domain.SyncOK()
}

// SyncCustomerToUser reconcilia la cuenta vinculada tras una mutación directa
// de un cliente (dirección simétrica).
//
// Políticas de esta dirección:
//   - nunca crea cuentas: un Customer no trae credenciales
//   - eliminar un cliente desactiva la cuenta vinculada, no la borra
//   - cambiarEstado propaga el estado tal cual; reactivar un cliente
//     reactiva su cuenta
func (c *Coordinator) SyncCustomerToUser(ctx context.Context, customer *entity.Customer, op entity.SyncOperation) domain.SyncResult {
	if customer == nil || customer.ID == "" {
		return domain.SyncFailed(ReasonMissingID)
	}
	if customer.UserID == "" {
		return domain.SyncFailed(ReasonNoLinkedUser)
	}

	user, err := c.users.GetByID(ctx, customer.UserID)
	if err != nil {
		c.log.Warn().Err(err).Str("cliente", customer.ID).Msg("búsqueda de usuario vinculado falló; se asume inexistente")
		user = nil
	}

	switch op {
	case entity.OpCreate, entity.OpUpdate:
		if user == nil {
			return domain.SyncFailed(ReasonUserNotFound)
		}
		user.Document = customer.Document
		user.Name = customer.Name
		user.LastName = customer.LastName
		user.Email = customer.Email
		user.Phone = customer.Phone
		user.Address = customer.Address
		user.Status = entity.ParseStatus(customer.Status)
		if err := c.users.Update(ctx, user); err != nil {
			return c.userMutationFailed(ctx, err, "actualizar", user)
		}
	case entity.OpDelete:
		if user == nil {
			return domain.SyncOK()
		}
		user.Status = entity.StatusInactive
		if err := c.users.ChangeStatus(ctx, user.ID, entity.StatusInactive); err != nil {
			return c.userMutationFailed(ctx, err, "eliminar", user)
		}
	case entity.OpChangeStatus:
		if user == nil {
			return domain.SyncFailed(ReasonUserNotFound)
		}
		user.Status = entity.ParseStatus(customer.Status)
		if err := c.users.ChangeStatus(ctx, user.ID, user.Status); err != nil {
			return c.userMutationFailed(ctx, err, "cambiarEstado", user)
		}
	default:
		return domain.SyncFailed("operación desconocida")
	}

	c.writeUserCache(ctx, user)
	return domain.SyncOK()
}

// customerMutationFailed registra el diagnóstico, deja el estado pretendido
// en el caché de respaldo (la UI local va adelante del servidor) y reduce el
// error a un SyncResult fallido.
func (c *Coordinator) customerMutationFailed(ctx context.Context, err error, op string, intended *entity.Customer) domain.SyncResult {
	c.log.Error().Err(err).Str("operacion", op).Str("usuario", intended.UserID).Msg("mutación de cliente falló durante sincronización")
	c.writeCustomerCache(ctx, intended)
	return domain.SyncFailed(ReasonMutationError)
}

func (c *Coordinator) userMutationFailed(ctx context.Context, err error, op string, intended *entity.User) domain.SyncResult {
	c.log.Error().Err(err).Str("operacion", op).Str("usuario", intended.ID).Msg("mutación de usuario falló durante sincronización")
	c.writeUserCache(ctx, intended)
	return domain.SyncFailed(ReasonMutationError)
}

func (c *Coordinator) writeCustomerCache(ctx context.Context, customer *entity.Customer) {
	if c.cache == nil || customer == nil {
		return
	}
	id := customer.ID
	if id == "" {
		id = customer.UserID
	}
	if err := c.cache.Set(ctx, repository.NSCustomerStatus, id, []byte(customer.Status)); err != nil {
		c.log.Warn().Err(err).Msg("escritura de estado en caché de respaldo falló")
		return
	}
	if data, err := json.Marshal(customer); err == nil {
		_ = c.cache.Set(ctx, repository.NSCustomerData, id, data)
	}
}

func (c *Coordinator) writeUserCache(ctx context.Context, user *entity.User) {
	if c.cache == nil || user == nil {
		return
	}
	if err := c.cache.Set(ctx, repository.NSUserStatus, user.ID, []byte(user.Status)); err != nil {
		c.log.Warn().Err(err).Msg("escritura de estado en caché de respaldo falló")
		return
	}
	if data, err := json.Marshal(user); err == nil {
		_ = c.cache.Set(ctx, repository.NSUserData, user.ID, data)
	}
}

func cloneWithStatus(c *entity.Customer, status entity.Status) *entity.Customer {
	out := *c
	out.Status = status
	return &out
}
