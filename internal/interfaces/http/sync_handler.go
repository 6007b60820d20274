package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jhoicas/petstore-sync/internal/application/dto"
	appsync "github.com/jhoicas/petstore-sync/internal/application/sync"
	"github.com/jhoicas/petstore-sync/internal/domain/entity"
	"github.com/jhoicas/petstore-sync/internal/domain/repository"
	"github.com/jhoicas/petstore-sync/pkg/logger"
)

var validate = validator.New()

// SyncHandler maneja las peticiones de sincronización del dashboard.
//
// Las dos rutas de sincronización responden siempre 200 con el resultado
// best-effort en el cuerpo: la mutación primaria ya ocurrió en la API de
// recursos y un fallo aquí no debe leerse como fallo de la petición.
type SyncHandler struct {
	coordinator *appsync.Coordinator
	cache       repository.CacheStore
	log         *logger.Logger
}

// NewSyncHandler construye el handler.
func NewSyncHandler(coordinator *appsync.Coordinator, cache repository.CacheStore, log *logger.Logger) *SyncHandler {
	return &SyncHandler{coordinator: coordinator, cache: cache, log: log}
}

// SyncUser POST /api/sincronizacion/usuarios
func (h *SyncHandler) SyncUser(c *fiber.Ctx) error {
	var in dto.SyncUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	op, err := entity.ParseOperation(in.Operation)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	correlationID := uuid.New().String()
	log := h.log.With().Str("idCorrelacion", correlationID).Logger()
	log.Info().Str("operacion", string(op)).Str("usuario", in.User.ID).Msg("sincronización usuario→cliente solicitada")

	res := h.coordinator.SyncUserToCustomer(c.UserContext(), in.User, op)
	if !res.Synced {
		log.Warn().Str("motivo", res.Reason).Msg("sincronización usuario→cliente no aplicada")
	}
	return c.JSON(dto.SyncResponse{Synced: res.Synced, Reason: res.Reason, CorrelationID: correlationID})
}

// SyncCustomer POST /api/sincronizacion/clientes
func (h *SyncHandler) SyncCustomer(c *fiber.Ctx) error {
	var in dto.SyncCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	op, err := entity.ParseOperation(in.Operation)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	correlationID := uuid.New().String()
	log := h.log.With().Str("idCorrelacion", correlationID).Logger()
	log.Info().Str("operacion", string(op)).Str("cliente", in.Customer.ID).Msg("sincronización cliente→usuario solicitada")

	res := h.coordinator.SyncCustomerToUser(c.UserContext(), in.Customer, op)
	if !res.Synced {
		log.Warn().Str("motivo", res.Reason).Msg("sincronización cliente→usuario no aplicada")
	}
	return c.JSON(dto.SyncResponse{Synced: res.Synced, Reason: res.Reason, CorrelationID: correlationID})
}

// CachedStatus GET /api/sincronizacion/estado/:entidad/:id
// Devuelve el último estado conocido según el caché de respaldo. 404 si la
// entidad nunca pasó por una sincronización.
func (h *SyncHandler) CachedStatus(c *fiber.Ctx) error {
	entidad := c.Params("entidad")
	id := c.Params("id")

	var ns string
	switch entidad {
	case "usuarios":
		ns = repository.NSUserStatus
	case "clientes":
		ns = repository.NSCustomerStatus
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "entidad debe ser usuarios o clientes"})
	}

	value, err := h.cache.Get(c.UserContext(), ns, id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if value == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sin estado en caché para esa entidad"})
	}
	return c.JSON(dto.CachedStatusResponse{Entity: entidad, ID: id, Status: string(value)})
}
