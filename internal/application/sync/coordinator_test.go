package sync_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appsync "github.com/jhoicas/petstore-sync/internal/application/sync"
	"github.com/jhoicas/petstore-sync/internal/domain/entity"
	"github.com/jhoicas/petstore-sync/internal/domain/repository"
	"github.com/jhoicas/petstore-sync/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos (API de clientes, API de usuarios, caché)
// ──────────────────────────────────────────────────────────────────────────────

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
	nextID    int

	failList     bool
	failMutation error

	createCalls int
	updateCalls int
	deleteCalls int

	lastCreated *entity.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: map[string]*entity.Customer{}, nextID: 1}
}

func (f *fakeCustomerRepo) List(ctx context.Context) ([]*entity.Customer, error) {
	if f.failList {
		return nil, errors.New("API de clientes caída")
	}
	out := make([]*entity.Customer, 0, len(f.customers))
	for _, c := range f.customers {
		copia := *c
		out = append(out, &copia)
	}
	return out, nil
}

func (f *fakeCustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, nil
	}
	copia := *c
	return &copia, nil
}

func (f *fakeCustomerRepo) FindByUserID(ctx context.Context, userID string) (*entity.Customer, error) {
	if f.failList {
		return nil, errors.New("API de clientes caída")
	}
	for _, c := range f.customers {
		if c.UserID == userID {
			copia := *c
			return &copia, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomerRepo) Create(ctx context.Context, customer *entity.Customer) (*entity.Customer, error) {
	f.createCalls++
	if f.failMutation != nil {
		return nil, f.failMutation
	}
	copia := *customer
	copia.ID = "c-" + strconv.Itoa(f.nextID)
	f.nextID++
	f.customers[copia.ID] = &copia
	f.lastCreated = &copia
	out := copia
	return &out, nil
}

func (f *fakeCustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	f.updateCalls++
	if f.failMutation != nil {
		return f.failMutation
	}
	if _, ok := f.customers[customer.ID]; !ok {
		return fmt.Errorf("cliente %s no existe", customer.ID)
	}
	copia := *customer
	f.customers[copia.ID] = &copia
	return nil
}

func (f *fakeCustomerRepo) Delete(ctx context.Context, id string) error {
	f.deleteCalls++
	if f.failMutation != nil {
		return f.failMutation
	}
	delete(f.customers, id)
	return nil
}

// linkedTo devuelve los clientes vinculados a un usuario (para asertar unicidad).
func (f *fakeCustomerRepo) linkedTo(userID string) []*entity.Customer {
	var out []*entity.Customer
	for _, c := range f.customers {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out
}

type fakeUserRepo struct {
	users        map[string]*entity.User
	failGet      bool
	failMutation error

	updateCalls int
	patchCalls  int
	lastPatch   entity.Status
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if f.failGet {
		return nil, errors.New("API de usuarios caída")
	}
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copia := *u
	return &copia, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	f.updateCalls++
	if f.failMutation != nil {
		return f.failMutation
	}
	copia := *user
	f.users[copia.ID] = &copia
	return nil
}

func (f *fakeUserRepo) ChangeStatus(ctx context.Context, id string, status entity.Status) error {
	f.patchCalls++
	if f.failMutation != nil {
		return f.failMutation
	}
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("usuario %s no existe", id)
	}
	u.Status = status
	f.lastPatch = status
	return nil
}

type fakeCache struct {
	data map[string]map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string]map[string][]byte{}}
}

func (f *fakeCache) Get(ctx context.Context, namespace, id string) ([]byte, error) {
	ns, ok := f.data[namespace]
	if !ok {
		return nil, nil
	}
	return ns[id], nil
}

func (f *fakeCache) Set(ctx context.Context, namespace, id string, value []byte) error {
	if f.data[namespace] == nil {
		f.data[namespace] = map[string][]byte{}
	}
	f.data[namespace][id] = value
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func buildCoordinator() (*appsync.Coordinator, *fakeUserRepo, *fakeCustomerRepo, *fakeCache) {
	users := newFakeUserRepo()
	customers := newFakeCustomerRepo()
	cache := newFakeCache()
	coord := appsync.NewCoordinator(users, customers, cache, logger.Nop())
	return coord, users, customers, cache
}

// usuarioCliente devuelve un usuario con rol cliente y datos completos.
func usuarioCliente(id string) *entity.User {
	return &entity.User{
		ID:       id,
		Role:     entity.RoleCustomer,
		Document: "123",
		Name:     "Ana",
		LastName: "Ruiz",
		Email:    "a@x.com",
		Phone:    "3000000",
		Address:  "Calle 1",
		Status:   entity.StatusActive,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuario → Cliente
// ──────────────────────────────────────────────────────────────────────────────

// Crear dos veces con el mismo usuario nunca deja dos proyecciones vinculadas.
func TestSyncUsuarioACliente_CrearDosVeces_NoDuplica(t *testing.T) {
	coord, _, customers, _ := buildCoordinator()
	u := usuarioCliente("42")

	res1 := coord.SyncUserToCustomer(context.Background(), u, entity.OpCreate)
	res2 := coord.SyncUserToCustomer(context.Background(), u, entity.OpCreate)

	assert.True(t, res1.Synced, "la primera sincronización debe aplicarse")
	assert.True(t, res2.Synced, "la segunda sincronización debe aplicarse (upsert)")
	assert.Len(t, customers.linkedTo("42"), 1,
		"nunca debe haber más de un cliente vinculado al mismo usuario")
	assert.Equal(t, 1, customers.createCalls, "la segunda llamada debe ser update, no create")
}

// Actualizar n veces converge a los campos del usuario y no cambia después.
func TestSyncUsuarioACliente_ActualizarEsIdempotente(t *testing.T) {
	coord, _, customers, _ := buildCoordinator()
	u := usuarioCliente("42")

	for i := 0; i < 3; i++ {
		res := coord.SyncUserToCustomer(context.Background(), u, entity.OpUpdate)
		require.True(t, res.Synced)
	}

	vinculados := customers.linkedTo("42")
	require.Len(t, vinculados, 1)
	c := vinculados[0]
	assert.Equal(t, "123", c.Document)
	assert.Equal(t, "Ana", c.Name)
	assert.Equal(t, "Ruiz", c.LastName)
	assert.Equal(t, "a@x.com", c.Email)
	assert.Equal(t, "3000000", c.Phone)
	assert.Equal(t, "Calle 1", c.Address)
	assert.Equal(t, entity.StatusActive, c.Status)
}

// La primera actualización sin proyección la crea (auto-reparación).
func TestSyncUsuarioACliente_ActualizarSinProyeccion_LaCrea(t *testing.T) {
	coord, _, customers, _ := buildCoordinator()

	res := coord.SyncUserToCustomer(context.Background(), usuarioCliente("7"), entity.OpUpdate)

	assert.True(t, res.Synced)
	assert.Equal(t, 1, customers.createCalls, "sin proyección existente debe crearse una")
	assert.Len(t, customers.linkedTo("7"), 1)
}

// Descenso de rol cliente → empleado con operación actualizar elimina la proyección.
func TestSyncUsuarioACliente_DescensoDeRol_EliminaProyeccion(t *testing.T) {
	coord, _, customers, _ := buildCoordinator()
	u := usuarioCliente("42")
	require.True(t, coord.SyncUserToCustomer(context.Background(), u, entity.OpCreate).Synced)
	require.Len(t, customers.linkedTo("42"), 1)

	u.Role = entity.RoleStaff
	res := coord.SyncUserToCustomer(context.Background(), u, entity.OpUpdate)

	assert.True(t, res.Synced, "eliminar la proyección por descenso de rol es una sincronización exitosa")
	assert.Empty(t, customers.linkedTo("42"), "la proyección debe desaparecer tras el descenso de rol")
}

// Rol no cliente sin operación actualizar: no-op que devuelve fallo suave.
func TestSyncUsuarioACliente_RolNoCliente_NoOp(t *testing.T) {
	coord, _, customers, _ := buildCoordinator()
	u := usuarioCliente("42")
	u.Role = entity.RoleAdmin

	res := coord.SyncUserToCustomer(context.Background(), u, entity.OpCreate)

	assert.False(t, res.Synced)
	assert.Equal(t, appsync.ReasonNotCustomer, res.Reason)
	assert.Zero(t, customers.createCalls, "no debe haber llamadas de mutación")
}

// cambiarEstado con proyección existente cambia solo el estado.
func TestSyncUsuarioACliente_CambiarEstado_SoloEstado(t *testing.T) {
	coord, _, customers, _ := buildCoordinator()
	u := usuarioCliente("42")
	require.True(t, coord.SyncUserToCustomer(context.Background(), u, entity.OpCreate).Synced)

	// El usuario cambió otros campos además del estado; cambiarEstado debe ignorarlos.
	u.Status = entity.StatusInactive
	u.Name = "Otro Nombre"
	res := coord.SyncUserToCustomer(context.Background(), u, entity.OpChangeStatus)

	require.True(t, res.Synced)
	vinculados := customers.linkedTo("42")
	require.Len(t, vinculados, 1)
	c := vinculados[0]
	assert.Equal(t, entity.StatusInactive, c.Status, "el estado debe propagarse")
	assert.Equal(t, "Ana", c.Name, "los demás campos no deben tocarse en cambiarEstado")
	assert.Equal(t, "123", c.Document)
}

// cambiarEstado sin proyección hace backfill con el registro completo.
func TestSyncUsuarioACliente_CambiarEstado_BackfillSinProyeccion(t *testing.T) {
	coord, _, customers, _ := buildCoordinator()
	u := usuarioCliente("42")

	res := coord.SyncUserToCustomer(context.Background(), u, entity.OpChangeStatus)

	require.True(t, res.Synced)
	vinculados := customers.linkedTo("42")
	require.Len(t, vinculados, 1, "debe crearse la proyección faltante")
	c := vinculados[0]
	assert.Equal(t, entity.StatusActive, c.Status)
	assert.Equal(t, "Ana", c.Name, "el backfill lleva todos los campos del usuario")
	assert.Equal(t, "a@x.com", c.Email)
}

// eliminar sin proyección vinculada: nada que reconciliar.
func TestSyncUsuarioACliente_EliminarSinProyeccion_NadaQueHacer(t *testing.T) {
	coord, _, customers, _ := buildCoordinator()

	res := coord.SyncUserToCustomer(context.Background(), usuarioCliente("42"), entity.OpDelete)

	assert.True(t, res.Synced)
	assert.Zero(t, customers.deleteCalls)
}

// eliminar con proyección la borra.
func TestSyncUsuarioACliente_EliminarConProyeccion_LaBorra(t *testing.T) {
	coord, _, customers, _ := buildCoordinator()
	u := usuarioCliente("42")
	require.True(t, coord.SyncUserToCustomer(context.Background(), u, entity.OpCreate).Synced)

	res := coord.SyncUserToCustomer(context.Background(), u, entity.OpDelete)

	assert.True(t, res.Synced)
	assert.Empty(t, customers.linkedTo("42"))
}

// Usuario sin ID: fallo silencioso sin llamadas de red.
func TestSyncUsuarioACliente_SinID_FallaSilenciosa(t *testing.T) {
	coord, _, customers, _ := buildCoordinator()

	res := coord.SyncUserToCustomer(context.Background(), &entity.User{Name: "Ana"}, entity.OpCreate)

	assert.False(t, res.Synced)
	assert.Equal(t, appsync.ReasonMissingID, res.Reason)
	assert.Zero(t, customers.createCalls+customers.updateCalls+customers.deleteCalls,
		"sin ID no debe intentarse ninguna llamada")
}

// Error en la mutación: el sincronizador nunca lo propaga, responde fallo suave.
func TestSyncUsuarioACliente_ErrorDeMutacion_NoPropaga(t *testing.T) {
	coord, _, customers, cache := buildCoordinator()
	customers.failMutation = errors.New("500 del servidor")
	u := usuarioCliente("42")

	res := coord.SyncUserToCustomer(context.Background(), u, entity.OpCreate)

	assert.False(t, res.Synced)
	assert.Equal(t, appsync.ReasonMutationError, res.Reason)

	// El estado pretendido queda en el caché: la UI local va adelante del servidor.
	estado, err := cache.Get(context.Background(), repository.NSCustomerStatus, "42")
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusActive), string(estado),
		"el caché debe conservar el estado optimista aunque la API haya fallado")
}

// Error en la búsqueda del vinculado: se tolera y se procede como inexistente.
func TestSyncUsuarioACliente_ErrorDeLookup_SeToleraYCrea(t *testing.T) {
	coord, _, customers, _ := buildCoordinator()
	customers.failList = true
	u := usuarioCliente("42")

	res := coord.SyncUserToCustomer(context.Background(), u, entity.OpCreate)

	assert.True(t, res.Synced, "el error de lectura no debe impedir la sincronización")
	assert.Equal(t, 1, customers.createCalls)
}

// Escenario del dashboard: usuario 42 con rol "2" (cadena numérica) y estado
// "Activo", operación crear, sin proyección previa → un solo create con todos
// los campos y estado canónico activo.
func TestSyncUsuarioACliente_EscenarioCrearDesdeRolNumerico(t *testing.T) {
	coord, _, customers, _ := buildCoordinator()
	u := &entity.User{
		ID:       "42",
		Role:     entity.ParseRole("2"),
		Document: "123",
		Name:     "Ana",
		LastName: "Ruiz",
		Email:    "a@x.com",
		Phone:    "3000000",
		Address:  "Calle 1",
		Status:   entity.ParseStatus("Activo"),
	}

	res := coord.SyncUserToCustomer(context.Background(), u, entity.OpCreate)

	require.True(t, res.Synced)
	require.Equal(t, 1, customers.createCalls)
	c := customers.lastCreated
	require.NotNil(t, c)
	assert.Equal(t, "42", c.UserID)
	assert.Equal(t, "123", c.Document)
	assert.Equal(t, "Ana", c.Name)
	assert.Equal(t, "Ruiz", c.LastName)
	assert.Equal(t, "a@x.com", c.Email)
	assert.Equal(t, "3000000", c.Phone)
	assert.Equal(t, "Calle 1", c.Address)
	assert.Equal(t, entity.StatusActive, c.Status)
}

// Tras una sincronización exitosa el caché de respaldo guarda estado y registro.
func TestSyncUsuarioACliente_EscribeCacheDeRespaldo(t *testing.T) {
	coord, _, customers, cache := buildCoordinator()
	u := usuarioCliente("42")

	require.True(t, coord.SyncUserToCustomer(context.Background(), u, entity.OpCreate).Synced)

	vinculados := customers.linkedTo("42")
	require.Len(t, vinculados, 1)
	id := vinculados[0].ID

	estado, err := cache.Get(context.Background(), repository.NSCustomerStatus, id)
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusActive), string(estado))

	data, err := cache.Get(context.Background(), repository.NSCustomerData, id)
	require.NoError(t, err)
	var c entity.Customer
	require.NoError(t, json.Unmarshal(data, &c))
	assert.Equal(t, "42", c.UserID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cliente → Usuario (dirección simétrica)
// ──────────────────────────────────────────────────────────────────────────────

func clienteVinculado(userID string) *entity.Customer {
	return &entity.Customer{
		ID:       "c-1",
		UserID:   userID,
		Document: "123",
		Name:     "Ana",
		LastName: "Ruiz",
		Email:    "nuevo@x.com",
		Phone:    "3111111",
		Address:  "Calle 2",
		Status:   entity.StatusActive,
	}
}

func TestSyncClienteAUsuario_ActualizarPropagaContacto(t *testing.T) {
	coord, users, _, _ := buildCoordinator()
	users.users["42"] = usuarioCliente("42")

	res := coord.SyncCustomerToUser(context.Background(), clienteVinculado("42"), entity.OpUpdate)

	require.True(t, res.Synced)
	u := users.users["42"]
	assert.Equal(t, "nuevo@x.com", u.Email)
	assert.Equal(t, "3111111", u.Phone)
	assert.Equal(t, "Calle 2", u.Address)
	assert.Equal(t, entity.RoleCustomer, u.Role, "el rol no se toca en esta dirección")
}

func TestSyncClienteAUsuario_SinUsuarioVinculado_FalloSuave(t *testing.T) {
	coord, _, _, _ := buildCoordinator()
	c := clienteVinculado("")

	res := coord.SyncCustomerToUser(context.Background(), c, entity.OpUpdate)

	assert.False(t, res.Synced)
	assert.Equal(t, appsync.ReasonNoLinkedUser, res.Reason)
}

func TestSyncClienteAUsuario_UsuarioNoExiste_NoCreaCuentas(t *testing.T) {
	coord, users, _, _ := buildCoordinator()

	res := coord.SyncCustomerToUser(context.Background(), clienteVinculado("42"), entity.OpCreate)

	assert.False(t, res.Synced)
	assert.Equal(t, appsync.ReasonUserNotFound, res.Reason)
	assert.Empty(t, users.users, "esta dirección nunca crea cuentas")
}

// Eliminar un cliente desactiva la cuenta vinculada en lugar de borrarla.
func TestSyncClienteAUsuario_EliminarDesactivaCuenta(t *testing.T) {
	coord, users, _, _ := buildCoordinator()
	users.users["42"] = usuarioCliente("42")

	res := coord.SyncCustomerToUser(context.Background(), clienteVinculado("42"), entity.OpDelete)

	require.True(t, res.Synced)
	assert.Equal(t, entity.StatusInactive, users.users["42"].Status)
	assert.Equal(t, 1, users.patchCalls, "debe usarse el PATCH de solo-estado")
}

// Reactivar un cliente reactiva la cuenta (decisión de la dirección simétrica).
func TestSyncClienteAUsuario_CambiarEstadoReactivaCuenta(t *testing.T) {
	coord, users, _, _ := buildCoordinator()
	u := usuarioCliente("42")
	u.Status = entity.StatusInactive
	users.users["42"] = u

	c := clienteVinculado("42")
	c.Status = entity.StatusActive
	res := coord.SyncCustomerToUser(context.Background(), c, entity.OpChangeStatus)

	require.True(t, res.Synced)
	assert.Equal(t, entity.StatusActive, users.users["42"].Status)
}

func TestSyncClienteAUsuario_ErrorDeMutacion_NoPropaga(t *testing.T) {
	coord, users, _, _ := buildCoordinator()
	users.users["42"] = usuarioCliente("42")
	users.failMutation = errors.New("timeout")

	var res = coord.SyncCustomerToUser(context.Background(), clienteVinculado("42"), entity.OpUpdate)

	assert.False(t, res.Synced)
	assert.Equal(t, appsync.ReasonMutationError, res.Reason)
}
