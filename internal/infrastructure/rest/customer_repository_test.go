package rest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/petstore-sync/internal/domain/entity"
	"github.com/jhoicas/petstore-sync/internal/infrastructure/rest"
)

func newTestClient(t *testing.T, handler http.Handler) (*rest.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := rest.NewClient(rest.Options{
		BaseURL:    srv.URL,
		Timeout:    2 * time.Second,
		MaxRetries: 3,
	})
	return client, srv
}

// FindByUserID recorre la colección completa porque la API no tiene filtro
// por idUsuario.
func TestCustomerRepo_FindByUserID_RecorreLaColeccion(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /clientes", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]*entity.Customer{
			{ID: "c-1", UserID: "7", Name: "Luis"},
			{ID: "c-2", UserID: "42", Name: "Ana"},
		})
	})
	client, _ := newTestClient(t, mux)
	repo := rest.NewCustomerRepository(client)

	c, err := repo.FindByUserID(context.Background(), "42")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "c-2", c.ID)

	c, err = repo.FindByUserID(context.Background(), "99")
	require.NoError(t, err)
	assert.Nil(t, c, "sin vinculado debe devolver (nil, nil)")
}

// Estados mixtos en el listado (booleano, entero, cadena) se normalizan al
// deserializar.
func TestCustomerRepo_List_NormalizaEstadosMixtos(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /clientes", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id":"c-1","estado":true},
			{"id":"c-2","estado":1},
			{"id":"c-3","estado":"Activo"},
			{"id":"c-4","estado":0}
		]`))
	})
	client, _ := newTestClient(t, mux)
	repo := rest.NewCustomerRepository(client)

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, entity.StatusActive, list[0].Status)
	assert.Equal(t, entity.StatusActive, list[1].Status)
	assert.Equal(t, entity.StatusActive, list[2].Status)
	assert.Equal(t, entity.StatusInactive, list[3].Status)
}

// Un 404 en GET por id es (nil, nil), no error.
func TestCustomerRepo_GetByID_NoExiste(t *testing.T) {
	client, _ := newTestClient(t, http.NotFoundHandler())
	repo := rest.NewCustomerRepository(client)

	c, err := repo.GetByID(context.Background(), "no-existe")
	require.NoError(t, err)
	assert.Nil(t, c)
}

// Los 5xx se reintentan en la capa de transporte; el tercer intento responde.
func TestCustomerRepo_Create_Reintenta5xx(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("POST /clientes", func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		var c entity.Customer
		_ = json.NewDecoder(r.Body).Decode(&c)
		c.ID = "c-9"
		_ = json.NewEncoder(w).Encode(&c)
	})
	client, _ := newTestClient(t, mux)
	repo := rest.NewCustomerRepository(client)

	created, err := repo.Create(context.Background(), &entity.Customer{UserID: "42", Name: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, "c-9", created.ID)
	assert.Equal(t, int32(3), calls.Load(), "dos 502 y un éxito")
}

// Un 4xx es definitivo: sin reintentos.
func TestCustomerRepo_Update_NoReintenta4xx(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /clientes/c-1", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnprocessableEntity)
	})
	client, _ := newTestClient(t, mux)
	repo := rest.NewCustomerRepository(client)

	err := repo.Update(context.Background(), &entity.Customer{ID: "c-1"})
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load(), "un 422 no debe reintentarse")
}

// El PATCH de solo-estado de usuarios manda únicamente el campo estado.
func TestUserRepo_ChangeStatus_PatchSoloEstado(t *testing.T) {
	var body map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /usuarios/42/estado", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusOK)
	})
	client, _ := newTestClient(t, mux)
	repo := rest.NewUserRepository(client)

	err := repo.ChangeStatus(context.Background(), "42", entity.StatusInactive)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"estado": "Inactivo"}, body)
}
