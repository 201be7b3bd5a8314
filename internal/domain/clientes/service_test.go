package clientes

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/httpclient"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/query"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/validate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	items     map[int64]Cliente
	listCalls int
	deleteErr error
	lastInput Input
}

func (r *testRepo) List(context.Context, string) ([]Cliente, error) {
	r.listCalls++
	out := []Cliente{}
	for _, c := range r.items {
		out = append(out, c)
	}
	return out, nil
}

func (r *testRepo) GetByID(_ context.Context, id int64) (Cliente, error) {
	c, ok := r.items[id]
	if !ok {
		return Cliente{}, &httpclient.APIError{StatusCode: http.StatusNotFound}
	}
	return c, nil
}

func (r *testRepo) Create(_ context.Context, in Input) (Cliente, error) {
	r.lastInput = in
	c := Cliente{ID: int64(len(r.items) + 1), Nombres: in.Nombres, Apellidos: in.Apellidos, Email: in.Email}
	r.items[c.ID] = c
	return c, nil
}

func (r *testRepo) Update(_ context.Context, id int64, in Input) (Cliente, error) {
	if _, ok := r.items[id]; !ok {
		return Cliente{}, &httpclient.APIError{StatusCode: http.StatusNotFound}
	}
	r.items[id] = Cliente{ID: id, Nombres: in.Nombres, Apellidos: in.Apellidos}
	return r.items[id], nil
}

func (r *testRepo) Delete(_ context.Context, id int64) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.items, id)
	return nil
}

func valido() Input {
	return Input{
		Nombres:       "Ana",
		Apellidos:     "Gómez",
		TipoDocumento: "cc",
		Documento:     "1020304050",
		Telefono:      "3001234567",
		Email:         " Ana@Example.com ",
	}
}

func TestCrear_NormalizaYValida(t *testing.T) {
	repo := &testRepo{items: map[int64]Cliente{}}
	svc := NewService(repo, query.New(query.Options{StaleTime: time.Minute}))
	ctx := context.Background()

	_, err := svc.Listar(ctx, "")
	require.NoError(t, err)

	c, err := svc.Crear(ctx, valido())
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", c.Email)
	assert.Equal(t, TipoDocumento("CC"), repo.lastInput.TipoDocumento)
	assert.Equal(t, "Ana Gómez", c.NombreCompleto())

	items, err := svc.Listar(ctx, "")
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 2, repo.listCalls)

	bad := valido()
	bad.Documento = "12-3"
	bad.Email = "no-es-email"
	_, err = svc.Crear(ctx, bad)
	var errs *validate.Errores
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.Campos, "documento")
	assert.Contains(t, errs.Campos, "email")
}

func TestEliminar(t *testing.T) {
	repo := &testRepo{items: map[int64]Cliente{1: {ID: 1, Nombres: "Ana"}}}
	svc := NewService(repo, query.New(query.Options{}))
	ctx := context.Background()

	repo.deleteErr = &httpclient.APIError{StatusCode: http.StatusConflict, Message: "tiene pacientes"}
	assert.ErrorIs(t, svc.Eliminar(ctx, 1), ErrTienePacientes)

	repo.deleteErr = &httpclient.APIError{StatusCode: http.StatusNotFound}
	assert.ErrorIs(t, svc.Eliminar(ctx, 1), ErrNotFound)

	repo.deleteErr = nil
	require.NoError(t, svc.Eliminar(ctx, 1))
	_, err := svc.Obtener(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}
