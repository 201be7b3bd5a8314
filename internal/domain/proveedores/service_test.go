package proveedores

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
	items     []Proveedor
	listCalls int
}

func (r *testRepo) List(context.Context) ([]Proveedor, error) {
	r.listCalls++
	return append([]Proveedor(nil), r.items...), nil
}

func (r *testRepo) GetByID(_ context.Context, id int64) (Proveedor, error) {
	for _, p := range r.items {
		if p.ID == id {
			return p, nil
		}
	}
	return Proveedor{}, &httpclient.APIError{StatusCode: http.StatusNotFound}
}

func (r *testRepo) Create(_ context.Context, in Input) (Proveedor, error) {
	p := Proveedor{ID: int64(len(r.items) + 1), Nombre: in.Nombre, NIT: in.NIT, Email: in.Email, Activo: true}
	r.items = append(r.items, p)
	return p, nil
}

func (r *testRepo) Update(_ context.Context, id int64, in Input) (Proveedor, error) {
	for i, p := range r.items {
		if p.ID == id {
			p.Nombre = in.Nombre
			if in.Activo != nil {
				p.Activo = *in.Activo
			}
			r.items[i] = p
			return p, nil
		}
	}
	return Proveedor{}, &httpclient.APIError{StatusCode: http.StatusNotFound}
}

func (r *testRepo) Delete(_ context.Context, id int64) error {
	for i, p := range r.items {
		if p.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return &httpclient.APIError{StatusCode: http.StatusNotFound}
}

func TestProveedores_CRUD(t *testing.T) {
	repo := &testRepo{items: []Proveedor{{ID: 1, Nombre: "Agrovet", NIT: "900123", Activo: true}}}
	svc := NewService(repo, query.New(query.Options{StaleTime: time.Minute}))
	ctx := context.Background()

	_, err := svc.Crear(ctx, Input{Nombre: "  ", NIT: "1", Email: "x"})
	var errs *validate.Errores
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.Campos, "nombre")
	assert.Contains(t, errs.Campos, "email")

	p, err := svc.Crear(ctx, Input{Nombre: "Distrivet", NIT: "800555", Email: "Ventas@Distrivet.co"})
	require.NoError(t, err)
	assert.Equal(t, "ventas@distrivet.co", p.Email)

	inactivo := false
	_, err = svc.Actualizar(ctx, 1, Input{Nombre: "Agrovet SAS", NIT: "900123", Activo: &inactivo})
	require.NoError(t, err)

	todos, err := svc.Listar(ctx, false)
	require.NoError(t, err)
	assert.Len(t, todos, 2)
	activos, err := svc.Listar(ctx, true)
	require.NoError(t, err)
	require.Len(t, activos, 1)
	assert.Equal(t, "Distrivet", activos[0].Nombre)
	assert.Equal(t, 1, repo.listCalls)

	require.NoError(t, svc.Eliminar(ctx, 2))
	assert.ErrorIs(t, svc.Eliminar(ctx, 2), ErrNotFound)
	todos, err = svc.Listar(ctx, false)
	require.NoError(t, err)
	assert.Len(t, todos, 1)
}
