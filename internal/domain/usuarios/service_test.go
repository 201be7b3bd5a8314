package usuarios

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/httpclient"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/query"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/validate"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/ports/auth"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	items     []Usuario
	listCalls int
	setCalls  int
}

func (r *testRepo) List(context.Context) ([]Usuario, error) {
	r.listCalls++
	return append([]Usuario(nil), r.items...), nil
}

func (r *testRepo) Create(_ context.Context, in CrearInput) (Usuario, error) {
	for _, u := range r.items {
		if u.Username == in.Username {
			return Usuario{}, &httpclient.APIError{StatusCode: http.StatusConflict, Message: "duplicado"}
		}
	}
	u := Usuario{ID: int64(len(r.items) + 1), Username: in.Username, Rol: in.Rol, Activo: true}
	r.items = append(r.items, u)
	return u, nil
}

func (r *testRepo) Update(_ context.Context, id int64, in ActualizarInput) (Usuario, error) {
	for i, u := range r.items {
		if u.ID == id {
			u.Nombre, u.Email, u.Rol = in.Nombre, in.Email, in.Rol
			r.items[i] = u
			return u, nil
		}
	}
	return Usuario{}, &httpclient.APIError{StatusCode: http.StatusNotFound}
}

func (r *testRepo) SetActivo(_ context.Context, id int64, activo bool) (Usuario, error) {
	r.setCalls++
	for i, u := range r.items {
		if u.ID == id {
			u.Activo = activo
			r.items[i] = u
			return u, nil
		}
	}
	return Usuario{}, &httpclient.APIError{StatusCode: http.StatusNotFound}
}

func TestCrear(t *testing.T) {
	repo := &testRepo{items: []Usuario{{ID: 1, Username: "admin", Rol: auth.RolAdmin, Activo: true}}}
	svc := NewService(repo, query.New(query.Options{}))
	ctx := context.Background()

	_, err := svc.Crear(ctx, CrearInput{Username: "dr", Password: "corta", Nombre: "X", Email: "x@y.co", Rol: "veterinario"})
	var errs *validate.Errores
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.Campos, "username")
	assert.Contains(t, errs.Campos, "password")

	u, err := svc.Crear(ctx, CrearInput{Username: "drperez", Password: "secreta123", Nombre: "Dr Pérez", Email: "PEREZ@vet.co", Rol: "ROLE_VETERINARIO"})
	require.NoError(t, err)
	assert.Equal(t, auth.RolVeterinario, u.Rol)

	_, err = svc.Crear(ctx, CrearInput{Username: "drperez", Password: "secreta123", Nombre: "Otro", Email: "o@vet.co", Rol: "AUXILIAR"})
	assert.ErrorIs(t, err, ErrDuplicado)
}

func TestVeterinarios_SoloActivos(t *testing.T) {
	repo := &testRepo{items: []Usuario{
		{ID: 1, Rol: auth.RolAdmin, Activo: true},
		{ID: 2, Rol: auth.RolVeterinario, Activo: true},
		{ID: 3, Rol: auth.RolVeterinario, Activo: false},
	}}
	svc := NewService(repo, query.New(query.Options{StaleTime: time.Minute}))

	vets, err := svc.Veterinarios(context.Background())
	require.NoError(t, err)
	require.Len(t, vets, 1)
	assert.Equal(t, int64(2), vets[0].ID)

	_, err = svc.Listar(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)
}

func TestCambiarEstado_NoSeDesactivaASiMismo(t *testing.T) {
	repo := &testRepo{items: []Usuario{{ID: 1, Username: "admin", Activo: true}, {ID: 2, Username: "aux", Activo: true}}}
	svc := NewService(repo, query.New(query.Options{}))
	ctx := session.WithSession(context.Background(), &session.Session{
		Usuario:     auth.Claims{UserID: "1", Rol: auth.RolAdmin},
		Capacidades: session.CapacidadesPorRol(auth.RolAdmin),
	})

	_, err := svc.CambiarEstado(ctx, 1, false)
	assert.ErrorIs(t, err, ErrUsuarioActual)
	assert.Equal(t, 0, repo.setCalls)

	u, err := svc.CambiarEstado(ctx, 2, false)
	require.NoError(t, err)
	assert.False(t, u.Activo)

	_, err = svc.CambiarEstado(ctx, 9, true)
	assert.ErrorIs(t, err, ErrNotFound)
}
