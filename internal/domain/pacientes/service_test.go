package pacientes

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/httpclient"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/query"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/validate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	mu        sync.Mutex
	byID      map[int64]Paciente
	nextID    int64
	listCalls int
	creates   int
}

func newTestRepo(ps ...Paciente) *testRepo {
	r := &testRepo{byID: map[int64]Paciente{}, nextID: 100}
	for _, p := range ps {
		r.byID[p.ID] = p
	}
	return r
}

func (r *testRepo) List(_ context.Context, q string) ([]Paciente, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	out := []Paciente{}
	for _, p := range r.byID {
		out = append(out, p)
	}
	return out, nil
}

func (r *testRepo) ListByCliente(_ context.Context, clienteID int64) ([]Paciente, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []Paciente{}
	for _, p := range r.byID {
		if p.ClienteID == clienteID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *testRepo) GetByID(_ context.Context, id int64) (Paciente, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return Paciente{}, &httpclient.APIError{StatusCode: http.StatusNotFound, Message: "Paciente no encontrado"}
	}
	return p, nil
}

func (r *testRepo) Create(_ context.Context, in Input) (Paciente, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	p := Paciente{ID: r.nextID, Nombre: in.Nombre, Especie: in.Especie, Sexo: in.Sexo, ClienteID: in.ClienteID}
	r.byID[p.ID] = p
	r.nextID++
	return p, nil
}

func (r *testRepo) Update(_ context.Context, id int64, in Input) (Paciente, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return Paciente{}, &httpclient.APIError{StatusCode: http.StatusNotFound}
	}
	p := Paciente{ID: id, Nombre: in.Nombre, Especie: in.Especie, ClienteID: in.ClienteID}
	r.byID[id] = p
	return p, nil
}

func TestSimilitud(t *testing.T) {
	assert.Equal(t, 1.0, Similitud("Firulais", "  FIRULÁIS "))
	assert.InDelta(t, 0.8, Similitud("Toby", "Tobi"), 0.3)
	assert.Less(t, Similitud("Luna", "Rocky"), 0.5)
	assert.Equal(t, 0.0, Similitud("", ""))
}

func TestDuplicados_NivelesYOrden(t *testing.T) {
	candidatos := []Paciente{
		{ID: 1, Nombre: "Rocky"},
		{ID: 2, Nombre: "Firulais"},
		{ID: 3, Nombre: "Firulai"},
		{ID: 4, Nombre: "Firu"},
	}

	got := Duplicados("firuláis", candidatos, 0.7, 0)
	require.Len(t, got, 3)
	assert.Equal(t, int64(2), got[0].Paciente.ID)
	assert.Equal(t, NivelProbable, got[0].Nivel)
	assert.Equal(t, int64(3), got[1].Paciente.ID)
	assert.Equal(t, NivelProbable, got[1].Nivel)
	assert.Equal(t, int64(4), got[2].Paciente.ID)
	assert.Equal(t, NivelPosible, got[2].Nivel)

	got = Duplicados("firulais", candidatos, 0.7, 2)
	for _, c := range got {
		assert.NotEqual(t, int64(2), c.Paciente.ID)
	}
}

func TestCrear_ValidaEInvalidaListas(t *testing.T) {
	repo := newTestRepo(Paciente{ID: 1, Nombre: "Luna", Especie: "Felino", ClienteID: 5})
	svc := NewService(repo, query.New(query.Options{StaleTime: time.Minute}), 0.7)
	ctx := context.Background()

	_, err := svc.Listar(ctx, "")
	require.NoError(t, err)
	_, err = svc.Listar(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)

	_, err = svc.Crear(ctx, Input{Nombre: " ", Especie: "Canino", ClienteID: 5})
	var errs *validate.Errores
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.Campos, "nombre")
	assert.Equal(t, 0, repo.creates)

	p, err := svc.Crear(ctx, Input{Nombre: " Toby ", Especie: "Canino", Sexo: "macho", ClienteID: 5})
	require.NoError(t, err)
	assert.Equal(t, "Toby", p.Nombre)
	assert.Equal(t, SexoMacho, p.Sexo)

	items, err := svc.Listar(ctx, "")
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, 2, repo.listCalls)
}

func TestObtener_NotFound(t *testing.T) {
	svc := NewService(newTestRepo(), query.New(query.Options{}), 0)
	_, err := svc.Obtener(context.Background(), 9)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Actualizar(context.Background(), 9, Input{Nombre: "Max", Especie: "Canino", ClienteID: 1})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPosiblesDuplicados_PorCliente(t *testing.T) {
	repo := newTestRepo(
		Paciente{ID: 1, Nombre: "Michi", ClienteID: 5},
		Paciente{ID: 2, Nombre: "Michí", ClienteID: 6},
	)
	svc := NewService(repo, query.New(query.Options{}), 0.7)

	got, err := svc.PosiblesDuplicados(context.Background(), "MICHI", 5, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].Paciente.ID)

	got, err = svc.PosiblesDuplicados(context.Background(), "MICHI", 0, 0)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = svc.PosiblesDuplicados(context.Background(), "  ", 0, 0)
	var errs *validate.Errores
	assert.ErrorAs(t, err, &errs)
}
