package citas

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

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	mu      sync.Mutex
	byID    map[int64]Cita
	nextID  int64
	creates int
	slots   map[string][]Horario
	slotHit int
	sols    map[int64]Solicitud
}

func newTestRepo() *testRepo {
	return &testRepo{
		byID:   map[int64]Cita{},
		nextID: 1,
		slots:  map[string][]Horario{},
		sols:   map[int64]Solicitud{},
	}
}

func notFound() error { return &httpclient.APIError{StatusCode: http.StatusNotFound, Message: "no existe"} }

func (r *testRepo) List(_ context.Context, f Filtro) ([]Cita, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []Cita{}
	for _, c := range r.byID {
		if f.Estado != "" && c.Estado != f.Estado {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *testRepo) GetByID(_ context.Context, id int64) (Cita, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return Cita{}, notFound()
	}
	return c, nil
}

func (r *testRepo) Create(_ context.Context, in CrearInput) (Cita, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	c := Cita{
		ID:          r.nextID,
		FechaHora:   in.FechaHora,
		Estado:      EstadoProgramada,
		Paciente:    Ref{ID: in.PacienteID},
		Veterinario: Ref{ID: in.VeterinarioID},
		Motivo:      in.Motivo,
	}
	r.byID[c.ID] = c
	r.nextID++
	return c, nil
}

func (r *testRepo) update(id int64, fn func(*Cita)) (Cita, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return Cita{}, notFound()
	}
	fn(&c)
	r.byID[id] = c
	return c, nil
}

func (r *testRepo) Reprogramar(_ context.Context, id int64, fechaHora string) (Cita, error) {
	return r.update(id, func(c *Cita) { c.FechaHora = fechaHora })
}

func (r *testRepo) Completar(_ context.Context, id int64, obs string) (Cita, error) {
	return r.update(id, func(c *Cita) { c.Estado = EstadoCompletada; c.Observaciones = obs })
}

func (r *testRepo) Cancelar(_ context.Context, id int64, _ string) (Cita, error) {
	return r.update(id, func(c *Cita) { c.Estado = EstadoCancelada })
}

func (r *testRepo) VerificarDisponibilidad(_ context.Context, _ int64, _ string) (Disponibilidad, error) {
	return Disponibilidad{Disponible: true}, nil
}

func (r *testRepo) HorariosDisponibles(_ context.Context, vet int64, fecha string) ([]Horario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slotHit++
	return r.slots[id(vet)+"/"+fecha], nil
}

type testSolicitudes struct{ *testRepo }

func (s testSolicitudes) List(_ context.Context, estado EstadoSolicitud) ([]Solicitud, error) {
	out := []Solicitud{}
	for _, sol := range s.sols {
		if estado == "" || sol.Estado == estado {
			out = append(out, sol)
		}
	}
	return out, nil
}

func (s testSolicitudes) GetByID(_ context.Context, solID int64) (Solicitud, error) {
	sol, ok := s.sols[solID]
	if !ok {
		return Solicitud{}, notFound()
	}
	return sol, nil
}

func (s testSolicitudes) Aprobar(ctx context.Context, solID int64, in AprobarInput) (Cita, error) {
	c, _ := s.testRepo.Create(ctx, CrearInput{PacienteID: in.PacienteID, VeterinarioID: in.VeterinarioID, FechaHora: in.FechaHora})
	sol := s.sols[solID]
	sol.Estado = SolicitudAprobada
	sol.CitaID = c.ID
	s.sols[solID] = sol
	return c, nil
}

func (s testSolicitudes) Rechazar(_ context.Context, solID int64, motivo string) (Solicitud, error) {
	sol := s.sols[solID]
	sol.Estado = SolicitudRechazada
	sol.MotivoRechazo = motivo
	s.sols[solID] = sol
	return sol, nil
}

func newTestService(t *testing.T) (*Service, *testRepo, *query.MemoryStore) {
	t.Helper()
	repo := newTestRepo()
	store := query.NewMemoryStore()
	cache := query.New(query.Options{Store: store, StaleTime: time.Minute})
	return NewService(repo, testSolicitudes{repo}, cache, time.UTC), repo, store
}

func validInput() CrearInput {
	return CrearInput{
		PacienteID:    3,
		VeterinarioID: 7,
		FechaHora:     "2024-06-10T08:00",
		TipoServicio:  "Consulta general",
		Motivo:        "Vacunación anual",
		TriageNivel:   TriageBajo,
	}
}

// -------------------------
// Tests
// -------------------------

func TestCrear_InvalidFormIsNeverSent(t *testing.T) {
	svc, repo, _ := newTestService(t)

	in := validInput()
	in.Motivo = ""
	in.PacienteID = 0

	_, err := svc.Crear(context.Background(), in)
	var verrs *validate.Errores
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.Campos, "motivo")
	assert.Contains(t, verrs.Campos, "pacienteId")
	assert.Equal(t, 0, repo.creates)
}

func TestCrear_NormalizesDateAndInvalidatesDependents(t *testing.T) {
	svc, repo, store := newTestService(t)
	ctx := context.Background()

	repo.slots["7/2024-06-10"] = []Horario{{FechaHora: "2024-06-10T08:00:00", Disponible: true, Estado: HorarioDisponible}}
	_, err := svc.HorariosDisponibles(ctx, 7, "2024-06-10")
	require.NoError(t, err)
	_, err = svc.Listar(ctx, Filtro{})
	require.NoError(t, err)
	require.Equal(t, 2, store.Len())

	c, err := svc.Crear(ctx, validInput())
	require.NoError(t, err)
	assert.Equal(t, "2024-06-10T08:00:00", c.FechaHora)
	assert.Equal(t, 0, store.Len())

	_, err = svc.HorariosDisponibles(ctx, 7, "2024-06-10")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.slotHit)
}

func TestHorariosDisponibles_NoVetSelected(t *testing.T) {
	svc, repo, _ := newTestService(t)

	got, err := svc.HorariosDisponibles(context.Background(), 0, "2024-06-10")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 0, repo.slotHit)

	_, err = svc.HorariosDisponibles(context.Background(), 7, "10/06/2024")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTransitions_OnlyFromProgramada(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	c, err := svc.Crear(ctx, validInput())
	require.NoError(t, err)

	done, err := svc.Completar(ctx, c.ID, "Sin novedad")
	require.NoError(t, err)
	assert.Equal(t, EstadoCompletada, done.Estado)

	_, err = svc.Cancelar(ctx, c.ID, "El cliente no vino")
	assert.ErrorIs(t, err, ErrTransicionInvalida)
	_, err = svc.Reprogramar(ctx, c.ID, "2024-06-11T09:00")
	assert.ErrorIs(t, err, ErrTransicionInvalida)
	_, err = svc.Completar(ctx, c.ID, "")
	assert.ErrorIs(t, err, ErrTransicionInvalida)
}

func TestCancelar_RequiresMotivo(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	c, err := svc.Crear(ctx, validInput())
	require.NoError(t, err)

	_, err = svc.Cancelar(ctx, c.ID, "  ")
	var verrs *validate.Errores
	require.ErrorAs(t, err, &verrs)

	got, err := svc.Cancelar(ctx, c.ID, "Enfermedad del dueño")
	require.NoError(t, err)
	assert.Equal(t, EstadoCancelada, got.Estado)
}

func TestObtener_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.Obtener(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReprogramar_InvalidatesOldAndNewDay(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()
	c, err := svc.Crear(ctx, validInput())
	require.NoError(t, err)

	_, _ = svc.HorariosDisponibles(ctx, 7, "2024-06-10")
	_, _ = svc.HorariosDisponibles(ctx, 7, "2024-06-11")
	require.Equal(t, 2, repo.slotHit)

	got, err := svc.Reprogramar(ctx, c.ID, "2024-06-11T14:30")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-11T14:30:00", got.FechaHora)

	_, _ = svc.HorariosDisponibles(ctx, 7, "2024-06-10")
	_, _ = svc.HorariosDisponibles(ctx, 7, "2024-06-11")
	assert.Equal(t, 4, repo.slotHit)
}

func TestSolicitudes(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()
	repo.sols[1] = Solicitud{ID: 1, NombreCliente: "Ana", NombreMascota: "Luna", Estado: SolicitudPendiente}
	repo.sols[2] = Solicitud{ID: 2, NombreCliente: "Luis", NombreMascota: "Toby", Estado: SolicitudPendiente}

	pend, err := svc.ListarSolicitudes(ctx, SolicitudPendiente)
	require.NoError(t, err)
	assert.Len(t, pend, 2)

	_, err = svc.AprobarSolicitud(ctx, 1, AprobarInput{VeterinarioID: 0, FechaHora: "2024-06-10T08:00"})
	var verrs *validate.Errores
	require.ErrorAs(t, err, &verrs)

	c, err := svc.AprobarSolicitud(ctx, 1, AprobarInput{VeterinarioID: 7, FechaHora: "2024-06-10T08:00", PacienteID: 3})
	require.NoError(t, err)
	assert.Equal(t, EstadoProgramada, c.Estado)

	_, err = svc.RechazarSolicitud(ctx, 1, "Duplicada")
	assert.ErrorIs(t, err, ErrSolicitudProcesada)

	sol, err := svc.RechazarSolicitud(ctx, 2, "Sin cupo")
	require.NoError(t, err)
	assert.Equal(t, SolicitudRechazada, sol.Estado)

	pend, err = svc.ListarSolicitudes(ctx, SolicitudPendiente)
	require.NoError(t, err)
	assert.Empty(t, pend)

	_, err = svc.RechazarSolicitud(ctx, 99, "x")
	assert.ErrorIs(t, err, ErrSolicitudNoEncontrada)
}
