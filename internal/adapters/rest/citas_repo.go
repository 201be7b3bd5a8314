package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/domain/citas"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/httpclient"
)

var ErrRespuestaInesperada = errors.New("respuesta inesperada del servidor")

type CitasRepo struct {
	api *httpclient.Client
}

func NewCitasRepo(api *httpclient.Client) *CitasRepo {
	return &CitasRepo{api: api}
}

func (r *CitasRepo) List(ctx context.Context, f citas.Filtro) ([]citas.Cita, error) {
	q := params{}.
		set("estado", string(f.Estado)).
		set("fecha", f.Fecha).
		setID("veterinarioId", f.VeterinarioID).
		setID("pacienteId", f.PacienteID)

	var out []citas.Cita
	if err := r.api.Call(ctx, http.MethodGet, "/citas", q.values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CitasRepo) GetByID(ctx context.Context, id int64) (citas.Cita, error) {
	var out citas.Cita
	err := r.api.Call(ctx, http.MethodGet, "/citas/"+itoa(id), nil, nil, &out)
	return out, err
}

func (r *CitasRepo) Create(ctx context.Context, in citas.CrearInput) (citas.Cita, error) {
	var out citas.Cita
	err := r.api.Call(ctx, http.MethodPost, "/citas", nil, in, &out)
	return out, err
}

func (r *CitasRepo) Reprogramar(ctx context.Context, id int64, fechaHora string) (citas.Cita, error) {
	var out citas.Cita
	err := r.api.Call(ctx, http.MethodPut, "/citas/"+itoa(id)+"/reprogramar", nil,
		map[string]string{"fechaHora": fechaHora}, &out)
	return out, err
}

func (r *CitasRepo) Completar(ctx context.Context, id int64, observaciones string) (citas.Cita, error) {
	var out citas.Cita
	err := r.api.Call(ctx, http.MethodPut, "/citas/"+itoa(id)+"/completar", nil,
		map[string]string{"observaciones": observaciones}, &out)
	return out, err
}

func (r *CitasRepo) Cancelar(ctx context.Context, id int64, motivo string) (citas.Cita, error) {
	var out citas.Cita
	err := r.api.Call(ctx, http.MethodPut, "/citas/"+itoa(id)+"/cancelar", nil,
		map[string]string{"motivo": motivo}, &out)
	return out, err
}

func (r *CitasRepo) VerificarDisponibilidad(ctx context.Context, veterinarioID int64, fechaHora string) (citas.Disponibilidad, error) {
	q := params{}.setID("veterinarioId", veterinarioID).set("fechaHora", fechaHora)

	var raw json.RawMessage
	if err := r.api.Call(ctx, http.MethodGet, "/citas/verificar-disponibilidad", q.values(), nil, &raw); err != nil {
		return citas.Disponibilidad{}, err
	}
	ok, msg, parsed := flexBool(raw, "disponible")
	if !parsed {
		return citas.Disponibilidad{}, ErrRespuestaInesperada
	}
	return citas.Disponibilidad{Disponible: ok, Mensaje: msg}, nil
}

func (r *CitasRepo) HorariosDisponibles(ctx context.Context, veterinarioID int64, fecha string) ([]citas.Horario, error) {
	q := params{}.setID("veterinarioId", veterinarioID).set("fecha", fecha)

	var out []citas.Horario
	if err := r.api.Call(ctx, http.MethodGet, "/citas/horarios-disponibles", q.values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type SolicitudesRepo struct {
	api *httpclient.Client
}

func NewSolicitudesRepo(api *httpclient.Client) *SolicitudesRepo {
	return &SolicitudesRepo{api: api}
}

func (r *SolicitudesRepo) List(ctx context.Context, estado citas.EstadoSolicitud) ([]citas.Solicitud, error) {
	var out []citas.Solicitud
	q := params{}.set("estado", string(estado))
	if err := r.api.Call(ctx, http.MethodGet, "/solicitudes-citas", q.values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SolicitudesRepo) GetByID(ctx context.Context, id int64) (citas.Solicitud, error) {
	var out citas.Solicitud
	err := r.api.Call(ctx, http.MethodGet, "/solicitudes-citas/"+itoa(id), nil, nil, &out)
	return out, err
}

func (r *SolicitudesRepo) Aprobar(ctx context.Context, id int64, in citas.AprobarInput) (citas.Cita, error) {
	var out citas.Cita
	err := r.api.Call(ctx, http.MethodPut, "/solicitudes-citas/"+itoa(id)+"/aprobar", nil, in, &out)
	return out, err
}

func (r *SolicitudesRepo) Rechazar(ctx context.Context, id int64, motivo string) (citas.Solicitud, error) {
	var out citas.Solicitud
	err := r.api.Call(ctx, http.MethodPut, "/solicitudes-citas/"+itoa(id)+"/rechazar", nil,
		map[string]string{"motivo": motivo}, &out)
	return out, err
}
