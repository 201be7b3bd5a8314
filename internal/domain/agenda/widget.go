package agenda

import (
	"context"
	"errors"
	"sync"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/fechas"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/query"
)

var (
	// ErrSeleccionObsoleta: la respuesta corresponde a un (veterinario, fecha) que ya no está seleccionado.
	ErrSeleccionObsoleta = errors.New("la selección cambió mientras se cargaban los horarios")

	ErrSlotNoSeleccionable = errors.New("el horario no está disponible para agendar")
	ErrSlotDesconocido     = errors.New("el horario no pertenece a la selección actual")
)

// Widget mantiene la selección actual de la agenda y la última vista cargada para ella.
// Solo publica vistas de la selección vigente; cargas superadas devuelven ErrSeleccionObsoleta.
type Widget struct {
	svc *Service

	// OnSelect se llama con el slot elegido (lo usa el formulario de reserva).
	OnSelect func(Slot)

	mu      sync.Mutex
	version uint64
	vetID   int64
	fecha   string
	vista   Vista
}

func NewWidget(svc *Service) *Widget {
	return &Widget{svc: svc, vista: Vista{Estado: VistaSinVeterinario, Grupos: []Grupo{}}}
}

// Seleccionar cambia (veterinario, fecha) y carga sus slots.
// Si la selección cambia de nuevo antes de terminar, esta carga no se publica.
func (w *Widget) Seleccionar(ctx context.Context, veterinarioID int64, fecha string) (Vista, error) {
	if d, err := fechas.ParseFecha(fecha, w.svc.loc); err == nil {
		fecha = fechas.FormatFecha(d)
	}

	w.mu.Lock()
	changed := veterinarioID != w.vetID || fecha != w.fecha
	w.version++
	v := w.version
	w.vetID, w.fecha = veterinarioID, fecha
	w.mu.Unlock()

	// Un cambio de selección siempre vuelve a pedir los slots al servidor.
	if changed && veterinarioID > 0 {
		if err := w.svc.citas.RefrescarHorarios(ctx, veterinarioID, fecha); err != nil {
			w.svc.log.Warn("slot invalidation failed, fetching without cache", map[string]any{
				"veterinario_id": veterinarioID,
				"fecha":          fecha,
				"err":            err,
			})
			ctx = query.SinCache(ctx)
		}
	}

	vista, err := w.svc.Horarios(ctx, veterinarioID, fecha)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.version != v {
		return Vista{}, ErrSeleccionObsoleta
	}
	if err != nil && vista.Estado != VistaError {
		return Vista{}, err
	}
	w.vista = vista
	return vista, err
}

// Vista devuelve la última vista publicada.
func (w *Widget) Vista() Vista {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.vista
}

// Elegir marca un slot de la vista actual. Solo los disponibles se pueden elegir.
// Las advertencias (anticipación, horario) se devuelven para mostrarlas inline; no impiden elegir.
func (w *Widget) Elegir(ctx context.Context, fechaHora string) (Slot, Advertencias, error) {
	vista := w.Vista()

	norm := fechaHora
	if t, err := fechas.ParseFechaHora(fechaHora, w.svc.loc); err == nil {
		norm = fechas.FormatFechaHora(t)
	}
	slot, ok := vista.Buscar(norm)
	if !ok {
		return Slot{}, nil, ErrSlotDesconocido
	}
	if !slot.Seleccionable {
		return Slot{}, nil, ErrSlotNoSeleccionable
	}

	adv, err := w.svc.Validar(ctx, slot.FechaHora)
	if err != nil {
		return Slot{}, nil, err
	}
	if w.OnSelect != nil {
		w.OnSelect(slot)
	}
	return slot, adv, nil
}
