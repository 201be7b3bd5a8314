package facturas

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/middleware"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/fechas"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/respond"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/session"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/facturas", func(fr chi.Router) {
		fr.With(middleware.RequireCap(session.CapFacturasVer)).Get("/", listFacturasHandler(svc))
		fr.With(middleware.RequireCap(session.CapFacturasEdit)).Post("/", createFacturaHandler(svc))
		fr.With(middleware.RequireCap(session.CapFacturasVer)).Get("/{facturaID}", getFacturaHandler(svc))
		fr.With(middleware.RequireCap(session.CapFacturasVer)).Get("/{facturaID}/pdf", pdfHandler(svc))
		fr.With(middleware.RequireCap(session.CapFacturasEdit)).Put("/{facturaID}/pagar", pagarHandler(svc))
		fr.With(middleware.RequireCap(session.CapFacturasAnular)).Put("/{facturaID}/anular", anularHandler(svc))
	})
}

type pagarRequest struct {
	MetodoPago MetodoPago `json:"metodoPago"`
}

type anularRequest struct {
	Motivo string `json:"motivo"`
}

type facturaView struct {
	Factura
	PuedePagar  bool `json:"puedePagar"`
	PuedeAnular bool `json:"puedeAnular"`
}

func toView(r *http.Request, f Factura) facturaView {
	s, _ := session.FromContext(r.Context())
	return facturaView{
		Factura:     f,
		PuedePagar:  f.Estado == EstadoPendiente && s.Puede(session.CapFacturasEdit),
		PuedeAnular: f.Estado != EstadoAnulada && s.Puede(session.CapFacturasAnular),
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrTransicionInvalida):
		return http.StatusConflict
	}
	return 0
}

func parseRango(r *http.Request, loc *time.Location) (desde, hasta *time.Time, err error) {
	for campo, dst := range map[string]**time.Time{"desde": &desde, "hasta": &hasta} {
		v := strings.TrimSpace(r.URL.Query().Get(campo))
		if v == "" {
			continue
		}
		t, perr := fechas.ParseFecha(v, loc)
		if perr != nil {
			return nil, nil, respond.ErrBadRequest
		}
		*dst = &t
	}
	return desde, hasta, nil
}

// listFacturasHandler godoc
// @Summary Listar facturas
// @Tags facturas
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param estado query string false "PENDIENTE | PAGADA | ANULADA"
// @Param clienteId query int false "ID del cliente"
// @Param desde query string false "YYYY-MM-DD (fecha de emisión, inclusive)"
// @Param hasta query string false "YYYY-MM-DD (fecha de emisión, inclusive)"
// @Success 200 {object} respond.Body
// @Router /facturas [get]
func listFacturasHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clienteID, err := respond.QueryID(r, "clienteId")
		if err != nil {
			respond.Error(w, 0, err)
			return
		}
		desde, hasta, err := parseRango(r, svc.loc)
		if err != nil {
			respond.Error(w, 0, err)
			return
		}

		items, err := svc.Listar(r.Context(), Filtro{
			Estado:    Estado(r.URL.Query().Get("estado")),
			ClienteID: clienteID,
			Desde:     desde,
			Hasta:     hasta,
		})
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		out := make([]facturaView, 0, len(items))
		for _, f := range items {
			out = append(out, toView(r, f))
		}
		respond.Data(w, http.StatusOK, out)
	}
}

func getFacturaHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := respond.IDParam(r, "facturaID")
		if err != nil {
			respond.Error(w, 0, err)
			return
		}
		f, err := svc.Obtener(r.Context(), id)
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Data(w, http.StatusOK, toView(r, f))
	}
}

func createFacturaHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CrearInput
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, 0, err)
			return
		}
		f, err := svc.Crear(r.Context(), req)
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Mutacion(w, http.StatusCreated, toView(r, f), "Factura generada")
	}
}

func pagarHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := respond.IDParam(r, "facturaID")
		if err != nil {
			respond.Error(w, 0, err)
			return
		}
		var req pagarRequest
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, 0, err)
			return
		}
		f, err := svc.Pagar(r.Context(), id, req.MetodoPago)
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Mutacion(w, http.StatusOK, toView(r, f), "Pago registrado")
	}
}

func anularHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := respond.IDParam(r, "facturaID")
		if err != nil {
			respond.Error(w, 0, err)
			return
		}
		var req anularRequest
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, 0, err)
			return
		}
		f, err := svc.Anular(r.Context(), id, req.Motivo)
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Mutacion(w, http.StatusOK, toView(r, f), "Factura anulada")
	}
}

func pdfHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := respond.IDParam(r, "facturaID")
		if err != nil {
			respond.Error(w, 0, err)
			return
		}
		b, err := svc.DescargarPDF(r.Context(), id)
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Archivo(w, b)
	}
}
