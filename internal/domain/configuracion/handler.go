package configuracion

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

func RegisterRoutes(r chi.Router, svc *Service, loc *time.Location) {
	r.Route("/configuracion", func(cr chi.Router) {
		// Los horarios de atención los lee cualquier usuario con sesión (la agenda los usa).
		cr.With(middleware.RequireSession).Get("/horarios", horariosHandler(svc))

		cr.Group(func(ar chi.Router) {
			ar.Use(middleware.RequireCap(session.CapConfiguracion))

			ar.Get("/clinica", clinicaHandler(svc))
			ar.Put("/clinica", updateClinicaHandler(svc))

			ar.Get("/permisos", permisosHandler(svc))
			ar.Get("/permisos/rol/{rol}", permisosRolHandler(svc))
			ar.Put("/permisos", updatePermisosHandler(svc))

			ar.Get("/servicios", serviciosHandler(svc))
			ar.Post("/servicios", createServicioHandler(svc))
			ar.Put("/servicios/{servicioID}", updateServicioHandler(svc))

			ar.Put("/horarios", updateHorariosHandler(svc))

			ar.Get("/auditoria", auditoriaHandler(svc, loc))

			ar.Get("/backups", backupsHandler(svc))
			ar.Post("/backups", createBackupHandler(svc))
			ar.Get("/backups/{backupID}/descargar", downloadBackupHandler(svc))
		})
	})
}

func statusFor(err error) int {
	if errors.Is(err, ErrInvalidInput) {
		return http.StatusBadRequest
	}
	return 0
}

func clinicaHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.Clinica(r.Context())
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Data(w, http.StatusOK, c)
	}
}

func updateClinicaHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Clinica
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, 0, err)
			return
		}
		c, err := svc.ActualizarClinica(r.Context(), req)
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Mutacion(w, http.StatusOK, c, "Datos de la clínica actualizados")
	}
}

func permisosHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Permisos(r.Context())
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Data(w, http.StatusOK, items)
	}
}

func permisosRolHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.PermisosPorRol(r.Context(), chi.URLParam(r, "rol"))
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Data(w, http.StatusOK, items)
	}
}

func updatePermisosHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req []Permiso
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, 0, err)
			return
		}
		items, err := svc.ActualizarPermisos(r.Context(), req)
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Mutacion(w, http.StatusOK, items, "Permisos actualizados")
	}
}

func serviciosHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Servicios(r.Context())
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Data(w, http.StatusOK, items)
	}
}

func createServicioHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Servicio
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, 0, err)
			return
		}
		s, err := svc.CrearServicio(r.Context(), req)
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Mutacion(w, http.StatusCreated, s, "Servicio creado")
	}
}

func updateServicioHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := respond.IDParam(r, "servicioID")
		if err != nil {
			respond.Error(w, 0, err)
			return
		}
		var req Servicio
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, 0, err)
			return
		}
		s, err := svc.ActualizarServicio(r.Context(), id, req)
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Mutacion(w, http.StatusOK, s, "Servicio actualizado")
	}
}

func horariosHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Horarios(r.Context())
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Data(w, http.StatusOK, items)
	}
}

func updateHorariosHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req []HorarioAtencion
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, 0, err)
			return
		}
		items, err := svc.ActualizarHorarios(r.Context(), req)
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Mutacion(w, http.StatusOK, items, "Horarios de atención actualizados")
	}
}

func auditoriaHandler(svc *Service, loc *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f := FiltroAuditoria{
			Usuario: strings.TrimSpace(q.Get("usuario")),
			Accion:  strings.TrimSpace(q.Get("accion")),
		}
		for campo, dst := range map[string]**time.Time{"desde": &f.Desde, "hasta": &f.Hasta} {
			v := strings.TrimSpace(q.Get(campo))
			if v == "" {
				continue
			}
			t, err := fechas.ParseFecha(v, loc)
			if err != nil {
				respond.Error(w, http.StatusBadRequest, respond.ErrBadRequest)
				return
			}
			*dst = &t
		}

		items, err := svc.Auditoria(r.Context(), f)
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Data(w, http.StatusOK, items)
	}
}

func backupsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Backups(r.Context())
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Data(w, http.StatusOK, items)
	}
}

func createBackupHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := svc.CrearBackup(r.Context())
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Mutacion(w, http.StatusCreated, b, "Backup generado")
	}
}

func downloadBackupHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := respond.IDParam(r, "backupID")
		if err != nil {
			respond.Error(w, 0, err)
			return
		}
		blob, err := svc.DescargarBackup(r.Context(), id)
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Archivo(w, blob)
	}
}
