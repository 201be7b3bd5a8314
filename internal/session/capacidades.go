package session

import "github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/ports/auth"

// Capacidades que la interfaz usa para mostrar u ocultar acciones.
const (
	CapCitasVer       = "citas:ver"
	CapCitasCrear     = "citas:crear"
	CapCitasEditar    = "citas:editar"
	CapCitasCancelar  = "citas:cancelar"
	CapSolicitudes    = "solicitudes:gestionar"
	CapPacientesVer   = "pacientes:ver"
	CapPacientesEdit  = "pacientes:editar"
	CapClientesVer    = "clientes:ver"
	CapClientesEdit   = "clientes:editar"
	CapHistoriasVer   = "historias:ver"
	CapHistoriasEdit  = "historias:editar"
	CapFacturasVer    = "facturas:ver"
	CapFacturasEdit   = "facturas:editar"
	CapFacturasAnular = "facturas:anular"
	CapProveedores    = "proveedores:gestionar"
	CapUsuarios       = "usuarios:gestionar"
	CapConfiguracion  = "configuracion:gestionar"
	CapReportes       = "reportes:ver"

	// CapTodas habilita cualquier capacidad (ADMIN y modo dev).
	CapTodas = "*"
)

var porRol = map[auth.Rol][]string{
	auth.RolAdmin: {CapTodas},
	auth.RolVeterinario: {
		CapCitasVer, CapCitasEditar,
		CapPacientesVer, CapPacientesEdit,
		CapClientesVer,
		CapHistoriasVer, CapHistoriasEdit,
		CapReportes,
	},
	auth.RolRecepcionista: {
		CapCitasVer, CapCitasCrear, CapCitasEditar, CapCitasCancelar, CapSolicitudes,
		CapPacientesVer, CapPacientesEdit,
		CapClientesVer, CapClientesEdit,
		CapFacturasVer, CapFacturasEdit,
	},
	auth.RolAuxiliar: {
		CapCitasVer,
		CapPacientesVer,
		CapHistoriasVer,
		CapProveedores,
	},
}

// CapacidadesPorRol es la matriz por defecto cuando el servidor no tiene permisos configurados.
// Un rol desconocido no tiene capacidades.
func CapacidadesPorRol(rol auth.Rol) map[string]bool {
	out := map[string]bool{}
	for _, c := range porRol[rol] {
		out[c] = true
	}
	return out
}
