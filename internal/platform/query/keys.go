package query

// Raíces de las keys de la app. Las mutaciones invalidan por estas raíces.
var (
	KeyCitas          = Key{"citas"}
	KeySolicitudes    = Key{"solicitudes"}
	KeyHorarios       = Key{"horarios"}
	KeyDashboard      = Key{"dashboard"}
	KeyPacientes      = Key{"pacientes"}
	KeyClientes       = Key{"clientes"}
	KeyFacturas       = Key{"facturas"}
	KeyHistorias      = Key{"historias"}
	KeyProveedores    = Key{"proveedores"}
	KeyUsuarios       = Key{"usuarios"}
	KeyConfiguracion  = Key{"configuracion"}
	KeyPermisos       = Key{"permisos"}
	KeyNotificaciones = Key{"notificaciones"}
)

// With devuelve una key nueva con parts agregados (no modifica k).
func (k Key) With(parts ...string) Key {
	out := make(Key, 0, len(k)+len(parts))
	out = append(out, k...)
	return append(out, parts...)
}
