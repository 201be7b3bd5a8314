package toast

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/httpclient"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/validate"

	"github.com/stretchr/testify/assert"
)

type advertencia string

func (a advertencia) Error() string     { return string(a) }
func (a advertencia) Advertencia() bool { return true }

func TestFromError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		tipo Tipo
		msg  string
	}{
		{"transport", fmt.Errorf("%w: dial tcp", httpclient.ErrTransport), TipoError, "No se pudo conectar con el servidor. Intenta de nuevo más tarde"},
		{"api con mensaje", &httpclient.APIError{StatusCode: 400, Message: "Documento duplicado"}, TipoError, "Documento duplicado"},
		{"api sin mensaje", &httpclient.APIError{StatusCode: 403, Message: http.StatusText(403)}, TipoError, "No tienes permisos para esta acción"},
		{"formulario", &validate.Errores{Campos: map[string]string{"nombre": "es obligatorio"}}, TipoError, "Revisa los campos marcados del formulario"},
		{"advertencia", fmt.Errorf("agenda: %w", advertencia("La clínica está cerrada ese día")), TipoAdvertencia, "La clínica está cerrada ese día"},
		{"otro", errors.New("algo raro"), TipoError, "algo raro"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := FromError(tc.err)
			assert.True(t, ok)
			assert.Equal(t, tc.tipo, got.Tipo)
			assert.Equal(t, tc.msg, got.Mensaje)
			assert.NotEmpty(t, got.ID)
		})
	}

	_, ok := FromError(nil)
	assert.False(t, ok)
}
