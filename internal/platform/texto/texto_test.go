package texto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlegar(t *testing.T) {
	assert.Equal(t, "nono perez", Plegar("  Ñoño   Pérez "))
	assert.Equal(t, "sabado", Plegar("SÁBADO"))
	assert.Equal(t, "miercoles", Plegar("Miércoles"))
	assert.Equal(t, "", Plegar("   "))
}
