// Package validate hace la validación de formularios del lado cliente.
// Un formulario inválido nunca se envía al servidor.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once sync.Once
	v    *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		// Los errores se reportan con el nombre JSON del campo, que es el que ve el formulario.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
	})
	return v
}

// Errores agrupa mensajes por campo.
type Errores struct {
	Campos map[string]string
}

func (e *Errores) Error() string {
	keys := make([]string, 0, len(e.Campos))
	for k := range e.Campos {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Campos[k])
	}
	return "formulario inválido: " + strings.Join(parts, "; ")
}

// Add agrega un error de campo manual (reglas que no se expresan con tags).
func (e *Errores) Add(campo, msg string) {
	if e.Campos == nil {
		e.Campos = map[string]string{}
	}
	if _, exists := e.Campos[campo]; !exists {
		e.Campos[campo] = msg
	}
}

// OrNil devuelve nil si no hay errores, para poder hacer `return errs.OrNil()`.
func (e *Errores) OrNil() error {
	if e == nil || len(e.Campos) == 0 {
		return nil
	}
	return e
}

// Struct valida s según sus tags `validate`. Devuelve *Errores o nil.
func Struct(s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &Errores{}
	for _, fe := range verrs {
		out.Add(fe.Field(), mensaje(fe))
	}
	return out
}

func mensaje(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es obligatorio"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("debe tener al menos %s caracteres", fe.Param())
		}
		return fmt.Sprintf("debe ser mayor o igual a %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("no puede superar %s caracteres", fe.Param())
		}
		return fmt.Sprintf("debe ser menor o igual a %s", fe.Param())
	case "gt":
		return fmt.Sprintf("debe ser mayor que %s", fe.Param())
	case "gte":
		return fmt.Sprintf("debe ser mayor o igual a %s", fe.Param())
	case "email":
		return "no es un correo válido"
	case "numeric":
		return "solo admite números"
	case "oneof":
		return "debe ser uno de: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "datetime":
		return "no tiene el formato de fecha esperado (" + fe.Param() + ")"
	case "e164":
		return "no es un teléfono válido"
	default:
		return "no es válido"
	}
}
