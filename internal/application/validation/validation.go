// Package validation valida y normaliza las entradas antes de que lleguen a los casos de uso.
// Nunca entra en pánico: cualquier entrada malformada se reporta como *Error con detalle por campo.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-ai/internal/domain"
)

// Error fallo de validación: campo → restricción violada (ej. "max=80", "required", "type:int").
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validación fallida: " + strings.Join(parts, ", ")
}

// Unwrap permite errors.Is(err, domain.ErrInvalidInput).
func (e *Error) Unwrap() error { return domain.ErrInvalidInput }

// NewError fallo de un solo campo.
func NewError(field, rule string) *Error {
	return &Error{Fields: map[string]string{field: rule}}
}

// Normalizer lo implementan los DTO que recortan o ajustan campos antes de validar.
type Normalizer interface {
	Normalize()
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
	// decimal.Decimal se valida como número (min=0 en unit_cost).
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// Struct normaliza (si aplica) y valida v. Devuelve *Error o nil.
func Struct(v interface{}) error {
	if n, ok := v.(Normalizer); ok {
		n.Normalize()
	}
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// InvalidValidationError: v no es un struct; error de programación, no de entrada.
		return fmt.Errorf("validation: %w", err)
	}
	out := &Error{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		out.Fields[fieldPath(fe.Namespace())] = rule
	}
	return out
}

// Decode decodifica body en dst sin validar reglas. Tipos incompatibles (ej. quantity 2.5)
// se reportan como fallo del campo, no como error interno.
func Decode(body []byte, dst interface{}) error {
	if err := json.Unmarshal(body, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return NewError(typeErr.Field, "type:"+typeErr.Type.String())
		}
		return NewError("body", "invalid_json")
	}
	return nil
}

// DecodeJSON Decode seguido de Struct.
func DecodeJSON(body []byte, dst interface{}) error {
	if err := Decode(body, dst); err != nil {
		return err
	}
	return Struct(dst)
}

// fieldPath quita el nombre del struct raíz: "CreateItemRequest.name" → "name".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
