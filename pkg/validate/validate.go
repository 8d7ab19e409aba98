package validate

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once sync.Once
	v    *validator.Validate
)

// Struct valida un struct según sus tags `validate`. Devuelve el error de validator
// (validator.ValidationErrors) para que el caller lo traduzca a su respuesta HTTP.
func Struct(s any) error {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
	})
	return v.Struct(s)
}
