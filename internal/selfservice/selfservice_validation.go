package selfservice

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// registerValidations adds the selfservice_field tag to gin's validator.
func registerValidations() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("selfservice_field", func(fl validator.FieldLevel) bool {
				_, ok := ColumnFor(fl.Field().String())
				return ok
			})
		}
	})
}
