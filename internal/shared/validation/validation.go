package validation

import (
	"errors"

	"offerly/internal/scheduling"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register installs the custom binding validations on gin's validator
// engine. Call once at startup, before the router serves traffic.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected validator engine")
	}

	// clocktime accepts "HH:MM" wall-clock values
	return v.RegisterValidation("clocktime", func(fl validator.FieldLevel) bool {
		_, err := scheduling.ParseClock(fl.Field().String())
		return err == nil
	})
}
