package validation

import (
	"sync"
	"time"

	"roomledger/internal/domain/booking"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var once sync.Once

// Register installs the custom binding tags on gin's validator. Safe to call
// more than once.
func Register() {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("date", isDate)
	})
}

// isDate accepts YYYY-MM-DD. Empty strings pass so optional fields can be
// omitted; pair with required when the field is mandatory.
func isDate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := time.Parse(booking.DateLayout, s)
	return err == nil
}
