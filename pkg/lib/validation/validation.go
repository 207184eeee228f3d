// Package validation builds the request validator shared by all controllers.
package validation

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"smokefree/pkg/lib/schedule"
)

const DateLayout = "2006-01-02"

// New returns a validator with the "hhmm" (24h time of day) and "ymd" (calendar
// date) tags registered. It panics if a tag cannot be registered.
func New() *validator.Validate {
	v := validator.New()
	must(v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return schedule.IsTimeOfDay(fl.Field().String())
	}))
	must(v.RegisterValidation("ymd", func(fl validator.FieldLevel) bool {
		return IsDate(fl.Field().String())
	}))
	return v
}

func must(err error) {
	if err != nil {
		panic(fmt.Sprintf("validation: register tag: %v", err))
	}
}

// IsDate reports whether s is a YYYY-MM-DD calendar date.
func IsDate(s string) bool {
	if len(s) != len(DateLayout) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
