package drapery

import (
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	optionIDPattern = regexp.MustCompile(`^[a-z0-9-]+$`)
	patternKinds    = map[string]struct{}{
		string(PatternLinearRepeat):   {},
		string(PatternDiagonalRepeat): {},
		string(PatternRadialDual):     {},
		string(PatternStripeRepeat):   {},
	}
	logLevels = map[string]struct{}{
		"trace": {}, "debug": {}, "info": {}, "warn": {}, "error": {}, "disabled": {},
	}
)

// validatorInstance configures and returns the shared validator instance
// used for catalogs and configs.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("rgbhex", func(fl validator.FieldLevel) bool {
			return hexColorPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("option_id", func(fl validator.FieldLevel) bool {
			return optionIDPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("pattern_kind", func(fl validator.FieldLevel) bool {
			_, ok := patternKinds[fl.Field().String()]
			return ok
		})

		_ = v.RegisterValidation("log_level", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			if s == "" {
				return true
			}
			_, ok := logLevels[s]
			return ok
		})

		validateInst = v
	})

	return validateInst
}
