package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/bunchhieng/linkvault/internal/urlnorm"
	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// Validator returns the shared validator instance.
func Validator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
			return fld.Name
		})

		_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			if fl.Field().Kind() != reflect.String {
				return false
			}
			return strings.TrimSpace(fl.Field().String()) != ""
		})

		// weburl accepts anything that becomes an absolute http(s) URL with a
		// host once the normalizer has added a missing scheme.
		_ = validate.RegisterValidation("weburl", func(fl validator.FieldLevel) bool {
			if fl.Field().Kind() != reflect.String {
				return false
			}
			return urlnorm.Normalize(fl.Field().String()).Domain != ""
		})
	})
	return validate
}

// Validate validates a struct. A failing "weburl" rule is reported as
// ErrInvalidURL so callers can match it with errors.Is.
func Validate(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "weburl" {
				return fmt.Errorf("%w: %v", ErrInvalidURL, fe.Value())
			}
		}
		fe := verrs[0]
		return fmt.Errorf("%s failed %q validation", fe.Namespace(), fe.Tag())
	}
	return err
}
