package middleware

import (
	"reflect"
	"strings"

	"github.com/HarinChan/MirrorMirrorEngine/internal/pkg/auth"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the custom tags to gin's validator and makes field
// errors report json names
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return registerOn(v)
}

func registerOn(v *validator.Validate) error {
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

	if err := v.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		return auth.IsStrongPassword(fl.Field().String())
	}); err != nil {
		return err
	}

	return v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() == reflect.Ptr {
			if field.IsNil() {
				return true
			}
			field = field.Elem()
		}
		return strings.TrimSpace(field.String()) != ""
	})
}
