package dto

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// colorAllower is the part of the payout table the validator needs
type colorAllower interface {
	ValidateColor(color string) (string, error)
}

// RegisterValidators installs the wagercolor tag on gin's validator engine
func RegisterValidators(colors colorAllower) error {
	engine, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}
	return engine.RegisterValidation("wagercolor", func(fl validator.FieldLevel) bool {
		_, err := colors.ValidateColor(fl.Field().String())
		return err == nil
	})
}

// FieldErrors flattens validation errors into field -> rule, keyed by the JSON name
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		fields[toSnake(fe.Field())] = rule
	}
	return fields
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && !(s[i-1] >= 'A' && s[i-1] <= 'Z') {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
