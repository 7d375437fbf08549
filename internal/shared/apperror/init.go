package apperror

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterTagNames makes validator report fields by their json tag so mapped
// messages match what the caller actually sent.
func RegisterTagNames(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Init wires the tag-name function into gin's built-in binding validator.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterTagNames(v)
	}
}
