package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// fieldMessages replaces the generic message for a few fields whose
// wording the dashboards show verbatim
var fieldMessages = map[string]string{
	"CreateOrderRequest.items": "Order must contain items",
	"MenuItemRequest.image":    "Image is required",
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		// report json names so messages match the request body
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	}
}

// bindError turns a ShouldBind error into the message sent to the client
func bindError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request body"
	}
	for _, fe := range verrs {
		if msg, ok := fieldMessages[fe.Namespace()]; ok {
			return msg
		}
	}
	return fieldError(verrs[0])
}

func fieldError(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	}
	return field + " is invalid"
}
