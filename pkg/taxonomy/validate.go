package taxonomy

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// itemValidate checks decoded documents against their struct tags. Field
// names in failures are the JSON-LD keys, not the Go names.
var itemValidate *validator.Validate

func init() {
	itemValidate = validator.New()
	itemValidate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// describeValidation flattens validator failures into "field: rule" pairs.
func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if _, rest, ok := strings.Cut(field, "."); ok {
			field = rest
		}
		parts = append(parts, field+" "+fe.Tag())
	}
	return strings.Join(parts, "; ")
}
