package resource

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New() //nolint:gochecknoglobals

// requiredField maps a json field name to the struct field index.
type requiredField struct {
	name  string
	index []int
}

// jsonName returns the json name of f, or "" when the field is not serialized.
func jsonName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "-" {
		return ""
	}

	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name
	}

	return f.Name
}

// lookupRequired resolves json names against the fields of t.
func lookupRequired(t reflect.Type, names []string) ([]requiredField, error) {
	byName := make(map[string][]int, t.NumField())

	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() || f.Anonymous {
			continue
		}

		if n := jsonName(f); n != "" {
			byName[n] = f.Index
		}
	}

	out := make([]requiredField, 0, len(names))

	for _, n := range names {
		idx, ok := byName[n]
		if !ok {
			return nil, fmt.Errorf("%s has no field %q", t.Name(), n)
		}

		out = append(out, requiredField{name: n, index: idx})
	}

	return out, nil
}

// missing returns the names of required fields of v that are empty.
// Strings holding only whitespace count as empty.
func missing(v reflect.Value, fields []requiredField) []string {
	var out []string

	for _, f := range fields {
		if !present(v.FieldByIndex(f.index)) {
			out = append(out, f.name)
		}
	}

	return out
}

func present(fv reflect.Value) bool {
	if fv.Kind() == reflect.Pointer {
		if fv.IsNil() {
			return false
		}

		fv = fv.Elem()
	}

	switch fv.Kind() { //nolint:exhaustive
	case reflect.String:
		return validate.Var(strings.TrimSpace(fv.String()), "required") == nil
	case reflect.Slice, reflect.Map:
		return validate.Var(fv.Interface(), "required,gt=0") == nil
	default:
		return validate.Var(fv.Interface(), "required") == nil
	}
}

// normalize turns optional empty values into NULL: blank *string fields
// and empty slices become nil.
func normalize(v reflect.Value) {
	for i := range v.NumField() {
		fv := v.Field(i)
		if !fv.CanSet() {
			continue
		}

		switch fv.Kind() { //nolint:exhaustive
		case reflect.Pointer:
			if !fv.IsNil() && fv.Elem().Kind() == reflect.String && strings.TrimSpace(fv.Elem().String()) == "" {
				fv.SetZero()
			}
		case reflect.Slice:
			if fv.Len() == 0 && !fv.IsNil() {
				fv.SetZero()
			}
		}
	}
}
