package crud

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/cortejtech/agency-admin/internal/content"
)

const timeLayout = "2006-01-02 15:04"

// fieldByJSON returns the struct field of v tagged with the json name.
func fieldByJSON(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()

	for i := range t.NumField() {
		tag, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if tag == name {
			return v.Field(i), true
		}
	}

	return reflect.Value{}, false
}

// display formats a field for html. Lists are joined with sep.
func display(v reflect.Value, sep string) string {
	if !v.IsValid() {
		return ""
	}

	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return ""
		}

		v = v.Elem()
	}

	switch x := v.Interface().(type) {
	case time.Time:
		if x.IsZero() {
			return ""
		}

		return x.Local().Format(timeLayout)
	case bool:
		if x {
			return "Yes"
		}

		return "No"
	case string:
		return x
	}

	if v.Kind() == reflect.Slice {
		parts := make([]string, v.Len())
		for i := range v.Len() {
			parts[i] = fmt.Sprint(v.Index(i).Interface())
		}

		return strings.Join(parts, sep)
	}

	return fmt.Sprint(v.Interface())
}

func checked(v reflect.Value) bool {
	if v.Kind() == reflect.Pointer {
		return !v.IsNil() && v.Elem().Kind() == reflect.Bool && v.Elem().Bool()
	}

	return v.Kind() == reflect.Bool && v.Bool()
}

// setBool stores a checkbox state in a bool or *bool field.
func setBool(v reflect.Value, on bool) {
	switch v.Kind() { //nolint:exhaustive
	case reflect.Bool:
		v.SetBool(on)
	case reflect.Pointer:
		if v.Type().Elem().Kind() == reflect.Bool {
			v.Set(reflect.ValueOf(&on))
		}
	}
}

// columnLabel returns the field label of name or a title-cased fallback.
func columnLabel(fields []content.Field, name string) string {
	for _, f := range fields {
		if f.Name == name {
			return f.Label
		}
	}

	switch name {
	case "created_at":
		return "Created"
	case "updated_at":
		return "Updated"
	}

	s := strings.ReplaceAll(name, "_", " ")

	return strings.ToUpper(s[:1]) + s[1:]
}
