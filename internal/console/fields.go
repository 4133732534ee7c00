package console

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/mserebryaakov/aggregator-pim/internal/entity"
)

// Column is one cell of a list row and one line of a detail view. Sort is the
// server-side sort predicate; empty means the column is not sortable.
type Column[T any] struct {
	Header string
	Sort   string
	Value  func(T) string
}

type FieldKind int

const (
	TextField FieldKind = iota
	IntField
	FloatField
	DateField
	EnumField
	FileField
	RelationField
)

func (k FieldKind) String() string {
	switch k {
	case IntField:
		return "int"
	case FloatField:
		return "float"
	case DateField:
		return "date"
	case EnumField:
		return "enum"
	case FileField:
		return "file"
	case RelationField:
		return "relation"
	default:
		return "text"
	}
}

// Field is one editable scalar of a record. Set parses text input; an empty
// input clears the value.
type Field[T any] struct {
	Name     string
	Label    string
	Kind     FieldKind
	Required bool
	Choices  []string

	get func(*T) string
	set func(*T, string) error
}

func (f Field[T]) Value(rec *T) string {
	return f.get(rec)
}

func (f Field[T]) Set(rec *T, input string) error {
	if err := f.set(rec, strings.TrimSpace(input)); err != nil {
		return fmt.Errorf("%s: %w", f.Name, err)
	}
	return nil
}

func Text[T any](name, label string, required bool, ref func(*T) **string) Field[T] {
	return Field[T]{
		Name:     name,
		Label:    label,
		Kind:     TextField,
		Required: required,
		get:      func(rec *T) string { return entity.Deref(*ref(rec)) },
		set: func(rec *T, s string) error {
			if s == "" {
				*ref(rec) = nil
				return nil
			}
			*ref(rec) = &s
			return nil
		},
	}
}

func Int[T any](name, label string, required bool, ref func(*T) **int) Field[T] {
	return Field[T]{
		Name:     name,
		Label:    label,
		Kind:     IntField,
		Required: required,
		get:      func(rec *T) string { return formatPtr(*ref(rec), strconv.Itoa) },
		set: func(rec *T, s string) error {
			if s == "" {
				*ref(rec) = nil
				return nil
			}
			v, err := strconv.Atoi(s)
			if err != nil {
				return fmt.Errorf("%q is not a whole number", s)
			}
			*ref(rec) = &v
			return nil
		},
	}
}

func Float[T any](name, label string, required bool, ref func(*T) **float64) Field[T] {
	return Field[T]{
		Name:     name,
		Label:    label,
		Kind:     FloatField,
		Required: required,
		get:      func(rec *T) string { return formatPtr(*ref(rec), formatFloat) },
		set: func(rec *T, s string) error {
			if s == "" {
				*ref(rec) = nil
				return nil
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return fmt.Errorf("%q is not a number", s)
			}
			*ref(rec) = &v
			return nil
		},
	}
}

func DateOf[T any](name, label string, required bool, ref func(*T) **entity.Date) Field[T] {
	return Field[T]{
		Name:     name,
		Label:    label,
		Kind:     DateField,
		Required: required,
		get:      func(rec *T) string { return formatPtr(*ref(rec), entity.Date.String) },
		set: func(rec *T, s string) error {
			if s == "" {
				*ref(rec) = nil
				return nil
			}
			d, err := entity.ParseDate(s)
			if err != nil {
				return err
			}
			*ref(rec) = &d
			return nil
		},
	}
}

func Enum[T any, E ~string](name, label string, required bool, values []E, ref func(*T) **E) Field[T] {
	choices := make([]string, 0, len(values))
	for _, v := range values {
		choices = append(choices, string(v))
	}

	return Field[T]{
		Name:     name,
		Label:    label,
		Kind:     EnumField,
		Required: required,
		Choices:  choices,
		get: func(rec *T) string {
			return formatPtr(*ref(rec), func(e E) string { return string(e) })
		},
		set: func(rec *T, s string) error {
			if s == "" {
				*ref(rec) = nil
				return nil
			}
			for _, v := range values {
				if strings.EqualFold(string(v), s) {
					v := v
					*ref(rec) = &v
					return nil
				}
			}
			return fmt.Errorf("%q is not one of %s", s, strings.Join(choices, ", "))
		},
	}
}

// File reads the named file into data and records its detected content type.
func File[T any](name, label string, data func(*T) *[]byte, contentType func(*T) **string) Field[T] {
	return Field[T]{
		Name:  name,
		Label: label,
		Kind:  FileField,
		get: func(rec *T) string {
			return describeBlob(*data(rec), entity.Deref(*contentType(rec)))
		},
		set: func(rec *T, s string) error {
			if s == "" {
				*data(rec) = nil
				*contentType(rec) = nil
				return nil
			}
			bts, err := os.ReadFile(s)
			if err != nil {
				return err
			}
			ct := http.DetectContentType(bts)
			*data(rec) = bts
			*contentType(rec) = &ct
			return nil
		},
	}
}

func describeBlob(data []byte, contentType string) string {
	if len(data) == 0 {
		return ""
	}
	return fmt.Sprintf("%s, %d bytes", contentType, len(data))
}

func formatPtr[V any](p *V, format func(V) string) string {
	if p == nil {
		return ""
	}
	return format(*p)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}
