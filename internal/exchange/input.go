package exchange

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/erazemk/rewear/internal/model"
)

// ListingInput is the data a user supplies when listing an item.
type ListingInput struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Type        string   `json:"type" validate:"required"`
	Size        string   `json:"size" validate:"required"`
	Condition   string   `json:"condition" validate:"required,condition"`
	Tags        string   `json:"tags"`
	Images      []string `json:"images" validate:"min=1,max=5,dive,required"`
	PointValue  int      `json:"point_value" validate:"min=1,max=200"`
}

// normalize trims text fields.
func (in *ListingInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	in.Type = strings.TrimSpace(in.Type)
	in.Size = strings.TrimSpace(in.Size)
}

// ParseTags splits a comma-separated tag list, trimming each tag and
// dropping empty ones.
func ParseTags(s string) []string {
	tags := []string{}
	for _, tag := range strings.Split(s, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// ValidationError lists the fields of an input that failed validation,
// keyed by their JSON name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + " " + e.Fields[name]
	}
	return "invalid listing: " + strings.Join(parts, "; ")
}

var validate = newValidator()

func newValidator() func(any) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("condition", func(fl validator.FieldLevel) bool {
		return model.Condition(fl.Field().String()).Valid()
	})

	return func(in any) error {
		err := v.Struct(in)
		if err == nil {
			return nil
		}
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		out := &ValidationError{Fields: map[string]string{}}
		for _, fe := range verrs {
			out.Fields[fieldName(fe)] = message(fe)
		}
		return out
	}
}

// fieldName folds per-element errors (images[0]) into their slice field.
func fieldName(fe validator.FieldError) string {
	name, _, _ := strings.Cut(fe.Field(), "[")
	return name
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "condition":
		return "must be one of New, Like New, Good, Fair"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("needs at least %s", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("allows at most %s", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	}
	return "is invalid"
}
