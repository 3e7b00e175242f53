package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pawsitivewalks/pawsitivewalks/internal/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	for tag, vocab := range vocabularies {
		if err := v.RegisterValidation(tag, inVocabulary(vocab)); err != nil {
			panic(err)
		}
	}
	return v
}

func inVocabulary(vocab []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return model.IsOneOf(fl.Field().String(), vocab)
	}
}

// rangeMessages overrides the generic message for range-checked fields.
var rangeMessages = map[string]string{
	"age":             "age must be a number between 0 and 30",
	"budget":          "budget must be a non-negative number",
	"duration":        "duration must be a number between 10 and 240 (minutes)",
	"experienceYears": "experienceYears must be a non-negative number",
	"hourlyRate":      "hourlyRate must be a non-negative number",
	"maxDogsPerWalk":  "maxDogsPerWalk must be a number between 1 and 10",
}

// vocabularies maps custom validation tags to their allowed values.
var vocabularies = map[string][]string{
	"dogsize":       model.DogSizes,
	"timeslot":      model.TimeSlots,
	"temperament":   model.Temperaments,
	"frequency":     model.Frequencies,
	"requeststatus": model.RequestStatuses,
}

// validateStruct runs struct tag validation and converts failures into a ValidationError.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate input: %w", err)
	}

	details := make([]string, 0, len(fieldErrs))
	seen := make(map[string]bool, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg := fieldMessage(fe)
		if !seen[msg] {
			seen[msg] = true
			details = append(details, msg)
		}
	}
	return &ValidationError{Message: "Validation failed", Details: details}
}

func fieldMessage(fe validator.FieldError) string {
	// Slice elements report as "times[0]"; strip the index.
	field, _, _ := strings.Cut(fe.Field(), "[")
	path := fieldPath(fe)

	if vocab, ok := vocabularies[fe.Tag()]; ok {
		if strings.Contains(fe.Field(), "[") {
			return path + " must contain only: " + strings.Join(vocab, ", ")
		}
		return path + " must be one of: " + strings.Join(vocab, ", ")
	}

	switch fe.Tag() {
	case "required":
		return path + " is required and must be a non-empty string"
	case "min", "max", "gte", "lte":
		if msg, ok := rangeMessages[field]; ok {
			return msg
		}
		return fmt.Sprintf("%s is out of range", path)
	default:
		return fmt.Sprintf("%s is invalid", path)
	}
}

// fieldPath renders the namespace below the root struct, e.g. "availability.times".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		ns = rest
	}
	if i := strings.Index(ns, "["); i >= 0 {
		ns = ns[:i]
	}
	return ns
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// compactStrings trims entries, drops blanks and removes duplicates, keeping order.
func compactStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
