package forms

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a form field's JSON name to the message shown beside it.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, fe[k]))
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

var labels = map[string]string{
	"title":           "Title",
	"fullName":        "Full Name",
	"phone":           "Phone Number",
	"email":           "Email Address",
	"guests":          "Number of Guests",
	"date":            "Event Date",
	"serviceTime":     "Service Time",
	"eventType":       "Event Type",
	"eventStyle":      "Event Style",
	"eventAddress":    "Event Address",
	"prefix":          "Title",
	"name":            "Full Name",
	"phoneNumber":     "Phone Number",
	"deliveryAddress": "Street Address",
	"deliveryDate":    "Delivery Date",
}

func label(field string) string {
	if l, ok := labels[field]; ok {
		return l
	}
	return field
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return label(fe.Field()) + " is required"
	case "emailaddr":
		return "Invalid email address"
	case "weekend":
		return weekendMessage(fmt.Sprint(fe.Value()))
	case "datetime":
		return label(fe.Field()) + " must be a date (YYYY-MM-DD)"
	case "min":
		switch fe.Field() {
		case "guests":
			return "Must be at least 1 guest"
		case "serviceTime":
			return "Must be at least 1 hour"
		}
		return fmt.Sprintf("%s must be at least %s", label(fe.Field()), fe.Param())
	}
	return label(fe.Field()) + " is invalid"
}

// toFieldErrors converts a validator error into FieldErrors. Other errors are returned unchanged.
func toFieldErrors(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := FieldErrors{}
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; !seen {
			out[fe.Field()] = message(fe)
		}
	}
	return out
}
