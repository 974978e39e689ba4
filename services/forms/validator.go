package forms

import (
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the wire format for event and delivery dates.
const DateLayout = "2006-01-02"

var emailPattern = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,4}$`)

// newValidator returns a validator that reports fields by their JSON names and
// knows the "weekend" and "emailaddr" rules.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("weekend", func(fl validator.FieldLevel) bool {
		return weekendMessage(fl.Field().String()) == ""
	})
	_ = v.RegisterValidation("emailaddr", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	return v
}

// weekendMessage returns the message for an invalid event date, or "" when the
// date falls on a Saturday or Sunday.
func weekendMessage(date string) string {
	if strings.TrimSpace(date) == "" {
		return "Event Date is required"
	}
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return "Please select a weekend date (Saturday or Sunday)"
	}
	if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
		return "Please select a weekend date (Saturday or Sunday)"
	}
	return ""
}
