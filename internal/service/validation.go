package service

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/alimovshaxzod89/SMS/internal/models"
	appErrors "github.com/alimovshaxzod89/SMS/pkg/errors"
)

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)
	phonePattern    = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
)

// NewValidator returns a validator reporting JSON field names and knowing
// the school-specific tags: username, phone and bloodtype.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("bloodtype", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		for _, bt := range models.BloodTypes {
			if bt == value {
				return true
			}
		}
		return false
	})
	return v
}

func validationError(err error, payload string) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
			fmt.Sprintf("invalid %s payload: %s failed on %s", payload, fe.Field(), fe.Tag()))
	}
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
		fmt.Sprintf("invalid %s payload", payload))
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseDate accepts RFC3339 and the date-only and minute-precision forms
// sent by HTML date and datetime-local inputs. Zone-less values are UTC.
func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, appErrors.Malformed("Invalid date format")
}

func parseOptionalDate(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	t, err := parseDate(*raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	v := strings.TrimSpace(*value)
	return &v
}
