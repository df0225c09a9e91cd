package query

import (
	"errors"
	"fmt"
	"strings"

	appErrors "github.com/alimovshaxzod89/SMS/pkg/errors"
)

// Translate maps store failures onto the API error taxonomy. notFound is
// used as the message for StoreNotFound.
func Translate(err error, notFound string) error {
	if err == nil {
		return nil
	}
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}

	var se *StoreError
	if !errors.As(err, &se) {
		if ce := ContextError("", err); ce != nil {
			se = ce
		} else {
			return appErrors.Wrap(err, appErrors.ErrInfrastructure.Code, appErrors.ErrInfrastructure.Status, appErrors.ErrInfrastructure.Message)
		}
	}

	switch se.Kind {
	case StoreNotFound:
		if notFound == "" {
			notFound = appErrors.ErrNotFound.Message
		}
		return appErrors.Clone(appErrors.ErrNotFound, notFound)
	case StoreDuplicate:
		msg := "Duplicate value"
		if se.Field != "" {
			msg = fmt.Sprintf("Duplicate value for %s", se.Field)
		}
		return appErrors.Wrap(se, appErrors.ErrBusinessRule.Code, appErrors.ErrBusinessRule.Status, msg)
	case StoreTimeout:
		out := appErrors.Wrap(se, appErrors.ErrInfrastructure.Code, appErrors.ErrInfrastructure.Status, "storage timeout")
		out.Retryable = true
		return out
	default:
		return appErrors.Wrap(se, appErrors.ErrInfrastructure.Code, appErrors.ErrInfrastructure.Status, appErrors.ErrInfrastructure.Message)
	}
}

// MalformedID is the error for an identifier of the wrong shape.
func MalformedID(noun string) error {
	return appErrors.Malformed(fmt.Sprintf("Invalid %s ID format", noun))
}

// NotFound is the error for a missing primary entity.
func NotFound(noun string) error {
	return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("%s not found", capitalize(noun)))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
