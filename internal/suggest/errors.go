package suggest

import (
	"errors"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"

	"github.com/7svn/smeta-backend/internal/estimates/domain"
)

// Error categories of a failed suggestion call.
var (
	ErrInvalidCredential = errors.New("invalid credential")
	ErrTransient         = errors.New("transient failure")
	ErrValidation        = errors.New("invalid response")
)

var errEmptyResponse = errors.New("модель вернула пустой ответ")

const (
	credentialMessage = "Проблема с API-ключом. Пожалуйста, выберите корректный ключ."
	genericFallback   = "проверьте интернет или попробуйте позже"
)

var credentialMarkers = []string{"API key not valid", "INVALID_ARGUMENT"}

// Error carries the category next to the underlying failure.
// errors.Is matches both.
type Error struct {
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// Classify wraps err into one of the three categories. Nil stays nil and
// already classified errors are returned as is.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return err
	}
	return &Error{Kind: kindOf(err), Err: err}
}

func kindOf(err error) error {
	msg := err.Error()
	for _, m := range credentialMarkers {
		if strings.Contains(msg, m) {
			return ErrInvalidCredential
		}
	}
	if errors.Is(err, ErrNotConfigured) {
		return ErrInvalidCredential
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch {
		case gerr.Code == http.StatusUnauthorized || gerr.Code == http.StatusForbidden:
			return ErrInvalidCredential
		case gerr.Code == http.StatusTooManyRequests || gerr.Code >= 500:
			return ErrTransient
		case gerr.Code >= 400:
			return ErrValidation
		}
	}

	if errors.Is(err, domain.ErrEmptyPrompt) || errors.Is(err, errEmptyResponse) {
		return ErrValidation
	}
	// network errors, timeouts and anything unknown
	return ErrTransient
}

// UserMessage is the text shown to the user for a failed call.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(Classify(err), ErrInvalidCredential) {
		return credentialMessage
	}
	msg := err.Error()
	var se *Error
	if errors.As(err, &se) && se.Err != nil {
		msg = se.Err.Error()
	}
	if strings.TrimSpace(msg) == "" {
		msg = genericFallback
	}
	return "Ошибка: " + msg
}

// KindName is a short label for logs and API responses.
func KindName(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidCredential):
		return "credential"
	case errors.Is(err, ErrValidation):
		return "validation"
	default:
		return "transient"
	}
}
