package program

import (
	"errors"
	"fmt"

	"github.com/zapponejosh/synaxaire-program/internal/calendar"
	"github.com/zapponejosh/synaxaire-program/internal/synaxaire"
)

// Error kinds reported to callers.
const (
	KindValidation  = "validation_error"
	KindInvalidDate = "invalid_date"
	KindDataLoad    = "data_load_error"
	KindRender      = "render_error"
	KindInternal    = "internal_error"
)

// ValidationError reports malformed or out-of-range request input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// RenderError reports that a document could not be produced.
type RenderError struct {
	Format string
	Err    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Format, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Kind returns the machine-readable kind of err, or "" for a nil error.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	var (
		validation *ValidationError
		invalid    *calendar.InvalidDateError
		load       *synaxaire.DataLoadError
		render     *RenderError
	)
	switch {
	case errors.As(err, &validation):
		return KindValidation
	case errors.As(err, &invalid):
		return KindInvalidDate
	case errors.As(err, &load):
		return KindDataLoad
	case errors.As(err, &render):
		return KindRender
	default:
		return KindInternal
	}
}
