package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/zapponejosh/synaxaire-program/internal/program"
)

// Response represents a standard API response.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo contains error details.
type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data interface{}) error {
	return WriteJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, status int, message string, code ...string) error {
	errInfo := ErrorInfo{
		Message: message,
	}
	if len(code) > 0 {
		errInfo.Code = code[0]
	}

	return WriteJSON(w, status, Response{
		Success: false,
		Error:   &errInfo,
	})
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusNotFound, message, "NOT_FOUND")
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusInternalServerError, message, "INTERNAL_ERROR")
}

// WriteUnauthorized writes a 401 Unauthorized response.
func WriteUnauthorized(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusUnauthorized, message, "UNAUTHORIZED")
}

// WriteTooManyRequests writes a 429 Too Many Requests response.
func WriteTooManyRequests(w http.ResponseWriter, message string) error {
	w.Header().Set("Retry-After", "1")
	return WriteError(w, http.StatusTooManyRequests, message, "RATE_LIMITED")
}

// WriteProgramError maps a generation error to its status and code.
// Validation problems are the caller's fault and their message is shown
// as is; anything else is reported without internals.
func WriteProgramError(w http.ResponseWriter, err error) error {
	kind := program.Kind(err)
	switch kind {
	case program.KindValidation:
		var verr *program.ValidationError
		errors.As(err, &verr)
		return WriteError(w, http.StatusBadRequest, verr.Error(), kind)
	case program.KindInvalidDate:
		return WriteError(w, http.StatusBadRequest, err.Error(), kind)
	case program.KindRender:
		return WriteError(w, http.StatusInternalServerError, "Failed to render program", kind)
	default:
		return WriteError(w, http.StatusInternalServerError, "Failed to generate program", kind)
	}
}

// WriteAttachment sends a rendered document as a download.
func WriteAttachment(w http.ResponseWriter, contentType, filename string, data []byte) error {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, err := w.Write(data)
	return err
}
