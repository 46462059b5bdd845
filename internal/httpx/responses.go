package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
)

const (
	MsgAccessDenied     = "Access Denied"
	MsgInvalidToken     = "Invalid Token"
	MsgValidationFailed = "Validation failed"
	MsgInternalError    = "Internal Server Error"
	MsgBodyTooLarge     = "Request body too large"
)

type MessageResponse struct {
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// JSONMessage writes {"message": ...}, the body shape used by every
// middleware and resource failure.
func JSONMessage(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, MessageResponse{Message: message})
}

// JSONError writes {"error": ...}.
func JSONError(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, ErrorResponse{Error: message})
}

func JSONValidationError(w http.ResponseWriter, verr *ValidationError) {
	JSON(w, http.StatusBadRequest, MessageResponse{
		Message: MsgValidationFailed,
		Details: verr.Details,
	})
}

// IsBodyTooLarge reports whether err came from reading past a
// RequestSizeLimitMiddleware limit.
func IsBodyTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}

func JSONBodyTooLarge(w http.ResponseWriter) {
	JSONMessage(w, http.StatusRequestEntityTooLarge, MsgBodyTooLarge)
}

func JSONInternalError(w http.ResponseWriter) {
	JSONMessage(w, http.StatusInternalServerError, MsgInternalError)
}

func JSONSuccessNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
