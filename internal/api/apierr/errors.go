package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/megahubnet/portal/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeInsufficientFunds   = "INSUFFICIENT_FUNDS"
	CodeInvalidAmount       = "INVALID_AMOUNT"
	CodeUnknownItem         = "UNKNOWN_ITEM"
	CodeAlreadyOwned        = "ALREADY_OWNED"
	CodeNotOwned            = "NOT_OWNED"
	CodeUnknownSetting      = "UNKNOWN_SETTING"
	CodeInvalidSettingValue = "INVALID_SETTING_VALUE"
	CodeEmptyNickname       = "EMPTY_NICKNAME"
	CodeUnknownGame         = "UNKNOWN_GAME"
	CodeNoActiveGame        = "NO_ACTIVE_GAME"
	CodeRoomNotFound        = "ROOM_NOT_FOUND"
	CodeNotInRoom           = "NOT_IN_ROOM"
	CodeEmptyMessage        = "EMPTY_MESSAGE"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrInsufficientFunds):
		return &httpError{http.StatusConflict, APIError{CodeInsufficientFunds, "Insufficient credits"}}
	case errors.Is(err, model.ErrInvalidAmount):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidAmount, "Amount must be positive"}}
	case errors.Is(err, model.ErrUnknownItem):
		return &httpError{http.StatusNotFound, APIError{CodeUnknownItem, "Unknown shop item"}}
	case errors.Is(err, model.ErrAlreadyOwned):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyOwned, "Item already owned"}}
	case errors.Is(err, model.ErrNotOwned):
		return &httpError{http.StatusConflict, APIError{CodeNotOwned, "Item not owned"}}
	case errors.Is(err, model.ErrUnknownSetting):
		return &httpError{http.StatusNotFound, APIError{CodeUnknownSetting, "Unknown setting"}}
	case errors.Is(err, model.ErrInvalidSettingValue):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidSettingValue, "Invalid setting value"}}
	case errors.Is(err, model.ErrEmptyNickname):
		return &httpError{http.StatusBadRequest, APIError{CodeEmptyNickname, "Nickname must not be empty"}}
	case errors.Is(err, model.ErrUnknownGame):
		return &httpError{http.StatusNotFound, APIError{CodeUnknownGame, "Unknown game"}}
	case errors.Is(err, model.ErrNoActiveGame):
		return &httpError{http.StatusNotFound, APIError{CodeNoActiveGame, "No game in progress"}}
	case errors.Is(err, model.ErrRoomNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRoomNotFound, "Room not found"}}
	case errors.Is(err, model.ErrNotInRoom):
		return &httpError{http.StatusConflict, APIError{CodeNotInRoom, "Not connected to a room"}}
	case errors.Is(err, model.ErrEmptyMessage):
		return &httpError{http.StatusBadRequest, APIError{CodeEmptyMessage, "Message must not be empty"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
