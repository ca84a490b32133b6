package router

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wechest/backend/pkg/errorx"
)

// ErrAbort tells the router that a middleware already wrote the response.
var ErrAbort = errors.New("response already written")

type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func errorxBadRequest() error {
	return errorx.New(errorx.BadRequest, "Cannot parse the request")
}

func httpStatus(code errorx.Code) int {
	switch code {
	case errorx.BadRequest:
		return http.StatusBadRequest
	case errorx.Unauthenticated:
		return http.StatusUnauthorized
	case errorx.PermissionDenied:
		return http.StatusForbidden
	case errorx.NotFound:
		return http.StatusNotFound
	case errorx.AlreadyExists:
		return http.StatusConflict
	case errorx.TooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrAbort) {
		return
	}

	var errx errorx.Error
	if errors.As(err, &errx) {
		writeJSON(w, httpStatus(errx.Code), errorBody{Success: false, Error: errx.Message})
		return
	}

	// Never leak internals to the client.
	writeJSON(w, http.StatusInternalServerError,
		errorBody{Success: false, Error: errorx.Unknown.Message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	b, err := json.Marshal(body)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}
