package api

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/openfun/marsha-live/common"
	"gorm.io/gorm"
)

// methodHandlers DICT of method-endpoint handler
type methodHandlers map[string]http.HandlerFunc

// registerPathPrefix registers new method handler for a path prefix
func registerPathPrefix(parent *mux.Router, prefix string, handler methodHandlers) *mux.Router {
	router := parent.PathPrefix(prefix).Subrouter()
	for method, handler := range handler {
		router.Methods(method).Path("").HandlerFunc(handler)
	}
	return router
}

// statusCodeForError derive the HTTP status code reflecting a core manager error
func statusCodeForError(err error) int {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return http.StatusNotFound
	}
	if errors.As(err, &common.InvalidStateError{}) {
		return http.StatusConflict
	}
	if errors.As(err, &common.UnsupportedLiveTypeError{}) {
		return http.StatusBadRequest
	}
	if errors.As(err, &common.AuthenticationError{}) {
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}
