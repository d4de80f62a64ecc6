// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// JSONContentType is the content type of every json response.
const JSONContentType = "application/json; charset=utf-8"

// httpError carries the status a handler error is answered with.
type httpError struct {
	cause  error
	status int
}

func (e *httpError) Error() string {
	if e.cause == nil {
		return http.StatusText(e.status)
	}
	return e.cause.Error()
}

func (e *httpError) Unwrap() error { return e.cause }

// HTTPError annotates cause with an http status.
func HTTPError(cause error, status int) error {
	return &httpError{cause, status}
}

// BadRequest answers cause with 400.
func BadRequest(cause error) error { return HTTPError(cause, http.StatusBadRequest) }

// NotFound answers cause with 404.
func NotFound(cause error) error { return HTTPError(cause, http.StatusNotFound) }

// Conflict answers cause with 409.
func Conflict(cause error) error { return HTTPError(cause, http.StatusConflict) }

// HandlerFunc is an http.HandlerFunc returning an error. An error annotated by HTTPError,
// even when wrapped, is answered with its status, any other with 500.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// WrapHandlerFunc converts f to http.HandlerFunc.
func WrapHandlerFunc(f HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := f(w, r)
		if err == nil {
			return
		}
		status := http.StatusInternalServerError
		var he *httpError
		if errors.As(err, &he) {
			status = he.status
			if he.cause == nil {
				w.WriteHeader(status)
				return
			}
		}
		http.Error(w, err.Error(), status)
	}
}

// ParseJSON decodes a json object, rejecting unknown fields.
func ParseJSON(r io.Reader, v any) error {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// WriteJSON answers with obj in json.
func WriteJSON(w http.ResponseWriter, obj any) error {
	w.Header().Set("Content-Type", JSONContentType)
	return json.NewEncoder(w).Encode(obj)
}

// M shortcut for type map[string]any.
type M map[string]any
