package main

import (
	"net/http"

	nxterrors "github.com/CodedInternet/gonxt/nxt/errors"
	"github.com/go-chi/render"
	"github.com/pkg/errors"
)

//---
// Error responses
//---

type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText string `json:"status"`          // user-level status message
	ErrorText  string `json:"error,omitempty"` // application-level error message, for debugging
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func errResponse(err error, status int, text string) *ErrResponse {
	resp := &ErrResponse{
		Err:            err,
		HTTPStatusCode: status,
		StatusText:     text,
	}
	if err != nil {
		resp.ErrorText = err.Error()
	}
	return resp
}

func ErrInvalidRequest(err error) render.Renderer {
	return errResponse(err, http.StatusBadRequest, "Invalid request.")
}

func ErrUnauthorized(err error) render.Renderer {
	return errResponse(err, http.StatusUnauthorized, "Unauthorized.")
}

func ErrPermissionDenied(err error) render.Renderer {
	return errResponse(err, http.StatusForbidden, "Permission denied.")
}

func ErrMissing(err error) render.Renderer {
	return errResponse(err, http.StatusNotFound, "Resource not found.")
}

func ErrRender(err error) render.Renderer {
	return errResponse(err, http.StatusInternalServerError, "Error rendering response.")
}

// ErrDevice maps an error from the brick onto a response. Bad input from the
// client is a 400, an unknown alias a 404, anything else came from the link.
func ErrDevice(err error) render.Renderer {
	var unknown nxterrors.UnknownMotorError
	switch {
	case errors.Is(err, nxterrors.ErrInvalidArgument):
		return ErrInvalidRequest(err)
	case errors.As(err, &unknown):
		return ErrMissing(err)
	}
	return errResponse(err, http.StatusBadGateway, "Device unavailable.")
}

var ErrNotFound = &ErrResponse{HTTPStatusCode: http.StatusNotFound, StatusText: "Resource not found."}
