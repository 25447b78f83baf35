package main

import (
	"net/http"
	"strconv"

	"github.com/CodedInternet/gonxt/brick"
	"github.com/go-chi/chi"
	"github.com/go-chi/render"
)

//---
// Payloads
//---

type MotorPayload struct {
	brick.MotorCommand
}

func (m *MotorPayload) Bind(r *http.Request) error {
	return nil
}

type StatePayload struct {
	Motors map[string]brick.MotorReport `json:"motors"`
}

//---
// Views
//---

// GetState reports the last state written to every motor.
func GetState(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, StatePayload{ENV.Brick.State()})
}

func SetMotor(w http.ResponseWriter, r *http.Request) {
	data := &MotorPayload{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	if err := ENV.Brick.SetMotor(chi.URLParam(r, "name"), data.MotorCommand); err != nil {
		render.Render(w, r, ErrDevice(err))
		return
	}

	render.JSON(w, r, StatePayload{ENV.Brick.State()})
}

// Stop cuts power to every motor. Pass ?brake=true to hold them.
func Stop(w http.ResponseWriter, r *http.Request) {
	var brake bool
	if v := r.URL.Query().Get("brake"); v != "" {
		var err error
		if brake, err = strconv.ParseBool(v); err != nil {
			render.Render(w, r, ErrInvalidRequest(err))
			return
		}
	}

	if err := ENV.Brick.Stop(brake); err != nil {
		render.Render(w, r, ErrDevice(err))
		return
	}

	render.JSON(w, r, StatePayload{ENV.Brick.State()})
}
