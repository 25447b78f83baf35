package main

import (
	"errors"
	"net/http"

	"github.com/CodedInternet/gonxt/brick"
	"github.com/asdine/storm"
	"github.com/go-chi/chi"
	"github.com/go-chi/render"
)

// Preset is a named set of motor commands that can be replayed in one write.
type Preset struct {
	ID     int                           `storm:"increment" json:"id"` // pk
	Name   string                        `storm:"unique" json:"name"`
	Motors map[string]brick.MotorCommand `json:"motors"`
}

var (
	ErrPresetName   = errors.New("preset name is required")
	ErrPresetMotors = errors.New("preset has no motors")
)

func (p *Preset) Bind(r *http.Request) error {
	if p.Name == "" {
		return ErrPresetName
	}
	if len(p.Motors) == 0 {
		return ErrPresetMotors
	}
	return nil
}

// savePreset stores p, replacing any preset with the same name.
func savePreset(db *storm.DB, p *Preset) error {
	var existing Preset
	err := db.One("Name", p.Name, &existing)
	switch err {
	case nil:
		p.ID = existing.ID
	case storm.ErrNotFound:
		p.ID = 0
	default:
		return err
	}
	return db.Save(p)
}

// applyPreset looks up a preset by name and sends it to the brick.
func applyPreset(db *storm.DB, b *brick.Brick, name string) (*Preset, error) {
	var p Preset
	if err := db.One("Name", name, &p); err != nil {
		return nil, err
	}
	return &p, b.Apply(p.Motors)
}

//---
// Views
//---

func ListPresets(w http.ResponseWriter, r *http.Request) {
	var presets []Preset
	if err := ENV.DB.All(&presets); err != nil {
		render.Render(w, r, ErrRender(err))
		return
	}
	if presets == nil {
		presets = []Preset{}
	}

	render.JSON(w, r, presets)
}

func SavePreset(w http.ResponseWriter, r *http.Request) {
	data := &Preset{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	// reject aliases the brick does not know before anything is stored
	for name := range data.Motors {
		if _, err := ENV.Brick.Port(name); err != nil {
			render.Render(w, r, ErrInvalidRequest(err))
			return
		}
	}

	if err := savePreset(ENV.DB, data); err != nil {
		render.Render(w, r, ErrRender(err))
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, data)
}

func ApplyPreset(w http.ResponseWriter, r *http.Request) {
	p, err := applyPreset(ENV.DB, ENV.Brick, chi.URLParam(r, "name"))
	if err != nil {
		if err == storm.ErrNotFound {
			render.Render(w, r, ErrNotFound)
			return
		}
		if p == nil {
			render.Render(w, r, ErrRender(err))
			return
		}
		render.Render(w, r, ErrDevice(err))
		return
	}

	render.JSON(w, r, StatePayload{ENV.Brick.State()})
}
