package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/wib2/futsal-record/internals/state"
)

func (app *App) GetPlayers(w http.ResponseWriter, r *http.Request) {
	snap := app.Syncer.Snapshot()
	sendResponse(w, httpResp{Status: http.StatusOK, Data: snap.Players})
}

func (app *App) AddPlayer(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := getBody(r, &body); err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "Invalid request body"})
		return
	}

	snap, err := app.Syncer.Apply(func(s state.PersistShape) (state.PersistShape, error) {
		return state.AddPlayer(s, body.Name)
	})
	if err != nil {
		sendResponse(w, httpResp{Status: mutationStatus(err), IsError: true, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusCreated, Data: snap.Players})
}

func (app *App) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var body struct {
		Name string `json:"name"`
		Pos  string `json:"pos"`
	}
	if err := getBody(r, &body); err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "Invalid request body"})
		return
	}

	snap, err := app.Syncer.Apply(func(s state.PersistShape) (state.PersistShape, error) {
		return state.UpdatePlayer(s, id, body.Name, body.Pos)
	})
	if err != nil {
		sendResponse(w, httpResp{Status: mutationStatus(err), IsError: true, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: snap.Players})
}

func (app *App) TogglePlayer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	snap, err := app.Syncer.Apply(func(s state.PersistShape) (state.PersistShape, error) {
		return state.TogglePlayerActive(s, id)
	})
	if err != nil {
		sendResponse(w, httpResp{Status: mutationStatus(err), IsError: true, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: snap.Players})
}

func (app *App) SetTeamName(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Team state.TeamID `json:"team"`
		Name string       `json:"name"`
	}
	if err := getBody(r, &body); err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "Invalid request body"})
		return
	}

	snap, err := app.Syncer.Apply(func(s state.PersistShape) (state.PersistShape, error) {
		return state.SetGlobalTeamName(s, body.Team, body.Name)
	})
	if err != nil {
		sendResponse(w, httpResp{Status: mutationStatus(err), IsError: true, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: snap.TeamNames})
}

// mutationStatus maps the state package's sentinel errors to HTTP codes.
func mutationStatus(err error) int {
	switch {
	case errors.Is(err, state.ErrEmptyName),
		errors.Is(err, state.ErrDuplicateName),
		errors.Is(err, state.ErrUnknownTeam),
		errors.Is(err, state.ErrPlayerInactive):
		return http.StatusBadRequest
	case errors.Is(err, state.ErrUnknownPlayer),
		errors.Is(err, state.ErrUnknownMatch):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
