package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/wib2/futsal-record/internals/state"
)

// GetState returns the whole document; the frontend binds to it directly.
func (app *App) GetState(w http.ResponseWriter, r *http.Request) {
	sendResponse(w, httpResp{Status: http.StatusOK, Data: app.Syncer.Snapshot()})
}

// GetSession returns one date's session (default: the selected date).
func (app *App) GetSession(w http.ResponseWriter, r *http.Request) {
	snap := app.Syncer.Snapshot()
	date := r.URL.Query().Get("date")
	if date == "" {
		date = snap.SessionDate
	}
	ses := snap.SessionFor(date)
	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string]interface{}{
		"date":    state.EnsureSunday(date),
		"session": ses,
	}})
}

// ChangeDate switches the selected date; non-Sundays snap forward.
func (app *App) ChangeDate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Date string `json:"date"`
	}
	if err := getBody(r, &body); err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "Invalid request body"})
		return
	}

	snap, err := app.Syncer.Apply(func(s state.PersistShape) (state.PersistShape, error) {
		return state.ChangeDate(s, body.Date), nil
	})
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusInternalServerError, IsError: true, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string]interface{}{"session_date": snap.SessionDate}})
}

func (app *App) ToggleRoster(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Team     state.TeamID `json:"team"`
		PlayerID string       `json:"player_id"`
	}
	if err := getBody(r, &body); err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "Invalid request body"})
		return
	}

	snap, err := app.Syncer.Apply(func(s state.PersistShape) (state.PersistShape, error) {
		return state.ToggleRoster(s, body.Team, body.PlayerID)
	})
	if err != nil {
		sendResponse(w, httpResp{Status: mutationStatus(err), IsError: true, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: snap.CurrentSession().Rosters})
}

func (app *App) AddMatch(w http.ResponseWriter, r *http.Request) {
	var created state.Match
	_, err := app.Syncer.Apply(func(s state.PersistShape) (state.PersistShape, error) {
		next, m := state.AddMatch(s)
		created = m
		return next, nil
	})
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusInternalServerError, IsError: true, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusCreated, Data: created})
}

func (app *App) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var patch state.MatchPatch
	if err := getBody(r, &patch); err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "Invalid request body"})
		return
	}

	snap, err := app.Syncer.Apply(func(s state.PersistShape) (state.PersistShape, error) {
		return state.UpdateMatch(s, id, patch)
	})
	if err != nil {
		sendResponse(w, httpResp{Status: mutationStatus(err), IsError: true, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: snap.CurrentSession().Matches})
}

func (app *App) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	snap, err := app.Syncer.Apply(func(s state.PersistShape) (state.PersistShape, error) {
		return state.DeleteMatch(s, id)
	})
	if err != nil {
		sendResponse(w, httpResp{Status: mutationStatus(err), IsError: true, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: snap.CurrentSession().Matches})
}

func (app *App) SetMatchStat(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var body struct {
		PlayerID string `json:"player_id"`
		Goals    int    `json:"goals"`
		Assists  int    `json:"assists"`
	}
	if err := getBody(r, &body); err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "Invalid request body"})
		return
	}

	snap, err := app.Syncer.Apply(func(s state.PersistShape) (state.PersistShape, error) {
		return state.SetMatchStat(s, id, body.PlayerID, body.Goals, body.Assists)
	})
	if err != nil {
		sendResponse(w, httpResp{Status: mutationStatus(err), IsError: true, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: snap.CurrentSession().MatchStats[id]})
}

func (app *App) SetDefensiveAward(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Team     state.TeamID `json:"team"`
		PlayerID string       `json:"player_id"`
	}
	if err := getBody(r, &body); err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "Invalid request body"})
		return
	}

	snap, err := app.Syncer.Apply(func(s state.PersistShape) (state.PersistShape, error) {
		return state.SetDefensiveAward(s, body.Team, body.PlayerID)
	})
	if err != nil {
		sendResponse(w, httpResp{Status: mutationStatus(err), IsError: true, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: snap.CurrentSession().DefAwards})
}

func (app *App) SetNotes(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Notes string `json:"notes"`
	}
	if err := getBody(r, &body); err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "Invalid request body"})
		return
	}

	_, err := app.Syncer.Apply(func(s state.PersistShape) (state.PersistShape, error) {
		return state.SetNotes(s, body.Notes), nil
	})
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusInternalServerError, IsError: true, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string]interface{}{"message": "Notes saved"}})
}

func (app *App) SetSessionTeamName(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Team state.TeamID `json:"team"`
		Name string       `json:"name"`
	}
	if err := getBody(r, &body); err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "Invalid request body"})
		return
	}

	snap, err := app.Syncer.Apply(func(s state.PersistShape) (state.PersistShape, error) {
		return state.SetSessionTeamName(s, body.Team, body.Name)
	})
	if err != nil {
		sendResponse(w, httpResp{Status: mutationStatus(err), IsError: true, Error: err.Error()})
		return
	}

	cur := snap.CurrentSession()
	sendResponse(w, httpResp{Status: http.StatusOK, Data: snap.EffectiveTeamNames(cur)})
}

func (app *App) SetSessionLook(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Formation string                  `json:"formation"`
		Jerseys   map[state.TeamID]string `json:"jerseys"`
	}
	if err := getBody(r, &body); err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "Invalid request body"})
		return
	}

	_, err := app.Syncer.Apply(func(s state.PersistShape) (state.PersistShape, error) {
		return state.SetSessionLook(s, body.Formation, body.Jerseys), nil
	})
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusInternalServerError, IsError: true, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string]interface{}{"message": "Session look saved"}})
}
