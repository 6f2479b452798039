package main

import (
	"errors"
	"net/http"

	"github.com/wib2/futsal-record/internals/gate"
)

type pinRequestBody struct {
	Pin string `json:"pin"`
}

// GateStatus tells the frontend which gate screen to render: PIN setup,
// unlock prompt, or forced viewer mode.
func (app *App) GateStatus(w http.ResponseWriter, r *http.Request) {
	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string]interface{}{
		"pin_set": app.Gate.HasPin(),
		"viewer":  viewerForced(r),
	}})
}

// SetPin stores the shared PIN on first use and returns an editor token.
func (app *App) SetPin(w http.ResponseWriter, r *http.Request) {
	var body pinRequestBody
	if err := getBody(r, &body); err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "Invalid request body"})
		return
	}

	token, err := app.Gate.SetPin(body.Pin)
	if err != nil {
		sendResponse(w, httpResp{Status: gateStatus(err), IsError: true, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusCreated, Data: map[string]interface{}{"token": token}})
}

// Unlock trades the PIN for an editor token.
func (app *App) Unlock(w http.ResponseWriter, r *http.Request) {
	var body pinRequestBody
	if err := getBody(r, &body); err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "Invalid request body"})
		return
	}

	token, err := app.Gate.Unlock(body.Pin)
	if err != nil {
		sendResponse(w, httpResp{Status: gateStatus(err), IsError: true, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string]interface{}{"token": token}})
}

// ResetPin swaps the shared PIN for a new one. Knowing the current PIN is
// the authorization; every outstanding editor token is revoked.
func (app *App) ResetPin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Pin    string `json:"pin"`
		NewPin string `json:"new_pin"`
	}
	if err := getBody(r, &body); err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "Invalid request body"})
		return
	}

	token, err := app.Gate.ResetPin(body.Pin, body.NewPin)
	if err != nil {
		sendResponse(w, httpResp{Status: gateStatus(err), IsError: true, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string]interface{}{"token": token}})
}

// Lock revokes the caller's editor token.
func (app *App) Lock(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	var token string
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		token = authHeader[7:]
	}

	if err := app.Gate.Lock(token); err != nil {
		sendResponse(w, httpResp{Status: http.StatusInternalServerError, IsError: true, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string]interface{}{"message": "Locked"}})
}

func gateStatus(err error) int {
	switch {
	case errors.Is(err, gate.ErrEmptyPin), errors.Is(err, gate.ErrPinSet), errors.Is(err, gate.ErrPinNotSet):
		return http.StatusBadRequest
	case errors.Is(err, gate.ErrPinWrong):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
