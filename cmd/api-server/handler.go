package main

import "net/http"

func (app *App) initHandlers() {
	app.R.Get("/ws", app.handleWebSocket)

	app.R.Get("/gate", app.GateStatus)
	app.R.Post("/gate/pin", app.SetPin)
	app.R.Post("/gate/pin/reset", app.ResetPin)
	app.R.Post("/gate/unlock", app.Unlock)
	app.R.Post("/gate/lock", app.EditorOnly(http.HandlerFunc(app.Lock)))

	app.R.Get("/state", app.GetState)
	app.R.Get("/session", app.GetSession)

	app.R.Get("/players", app.GetPlayers)
	app.R.Post("/players", app.EditorOnly(http.HandlerFunc(app.AddPlayer)))
	app.R.Put("/players/{id}", app.EditorOnly(http.HandlerFunc(app.UpdatePlayer)))
	app.R.Post("/players/{id}/toggle", app.EditorOnly(http.HandlerFunc(app.TogglePlayer)))

	app.R.Post("/teams/name", app.EditorOnly(http.HandlerFunc(app.SetTeamName)))

	app.R.Post("/session/date", app.EditorOnly(http.HandlerFunc(app.ChangeDate)))
	app.R.Post("/session/rosters/toggle", app.EditorOnly(http.HandlerFunc(app.ToggleRoster)))
	app.R.Post("/session/matches", app.EditorOnly(http.HandlerFunc(app.AddMatch)))
	app.R.Put("/session/matches/{id}", app.EditorOnly(http.HandlerFunc(app.UpdateMatch)))
	app.R.Delete("/session/matches/{id}", app.EditorOnly(http.HandlerFunc(app.DeleteMatch)))
	app.R.Post("/session/matches/{id}/stats", app.EditorOnly(http.HandlerFunc(app.SetMatchStat)))
	app.R.Post("/session/awards", app.EditorOnly(http.HandlerFunc(app.SetDefensiveAward)))
	app.R.Post("/session/notes", app.EditorOnly(http.HandlerFunc(app.SetNotes)))
	app.R.Post("/session/teamname", app.EditorOnly(http.HandlerFunc(app.SetSessionTeamName)))
	app.R.Post("/session/look", app.EditorOnly(http.HandlerFunc(app.SetSessionLook)))

	app.R.Get("/standings", app.GetStandings)
	app.R.Get("/scores/daily", app.GetDailyScores)
	app.R.Get("/scores/cumulative", app.GetCumulativeScores)

	app.R.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("I am Healthy"))
	})
}
