package state

import "github.com/google/uuid"

// The founding roster. Used only when no stored snapshot exists anywhere.
var seedPlayers = []struct {
	name string
	pos  string
}{
	{"강민성", PosField}, {"이용범", PosKeeper}, {"이호준", PosField}, {"최광민", PosField},
	{"성은호", PosField}, {"배호성", PosField}, {"강종혁", PosField}, {"이창주", PosField},
	{"주경범", PosField}, {"최우현", PosField}, {"최준형", PosKeeper}, {"김한진", PosKeeper},
	{"장지영", PosField}, {"최준혁", PosField}, {"정민창", PosField}, {"김규연", PosField},
	{"김병준", PosField}, {"윤호석", PosField}, {"이세형", PosField}, {"정제윈", PosField},
	{"한형진", PosField},
}

// Seed builds the fallback snapshot: the default player registry, default
// team names, and one empty session for the upcoming Sunday.
func Seed() PersistShape {
	today := EnsureSunday("")
	players := make([]Player, 0, len(seedPlayers))
	for _, sp := range seedPlayers {
		players = append(players, Player{
			ID:     uuid.NewString(),
			Name:   sp.name,
			Active: true,
			Pos:    sp.pos,
		})
	}
	return PersistShape{
		Players:        players,
		TeamNames:      map[TeamID]string{TeamA: "팀 A", TeamB: "팀 B", TeamC: "팀 C"},
		SessionsByDate: map[string]Session{today: EmptySession()},
		SessionDate:    today,
	}
}
