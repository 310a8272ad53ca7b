package testdata

import (
	"encoding/json"

	"git.lost.host/meutraa/rain/internal/game"
)

func GetChart() (*game.Chart, error) {
	var chart game.Chart
	if err := json.Unmarshal([]byte(data), &chart); nil != err {
		return nil, err
	}
	return &chart, nil
}

const data = `{
	"Notes": [
		{"ID": 1, "Column": 0, "Visual": true, "Instrument": "piano", "Velocity": 96, "Pitch": 60, "Start": 0, "End": 0},
		{"ID": 2, "Column": 1, "Visual": true, "Instrument": "piano", "Velocity": 90, "Pitch": 61, "Start": 0, "End": 1500000000},
		{"ID": 3, "Column": 2, "Visual": false, "Instrument": "bass", "Velocity": 80, "Pitch": 38, "Start": 210000000, "End": 300000000},
		{"ID": 4, "Column": 3, "Visual": true, "Instrument": "piano", "Velocity": 100, "Pitch": 67, "Start": 420000000, "End": 430000000}
	],
	"NoteCount": 4,
	"HoldCount": 1,
	"Sum": "fixture"
}`
