package parser

import (
	"crypto/sha256"
	"encoding/base64"
	"io/ioutil"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"git.lost.host/meutraa/rain/internal/game"
)

// DefaultParser reads the plain-text chart format: one event per line,
//
//	instrument,velocity,pitch,start,end,visual
//
// with start/end in seconds and the column derived as pitch mod 4.
// Malformed rows are dropped here; the engine only ever sees well-formed
// records.
type DefaultParser struct{}

func (p *DefaultParser) parseRow(line string) (game.Note, bool) {
	fields := strings.Split(line, ",")
	if len(fields) != 6 {
		return game.Note{}, false
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	velocity, err := strconv.Atoi(fields[1])
	if nil != err {
		return game.Note{}, false
	}
	pitch, err := strconv.Atoi(fields[2])
	if nil != err || pitch < 0 || pitch > 127 {
		return game.Note{}, false
	}
	start, err := strconv.ParseFloat(fields[3], 64)
	if nil != err {
		return game.Note{}, false
	}
	end, err := strconv.ParseFloat(fields[4], 64)
	if nil != err || end < start {
		return game.Note{}, false
	}
	visual, err := strconv.ParseBool(fields[5])
	if nil != err {
		return game.Note{}, false
	}

	return game.Note{
		Column:     pitch % game.NColumns,
		Visual:     visual,
		Instrument: fields[0],
		Velocity:   velocity,
		Pitch:      pitch,
		// Chart timestamps are millisecond precision
		Start: time.Duration(math.Round(start*1000)) * time.Millisecond,
		End:   time.Duration(math.Round(end*1000)) * time.Millisecond,
	}, true
}

func (p *DefaultParser) Parse(file string) (*game.Chart, error) {
	data, err := ioutil.ReadFile(file)
	if nil != err {
		return nil, err
	}

	str := strings.ReplaceAll(string(data), "\r", "")
	notes := []game.Note{}
	holdCount := int64(0)
	for _, line := range strings.Split(str, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		note, ok := p.parseRow(line)
		if !ok {
			continue
		}
		if note.End-note.Start > game.SustainMin {
			holdCount++
		}
		notes = append(notes, note)
	}

	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].Start < notes[j].Start
	})
	for i := range notes {
		notes[i].ID = int64(i + 1)
	}

	sum := sha256.Sum256(data)
	return &game.Chart{
		Notes:     notes,
		NoteCount: int64(len(notes)),
		HoldCount: holdCount,
		Sum:       base64.StdEncoding.EncodeToString(sum[:]),
	}, nil
}
