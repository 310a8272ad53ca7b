package score

import (
	"database/sql"
	"encoding/json"
	"log"
	"time"

	"git.lost.host/meutraa/rain/internal/game"
	"git.lost.host/meutraa/rain/internal/schedule"
	_ "github.com/mattn/go-sqlite3"
)

type DefaultScorer struct {
	db *sql.DB

	// Path defaults to a file next to the binary; tests use :memory:
	Path string
}

type InputsCompact struct {
	Column   int
	Presses  []time.Duration
	Releases []time.Duration
}

func compactInputs(inputs *[]game.Input) []InputsCompact {
	colCount := 0
	for _, i := range *inputs {
		if i.Column >= colCount {
			colCount = i.Column + 1
		}
	}
	ins := make([]InputsCompact, colCount)
	for c := range ins {
		ins[c].Column = c
	}
	for _, i := range *inputs {
		if i.Press {
			ins[i.Column].Presses = append(ins[i.Column].Presses, i.HitTime)
		} else {
			ins[i.Column].Releases = append(ins[i.Column].Releases, i.HitTime)
		}
	}
	return ins
}

func uncompactInputs(inputs []InputsCompact) *[]game.Input {
	ins := []game.Input{}
	for _, i := range inputs {
		for _, t := range i.Presses {
			ins = append(ins, game.Input{Column: i.Column, Press: true, HitTime: t})
		}
		for _, t := range i.Releases {
			ins = append(ins, game.Input{Column: i.Column, HitTime: t})
		}
	}
	return &ins
}

func (s *DefaultScorer) Init() error {
	if s.Path == "" {
		s.Path = "./scores.db"
	}
	db, err := sql.Open("sqlite3", s.Path)
	if nil != err {
		return err
	}
	// sqlite serializes writers anyway, and :memory: databases are
	// per-connection
	db.SetMaxOpenConns(1)

	initStatement := `
	create table if not exists scores
	  (
		  id integer not null primary key,
		  sum text,
		  score real,
		  combo integer,
		  seed integer,
		  inputs bytearray
	  );
	`
	_, err = db.Exec(initStatement)
	if nil != err {
		return err
	}

	s.db = db
	return nil
}

func (s *DefaultScorer) Deinit() {
	if nil != s.db {
		s.db.Close()
	}
}

func (s *DefaultScorer) Save(c *game.Chart, result *Result) {
	data, err := json.Marshal(compactInputs(result.Inputs))
	if nil != err {
		log.Println("unable to marshal inputs", err)
		return
	}
	_, err = s.db.Exec(
		"insert into scores(sum, score, combo, seed, inputs) values(?, ?, ?, ?, ?)",
		c.Sum, result.Score, result.Combo, int64(result.Seed), data)
	if nil != err {
		log.Println("unable to save score", err)
		return
	}
}

func (s *DefaultScorer) Load(c *game.Chart) []History {
	histories := []History{}
	rows, err := s.db.Query(
		"select sum, score, combo, seed, inputs from scores where sum = ?", c.Sum)
	if nil != err && err != sql.ErrNoRows {
		log.Println("unable to load scores", err)
		return histories
	}
	defer rows.Close()
	for rows.Next() {
		var sum string
		var scored float64
		var combo int
		var seed int64
		var data []byte
		rows.Scan(&sum, &scored, &combo, &seed, &data)
		var ns []InputsCompact
		err := json.Unmarshal(data, &ns)
		if nil != err {
			log.Println("unable to unmarshal input history")
			continue
		}
		histories = append(histories, History{
			Sum:    sum,
			Score:  scored,
			Combo:  combo,
			Seed:   uint64(seed),
			Inputs: uncompactInputs(ns),
		})
	}
	return histories
}

// Replay reconstructs the final state of a recorded run by scheduling the
// chart, the fixed-rate ticks, and the recorded inputs on a deterministic
// timeline and folding it through the reducer.
func (s *DefaultScorer) Replay(c *game.Chart, history *History) game.State {
	var t schedule.Timeline

	horizon := time.Duration(0)
	for _, group := range c.Groups() {
		t.Push(group[0].Start, schedule.PrioritySpawn, game.SpawnNotes{Notes: group})
		for _, n := range group {
			resolved := n.Start + game.TickPeriod*time.Duration(game.Boundary+int((n.End-n.Start)/game.TickPeriod)+2)
			if resolved > horizon {
				horizon = resolved
			}
		}
	}
	if len(c.Notes) > 0 {
		t.Push(c.Notes[len(c.Notes)-1].Start, schedule.PrioritySpawn, game.EndOfChart{})
	} else {
		t.Push(0, schedule.PrioritySpawn, game.EndOfChart{})
	}
	t.PushTicks(0, horizon, game.TickPeriod)
	for _, input := range *history.Inputs {
		if input.Press {
			t.Push(input.HitTime, schedule.PriorityInput, game.Press{Column: input.Column})
		} else {
			t.Push(input.HitTime, schedule.PriorityInput, game.Release{Column: input.Column})
		}
	}

	return t.Drain(game.NewState(history.Seed, c))
}
