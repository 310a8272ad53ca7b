package game

type Chart struct {
	Notes     []Note
	NoteCount int64
	HoldCount int64
	Sum       string // sha256 of the raw chart file, keys the score db
}

// Groups partitions the chart into batches of equal start time, in
// ascending start order. Notes is already sorted by the parser.
func (c *Chart) Groups() [][]Note {
	groups := [][]Note{}
	for i := 0; i < len(c.Notes); {
		j := i
		for j < len(c.Notes) && c.Notes[j].Start == c.Notes[i].Start {
			j++
		}
		groups = append(groups, c.Notes[i:j])
		i = j
	}
	return groups
}
