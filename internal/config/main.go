package config

import (
	"strconv"
	"strings"

	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	Directory = kingpin.Arg("directory", "Song/chart directory").Required().ExistingDir()
	Seed      = kingpin.Flag("seed", "PRNG seed, 0 picks one from the clock").Default("0").Uint64()
	Delay     = kingpin.Flag("delay", "Start delay").Default("1.5s").Short('d').Duration()
	Spacing   = kingpin.Flag("spacing", "Columns between lanes").Default("6").Short('S').Uint()
	BarRow    = kingpin.Flag("bar-row", "Console rows between hit bar and bottom").Default("8").Uint()
	Shuffle   = kingpin.Flag("shuffle", "Column shuffle period, 0 disables").Default("0s").Duration()
	Device    = kingpin.Flag("device", "evdev keyboard, enables release detection").Default("").String()
	keys      = kingpin.Flag("keys", "Keys for the four lanes").Default("_-mp").Short('k').String()
	keyCodes  = kingpin.Flag("key-codes", "evdev key codes for the four lanes").Default("44,45,49,50").String()

	// https://github.com/torvalds/linux/blob/master/include/uapi/linux/input-event-codes.h
	PauseCode uint16 = 57 // KEY_SPACE
	QuitCode  uint16 = 1  // KEY_ESC

	Codes []uint16
)

func Keys() []rune {
	return []rune(*keys)
}

func KeyColumn(r rune) int {
	for i, c := range Keys() {
		if r == c {
			return i
		}
	}
	return -1
}

func CodeColumn(code uint16) int {
	for i, c := range Codes {
		if code == c {
			return i
		}
	}
	return -1
}

func init() {
	kingpin.Version("0.1.0")
	kingpin.Parse()

	for _, field := range strings.Split(*keyCodes, ",") {
		code, err := strconv.ParseUint(strings.TrimSpace(field), 10, 16)
		if nil != err {
			continue
		}
		Codes = append(Codes, uint16(code))
	}
}
