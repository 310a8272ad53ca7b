package input

import (
	"encoding/binary"
	"log"
	"os"
	"syscall"
)

// https://github.com/torvalds/linux/blob/master/include/uapi/linux/input-event-codes.h
const evKey = 0x01

type keyEvent struct {
	Time  syscall.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

type Event struct {
	Pressed  bool
	Released bool
	Code     uint16
	Time     syscall.Timeval
}

// ReadInput streams raw key events from an evdev device node. Unlike the
// terminal reader this sees releases, which is what sustains need.
func ReadInput(kbd string, events chan *Event) error {
	file, err := os.Open(kbd)
	if nil != err {
		return err
	}
	go func() {
		defer file.Close()

		var ev keyEvent
		for {
			err = binary.Read(file, binary.LittleEndian, &ev)
			if nil != err {
				log.Println("unable to read keyboard input", err)
				return
			}
			if ev.Type != evKey {
				continue
			}
			events <- &Event{
				Pressed:  ev.Value == 1,
				Released: ev.Value == 0,
				Code:     ev.Code,
				Time:     ev.Time,
			}
		}
	}()
	return nil
}
