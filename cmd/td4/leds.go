package main

import (
	"fmt"
	goio "io"
	"strings"

	"github.com/logrusorgru/aurora/v4"

	"github.com/ezrec/td4/io"
)

const (
	LED_ON  = "●"
	LED_OFF = "○"
)

// leds shows the output port as a row of lamps, redrawn in place.
// Input still comes from the tape.
type leds struct {
	*io.Tape
	Display goio.Writer
}

var _ io.Channel = (*leds)(nil)

// Send redraws the lamps, most significant bit first.
func (l *leds) Send(value uint8) (err error) {
	var lamps strings.Builder
	for bit := 3; bit >= 0; bit-- {
		if value&(1<<bit) != 0 {
			lamps.WriteString(aurora.Colorize(LED_ON, aurora.RedFg|aurora.BrightFg).String())
		} else {
			lamps.WriteString(LED_OFF)
		}
	}

	_, err = fmt.Fprintf(l.Display, "\r%v %04b", lamps.String(), value&0xf)
	return
}
