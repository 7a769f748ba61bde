package main

import (
	"fmt"
	"strconv"
	"strings"

	"platformer3d/internal/physics"
)

// parseScript expands an input script into one Input per tick.
//
// Tokens are separated by commas: R (right), L (left) and N (no input) take
// a tick count, e.g. R60. J presses jump for the given ticks (default 1)
// while keeping the previous direction, and releases it on the tick after.
func parseScript(script string) ([]physics.Input, error) {
	var (
		inputs     []physics.Input
		horizontal float32
		release    bool
	)

	for tok := range strings.SplitSeq(script, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}

		op := strings.ToUpper(tok[:1])
		n := 1
		if len(tok) > 1 {
			var err error
			n, err = strconv.Atoi(tok[1:])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("input %q: bad tick count", tok)
			}
		}

		jump := false
		switch op {
		case "R":
			horizontal = 1
		case "L":
			horizontal = -1
		case "N":
			horizontal = 0
		case "J":
			jump = true
		default:
			return nil, fmt.Errorf("input %q: unknown action %q", tok, op)
		}

		for range n {
			in := physics.Input{
				Horizontal:    horizontal,
				JumpRequested: jump,
				JumpReleased:  release && !jump,
			}
			release = jump
			inputs = append(inputs, in)
		}
	}

	if release {
		inputs = append(inputs, physics.Input{Horizontal: horizontal, JumpReleased: true})
	}
	return inputs, nil
}
