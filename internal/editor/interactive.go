package editor

import (
	"context"
	"strings"
)

// quitKeywords end the interactive session, matched case-insensitively.
var quitKeywords = map[string]bool{
	"quit": true,
	"exit": true,
	"q":    true,
}

// Interactive runs edit cycles for each instruction line until a quit
// keyword or end of input. Blank lines are ignored. The first adapter
// failure ends the session with an error.
func (e *Editor) Interactive(ctx context.Context) error {
	e.printer.Banner(
		"Resume Editor - Interactive Mode",
		"Enter editing instructions, or 'quit' to exit",
	)

	for {
		e.printer.Statusf("What would you like to do?")
		if !e.input.Scan() {
			return e.input.Err()
		}

		instruction := strings.TrimSpace(e.input.Text())
		if instruction == "" {
			continue
		}
		if quitKeywords[strings.ToLower(instruction)] {
			e.printer.Successf("Goodbye!")
			return nil
		}

		applied, err := e.ApplyEdit(ctx, instruction)
		if err != nil {
			return err
		}
		if applied {
			e.printer.Successf("Edit complete!")
		}
	}
}
