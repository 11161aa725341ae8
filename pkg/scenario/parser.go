// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package scenario

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/lassandro/godebit/pkg/button"
	"github.com/lassandro/godebit/pkg/debit"
)

// Parses a whole script. Every malformed line is reported; the script is
// only usable when errs is empty.
func Parse(input io.Reader) (script *Script, errs []error) {
	var scanner = bufio.NewScanner(input)
	var cursor = Cursor{Line: 0, Column: 0}

	script = &Script{}
	errs = make([]error, 0)

	for scanner.Scan() {
		cursor.Line++
		cursor.Column = 0

		tokens, err := tokenize(scanner.Text(), cursor)

		if err != nil {
			errs = append(errs, err)
			continue
		}

		if len(tokens) == 0 {
			continue
		}

		cmd, err := parseCommand(tokens)

		if err != nil {
			errs = append(errs, err)
			continue
		}

		script.Commands = append(script.Commands, cmd)
	}

	if err := scanner.Err(); err != nil {
		errs = append(errs, err)
	}

	return script, errs
}

func tokenize(line string, cursor Cursor) ([]Token, error) {
	var tokens []Token

	for i := 0; i < len(line); {
		cursor.Column = i + 1

		switch char := line[i]; {
		case char == ' ' || char == '\t' || char == '\r':
			i++

		case char == COMMENT_CHAR:
			return tokens, nil

		case char == '"':
			end := i + 1

			for end < len(line) && line[end] != '"' {
				if line[end] == '\\' {
					end++
				}

				end++
			}

			if end >= len(line) {
				return nil, &InvalidStringError{cursor}
			}

			value, err := strconv.Unquote(line[i : end+1])

			if err != nil {
				return nil, &InvalidStringError{cursor}
			}

			tokens = append(tokens, Token{cursor, value, true})
			i = end + 1

		default:
			end := i

			for end < len(line) && line[end] != ' ' && line[end] != '\t' {
				end++
			}

			tokens = append(tokens, Token{cursor, line[i:end], false})
			i = end
		}
	}

	return tokens, nil
}

func parseCommand(tokens []Token) (Command, error) {
	head, args := tokens[0], tokens[1:]
	cmd := Command{Position: head.Position}

	switch strings.ToLower(head.Value) {
	case "scs":
		cmd.Type = COMMAND_SCS

		if len(args) != 1 {
			return cmd, &InvalidNumArgumentsError{head.Position, "1", len(args)}
		}

		cmd.Line = args[0].Value

	case "press":
		cmd.Type = COMMAND_PRESS

		if len(args) == 0 {
			return cmd, &InvalidNumArgumentsError{head.Position, "1 or more", 0}
		}

		for _, arg := range args {
			chord, err := parseChord(arg)

			if err != nil {
				return cmd, err
			}

			cmd.Chords = append(cmd.Chords, chord)
		}

	case "step":
		cmd.Type = COMMAND_STEP
		cmd.Count = 1

		switch len(args) {
		case 0:
		case 1:
			count, err := strconv.Atoi(args[0].Value)

			if err != nil || count <= 0 {
				return cmd, &InvalidArgumentError{
					args[0].Position, "positive step count", args[0].Value,
				}
			}

			cmd.Count = count
		default:
			return cmd, &InvalidNumArgumentsError{head.Position, "0 or 1", len(args)}
		}

	case "run":
		cmd.Type = COMMAND_RUN

		if len(args) != 0 {
			return cmd, &InvalidNumArgumentsError{head.Position, "0", len(args)}
		}

	case "expect":
		cmd.Type = COMMAND_EXPECT
		return parseExpect(cmd, head, args)

	default:
		return cmd, &UnknownCommandError{head.Position, head.Value}
	}

	return cmd, nil
}

func parseExpect(cmd Command, head Token, args []Token) (Command, error) {
	if len(args) == 0 {
		return cmd, &InvalidNumArgumentsError{head.Position, "1 or more", 0}
	}

	kind, args := args[0], args[1:]

	switch strings.ToLower(kind.Value) {
	case "state":
		cmd.Expect = EXPECT_STATE

		if len(args) != 1 {
			return cmd, &InvalidNumArgumentsError{kind.Position, "1", len(args)}
		}

		state, err := debit.ParseState(strings.ToLower(args[0].Value))

		if err != nil {
			return cmd, &InvalidArgumentError{
				args[0].Position, "state name", args[0].Value,
			}
		}

		cmd.State = state

	case "display":
		cmd.Expect = EXPECT_DISPLAY

		if len(args) != 2 {
			return cmd, &InvalidNumArgumentsError{kind.Position, "2", len(args)}
		}

		row, err := strconv.Atoi(args[0].Value)

		if err != nil || row < 0 {
			return cmd, &InvalidArgumentError{
				args[0].Position, "display row", args[0].Value,
			}
		}

		cmd.Row = row
		cmd.Text = args[1].Value

	case "sent":
		cmd.Expect = EXPECT_SENT

		if len(args) != 1 {
			return cmd, &InvalidNumArgumentsError{kind.Position, "1", len(args)}
		}

		cmd.Text = args[0].Value

	case "quiet":
		cmd.Expect = EXPECT_QUIET

		if len(args) != 0 {
			return cmd, &InvalidNumArgumentsError{kind.Position, "0", len(args)}
		}

	default:
		return cmd, &InvalidArgumentError{
			kind.Position, "state, display, sent, or quiet", kind.Value,
		}
	}

	return cmd, nil
}

// A chord is buttons joined by '+', pressed together.
func parseChord(tok Token) ([]button.Button, error) {
	var chord []button.Button

	for _, name := range strings.Split(tok.Value, CHORD_CHAR) {
		b, err := button.Parse(name)

		if err != nil {
			return nil, &InvalidArgumentError{tok.Position, "button name", tok.Value}
		}

		chord = append(chord, b)
	}

	return chord, nil
}
