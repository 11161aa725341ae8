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

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/lassandro/godebit/pkg/button"
	"github.com/lassandro/godebit/pkg/clock"
	"github.com/lassandro/godebit/pkg/debit"
	"github.com/lassandro/godebit/pkg/display"
	"github.com/lassandro/godebit/pkg/protocol"
	"github.com/lassandro/godebit/pkg/sound"
	"github.com/lassandro/godebit/pkg/tty"
)

func (cfg *Config) Validate() error {
	if cfg.Debounce.Interval <= 0 {
		return &InvalidValueError{
			"debounce.interval", "positive duration", cfg.Debounce.Interval,
		}
	}

	priority, err := cfg.Priority()

	if err != nil {
		return fmt.Errorf("debounce.priority: %w", err)
	}

	input := button.Input{Map: cfg.PinMap(), Priority: priority}

	if err := input.Validate(); err != nil {
		return fmt.Errorf("buttons: %w", err)
	}

	if err := protocol.ValidateTrack(
		"card.track1", cfg.Card.Track1, protocol.MAX_TRACK1,
	); err != nil {
		return err
	}

	if err := protocol.ValidateTrack(
		"card.track2", cfg.Card.Track2, protocol.MAX_TRACK2,
	); err != nil {
		return err
	}

	if cfg.Display.Columns < display.DEFAULT_COLUMNS {
		return &InvalidValueError{
			"display.columns",
			fmt.Sprintf("%d or more", display.DEFAULT_COLUMNS),
			cfg.Display.Columns,
		}
	}

	if cfg.Display.Rows < display.DEFAULT_ROWS {
		return &InvalidValueError{
			"display.rows",
			fmt.Sprintf("%d or more", display.DEFAULT_ROWS),
			cfg.Display.Rows,
		}
	}

	if err := tty.CheckBaud(cfg.Serial.Baud); err != nil {
		return fmt.Errorf("serial.baud: %w", err)
	}

	// Must hold the longest request
	if shortest := len(protocol.REQUEST_MARKER) + protocol.MAX_AMOUNT; cfg.Serial.MaxLine < shortest {
		return &InvalidValueError{
			"serial.max_line", fmt.Sprintf("%d or more", shortest), cfg.Serial.MaxLine,
		}
	}

	for key, value := range map[string]time.Duration{
		"timeouts.press": cfg.Timeouts.Press,
		"timeouts.line":  cfg.Timeouts.Line,
		"hold":           cfg.Hold,
	} {
		if value < 0 {
			return &InvalidValueError{key, "0 or more", value}
		}
	}

	if cfg.Retry.MaxMalformed < 0 {
		return &InvalidValueError{
			"retry.max_malformed", "0 or more", cfg.Retry.MaxMalformed,
		}
	}

	if _, err := protocol.ParsePolicy(cfg.Approval); err != nil {
		return fmt.Errorf("approval: %w", err)
	}

	if cfg.Tones.Low == 0 || cfg.Tones.High == 0 || cfg.Tones.Duration <= 0 {
		return &InvalidValueError{
			"tones", "positive frequencies and duration", cfg.Tones,
		}
	}

	if strings.ContainsAny(cfg.CancelNotice, "\r\n") {
		return &InvalidValueError{
			"cancel_notice", "single line", cfg.CancelNotice,
		}
	}

	return nil
}

func (cfg *Config) Priority() ([]button.Button, error) {
	result := make([]button.Button, 0, len(cfg.Debounce.Priority))

	for _, name := range cfg.Debounce.Priority {
		b, err := button.Parse(name)

		if err != nil {
			return nil, err
		}

		result = append(result, b)
	}

	return result, nil
}

func (cfg *Config) PinMap() map[button.Button]uint8 {
	return map[button.Button]uint8{
		button.BUTTON_OK:     cfg.Buttons.Ok,
		button.BUTTON_CANCEL: cfg.Buttons.Cancel,
		button.BUTTON_ADD1:   cfg.Buttons.Add1,
		button.BUTTON_ADD2:   cfg.Buttons.Add2,
	}
}

// Debounced input reading pins under this configuration. Expects a
// validated config.
func (cfg *Config) Input(pins button.PinReader, clk clock.Clock) *button.Input {
	priority, _ := cfg.Priority()

	return &button.Input{
		Pins:     pins,
		Clock:    clk,
		Interval: cfg.Debounce.Interval,
		Map:      cfg.PinMap(),
		Priority: priority,
	}
}

func (cfg *Config) Rules() (debit.Rules, error) {
	policy, err := protocol.ParsePolicy(cfg.Approval)

	if err != nil {
		return debit.Rules{}, err
	}

	return debit.Rules{
		Track1:       cfg.Card.Track1,
		Track2:       cfg.Card.Track2,
		Approval:     policy,
		MaxMalformed: cfg.Retry.MaxMalformed,
		Hold:         cfg.Hold,
		ApproveCue: sound.ApproveCue(
			cfg.Tones.Low, cfg.Tones.High, cfg.Tones.Duration,
		),
		CancelCue: sound.CancelCue(
			cfg.Tones.Low, cfg.Tones.High, cfg.Tones.Duration,
		),
		CancelNotice: cfg.CancelNotice,
	}, nil
}
