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
	"github.com/spf13/viper"

	"github.com/lassandro/godebit/pkg/button"
	"github.com/lassandro/godebit/pkg/debit"
	"github.com/lassandro/godebit/pkg/display"
	"github.com/lassandro/godebit/pkg/protocol"
	"github.com/lassandro/godebit/pkg/serial"
	"github.com/lassandro/godebit/pkg/sound"
)

func DefaultConfig() *Config {
	priority := make([]string, 0, len(button.DEFAULT_PRIORITY))

	for _, b := range button.DEFAULT_PRIORITY {
		priority = append(priority, b.String())
	}

	return &Config{
		Debounce: DebounceConfig{
			Interval: button.DEFAULT_INTERVAL,
			Priority: priority,
		},
		Buttons: ButtonsConfig{
			Ok:     button.PIN_OK,
			Cancel: button.PIN_CANCEL,
			Add1:   button.PIN_ADD1,
			Add2:   button.PIN_ADD2,
		},
		Card: CardConfig{
			Track1: debit.DEFAULT_TRACK1,
			Track2: debit.DEFAULT_TRACK2,
		},
		Display: DisplayConfig{
			Columns: display.DEFAULT_COLUMNS,
			Rows:    display.DEFAULT_ROWS,
		},
		Serial: SerialConfig{
			Baud:    serial.DEFAULT_BAUD,
			MaxLine: serial.DEFAULT_MAX_LINE,
		},
		Timeouts: TimeoutsConfig{
			Press: debit.DEFAULT_PRESS_TIMEOUT,
			Line:  debit.DEFAULT_LINE_TIMEOUT,
		},
		Retry: RetryConfig{
			MaxMalformed: debit.DEFAULT_MAX_MALFORMED,
		},
		Approval: protocol.DEFAULT_APPROVAL.String(),
		Hold:     debit.DEFAULT_HOLD,
		Tones: TonesConfig{
			Low:      sound.TONE_LOW,
			High:     sound.TONE_HIGH,
			Duration: sound.TONE_DURATION,
		},
		CancelNotice: protocol.CANCEL_NOTICE,
	}
}

// Registers every key with its default so a partial file only overrides
// what it names. Durations are set in their string form.
func setDefaults(v *viper.Viper) {
	cfg := DefaultConfig()

	v.SetDefault("debounce.interval", cfg.Debounce.Interval.String())
	v.SetDefault("debounce.priority", cfg.Debounce.Priority)
	v.SetDefault("buttons.ok", cfg.Buttons.Ok)
	v.SetDefault("buttons.cancel", cfg.Buttons.Cancel)
	v.SetDefault("buttons.add1", cfg.Buttons.Add1)
	v.SetDefault("buttons.add2", cfg.Buttons.Add2)
	v.SetDefault("card.track1", cfg.Card.Track1)
	v.SetDefault("card.track2", cfg.Card.Track2)
	v.SetDefault("display.columns", cfg.Display.Columns)
	v.SetDefault("display.rows", cfg.Display.Rows)
	v.SetDefault("serial.device", cfg.Serial.Device)
	v.SetDefault("serial.baud", cfg.Serial.Baud)
	v.SetDefault("serial.max_line", cfg.Serial.MaxLine)
	v.SetDefault("timeouts.press", cfg.Timeouts.Press.String())
	v.SetDefault("timeouts.line", cfg.Timeouts.Line.String())
	v.SetDefault("retry.max_malformed", cfg.Retry.MaxMalformed)
	v.SetDefault("approval", cfg.Approval)
	v.SetDefault("hold", cfg.Hold.String())
	v.SetDefault("tones.low", cfg.Tones.Low)
	v.SetDefault("tones.high", cfg.Tones.High)
	v.SetDefault("tones.duration", cfg.Tones.Duration.String())
	v.SetDefault("cancel_notice", cfg.CancelNotice)
}
