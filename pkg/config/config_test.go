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

package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lassandro/godebit/pkg/button"
	"github.com/lassandro/godebit/pkg/config"
	"github.com/lassandro/godebit/pkg/debit"
	"github.com/lassandro/godebit/pkg/protocol"
	"github.com/lassandro/godebit/pkg/tty"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// Whether err or anything it wraps has the same type as want.
func hasErrorType(err error, want interface{}) bool {
	for ; err != nil; err = errors.Unwrap(err) {
		if reflect.TypeOf(err) == reflect.TypeOf(want) {
			return true
		}
	}

	return false
}

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	require.NoError(t, cfg.Validate())

	rules, err := cfg.Rules()
	require.NoError(t, err)
	assert.Equal(t, debit.DefaultRules(), rules)

	priority, err := cfg.Priority()
	require.NoError(t, err)
	assert.Equal(t, button.DEFAULT_PRIORITY[:], priority)
	assert.Equal(t, button.DefaultMap(), cfg.PinMap())
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := config.Load("")

	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
debounce:
  interval: 20ms
  priority: [cancel, ok, add2, add1]
buttons:
  add1: 5
card:
  track1: "%B4000000000000002^TEST/CARD^2512"
serial:
  device: /dev/ttyUSB0
  baud: 9600
timeouts:
  press: 0s
approval: contains
hold: 250ms
cancel_notice: ""
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 20*time.Millisecond, cfg.Debounce.Interval)
	assert.Equal(t, []string{"cancel", "ok", "add2", "add1"}, cfg.Debounce.Priority)
	assert.Equal(t, uint8(5), cfg.Buttons.Add1)
	assert.Equal(t, button.PIN_OK, cfg.Buttons.Ok)
	assert.Equal(t, "%B4000000000000002^TEST/CARD^2512", cfg.Card.Track1)
	assert.Equal(t, debit.DEFAULT_TRACK2, cfg.Card.Track2)
	assert.Equal(t, "/dev/ttyUSB0", cfg.Serial.Device)
	assert.Equal(t, 9600, cfg.Serial.Baud)
	assert.Equal(t, time.Duration(0), cfg.Timeouts.Press)
	assert.Equal(t, debit.DEFAULT_LINE_TIMEOUT, cfg.Timeouts.Line)

	rules, err := cfg.Rules()
	require.NoError(t, err)
	assert.Equal(t, protocol.APPROVE_CONTAINS, rules.Approval)
	assert.Equal(t, 250*time.Millisecond, rules.Hold)
	assert.Empty(t, rules.CancelNotice)

	input := cfg.Input(nil, nil)
	assert.Equal(t, 20*time.Millisecond, input.Interval)
	assert.Equal(t, button.BUTTON_CANCEL, input.Resolve(input.Mask(
		button.BUTTON_OK, button.BUTTON_CANCEL,
	)))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("GODEBIT_SERIAL_DEVICE", "/dev/ttyS1")
	t.Setenv("GODEBIT_RETRY_MAX_MALFORMED", "7")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "/dev/ttyS1", cfg.Serial.Device)
	assert.Equal(t, 7, cfg.Retry.MaxMalformed)
}

func TestLoaderOverride(t *testing.T) {
	ld := config.NewLoader()
	require.NoError(t, ld.Read(writeConfig(t, "serial:\n  device: /dev/a\n")))

	ld.Set("serial.device", "/dev/b")

	cfg, err := ld.Config()
	require.NoError(t, err)
	assert.Equal(t, "/dev/b", cfg.Serial.Device)

	doc, err := ld.YAML()
	require.NoError(t, err)
	assert.Contains(t, string(doc), "device: /dev/b")
	assert.Contains(t, string(doc), "hold: 1s")
	assert.Contains(t, string(doc), "approval: exact")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		Name   string
		Modify func(cfg *config.Config)
		Error  interface{}
	}{
		{
			"Interval",
			func(cfg *config.Config) { cfg.Debounce.Interval = 0 },
			&config.InvalidValueError{},
		},
		{
			"PriorityName",
			func(cfg *config.Config) { cfg.Debounce.Priority[1] = "enter" },
			&button.UnknownButtonError{},
		},
		{
			"PriorityDuplicate",
			func(cfg *config.Config) { cfg.Debounce.Priority[1] = "ok" },
			&button.InvalidPriorityError{},
		},
		{
			"SharedPin",
			func(cfg *config.Config) { cfg.Buttons.Add2 = cfg.Buttons.Ok },
			&button.InvalidPinError{},
		},
		{
			"PinRange",
			func(cfg *config.Config) { cfg.Buttons.Cancel = 32 },
			&button.InvalidPinError{},
		},
		{
			"TrackSeparator",
			func(cfg *config.Config) { cfg.Card.Track2 = "12,34" },
			&protocol.InvalidFieldError{},
		},
		{
			"Columns",
			func(cfg *config.Config) { cfg.Display.Columns = 8 },
			&config.InvalidValueError{},
		},
		{
			"Baud",
			func(cfg *config.Config) { cfg.Serial.Baud = 300 },
			&tty.UnsupportedBaudError{},
		},
		{
			"MaxLine",
			func(cfg *config.Config) { cfg.Serial.MaxLine = 4 },
			&config.InvalidValueError{},
		},
		{
			"Timeout",
			func(cfg *config.Config) { cfg.Timeouts.Line = -time.Second },
			&config.InvalidValueError{},
		},
		{
			"Retry",
			func(cfg *config.Config) { cfg.Retry.MaxMalformed = -1 },
			&config.InvalidValueError{},
		},
		{
			"Approval",
			func(cfg *config.Config) { cfg.Approval = "substring" },
			&protocol.UnknownPolicyError{},
		},
		{
			"Tones",
			func(cfg *config.Config) { cfg.Tones.High = 0 },
			&config.InvalidValueError{},
		},
		{
			"CancelNotice",
			func(cfg *config.Config) { cfg.CancelNotice = "Cn\r\ncld" },
			&config.InvalidValueError{},
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			test.Modify(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			assert.True(t, hasErrorType(err, test.Error), "%v", err)
		})
	}
}
