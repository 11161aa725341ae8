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
	"time"
)

// Config is the terminal configuration as read from YAML.
type Config struct {
	Debounce     DebounceConfig `yaml:"debounce" mapstructure:"debounce"`
	Buttons      ButtonsConfig  `yaml:"buttons" mapstructure:"buttons"`
	Card         CardConfig     `yaml:"card" mapstructure:"card"`
	Display      DisplayConfig  `yaml:"display" mapstructure:"display"`
	Serial       SerialConfig   `yaml:"serial" mapstructure:"serial"`
	Timeouts     TimeoutsConfig `yaml:"timeouts" mapstructure:"timeouts"`
	Retry        RetryConfig    `yaml:"retry" mapstructure:"retry"`
	Approval     string         `yaml:"approval" mapstructure:"approval"`
	Hold         time.Duration  `yaml:"hold" mapstructure:"hold"`
	Tones        TonesConfig    `yaml:"tones" mapstructure:"tones"`
	CancelNotice string         `yaml:"cancel_notice" mapstructure:"cancel_notice"`
}

type DebounceConfig struct {
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
	// Button names, highest priority first
	Priority []string `yaml:"priority" mapstructure:"priority"`
}

// Port pin of each button.
type ButtonsConfig struct {
	Ok     uint8 `yaml:"ok" mapstructure:"ok"`
	Cancel uint8 `yaml:"cancel" mapstructure:"cancel"`
	Add1   uint8 `yaml:"add1" mapstructure:"add1"`
	Add2   uint8 `yaml:"add2" mapstructure:"add2"`
}

type CardConfig struct {
	Track1 string `yaml:"track1" mapstructure:"track1"`
	Track2 string `yaml:"track2" mapstructure:"track2"`
}

type DisplayConfig struct {
	Columns int `yaml:"columns" mapstructure:"columns"`
	Rows    int `yaml:"rows" mapstructure:"rows"`
}

type SerialConfig struct {
	Device  string `yaml:"device" mapstructure:"device"`
	Baud    int    `yaml:"baud" mapstructure:"baud"`
	MaxLine int    `yaml:"max_line" mapstructure:"max_line"`
}

// Zero disables a timeout.
type TimeoutsConfig struct {
	Press time.Duration `yaml:"press" mapstructure:"press"`
	Line  time.Duration `yaml:"line" mapstructure:"line"`
}

type RetryConfig struct {
	MaxMalformed int `yaml:"max_malformed" mapstructure:"max_malformed"`
}

type TonesConfig struct {
	Low      uint32        `yaml:"low" mapstructure:"low"`
	High     uint32        `yaml:"high" mapstructure:"high"`
	Duration time.Duration `yaml:"duration" mapstructure:"duration"`
}

type InvalidValueError struct {
	Key      string
	Required string
	Received interface{}
}

func (err *InvalidValueError) Error() string {
	return fmt.Sprintf(
		"Invalid value for %s\n\twant:%s\n\thave:%v",
		err.Key,
		err.Required,
		err.Received,
	)
}
