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

package button

import (
	"bufio"
	"io"
	"sync"
	"time"
)

// Keyboard emulates the button port from console key presses. A key keeps
// its pin active for Hold, long enough to span a full debounce poll. A key
// repeated while its pin is still active is queued and replayed after the
// pin has read inactive for Gap, so each key press is seen as one press.
type Keyboard struct {
	Hold time.Duration
	Gap  time.Duration
	Keys map[byte]Button
	Map  map[Button]uint8
	Now  func() time.Time

	mu      sync.Mutex
	pressed map[uint8]*keyState
	err     error
}

type keyState struct {
	start  time.Time
	queued int
}

// Reads keys from r until it fails. The read error is kept for Err.
func (kb *Keyboard) Listen(r io.Reader) {
	reader := bufio.NewReader(r)

	go func() {
		for {
			key, err := reader.ReadByte()

			if err != nil {
				kb.mu.Lock()
				kb.err = err
				kb.mu.Unlock()
				return
			}

			kb.Press(key)
		}
	}()
}

func (kb *Keyboard) Press(key byte) bool {
	keys := kb.Keys
	if keys == nil {
		keys = DEFAULT_KEYMAP
	}

	b, exists := keys[key]

	if !exists {
		return false
	}

	kb.mu.Lock()
	defer kb.mu.Unlock()

	pin, exists := kb.pinMap()[b]

	if !exists {
		return false
	}

	if kb.pressed == nil {
		kb.pressed = make(map[uint8]*keyState)
	}

	now := kb.now()
	state, exists := kb.pressed[pin]

	if exists && now.Before(state.start.Add(kb.hold()+kb.gap())) {
		state.queued++
	} else {
		kb.pressed[pin] = &keyState{start: now}
	}

	return true
}

func (kb *Keyboard) ReadPins() uint32 {
	kb.mu.Lock()
	defer kb.mu.Unlock()

	hold, gap := kb.hold(), kb.gap()
	now := kb.now()
	var result uint32

	for pin, state := range kb.pressed {
		released := state.start.Add(hold)

		switch {
		case now.Before(released):
			result |= 1 << pin
		case state.queued > 0 && !now.Before(released.Add(gap)):
			state.start = now
			state.queued--
			result |= 1 << pin
		case !now.Before(released.Add(gap)):
			delete(kb.pressed, pin)
		}
	}

	return result
}

// Read error that ended Listen. It is held back until every key read
// before it has been replayed on the port.
func (kb *Keyboard) Err() error {
	kb.mu.Lock()
	defer kb.mu.Unlock()

	if len(kb.pressed) > 0 {
		return nil
	}

	return kb.err
}

func (kb *Keyboard) hold() time.Duration {
	if kb.Hold <= 0 {
		return 4 * DEFAULT_INTERVAL
	}

	return kb.Hold
}

func (kb *Keyboard) gap() time.Duration {
	if kb.Gap <= 0 {
		return 2 * DEFAULT_INTERVAL
	}

	return kb.Gap
}

func (kb *Keyboard) now() time.Time {
	if kb.Now != nil {
		return kb.Now()
	}

	return time.Now()
}

func (kb *Keyboard) pinMap() map[Button]uint8 {
	if kb.Map == nil {
		kb.Map = DefaultMap()
	}

	return kb.Map
}
