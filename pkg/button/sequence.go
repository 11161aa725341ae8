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

// Samples a queued press spans: two held, two released.
const framesPerPress = 4

// Sequence is a PinReader that replays queued presses, one port sample per
// ReadPins call. Once drained it reads every pin inactive.
type Sequence struct {
	Map map[Button]uint8

	frames []uint32
}

// Queues one press. Several buttons make a simultaneous press.
func (sq *Sequence) Press(buttons ...Button) {
	if sq.Map == nil {
		sq.Map = DefaultMap()
	}

	pins := mask(sq.Map, buttons)
	sq.frames = append(sq.frames, pins, pins, 0, 0)
}

func (sq *Sequence) ReadPins() uint32 {
	if len(sq.frames) == 0 {
		return 0
	}

	frame := sq.frames[0]
	sq.frames = sq.frames[1:]
	return frame
}

// Presses not yet seen by a debounce poll.
func (sq *Sequence) Pending() int {
	return len(sq.frames) / framesPerPress
}
