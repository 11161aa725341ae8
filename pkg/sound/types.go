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

package sound

import (
	"io"
	"log"
	"time"

	"github.com/lassandro/godebit/pkg/clock"
)

// Player produces a tone and returns once it has finished.
type Player interface {
	PlayTone(freq uint32, duration time.Duration)
}

type Tone struct {
	Freq     uint32
	Duration time.Duration
}

type Cue []Tone

// Bell rings the console bell for each tone and holds for its duration.
// Pitch is not representable on a terminal, so Freq is dropped. A failed
// write goes to Log, if set, and the tone still keeps its time.
type Bell struct {
	Output io.Writer
	Clock  clock.Clock
	Log    *log.Logger
}

// Silent keeps the timing of a cue without producing sound.
type Silent struct {
	Clock clock.Clock
}
