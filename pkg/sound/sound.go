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
	"time"

	"github.com/lassandro/godebit/pkg/clock"
)

// Rising two tone cue used when the bank approves.
func ApproveCue(low, high uint32, duration time.Duration) Cue {
	return Cue{{low, duration}, {high, duration}}
}

// Falling two tone cue used when a transaction is cancelled.
func CancelCue(low, high uint32, duration time.Duration) Cue {
	return Cue{{high, duration}, {low, duration}}
}

func Play(player Player, cue Cue) {
	for _, tone := range cue {
		player.PlayTone(tone.Freq, tone.Duration)
	}
}

func (cue Cue) Duration() time.Duration {
	var total time.Duration

	for _, tone := range cue {
		total += tone.Duration
	}

	return total
}

func (bell *Bell) PlayTone(freq uint32, duration time.Duration) {
	if bell.Output != nil && freq > 0 {
		if _, err := bell.Output.Write([]byte{BEL}); err != nil && bell.Log != nil {
			bell.Log.Printf("Warning: %d Hz tone: %v", freq, err)
		}
	}

	sleep(bell.Clock, duration)
}

func (s *Silent) PlayTone(freq uint32, duration time.Duration) {
	sleep(s.Clock, duration)
}

func sleep(clk clock.Clock, duration time.Duration) {
	if clk == nil {
		clk = clock.System{}
	}

	clk.Sleep(duration)
}
