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

package clock

import (
	"sync"
	"time"
)

// Clock is the time source behind every blocking wait of the terminal:
// debounce sampling, tone playback and screen holds.
type Clock interface {
	Sleep(d time.Duration)
}

type System struct{}

func (System) Sleep(d time.Duration) {
	time.Sleep(d)
}

// Fake never blocks. It accumulates the requested durations so tests can
// assert on how long the terminal would have waited.
type Fake struct {
	mu      sync.Mutex
	elapsed time.Duration
	sleeps  []time.Duration

	// OnSleep, if set, is called after each sleep with the new elapsed time.
	OnSleep func(elapsed time.Duration)
}

func (fk *Fake) Sleep(d time.Duration) {
	fk.mu.Lock()
	fk.elapsed += d
	fk.sleeps = append(fk.sleeps, d)
	elapsed := fk.elapsed
	hook := fk.OnSleep
	fk.mu.Unlock()

	if hook != nil {
		hook(elapsed)
	}
}

func (fk *Fake) Elapsed() time.Duration {
	fk.mu.Lock()
	defer fk.mu.Unlock()
	return fk.elapsed
}

func (fk *Fake) Sleeps() []time.Duration {
	fk.mu.Lock()
	defer fk.mu.Unlock()

	result := make([]time.Duration, len(fk.sleeps))
	copy(result, fk.sleeps)
	return result
}
