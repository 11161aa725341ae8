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

package trace

import (
	"time"

	"github.com/google/uuid"

	"github.com/lassandro/godebit/pkg/debit"
)

const DEFAULT_LIMIT = 64

// Record is one state change, tagged with the transaction it belongs to.
type Record struct {
	TxID uuid.UUID
	From debit.State
	To   debit.State
	At   time.Time
}

type Tracer struct {
	// Oldest records are dropped past this many; zero means DEFAULT_LIMIT
	Limit int

	Watch []debit.State

	Now   func() time.Time
	NewID func() uuid.UUID

	HandleTransition func(Record, *Tracer, *debit.Machine)
	HandleWatch      func(Record, *Tracer, *debit.Machine)

	current uuid.UUID
	history []Record
}
