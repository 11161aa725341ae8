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
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/lassandro/godebit/pkg/debit"
)

// A transaction starts when a request moves the terminal out of Welcome and
// ends on the way back.
func (tr *Tracer) Transition(from, to debit.State, mc *debit.Machine) {
	if from == debit.STATE_WELCOME && to == debit.STATE_AMOUNT {
		tr.current = tr.newID()
	}

	rec := Record{TxID: tr.current, From: from, To: to, At: tr.now()}
	tr.push(rec)

	if tr.HandleTransition != nil {
		tr.HandleTransition(rec, tr, mc)
	}

	if tr.HandleWatch != nil {
		for _, state := range tr.Watch {
			if state == to {
				tr.HandleWatch(rec, tr, mc)
				break
			}
		}
	}

	if to == debit.STATE_WELCOME {
		tr.current = uuid.Nil
	}
}

// Id of the transaction in progress, uuid.Nil at Welcome.
func (tr *Tracer) Current() uuid.UUID {
	return tr.current
}

func (tr *Tracer) History() []Record {
	result := make([]Record, len(tr.history))
	copy(result, tr.history)
	return result
}

// Records belonging to one transaction, oldest first.
func (tr *Tracer) Transaction(id uuid.UUID) []Record {
	var result []Record

	for _, rec := range tr.history {
		if rec.TxID == id {
			result = append(result, rec)
		}
	}

	return result
}

func (tr *Tracer) Reset() {
	tr.current = uuid.Nil
	tr.history = nil
}

func (tr *Tracer) PrintHistory(w io.Writer) {
	if len(tr.history) == 0 {
		fmt.Fprintln(w, "No transitions recorded")
		return
	}

	for _, rec := range tr.history {
		fmt.Fprintln(w, rec)
	}
}

func (rec Record) String() string {
	id := "--------"

	if rec.TxID != uuid.Nil {
		id = rec.TxID.String()[:8]
	}

	return fmt.Sprintf(
		"[%s] %s %s -> %s",
		id, rec.At.Format("15:04:05.000"), rec.From, rec.To,
	)
}

func (tr *Tracer) push(rec Record) {
	limit := tr.Limit

	if limit <= 0 {
		limit = DEFAULT_LIMIT
	}

	tr.history = append(tr.history, rec)

	if over := len(tr.history) - limit; over > 0 {
		tr.history = append(tr.history[:0], tr.history[over:]...)
	}
}

func (tr *Tracer) now() time.Time {
	if tr.Now != nil {
		return tr.Now()
	}

	return time.Now()
}

func (tr *Tracer) newID() uuid.UUID {
	if tr.NewID != nil {
		return tr.NewID()
	}

	return uuid.New()
}
