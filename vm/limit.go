// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package vm

// Limit applies OFFSET then LIMIT by editing the selection vector; it
// never materializes or discards column data, only which row
// positions are in scope downstream.
type Limit struct {
	Limit  *int64
	Offset int64

	offsetRemaining int64
	rowsEmitted     int64
	initialized     bool
}

func (l *Limit) init() {
	l.offsetRemaining = l.Offset
	l.initialized = true
}

func (l *Limit) Execute(input, output *Batch) Result {
	if !l.initialized {
		l.init()
	}
	if l.Limit != nil && l.rowsEmitted >= *l.Limit {
		output.Reset()
		return Finished
	}
	if input.IsEmpty() {
		output.Reset()
		return Finished
	}

	output.CopyFrom(input)

	if l.offsetRemaining > 0 {
		a := int64(output.SelectedCount())
		if a <= l.offsetRemaining {
			l.offsetRemaining -= a
			output.Reset()
			return NeedMoreInput
		}
		if output.Selection == nil {
			output.Selection = make([]uint16, output.Count)
			for i := range output.Selection {
				output.Selection[i] = uint16(i)
			}
		}
		output.Selection = output.Selection[l.offsetRemaining:]
		l.offsetRemaining = 0
	}

	if l.Limit != nil {
		q := *l.Limit - l.rowsEmitted
		a := int64(output.SelectedCount())
		if a > q {
			if output.Selection == nil {
				output.Selection = make([]uint16, output.Count)
				for i := range output.Selection {
					output.Selection[i] = uint16(i)
				}
			}
			output.Selection = output.Selection[:q]
		}
		l.rowsEmitted += int64(output.SelectedCount())
		if l.rowsEmitted >= *l.Limit {
			return Finished
		}
	}

	return NeedMoreInput
}

func (l *Limit) Reset() {
	l.offsetRemaining = 0
	l.rowsEmitted = 0
	l.initialized = false
}
