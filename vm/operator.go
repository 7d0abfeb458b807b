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

// Result is returned by Operator.Execute. The Pipeline consults only
// operator 0's Result when deciding whether to keep driving the source;
// a Finished from a later operator does not stop the run, and that
// operator keeps being called on later iterations (Limit and Aggregate
// then emit empty output).
type Result int

const (
	// NeedMoreInput means this operator may still produce more
	// output given more input.
	NeedMoreInput Result = iota
	// Finished means this operator has produced its last output;
	// output may still be non-empty on the call that returns it.
	Finished
)

// Operator is one stage of a physical pipeline. Execute is called
// repeatedly with a fresh output batch (drawn from the executor's
// Pool) and either the previous operator's output or, for operator 0,
// an empty input signaling "pull more". Operators never return
// errors: I/O and evaluation failures degrade to Null, false, or an
// early Finished per the engine's error-handling contract, so the
// caller only needs to watch Result.
type Operator interface {
	Execute(input, output *Batch) Result

	// Reset clears any per-execution state (scanner handles,
	// aggregate counters, limit counters) so the operator can be
	// reused for a fresh run.
	Reset()
}
