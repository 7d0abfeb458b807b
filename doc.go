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

// Package flatql wires the logical planner, rule-based optimizer,
// physical lowering, and pipeline executor into the single entry point
// a front-end needs: hand it a bound query, get back result batches.
//
// Everything upstream of BoundQuery (parsing SQL text, resolving the
// file path, reading the header, and inferring column types from the
// first sample rows) is a separate concern this package does not
// implement; see plan.BoundQuery for the contract it expects instead.
package flatql
