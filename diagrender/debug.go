// Copyright 2020-2024 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package diagrender

import (
	"fmt"
	"os"
)

// debugMode is the status of the DIAGRENDER_DEBUG environment variable at
// startup. When set, the renderer re-validates the invariants of the render
// plan it built (strictly ascending, non-duplicated source rows) before
// emitting it, and panics with a descriptive message if one is violated.
// This is meant to catch bugs in the layout planner during development; it
// is never required for correct rendering and adds an O(rows) pass when on.
var debugMode = os.Getenv("DIAGRENDER_DEBUG") != ""

// checkPlanInvariants panics if rows violates the invariant that printed
// source lines are strictly ascending and never repeated.
func checkPlanInvariants(rows []planRow) {
	if !debugMode {
		return
	}
	last := -1
	for _, row := range rows {
		if row.kind != rowKindSource {
			continue
		}
		if row.line <= last {
			panic(fmt.Sprintf("diagrender: render plan violated ascending-source-row invariant: %d after %d", row.line, last))
		}
		last = row.line
	}
}
