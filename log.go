// Copyright 2024 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package inliner

import (
	"github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"
)

// RunIDLogField is the log field holding the id of an inlining run.
const RunIDLogField = "runID"

// ViewLogField is the log field holding the name of the view being inlined.
const ViewLogField = "view"

// newRunLogger returns the log entry for a new inlining run, tagged with a random run id.
func newRunLogger() *logrus.Entry {
	id, err := uuid.NewV4()
	if err != nil {
		logrus.WithError(err).Warn("unable to generate run id")
		return logrus.NewEntry(logrus.StandardLogger())
	}

	return logrus.WithField(RunIDLogField, id.String())
}
