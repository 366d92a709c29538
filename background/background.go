// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Obsidian Money Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package background - run long lived shutdown-aware goroutines
package background

import (
	"github.com/bitmark-inc/logger"
)

// Process - one named background activity
//
// Run must return promptly once the shutdown channel closes
type Process struct {
	Name string
	Run  func(shutdown <-chan struct{})
}

type entry struct {
	name     string
	shutdown chan struct{}
	finished chan struct{}
}

// T - a running set of background processes
type T struct {
	log     *logger.L
	entries []entry
}

// Start - launch every process
func Start(processes []Process) *T {
	register := &T{
		log:     logger.New("background"),
		entries: make([]entry, len(processes)),
	}

	for i, p := range processes {
		shutdown := make(chan struct{})
		finished := make(chan struct{})
		register.entries[i] = entry{
			name:     p.Name,
			shutdown: shutdown,
			finished: finished,
		}
		register.log.Infof("starting: %s", p.Name)
		go func(run func(<-chan struct{}), finished chan struct{}) {
			defer close(finished)
			run(shutdown)
		}(p.Run, finished)
	}
	return register
}

// Stop - shut all processes down, most recently started first, and
// wait for each to finish
func (t *T) Stop() {
	if nil == t {
		return
	}
	for i := len(t.entries) - 1; i >= 0; i -= 1 {
		e := t.entries[i]
		t.log.Infof("stopping: %s", e.name)
		close(e.shutdown)
		<-e.finished
	}
	t.entries = nil
}
