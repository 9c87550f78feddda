// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dapp

import (
	"sort"
	"sync"

	"github.com/33cn/wager/common/address"
	log "github.com/33cn/wager/common/log"
	"github.com/33cn/wager/types"
)

var elog = log.New("module", "execs")

// ProgramCreate defines a program create function
type ProgramCreate func() Program

type programEntry struct {
	name    string
	create  ProgramCreate
	builtin bool
}

var (
	mu               sync.RWMutex
	registedPrograms = make(map[string]*programEntry)
	programs         = make(map[address.Address]*programEntry)
)

// Register register a program by name and deploy it at id.
// builtin programs are trusted by the host and enforce their own account rules.
func Register(name string, id address.Address, create ProgramCreate, builtin bool) {
	if create == nil {
		panic("Execute: Register program is nil")
	}
	mu.Lock()
	defer mu.Unlock()
	if _, dup := registedPrograms[name]; dup {
		panic("Execute: Register called twice for program " + name)
	}
	if _, dup := programs[id]; dup {
		panic("Execute: Register called twice for address " + id.String())
	}
	entry := &programEntry{name: name, create: create, builtin: builtin}
	registedPrograms[name] = entry
	programs[id] = entry
}

// Deploy bind one more address to a registered program
func Deploy(name string, id address.Address) error {
	mu.Lock()
	defer mu.Unlock()
	entry, ok := registedPrograms[name]
	if !ok {
		return types.ErrUnsupportedProgramID
	}
	if exist, ok := programs[id]; ok {
		if exist == entry {
			return nil
		}
		return types.ErrAccountAlreadyInUse
	}
	programs[id] = entry
	elog.Info("Deploy", "program", name, "id", id.String())
	return nil
}

// LoadProgram create the program deployed at id
func LoadProgram(id address.Address) (prog Program, builtin bool, err error) {
	mu.RLock()
	entry, ok := programs[id]
	mu.RUnlock()
	if !ok {
		elog.Debug("LoadProgram", "id", id.String())
		return nil, false, types.ErrUnsupportedProgramID
	}
	return entry.create(), entry.builtin, nil
}

// ProgramName name of the program deployed at id, empty when none
func ProgramName(id address.Address) string {
	mu.RLock()
	defer mu.RUnlock()
	if entry, ok := programs[id]; ok {
		return entry.name
	}
	return ""
}

// ListProgram names of the registered programs, sorted
func ListProgram() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registedPrograms))
	for name := range registedPrograms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
