package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/sosaria/internal/game/dice"
)

// globalKey is the reserved key for the scripts at the top of the script
// directory. CallHook falls back to this VM when a map has no VM of its own.
const globalKey = "__global__"

// Hook names looked up in script VMs.
const (
	HookMapEntered = "on_map_entered"
	HookNewDay     = "on_new_day"
)

// Manager owns one sandboxed LState for the shared scripts plus one per map
// that has its own script subdirectory, and dispatches event hooks to them.
//
// Manager is safe for concurrent use; hook calls are serialised.
type Manager struct {
	mu        sync.Mutex
	states    map[string]*lua.LState
	roller    *dice.Roller
	logger    *zap.Logger
	instLimit int

	// Injected after construction. nil = no-op in engine.party.
	PartyGold func() int
	GrantGold func(n int)
	HasMark   func(mark string) bool
	AddMark   func(mark string)
}

// NewManager creates a Manager.
//
// Precondition: roller and logger must be non-nil.
// Postcondition: Returns a non-nil Manager with no VMs.
func NewManager(roller *dice.Roller, logger *zap.Logger) *Manager {
	if roller == nil || logger == nil {
		panic("scripting: NewManager precondition violated: nil roller or logger")
	}
	return &Manager{
		states: make(map[string]*lua.LState),
		roller: roller,
		logger: logger,
	}
}

// SetInstructionLimit overrides the per-call opcode budget; n <= 0 restores
// DefaultInstructionLimit.
func (m *Manager) SetInstructionLimit(n int) {
	m.mu.Lock()
	m.instLimit = n
	m.mu.Unlock()
}

// Load reads scriptDir: top-level *.lua files form the shared VM and every
// subdirectory named after a map ID forms that map's VM.
//
// Precondition: scriptDir must be a readable directory.
// Postcondition: Previously loaded VMs are replaced; returns error on the
// first Lua load failure.
func (m *Manager) Load(scriptDir string) error {
	if err := m.loadInto(globalKey, scriptDir); err != nil {
		return err
	}
	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q: %w", scriptDir, err)
	}
	for _, e := range entries {
		if e.IsDir() {
			if err := m.loadInto(e.Name(), filepath.Join(scriptDir, e.Name())); err != nil {
				return err
			}
		}
	}
	return nil
}

// LoadMap creates a VM for mapID from the *.lua files in scriptDir.
//
// Precondition: mapID must be non-empty; scriptDir must be a readable directory.
func (m *Manager) LoadMap(mapID, scriptDir string) error {
	return m.loadInto(mapID, scriptDir)
}

func (m *Manager) loadInto(key, scriptDir string) error {
	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q for %q: %w", scriptDir, key, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	m.mu.Lock()
	defer m.mu.Unlock()

	L := NewSandboxedState()
	m.RegisterModules(L)
	for _, path := range luaFiles {
		release := limitInstructions(L, m.instLimit)
		err := L.DoFile(path)
		release()
		if err != nil {
			L.Close()
			return fmt.Errorf("scripting: loading %q for %q: %w", path, key, err)
		}
	}

	if old, ok := m.states[key]; ok {
		old.Close()
	}
	m.states[key] = L
	m.logger.Debug("scripts loaded", zap.String("key", key), zap.Int("files", len(luaFiles)))
	return nil
}

// CallHook calls the named Lua global function in mapID's VM, falling back
// to the shared VM. Returns LNil when the hook is undefined or no VM exists.
// Lua runtime errors, including an exhausted instruction budget, are logged
// at Warn level and never propagated.
//
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(mapID, hook string, args ...lua.LValue) lua.LValue {
	m.mu.Lock()
	defer m.mu.Unlock()

	L, ok := m.states[mapID]
	if !ok || L.GetGlobal(hook) == lua.LNil {
		L = m.states[globalKey]
	}
	if L == nil {
		return lua.LNil
	}

	fn := L.GetGlobal(hook)
	if fn == lua.LNil {
		return lua.LNil
	}

	release := limitInstructions(L, m.instLimit)
	err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, args...)
	release()
	if err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("map", mapID),
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil
	}

	ret := L.Get(-1)
	L.Pop(1)
	return ret
}

// MapEntered runs on_map_entered(map_id) and returns its string result.
func (m *Manager) MapEntered(mapID string) string {
	return luaString(m.CallHook(mapID, HookMapEntered, lua.LString(mapID)))
}

// NewDay runs on_new_day(day) in the shared VM and returns its string result.
func (m *Manager) NewDay(day int) string {
	return luaString(m.CallHook(globalKey, HookNewDay, lua.LNumber(day)))
}

// Close releases every VM.
//
// Postcondition: CallHook returns LNil until the next Load.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, L := range m.states {
		L.Close()
		delete(m.states, k)
	}
}

func luaString(v lua.LValue) string {
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}
