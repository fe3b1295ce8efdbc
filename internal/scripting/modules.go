package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// RegisterModules installs the engine table into L:
//
//	engine.log.debug/info/warn(msg)
//	engine.dice.roll(expr)        -> total, or nil on a bad expression
//	engine.dice.between(lo, hi)   -> integer in [lo, hi]
//	engine.party.gold()           -> gold, or 0 when unbound
//	engine.party.grant_gold(n)
//	engine.party.has_mark(name)   -> bool
//	engine.party.add_mark(name)
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: engine global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()
	L.SetField(engine, "log", m.logModule(L))
	L.SetField(engine, "dice", m.diceModule(L))
	L.SetField(engine, "party", m.partyModule(L))
	L.SetGlobal("engine", engine)
}

func (m *Manager) logModule(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	logAt := func(fn func(string, ...zap.Field)) lua.LGFunction {
		return func(L *lua.LState) int {
			fn("lua: "+L.CheckString(1), zap.String("source", "script"))
			return 0
		}
	}
	L.SetField(mod, "debug", L.NewFunction(logAt(m.logger.Debug)))
	L.SetField(mod, "info", L.NewFunction(logAt(m.logger.Info)))
	L.SetField(mod, "warn", L.NewFunction(logAt(m.logger.Warn)))
	return mod
}

func (m *Manager) diceModule(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	L.SetField(mod, "roll", L.NewFunction(func(L *lua.LState) int {
		res, err := m.roller.RollExpr(L.CheckString(1))
		if err != nil {
			m.logger.Warn("lua: bad dice expression", zap.Error(err))
			L.Push(lua.LNil)
			return 1
		}
		L.Push(lua.LNumber(res.Total()))
		return 1
	}))
	L.SetField(mod, "between", L.NewFunction(func(L *lua.LState) int {
		lo, hi := L.CheckInt(1), L.CheckInt(2)
		if hi < lo {
			lo, hi = hi, lo
		}
		L.Push(lua.LNumber(m.roller.Between("script", lo, hi)))
		return 1
	}))
	return mod
}

func (m *Manager) partyModule(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	L.SetField(mod, "gold", L.NewFunction(func(L *lua.LState) int {
		if m.PartyGold == nil {
			L.Push(lua.LNumber(0))
			return 1
		}
		L.Push(lua.LNumber(m.PartyGold()))
		return 1
	}))
	L.SetField(mod, "grant_gold", L.NewFunction(func(L *lua.LState) int {
		n := L.CheckInt(1)
		if m.GrantGold != nil && n > 0 {
			m.GrantGold(n)
		}
		return 0
	}))
	L.SetField(mod, "has_mark", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		L.Push(lua.LBool(m.HasMark != nil && m.HasMark(name)))
		return 1
	}))
	L.SetField(mod, "add_mark", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		if m.AddMark != nil {
			m.AddMark(name)
		}
		return 0
	}))
	return mod
}
