package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers all Lua constructors as globals.
func registerAPI(L *lua.LState, coll *collector) {
	// Difficulty "name" { ... } — curried: Difficulty("name") returns a
	// function that takes a table.
	L.SetGlobal("Difficulty", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.difficulties = append(coll.difficulties, rawDifficulty{name: name, table: tbl})
			return 0
		}))
		return 1
	}))

	// Scoring { wall_is = 6, ... }
	L.SetGlobal("Scoring", L.NewFunction(func(L *lua.LState) int {
		coll.scoring = append(coll.scoring, L.CheckTable(1))
		return 0
	}))

	// Allocation { new_room = 1.5, ... }
	L.SetGlobal("Allocation", L.NewFunction(func(L *lua.LState) int {
		coll.allocation = append(coll.allocation, L.CheckTable(1))
		return 0
	}))

	// Default "hard"
	L.SetGlobal("Default", L.NewFunction(func(L *lua.LState) int {
		coll.defaultTier = L.CheckString(1)
		return 0
	}))

	// Range(lo, hi) builds the two-element table accepted by items and perturb.
	L.SetGlobal("Range", L.NewFunction(func(L *lua.LState) int {
		lo := L.CheckNumber(1)
		hi := L.CheckNumber(2)
		tbl := L.NewTable()
		tbl.Append(lo)
		tbl.Append(hi)
		L.Push(tbl)
		return 1
	}))
}
