package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// collector accumulates raw Lua tables from world files before compilation.
type collector struct {
	rooms   []rawDecl
	items   []rawDecl
	enemies []rawDecl
	npcs    []rawDecl
	recipes []rawDecl
	quests  []rawDecl
}

// rawDecl is one curried declaration: Kind "id" { ... }.
type rawDecl struct {
	id    string
	table *lua.LTable
}

// registerAPI registers the Lua world constructors as globals. Each is
// curried: Room("id") returns a function taking the definition table.
func registerAPI(L *lua.LState, coll *collector) {
	register := func(name string, sink *[]rawDecl) {
		L.SetGlobal(name, L.NewFunction(func(L *lua.LState) int {
			id := L.CheckString(1)
			L.Push(L.NewFunction(func(L *lua.LState) int {
				tbl := L.CheckTable(1)
				*sink = append(*sink, rawDecl{id: id, table: tbl})
				return 0
			}))
			return 1
		}))
	}

	register("Room", &coll.rooms)
	register("Item", &coll.items)
	register("Enemy", &coll.enemies)
	register("NPC", &coll.npcs)
	register("Recipe", &coll.recipes)
	register("Quest", &coll.quests)
}
