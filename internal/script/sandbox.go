package script

import (
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// removedGlobals are base functions that load code from disk or strings or
// reach the module system.
var removedGlobals = []string{
	"dofile",
	"loadfile",
	"load",
	"loadstring",
	"require",
	"module",
}

// openSafeLibraries opens only libraries with no file system or process
// access. io, os, debug and package are never opened.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range removedGlobals {
		L.SetGlobal(name, lua.LNil)
	}
}

// installPrint replaces print so output goes to the status line instead of
// the terminal the editor is drawing on.
func installPrint(L *lua.LState, status func(string)) {
	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		n := L.GetTop()
		parts := make([]string, 0, n)
		for i := 1; i <= n; i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		status(strings.Join(parts, "\t"))
		return 0
	}))
}
