package script

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI installs the global hex table.
func (r *Runtime) registerAPI() {
	mod := r.L.SetFuncs(r.L.NewTable(), map[string]lua.LGFunction{
		"len":    r.apiLen,
		"get":    r.apiGet,
		"set":    r.apiSet,
		"insert": r.apiInsert,
		"delete": r.apiDelete,
		"cursor": r.apiCursor,
		"jump":   r.apiJump,
		"status": r.apiStatus,
	})
	r.L.SetGlobal("hex", mod)
}

func (r *Runtime) apiLen(L *lua.LState) int {
	L.Push(lua.LNumber(r.host.Len()))
	return 1
}

func (r *Runtime) apiGet(L *lua.LState) int {
	b, ok := r.host.ByteAt(L.CheckInt(1))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(b))
	return 1
}

func (r *Runtime) apiSet(L *lua.LState) int {
	i := L.CheckInt(1)
	v := checkByte(L, 2)
	if i < 0 || i >= r.host.Len() {
		L.ArgError(1, "offset out of range")
		return 0
	}
	if err := r.host.Edit(i, i+1, []byte{v}); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (r *Runtime) apiInsert(L *lua.LState) int {
	i := L.CheckInt(1)

	var data []byte
	switch v := L.CheckAny(2).(type) {
	case lua.LNumber:
		data = []byte{checkByte(L, 2)}
	case lua.LString:
		data = []byte(string(v))
	default:
		L.ArgError(2, "number or string expected")
		return 0
	}

	if err := r.host.Edit(i, i, data); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (r *Runtime) apiDelete(L *lua.LState) int {
	lo := L.CheckInt(1)
	hi := L.CheckInt(2)
	if err := r.host.Edit(lo, hi, nil); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (r *Runtime) apiCursor(L *lua.LState) int {
	L.Push(lua.LNumber(r.host.Index()))
	return 1
}

func (r *Runtime) apiJump(L *lua.LState) int {
	r.host.SetIndex(L.CheckInt(1))
	return 0
}

func (r *Runtime) apiStatus(L *lua.LState) int {
	r.status(L.CheckString(1))
	return 0
}

// checkByte reads argument n as a byte value.
func checkByte(L *lua.LState, n int) byte {
	v := L.CheckInt(n)
	if v < 0 || v > 0xff {
		L.ArgError(n, "byte value out of range")
	}
	return byte(v)
}
