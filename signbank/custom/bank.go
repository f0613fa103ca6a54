package custom

import (
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

type luaBank struct {
	name  string
	state *lua.LState
	mu    sync.Mutex // LState is not safe for concurrent use
}

func newLuaBank(name string, state *lua.LState) *luaBank {
	return &luaBank{
		name:  name,
		state: state,
	}
}

// Name returns the bank name.
func (b *luaBank) Name() string {
	return b.name
}

// ID returns the bank ID.
func (b *luaBank) ID() string {
	return IDfromName(b.name) // Defined in loader.go
}

// call executes a global Lua function safely and returns its single result.
func (b *luaBank) call(fn string, args ...lua.LValue) (lua.LValue, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	luaFn := b.state.GetGlobal(fn)
	if luaFn.Type() != lua.LTFunction {
		return nil, fmt.Errorf("function %s is not defined", fn)
	}

	err := b.state.CallByParam(lua.P{
		Fn:      luaFn,
		NRet:    1,
		Protect: true,
	}, args...)

	if err != nil {
		return nil, err
	}

	retval := b.state.Get(-1)
	b.state.Pop(1) // Clean stack

	return retval, nil
}
