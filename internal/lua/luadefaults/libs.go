package luadefaults

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// InjectConfigLibs loads the libs a configuration script may use into L.
//
// Config scripts get base and table, without the code loading
// functions from base. L must be created with SkipOpenLibs.
func InjectConfigLibs(L *lua.LState) error {
	for _, pair := range []struct {
		n string
		f lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
	} {
		if err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(pair.f),
			NRet:    0,
			Protect: true,
		}, lua.LString(pair.n)); err != nil {
			return fmt.Errorf("unable to open lua lib %v, cause %w", pair.n, err)
		}
	}
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
	return nil
}
