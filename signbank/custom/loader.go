// Package custom provides a bridge between the Go core and Lua-based
// signbank scripts.
package custom

import (
	"fmt"

	libs "github.com/metafates/mangal-lua-libs"
	lua "github.com/yuin/gopher-lua"

	"github.com/signtutor-cli/signtutor/constant"
	"github.com/signtutor-cli/signtutor/internal/script"
	"github.com/signtutor-cli/signtutor/sign"
	"github.com/signtutor-cli/signtutor/util"
)

// IDfromName generates a canonical bank identifier for a given Lua script
// basename.
func IDfromName(name string) string {
	return name + " custom"
}

// LoadBank initializes a sign.Signbank instance by executing and validating
// a Lua bank script.
func LoadBank(path string) (sign.Signbank, error) {
	state := lua.NewState()
	libs.Preload(state)
	registerTLSClient(state) // Injected from wrapper_tls.go

	// Load and compile the Lua script (using cache if available).
	err := script.PreCompileAndLoad(state, path)
	if err != nil {
		return nil, err
	}

	name := util.FileStem(path)

	required := []string{
		constant.LookupSignFn,
		constant.SignWordsFn,
	}

	for _, fn := range required {
		if state.GetGlobal(fn).Type() != lua.LTFunction {
			return nil, fmt.Errorf("function %s is required but not defined in %s", fn, name)
		}
	}

	return newLuaBank(name, state), nil
}
