package custom

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/signtutor-cli/signtutor/constant"
	"github.com/signtutor-cli/signtutor/internal/cache"
	"github.com/signtutor-cli/signtutor/sign"
)

// Lookup resolves a word through the bank script. A Lua nil return means the
// word is not demonstrable, reported as (nil, nil).
func (b *luaBank) Lookup(word string) (*sign.Clip, error) {
	cacheKey := cache.GenerateKey(word, b.Name())
	var cached sign.Clip
	if cache.Read(cacheKey, &cached) {
		cached.SignbankID = b.ID()
		return &cached, nil
	}

	val, err := b.call(constant.LookupSignFn, lua.LString(word))
	if err != nil {
		return nil, err
	}

	switch val.Type() {
	case lua.LTNil:
		return nil, nil
	case lua.LTTable:
		clip, err := clipFromTable(val.(*lua.LTable), word)
		if err != nil {
			return nil, err
		}
		clip.SignbankID = b.ID()
		_ = cache.Write(cacheKey, clip)
		return clip, nil
	default:
		return nil, fmt.Errorf("%s returned %s, expected table or nil", constant.LookupSignFn, val.Type())
	}
}
