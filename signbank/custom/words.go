package custom

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/signtutor-cli/signtutor/constant"
	"github.com/signtutor-cli/signtutor/internal/cache"
)

// Words enumerates every word the bank script can demonstrate.
func (b *luaBank) Words() ([]string, error) {
	cacheKey := cache.GenerateKey("__words__", b.Name())
	var cached []string
	if cache.Read(cacheKey, &cached) {
		return cached, nil
	}

	val, err := b.call(constant.SignWordsFn)
	if err != nil {
		return nil, err
	}

	if val.Type() != lua.LTTable {
		return nil, fmt.Errorf("%s returned %s, expected table", constant.SignWordsFn, val.Type())
	}

	var words []string
	val.(*lua.LTable).ForEach(func(_, v lua.LValue) {
		if v.Type() == lua.LTString {
			words = append(words, v.String())
		}
	})

	if len(words) > 0 {
		_ = cache.Write(cacheKey, words)
	}

	return words, nil
}
