package custom

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/signtutor-cli/signtutor/sign"
)

// Helper to get string from table with default
func getString(table *lua.LTable, key string) string {
	val := table.RawGetString(key)
	if val.Type() == lua.LTString {
		return val.String()
	}
	return ""
}

// clipFromTable builds a clip from a Lua bank result. The script may override
// the display word, e.g. when it maps "DON'T" to its "NOT" clip.
func clipFromTable(table *lua.LTable, word string) (*sign.Clip, error) {
	url := getString(table, "url")
	if url == "" {
		return nil, fmt.Errorf("clip must have url")
	}

	if w := getString(table, "word"); w != "" {
		word = w
	}

	return &sign.Clip{
		Word:   word,
		Source: url,
	}, nil
}
