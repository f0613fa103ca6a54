// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

// Signbank Function Identifiers - these constants define the required global function signatures for Lua signbank modules.
const (
	// LookupSignFn resolves a single normalized word to a playable clip reference.
	LookupSignFn = "LookupSign"

	// SignWordsFn enumerates every word the signbank can demonstrate.
	SignWordsFn = "SignWords"
)

// SignbankTemplate is a Go text/template for scaffolding new Lua signbank files.
const SignbankTemplate = `{{ $divider := repeat "-" (plus (max (len .URL) (len .Name) (len .Author) 3) 12) }}{{ $divider }}
-- @name    {{ .Name }}
-- @url     {{ .URL }}
-- @author  {{ .Author }}
-- @license MIT
{{ $divider }}


---@alias clip { url: string, word: string|nil }


----- IMPORTS -----
--- END IMPORTS ---



----- VARIABLES -----
--- END VARIABLES ---



----- MAIN -----

--- Resolves a normalized word to a playable clip.
-- @param word string Uppercased word to resolve
-- @return clip|nil Clip reference, or nil when the word is unknown
function {{ .LookupSignFn }}(word)
	return nil
end


--- Lists every word this signbank can demonstrate.
-- @return string[] Table of uppercased words
function {{ .SignWordsFn }}()
	return {}
end


--- END MAIN ---




----- HELPERS -----
--- END HELPERS ---

-- ex: ts=4 sw=4 et filetype=lua
`
