// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/signtutor-cli/signtutor/color"
	"github.com/signtutor-cli/signtutor/constant"
	"github.com/signtutor-cli/signtutor/key"
	"github.com/signtutor-cli/signtutor/style"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Signtutor + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

// typeName returns the string representation of the field's underlying value type.
func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case float64:
		return "float64"
	case []string:
		return "[]string"
	case []int:
		return "[]int"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	// register validates and adds a new configuration field to the global registry.
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		f := Field{Key: k, Value: v, Description: desc}
		Default[k] = f
		EnvExposed = append(EnvExposed, k)
	}

	register(key.DefaultSignbanks, []string{"local"}, "Default signbanks to resolve words against.\nType \"signtutor signbanks list\" to show available signbanks")
	register(key.SignbankClipsDir, "", "Directory holding local sign clip files (WORD.mp4).\nDefaults to the clips directory under the config path when empty")
	register(key.ResolverFuzzy, true, "Fall back to fuzzy word matching when no exact clip exists")
	register(key.ResolverMaxDistance, 2, "Maximum Levenshtein distance accepted for a fuzzy clip match")
	register(key.HistorySaveOnSign, true, "Save practice progress after signing a sentence")
	register(key.InputShowSuggestions, true, "Show previously practiced sentences as input suggestions")
	register(key.MiniWordLimit, 20, "Limit of words accepted per sentence in mini mode")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.TutorEnable, false, "Enable the LLM chat tutor")
	register(key.TutorEndpoint, "https://api.openai.com/v1/chat/completions", "Chat-completions endpoint for the tutor backend")
	register(key.TutorModel, "gpt-4o-mini", "Model identifier requested from the tutor backend")
	register(key.ReportPeriodDays, 7, "Number of trailing days a practice report covers")
	register(key.TUIItemSpacing, 1, "Spacing between items in the TUI")
	register(key.TUISearchPromptString, "> ", "Sentence prompt string to use")
	register(key.TUIShowClipPaths, false, "Show resolved clip paths under word chips")
	register(key.PlayerEndEpsilon, 0.25, "Seconds from the end of a clip at which the position poll treats it as finished")
	register(key.PlayerPollInterval, 200, "Playback position poll interval in milliseconds")
	register(key.PlayerLoadTimeout, 10, "Seconds before an unresolved clip load is treated as failed")
	register(key.PlayerSlowMotionRate, 0.5, "Playback rate applied by the slow-motion toggle")
	register(key.PlayerCompletionPercentage, 80, "Percentage of a sequence loop required to count the sentence as practiced (1-100)")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Enable automatic version check")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
