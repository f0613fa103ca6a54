// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Signbank Identifiers - these keys manage the registration and selection of sign clip sources.
const (
	DefaultSignbanks = "signbanks.default"
	SignbankClipsDir = "signbanks.clips_dir"
)

// Clip Resolution - these keys govern how spoken words are matched to signbank clips.
const (
	ResolverFuzzy       = "resolver.fuzzy"
	ResolverMaxDistance = "resolver.max_distance"
)

// History Tracking - these keys configure the persistence of practice progress.
const (
	HistorySaveOnSign = "history.save_on_sign"
)

// Input Interaction - these keys define the UI/UX parameters for sentence entry.
const (
	InputShowSuggestions = "input.show_suggestions"
)

// Minimalist (Mini) Mode - these keys configure the specialized lightweight prompt interface.
const (
	MiniWordLimit = "mini.word_limit"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Tutor Service Integration - these keys manage the LLM chat tutor backend.
const (
	TutorEnable   = "tutor.enable"
	TutorEndpoint = "tutor.endpoint"
	TutorModel    = "tutor.model"
)

// Progress Reports - these keys configure generated practice reports.
const (
	ReportPeriodDays = "report.period_days"
)

// Terminal User Interface (TUI) - these keys define the primary interactive environment's styling and logic.
const (
	TUIItemSpacing        = "tui.item_spacing"
	TUISearchPromptString = "tui.search_prompt"
	TUIShowClipPaths      = "tui.show_clip_paths"
)

// Media Playback - these keys maintain the state and configuration for the sequence player.
const (
	PlayerEndEpsilon           = "player.end_epsilon"
	PlayerPollInterval         = "player.poll_interval"
	PlayerLoadTimeout          = "player.load_timeout"
	PlayerSlowMotionRate       = "player.slow_motion_rate"
	PlayerCompletionPercentage = "player.completion_percentage"
)

// Command-Line Interface - these keys control global CLI presentation behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)

// Diagnostics - these keys configure the persistent logging subsystem.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)
