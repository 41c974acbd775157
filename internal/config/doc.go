// Package config loads hexim's settings.
//
// Settings come from three layers, later layers winning:
//
//  1. Built-in defaults (Default)
//  2. A TOML file, by default $XDG_CONFIG_HOME/hexim/config.toml
//  3. HEXIM_* environment variables
//
// Command-line flags are applied on top by the caller.
//
// # File format
//
//	[editor]
//	input_mode = "hex"     # or "ascii"
//	undo_limit = 0         # 0 keeps every snapshot
//
//	[logging]
//	level = "info"         # debug, info, warn, error
//	file = ""              # empty discards log output
//
//	[clipboard]
//	enabled = true
//
//	[watch]
//	enabled = true
//	debounce = "100ms"
//
//	[script]
//	init = ""              # Lua file run at startup
//	timeout = "2s"
//
//	[ui]
//	offset_color = "red"   # palette name, "#rrggbb" or "default"
//
// Unknown keys are rejected so typos surface at startup.
//
// # Environment
//
// Each setting has a variable: HEXIM_INPUT_MODE, HEXIM_UNDO_LIMIT,
// HEXIM_LOG_LEVEL, HEXIM_LOG_FILE, HEXIM_CLIPBOARD, HEXIM_WATCH,
// HEXIM_WATCH_DEBOUNCE, HEXIM_SCRIPT_INIT, HEXIM_SCRIPT_TIMEOUT and
// HEXIM_OFFSET_COLOR. Booleans accept true/false, yes/no, on/off and 1/0.
package config
