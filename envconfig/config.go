package envconfig

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/jmorganca/seqmap/logutil"
)

var (
	// Set via SEQMAP_DEBUG in the environment. 1 (or true) enables debug
	// logging, 2 enables trace logging.
	Debug int
	// Set via SEQMAP_NOHISTORY in the environment
	NoHistory bool
	// Set via SEQMAP_HISTORY_LIMIT in the environment
	HistoryLimit int
	// Set via SEQMAP_CAPACITY in the environment
	Capacity int
)

type EnvVar struct {
	Name        string
	Value       any
	Description string
}

func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"SEQMAP_DEBUG":         {"SEQMAP_DEBUG", Debug, "Show additional debug information (e.g. SEQMAP_DEBUG=1, 2 for trace)"},
		"SEQMAP_NOHISTORY":     {"SEQMAP_NOHISTORY", NoHistory, "Do not preserve readline history"},
		"SEQMAP_HISTORY_LIMIT": {"SEQMAP_HISTORY_LIMIT", HistoryLimit, "Maximum number of history lines kept (default 100)"},
		"SEQMAP_CAPACITY":      {"SEQMAP_CAPACITY", Capacity, "Initial capacity hint for the working map (default 0)"},
	}
}

func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}

// LogLevel maps Debug onto a slog level.
func LogLevel() slog.Level {
	switch {
	case Debug >= 2:
		return logutil.LevelTrace
	case Debug == 1:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// Clean quotes and spaces from the value
func clean(key string) string {
	return strings.Trim(os.Getenv(key), "\"' ")
}

func init() {
	LoadConfig()
}

func LoadConfig() {
	// default values
	Debug = 0
	NoHistory = false
	HistoryLimit = 100
	Capacity = 0

	if debug := clean("SEQMAP_DEBUG"); debug != "" {
		if level, err := strconv.Atoi(debug); err == nil {
			Debug = max(level, 0)
		} else if b, err := strconv.ParseBool(debug); err == nil {
			if b {
				Debug = 1
			}
		} else {
			Debug = 1
		}
	}

	if nohistory := clean("SEQMAP_NOHISTORY"); nohistory != "" {
		NoHistory = true
	}

	if limit := clean("SEQMAP_HISTORY_LIMIT"); limit != "" {
		val, err := strconv.Atoi(limit)
		if err != nil || val <= 0 {
			slog.Error("invalid setting must be greater than zero", "SEQMAP_HISTORY_LIMIT", limit, "error", err)
		} else {
			HistoryLimit = val
		}
	}

	if capacity := clean("SEQMAP_CAPACITY"); capacity != "" {
		val, err := strconv.Atoi(capacity)
		if err != nil || val < 0 {
			slog.Error("invalid setting, ignoring", "SEQMAP_CAPACITY", capacity, "error", err)
		} else {
			Capacity = val
		}
	}
}
