package main

import (
	"os"
	"strings"
)

// init runs before the UI touches the terminal.
//
// Lipgloss and termenv probe the terminal background with OSC/DSR queries.
// Headless runs write snapshots, check reports or JSON metrics to stdout, and
// those queries would end up mixed into the output when stdout is captured.
// Setting CI=1 makes termenv skip the probing.
func init() {
	if os.Getenv("CI") != "" {
		return
	}
	if !shouldSuppressTTYQueries(os.Args[1:], os.Getenv("XW_HEADLESS") == "1") {
		return
	}
	_ = os.Setenv("CI", "1")
}

func shouldSuppressTTYQueries(args []string, envHeadless bool) bool {
	if envHeadless {
		return true
	}
	for _, arg := range args {
		name := strings.TrimLeft(arg, "-")
		if name == arg {
			continue
		}
		if i := strings.IndexByte(name, '='); i >= 0 {
			name = name[:i]
		}
		switch name {
		case "export", "check", "metrics", "version", "help", "h":
			return true
		}
	}
	return false
}
