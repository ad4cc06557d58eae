package ui

import (
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	// Keep config lookups away from the developer's own files
	dir, err := os.MkdirTemp("", "xw-ui-test")
	if err == nil {
		os.Setenv("XDG_CONFIG_HOME", dir)
	}

	code := m.Run()

	if dir != "" {
		os.RemoveAll(dir)
	}
	os.Exit(code)
}
