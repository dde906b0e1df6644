package tui

import (
	"github.com/atotto/clipboard"
)

// System clipboard indirection so tests can run headless.
var (
	clipboardWrite = clipboard.WriteAll
	clipboardRead  = clipboard.ReadAll
)
