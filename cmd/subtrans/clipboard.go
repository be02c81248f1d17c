package main

import (
	"strings"

	"github.com/atotto/clipboard"

	"subtrans/internal/services"
)

var readClipboard = clipboard.ReadAll

// resolveReference returns the positional video reference, or the clipboard
// contents when fromClipboard is set and no argument was given.
func resolveReference(args []string, fromClipboard bool) (string, error) {
	if len(args) > 0 {
		if reference := strings.TrimSpace(args[0]); reference != "" {
			return reference, nil
		}
	}
	if !fromClipboard {
		return "", services.Wrap(services.ErrValidation, "cli", "reference",
			"provide a video URL. Example: subtrans https://youtu.be/<id> --target fa (or pass --from-clipboard)", nil)
	}
	text, err := readClipboard()
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "cli", "clipboard", "read clipboard", err)
	}
	reference := firstLine(text)
	if reference == "" {
		return "", services.Wrap(services.ErrValidation, "cli", "clipboard", "clipboard holds no video URL", nil)
	}
	return reference, nil
}

func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
