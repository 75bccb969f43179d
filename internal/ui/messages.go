// Package ui provides the Bubble Tea TUI for kiosk.
package ui

import "github.com/abelbrown/kiosk/internal/feed"

// DocumentLoaded is sent when a feed fetch finishes.
type DocumentLoaded struct {
	Doc *feed.Document
	Err error
}

// OpenedInBrowser is sent after a link was handed to the system browser.
type OpenedInBrowser struct {
	URL string
	Err error
}
