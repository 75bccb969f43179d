// Command kiosk is a terminal reader for a pre-generated article feed.
//
// Usage:
//
//	kiosk                   Run the TUI
//	kiosk list              Print the filtered article view to stdout
//	kiosk stats             Feed composition and read-state statistics
//	kiosk reset             Clear read and saved marks
//
// Run 'kiosk <command> -h' for command-specific help.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
