package ui

import "github.com/charmbracelet/lipgloss"

// Colors used in the application.
var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorSuccess   = lipgloss.Color("78")  // Green
	colorAccent    = lipgloss.Color("214") // Orange
)

// SelectedItem style for the currently highlighted article row.
var SelectedItem = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// NormalItem style for unselected, unread articles.
var NormalItem = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Padding(0, 1)

// ReadItem style for articles that have been read.
var ReadItem = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Padding(0, 1)

// SourceBadge style for source name badges.
var SourceBadge = lipgloss.NewStyle().
	Foreground(colorPrimary).
	Background(lipgloss.Color("236")).
	Padding(0, 1).
	MarginRight(1)

// RatingBadge style for the curator score shown on rated articles.
var RatingBadge = lipgloss.NewStyle().
	Foreground(colorSuccess).
	Bold(true)

// SavedMark style for the bookmark indicator.
var SavedMark = lipgloss.NewStyle().
	Foreground(colorAccent)

// MetaItem style for ages and other dim row metadata.
var MetaItem = lipgloss.NewStyle().
	Foreground(colorMuted)

// SidebarHeader style for sidebar section labels.
var SidebarHeader = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight).
	Padding(0, 1)

// SidebarItem style for plain sidebar rows.
var SidebarItem = lipgloss.NewStyle().
	Foreground(lipgloss.Color("250")).
	Padding(0, 1)

// SidebarActive style for the row matching the current view.
var SidebarActive = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight).
	Padding(0, 1)

// SidebarCursor style for the row under the sidebar cursor.
var SidebarCursor = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// StatusBar style for the bottom status bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// StatusBarKey style for key hints in the status bar.
var StatusBarKey = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// StatusBarText style for descriptive text in the status bar.
var StatusBarText = lipgloss.NewStyle().
	Foreground(colorSecondary)

// ErrorStyle for displaying errors.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("196")).
	Bold(true).
	Padding(0, 1)

// HelpStyle for help and empty-state text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(colorMuted).
	Padding(1, 2)

// SearchBar style for the search input line.
var SearchBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("240")).
	Padding(0, 1)

// SearchBarCount style for the match count next to the query.
var SearchBarCount = lipgloss.NewStyle().
	Foreground(colorSecondary)

// ReaderTitle style for the reader header line.
var ReaderTitle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// ReaderFooter style for the reader key hints.
var ReaderFooter = lipgloss.NewStyle().
	Foreground(colorMuted).
	Padding(0, 1)
