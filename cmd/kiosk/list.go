package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/abelbrown/kiosk/internal/filter"
)

// listRow is the JSON shape for one article in 'kiosk list --json'.
type listRow struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Source    string    `json:"source"`
	Type      string    `json:"type"`
	Published time.Time `json:"published,omitempty"`
	Rating    int       `json:"rating,omitempty"`
	Labels    []string  `json:"labels,omitempty"`
	URL       string    `json:"url,omitempty"`
	Read      bool      `json:"read"`
	Saved     bool      `json:"saved"`
}

func newListCmd() *cobra.Command {
	var (
		flagFilter   string
		flagSource   string
		flagCategory string
		flagSearch   string
		flagSort     string
		flagUnread   bool
		flagJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the filtered article view",
		Long: `Fetch the feed once and print the same view the TUI would show.
Unread articles carry a leading *, saved articles a ★.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			closeLog := setupLogging(cfg, true)
			defer closeLog()

			st := openStore(cfg)
			defer st.Close()

			vm, _, err := loadView(cfg, st)
			if err != nil {
				return err
			}

			applyConfigSelection(vm, cfg)
			if flagFilter != "" {
				m, err := filter.ParseMode(flagFilter)
				if err != nil {
					return err
				}
				vm.SetMode(m)
			}
			if flagSource != "" {
				ref, err := resolveSource(vm.Index(), flagSource)
				if err != nil {
					return err
				}
				vm.SetSource(ref)
			}
			if flagCategory != "" {
				vm.SetCategory(flagCategory)
			}
			if flagSearch != "" {
				vm.SetSearch(flagSearch)
			}
			if flagSort != "" {
				s, err := filter.ParseSort(flagSort)
				if err != nil {
					return err
				}
				vm.SetSort(s)
			}
			if flagUnread {
				vm.ToggleUnreadOnly()
			}

			out := cmd.OutOrStdout()
			if flagJSON {
				rows := make([]listRow, 0, vm.VisibleCount())
				for _, a := range vm.Articles() {
					rows = append(rows, listRow{
						ID:        string(a.ID),
						Title:     a.Title,
						Source:    a.SourceName,
						Type:      string(a.SourceType),
						Published: a.EffectiveDate(),
						Rating:    a.Rating,
						Labels:    a.Labels,
						URL:       a.URL,
						Read:      vm.IsRead(a.ID),
						Saved:     vm.IsSaved(a.ID),
					})
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}

			for _, a := range vm.Articles() {
				marker := " "
				if !vm.IsRead(a.ID) {
					marker = "*"
				}
				star := " "
				if vm.IsSaved(a.ID) {
					star = "★"
				}
				age := "-"
				if ed := a.EffectiveDate(); !ed.IsZero() {
					age = humanize.Time(ed)
				}
				rating := ""
				if a.Rating > 0 {
					rating = fmt.Sprintf("  [%d]", a.Rating)
				}
				fmt.Fprintf(out, "%s%s %-60s  %-20s  %s%s\n",
					marker, star, truncate(a.Title, 60), truncate(a.SourceName, 20), age, rating)
			}
			fmt.Fprintf(out, "\n%d of %d articles, %d unread\n",
				vm.VisibleCount(), vm.TotalCount(), vm.UnreadCount())
			return nil
		},
	}

	cmd.Flags().StringVar(&flagFilter, "filter", "", "time window, saved shelf, or source type (today, week, all, saved, rss, youtube, ...)")
	cmd.Flags().StringVar(&flagSource, "source", "", "narrow to one feed by id or name")
	cmd.Flags().StringVar(&flagCategory, "category", "", "narrow to one category label")
	cmd.Flags().StringVar(&flagSearch, "search", "", "search query over title, summary, and source")
	cmd.Flags().StringVar(&flagSort, "sort", "", "sort order (date, rating)")
	cmd.Flags().BoolVar(&flagUnread, "unread", false, "unread articles only")
	cmd.Flags().BoolVar(&flagJSON, "json", false, "emit JSON instead of text")

	return cmd
}
