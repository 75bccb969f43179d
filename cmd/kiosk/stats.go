package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/abelbrown/kiosk/internal/feed"
)

func newStatsCmd() *cobra.Command {
	var flagTop int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show feed composition and read progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			closeLog := setupLogging(cfg, true)
			defer closeLog()

			st := openStore(cfg)
			defer st.Close()

			vm, tracker, err := loadView(cfg, st)
			if err != nil {
				return err
			}
			idx := vm.Index()
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Feed:       %s\n", cfg.FeedURL)
			if gen := vm.GeneratedAt(); !gen.IsZero() {
				fmt.Fprintf(out, "Generated:  %s (%s)\n", gen.Format(time.RFC1123), humanize.Time(gen))
			}
			fmt.Fprintf(out, "Articles:   %d\n", idx.Total)

			fmt.Fprintf(out, "\nTypes:\n")
			for _, t := range feed.KnownTypes() {
				if n := idx.TypeTotal(t); n > 0 {
					fmt.Fprintf(out, "  %-14s %d\n", t.Label(), n)
				}
			}

			if top := idx.TopSources(flagTop); len(top) > 0 {
				fmt.Fprintf(out, "\nTop sources:\n")
				for _, b := range top {
					fmt.Fprintf(out, "  %-35s %d\n", truncate(b.Name, 35), b.Count)
				}
			}

			if cats := idx.TopCategories(flagTop); len(cats) > 0 {
				fmt.Fprintf(out, "\nTop categories:\n")
				for _, c := range cats {
					fmt.Fprintf(out, "  %-35s %d\n", truncate(c.Label, 35), c.Count)
				}
			}

			fmt.Fprintf(out, "\nRead:       %d\n", tracker.ReadCount())
			fmt.Fprintf(out, "Saved:      %d\n", tracker.SavedCount())
			fmt.Fprintf(out, "Unread:     %d\n", vm.UnreadCount())
			return nil
		},
	}

	cmd.Flags().IntVar(&flagTop, "top", 10, "rows per table")

	return cmd
}
