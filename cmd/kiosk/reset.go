package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abelbrown/kiosk/internal/readstate"
)

func newResetCmd() *cobra.Command {
	var flagYes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear read and saved marks",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			closeLog := setupLogging(cfg, true)
			defer closeLog()

			out := cmd.OutOrStdout()
			if !flagYes {
				fmt.Fprint(out, "This clears all read and saved marks. Continue? [y/N] ")
				line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				answer := strings.ToLower(strings.TrimSpace(line))
				if answer != "y" && answer != "yes" {
					fmt.Fprintln(out, "Aborted.")
					return nil
				}
			}

			st := openStore(cfg)
			defer st.Close()

			readstate.New(st).Clear()
			fmt.Fprintln(out, "Read and saved marks cleared.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}
