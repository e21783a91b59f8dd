package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/playdeck/playdeck/icon"
	"github.com/playdeck/playdeck/log"
	"github.com/playdeck/playdeck/style"
	"github.com/playdeck/playdeck/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var clearLocations []location

func init() {
	rootCmd.AddCommand(clearCmd)

	clearLocations = bindLocationFlags(clearCmd, "Delete", func(l location) bool { return l.removable })
	clearCmd.Flags().BoolP("all", "a", false, "Delete everything except the config")
}

var clearCmd = &cobra.Command{
	Use:     "clear",
	Short:   "Delete history, caches and logs",
	Example: "playdeck clear --movies --sockets",
	Run: func(cmd *cobra.Command, args []string) {
		targets := selectedLocations(cmd, clearLocations)
		if lo.Must(cmd.Flags().GetBool("all")) {
			targets = clearLocations
		}

		if len(targets) == 0 {
			handleErr(cmd.Help())
			return
		}

		for _, target := range targets {
			erase := util.PrintErasable(fmt.Sprintf("%s Deleting %s...", icon.Get(icon.Progress), target.title))
			err := clearLocation(target)
			erase()

			switch {
			case errors.Is(err, os.ErrNotExist):
				fmt.Printf("%s %s %s\n", icon.Get(icon.Warn), target.title, style.Faint("already empty"))
			case err != nil:
				handleErr(err)
			default:
				log.Infof("cleared %s", target.path())
				fmt.Printf("%s %s deleted\n", style.Fg(style.Green)(icon.Get(icon.Success)), target.title)
			}
		}
	},
}

// clearLocation empties or deletes the files of l.
func clearLocation(l location) error {
	if l.empty != nil {
		return l.empty()
	}
	return util.Delete(l.path())
}
