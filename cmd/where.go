package cmd

import (
	"os"

	"github.com/playdeck/playdeck/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var whereLocations []location

func init() {
	rootCmd.AddCommand(whereCmd)

	whereLocations = bindLocationFlags(whereCmd, "Print the path of", func(location) bool { return true })
	for _, l := range whereLocations {
		if !l.listed {
			lo.Must0(whereCmd.Flags().MarkHidden(l.flag))
		}
	}
	whereCmd.MarkFlagsMutuallyExclusive(lo.Map(whereLocations, func(l location, _ int) string { return l.flag })...)

	whereCmd.SetOut(os.Stdout)
}

var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where playdeck keeps its files",
	Run: func(cmd *cobra.Command, args []string) {
		if selected := selectedLocations(cmd, whereLocations); len(selected) > 0 {
			cmd.Println(selected[0].path())
			return
		}

		listed := lo.Filter(whereLocations, func(l location, _ int) bool { return l.listed })
		title := style.New().Bold(true).Foreground(style.HiPurple).Render

		for i, l := range listed {
			cmd.Printf("%s %s\n", title(l.title), style.Faint("--"+l.flag))
			cmd.Println(l.path())

			if i < len(listed)-1 {
				cmd.Println()
			}
		}
	},
}
