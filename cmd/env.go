package cmd

import (
	"os"
	"strings"

	"github.com/playdeck/playdeck/config"
	"github.com/playdeck/playdeck/style"
	"github.com/playdeck/playdeck/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "Only list variables that are set")
	envCmd.Flags().BoolP("unset-only", "u", false, "Only list variables that are not set")
	envCmd.Flags().BoolP("describe", "d", false, "Print the setting description under each variable")

	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")
	envCmd.SetOut(os.Stdout)
}

// envName maps a config key to the environment variable viper reads it from.
func envName(k string) string {
	field := config.Default[k]
	return field.Env()
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "List the environment variables playdeck reads",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			setOnly   = lo.Must(cmd.Flags().GetBool("set-only"))
			unsetOnly = lo.Must(cmd.Flags().GetBool("unset-only"))
			describe  = lo.Must(cmd.Flags().GetBool("describe"))
		)

		names := lo.Map(config.EnvExposed, func(k string, _ int) string { return envName(k) })
		names = append(names, where.EnvConfigPath)
		slices.Sort(names)

		descriptions := lo.Associate(config.EnvExposed, func(k string) (string, string) {
			return envName(k), config.Default[k].Description
		})
		descriptions[where.EnvConfigPath] = "Directory holding the config file, history and logs"

		for _, env := range names {
			value, present := os.LookupEnv(env)
			if (setOnly && !present) || (unsetOnly && present) {
				continue
			}

			cmd.Print(style.New().Bold(true).Foreground(style.Purple).Render(env))
			cmd.Print("=")

			if present {
				cmd.Println(style.Fg(style.Green)(value))
			} else {
				cmd.Println(style.Fg(style.Red)("unset"))
			}

			if describe {
				cmd.Println(style.Faint(strings.ReplaceAll(descriptions[env], "\n", " ")))
			}
		}
	},
}
