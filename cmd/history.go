package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"

	"github.com/AlecAivazis/survey/v2"
	"github.com/invopop/jsonschema"
	"github.com/playdeck/playdeck/history"
	"github.com/playdeck/playdeck/icon"
	"github.com/playdeck/playdeck/style"
	"github.com/playdeck/playdeck/util"
	"github.com/playdeck/playdeck/watch"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringP("filter", "f", "", "Fuzzy filter by title or movie id")
	historyCmd.Flags().BoolP("json", "j", false, "Print entries as json")
	historyCmd.Flags().BoolP("pick", "p", false, "Choose an entry to play again or remove")
	historyCmd.MarkFlagsMutuallyExclusive("json", "pick")
	historyCmd.SetOut(os.Stdout)
}

const (
	actionPlay   = "Play again"
	actionRemove = "Remove from history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List watched movies and their progress",
	Run: func(cmd *cobra.Command, args []string) {
		entries, err := history.List()
		handleErr(err)
		entries = history.Filter(entries, lo.Must(cmd.Flags().GetString("filter")))

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(entries))
			return
		}

		if len(entries) == 0 {
			cmd.Println(style.Faint("history is empty"))
			return
		}

		if !lo.Must(cmd.Flags().GetBool("pick")) {
			for _, entry := range entries {
				cmd.Printf("%s %s\n", icon.Get(icon.History), entry)
			}
			cmd.Println(style.Faint(util.Quantify(len(entries), "entry", "entries")))
			return
		}

		options := lo.Map(entries, func(e *history.Entry, _ int) string { return e.String() })
		var picked int
		handleErr(survey.AskOne(&survey.Select{
			Message: "Pick a movie",
			Options: options,
		}, &picked))
		entry := entries[picked]

		var action string
		handleErr(survey.AskOne(&survey.Select{
			Message: entry.String(),
			Options: []string{actionPlay, actionRemove},
		}, &action))

		switch action {
		case actionPlay:
			CheckDependencies()
			target := entry.Source
			if entry.ID != "" {
				target = ""
			}
			handleErr(watch.Run(cmd.Context(), watch.Options{
				Target:  target,
				MovieID: entry.ID,
				Title:   entry.Title,
				Poster:  entry.Poster,
			}))
		case actionRemove:
			handleErr(history.Remove(entry))
			fmt.Printf("%s removed %s\n", style.Fg(style.Green)(icon.Get(icon.Success)), entry.Title)
		}
	},
}

func init() {
	historyCmd.AddCommand(historySchemaCmd)
}

var historySchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of history --json output",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			return "history." + t.Name()
		}

		handleErr(json.NewEncoder(os.Stdout).Encode(reflector.Reflect([]*history.Entry{})))
	},
}
