package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/playdeck/playdeck/icon"
	"github.com/playdeck/playdeck/key"
	"github.com/playdeck/playdeck/open"
	"github.com/playdeck/playdeck/stream"
	"github.com/playdeck/playdeck/style"
	"github.com/playdeck/playdeck/watch"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().BoolP("json", "j", false, "Print the resolved source as json")
	resolveCmd.Flags().BoolP("poster", "p", false, "Open the poster with the default image viewer")
	resolveCmd.SetOut(os.Stdout)
}

var resolveCmd = &cobra.Command{
	Use:     "resolve <movie id>",
	Short:   "Print the streaming URL of a movie without playing it",
	Example: "playdeck resolve 64f1c2 --json",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		src, err := watch.Resolve(cmd.Context(), watch.Options{MovieID: args[0]})
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("poster")) {
			if src.Poster == "" {
				_, _ = fmt.Fprintf(os.Stderr, "%s %s has no poster\n", icon.Get(icon.Warn), src.Label())
			} else {
				handleErr(open.Start(src.Poster))
			}
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(map[string]string{
				"id":           src.MovieID,
				"title":        src.Title,
				"poster":       src.Poster,
				"streamingUrl": src.URL,
			}))
			return
		}

		cmd.Println(style.Bold(src.Label()))
		cmd.Println(src.URL)
	},
}

func init() {
	resolveCmd.AddCommand(resolveInfoCmd)
	resolveInfoCmd.SetOut(os.Stdout)
}

var resolveInfoCmd = &cobra.Command{
	Use:   "info <movie id>",
	Short: "Print the catalogue entry of a movie",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		resolver := stream.NewResolver(viper.GetString(key.APIBaseURL))
		resolver.RequireToken = viper.GetBool(key.APIRequireToken)

		movie, err := resolver.Movie(cmd.Context(), args[0])
		handleErr(err)

		cmd.Println(style.Fg(style.Purple)(style.Bold(movie.Title)))
		if movie.Year > 0 {
			cmd.Println(style.Faint(fmt.Sprint(movie.Year)))
		}
		if movie.Description != "" {
			cmd.Println()
			cmd.Println(movie.Description)
		}
		if movie.Poster != "" {
			cmd.Println()
			cmd.Println(style.Faint("poster " + movie.Poster))
		}
	},
}
