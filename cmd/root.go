// Package cmd implements the playdeck command-line interface.
package cmd

import (
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/playdeck/playdeck/constant"
	"github.com/playdeck/playdeck/engine"
	"github.com/playdeck/playdeck/icon"
	"github.com/playdeck/playdeck/key"
	"github.com/playdeck/playdeck/log"
	"github.com/playdeck/playdeck/style"
	"github.com/playdeck/playdeck/watch"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the icon variant (emoji, nerd, plain, kaomoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().BoolP("write-history", "H", true, "Record watch progress")
	lo.Must0(viper.BindPFlag(key.HistorySave, rootCmd.PersistentFlags().Lookup("write-history")))

	rootCmd.Flags().StringP("autoplay", "a", "", "Engine autoplay policy (muted, block, allow)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("autoplay", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{string(engine.AutoplayMuted), string(engine.AutoplayBlock), string(engine.AutoplayAllow)}, cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(viper.BindPFlag(key.PlayerAutoplay, rootCmd.Flags().Lookup("autoplay")))

	rootCmd.Flags().StringP("movie", "m", "", "Movie id to resolve through the streaming API")
	rootCmd.Flags().StringP("title", "t", "", "Title shown while playing")
	rootCmd.Flags().StringP("poster", "p", "", "Poster image shown before playback starts")
}

// rootCmd plays a URL, a local file or a movie from the streaming API.
var rootCmd = &cobra.Command{
	Use:   constant.Playdeck + " [url or path]",
	Short: "A terminal control surface for streamed video",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(style.HiRed).Render("    - A terminal control surface for streamed video"),
	Example: strings.Join([]string{
		constant.Playdeck + " https://cdn.example/movie/master.m3u8",
		constant.Playdeck + " ~/Videos/clip.mp4 --title Clip",
		constant.Playdeck + " --movie 64f1c2",
	}, "\n"),
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		options := watch.Options{
			MovieID: lo.Must(cmd.Flags().GetString("movie")),
			Title:   lo.Must(cmd.Flags().GetString("title")),
			Poster:  lo.Must(cmd.Flags().GetString("poster")),
		}
		if len(args) > 0 {
			options.Target = args[0]
		}

		if options.Target == "" && options.MovieID == "" {
			handleErr(cmd.Help())
			return
		}

		CheckDependencies()
		handleErr(watch.Run(cmd.Context(), options))
	},
}

// Execute runs the command line.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
