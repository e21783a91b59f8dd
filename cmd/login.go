package cmd

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/playdeck/playdeck/auth"
	"github.com/playdeck/playdeck/icon"
	"github.com/playdeck/playdeck/log"
	"github.com/playdeck/playdeck/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringP("token", "t", "", "Token to store instead of prompting for it")
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store the streaming API token in the system keyring",
	Run: func(cmd *cobra.Command, args []string) {
		token := lo.Must(cmd.Flags().GetString("token"))

		if token == "" {
			if _, err := auth.GetToken(); err == nil {
				var replace bool
				handleErr(survey.AskOne(&survey.Confirm{
					Message: "A token is already stored. Replace it?",
					Default: false,
				}, &replace))
				if !replace {
					return
				}
			}

			handleErr(survey.AskOne(&survey.Password{
				Message: "API token:",
			}, &token, survey.WithValidator(survey.Required)))
		}

		handleErr(auth.SetToken(token))
		log.Info("api token stored")
		fmt.Printf("%s token saved\n", style.Fg(style.Green)(icon.Get(icon.Success)))
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the streaming API token from the system keyring",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(auth.DeleteToken())
		log.Info("api token removed")
		fmt.Printf("%s token removed\n", style.Fg(style.Green)(icon.Get(icon.Success)))
	},
}
