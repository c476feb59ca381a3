package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a ThoughtCloud account",
	Args:  cobra.NoArgs,
	Run:   runRegister,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to ThoughtCloud",
	Args:  cobra.NoArgs,
	Run:   runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and forget the stored token",
	Args:  cobra.NoArgs,
	Run:   runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	Args:  cobra.NoArgs,
	Run:   runWhoami,
}

func init() {
	for _, cmd := range []*cobra.Command{registerCmd, loginCmd} {
		cmd.Flags().String("username", "", "Account username")
		cmd.Flags().String("password", "", "Account password")
		cmd.MarkFlagRequired("username")
		cmd.MarkFlagRequired("password")
	}

	RootCmd.AddCommand(registerCmd, loginCmd, logoutCmd, whoamiCmd)
}

func runRegister(cmd *cobra.Command, args []string) {
	username, _ := cmd.Flags().GetString("username")
	password, _ := cmd.Flags().GetString("password")

	session, err := newSession()
	if err != nil {
		outputErrorAndExit("Error preparing session: %v", err)
	}

	if err := session.Register(username, password); err != nil {
		outputErrorAndExit("Registration failed: %v", err)
	}

	color.Green("Registered and logged in as %s", session.User.Username)
}

func runLogin(cmd *cobra.Command, args []string) {
	username, _ := cmd.Flags().GetString("username")
	password, _ := cmd.Flags().GetString("password")

	session, err := newSession()
	if err != nil {
		outputErrorAndExit("Error preparing session: %v", err)
	}

	if err := session.Login(username, password); err != nil {
		outputErrorAndExit("Login failed: %v", err)
	}

	color.Green("Logged in as %s", session.User.Username)
}

func runLogout(cmd *cobra.Command, args []string) {
	session, err := newSession()
	if err != nil {
		outputErrorAndExit("Error preparing session: %v", err)
	}

	session.Logout()
	fmt.Println("Logged out")
}

func runWhoami(cmd *cobra.Command, args []string) {
	session, err := newSession()
	if err != nil {
		outputErrorAndExit("Error preparing session: %v", err)
	}

	if !session.IsAuthenticated() {
		fmt.Println("Not logged in")
		return
	}
	fmt.Printf("%s (id %d)\n", session.User.Username, session.User.ID)
}
