package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/thoughtcloud/thoughtcloud/internal/client"
)

var RootCmd = &cobra.Command{
	Use:   "thoughtcloud",
	Short: "ThoughtCloud blogging client",
	Long:  "Command line client for the ThoughtCloud blogging platform.",
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newAPIClient() *client.Client {
	return client.New(os.Getenv("THOUGHTCLOUD_API"))
}

// newSession builds a session backed by the credentials file under the user
// config dir and restores any stored token.
func newSession() (*client.Session, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}

	creds := client.NewFileCredentialStore(filepath.Join(configDir, "thoughtcloud", "auth.json"))
	session := client.NewSession(newAPIClient(), creds)
	if err := session.Restore(); err != nil {
		return nil, err
	}
	return session, nil
}

func requireSession() (*client.Session, error) {
	session, err := newSession()
	if err != nil {
		return nil, err
	}
	if !session.IsAuthenticated() {
		return nil, fmt.Errorf("not logged in; run 'thoughtcloud login' first")
	}
	return session, nil
}

func outputErrorAndExit(format string, args ...any) {
	color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
