// Command forma is the terminal client for the forma fitness API, the
// CLI counterpart of the mobile app's login, signup, and dashboard
// screens.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/forma/server/internal/client"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "forma",
	Short: "Fitness tracking from the terminal",
	Long: `forma talks to a forma API server: create an account, log in,
check your stats and plan, start workout sessions, and log workouts.

Your profile and tokens are cached in ~/.forma/auth.json between runs;
"forma logout" clears them.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "forma API server base URL")

	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(workoutsCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(doneCmd)
}

// newStorage resolves the on-disk auth cache.
func newStorage() (*client.Storage, error) {
	dir, err := client.DefaultDir()
	if err != nil {
		return nil, err
	}
	return client.NewStorage(dir), nil
}

// newClient builds an unauthenticated API client.
func newClient() *client.Client {
	return client.New(serverURL)
}

// authedClient loads the cached auth state and returns a client carrying
// the access token. Fails when nobody is logged in.
func authedClient() (*client.Client, *client.AuthState, error) {
	store, err := newStorage()
	if err != nil {
		return nil, nil, err
	}
	state, err := store.Load()
	if err != nil {
		return nil, nil, err
	}
	if state == nil {
		return nil, nil, fmt.Errorf("not logged in; run \"forma login\" first")
	}
	c := newClient()
	c.SetToken(state.Tokens.AccessToken)
	return c, state, nil
}
