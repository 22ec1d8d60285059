package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forma/server/internal/client"
)

var (
	signupName     string
	signupEmail    string
	signupPassword string
	loginEmail     string
	loginPassword  string
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a new account",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := newClient().Signup(cmd.Context(), signupName, signupEmail, signupPassword)
		if err != nil {
			return fmt.Errorf("signup failed: %w", err)
		}
		if err := saveAuth(resp); err != nil {
			return err
		}
		fmt.Printf("Welcome, %s! Account %s created.\n", resp.User.Name, resp.User.Email)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to an existing account",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := newClient().Login(cmd.Context(), loginEmail, loginPassword)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		if err := saveAuth(resp); err != nil {
			return err
		}
		fmt.Printf("Logged in as %s.\n", resp.User.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear cached credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newStorage()
		if err != nil {
			return err
		}
		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, state, err := authedClient()
		if err != nil {
			return err
		}
		user, err := c.Me(cmd.Context())
		if err != nil {
			// Fall back to the cached profile when the server is
			// unreachable or the token has expired.
			user = state.User
		}
		fmt.Printf("%s <%s> (id %s)\n", user.Name, user.Email, user.ID)
		return nil
	},
}

func saveAuth(resp client.AuthResponse) error {
	store, err := newStorage()
	if err != nil {
		return err
	}
	return store.Save(client.AuthState{User: resp.User, Tokens: resp.Tokens})
}

func init() {
	signupCmd.Flags().StringVar(&signupName, "name", "", "display name")
	signupCmd.Flags().StringVar(&signupEmail, "email", "", "email address")
	signupCmd.Flags().StringVar(&signupPassword, "password", "", "password")
	_ = signupCmd.MarkFlagRequired("name")
	_ = signupCmd.MarkFlagRequired("email")
	_ = signupCmd.MarkFlagRequired("password")

	loginCmd.Flags().StringVar(&loginEmail, "email", "", "email address")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")
}
