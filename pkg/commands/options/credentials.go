package options

import (
	"github.com/spf13/cobra"
)

// CredentialOptions
type CredentialOptions struct {
	Username      string
	Password      string
	PasswordStdin bool
}

func AddCredentialArgs(cmd *cobra.Command, o *CredentialOptions) {
	cmd.Flags().StringVarP(&o.Username, "username", "u", "",
		"Account username.")
	cmd.Flags().StringVarP(&o.Password, "password", "p", "",
		"Account password. Prefer --password-stdin or the prompt.")
	cmd.Flags().BoolVar(&o.PasswordStdin, "password-stdin", false,
		"Read the password from stdin.")
}

// AccountOptions are the extra signup fields.
type AccountOptions struct {
	Email     string
	FirstName string
	LastName  string
	Nickname  string
	Archetype string
}

func AddAccountArgs(cmd *cobra.Command, o *AccountOptions) {
	cmd.Flags().StringVar(&o.Email, "email", "", "Email address.")
	cmd.Flags().StringVar(&o.FirstName, "first-name", "", "First name.")
	cmd.Flags().StringVar(&o.LastName, "last-name", "", "Last name.")
	cmd.Flags().StringVar(&o.Nickname, "nickname", "", "Nickname shown in greetings.")
	cmd.Flags().StringVar(&o.Archetype, "archetype", "", "Hero archetype, see `jquest archetypes`.")
}
