package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/jquest/pkg/archetype"
	"tableflip.dev/jquest/pkg/commands/options"
	"tableflip.dev/jquest/pkg/forms"
	"tableflip.dev/jquest/pkg/prompt"
	"tableflip.dev/jquest/pkg/runner/auth"
)

// credentials fills the username and password from flags, stdin or prompts.
func credentials(co *options.CredentialOptions, p *prompt.Prompter) (string, string, error) {
	username := strings.TrimSpace(co.Username)
	password := co.Password
	if co.PasswordStdin {
		if co.Password != "" {
			return "", "", errors.New("--password and --password-stdin are mutually exclusive")
		}
		if username == "" {
			return "", "", errors.New("--password-stdin requires --username")
		}
		pw, err := prompt.ReadSecret(stdin)
		if err != nil {
			return "", "", err
		}
		return username, pw, nil
	}
	if username == "" {
		var err error
		if username, err = p.Line("Username", ""); err != nil {
			return "", "", err
		}
	}
	if password == "" {
		var err error
		if password, err = p.Password("Password"); err != nil {
			if errors.Is(err, prompt.ErrNoTerminal) {
				return "", "", errors.New("no terminal for the password prompt, use --password-stdin")
			}
			return "", "", err
		}
	}
	return username, password, nil
}

func addLogin(topLevel *cobra.Command) {
	co := &options.CredentialOptions{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the session for later commands.",
		Example: `
jquest login
jquest login -u hero
echo "$PASSWORD" | jquest login -u hero --password-stdin
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			username, password, err := credentials(co, prompter(cmd))
			if err != nil {
				return output.HandleError(err)
			}
			svc, err := service()
			if err != nil {
				return output.HandleError(err)
			}
			s := auth.Login{
				Request: forms.LoginRequest{Username: username, Password: password},
				Service: svc,
				Output:  result(cmd, false),
			}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	options.AddCredentialArgs(cmd, co)
	topLevel.AddCommand(cmd)
}

func addSignup(topLevel *cobra.Command) {
	co := &options.CredentialOptions{}
	ao := &options.AccountOptions{}

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in.",
		Example: `
jquest signup -u hero --email hero@example.com --archetype sage
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			p := prompter(cmd)
			username, password, err := credentials(co, p)
			if err != nil {
				return output.HandleError(err)
			}
			confirmation := password
			if !co.PasswordStdin && co.Password == "" {
				if confirmation, err = p.Password("Confirm password"); err != nil {
					return output.HandleError(err)
				}
			}
			if ao.Email == "" && !co.PasswordStdin {
				if ao.Email, err = p.Line("Email", ""); err != nil {
					return output.HandleError(err)
				}
			}
			svc, err := service()
			if err != nil {
				return output.HandleError(err)
			}
			s := auth.Signup{
				Request: forms.SignupRequest{
					PasswordConfirmation: confirmation,
					Password:             password,
					Username:             username,
					Email:                ao.Email,
					FirstName:            ao.FirstName,
					LastName:             ao.LastName,
					Nickname:             ao.Nickname,
					Archetype:            archetype.Normalize(ao.Archetype),
				},
				Service: svc,
				Output:  result(cmd, false),
			}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	options.AddCredentialArgs(cmd, co)
	options.AddAccountArgs(cmd, ao)
	_ = cmd.RegisterFlagCompletionFunc("archetype", archetypeCompletions)
	topLevel.AddCommand(cmd)
}

func addLogout(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "End the session and forget saved data.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := service()
			if err != nil {
				return output.HandleError(err)
			}
			s := auth.Logout{Service: svc, Output: result(cmd, false)}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	topLevel.AddCommand(cmd)
}

func addWhoami(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed in hero.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := service()
			if err != nil {
				return output.HandleError(err)
			}
			s := auth.Whoami{Service: svc, Output: result(cmd, false)}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	topLevel.AddCommand(cmd)
}
