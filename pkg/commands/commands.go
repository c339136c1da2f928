package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"tableflip.dev/jquest/pkg/app"
	"tableflip.dev/jquest/pkg/commands/options"
	"tableflip.dev/jquest/pkg/prompt"
	"tableflip.dev/jquest/pkg/runner"
)

// rootOptions are the persistent flags of every command.
type rootOptions struct {
	APIURL  string
	Verbose bool
}

var (
	output = &options.OutputOptions{}
	root   = &rootOptions{}
	logger = zap.NewNop()

	// stdin is read by prompts and --password-stdin.
	stdin io.Reader = os.Stdin
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "jquest",
		SilenceErrors: true,
		Short: options.Wrap80("Journal Quest on the command line: journals, folders, quests and your hero profile."),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := output.Format(); err != nil {
				return err
			}
			config := zap.NewDevelopmentConfig()
			config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if root.Verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			l, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&root.APIURL, "api-url", "",
		"API root, overrides api_url from .jquest.yaml.")
	cmd.PersistentFlags().BoolVarP(&root.Verbose, "verbose", "v", false,
		"Log requests and store activity to stderr.")
	options.AddOutputArg(cmd, output)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addLogin(topLevel)
	addSignup(topLevel)
	addLogout(topLevel)
	addWhoami(topLevel)
	addJournals(topLevel)
	addFolders(topLevel)
	addQuests(topLevel)
	addProfile(topLevel)
	addArchetypes(topLevel)
	addReport(topLevel)
	addUI(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addUpgrade(topLevel)
	addCompletions(topLevel)
}

func env() *runner.Env {
	return &runner.Env{APIURL: root.APIURL, Log: logger}
}

func service() (*app.Service, error) {
	return env().Service()
}

// result describes where a command writes.
func result(cmd *cobra.Command, showID bool) runner.Output {
	f, _ := output.Format()
	return runner.Output{Format: f, Out: cmd.OutOrStdout(), ShowID: showID}
}

func prompter(cmd *cobra.Command) *prompt.Prompter {
	return prompt.New(stdin, cmd.ErrOrStderr())
}
