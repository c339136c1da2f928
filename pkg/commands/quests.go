package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/jquest/pkg/commands/options"
	"tableflip.dev/jquest/pkg/forms"
	"tableflip.dev/jquest/pkg/model"
	"tableflip.dev/jquest/pkg/runner/quests"
)

func parseQuestStatus(v string) (model.QuestStatus, error) {
	switch s := model.QuestStatus(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(v)), " ", "_")); s {
	case "", model.QuestNotStarted, model.QuestInProgress, model.QuestCompleted:
		return s, nil
	}
	return "", fmt.Errorf("invalid status %q: want not_started, in_progress or completed", v)
}

func addQuests(topLevel *cobra.Command) {
	qo := &options.QuestOptions{}
	ido := &options.IDOptions{}

	list := func(cmd *cobra.Command, _ []string) error {
		cmd.SilenceUsage = true
		status, err := parseQuestStatus(qo.Status)
		if err != nil {
			return output.HandleError(err)
		}
		svc, err := service()
		if err != nil {
			return output.HandleError(err)
		}
		s := quests.List{Status: status, Service: svc, Output: result(cmd, ido.ShowID)}
		return output.HandleError(s.Do(context.Background()))
	}

	cmd := &cobra.Command{
		Use:     "quests",
		Aliases: []string{"quest", "q"},
		Short:   "Show the quest board, most advanced first.",
		Example: `
jquest quests
jquest quests --status in_progress
`,
		Args: cobra.NoArgs,
		RunE: list,
	}
	options.AddStatusArg(cmd, qo)
	options.AddShowIDArgs(cmd, ido)
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show the quest board.",
		Args:  cobra.NoArgs,
		RunE:  list,
	})

	addQuestAdd(cmd)
	addQuestEdit(cmd)
	addQuestComplete(cmd)
	topLevel.AddCommand(cmd)
}

func addQuestAdd(topLevel *cobra.Command) {
	qo := &options.QuestOptions{}

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Start a new quest.",
		Example: `
jquest quests add "Run a marathon" --goal 42
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) > 0 {
				qo.Title = strings.Join(args, " ")
			}
			svc, err := service()
			if err != nil {
				return output.HandleError(err)
			}
			s := quests.Add{
				Title:       qo.Title,
				Description: qo.Description,
				Goal:        qo.Goal,
				Service:     svc,
				Output:      result(cmd, true),
			}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	options.AddQuestArgs(cmd, qo)
	topLevel.AddCommand(cmd)
}

func addQuestEdit(topLevel *cobra.Command) {
	var id int64
	qo := &options.QuestOptions{}

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change a quest or record progress. Only the given fields are sent.",
		Example: `
jquest quests edit 3 --progress 10
jquest quests edit 3 --goal 50 --title "Run an ultra"
`,
		Args: options.IDArg(&id),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			var patch forms.QuestPatch
			flags := cmd.Flags()
			if flags.Changed("title") {
				patch.Title = &qo.Title
			}
			if flags.Changed("description") {
				patch.Description = &qo.Description
			}
			if flags.Changed("goal") {
				patch.Goal = &qo.Goal
			}
			if flags.Changed("progress") {
				patch.Progress = &qo.Progress
			}
			if patch == (forms.QuestPatch{}) {
				return output.HandleError(fmt.Errorf("nothing to change"))
			}
			svc, err := service()
			if err != nil {
				return output.HandleError(err)
			}
			s := quests.Edit{ID: id, Patch: patch, Service: svc, Output: result(cmd, true)}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	options.AddQuestArgs(cmd, qo)
	options.AddProgressArg(cmd, qo)
	topLevel.AddCommand(cmd)
}

func addQuestComplete(topLevel *cobra.Command) {
	var id int64

	cmd := &cobra.Command{
		Use:     "complete ID",
		Aliases: []string{"done", "x"},
		Short:   "Set a quest's progress to its goal.",
		Args:    options.IDArg(&id),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := service()
			if err != nil {
				return output.HandleError(err)
			}
			s := quests.Complete{ID: id, Service: svc, Output: result(cmd, true)}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	topLevel.AddCommand(cmd)
}
