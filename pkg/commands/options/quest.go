package options

import (
	"github.com/spf13/cobra"
)

// QuestOptions
type QuestOptions struct {
	Title       string
	Description string
	Goal        int
	Progress    int
	Status      string
}

func AddQuestArgs(cmd *cobra.Command, o *QuestOptions) {
	cmd.Flags().StringVarP(&o.Title, "title", "t", "",
		"Quest title.")
	cmd.Flags().StringVarP(&o.Description, "description", "d", "",
		"What the quest is about.")
	cmd.Flags().IntVarP(&o.Goal, "goal", "g", 1,
		"Number of steps to complete the quest.")
}

func AddProgressArg(cmd *cobra.Command, o *QuestOptions) {
	cmd.Flags().IntVarP(&o.Progress, "progress", "p", 0,
		"Steps completed so far.")
}

func AddStatusArg(cmd *cobra.Command, o *QuestOptions) {
	cmd.Flags().StringVar(&o.Status, "status", "",
		"Only quests with this status: not_started, in_progress or completed.")
}
