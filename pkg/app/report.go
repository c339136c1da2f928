package app

import (
	"context"
	"sort"
	"time"

	"tableflip.dev/jquest/pkg/model"
	"tableflip.dev/jquest/pkg/viewmodel"
)

// ReportSection groups the journals written in one folder.
type ReportSection struct {
	Folder   string
	Journals []model.Journal
}

// ReportResult summarises journaling and quest progress for a time window.
type ReportResult struct {
	Since    time.Time
	Until    time.Time
	Sections []ReportSection
	Total    int
	Folders  []model.Folder

	Completed  []model.Quest
	InProgress []model.Quest
	NotStarted []model.Quest
}

// Report fetches journals, folders and quests and returns the journals
// written between since and until grouped by folder, with the quest board.
func (s *Service) Report(ctx context.Context, since, until time.Time) (ReportResult, error) {
	if since.After(until) {
		since, until = until, since
	}
	journals, err := s.Journals(ctx)
	if err != nil {
		return ReportResult{}, err
	}
	folders, err := s.Folders(ctx)
	if err != nil {
		return ReportResult{}, err
	}
	quests, err := s.Quests(ctx)
	if err != nil {
		return ReportResult{}, err
	}
	return BuildReport(journals, folders, quests, since, until), nil
}

// BuildReport is the pure part of Report.
func BuildReport(journals []model.Journal, folders []model.Folder, quests []model.Quest, since, until time.Time) ReportResult {
	window := make([]model.Journal, 0, len(journals))
	for _, j := range journals {
		at := j.CreatedAt.Time
		if at.IsZero() || at.Before(since) || at.After(until) {
			continue
		}
		window = append(window, j)
	}
	window = viewmodel.Derive(window, viewmodel.Filter{Sort: viewmodel.SortOldest})

	result := ReportResult{Since: since, Until: until, Total: len(window), Folders: folders}
	for _, g := range viewmodel.GroupByFolder(folders, window) {
		if g.Count == 0 {
			continue
		}
		result.Sections = append(result.Sections, ReportSection{Folder: g.Name, Journals: g.Journals})
	}

	for _, q := range quests {
		switch q.Status {
		case model.QuestCompleted:
			result.Completed = append(result.Completed, q)
		case model.QuestInProgress:
			result.InProgress = append(result.InProgress, q)
		default:
			result.NotStarted = append(result.NotStarted, q)
		}
	}
	sort.SliceStable(result.InProgress, func(i, j int) bool {
		return result.InProgress[i].Ratio() > result.InProgress[j].Ratio()
	})
	return result
}
