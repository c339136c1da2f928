package cache

import (
	"reflect"

	"tableflip.dev/jquest/pkg/model"
)

// ApplySnapshot reconciles the cache with snap, emitting one change per
// created, updated or deleted record. It is used when snapshots written by
// another process are picked up from the store.
func (c *Cache) ApplySnapshot(snap Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.diffJournals(snap.Journals)
	c.diffFolders(snap.Folders)
	c.diffQuests(snap.Quests)

	c.journals = model.CloneJournals(snap.Journals)
	c.folders = cloneFolders(snap.Folders)
	c.quests = cloneQuests(snap.Quests)
}

func (c *Cache) diffJournals(next []model.Journal) {
	prev := make(map[int64]model.Journal, len(c.journals))
	for _, j := range c.journals {
		prev[j.ID] = j
	}
	for _, j := range next {
		old, ok := prev[j.ID]
		switch {
		case !ok:
			c.emit(ChangeMsg{Kind: KindJournal, Action: ChangeCreate, ID: j.ID})
		case !reflect.DeepEqual(old, j):
			c.emit(ChangeMsg{Kind: KindJournal, Action: ChangeUpdate, ID: j.ID})
		}
		delete(prev, j.ID)
	}
	for _, j := range c.journals {
		if _, gone := prev[j.ID]; gone {
			c.emit(ChangeMsg{Kind: KindJournal, Action: ChangeDelete, ID: j.ID})
		}
	}
}

func (c *Cache) diffFolders(next []model.Folder) {
	prev := make(map[int64]model.Folder, len(c.folders))
	for _, f := range c.folders {
		prev[f.ID] = f
	}
	for _, f := range next {
		old, ok := prev[f.ID]
		switch {
		case !ok:
			c.emit(ChangeMsg{Kind: KindFolder, Action: ChangeCreate, ID: f.ID})
		case !reflect.DeepEqual(old, f):
			c.emit(ChangeMsg{Kind: KindFolder, Action: ChangeUpdate, ID: f.ID})
		}
		delete(prev, f.ID)
	}
	for _, f := range c.folders {
		if _, gone := prev[f.ID]; gone {
			c.emit(ChangeMsg{Kind: KindFolder, Action: ChangeDelete, ID: f.ID})
		}
	}
}

func (c *Cache) diffQuests(next []model.Quest) {
	prev := make(map[int64]model.Quest, len(c.quests))
	for _, q := range c.quests {
		prev[q.ID] = q
	}
	for _, q := range next {
		old, ok := prev[q.ID]
		switch {
		case !ok:
			c.emit(ChangeMsg{Kind: KindQuest, Action: ChangeCreate, ID: q.ID})
		case !reflect.DeepEqual(old, q):
			c.emit(ChangeMsg{Kind: KindQuest, Action: ChangeUpdate, ID: q.ID})
		}
		delete(prev, q.ID)
	}
	for _, q := range c.quests {
		if _, gone := prev[q.ID]; gone {
			c.emit(ChangeMsg{Kind: KindQuest, Action: ChangeDelete, ID: q.ID})
		}
	}
}
