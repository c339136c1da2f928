package cache

import (
	"sync"

	"tableflip.dev/jquest/pkg/model"
)

// Kind names the collection a change touched.
type Kind string

const (
	KindJournal Kind = "journal"
	KindFolder  Kind = "folder"
	KindQuest   Kind = "quest"
)

// ChangeType enumerates change actions.
type ChangeType string

const (
	ChangeCreate ChangeType = "create"
	ChangeUpdate ChangeType = "update"
	ChangeDelete ChangeType = "delete"
	// ChangeReload means the whole collection was replaced.
	ChangeReload ChangeType = "reload"
)

// ChangeMsg announces a mutation of the cache.
type ChangeMsg struct {
	Kind   Kind
	Action ChangeType
	ID     int64
}

// Snapshot is a copy of the cached state.
type Snapshot struct {
	Journals []model.Journal
	Folders  []model.Folder
	Quests   []model.Quest
}

// Cache holds the client's copies of journals, folders and quests and emits
// a ChangeMsg on every mutation. State lives locally; readers take
// consistent snapshots without going to the API. The Service is its only
// writer.
type Cache struct {
	mu sync.RWMutex

	journals []model.Journal
	folders  []model.Folder
	quests   []model.Quest

	eventCh chan ChangeMsg
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		eventCh: make(chan ChangeMsg, 64),
	}
}

// Events exposes the change channel. Events are dropped when nobody reads.
func (c *Cache) Events() <-chan ChangeMsg {
	return c.eventCh
}

// Snapshot returns a deep copy of the current state.
func (c *Cache) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot{
		Journals: model.CloneJournals(c.journals),
		Folders:  cloneFolders(c.folders),
		Quests:   cloneQuests(c.quests),
	}
}

func (c *Cache) Journals() []model.Journal {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return model.CloneJournals(c.journals)
}

func (c *Cache) Folders() []model.Folder {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneFolders(c.folders)
}

func (c *Cache) Quests() []model.Quest {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneQuests(c.quests)
}

// SetJournals replaces the journal list.
func (c *Cache) SetJournals(list []model.Journal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.journals = model.CloneJournals(list)
	c.emit(ChangeMsg{Kind: KindJournal, Action: ChangeReload})
}

// SetFolders replaces the folder list.
func (c *Cache) SetFolders(list []model.Folder) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.folders = cloneFolders(list)
	c.emit(ChangeMsg{Kind: KindFolder, Action: ChangeReload})
}

// SetQuests replaces the quest list.
func (c *Cache) SetQuests(list []model.Quest) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.quests = cloneQuests(list)
	c.emit(ChangeMsg{Kind: KindQuest, Action: ChangeReload})
}

// Reset empties every collection, used on logout.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.journals = nil
	c.folders = nil
	c.quests = nil
	c.emit(ChangeMsg{Kind: KindJournal, Action: ChangeReload})
	c.emit(ChangeMsg{Kind: KindFolder, Action: ChangeReload})
	c.emit(ChangeMsg{Kind: KindQuest, Action: ChangeReload})
}

// Journal looks up a cached journal by id.
func (c *Cache) Journal(id int64) (model.Journal, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if idx := journalIndex(c.journals, id); idx >= 0 {
		return c.journals[idx].Clone(), true
	}
	return model.Journal{}, false
}

// PrependJournal puts a newly created journal at the front of the list.
func (c *Cache) PrependJournal(j model.Journal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if idx := journalIndex(c.journals, j.ID); idx >= 0 {
		c.journals[idx] = j.Clone()
		c.emit(ChangeMsg{Kind: KindJournal, Action: ChangeUpdate, ID: j.ID})
		return
	}
	c.journals = append([]model.Journal{j.Clone()}, c.journals...)
	c.emit(ChangeMsg{Kind: KindJournal, Action: ChangeCreate, ID: j.ID})
}

// UpsertJournal replaces the journal with the same id in place, or prepends
// it when missing.
func (c *Cache) UpsertJournal(j model.Journal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if idx := journalIndex(c.journals, j.ID); idx >= 0 {
		c.journals[idx] = j.Clone()
		c.emit(ChangeMsg{Kind: KindJournal, Action: ChangeUpdate, ID: j.ID})
		return
	}
	c.journals = append([]model.Journal{j.Clone()}, c.journals...)
	c.emit(ChangeMsg{Kind: KindJournal, Action: ChangeCreate, ID: j.ID})
}

// RemoveJournal deletes the journal with id and reports where it was so the
// removal can be undone with InsertJournal.
func (c *Cache) RemoveJournal(id int64) (model.Journal, int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := journalIndex(c.journals, id)
	if idx < 0 {
		return model.Journal{}, -1, false
	}
	removed := c.journals[idx]
	c.journals = append(c.journals[:idx:idx], c.journals[idx+1:]...)
	c.emit(ChangeMsg{Kind: KindJournal, Action: ChangeDelete, ID: id})
	return removed, idx, true
}

// InsertJournal puts j back at index, clamped to the list bounds. A journal
// with the same id already present is replaced instead.
func (c *Cache) InsertJournal(idx int, j model.Journal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing := journalIndex(c.journals, j.ID); existing >= 0 {
		c.journals[existing] = j.Clone()
		c.emit(ChangeMsg{Kind: KindJournal, Action: ChangeUpdate, ID: j.ID})
		return
	}
	if idx < 0 {
		idx = 0
	}
	if idx > len(c.journals) {
		idx = len(c.journals)
	}
	list := make([]model.Journal, 0, len(c.journals)+1)
	list = append(list, c.journals[:idx]...)
	list = append(list, j.Clone())
	list = append(list, c.journals[idx:]...)
	c.journals = list
	c.emit(ChangeMsg{Kind: KindJournal, Action: ChangeCreate, ID: j.ID})
}

// MergeFolder merges f into the folder list without a reload. See
// MergeFolder for the rules.
func (c *Cache) MergeFolder(f model.Folder) {
	c.mu.Lock()
	defer c.mu.Unlock()
	action := ChangeCreate
	if folderIndex(c.folders, f.ID) >= 0 {
		action = ChangeUpdate
	}
	c.folders = MergeFolder(c.folders, f)
	c.emit(ChangeMsg{Kind: KindFolder, Action: action, ID: f.ID})
}

// Quest looks up a cached quest by id.
func (c *Cache) Quest(id int64) (model.Quest, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if idx := questIndex(c.quests, id); idx >= 0 {
		return c.quests[idx], true
	}
	return model.Quest{}, false
}

// UpsertQuest replaces a quest in place or appends a new one.
func (c *Cache) UpsertQuest(q model.Quest) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if idx := questIndex(c.quests, q.ID); idx >= 0 {
		c.quests[idx] = q
		c.emit(ChangeMsg{Kind: KindQuest, Action: ChangeUpdate, ID: q.ID})
		return
	}
	c.quests = append(c.quests, q)
	c.emit(ChangeMsg{Kind: KindQuest, Action: ChangeCreate, ID: q.ID})
}

func (c *Cache) emit(msg ChangeMsg) {
	select {
	case c.eventCh <- msg:
	default:
	}
}

func journalIndex(list []model.Journal, id int64) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

func folderIndex(list []model.Folder, id int64) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

func questIndex(list []model.Quest, id int64) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneFolders(list []model.Folder) []model.Folder {
	if list == nil {
		return nil
	}
	return append([]model.Folder(nil), list...)
}

func cloneQuests(list []model.Quest) []model.Quest {
	if list == nil {
		return nil
	}
	return append([]model.Quest(nil), list...)
}
