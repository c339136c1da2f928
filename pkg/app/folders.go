package app

import (
	"context"
	"fmt"

	"tableflip.dev/jquest/pkg/forms"
	"tableflip.dev/jquest/pkg/model"
	"tableflip.dev/jquest/pkg/store"
)

// Folders fetches the folder list and replaces the cache with it.
func (s *Service) Folders(ctx context.Context) ([]model.Folder, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	list, err := s.API.Folders(ctx)
	if err != nil {
		return nil, fmt.Errorf("load folders: %w", err)
	}
	s.Cache.SetFolders(list)
	s.saveSnapshot(store.CollectionFolders, list)
	return s.Cache.Folders(), nil
}

// CreateFolder creates a folder and merges it into the cached set.
func (s *Service) CreateFolder(ctx context.Context, req forms.FolderRequest) (*model.Folder, error) {
	if err := forms.Validate(req); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	f, err := s.API.CreateFolder(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create folder: %w", err)
	}
	s.Cache.MergeFolder(*f)
	s.saveSnapshot(store.CollectionFolders, s.Cache.Folders())
	return f, nil
}
