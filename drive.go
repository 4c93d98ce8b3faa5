package main

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/drive/v3"
)

const (
	folderMimeType      = "application/vnd.google-apps.folder"
	spreadsheetMimeType = "application/vnd.google-apps.spreadsheet"
)

// DriveStorage implements StorageService on top of Google Drive.
type DriveStorage struct {
	svc *drive.Service
}

// NewDriveStorage wraps an authenticated Drive service.
func NewDriveStorage(svc *drive.Service) *DriveStorage {
	return &DriveStorage{svc: svc}
}

func (d *DriveStorage) Subfolders(ctx context.Context, folderID string) ([]StorageEntry, error) {
	query := fmt.Sprintf("'%s' in parents and mimeType = '%s' and trashed = false",
		escapeQueryValue(folderID), folderMimeType)
	return d.list(ctx, query)
}

func (d *DriveStorage) FilesNamed(ctx context.Context, folderID string, name string) ([]StorageEntry, error) {
	query := fmt.Sprintf("'%s' in parents and name = '%s' and mimeType = '%s' and trashed = false",
		escapeQueryValue(folderID), escapeQueryValue(name), spreadsheetMimeType)
	return d.list(ctx, query)
}

// list drains the paginated Files.List results into a single slice so
// callers see a plain ordered listing.
func (d *DriveStorage) list(ctx context.Context, query string) ([]StorageEntry, error) {
	var entries []StorageEntry

	pageToken := ""
	for {
		call := d.svc.Files.List().
			Q(query).
			Fields("nextPageToken, files(id, name)").
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("listing drive files: %w", err)
		}

		for _, f := range resp.Files {
			entries = append(entries, StorageEntry{ID: f.Id, Name: f.Name})
		}

		if resp.NextPageToken == "" {
			return entries, nil
		}
		pageToken = resp.NextPageToken
	}
}

// escapeQueryValue escapes single quotes for Drive query string literals.
func escapeQueryValue(v string) string {
	return strings.ReplaceAll(v, `'`, `\'`)
}
