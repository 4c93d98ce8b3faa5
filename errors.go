package main

import (
	"fmt"
	"net/http"
)

// ConfigError reports a required environment value that is missing or empty.
type ConfigError struct {
	Key string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing required environment variable %s", e.Key)
}

// FetchError represents a non-200 response from the page service. It keeps
// the response status, headers and body as diagnostic payload.
type FetchError struct {
	StatusCode int
	URL        string
	Header     http.Header
	Body       string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("HTTP %d for %s: %s", e.StatusCode, e.URL, e.Body)
}

// NotFoundError reports a failed lookup in the storage hierarchy. For a
// folder miss, Path is the FULL attempted path and Ref the root folder id.
// For a file miss, Name is the target file name and Ref the folder id that
// was searched.
type NotFoundError struct {
	Kind string // "folder" or "file"
	Path string
	Name string
	Ref  string
}

func (e *NotFoundError) Error() string {
	if e.Kind == "folder" {
		return fmt.Sprintf("folder path %q not found under %s", e.Path, e.Ref)
	}
	return fmt.Sprintf("file %q not found in folder %s", e.Name, e.Ref)
}

// newFolderNotFound builds the error for a missed path descent.
func newFolderNotFound(path []string, rootID string) *NotFoundError {
	return &NotFoundError{
		Kind: "folder",
		Path: JoinPath(path...),
		Ref:  rootID,
	}
}
