package tui

import "errors"

// ErrMissingDirectoryService is returned when the directory service is not provided.
var ErrMissingDirectoryService = errors.New("tui: directory service is required")

// ErrMissingAuthService is returned when the auth service is not provided.
var ErrMissingAuthService = errors.New("tui: auth service is required")

// ErrMissingSettingsService is returned when the settings service is not provided.
var ErrMissingSettingsService = errors.New("tui: settings service is required")
