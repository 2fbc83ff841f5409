package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// FolderListedEvent is emitted after a folder listing is rendered.
type FolderListedEvent struct {
	EventID   string    `json:"event_id"`
	FolderID  string    `json:"folder_id"`
	FileCount int       `json:"file_count"`
	ListedAt  time.Time `json:"listed_at"`
}

// FolderListedV1 is the typed event definition for folder listings.
// Subject: events.drive.v1.folder-listed
var FolderListedV1 = helper.EventDefinition[FolderListedEvent](
	"drive", "FolderListed", "v1",
)

// FileServedEvent is emitted after a file's bytes are delivered.
type FileServedEvent struct {
	EventID  string    `json:"event_id"`
	FileID   string    `json:"file_id"`
	Name     string    `json:"name"`
	MimeType string    `json:"mime_type"`
	Size     int64     `json:"size"`
	Shortcut bool      `json:"shortcut"`
	ServedAt time.Time `json:"served_at"`
}

// FileServedV1 is the typed event definition for file deliveries.
// Subject: events.drive.v1.file-served
var FileServedV1 = helper.EventDefinition[FileServedEvent](
	"drive", "FileServed", "v1",
)
