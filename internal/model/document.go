package model

import "time"

const (
	DocumentTypeAgenda  = "agenda"
	DocumentTypeMinutes = "minutes"
)

type Document struct {
	DocumentID   string
	MeetingID    string
	Title        string
	DocumentType string
	URL          string
	Processed    bool
	CreatedAt    time.Time
}
