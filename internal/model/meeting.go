package model

import "time"

const DefaultSource = "spokane_city"

type Meeting struct {
	MeetingID   string
	BodyName    string
	Title       string
	MeetingDate time.Time
	Location    string
	URL         string
	Source      string
	CreatedAt   time.Time
}
