package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/ConnerV42/spokane-public-brief/internal/model"
	"github.com/ConnerV42/spokane-public-brief/pkg/legistar"
)

type EventSource interface {
	ListEvents(since *time.Time) ([]legistar.Event, error)
	ListEventItems(eventID int) ([]legistar.EventItem, error)
}

type MeetingStore interface {
	SaveMeeting(meeting *model.Meeting) error
}

type ItemStore interface {
	SaveItem(item *model.AgendaItem) error
}

type DocumentStore interface {
	SaveDocument(doc *model.Document) error
}

type JobQueue interface {
	Push(ctx context.Context, payload string) error
}

// Job is the queued-work trigger payload.
type Job struct {
	Action    string `json:"action"`
	MeetingID string `json:"meeting_id,omitempty"`
}

const (
	ActionAnalyzeMeeting = "analyze_meeting"
	ActionIngestMeetings = "ingest_meetings"
)

type Report struct {
	Stored int
	Errors int
}

// Orchestrator runs one ingestion pass: fetch upcoming meetings from the
// source, persist them with their agenda items and document links, and
// queue each meeting for analysis. Failures are isolated per meeting.
type Orchestrator struct {
	source    EventSource
	meetings  MeetingStore
	items     ItemStore
	documents DocumentStore
	queue     JobQueue
}

func NewOrchestrator(source EventSource, meetings MeetingStore, items ItemStore, documents DocumentStore, queue JobQueue) *Orchestrator {
	return &Orchestrator{
		source:    source,
		meetings:  meetings,
		items:     items,
		documents: documents,
		queue:     queue,
	}
}

// Run ingests all upcoming meetings. Only a failure to fetch the event
// list aborts the pass; everything after that is per-meeting.
func (o *Orchestrator) Run(ctx context.Context) (Report, error) {
	now := time.Now()
	events, err := o.source.ListEvents(&now)
	if err != nil {
		return Report{}, fmt.Errorf("fetch events: %w", err)
	}

	slog.Info("fetched upcoming meetings", "count", len(events))

	var report Report

	for _, event := range events {
		meeting := mapEvent(event)

		if err := o.meetings.SaveMeeting(&meeting); err != nil {
			slog.Error("error saving meeting", "meeting_id", meeting.MeetingID, "error", err)
			report.Errors++
			continue
		}

		o.saveDocuments(event, meeting)

		eventID, err := strconv.Atoi(meeting.MeetingID)
		if err != nil {
			slog.Warn("meeting id is not a source event id, skipping items", "meeting_id", meeting.MeetingID)
			report.Stored++
			o.queueAnalysis(ctx, meeting.MeetingID)
			continue
		}

		eventItems, err := o.source.ListEventItems(eventID)
		if err != nil {
			slog.Error("error fetching event items", "event_id", eventID, "error", err)
			report.Errors++
			// The meeting itself was saved, so it still counts as stored.
			report.Stored++
			o.queueAnalysis(ctx, meeting.MeetingID)
			continue
		}

		for _, eventItem := range eventItems {
			if strings.TrimSpace(eventItem.EventItemTitle) == "" {
				continue
			}

			item := model.AgendaItem{
				MeetingID:   meeting.MeetingID,
				Title:       eventItem.EventItemTitle,
				Topic:       model.DefaultTopic,
				Relevance:   model.MinRelevance,
				MeetingDate: meeting.MeetingDate,
			}
			if err := o.items.SaveItem(&item); err != nil {
				slog.Error("error saving agenda item", "meeting_id", meeting.MeetingID, "title", item.Title, "error", err)
				report.Errors++
			}
		}

		report.Stored++
		o.queueAnalysis(ctx, meeting.MeetingID)
	}

	slog.Info("ingest complete", "stored", report.Stored, "errors", report.Errors)
	return report, nil
}

// queueAnalysis is best-effort: ingestion stays correct even if analysis
// never runs, so a queue failure is only a warning.
func (o *Orchestrator) queueAnalysis(ctx context.Context, meetingID string) {
	if o.queue == nil {
		slog.Warn("analysis queue not configured, skipping", "meeting_id", meetingID)
		return
	}

	payload, err := json.Marshal(Job{Action: ActionAnalyzeMeeting, MeetingID: meetingID})
	if err != nil {
		slog.Warn("error encoding analysis job", "meeting_id", meetingID, "error", err)
		return
	}

	if err := o.queue.Push(ctx, string(payload)); err != nil {
		slog.Warn("error queuing analysis job", "meeting_id", meetingID, "error", err)
		return
	}

	slog.Info("queued analysis job", "meeting_id", meetingID)
}

func (o *Orchestrator) saveDocuments(event legistar.Event, meeting model.Meeting) {
	links := []struct {
		url     string
		docType string
	}{
		{event.EventAgendaFile, model.DocumentTypeAgenda},
		{event.EventMinutesFile, model.DocumentTypeMinutes},
	}

	for _, link := range links {
		if link.url == "" {
			continue
		}
		doc := model.Document{
			MeetingID:    meeting.MeetingID,
			Title:        fmt.Sprintf("%s %s", meeting.BodyName, link.docType),
			DocumentType: link.docType,
			URL:          link.url,
		}
		if err := o.documents.SaveDocument(&doc); err != nil {
			slog.Error("error saving document", "meeting_id", meeting.MeetingID, "type", link.docType, "error", err)
		}
	}
}

func mapEvent(event legistar.Event) model.Meeting {
	meetingID := ""
	if event.EventID != 0 {
		meetingID = strconv.Itoa(event.EventID)
	}

	bodyName := event.EventBodyName
	if bodyName == "" {
		bodyName = "City Council"
	}

	return model.Meeting{
		MeetingID:   meetingID,
		BodyName:    bodyName,
		Title:       bodyName,
		MeetingDate: parseEventDate(event.EventDate),
		Location:    event.EventLocation,
		URL:         event.EventInSiteURL,
		Source:      model.DefaultSource,
	}
}

// parseEventDate handles the bare local-time format Legistar uses plus
// RFC3339 as a fallback. Unparsable dates map to the zero time.
func parseEventDate(value string) time.Time {
	for _, layout := range []string{"2006-01-02T15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
