package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"github.com/ConnerV42/spokane-public-brief/internal/model"
	"github.com/ConnerV42/spokane-public-brief/pkg/legistar"
)

type fakeSource struct {
	events    []legistar.Event
	items     map[int][]legistar.EventItem
	eventsErr error
	itemsErr  error
}

func (f *fakeSource) ListEvents(since *time.Time) ([]legistar.Event, error) {
	return f.events, f.eventsErr
}

func (f *fakeSource) ListEventItems(eventID int) ([]legistar.EventItem, error) {
	if f.itemsErr != nil {
		return nil, f.itemsErr
	}
	return f.items[eventID], nil
}

type fakeMeetingStore struct {
	saved []model.Meeting
	err   error
}

func (f *fakeMeetingStore) SaveMeeting(m *model.Meeting) error {
	if f.err != nil {
		return f.err
	}
	if m.MeetingID == "" {
		m.MeetingID = "generated-id"
	}
	f.saved = append(f.saved, *m)
	return nil
}

type fakeItemStore struct {
	saved   []model.AgendaItem
	failOn  string
	nFailed int
}

func (f *fakeItemStore) SaveItem(item *model.AgendaItem) error {
	if f.failOn != "" && item.Title == f.failOn {
		f.nFailed++
		return errors.New("storage down")
	}
	f.saved = append(f.saved, *item)
	return nil
}

type fakeDocStore struct {
	saved []model.Document
}

func (f *fakeDocStore) SaveDocument(d *model.Document) error {
	f.saved = append(f.saved, *d)
	return nil
}

type fakeQueue struct {
	payloads []string
	err      error
}

func (f *fakeQueue) Push(ctx context.Context, payload string) error {
	if f.err != nil {
		return f.err
	}
	f.payloads = append(f.payloads, payload)
	return nil
}

func newOrchestratorForTest(source *fakeSource) (*Orchestrator, *fakeMeetingStore, *fakeItemStore, *fakeDocStore, *fakeQueue) {
	meetings := &fakeMeetingStore{}
	items := &fakeItemStore{}
	docs := &fakeDocStore{}
	queue := &fakeQueue{}
	return NewOrchestrator(source, meetings, items, docs, queue), meetings, items, docs, queue
}

func TestRun_StoresMeetingAndItems(t *testing.T) {
	source := &fakeSource{
		events: []legistar.Event{
			{
				EventID:       42,
				EventBodyName: "City Council",
				EventDate:     "2026-02-20T18:00:00",
				EventLocation: "Council Chambers",
			},
		},
		items: map[int][]legistar.EventItem{
			42: {
				{EventItemID: 1, EventItemTitle: "Rezoning of North Monroe corridor"},
				{EventItemID: 2, EventItemTitle: "Budget amendment"},
				{EventItemID: 3, EventItemTitle: "   "},
			},
		},
	}

	o, meetings, items, _, queue := newOrchestratorForTest(source)
	report, err := o.Run(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, report.Stored)
	assert.Equal(t, 0, report.Errors)
	assert.Equal(t, 1, len(meetings.saved))
	assert.Equal(t, "42", meetings.saved[0].MeetingID)

	// Blank-titled item is dropped silently.
	assert.Equal(t, 2, len(items.saved))
	assert.Equal(t, "Rezoning of North Monroe corridor", items.saved[0].Title)
	assert.Equal(t, model.DefaultTopic, items.saved[0].Topic)
	assert.Equal(t, model.MinRelevance, items.saved[0].Relevance)

	assert.Equal(t, 1, len(queue.payloads))
	var job Job
	json.Unmarshal([]byte(queue.payloads[0]), &job)
	assert.Equal(t, ActionAnalyzeMeeting, job.Action)
	assert.Equal(t, "42", job.MeetingID)
}

func TestRun_FetchFailureAbortsPass(t *testing.T) {
	source := &fakeSource{eventsErr: &legistar.APIError{StatusCode: 503}}

	o, meetings, _, _, queue := newOrchestratorForTest(source)
	_, err := o.Run(context.Background())

	assert.NotEqual(t, nil, err)
	assert.Equal(t, 0, len(meetings.saved))
	assert.Equal(t, 0, len(queue.payloads))
}

func TestRun_MeetingSaveFailureSkipsItems(t *testing.T) {
	source := &fakeSource{
		events: []legistar.Event{{EventID: 42}},
		items: map[int][]legistar.EventItem{
			42: {{EventItemTitle: "Something"}},
		},
	}

	o, meetings, items, _, queue := newOrchestratorForTest(source)
	meetings.err = errors.New("storage down")

	report, err := o.Run(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, 0, report.Stored)
	assert.Equal(t, 1, report.Errors)
	assert.Equal(t, 0, len(items.saved))
	assert.Equal(t, 0, len(queue.payloads))
}

func TestRun_ItemFetchFailureStillStoresMeeting(t *testing.T) {
	source := &fakeSource{
		events:   []legistar.Event{{EventID: 42}},
		itemsErr: &legistar.APIError{StatusCode: 500},
	}

	o, _, items, _, queue := newOrchestratorForTest(source)
	report, err := o.Run(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, report.Stored)
	assert.Equal(t, 1, report.Errors)
	assert.Equal(t, 0, len(items.saved))
	// Analysis is still scheduled for the stored meeting.
	assert.Equal(t, 1, len(queue.payloads))
}

func TestRun_ItemSaveFailureContinuesWithRest(t *testing.T) {
	source := &fakeSource{
		events: []legistar.Event{{EventID: 42}},
		items: map[int][]legistar.EventItem{
			42: {
				{EventItemTitle: "First"},
				{EventItemTitle: "Broken"},
				{EventItemTitle: "Third"},
			},
		},
	}

	o, _, items, _, _ := newOrchestratorForTest(source)
	items.failOn = "Broken"

	report, err := o.Run(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, report.Stored)
	assert.Equal(t, 1, report.Errors)
	assert.Equal(t, 2, len(items.saved))
	assert.Equal(t, "Third", items.saved[1].Title)
}

func TestRun_GeneratedMeetingIDSkipsItemsButSchedules(t *testing.T) {
	// EventID 0 means no source identifier: the store assigns one, item
	// fetch is skipped, analysis is still queued.
	source := &fakeSource{events: []legistar.Event{{EventID: 0}}}

	o, meetings, items, _, queue := newOrchestratorForTest(source)
	report, err := o.Run(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, report.Stored)
	assert.Equal(t, 0, report.Errors)
	assert.Equal(t, "generated-id", meetings.saved[0].MeetingID)
	assert.Equal(t, 0, len(items.saved))
	assert.Equal(t, 1, len(queue.payloads))
}

func TestRun_QueueFailureDoesNotFailIngest(t *testing.T) {
	source := &fakeSource{events: []legistar.Event{{EventID: 42}}}

	o, _, _, _, queue := newOrchestratorForTest(source)
	queue.err = errors.New("queue unavailable")

	report, err := o.Run(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, report.Stored)
	assert.Equal(t, 0, report.Errors)
}

func TestRun_SavesDocumentLinks(t *testing.T) {
	source := &fakeSource{
		events: []legistar.Event{
			{
				EventID:          42,
				EventBodyName:    "City Council",
				EventAgendaFile:  "https://example.com/agenda.pdf",
				EventMinutesFile: "https://example.com/minutes.pdf",
			},
		},
	}

	o, _, _, docs, _ := newOrchestratorForTest(source)
	_, err := o.Run(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(docs.saved))
	assert.Equal(t, model.DocumentTypeAgenda, docs.saved[0].DocumentType)
	assert.Equal(t, "https://example.com/agenda.pdf", docs.saved[0].URL)
	assert.Equal(t, model.DocumentTypeMinutes, docs.saved[1].DocumentType)
}

func TestMapEvent_Defaults(t *testing.T) {
	meeting := mapEvent(legistar.Event{EventID: 42, EventDate: "2026-02-20T18:00:00"})

	assert.Equal(t, "42", meeting.MeetingID)
	assert.Equal(t, "City Council", meeting.BodyName)
	assert.Equal(t, model.DefaultSource, meeting.Source)
	assert.Equal(t, 2026, meeting.MeetingDate.Year())
	assert.Equal(t, 18, meeting.MeetingDate.Hour())
}
