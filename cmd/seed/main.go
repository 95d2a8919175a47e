package main

import (
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/ConnerV42/spokane-public-brief/db"
	"github.com/ConnerV42/spokane-public-brief/internal/config"
	"github.com/ConnerV42/spokane-public-brief/internal/model"
	"github.com/ConnerV42/spokane-public-brief/internal/repository"
)

const schema = `
CREATE TABLE IF NOT EXISTS meetings (
	meeting_id   TEXT PRIMARY KEY,
	body_name    TEXT NOT NULL DEFAULT '',
	title        TEXT NOT NULL DEFAULT '',
	meeting_date TIMESTAMPTZ,
	location     TEXT NOT NULL DEFAULT '',
	url          TEXT NOT NULL DEFAULT '',
	source       TEXT NOT NULL DEFAULT '',
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_meetings_body_date ON meetings (body_name, meeting_date DESC);
CREATE INDEX IF NOT EXISTS idx_meetings_date ON meetings (meeting_date DESC);

CREATE TABLE IF NOT EXISTS agenda_items (
	item_id       TEXT PRIMARY KEY,
	meeting_id    TEXT NOT NULL,
	title         TEXT NOT NULL DEFAULT '',
	topic         TEXT NOT NULL DEFAULT 'other',
	relevance     INT NOT NULL DEFAULT 1,
	summary       TEXT NOT NULL DEFAULT '',
	key_details   JSONB,
	why_it_matters TEXT NOT NULL DEFAULT '',
	status        TEXT NOT NULL DEFAULT '',
	decision      TEXT NOT NULL DEFAULT '',
	economic_axis INT NOT NULL DEFAULT 0,
	social_axis   INT NOT NULL DEFAULT 0,
	meeting_date  TIMESTAMPTZ,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_items_meeting ON agenda_items (meeting_id);
CREATE INDEX IF NOT EXISTS idx_items_topic_date ON agenda_items (topic, meeting_date DESC);
CREATE INDEX IF NOT EXISTS idx_items_date ON agenda_items (meeting_date DESC);

CREATE TABLE IF NOT EXISTS documents (
	document_id   TEXT PRIMARY KEY,
	meeting_id    TEXT NOT NULL,
	title         TEXT NOT NULL DEFAULT '',
	document_type TEXT NOT NULL DEFAULT '',
	url           TEXT NOT NULL DEFAULT '',
	processed     BOOLEAN NOT NULL DEFAULT false,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_documents_meeting ON documents (meeting_id);
`

// Local bootstrap: creates the schema and loads a small sample data set
// so the API has something to serve before the first real ingest.
func main() {
	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()

	conn, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer conn.Close()

	if _, err := conn.Exec(schema); err != nil {
		log.Fatalf("error creating tables: %v", err)
	}
	slog.Info("tables created")

	if len(os.Args) > 1 && os.Args[1] == "--schema-only" {
		return
	}

	meetingRepo := repository.NewMeetingRepository(conn)
	itemRepo := repository.NewItemRepository(conn)
	docRepo := repository.NewDocumentRepository(conn)

	meetingDate := time.Now().AddDate(0, 0, 7).Truncate(time.Hour)
	meeting := model.Meeting{
		MeetingID:   "sample-1001",
		BodyName:    "City Council",
		Title:       "City Council",
		MeetingDate: meetingDate,
		Location:    "Council Chambers, 808 W Spokane Falls Blvd",
		URL:         "https://spokane.legistar.com/sample-1001",
	}
	if err := meetingRepo.SaveMeeting(&meeting); err != nil {
		log.Fatalf("error seeding meeting: %v", err)
	}

	items := []model.AgendaItem{
		{
			MeetingID:    meeting.MeetingID,
			Title:        "Rezoning of North Monroe corridor",
			Topic:        "zoning",
			Relevance:    4,
			Summary:      "Rezones twelve parcels along North Monroe from single-family to mixed-use.",
			KeyDetails:   []string{"12 parcels affected", "Public comment period ends March 15"},
			WhyItMatters: "Changes what can be built in the North Monroe business district.",
			Status:       model.StatusFirstRead,
			MeetingDate:  meetingDate,
		},
		{
			MeetingID:    meeting.MeetingID,
			Title:        "2026 street maintenance budget amendment",
			Topic:        "budget",
			Relevance:    3,
			Summary:      "Moves $2.5 million from reserves into the arterial street fund.",
			KeyDetails:   []string{"$2.5 million from reserves", "Covers 14 miles of resurfacing"},
			WhyItMatters: "Determines which streets get repaved this year.",
			Status:       model.StatusAction,
			EconomicAxis: -1,
			MeetingDate:  meetingDate,
		},
		{
			MeetingID:   meeting.MeetingID,
			Title:       "Proclamation: Parks and Recreation Month",
			Topic:       "parks",
			Relevance:   1,
			Status:      model.StatusInfo,
			MeetingDate: meetingDate,
		},
	}
	for i := range items {
		if err := itemRepo.SaveItem(&items[i]); err != nil {
			log.Fatalf("error seeding agenda item: %v", err)
		}
	}

	doc := model.Document{
		MeetingID:    meeting.MeetingID,
		Title:        "City Council agenda",
		DocumentType: model.DocumentTypeAgenda,
		URL:          "https://spokane.legistar.com/sample-1001/agenda.pdf",
	}
	if err := docRepo.SaveDocument(&doc); err != nil {
		log.Fatalf("error seeding document: %v", err)
	}

	slog.Info("sample data loaded", "meetings", 1, "items", len(items), "documents", 1)
}
