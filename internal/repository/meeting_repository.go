package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/ConnerV42/spokane-public-brief/internal/model"
)

type MeetingRepository struct {
	db *sql.DB
}

func NewMeetingRepository(db *sql.DB) *MeetingRepository {
	return &MeetingRepository{db: db}
}

// SaveMeeting upserts by meeting_id: re-ingesting the same meeting
// overwrites the previous snapshot. A missing id gets a generated one.
func (r *MeetingRepository) SaveMeeting(meeting *model.Meeting) error {
	if meeting.MeetingID == "" {
		meeting.MeetingID = uuid.NewString()
	}
	if meeting.Source == "" {
		meeting.Source = model.DefaultSource
	}
	if meeting.CreatedAt.IsZero() {
		meeting.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.Exec(`
		INSERT INTO meetings(meeting_id, body_name, title, meeting_date, location, url, source, created_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (meeting_id) DO UPDATE SET
			body_name = EXCLUDED.body_name,
			title = EXCLUDED.title,
			meeting_date = EXCLUDED.meeting_date,
			location = EXCLUDED.location,
			url = EXCLUDED.url,
			source = EXCLUDED.source,
			created_at = EXCLUDED.created_at
	`, meeting.MeetingID, meeting.BodyName, meeting.Title, meeting.MeetingDate,
		meeting.Location, meeting.URL, meeting.Source, meeting.CreatedAt)

	if err != nil {
		return storeErr("save", "meetings", err)
	}

	return nil
}

func (r *MeetingRepository) GetMeeting(meetingID string) (*model.Meeting, error) {
	var m model.Meeting
	err := r.db.QueryRow(`
		SELECT meeting_id, body_name, title, meeting_date, location, url, source, created_at
		FROM meetings
		WHERE meeting_id = $1
	`, meetingID).Scan(&m.MeetingID, &m.BodyName, &m.Title, &m.MeetingDate,
		&m.Location, &m.URL, &m.Source, &m.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, storeErr("get", "meetings", err)
	}

	return &m, nil
}

// ListMeetings returns meetings newest-first, optionally filtered by
// governing body name.
func (r *MeetingRepository) ListMeetings(bodyName string, limit int) ([]model.Meeting, error) {
	query := `
		SELECT meeting_id, body_name, title, meeting_date, location, url, source, created_at
		FROM meetings
		ORDER BY meeting_date DESC
		LIMIT $1
	`
	args := []any{limit}

	if bodyName != "" {
		query = `
			SELECT meeting_id, body_name, title, meeting_date, location, url, source, created_at
			FROM meetings
			WHERE body_name = $1
			ORDER BY meeting_date DESC
			LIMIT $2
		`
		args = []any{bodyName, limit}
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, storeErr("list", "meetings", err)
	}
	defer rows.Close()

	var meetings []model.Meeting
	for rows.Next() {
		var m model.Meeting
		err := rows.Scan(&m.MeetingID, &m.BodyName, &m.Title, &m.MeetingDate,
			&m.Location, &m.URL, &m.Source, &m.CreatedAt)
		if err != nil {
			return nil, storeErr("list", "meetings", err)
		}
		meetings = append(meetings, m)
	}

	if err := rows.Err(); err != nil {
		return nil, storeErr("list", "meetings", err)
	}

	return meetings, nil
}

func (r *MeetingRepository) CountMeetings() (int, error) {
	var total int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM meetings`).Scan(&total)
	if err != nil {
		return 0, storeErr("count", "meetings", err)
	}
	return total, nil
}
