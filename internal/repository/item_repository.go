package repository

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/ConnerV42/spokane-public-brief/internal/model"
)

// maxWorkingSet caps recency-ordered listings. Anything larger than this
// must go through an explicit narrower query.
const maxWorkingSet = 1000

type ItemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// SaveItem upserts by item_id and normalizes the analysis fields into
// their allowed ranges first. A missing id gets a generated one.
func (r *ItemRepository) SaveItem(item *model.AgendaItem) error {
	if item.ItemID == "" {
		item.ItemID = uuid.NewString()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	item.Normalize()

	keyDetails, err := json.Marshal(item.KeyDetails)
	if err != nil {
		return storeErr("save", "agenda_items", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO agenda_items(item_id, meeting_id, title, topic, relevance, summary,
			key_details, why_it_matters, status, decision, economic_axis, social_axis,
			meeting_date, created_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (item_id) DO UPDATE SET
			meeting_id = EXCLUDED.meeting_id,
			title = EXCLUDED.title,
			topic = EXCLUDED.topic,
			relevance = EXCLUDED.relevance,
			summary = EXCLUDED.summary,
			key_details = EXCLUDED.key_details,
			why_it_matters = EXCLUDED.why_it_matters,
			status = EXCLUDED.status,
			decision = EXCLUDED.decision,
			economic_axis = EXCLUDED.economic_axis,
			social_axis = EXCLUDED.social_axis,
			meeting_date = EXCLUDED.meeting_date
	`, item.ItemID, item.MeetingID, item.Title, item.Topic, item.Relevance, item.Summary,
		keyDetails, item.WhyItMatters, item.Status, item.Decision,
		item.EconomicAxis, item.SocialAxis, item.MeetingDate, item.CreatedAt)

	if err != nil {
		return storeErr("save", "agenda_items", err)
	}

	return nil
}

func (r *ItemRepository) GetItemsForMeeting(meetingID string) ([]model.AgendaItem, error) {
	rows, err := r.db.Query(itemColumns+`
		FROM agenda_items
		WHERE meeting_id = $1
		ORDER BY created_at ASC
	`, meetingID)
	if err != nil {
		return nil, storeErr("query", "agenda_items", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// ListRecentItems returns agenda items newest-first, bounded by the
// working-set cap.
func (r *ItemRepository) ListRecentItems(limit int) ([]model.AgendaItem, error) {
	if limit <= 0 || limit > maxWorkingSet {
		limit = maxWorkingSet
	}

	rows, err := r.db.Query(itemColumns+`
		FROM agenda_items
		ORDER BY meeting_date DESC, created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, storeErr("query", "agenda_items", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

func (r *ItemRepository) ListItemsByTopic(topic string, limit int) ([]model.AgendaItem, error) {
	if limit <= 0 || limit > maxWorkingSet {
		limit = maxWorkingSet
	}

	rows, err := r.db.Query(itemColumns+`
		FROM agenda_items
		WHERE topic = $1
		ORDER BY meeting_date DESC, created_at DESC
		LIMIT $2
	`, topic, limit)
	if err != nil {
		return nil, storeErr("query", "agenda_items", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

func (r *ItemRepository) CountItems() (int, error) {
	var total int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM agenda_items`).Scan(&total)
	if err != nil {
		return 0, storeErr("count", "agenda_items", err)
	}
	return total, nil
}

func (r *ItemRepository) CountHighRelevance(min int) (int, error) {
	var total int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM agenda_items WHERE relevance >= $1`, min).Scan(&total)
	if err != nil {
		return 0, storeErr("count", "agenda_items", err)
	}
	return total, nil
}

func (r *ItemRepository) ListTopics() ([]string, error) {
	rows, err := r.db.Query(`SELECT DISTINCT topic FROM agenda_items ORDER BY topic`)
	if err != nil {
		return nil, storeErr("query", "agenda_items", err)
	}
	defer rows.Close()

	var topics []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, storeErr("query", "agenda_items", err)
		}
		topics = append(topics, t)
	}

	if err := rows.Err(); err != nil {
		return nil, storeErr("query", "agenda_items", err)
	}

	return topics, nil
}

const itemColumns = `
	SELECT item_id, meeting_id, title, topic, relevance, summary, key_details,
		why_it_matters, status, decision, economic_axis, social_axis,
		meeting_date, created_at`

func scanItems(rows *sql.Rows) ([]model.AgendaItem, error) {
	var items []model.AgendaItem
	for rows.Next() {
		var a model.AgendaItem
		var keyDetails []byte
		err := rows.Scan(&a.ItemID, &a.MeetingID, &a.Title, &a.Topic, &a.Relevance,
			&a.Summary, &keyDetails, &a.WhyItMatters, &a.Status, &a.Decision,
			&a.EconomicAxis, &a.SocialAxis, &a.MeetingDate, &a.CreatedAt)
		if err != nil {
			return nil, storeErr("scan", "agenda_items", err)
		}
		if len(keyDetails) > 0 {
			if err := json.Unmarshal(keyDetails, &a.KeyDetails); err != nil {
				return nil, storeErr("scan", "agenda_items", err)
			}
		}
		items = append(items, a)
	}

	if err := rows.Err(); err != nil {
		return nil, storeErr("scan", "agenda_items", err)
	}

	return items, nil
}
