package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/ConnerV42/spokane-public-brief/internal/model"
)

type DocumentRepository struct {
	db *sql.DB
}

func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) SaveDocument(doc *model.Document) error {
	if doc.DocumentID == "" {
		doc.DocumentID = uuid.NewString()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.Exec(`
		INSERT INTO documents(document_id, meeting_id, title, document_type, url, processed, created_at)
		VALUES($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (document_id) DO UPDATE SET
			meeting_id = EXCLUDED.meeting_id,
			title = EXCLUDED.title,
			document_type = EXCLUDED.document_type,
			url = EXCLUDED.url,
			processed = EXCLUDED.processed
	`, doc.DocumentID, doc.MeetingID, doc.Title, doc.DocumentType, doc.URL,
		doc.Processed, doc.CreatedAt)

	if err != nil {
		return storeErr("save", "documents", err)
	}

	return nil
}

func (r *DocumentRepository) GetDocumentsForMeeting(meetingID string) ([]model.Document, error) {
	rows, err := r.db.Query(`
		SELECT document_id, meeting_id, title, document_type, url, processed, created_at
		FROM documents
		WHERE meeting_id = $1
		ORDER BY created_at ASC
	`, meetingID)
	if err != nil {
		return nil, storeErr("query", "documents", err)
	}
	defer rows.Close()

	var docs []model.Document
	for rows.Next() {
		var d model.Document
		err := rows.Scan(&d.DocumentID, &d.MeetingID, &d.Title, &d.DocumentType,
			&d.URL, &d.Processed, &d.CreatedAt)
		if err != nil {
			return nil, storeErr("query", "documents", err)
		}
		docs = append(docs, d)
	}

	if err := rows.Err(); err != nil {
		return nil, storeErr("query", "documents", err)
	}

	return docs, nil
}
