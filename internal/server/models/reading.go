package models

import "time"

// ReadingEntry logs one health article the user read. Entries are never
// trashed.
type ReadingEntry struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"userId" bson:"user_id"`
	Title     string    `json:"title" bson:"title"`
	Category  string    `json:"category" bson:"category"`
	ReadTime  string    `json:"readTime" bson:"read_time"`
	ArticleID string    `json:"articleId,omitempty" bson:"article_id,omitempty"`
	DateRead  time.Time `json:"dateRead" bson:"date_read"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

type ReadingInput struct {
	Title     string     `json:"title" validate:"required,max=300"`
	Category  string     `json:"category" validate:"required,max=100"`
	ReadTime  string     `json:"readTime" validate:"max=50"`
	ArticleID string     `json:"articleId" validate:"max=100"`
	DateRead  *time.Time `json:"dateRead"`
}

// NewReading validates in and builds a ReadingEntry. DateRead defaults to now.
func NewReading(id, userID string, in ReadingInput, now time.Time) (*ReadingEntry, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}
	r := &ReadingEntry{
		ID:        id,
		UserID:    userID,
		Title:     in.Title,
		Category:  in.Category,
		ReadTime:  in.ReadTime,
		ArticleID: in.ArticleID,
		DateRead:  now,
		CreatedAt: now,
	}
	if in.DateRead != nil {
		r.DateRead = *in.DateRead
	}
	return r, nil
}
