package models

import "time"

// ChatSession is one conversation with the assistant.
type ChatSession struct {
	ID        string     `json:"id" bson:"_id"`
	UserID    string     `json:"userId" bson:"user_id"`
	Title     string     `json:"title" bson:"title"`
	Preview   string     `json:"preview" bson:"preview"`
	DeletedAt *time.Time `json:"deletedAt" bson:"deleted_at"`
	CreatedAt time.Time  `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" bson:"updated_at"`
}

type ChatInput struct {
	Title   string `json:"title" validate:"required,max=200"`
	Preview string `json:"preview" validate:"max=500"`
}

func NewChat(id, userID string, in ChatInput, now time.Time) (*ChatSession, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}
	return &ChatSession{
		ID:        id,
		UserID:    userID,
		Title:     in.Title,
		Preview:   in.Preview,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (c *ChatSession) TrashState() TrashState {
	return TrashState{UserID: c.UserID, DeletedAt: c.DeletedAt}
}
