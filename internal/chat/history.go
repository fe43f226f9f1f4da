package chat

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"askmira/internal/models"
)

const historyCollection = "chat_messages"

// HistoryStore persists chat transcripts per user in MongoDB.
type HistoryStore struct {
	coll *mongo.Collection
}

// NewHistoryStore creates a HistoryStore on the given database.
func NewHistoryStore(db *mongo.Database) *HistoryStore {
	return &HistoryStore{coll: db.Collection(historyCollection)}
}

// Append stores one message at the end of a user's transcript.
func (s *HistoryStore) Append(ctx context.Context, username, role, content string) error {
	msg := models.ChatMessage{
		Username:  username,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.coll.InsertOne(ctx, msg); err != nil {
		return fmt.Errorf("append chat message: %w", err)
	}
	return nil
}

// Recent returns the last limit messages of a user's transcript in
// chronological order.
func (s *HistoryStore) Recent(ctx context.Context, username string, limit int64) ([]models.ChatMessage, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := s.coll.Find(ctx, bson.M{"username": username}, opts)
	if err != nil {
		return nil, fmt.Errorf("load chat history: %w", err)
	}
	defer cursor.Close(ctx)

	var messages []models.ChatMessage
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("decode chat history: %w", err)
	}

	// Newest-first from the query, oldest-first for the caller.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
