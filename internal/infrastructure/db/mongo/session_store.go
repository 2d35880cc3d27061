package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campuscard/portal-gateway/internal/core/domain"
	"github.com/campuscard/portal-gateway/internal/core/session"
)

const collectionSessions = "sessions"

// SessionStore keeps one document per browser. The encoded session is
// stored verbatim in payload so every backend shares the same codec.
type SessionStore struct {
	col *mongo.Collection
	ttl time.Duration
	now func() time.Time
}

type sessionDocument struct {
	BrowserID string    `bson:"_id"`
	Payload   string    `bson:"payload"`
	UpdatedAt time.Time `bson:"updated_at"`
	ExpiresAt time.Time `bson:"expires_at,omitempty"`
}

func NewSessionStore(db *mongo.Database, ttl time.Duration) *SessionStore {
	return &SessionStore{col: db.Collection(collectionSessions), ttl: ttl, now: time.Now}
}

// Load returns the session of key and slides its expiry. Documents whose
// payload no longer decodes are deleted and reported absent.
func (s *SessionStore) Load(ctx context.Context, key string) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc sessionDocument
	err := s.col.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	// The TTL monitor runs once a minute; do not serve a record it has yet
	// to reap.
	now := s.now()
	if !doc.ExpiresAt.IsZero() && now.After(doc.ExpiresAt) {
		return nil, nil
	}

	sess, ok := session.Decode([]byte(doc.Payload))
	if !ok {
		_, _ = s.col.DeleteOne(ctx, bson.M{"_id": key})
		return nil, nil
	}

	if s.ttl > 0 {
		_, err := s.col.UpdateOne(ctx, bson.M{"_id": key}, bson.M{"$set": bson.M{"expires_at": now.UTC().Add(s.ttl)}})
		if err != nil {
			return nil, fmt.Errorf("touch session: %w", err)
		}
	}
	return sess, nil
}

// Save upserts the session document of key.
func (s *SessionStore) Save(ctx context.Context, key string, sess *domain.Session) error {
	raw, err := session.Encode(sess)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := s.now().UTC()
	doc := sessionDocument{BrowserID: key, Payload: string(raw), UpdatedAt: now}
	if s.ttl > 0 {
		doc.ExpiresAt = now.Add(s.ttl)
	}

	_, err = s.col.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear deletes the session document of key, if any.
func (s *SessionStore) Clear(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := s.col.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Ping reports whether MongoDB is reachable.
func (s *SessionStore) Ping(ctx context.Context) error {
	return s.col.Database().Client().Ping(ctx, nil)
}

// EnsureIndexes creates the TTL index that reaps expired sessions.
func (s *SessionStore) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	return err
}
