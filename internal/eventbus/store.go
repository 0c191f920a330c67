package eventbus

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// MatchStream is the JetStream stream holding the matching audit log.
const MatchStream = "MATCH"

// MatchEvent is the envelope appended for every matching outcome. Proposals
// themselves are never persisted (matching is stateless); the audit log only
// records that a matching run happened and what it produced in aggregate.
type MatchEvent struct {
	ProjectID     uuid.UUID `json:"project_id"`
	Operation     string    `json:"operation"`
	TeamSize      int       `json:"team_size,omitempty"`
	Proposals     int       `json:"proposals,omitempty"`
	SkillCoverage float64   `json:"skill_coverage,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// MatchEventStore is an append-only log of matching outcomes.
type MatchEventStore interface {
	Append(subject string, event MatchEvent) error
	Read(subject string) ([]MatchEvent, error)
}

// JetStreamStore backs the match audit log with NATS JetStream.
type JetStreamStore struct {
	js nats.JetStreamContext
}

// NewJetStreamStore creates the store and ensures the MATCH stream exists.
func NewJetStreamStore() (*JetStreamStore, error) {
	if JetStream == nil {
		return nil, fmt.Errorf("JetStream context not initialized")
	}

	// AddStream is idempotent for an unchanged config.
	_, err := JetStream.AddStream(&nats.StreamConfig{
		Name:     MatchStream,
		Subjects: []string{"match.>"},
		MaxAge:   30 * 24 * time.Hour,
	})
	if err != nil && err != nats.ErrStreamNameAlreadyInUse {
		return nil, fmt.Errorf("ensure match stream: %w", err)
	}

	return &JetStreamStore{js: JetStream}, nil
}

// Append adds a matching outcome to the audit log.
func (s *JetStreamStore) Append(subject string, event MatchEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = s.js.Publish(subject, payload)
	return err
}

// Read fetches the events currently available on a subject.
func (s *JetStreamStore) Read(subject string) ([]MatchEvent, error) {
	sub, err := s.js.SubscribeSync(subject, nats.BindStream(MatchStream))
	if err != nil {
		return nil, err
	}
	defer sub.Unsubscribe()

	var events []MatchEvent
	for {
		msg, err := sub.NextMsg(100 * time.Millisecond)
		if err == nats.ErrTimeout {
			break
		}
		if err != nil {
			return events, err
		}

		var event MatchEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			continue
		}
		events = append(events, event)
	}

	return events, nil
}
