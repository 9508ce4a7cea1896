// Package events publishes rating changes to a message broker.
package events

import (
	"context"
	"time"

	"store-rating/internal/model"
)

const (
	RatingCreated = "rating.created"
	RatingUpdated = "rating.updated"
	RatingDeleted = "rating.deleted"
)

// Event 評分異動事件，Type 同時作為 routing key
type Event struct {
	Type       string    `json:"type"`
	RatingID   int       `json:"rating_id"`
	StoreID    int       `json:"store_id"`
	UserID     int       `json:"user_id"`
	Rating     int       `json:"rating"`
	OccurredAt time.Time `json:"occurred_at"`
}

var timeNow = time.Now

// NewRatingEvent 以評分資料建立事件
func NewRatingEvent(eventType string, r model.Rating) Event {
	return Event{
		Type:       eventType,
		RatingID:   r.ID,
		StoreID:    r.StoreID,
		UserID:     r.UserID,
		Rating:     r.Rating,
		OccurredAt: timeNow().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Emitter 由 handler 呼叫，不阻塞也不回傳錯誤
type Emitter interface {
	Emit(e Event)
}

// NopPublisher 未設定 broker 時使用
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }

// FakeEmitter 記錄收到的事件，供測試使用
type FakeEmitter struct {
	Events []Event
}

func (f *FakeEmitter) Emit(e Event) { f.Events = append(f.Events, e) }
