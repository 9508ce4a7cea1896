package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"store-rating/internal/worker"
)

const publishTimeout = 5 * time.Second

// ErrEventDropped 事件未排入 worker pool（佇列已滿或已停止）
var ErrEventDropped = errors.New("event dropped")

// Dispatcher 將事件交給 worker pool 非同步發佈；失敗只記錄 log
type Dispatcher struct {
	pub     Publisher
	pool    worker.Pool
	log     logrus.FieldLogger
	observe func(eventType string, err error)
}

// NewDispatcher observe 可為 nil，用來回報每次發佈結果
func NewDispatcher(pub Publisher, pool worker.Pool, log logrus.FieldLogger, observe func(string, error)) *Dispatcher {
	if observe == nil {
		observe = func(string, error) {}
	}
	return &Dispatcher{pub: pub, pool: pool, log: log, observe: observe}
}

// Emit 立即返回；佇列滿載時直接丟棄事件，不拖住請求
func (d *Dispatcher) Emit(e Event) {
	err := d.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		err := d.pub.Publish(ctx, e)
		d.observe(e.Type, err)
		if err != nil {
			d.log.WithError(err).WithFields(logrus.Fields{
				"event":     e.Type,
				"rating_id": e.RatingID,
				"store_id":  e.StoreID,
			}).Error("publish rating event")
		}
	})
	if err != nil {
		d.observe(e.Type, fmt.Errorf("%w: %w", ErrEventDropped, err))
		d.log.WithError(err).WithFields(logrus.Fields{
			"event":     e.Type,
			"rating_id": e.RatingID,
		}).Warn("event dropped")
	}
}
