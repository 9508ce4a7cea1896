package worker

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Task represents a unit of work executed by the pool.
type Task func()

var (
	ErrStopped   = errors.New("worker pool stopped")
	ErrQueueFull = errors.New("worker queue full")
)

// Pool runs submitted tasks on a fixed set of goroutines.
type Pool interface {
	// Submit queues t without blocking. It returns ErrQueueFull when every
	// slot is taken and ErrStopped once the pool has been stopped.
	Submit(Task) error
	// Stop drains queued tasks and waits for the workers to exit.
	Stop()
}

// NewPool creates a pool with n workers and a queue of size queue.
// n<=0 defaults to 1. A panicking task is logged and does not kill its worker.
func NewPool(n, queue int, log logrus.FieldLogger) Pool {
	if n <= 0 {
		n = 1
	}
	if queue < 0 {
		queue = 0
	}
	p := &pool{jobs: make(chan Task, queue), log: log}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.run()
	}
	return p
}

type pool struct {
	mu     sync.RWMutex
	closed bool
	jobs   chan Task
	wg     sync.WaitGroup
	log    logrus.FieldLogger
}

func (p *pool) run() {
	defer p.wg.Done()
	for job := range p.jobs {
		p.exec(job)
	}
}

func (p *pool) exec(job Task) {
	if job == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil && p.log != nil {
			p.log.WithField("panic", fmt.Sprint(r)).Error("worker task panicked")
		}
	}()
	job()
}

func (p *pool) Submit(t Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrStopped
	}
	select {
	case p.jobs <- t:
		return nil
	default:
		return ErrQueueFull
	}
}

func (p *pool) Stop() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}
