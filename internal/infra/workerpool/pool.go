// Package workerpool runs blocking calls on a fixed set of goroutines with a
// bounded queue in front of them. It is the only place where blocking store
// calls are executed.
package workerpool

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

const (
	DefaultWorkers    = 8
	DefaultQueueDepth = 64
)

// Config размеры пула
type Config struct {
	Workers    int
	QueueDepth int
}

// Pool пул воркеров с ограниченной очередью
type Pool struct {
	jobs    chan *job
	mu      sync.RWMutex
	closed  bool
	wg      sync.WaitGroup
	metrics Metrics

	inFlight atomic.Int64
}

type result struct {
	value any
	err   error
}

type job struct {
	ctx  context.Context
	fn   func(ctx context.Context) (any, error)
	done chan result // буфер 1: воркер не блокируется, если вызывающий ушёл
}

// Option настраивает пул
type Option func(*Pool)

// WithMetrics подключает сбор метрик
func WithMetrics(m Metrics) Option {
	return func(p *Pool) {
		if m != nil {
			p.metrics = m
		}
	}
}

// New запускает cfg.Workers воркеров с очередью глубины cfg.QueueDepth
func New(cfg Config, opts ...Option) *Pool {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.QueueDepth < 0 {
		cfg.QueueDepth = DefaultQueueDepth
	}

	p := &Pool{
		jobs:    make(chan *job, cfg.QueueDepth),
		metrics: noopMetrics{},
	}
	for _, opt := range opts {
		opt(p)
	}

	p.wg.Add(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		go p.worker()
	}
	return p
}

// Do выполняет блокирующий вызов на пуле и ждёт результат.
//
// Если ctx отменён во время ожидания, Do сразу возвращает ctx.Err().
// Уже начатый вызов доводится до конца с контекстом без отмены, его результат
// отбрасывается, слот воркера освобождается. Вызов, ещё стоящий в очереди,
// пропускается.
func Do[T any](ctx context.Context, p *Pool, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	j := &job{
		ctx: ctx,
		fn: func(ctx context.Context) (any, error) {
			return fn(ctx)
		},
		done: make(chan result, 1),
	}
	if err := p.submit(j); err != nil {
		return zero, err
	}

	select {
	case r := <-j.done:
		if r.err != nil {
			return zero, r.err
		}
		v, _ := r.value.(T)
		return v, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Run то же, что Do, для вызовов без результата
func (p *Pool) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	_, err := Do(ctx, p, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

func (p *Pool) submit(j *job) error {
	if err := j.ctx.Err(); err != nil {
		return err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.jobs <- j:
		p.metrics.SetPoolQueued(len(p.jobs))
		return nil
	default:
		p.metrics.IncPoolRejected()
		return fmt.Errorf("%w: depth %d", ErrBackpressure, cap(p.jobs))
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for j := range p.jobs {
		p.metrics.SetPoolQueued(len(p.jobs))

		// вызывающий уже ушёл, вызов не начинаем
		if err := j.ctx.Err(); err != nil {
			j.done <- result{err: err}
			continue
		}

		p.metrics.SetPoolInFlight(int(p.inFlight.Add(1)))
		started := time.Now()

		value, err := call(context.WithoutCancel(j.ctx), j.fn)

		p.metrics.ObservePoolCall(time.Since(started))
		p.metrics.SetPoolInFlight(int(p.inFlight.Add(-1)))

		j.done <- result{value: value, err: err}
	}
}

func call(ctx context.Context, fn func(ctx context.Context) (any, error)) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()
	return fn(ctx)
}

// InFlight возвращает число выполняющихся вызовов
func (p *Pool) InFlight() int {
	return int(p.inFlight.Load())
}

// Queued возвращает число вызовов, ждущих воркера
func (p *Pool) Queued() int {
	return len(p.jobs)
}

// Close перестаёт принимать задачи и ждёт, пока воркеры разберут очередь
func (p *Pool) Close() {
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
