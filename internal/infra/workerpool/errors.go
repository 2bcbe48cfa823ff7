package workerpool

import "errors"

var (
	// ErrBackpressure возвращается, когда очередь пула заполнена
	ErrBackpressure = errors.New("workerpool: queue is full")

	// ErrPoolClosed возвращается при отправке задачи в закрытый пул
	ErrPoolClosed = errors.New("workerpool: pool is closed")

	// ErrPanic возвращается, если блокирующий вызов запаниковал
	ErrPanic = errors.New("workerpool: call panicked")
)
