package ledgerflow

import "sync"

// pool bounds how many long-lived worker goroutines run concurrently,
// without ever blocking the caller that submits them. Unlike a classic
// job-queue pool (N goroutines pulling short tasks off one channel), each
// job submitted here is a per-customer worker that runs for the whole
// batch; a job-queue pool would deadlock as soon as the number of
// customers exceeded pool capacity, since every goroutine would be parked
// inside a customer's lifetime with no goroutine left to dequeue the next
// one. submit instead spawns a goroutine per job that waits on a semaphore,
// so the dispatcher can keep demultiplexing (and keep buffering into
// not-yet-started mailboxes) while the pool is saturated.
type pool struct {
	sem chan struct{}
	wg  sync.WaitGroup
}

func newPool(size int) *pool {
	if size < 1 {
		size = 1
	}
	return &pool{sem: make(chan struct{}, size)}
}

// submit runs job once a slot is free. It never blocks the caller.
func (p *pool) submit(job func()) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.sem <- struct{}{}
		defer func() { <-p.sem }()
		job()
	}()
}

// join waits for every submitted job to finish.
func (p *pool) join() {
	p.wg.Wait()
}
