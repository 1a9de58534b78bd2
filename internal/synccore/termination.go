package synccore

import "sync"

// terminationBarrier coordinates quiescence detection across N workers, per
// spec.md §5. A worker that finds both queues empty parks here; the last
// worker to park (the Nth, observing waiting == N-1) declares the run done
// and wakes everyone else.
//
// Safety: done can only be set while N-1 workers are already parked and the
// Nth is inside the critical section, so nothing can be mid-task and both
// queues were observed empty simultaneously. Only the barrier's own workers
// push; the caller of New never pushes after startup, so the queues cannot
// refill from outside.
//
// Liveness: every producer notifies after a push (see notifyOne), so a
// parked worker always wakes when work appears; if it finds nothing on
// re-check it simply re-parks.
type terminationBarrier struct {
	mu      sync.Mutex
	cond    *sync.Cond
	waiting int
	done    bool
	workers int
}

func newTerminationBarrier(workers int) *terminationBarrier {
	tb := &terminationBarrier{workers: workers}
	tb.cond = sync.NewCond(&tb.mu)
	return tb
}

// barrierResult tells a worker what to do after calling enter.
type barrierResult int

const (
	barrierExit barrierResult = iota
	barrierRetry
)

// enter is called by a worker that just observed both queues empty. It
// returns barrierExit once quiescence is declared (by this worker or
// another), or barrierRetry if the worker was woken because new work may
// have arrived and should re-check the queues.
func (tb *terminationBarrier) enter() barrierResult {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	if tb.done {
		return barrierExit
	}

	if tb.waiting == tb.workers-1 {
		tb.done = true
		tb.cond.Broadcast()
		return barrierExit
	}

	tb.waiting++
	tb.cond.Wait()
	tb.waiting--

	if tb.done {
		return barrierExit
	}
	return barrierRetry
}

// cancel forces done=true and wakes every parked worker, short-circuiting
// quiescence. Used by Operation.Cancel (spec.md §9's cancellation-token
// extension); it does not change the safety argument above because a
// canceled run still only reports IsDone once every worker has actually
// observed done and exited its loop.
func (tb *terminationBarrier) cancel() {
	tb.mu.Lock()
	tb.done = true
	tb.cond.Broadcast()
	tb.mu.Unlock()
}

// notifyOne wakes a single parked worker. Producers call this after every
// push so a worker blocked in enter() is promptly given a chance to re-check
// the queues; one waiter is sufficient since both queues are MPMC.
func (tb *terminationBarrier) notifyOne() {
	tb.mu.Lock()
	tb.cond.Signal()
	tb.mu.Unlock()
}

// isDone reports whether quiescence (or cancellation) has been declared.
// Safe to call from any goroutine without blocking on the condition
// variable.
func (tb *terminationBarrier) isDone() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.done
}
