package synccore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Operation is a handle to one in-progress or finished sync run: the
// Config it was started with, its two queues, its termination barrier, its
// LogStream, and its Stats. New starts the worker pool immediately; Wait
// blocks until every directory pair has been fully mirrored (or the run was
// canceled).
type Operation struct {
	cfg   Config
	runID uuid.UUID

	dirQueue *queue[dirTask]
	opQueue  *queue[opTask]
	barrier  *terminationBarrier
	logs     *LogStream
	stats    Stats

	runDone chan struct{}
	once    sync.Once
	err     error
}

// New starts a sync run for cfg: it seeds the dir-queue with every
// DirectoryPair, spawns cfg.ParallelCopies worker goroutines, and returns
// immediately. Call Wait (or poll IsDone) to observe completion, and
// ReadLog/Stats to observe progress as it happens.
//
// ctx governs cancellation only: the supplemental cancel-token extension
// (spec.md §9's Open Question) lets a caller stop a run early via ctx.
// Workers never read ctx themselves — one goroutine watches ctx and cancels
// the barrier when it's done, and workers check the barrier between tasks.
// A nil ctx is treated as context.Background.
func New(ctx context.Context, cfg Config) *Operation {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg = cfg.normalized()

	op := &Operation{
		cfg:      cfg,
		runID:    uuid.New(),
		dirQueue: newQueue[dirTask](),
		opQueue:  newQueue[opTask](),
		barrier:  newTerminationBarrier(cfg.ParallelCopies),
		logs:     NewLogStream(0),
		runDone:  make(chan struct{}),
	}

	for _, pair := range cfg.DirectoryPairs {
		op.dirQueue.Push(dirTask{src: pair.Source, dest: pair.Destination})
	}
	op.barrier.notifyOne()

	go func() {
		select {
		case <-ctx.Done():
			op.barrier.cancel()
		case <-op.runDone:
		}
	}()

	g, _ := errgroup.WithContext(context.Background())
	for i := 0; i < cfg.ParallelCopies; i++ {
		g.Go(func() error {
			op.workerLoop()
			return nil
		})
	}

	go func() {
		op.err = g.Wait()
		close(op.runDone)
	}()

	return op
}

// workerLoop is the body spec.md §5 describes: pop an op-task if one is
// available and execute it; else pop a dir-task and scan it; else enter the
// termination barrier. The op-queue is drained first so file-level work
// never backs up behind directory scanning on a deep tree (spec.md §2.2);
// both queues are always drained before a worker parks, so no task is ever
// left behind by a worker that happens to race into the barrier while work
// still exists.
func (op *Operation) workerLoop() {
	for {
		if op.barrier.isDone() {
			return
		}
		if ot, ok := op.opQueue.TryPop(); ok {
			op.executeOp(ot)
			op.barrier.notifyOne()
			continue
		}
		if dt, ok := op.dirQueue.TryPop(); ok {
			op.scan(dt.src, dt.dest)
			op.barrier.notifyOne()
			continue
		}
		if op.barrier.enter() == barrierExit {
			return
		}
	}
}

func (op *Operation) pushDirTask(t dirTask) {
	op.dirQueue.Push(t)
	op.barrier.notifyOne()
}

func (op *Operation) pushOpTask(t opTask) {
	op.opQueue.Push(t)
	op.barrier.notifyOne()
}

func (op *Operation) logf(level LogLevel, message string) {
	op.logs.Push(LogEntry{Timestamp: time.Now(), Level: level, Message: message})
}

// Wait blocks until every worker has exited, then returns the run's error
// (always nil today; workers never return errors, only log them, per
// spec.md §7 — reserved for a future fail-fast mode).
func (op *Operation) Wait() error {
	<-op.runDone
	return op.err
}

// IsDone reports whether the run has finished, without blocking. Safe to
// poll from a UI goroutine alongside ReadLog.
func (op *Operation) IsDone() bool {
	select {
	case <-op.runDone:
		return true
	default:
		return false
	}
}

// Cancel requests early termination: every worker still parked in the
// barrier wakes, observes done, and exits; a worker mid-task finishes that
// one task first. Wait/IsDone report completion once all of them have.
func (op *Operation) Cancel() {
	op.once.Do(func() {
		op.barrier.cancel()
	})
}

// ReadLog pops the oldest buffered log entry, or reports ok=false if none
// is currently available. Safe to call concurrently with a run in
// progress.
func (op *Operation) ReadLog() (LogEntry, bool) {
	return op.logs.Pop()
}

// Stats returns a point-in-time snapshot of the run's counters. Safe to
// call concurrently with a run in progress, including after it's done.
func (op *Operation) Stats() StatsSnapshot {
	return op.stats.Snapshot()
}

// RunID returns the run's correlation ID, generated once in New. Callers
// that log or report on a run (the CLI, multi-job orchestration) attach it
// so entries from concurrently running jobs can be told apart after the
// fact.
func (op *Operation) RunID() uuid.UUID {
	return op.runID
}
