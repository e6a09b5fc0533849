// Package worker provides a fixed-size pool for background export
// work: a dispatcher feeds a buffered queue into N workers, each
// pulling jobs over its own channel.
package worker

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
)

// ErrQueueFull is returned when a job cannot be accepted because the
// queue is at capacity.
var ErrQueueFull = errors.New("job queue full")

// Job is a unit of background work.
type Job interface {
	Execute() error
	ID() string
}

// Worker pulls jobs from its own channel after registering it with
// the shared pool.
type Worker struct {
	id         int
	workerPool chan chan Job
	jobChannel chan Job
	quit       chan struct{}
	wg         *sync.WaitGroup
	log        *logrus.Logger
}

func newWorker(id int, workerPool chan chan Job, wg *sync.WaitGroup, log *logrus.Logger) *Worker {
	return &Worker{
		id:         id,
		workerPool: workerPool,
		jobChannel: make(chan Job),
		quit:       make(chan struct{}),
		wg:         wg,
		log:        log,
	}
}

func (w *Worker) start() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			w.workerPool <- w.jobChannel

			select {
			case job := <-w.jobChannel:
				w.log.Infof("Worker %d: started job %s", w.id, job.ID())
				if err := job.Execute(); err != nil {
					w.log.Errorf("Worker %d: job %s failed: %v", w.id, job.ID(), err)
				} else {
					w.log.Infof("Worker %d: finished job %s", w.id, job.ID())
				}
			case <-w.quit:
				return
			}
		}
	}()
}

func (w *Worker) stop() {
	close(w.quit)
}

// Dispatcher owns the job queue and the worker pool.
type Dispatcher struct {
	workerPool chan chan Job
	jobQueue   chan Job
	workers    []*Worker
	wg         sync.WaitGroup
	quit       chan struct{}
	log        *logrus.Logger
}

// NewDispatcher creates a Dispatcher with maxWorkers workers and a
// queue of queueSize pending jobs.
func NewDispatcher(maxWorkers, queueSize int, log *logrus.Logger) *Dispatcher {
	return &Dispatcher{
		workerPool: make(chan chan Job, maxWorkers),
		jobQueue:   make(chan Job, queueSize),
		workers:    make([]*Worker, 0, maxWorkers),
		quit:       make(chan struct{}),
		log:        log,
	}
}

// Run starts the workers and the dispatch loop.
func (d *Dispatcher) Run() {
	d.log.Infof("Export dispatcher starting with %d workers", cap(d.workerPool))
	for i := 1; i <= cap(d.workerPool); i++ {
		w := newWorker(i, d.workerPool, &d.wg, d.log)
		d.workers = append(d.workers, w)
		w.start()
	}
	go d.dispatch()
}

func (d *Dispatcher) dispatch() {
	for {
		select {
		case job := <-d.jobQueue:
			go func(job Job) {
				jobChannel := <-d.workerPool
				jobChannel <- job
			}(job)
		case <-d.quit:
			return
		}
	}
}

// Submit queues a job without blocking. Returns ErrQueueFull when the
// queue is at capacity.
func (d *Dispatcher) Submit(job Job) error {
	select {
	case d.jobQueue <- job:
		d.log.Infof("Job %s submitted to export queue", job.ID())
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop shuts down the dispatch loop and waits for in-flight jobs to
// finish.
func (d *Dispatcher) Stop() {
	close(d.quit)
	for _, w := range d.workers {
		w.stop()
	}
	d.wg.Wait()
	d.log.Info("Export dispatcher stopped")
}
