package worker

import (
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

type testJob struct {
	id   string
	run  func()
	fail error
}

func (j *testJob) ID() string { return j.id }

func (j *testJob) Execute() error {
	if j.run != nil {
		j.run()
	}
	return j.fail
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestDispatcherRunsJobs(t *testing.T) {
	d := NewDispatcher(2, 10, quietLogger())
	d.Run()
	defer d.Stop()

	var mu sync.Mutex
	done := make(map[string]bool)
	var wg sync.WaitGroup

	for _, id := range []string{"a", "b", "c"} {
		wg.Add(1)
		id := id
		job := &testJob{id: id, run: func() {
			mu.Lock()
			done[id] = true
			mu.Unlock()
			wg.Done()
		}}
		if err := d.Submit(job); err != nil {
			t.Fatalf("Submit(%s) error: %v", id, err)
		}
	}

	waitDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(waitDone)
	}()

	select {
	case <-waitDone:
	case <-time.After(5 * time.Second):
		t.Fatal("jobs did not complete in time")
	}

	mu.Lock()
	defer mu.Unlock()
	for _, id := range []string{"a", "b", "c"} {
		if !done[id] {
			t.Errorf("job %s did not run", id)
		}
	}
}

func TestDispatcherFailingJobDoesNotStopWorkers(t *testing.T) {
	d := NewDispatcher(1, 10, quietLogger())
	d.Run()
	defer d.Stop()

	if err := d.Submit(&testJob{id: "boom", fail: errors.New("render failed")}); err != nil {
		t.Fatalf("Submit() error: %v", err)
	}

	ran := make(chan struct{})
	if err := d.Submit(&testJob{id: "next", run: func() { close(ran) }}); err != nil {
		t.Fatalf("Submit() error: %v", err)
	}

	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("worker stopped processing after failed job")
	}
}

func TestSubmitQueueFull(t *testing.T) {
	// No Run(): nothing drains the queue.
	d := NewDispatcher(1, 1, quietLogger())

	if err := d.Submit(&testJob{id: "first"}); err != nil {
		t.Fatalf("Submit() error: %v", err)
	}
	if err := d.Submit(&testJob{id: "second"}); !errors.Is(err, ErrQueueFull) {
		t.Errorf("Submit() error = %v, want ErrQueueFull", err)
	}
}
