package demo

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/tutu-network/splitqueue/internal/queue"
)

// task tracks the simulated work remaining for one split.
type task struct {
	split           *Split
	remainingQuanta int
	quantumNanos    int64
}

// Pool runs a fixed set of worker goroutines pulling from a shared queue,
// each executing one quantum per Take before re-offering or retiring the
// split.
type Pool struct {
	q       *queue.Queue
	workers int

	wg sync.WaitGroup

	mu      sync.Mutex
	tasks   map[*Split]*task
	retired int
}

// NewPool creates a worker pool of n goroutines over q.
func NewPool(q *queue.Queue, n int) *Pool {
	if n < 1 {
		n = 1
	}
	return &Pool{q: q, workers: n, tasks: make(map[*Split]*task)}
}

// Submit creates a new task with the given number of quanta and offers its
// split to the queue.
func (p *Pool) Submit(quanta int, quantumNanos int64) error {
	t := &task{
		split:           NewSplit(p.q),
		remainingQuanta: quanta,
		quantumNanos:    quantumNanos,
	}
	p.mu.Lock()
	p.tasks[t.split] = t
	p.mu.Unlock()
	return p.q.Offer(t.split)
}

// Run starts the worker goroutines; they stop when ctx is cancelled.
func (p *Pool) Run(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}
}

// Wait blocks until every worker has exited.
func (p *Pool) Wait() { p.wg.Wait() }

// Retired returns the number of tasks that ran to completion.
func (p *Pool) Retired() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.retired
}

func (p *Pool) worker(ctx context.Context, id int) {
	defer p.wg.Done()
	for {
		s, err := p.q.Take(ctx)
		if err != nil {
			return // cancelled
		}
		split, ok := s.(*Split)
		if !ok {
			continue
		}
		p.runQuantum(split)
	}
}

func (p *Pool) runQuantum(split *Split) {
	p.mu.Lock()
	t := p.tasks[split]
	p.mu.Unlock()
	if t == nil {
		return
	}

	// Simulate consuming the quantum, with a little jitter so runs vary.
	jitter := time.Duration(rand.Int63n(int64(t.quantumNanos)/4 + 1))
	time.Sleep(time.Duration(t.quantumNanos) - jitter)

	split.Charge(t.quantumNanos)
	t.remainingQuanta--

	if t.remainingQuanta <= 0 {
		p.mu.Lock()
		p.retired++
		delete(p.tasks, split)
		p.mu.Unlock()
		log.Printf("[demo] split %s retired", split.ID)
		return
	}

	if err := p.q.Offer(split); err != nil {
		log.Printf("[demo] re-offer split %s: %v", split.ID, err)
	}
}
