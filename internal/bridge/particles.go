package bridge

import (
	"github.com/tomz197/rockstorm/internal/object"
)

const (
	requestBuffer = 64
	resultBuffer  = 64
)

// Particles feeds explosion requests to a generator goroutine and hands the
// finished batches back to the frame loop.
//
// Request never blocks. Requests the worker cannot accept yet are kept in a
// local backlog and retried on every Request and Poll.
type Particles struct {
	requests    chan object.SpawnRequest
	results     chan []object.ParticleInit
	backlog     []object.SpawnRequest
	outstanding int
	closed      bool
}

// NewParticles starts the generator worker. Call Close to stop it.
func NewParticles() *Particles {
	p := &Particles{
		requests: make(chan object.SpawnRequest, requestBuffer),
		results:  make(chan []object.ParticleInit, resultBuffer),
	}
	go generate(p.requests, p.results)
	return p
}

func generate(requests <-chan object.SpawnRequest, results chan<- []object.ParticleInit) {
	defer close(results)
	for req := range requests {
		results <- object.GenerateBurst(req)
	}
}

// Request queues one burst.
func (p *Particles) Request(req object.SpawnRequest) {
	if p.closed {
		return
	}
	p.backlog = append(p.backlog, req)
	p.outstanding++
	p.flush()
}

func (p *Particles) flush() {
	sent := 0
loop:
	for _, req := range p.backlog {
		select {
		case p.requests <- req:
			sent++
		default:
			break loop
		}
	}
	if sent > 0 {
		n := copy(p.backlog, p.backlog[sent:])
		p.backlog = p.backlog[:n]
	}
}

// Poll merges every finished batch into ps in arrival order and returns the
// number of batches merged.
func (p *Particles) Poll(ps *object.ParticleSystem) int {
	if !p.closed {
		p.flush()
	}
	merged := 0
	for {
		select {
		case batch, ok := <-p.results:
			if !ok {
				return merged
			}
			ps.SpawnBatch(batch)
			p.outstanding--
			merged++
		default:
			return merged
		}
	}
}

// State is Pending while any request has not come back as a batch.
func (p *Particles) State() State {
	if p.outstanding > 0 {
		return Pending
	}
	return Idle
}

// Close stops the worker once it has drained the requests it already holds.
// Backlogged requests are dropped.
func (p *Particles) Close() {
	if p.closed {
		return
	}
	p.closed = true
	p.backlog = nil
	close(p.requests)
}
