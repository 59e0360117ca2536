package field

import (
	"runtime"
	"sync"
)

// parallelThreshold is the minimum row count to split across workers.
// Below this, single-threaded is faster due to goroutine overhead.
const parallelThreshold = 32

// rowChunk represents a range of rows for a worker to process.
type rowChunk struct {
	start, end int
}

// Simulator regenerates a texture with a pool of persistent workers.
type Simulator struct {
	numWorkers int

	// Per-frame job, read by workers between Run and the done signals
	dst    *Texture
	params Params

	workChan chan rowChunk  // sends work to workers
	doneChan chan struct{}  // workers signal completion
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks active workers
	running  bool
}

// NewSimulator creates a simulator with n workers (0 = GOMAXPROCS).
func NewSimulator(n int) *Simulator {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	return &Simulator{numWorkers: n}
}

// Workers returns the worker count.
func (s *Simulator) Workers() int {
	return s.numWorkers
}

// start launches the worker goroutines.
func (s *Simulator) start() {
	if s.running {
		return
	}

	s.workChan = make(chan rowChunk, s.numWorkers)
	s.doneChan = make(chan struct{}, s.numWorkers)
	s.stopChan = make(chan struct{})
	s.running = true

	for i := 0; i < s.numWorkers; i++ {
		s.wg.Add(1)
		go s.worker()
	}
}

// worker runs in a goroutine, processing chunks until stopped.
func (s *Simulator) worker() {
	defer s.wg.Done()

	for {
		select {
		case <-s.stopChan:
			return
		case chunk, ok := <-s.workChan:
			if !ok {
				return
			}
			SimulateRows(s.dst, s.params, chunk.start, chunk.end)
			s.doneChan <- struct{}{}
		}
	}
}

// Run regenerates dst and returns once every row is written.
func (s *Simulator) Run(dst *Texture, p Params) {
	if s.numWorkers == 1 || dst.Size < parallelThreshold {
		Simulate(dst, p)
		return
	}
	s.start()

	s.dst = dst
	s.params = p

	rowsPerChunk := (dst.Size + s.numWorkers - 1) / s.numWorkers
	chunks := 0
	for start := 0; start < dst.Size; start += rowsPerChunk {
		end := min(start+rowsPerChunk, dst.Size)
		s.workChan <- rowChunk{start: start, end: end}
		chunks++
	}
	for i := 0; i < chunks; i++ {
		<-s.doneChan
	}

	s.dst = nil
}

// Stop signals all workers to exit and waits for them.
func (s *Simulator) Stop() {
	if !s.running {
		return
	}

	close(s.stopChan)
	s.wg.Wait()
	close(s.workChan)
	close(s.doneChan)
	s.running = false
}
