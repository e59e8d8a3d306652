// Package capture persists (ground truth state, camera frame) pairs for
// classifier dataset collection. It watches the pipeline from the outside:
// dropping it entirely changes nothing about the published stop decision.
package capture

import (
	"fmt"
	"log"
	"sync"

	"lintang/lightwatch/pkg/concurrent"
	"lintang/lightwatch/pkg/datastructure"

	"github.com/cockroachdb/pebble"
)

// Stats are the per color sample counts, served on the capture stats API.
type Stats struct {
	Red    uint64 `json:"red"`
	Yellow uint64 `json:"yellow"`
	Green  uint64 `json:"green"`
	Total  uint64 `json:"total"`
}

type saveJob struct {
	key    string
	record Record
}

// Store writes captured samples to pebble, zstd compressed, keyed
// state/sequence. Writes go through a small bounded worker pool so a slow
// disk can only ever drop capture samples, never delay frame processing.
type Store struct {
	db   *pebble.DB
	pool *concurrent.WorkerPool[saveJob, error]

	mu      sync.Mutex
	counts  map[datastructure.LightState]uint64
	stopped bool

	drainOnce sync.Once
	closeOnce sync.Once
}

func NewStore(db *pebble.DB) *Store {
	s := &Store{
		db:     db,
		counts: make(map[datastructure.LightState]uint64),
		pool:   concurrent.NewWorkerPool[saveJob, error](2, 16),
	}
	s.pool.Start(s.save)
	return s
}

// Observe implements detector.CaptureObserver. Unknown states carry no label
// worth training on and are skipped, mirroring the colors the dataset
// directories were organized by.
func (s *Store) Observe(state datastructure.LightState, lightPosition datastructure.Point, image []byte) {
	if state == datastructure.StateUnknown {
		return
	}

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.counts[state]++
	seq := s.counts[state]
	s.mu.Unlock()

	job := saveJob{
		key: fmt.Sprintf("%s/%09d", state, seq),
		record: Record{
			State:  state.String(),
			LightX: lightPosition.X,
			LightY: lightPosition.Y,
			Frame:  image,
		},
	}
	if !s.pool.TryAddJob(job) {
		log.Printf("capture queue full, dropping %s sample %d", state, seq)
		s.mu.Lock()
		s.counts[state]--
		s.mu.Unlock()
	}
}

func (s *Store) save(job saveJob) error {
	val, err := Encode(job.record)
	if err != nil {
		log.Printf("capture encode failed: %v", err)
		return err
	}
	if err := s.db.Set([]byte(job.key), val, pebble.Sync); err != nil {
		log.Printf("capture write failed: %v", err)
		return err
	}
	return nil
}

// Get reads one stored sample back, mainly for tests and export tooling.
func (s *Store) Get(state datastructure.LightState, seq uint64) (Record, error) {
	key := fmt.Sprintf("%s/%09d", state, seq)
	val, closer, err := s.db.Get([]byte(key))
	if err != nil {
		return Record{}, err
	}
	defer closer.Close()

	return Decode(val)
}

func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	red := s.counts[datastructure.StateRed]
	yellow := s.counts[datastructure.StateYellow]
	green := s.counts[datastructure.StateGreen]
	return Stats{
		Red:    red,
		Yellow: yellow,
		Green:  green,
		Total:  red + yellow + green,
	}
}

// Drain stops accepting samples and blocks until pending writes hit disk.
func (s *Store) Drain() {
	s.drainOnce.Do(func() {
		s.mu.Lock()
		s.stopped = true
		s.mu.Unlock()
		s.pool.Close()
		s.pool.Wait()
	})
}

// Close drains pending writes and closes the DB.
func (s *Store) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.Drain()
		err = s.db.Close()
	})
	return err
}
