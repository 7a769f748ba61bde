package game

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/quasilyte/gdata"
)

const progressKey = "progress"

// Progress is what survives between runs.
type Progress struct {
	BestLevel int `json:"bestLevel"`
	Deaths    int `json:"deaths"`
	Wins      int `json:"wins"`
}

// Record folds one finished run on levelIndex into p.
func (p Progress) Record(levelIndex int, res Result, won bool) Progress {
	p.Deaths += res.Deaths
	if won {
		p.Wins++
		p.BestLevel = max(p.BestLevel, levelIndex)
	}
	return p
}

type ProgressStore interface {
	Load() (Progress, error)
	Save(Progress) error
}

// GDataStore keeps progress in the per-user app data directory.
type GDataStore struct {
	m *gdata.Manager
}

func OpenGDataStore(appName string) (*GDataStore, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("open save data: %w", err)
	}
	return &GDataStore{m: m}, nil
}

// Load returns zero progress when nothing was saved yet.
func (s *GDataStore) Load() (Progress, error) {
	data, err := s.m.LoadItem(progressKey)
	if err != nil {
		return Progress{}, fmt.Errorf("load progress: %w", err)
	}
	return decodeProgress(data)
}

func (s *GDataStore) Save(p Progress) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	if err := s.m.SaveItem(progressKey, data); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// Reset clears saved progress.
func (s *GDataStore) Reset() error {
	if err := s.m.SaveItem(progressKey, nil); err != nil {
		return fmt.Errorf("clear progress: %w", err)
	}
	return nil
}

func decodeProgress(data []byte) (Progress, error) {
	if len(data) == 0 {
		return Progress{}, nil
	}
	var p Progress
	if err := json.Unmarshal(data, &p); err != nil {
		return Progress{}, fmt.Errorf("parse progress: %w", err)
	}
	return p, nil
}

// MemoryStore is a ProgressStore for tests and runs that should not touch
// the disk. It stores the encoded form so it behaves like GDataStore.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

func (s *MemoryStore) Load() (Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return decodeProgress(s.data)
}

func (s *MemoryStore) Save(p Progress) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

// RecordRun loads progress, records the run and saves it back.
func RecordRun(store ProgressStore, levelIndex int, res Result, won bool) (Progress, error) {
	p, err := store.Load()
	if err != nil {
		return Progress{}, err
	}
	p = p.Record(levelIndex, res, won)
	if err := store.Save(p); err != nil {
		return Progress{}, err
	}
	return p, nil
}
