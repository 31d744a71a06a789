package dataset

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ErrUnavailable is returned by Store.GetRecords after the one-time load
// has failed. The failure is terminal for the process; callers should
// render an empty result rather than retry.
var ErrUnavailable = errors.New("dataset unavailable")

// Store memoizes the full record set. The dataset is loaded at most once
// per process: concurrent first callers share a single in-flight load,
// and both success and failure are cached indefinitely.
type Store struct {
	loader Loader

	group singleflight.Group
	mu    sync.RWMutex

	loaded  bool
	records []DisasterRecord
	loadErr error
}

func NewStore(loader Loader) *Store {
	return &Store{loader: loader}
}

// GetRecords returns the cached record set, loading it on first use.
// The returned slice is shared; callers must treat it as read-only.
func (s *Store) GetRecords(ctx context.Context) ([]DisasterRecord, error) {
	s.mu.RLock()
	if s.loaded {
		defer s.mu.RUnlock()
		if s.loadErr != nil {
			return nil, s.loadErr
		}
		return s.records, nil
	}
	s.mu.RUnlock()

	// singleflight collapses concurrent first loads into one fetch; a
	// caller torn down mid-load just abandons the shared result. The
	// load itself runs detached from any single caller's context.
	ch := s.group.DoChan("load", func() (any, error) {
		s.mu.RLock()
		loaded, cached, cachedErr := s.loaded, s.records, s.loadErr
		s.mu.RUnlock()
		if loaded {
			return cached, cachedErr
		}
		records, err := s.loader.Load(context.Background())
		s.commit(records, err)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return records, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]DisasterRecord), nil
	}
}

func (s *Store) commit(records []DisasterRecord, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return
	}
	s.loaded = true
	if err != nil {
		log.Printf("Dataset load failed (terminal): %v", err)
		s.loadErr = fmt.Errorf("%w: %v", ErrUnavailable, err)
		return
	}
	log.Printf("Loaded %d disaster records", len(records))
	s.records = records
}
