// Package store persists personas as a single JSON array document on any
// afs supported location (file://, mem://, gs://, s3://).
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/simupersona/genai/errs"
	"github.com/viant/simupersona/genai/persona"
	"github.com/viant/simupersona/internal/log"
)

// DefaultURL is the persona document location used when none is configured.
const DefaultURL = "file://localhost/data/personas.json"

// Store is a persona repository guarded by an in-process mutex.
type Store struct {
	fs  afs.Service
	URL string
	mux sync.Mutex
	now func() time.Time
}

// New creates a store for URL.
func New(URL string) *Store {
	if URL == "" {
		URL = DefaultURL
	}
	return &Store{fs: afs.New(), URL: URL, now: time.Now}
}

// Init creates an empty document when none exists.
func (s *Store) Init(ctx context.Context) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	exists, err := s.fs.Exists(ctx, s.URL)
	if err != nil {
		return fmt.Errorf("failed to check %v: %w", s.URL, err)
	}
	if exists {
		return nil
	}
	return s.save(ctx, []*persona.Persona{})
}

func (s *Store) load(ctx context.Context) ([]*persona.Persona, error) {
	exists, err := s.fs.Exists(ctx, s.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to check %v: %w", s.URL, err)
	}
	if !exists {
		return []*persona.Persona{}, nil
	}
	data, err := s.fs.DownloadWithURL(ctx, s.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read %v: %w", s.URL, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []*persona.Persona{}, nil
	}
	var items []*persona.Persona
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %v: %w", s.URL, err)
	}
	ret := make([]*persona.Persona, 0, len(items))
	for _, item := range items {
		if item != nil {
			ret = append(ret, item)
		}
	}
	return ret, nil
}

// readable drops records failing validation. Writers keep them in the
// document; only reads hide them.
func (s *Store) readable(items []*persona.Persona) []*persona.Persona {
	ret := make([]*persona.Persona, 0, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			log.Warnf("skipping persona %v in %v: %v", item.ID, s.URL, err)
			continue
		}
		ret = append(ret, item)
	}
	return ret
}

func (s *Store) save(ctx context.Context, items []*persona.Persona) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode personas: %w", err)
	}
	if err := s.fs.Upload(ctx, s.URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write %v: %w", s.URL, err)
	}
	return nil
}

func indexOf(items []*persona.Persona, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// indexOfValid is indexOf for writers: a record hidden from reads is
// reported as missing.
func indexOfValid(items []*persona.Persona, id string) int {
	idx := indexOf(items, id)
	if idx == -1 || items[idx].Validate() != nil {
		return -1
	}
	return idx
}

func notFound(id string) error {
	return &errs.NotFoundError{Kind: "persona", ID: id}
}
