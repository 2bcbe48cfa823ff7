// Package memory is an in-process document store used for local runs and tests.
package memory

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/d3coo/car-rental-fastapi-vite/internal/domain"
	"github.com/d3coo/car-rental-fastapi-vite/internal/infra/docstore"
)

// Store хранит документы в памяти. Документы копируются на входе и выходе.
type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string]docstore.Document
}

var _ docstore.Store = (*Store)(nil)

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{collections: make(map[string]map[string]docstore.Document)}
}

// Get возвращает копию документа
func (s *Store) Get(_ context.Context, collection, id string) (docstore.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.collections[collection][id]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", docstore.ErrNotFound, collection, id)
	}
	return copyDocument(doc), nil
}

// List возвращает все документы коллекции, упорядоченные по id
func (s *Store) List(_ context.Context, collection string) ([]docstore.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := s.collections[collection]
	out := make([]docstore.Snapshot, 0, len(docs))
	for id, doc := range docs {
		out = append(out, docstore.Snapshot{ID: id, Data: copyDocument(doc)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Set создает или полностью заменяет документ
func (s *Store) Set(_ context.Context, collection, id string, doc docstore.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string]docstore.Document)
	}
	s.collections[collection][id] = copyDocument(doc)
	return nil
}

// Delete удаляет документ
func (s *Store) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[collection][id]; !ok {
		return fmt.Errorf("%w: %s/%s", docstore.ErrNotFound, collection, id)
	}
	delete(s.collections[collection], id)
	return nil
}

// LoadSeedFile загружает документы из YAML файла
func (s *Store) LoadSeedFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: open seed file: %v", docstore.ErrStore, err)
	}
	defer f.Close()
	return s.LoadSeed(f)
}

// LoadSeed загружает документы в формате
//
//	Cars:
//	  abcd1234:
//	    make: Toyota
//
// Ссылки и координаты задаются маркерами {__ref__: Users/u1} и {__geo__: [lat, lng]}.
func (s *Store) LoadSeed(r io.Reader) (int, error) {
	var seed map[string]map[string]map[string]any
	if err := yaml.NewDecoder(r).Decode(&seed); err != nil {
		if err == io.EOF {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: parse seed: %v", docstore.ErrDecode, err)
	}

	count := 0
	for collection, docs := range seed {
		for id, raw := range docs {
			doc, _ := docstore.FromPortable(raw).(map[string]any)
			if err := s.Set(context.Background(), collection, id, doc); err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}

func copyDocument(doc docstore.Document) docstore.Document {
	return docstore.Document(domain.CloneMap(doc))
}
