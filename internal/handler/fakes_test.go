package handler_test

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/repository"
	"github.com/iliyamo/movie-catalog/internal/utils"
)

// fakeUserStore implements handler.UserStore in memory.
type fakeUserStore struct {
	mu     sync.Mutex
	users  map[string]model.User
	nextID uint64
	err    error // forced error for failure cases
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]model.User)}
}

func (s *fakeUserStore) Create(_ context.Context, username, password string, cost int) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	if _, exists := s.users[username]; exists {
		return 0, repository.ErrUserExists
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	s.nextID++
	s.users[username] = model.User{ID: s.nextID, Username: username, PasswordHash: hash}
	return s.nextID, nil
}

func (s *fakeUserStore) GetByUsername(_ context.Context, username string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return model.User{}, s.err
	}
	u, exists := s.users[username]
	if !exists {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

// fakeMovieStore implements handler.MovieStore in memory and records which
// methods were called so tests can assert the store was never reached.
type fakeMovieStore struct {
	mu     sync.Mutex
	movies map[uint64]model.Movie
	nextID uint64
	calls  []string
	err    error
}

func newFakeMovieStore() *fakeMovieStore {
	return &fakeMovieStore{movies: make(map[uint64]model.Movie)}
}

func (s *fakeMovieStore) record(call string) {
	s.calls = append(s.calls, call)
}

func (s *fakeMovieStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func (s *fakeMovieStore) Create(_ context.Context, m *model.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("create")
	if s.err != nil {
		return s.err
	}
	s.nextID++
	m.ID = s.nextID
	s.movies[m.ID] = *m
	return nil
}

func (s *fakeMovieStore) List(_ context.Context) ([]model.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("list")
	if s.err != nil {
		return nil, s.err
	}
	out := make([]model.Movie, 0, len(s.movies))
	for _, m := range s.movies {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeMovieStore) Update(_ context.Context, id uint64, p repository.MoviePatch) (model.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("update")
	if s.err != nil {
		return model.Movie{}, s.err
	}
	m, exists := s.movies[id]
	if !exists {
		return model.Movie{}, repository.ErrMovieNotFound
	}
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Poster != nil {
		m.Poster = *p.Poster
	}
	if p.Video != nil {
		m.Video = *p.Video
	}
	if p.Category != nil {
		m.Category = *p.Category
	}
	if p.Rating != nil {
		m.Rating = *p.Rating
	}
	if p.Episodes != nil {
		m.Episodes = *p.Episodes
	}
	if p.Ads != nil {
		m.Ads = *p.Ads
	}
	s.movies[id] = m
	return m, nil
}

func (s *fakeMovieStore) Delete(_ context.Context, id uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("delete")
	if s.err != nil {
		return false, s.err
	}
	_, exists := s.movies[id]
	delete(s.movies, id)
	return exists, nil
}
