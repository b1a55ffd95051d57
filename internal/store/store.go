// Package store holds all mutable chat state for one process: the user and
// message collections, the theme catalog, and the active-theme pointer.
// Exactly one Store is constructed at startup and handed to the repositories;
// nothing reads this state through package-level variables.
package store

import (
	"sync"
	"time"

	"thaichat/internal/models"
	"thaichat/internal/seed"

	"github.com/google/uuid"
)

// Store is the process-wide owner of chat state. An RWMutex guards every
// collection because Fiber serves requests concurrently. State is not
// durable: a restart reconstructs the store from the seed fixtures, and
// multiple processes will diverge (see the health endpoint's instance id).
type Store struct {
	mu sync.RWMutex

	users    []models.User
	messages []models.Message
	themes   []models.Theme

	activeThemeID int64
	lastModified  time.Time
	instanceID    string
}

// New constructs a store seeded once with the demo fixtures.
func New() *Store {
	return &Store{
		users:         seed.Users(),
		messages:      seed.Messages(),
		themes:        seed.Themes(),
		activeThemeID: seed.DefaultThemeID,
		lastModified:  time.Now().UTC(),
		instanceID:    uuid.NewString(),
	}
}

// InstanceID identifies this process's store. Divergent instances (the
// in-memory model offers no cross-process consistency) can be told apart
// by this id in health output.
func (s *Store) InstanceID() string {
	return s.instanceID
}

// LastModified returns the time of the most recent mutation.
func (s *Store) LastModified() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastModified
}

// touch records a mutation. Callers must hold the write lock.
func (s *Store) touch() {
	s.lastModified = time.Now().UTC()
}

// UserByID returns a copy of the user with the given id.
func (s *Store) UserByID(id int64) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		if s.users[i].ID == id {
			return s.users[i], true
		}
	}
	return models.User{}, false
}

// FindUser returns a copy of the first user matching the predicate.
func (s *Store) FindUser(match func(*models.User) bool) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		if match(&s.users[i]) {
			return s.users[i], true
		}
	}
	return models.User{}, false
}

// AddUser appends a user to the collection. The username and email
// uniqueness invariant is re-checked under the write lock, so concurrent
// signups for the same identity cannot both land; AddUser reports false
// and leaves the collection untouched when either is already taken.
// A zero ID is replaced with a fresh unique one (millisecond epoch,
// bumped past any collision).
func (s *Store) AddUser(u *models.User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].Username == u.Username || s.users[i].Email == u.Email {
			return false
		}
	}

	if u.ID == 0 {
		id := time.Now().UnixMilli()
		for s.userIDExists(id) {
			id++
		}
		u.ID = id
	}
	s.users = append(s.users, *u)
	s.touch()
	return true
}

func (s *Store) userIDExists(id int64) bool {
	for i := range s.users {
		if s.users[i].ID == id {
			return true
		}
	}
	return false
}

// ReplaceUser overwrites the stored user with the same id.
func (s *Store) ReplaceUser(u models.User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == u.ID {
			s.users[i] = u
			s.touch()
			return true
		}
	}
	return false
}

// CountUsers returns the current size of the user collection.
func (s *Store) CountUsers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// MessagesTail returns a copy of the most recent limit messages in
// creation order (oldest of the returned window first).
func (s *Store) MessagesTail(limit int) []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := 0
	if limit > 0 && len(s.messages) > limit {
		start = len(s.messages) - limit
	}
	tail := make([]models.Message, len(s.messages)-start)
	copy(tail, s.messages[start:])
	return tail
}

// MessageByID returns a copy of the message with the given id.
func (s *Store) MessageByID(id int64) (models.Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.messages {
		if s.messages[i].ID == id {
			return s.messages[i], true
		}
	}
	return models.Message{}, false
}

// AddMessage appends a message. A zero ID is replaced with max existing
// id + 1, rechecked against the collection so ids never collide.
func (s *Store) AddMessage(m *models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m.ID == 0 {
		var maxID int64
		for i := range s.messages {
			if s.messages[i].ID > maxID {
				maxID = s.messages[i].ID
			}
		}
		id := maxID + 1
		for s.messageIDExists(id) {
			id++
		}
		m.ID = id
	}
	s.messages = append(s.messages, *m)
	s.touch()
}

func (s *Store) messageIDExists(id int64) bool {
	for i := range s.messages {
		if s.messages[i].ID == id {
			return true
		}
	}
	return false
}

// ReplaceMessage overwrites the stored message with the same id.
func (s *Store) ReplaceMessage(m models.Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.messages {
		if s.messages[i].ID == m.ID {
			s.messages[i] = m
			s.touch()
			return true
		}
	}
	return false
}

// RemoveMessage deletes the message with the given id.
func (s *Store) RemoveMessage(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages = append(s.messages[:i], s.messages[i+1:]...)
			s.touch()
			return true
		}
	}
	return false
}

// Themes returns a copy of the static theme catalog.
func (s *Store) Themes() []models.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	themes := make([]models.Theme, len(s.themes))
	copy(themes, s.themes)
	return themes
}

// ActiveTheme returns the currently selected theme, falling back to the
// first catalog entry if the active pointer does not resolve.
func (s *Store) ActiveTheme() models.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.themes {
		if s.themes[i].ID == s.activeThemeID {
			return s.themes[i]
		}
	}
	return s.themes[0]
}

// FindTheme resolves a theme by id first, then by name.
func (s *Store) FindTheme(id int64, name string) (models.Theme, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.themes {
		if s.themes[i].ID == id {
			return s.themes[i], true
		}
	}
	if name != "" {
		for i := range s.themes {
			if s.themes[i].Name == name {
				return s.themes[i], true
			}
		}
	}
	return models.Theme{}, false
}

// SetActiveTheme switches the active pointer. It fails when the id does
// not resolve to a cataloged theme, leaving the previous selection intact.
func (s *Store) SetActiveTheme(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.themes {
		if s.themes[i].ID == id {
			s.activeThemeID = id
			s.touch()
			return true
		}
	}
	return false
}
