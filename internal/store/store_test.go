package store

import (
	"sync"
	"testing"

	"thaichat/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeedsFixtures(t *testing.T) {
	s := New()

	assert.Equal(t, 3, s.CountUsers())
	assert.Len(t, s.MessagesTail(0), 3)
	assert.Len(t, s.Themes(), 4)
	assert.Equal(t, int64(1), s.ActiveTheme().ID)
	assert.NotEmpty(t, s.InstanceID())
}

func TestAddUserAssignsUniqueID(t *testing.T) {
	s := New()

	a := &models.User{Username: "a", Email: "a@example.com"}
	b := &models.User{Username: "b", Email: "b@example.com"}
	s.AddUser(a)
	s.AddUser(b)

	assert.NotZero(t, a.ID)
	assert.NotZero(t, b.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 5, s.CountUsers())

	got, ok := s.UserByID(a.ID)
	require.True(t, ok)
	assert.Equal(t, "a", got.Username)
}

func TestAddUserRejectsDuplicateIdentity(t *testing.T) {
	s := New()

	assert.False(t, s.AddUser(&models.User{Username: "panida", Email: "fresh@example.com"}))
	assert.False(t, s.AddUser(&models.User{Username: "fresh", Email: "panida@gmail.com"}))
	assert.Equal(t, 3, s.CountUsers())
}

func TestAddUserConcurrentSameIdentity(t *testing.T) {
	s := New()

	const attempts = 8
	results := make(chan bool, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- s.AddUser(&models.User{Username: "racer", Email: "racer@example.com"})
		}()
	}
	wg.Wait()
	close(results)

	wins := 0
	for ok := range results {
		if ok {
			wins++
		}
	}
	assert.Equal(t, 1, wins, "exactly one concurrent signup may land")
	assert.Equal(t, 4, s.CountUsers())
}

func TestAddUserKeepsExplicitID(t *testing.T) {
	s := New()

	u := &models.User{ID: 777, Username: "x", Email: "x@example.com"}
	s.AddUser(u)
	assert.Equal(t, int64(777), u.ID)
}

func TestMessagesTail(t *testing.T) {
	s := New()

	full := s.MessagesTail(0)
	require.Len(t, full, 3)

	tail := s.MessagesTail(2)
	require.Len(t, tail, 2)
	assert.Equal(t, full[1].ID, tail[0].ID)
	assert.Equal(t, full[2].ID, tail[1].ID)

	// A limit beyond the collection returns everything
	assert.Len(t, s.MessagesTail(100), 3)
}

func TestAddMessageIDsNeverCollide(t *testing.T) {
	s := New()

	seen := map[int64]bool{1: true, 2: true, 3: true}
	for i := 0; i < 50; i++ {
		m := &models.Message{Content: "x", Username: "u", UserID: 1}
		s.AddMessage(m)
		require.False(t, seen[m.ID], "id %d reused", m.ID)
		seen[m.ID] = true
	}
}

func TestRemoveMessage(t *testing.T) {
	s := New()

	assert.True(t, s.RemoveMessage(2))
	assert.False(t, s.RemoveMessage(2))

	_, ok := s.MessageByID(2)
	assert.False(t, ok)
	assert.Len(t, s.MessagesTail(0), 2)
}

func TestFindTheme(t *testing.T) {
	s := New()

	byID, ok := s.FindTheme(2, "")
	require.True(t, ok)
	assert.Equal(t, "Sunset Orange", byID.Name)

	byName, ok := s.FindTheme(0, "Forest Green")
	require.True(t, ok)
	assert.Equal(t, int64(3), byName.ID)

	_, ok = s.FindTheme(0, "nonexistent")
	assert.False(t, ok)
}

func TestSetActiveTheme(t *testing.T) {
	s := New()

	assert.True(t, s.SetActiveTheme(2))
	assert.Equal(t, int64(2), s.ActiveTheme().ID)

	// An uncataloged id fails and leaves the selection intact
	assert.False(t, s.SetActiveTheme(99))
	assert.Equal(t, int64(2), s.ActiveTheme().ID)
}

func TestMutationsAdvanceLastModified(t *testing.T) {
	s := New()
	before := s.LastModified()

	s.AddMessage(&models.Message{Content: "x", Username: "u", UserID: 1})
	assert.False(t, s.LastModified().Before(before))
}
