package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shivanand-hulikatti/event-reservations/internal/model"
	"github.com/Shivanand-hulikatti/event-reservations/internal/repository"
)

func seed(t *testing.T, s *Store, maxParticipants int64) model.Event {
	t.Helper()
	ctx := context.Background()
	et, err := s.EventTypes().Create(ctx, "Concert")
	require.NoError(t, err)
	org, err := s.Organizers().Create(ctx, "Acme", nil)
	require.NoError(t, err)
	e, err := s.Events().Create(ctx, model.Event{
		EventTypeID: et.ID, OrganizerID: org.ID, Name: "Show1", MaxParticipants: maxParticipants,
	})
	require.NoError(t, err)
	return e
}

func TestEvents_MissingReference(t *testing.T) {
	s := New()
	_, err := s.Events().Create(context.Background(), model.Event{EventTypeID: 1, OrganizerID: 1, Name: "X"})
	assert.ErrorIs(t, err, repository.ErrMissingReference)
}

func TestOrganizers_GeneratedIDSkipsTaken(t *testing.T) {
	s := New()
	ctx := context.Background()

	first, err := s.Organizers().Create(ctx, "First", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)

	_, err = s.Organizers().Create(ctx, "Second", ptr(int64(2)))
	require.NoError(t, err)

	third, err := s.Organizers().Create(ctx, "Third", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), third.ID)
}

func TestOrganizers_SequenceNeverMovesBackwards(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.Organizers().Create(ctx, "High", ptr(int64(10)))
	require.NoError(t, err)
	require.NoError(t, s.Organizers().Delete(ctx, 10))
	_, err = s.Organizers().Create(ctx, "Low", ptr(int64(3)))
	require.NoError(t, err)

	next, err := s.Organizers().Create(ctx, "Generated", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(11), next.ID)
}

func TestDeleteGuards(t *testing.T) {
	s := New()
	ctx := context.Background()
	e := seed(t, s, 1)
	u, err := s.Users().Create(ctx, model.User{Username: "alice"})
	require.NoError(t, err)
	_, err = s.Reservations().Reserve(ctx, u.ID, e.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, s.Users().Delete(ctx, u.ID), repository.ErrHasDependents)
	assert.ErrorIs(t, s.Events().Delete(ctx, e.ID), repository.ErrHasDependents)
	assert.ErrorIs(t, s.Organizers().Delete(ctx, e.OrganizerID), repository.ErrHasDependents)
	assert.ErrorIs(t, s.EventTypes().Delete(ctx, e.EventTypeID), repository.ErrHasDependents)
}

func TestReserve_Concurrent(t *testing.T) {
	const (
		capacity = 3
		attempts = 25
	)
	s := New()
	ctx := context.Background()
	e := seed(t, s, capacity)

	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		u, err := s.Users().Create(ctx, model.User{Username: fmt.Sprintf("user%d", i)})
		require.NoError(t, err)
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Reservations().Reserve(ctx, u.ID, e.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok int
	for err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, repository.ErrEventFull)
	}
	assert.Equal(t, capacity, ok)
}

func ptr[T any](v T) *T { return &v }
