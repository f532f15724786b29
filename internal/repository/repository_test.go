package repository_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shivanand-hulikatti/event-reservations/internal/model"
	"github.com/Shivanand-hulikatti/event-reservations/internal/repository"
	"github.com/Shivanand-hulikatti/event-reservations/internal/testutil"
)

type repos struct {
	users        *repository.UserRepository
	organizers   *repository.OrganizerRepository
	eventTypes   *repository.EventTypeRepository
	events       *repository.EventRepository
	reservations *repository.ReservationRepository
}

func newRepos(t *testing.T) repos {
	pool := testutil.NewTestPool(t)
	return repos{
		users:        repository.NewUserRepository(pool),
		organizers:   repository.NewOrganizerRepository(pool),
		eventTypes:   repository.NewEventTypeRepository(pool),
		events:       repository.NewEventRepository(pool),
		reservations: repository.NewReservationRepository(pool),
	}
}

func seedEvent(t *testing.T, r repos, maxParticipants int64) model.Event {
	t.Helper()
	ctx := context.Background()
	et, err := r.eventTypes.Create(ctx, "Concert")
	require.NoError(t, err)
	org, err := r.organizers.Create(ctx, "Acme", nil)
	require.NoError(t, err)
	e, err := r.events.Create(ctx, model.Event{
		EventTypeID:       et.ID,
		OrganizerID:       org.ID,
		Name:              "Show1",
		Price:             10,
		DateTime:          1_900_000_000_000,
		LocationLatitude:  40,
		LocationLongitude: -70,
		MaxParticipants:   maxParticipants,
	})
	require.NoError(t, err)
	return e
}

func TestUserRepository(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	alice, err := r.users.Create(ctx, model.User{Username: "alice", Firstname: "A", Lastname: "B"})
	require.NoError(t, err)
	assert.NotZero(t, alice.ID)

	_, err = r.users.Create(ctx, model.User{Username: "alice", Firstname: "C", Lastname: "D"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	got, err := r.users.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice, got)

	alice.Lastname = "Smith"
	_, err = r.users.Update(ctx, alice)
	require.NoError(t, err)
	_, err = r.users.Update(ctx, model.User{ID: alice.ID + 100, Username: "x1", Firstname: "x", Lastname: "y"})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	users, err := r.users.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.User{alice}, users)

	ok, err := r.users.Exists(ctx, alice.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, r.users.Delete(ctx, alice.ID))
	assert.ErrorIs(t, r.users.Delete(ctx, alice.ID), repository.ErrNotFound)
	_, err = r.users.GetByID(ctx, alice.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestOrganizerRepository_ExplicitIDAdvancesSequence(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	acme, err := r.organizers.Create(ctx, "Acme", ptr(int64(5)))
	require.NoError(t, err)
	assert.Equal(t, int64(5), acme.ID)

	_, err = r.organizers.Create(ctx, "Other", ptr(int64(5)))
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	next, err := r.organizers.Create(ctx, "Globex", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(6), next.ID)
}

func TestOrganizerRepository_SequenceNeverMovesBackwards(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	_, err := r.organizers.Create(ctx, "High", ptr(int64(10)))
	require.NoError(t, err)
	require.NoError(t, r.organizers.Delete(ctx, 10))

	_, err = r.organizers.Create(ctx, "Low", ptr(int64(3)))
	require.NoError(t, err)

	next, err := r.organizers.Create(ctx, "Generated", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(11), next.ID)
}

func TestDeleteGuards(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	e := seedEvent(t, r, 2)
	u, err := r.users.Create(ctx, model.User{Username: "alice", Firstname: "A", Lastname: "B"})
	require.NoError(t, err)
	res, err := r.reservations.Reserve(ctx, u.ID, e.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, r.organizers.Delete(ctx, e.OrganizerID), repository.ErrHasDependents)
	assert.ErrorIs(t, r.eventTypes.Delete(ctx, e.EventTypeID), repository.ErrHasDependents)
	assert.ErrorIs(t, r.events.Delete(ctx, e.ID), repository.ErrHasDependents)
	assert.ErrorIs(t, r.users.Delete(ctx, u.ID), repository.ErrHasDependents)

	require.NoError(t, r.reservations.Delete(ctx, res.ID))
	require.NoError(t, r.events.Delete(ctx, e.ID))
	require.NoError(t, r.organizers.Delete(ctx, e.OrganizerID))
	require.NoError(t, r.eventTypes.Delete(ctx, e.EventTypeID))
	require.NoError(t, r.users.Delete(ctx, u.ID))
}

func TestEventRepository_MissingReference(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	e := seedEvent(t, r, 1)

	bad := e
	bad.OrganizerID = e.OrganizerID + 100
	_, err := r.events.Create(ctx, bad)
	assert.ErrorIs(t, err, repository.ErrMissingReference)
	_, err = r.events.Update(ctx, bad)
	assert.ErrorIs(t, err, repository.ErrMissingReference)
}

func TestEventRepository_ListFilters(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	e := seedEvent(t, r, 3)
	u, err := r.users.Create(ctx, model.User{Username: "alice", Firstname: "A", Lastname: "B"})
	require.NoError(t, err)
	_, err = r.reservations.Reserve(ctx, u.ID, e.ID)
	require.NoError(t, err)

	all, err := r.events.List(ctx, model.EventFilter{})
	require.NoError(t, err)
	assert.Equal(t, []model.Event{e}, all)

	byUser, err := r.events.List(ctx, model.EventFilter{UserIDs: []int64{u.ID}, OrganizerID: &e.OrganizerID})
	require.NoError(t, err)
	assert.Equal(t, []model.Event{e}, byUser)

	other := e.OrganizerID + 1
	none, err := r.events.List(ctx, model.EventFilter{OrganizerID: &other})
	require.NoError(t, err)
	assert.Empty(t, none)

	withEvents, err := r.organizers.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, withEvents, 1)

	attendees, err := r.users.ListByEvent(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, []model.User{u}, attendees)

	later := e
	later.Name = "Show2"
	later.DateTime = e.DateTime + 3_600_000
	later, err = r.events.Create(ctx, later)
	require.NoError(t, err)

	byDate, err := r.events.List(ctx, model.EventFilter{DateTime: &later.DateTime})
	require.NoError(t, err)
	assert.Equal(t, []model.Event{later}, byDate)

	byDateAndUser, err := r.events.List(ctx, model.EventFilter{DateTime: &later.DateTime, UserIDs: []int64{u.ID}})
	require.NoError(t, err)
	assert.Empty(t, byDateAndUser)

	between := e.DateTime + 1
	noMatch, err := r.events.List(ctx, model.EventFilter{DateTime: &between})
	require.NoError(t, err)
	assert.Empty(t, noMatch)
}

func TestReservationRepository_Rules(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	e := seedEvent(t, r, 1)
	alice, err := r.users.Create(ctx, model.User{Username: "alice", Firstname: "A", Lastname: "B"})
	require.NoError(t, err)
	bob, err := r.users.Create(ctx, model.User{Username: "bob", Firstname: "C", Lastname: "D"})
	require.NoError(t, err)

	_, err = r.reservations.Reserve(ctx, alice.ID, e.ID+100)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = r.reservations.Reserve(ctx, bob.ID+100, e.ID)
	assert.ErrorIs(t, err, repository.ErrMissingReference)

	res, err := r.reservations.Reserve(ctx, alice.ID, e.ID)
	require.NoError(t, err)
	_, err = r.reservations.Reserve(ctx, alice.ID, e.ID)
	assert.ErrorIs(t, err, repository.ErrAlreadyReserved)
	_, err = r.reservations.Reserve(ctx, bob.ID, e.ID)
	assert.ErrorIs(t, err, repository.ErrEventFull)

	byUser, err := r.reservations.List(ctx, model.ReservationFilter{UserIDs: []int64{alice.ID, bob.ID}})
	require.NoError(t, err)
	assert.Equal(t, []model.Reservation{res}, byUser)
}

// reserveResult summarises one concurrent reservation attempt.
type reserveResult struct {
	userID int64
	err    error
}

func TestReserve_ConcurrentLastSlots(t *testing.T) {
	const (
		capacity = 5
		attempts = 40
	)
	r := newRepos(t)
	ctx := context.Background()
	e := seedEvent(t, r, capacity)

	userIDs := make([]int64, attempts)
	for i := range userIDs {
		u, err := r.users.Create(ctx, model.User{Username: fmt.Sprintf("user%d", i), Firstname: "F", Lastname: "L"})
		require.NoError(t, err)
		userIDs[i] = u.ID
	}

	results := make(chan reserveResult, attempts)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for _, id := range userIDs {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			<-start
			_, err := r.reservations.Reserve(ctx, id, e.ID)
			results <- reserveResult{userID: id, err: err}
		}(id)
	}
	close(start)
	wg.Wait()
	close(results)

	var ok, full int
	for res := range results {
		switch {
		case res.err == nil:
			ok++
		case assert.ErrorIs(t, res.err, repository.ErrEventFull, "user %d", res.userID):
			full++
		}
	}
	assert.Equal(t, capacity, ok)
	assert.Equal(t, attempts-capacity, full)

	booked, err := r.reservations.List(ctx, model.ReservationFilter{EventIDs: []int64{e.ID}})
	require.NoError(t, err)
	assert.Len(t, booked, capacity)
}

func TestReserve_ConcurrentDuplicate(t *testing.T) {
	const attempts = 10
	r := newRepos(t)
	ctx := context.Background()
	e := seedEvent(t, r, attempts)
	u, err := r.users.Create(ctx, model.User{Username: "alice", Firstname: "A", Lastname: "B"})
	require.NoError(t, err)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.reservations.Reserve(ctx, u.ID, e.ID)
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		}()
	}
	wg.Wait()

	var ok int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, repository.ErrAlreadyReserved)
	}
	assert.Equal(t, 1, ok)
}

func ptr[T any](v T) *T { return &v }
