package store_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/ironjira/internal/store"
	"github.com/calvinalkan/ironjira/internal/ticket"
)

var cmpTicket = cmp.AllowUnexported(ticket.Title{}, ticket.Description{})

// fakeClock returns a fixed instant and moves forward by one second per Advance.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance() { c.now = c.now.Add(time.Second) }

func newTestStore(t *testing.T) (*store.Memory, *fakeClock) {
	t.Helper()

	clock := &fakeClock{now: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)}
	s := store.NewMemory(store.Options{
		IDs: &store.SequenceGenerator{},
		Now: clock.Now,
	})

	return s, clock
}

func draft(t *testing.T, title, description string) ticket.Draft {
	t.Helper()

	tt, err := ticket.ParseTitle(title)
	require.NoError(t, err)

	d, err := ticket.ParseDescription(description)
	require.NoError(t, err)

	return ticket.Draft{Title: tt, Description: d}
}

func Test_Memory_Create_Stores_ToDo_Ticket_When_Draft_Valid(t *testing.T) {
	t.Parallel()

	s, clock := newTestStore(t)

	id, err := s.Create(draft(t, "Fix bug", "NPE on login"))
	require.NoError(t, err)
	assert.Equal(t, ticket.ID("T-1"), id)

	got, ok := s.Get(id)
	require.True(t, ok)

	want := ticket.Ticket{
		ID:          "T-1",
		Title:       draft(t, "Fix bug", "x").Title,
		Description: draft(t, "x", "NPE on login").Description,
		Status:      ticket.StatusToDo,
		CreatedAt:   clock.now,
		UpdatedAt:   clock.now,
	}

	if diff := cmp.Diff(want, got, cmpTicket); diff != "" {
		t.Errorf("stored ticket mismatch (-want +got):\n%s", diff)
	}
}

func Test_Memory_Create_Returns_Distinct_IDs_When_Called_Repeatedly(t *testing.T) {
	t.Parallel()

	s := store.NewMemory(store.Options{})

	first, err := s.Create(draft(t, "a", "a"))
	require.NoError(t, err)

	second, err := s.Create(draft(t, "a", "a"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, 2, s.Len())
}

type constantIDs struct{}

func (constantIDs) NewID() (ticket.ID, error) { return "SAME", nil }

type brokenIDs struct{}

var errNoEntropy = errors.New("no entropy")

func (brokenIDs) NewID() (ticket.ID, error) { return "", errNoEntropy }

func Test_Memory_Create_Fails_When_Generator_Repeats_Or_Breaks(t *testing.T) {
	t.Parallel()

	s := store.NewMemory(store.Options{IDs: constantIDs{}})

	_, err := s.Create(draft(t, "a", "a"))
	require.NoError(t, err)

	_, err = s.Create(draft(t, "b", "b"))
	require.ErrorIs(t, err, store.ErrDuplicateID)
	assert.Equal(t, 1, s.Len())

	broken := store.NewMemory(store.Options{IDs: brokenIDs{}})

	_, err = broken.Create(draft(t, "a", "a"))
	require.ErrorIs(t, err, errNoEntropy)
	assert.Zero(t, broken.Len())
}

func Test_Memory_Update_Bumps_UpdatedAt_Only_When_Field_Changes(t *testing.T) {
	t.Parallel()

	s, clock := newTestStore(t)

	id, err := s.Create(draft(t, "Fix bug", "NPE on login"))
	require.NoError(t, err)

	created, _ := s.Get(id)

	clock.Advance()

	status := ticket.StatusInProgress
	patch := ticket.Patch{Status: &status}

	first, found, err := s.Update(id, patch)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, ticket.StatusInProgress, first.Status)
	assert.Equal(t, clock.now, first.UpdatedAt)
	assert.Equal(t, created.CreatedAt, first.CreatedAt)

	clock.Advance()

	second, found, err := s.Update(id, patch)
	require.NoError(t, err)
	require.True(t, found)

	if diff := cmp.Diff(first, second, cmpTicket); diff != "" {
		t.Errorf("repeated patch changed ticket (-first +second):\n%s", diff)
	}

	stored, _ := s.Get(id)
	if diff := cmp.Diff(first, stored, cmpTicket); diff != "" {
		t.Errorf("stored ticket differs (-want +got):\n%s", diff)
	}
}

func Test_Memory_Update_Is_NoOp_When_Patch_Empty(t *testing.T) {
	t.Parallel()

	s, clock := newTestStore(t)

	id, err := s.Create(draft(t, "Fix bug", "NPE on login"))
	require.NoError(t, err)

	before, _ := s.Get(id)

	clock.Advance()

	after, found, err := s.Update(id, ticket.Patch{})
	require.NoError(t, err)
	require.True(t, found)

	if diff := cmp.Diff(before, after, cmpTicket); diff != "" {
		t.Errorf("empty patch changed ticket (-before +after):\n%s", diff)
	}
}

func Test_Memory_Update_Reports_Missing_When_ID_Unknown(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)

	status := ticket.StatusDone

	_, found, err := s.Update("nope", ticket.Patch{Status: &status})
	require.NoError(t, err)
	assert.False(t, found)
}

func Test_Memory_Update_Returns_Internal_When_Status_Invalid(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)

	id, err := s.Create(draft(t, "Fix bug", "NPE on login"))
	require.NoError(t, err)

	bogus := ticket.Status(99)

	_, _, err = s.Update(id, ticket.Patch{Status: &bogus})
	require.ErrorIs(t, err, ticket.ErrInternal)

	stored, _ := s.Get(id)
	assert.Equal(t, ticket.StatusToDo, stored.Status)
}

func Test_Memory_Delete_Reports_Found_Then_Missing_When_Called_Twice(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)

	id, err := s.Create(draft(t, "Fix bug", "NPE on login"))
	require.NoError(t, err)

	removed, found, err := s.Delete(id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, id, removed.ID)

	_, found, err = s.Delete(id)
	require.NoError(t, err)
	assert.False(t, found)

	_, ok := s.Get(id)
	assert.False(t, ok)
	assert.Zero(t, s.Len())
}

func Test_Memory_List_Returns_Insertion_Order_When_Tickets_Removed(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)

	empty, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, empty)

	for _, title := range []string{"one", "two", "three", "four"} {
		_, err := s.Create(draft(t, title, "d"))
		require.NoError(t, err)
	}

	_, _, err = s.Delete("T-2")
	require.NoError(t, err)

	status := ticket.StatusDone
	_, _, err = s.Update("T-1", ticket.Patch{Status: &status})
	require.NoError(t, err)

	tickets, err := s.List()
	require.NoError(t, err)

	ids := make([]ticket.ID, len(tickets))
	for i, tk := range tickets {
		ids[i] = tk.ID
	}

	assert.Equal(t, []ticket.ID{"T-1", "T-3", "T-4"}, ids)
	assert.Equal(t, ticket.StatusDone, tickets[0].Status)
}
