package store

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/calvinalkan/ironjira/internal/ticket"
)

// ErrDuplicateID reports an identifier generator that returned an id twice.
var ErrDuplicateID = errors.New("duplicate ticket id")

// Options configures a Memory store. Zero values pick the defaults.
type Options struct {
	IDs    IDGenerator        // default: UUIDGenerator
	Now    func() time.Time   // default: time.Now
	Logger logrus.FieldLogger // default: discards everything
}

// Memory is an in-process ticket store. Tickets are listed in insertion order.
//
// Memory is not safe for concurrent use; it has a single owner that runs one
// operation at a time.
type Memory struct {
	ids     IDGenerator
	now     func() time.Time
	log     logrus.FieldLogger
	tickets map[ticket.ID]ticket.Ticket
	order   []ticket.ID
}

// NewMemory returns an empty store.
func NewMemory(opts Options) *Memory {
	if opts.IDs == nil {
		opts.IDs = UUIDGenerator{}
	}

	if opts.Now == nil {
		opts.Now = time.Now
	}

	if opts.Logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		opts.Logger = discard
	}

	return &Memory{
		ids:     opts.IDs,
		now:     opts.Now,
		log:     opts.Logger,
		tickets: make(map[ticket.ID]ticket.Ticket),
	}
}

// Create stores a new ticket with status ToDo and returns its id.
func (m *Memory) Create(draft ticket.Draft) (ticket.ID, error) {
	id, err := m.ids.NewID()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}

	if _, exists := m.tickets[id]; exists {
		return "", fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}

	now := m.now().UTC()

	m.tickets[id] = ticket.Ticket{
		ID:          id,
		Title:       draft.Title,
		Description: draft.Description,
		Status:      ticket.StatusToDo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.order = append(m.order, id)

	m.log.WithField("ticket_id", id).Debug("ticket created")

	return id, nil
}

// Get returns the ticket stored under id.
func (m *Memory) Get(id ticket.ID) (ticket.Ticket, bool) {
	t, ok := m.tickets[id]

	return t, ok
}

// Update applies patch to the ticket under id and returns the result.
// The bool is false if no such ticket exists. UpdatedAt only moves when a
// field actually changes, so an empty or repeated patch leaves the ticket as is.
func (m *Memory) Update(id ticket.ID, patch ticket.Patch) (ticket.Ticket, bool, error) {
	current, ok := m.tickets[id]
	if !ok {
		return ticket.Ticket{}, false, nil
	}

	if patch.Status != nil && !patch.Status.Valid() {
		return ticket.Ticket{}, false, fmt.Errorf("%w: patch carries status value %d", ticket.ErrInternal, int(*patch.Status))
	}

	updated, changed := patch.Apply(current)
	if changed {
		updated.UpdatedAt = m.now().UTC()
		m.tickets[id] = updated
	}

	m.log.WithFields(logrus.Fields{
		"ticket_id":  id,
		"fields_set": patch.Fields(),
		"changed":    changed,
	}).Debug("ticket updated")

	return updated, true, nil
}

// Delete removes the ticket under id and returns it. The bool is false if no
// such ticket exists.
func (m *Memory) Delete(id ticket.ID) (ticket.Ticket, bool, error) {
	t, ok := m.tickets[id]
	if !ok {
		return ticket.Ticket{}, false, nil
	}

	delete(m.tickets, id)
	m.order = lo.Without(m.order, id)

	m.log.WithField("ticket_id", id).Debug("ticket deleted")

	return t, true, nil
}

// List returns every ticket in insertion order.
func (m *Memory) List() ([]ticket.Ticket, error) {
	tickets := lo.Map(m.order, func(id ticket.ID, _ int) ticket.Ticket {
		return m.tickets[id]
	})

	return tickets, nil
}

// Len returns the number of stored tickets.
func (m *Memory) Len() int {
	return len(m.order)
}
