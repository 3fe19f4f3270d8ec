// Package ticket holds the domain values of the ticket tracker and the
// parsers that build them from user-supplied text.
package ticket

import (
	"fmt"
	"time"
)

// ID identifies a ticket for its whole lifetime. IDs are produced by the
// store's identifier generator and are compared with ==.
type ID string

func (id ID) String() string {
	return string(id)
}

// Status is the workflow state of a ticket. The zero value is not a valid status.
type Status int

// Status values.
const (
	StatusToDo Status = iota + 1
	StatusInProgress
	StatusBlocked
	StatusDone
)

// Statuses lists every valid status in workflow order.
var Statuses = []Status{StatusToDo, StatusInProgress, StatusBlocked, StatusDone}

var statusNames = map[Status]string{
	StatusToDo:       "ToDo",
	StatusInProgress: "InProgress",
	StatusBlocked:    "Blocked",
	StatusDone:       "Done",
}

// String returns the canonical name, e.g. "InProgress".
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}

	return "Status(invalid)"
}

// Valid reports whether s is one of the defined statuses.
func (s Status) Valid() bool {
	_, ok := statusNames[s]

	return ok
}

// MarshalText encodes the canonical name. Used by the json and yaml reports.
func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: status value %d", ErrInternal, int(s))
	}

	return []byte(s.String()), nil
}

// Title is a validated, non-empty ticket title.
type Title struct {
	value string
}

func (t Title) String() string {
	return t.value
}

// MarshalText implements encoding.TextMarshaler.
func (t Title) MarshalText() ([]byte, error) {
	return []byte(t.value), nil
}

// Description is a validated, non-empty ticket description.
type Description struct {
	value string
}

func (d Description) String() string {
	return d.value
}

// MarshalText implements encoding.TextMarshaler.
func (d Description) MarshalText() ([]byte, error) {
	return []byte(d.value), nil
}

// Ticket is a unit of tracked work as held by the store.
type Ticket struct {
	ID          ID          `json:"id"          yaml:"id"`
	Title       Title       `json:"title"       yaml:"title"`
	Description Description `json:"description" yaml:"description"`
	Status      Status      `json:"status"      yaml:"status"`
	CreatedAt   time.Time   `json:"created_at"  yaml:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"  yaml:"updated_at"`
}

// Draft is the data needed to create a ticket. The store assigns the id,
// the timestamps and the initial status.
type Draft struct {
	Title       Title
	Description Description
}

// Patch is a sparse update. A nil field means "leave unchanged", never "clear".
type Patch struct {
	Status      *Status
	Title       *Title
	Description *Description
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Status == nil && p.Title == nil && p.Description == nil
}

// Fields returns the names of the fields set in p, in a fixed order.
func (p Patch) Fields() []string {
	var fields []string

	if p.Status != nil {
		fields = append(fields, "status")
	}

	if p.Title != nil {
		fields = append(fields, "title")
	}

	if p.Description != nil {
		fields = append(fields, "description")
	}

	return fields
}

// Apply returns t with the patch applied and whether any field changed.
// Timestamps are left to the caller.
func (p Patch) Apply(t Ticket) (Ticket, bool) {
	changed := false

	if p.Status != nil && *p.Status != t.Status {
		t.Status = *p.Status
		changed = true
	}

	if p.Title != nil && *p.Title != t.Title {
		t.Title = *p.Title
		changed = true
	}

	if p.Description != nil && *p.Description != t.Description {
		t.Description = *p.Description
		changed = true
	}

	return t, changed
}
