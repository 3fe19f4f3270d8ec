// Package command defines the closed set of user intents and the handler
// that carries each of them out against a ticket store.
package command

import (
	"github.com/calvinalkan/ironjira/internal/ticket"
)

// Command is one user intent. The set of implementations is closed: only
// Create, Edit, Delete and List satisfy it.
type Command interface {
	// Name is the CLI verb, used in logs.
	Name() string

	isCommand()
}

// Create asks for a new ticket. Both fields are required; they are pointers
// because the CLI layer may leave either out, and the handler must reject
// that rather than invent a default.
type Create struct {
	Title       *ticket.Title
	Description *ticket.Description
}

// Edit changes the fields that are set and leaves the others alone.
type Edit struct {
	ID          ticket.ID
	Status      *ticket.Status
	Title       *ticket.Title
	Description *ticket.Description
}

// Patch returns the sparse update described by e.
func (e Edit) Patch() ticket.Patch {
	return ticket.Patch{
		Status:      e.Status,
		Title:       e.Title,
		Description: e.Description,
	}
}

// Delete removes a ticket.
type Delete struct {
	ID ticket.ID
}

// List reports every ticket.
type List struct{}

func (Create) Name() string { return "create" }
func (Edit) Name() string   { return "edit" }
func (Delete) Name() string { return "delete" }
func (List) Name() string   { return "list" }

func (Create) isCommand() {}
func (Edit) isCommand()   {}
func (Delete) isCommand() {}
func (List) isCommand()   {}
