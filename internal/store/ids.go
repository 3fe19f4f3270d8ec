// Package store provides the in-memory ticket store and its identifier generators.
package store

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/calvinalkan/ironjira/internal/ticket"
)

// IDGenerator produces ticket ids. Every call must return an id that was not
// returned before for the lifetime of the store.
type IDGenerator interface {
	NewID() (ticket.ID, error)
}

// UUIDGenerator derives short ids from UUIDv7 values.
type UUIDGenerator struct{}

// NewID returns a 12-char Crockford base32 id taken from the random bits of a
// fresh UUIDv7.
func (UUIDGenerator) NewID() (ticket.ID, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("new uuidv7: %w", err)
	}

	short, err := ShortIDFromUUID(id)
	if err != nil {
		return "", err
	}

	return ticket.ID(short), nil
}

// SequenceGenerator hands out "T-1", "T-2", ... in order. Deterministic ids
// keep test output stable.
type SequenceGenerator struct {
	Prefix string
	next   int
}

// NewID returns the next id in the sequence.
func (g *SequenceGenerator) NewID() (ticket.ID, error) {
	g.next++

	prefix := g.Prefix
	if prefix == "" {
		prefix = "T-"
	}

	return ticket.ID(fmt.Sprintf("%s%d", prefix, g.next)), nil
}

const (
	shortIDLength = 12
	crockfordBase = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"
)

// ShortIDFromUUID derives a stable, 12-char base32 (Crockford) ID from the
// UUIDv7 random bits so ids stay distinct even if timestamps are identical.
func ShortIDFromUUID(id uuid.UUID) (string, error) {
	err := validateUUIDv7(id)
	if err != nil {
		return "", fmt.Errorf("short id: %w", err)
	}

	// UUIDv7 layout (RFC 9562): 48-bit time, 4-bit version, 12-bit rand_a,
	// 2-bit variant, 62-bit rand_b. We use the high 60 random bits for short IDs.
	randA := (uint16(id[6]&0x0f) << 8) | uint16(id[7])
	randB := (uint64(id[8]&0x3f) << 56) |
		(uint64(id[9]) << 48) |
		(uint64(id[10]) << 40) |
		(uint64(id[11]) << 32) |
		(uint64(id[12]) << 24) |
		(uint64(id[13]) << 16) |
		(uint64(id[14]) << 8) |
		uint64(id[15])

	top60 := (uint64(randA) << 48) | (randB >> 14)

	return encodeCrockfordBase32(top60), nil
}

func encodeCrockfordBase32(value uint64) string {
	var buf [shortIDLength]byte
	for i := shortIDLength - 1; i >= 0; i-- {
		buf[i] = crockfordBase[value&0x1f]
		value >>= 5
	}

	return string(buf[:])
}

func validateUUIDv7(id uuid.UUID) error {
	if id.Version() != 7 {
		return fmt.Errorf("invalid uuidv7: version %d", id.Version())
	}

	if id.Variant() != uuid.RFC4122 {
		return fmt.Errorf("invalid uuidv7: variant %d", id.Variant())
	}

	return nil
}
