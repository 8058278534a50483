package collision

import (
	"fmt"

	"github.com/arloliu/matlib/errs"
)

// Tracker tracks the names and material numbers of the rows written to one
// table. Duplicate names and duplicate numbers are errors; two different names
// sharing a hash are not, but they switch the table to name verification mode.
type Tracker struct {
	names        map[uint64]string // Hash → name
	nameList     []string          // In row order
	numbers      map[int64]string  // Material number → owning name
	hasCollision bool
}

// NewTracker creates a new collision tracker.
func NewTracker() *Tracker {
	return &Tracker{
		names:    make(map[uint64]string),
		nameList: make([]string, 0),
		numbers:  make(map[int64]string),
	}
}

// TrackName records a row name and its hash.
//
// Returns ErrInvalidName for an empty name and ErrDuplicateName when the same
// name was already tracked. A different name with the same hash only sets the
// collision flag.
func (t *Tracker) TrackName(name string, hash uint64) error {
	if name == "" {
		return errs.ErrInvalidName
	}

	// Hash buckets hold only the first name; later colliding names are
	// checked against nameList.
	if existing, ok := t.names[hash]; ok {
		if existing == name {
			return fmt.Errorf("%w: %q", errs.ErrDuplicateName, name)
		}
		for _, n := range t.nameList {
			if n == name {
				return fmt.Errorf("%w: %q", errs.ErrDuplicateName, name)
			}
		}
		t.hasCollision = true
	} else {
		t.names[hash] = name
	}

	t.nameList = append(t.nameList, name)

	return nil
}

// TrackNumber records the material number of the named row.
// Returns ErrNumberCollision when another row already owns the number.
func (t *Tracker) TrackNumber(name string, number int64) error {
	if owner, ok := t.numbers[number]; ok && owner != name {
		return fmt.Errorf("%w: %d owned by %q, requested by %q", errs.ErrNumberCollision, number, owner, name)
	}
	t.numbers[number] = name

	return nil
}

// HasCollision returns true if two tracked names share a hash.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}
