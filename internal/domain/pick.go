package domain

// Pick is a single draft selection identified by (Round, Slot).
// Slot is the draft position of the original owner and never changes;
// snake order only affects when the slot is called.
type Pick struct {
	Round         int      // 1-based round
	Slot          int      // 1-based draft position
	OriginalOwner string   // manager seated at Slot; immutable
	CurrentOwner  string   // manager holding the pick now
	Path          []string // every holder in order, starting with OriginalOwner
}

// Traded reports whether the pick is held by someone other than its original owner.
func (p Pick) Traded() bool {
	return p.OriginalOwner != p.CurrentOwner
}

// Clone returns a deep copy of the pick.
func (p Pick) Clone() Pick {
	path := make([]string, len(p.Path))
	copy(path, p.Path)
	p.Path = path
	return p
}
