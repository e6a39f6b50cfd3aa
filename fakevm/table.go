package fakevm

// refTable is a slot table with a free list, one per reference scope
// (local or global). Slot 0 is never issued.
type refTable struct {
	entries  []refEntry
	freeList []uint32
	created  int
	deleted  int
}

type refEntry struct {
	object uint64 // object id
	frame  int    // issuing frame, locals only
	valid  bool
}

func newRefTable() *refTable {
	return &refTable{
		entries:  make([]refEntry, 0, 64),
		freeList: make([]uint32, 0, 16),
	}
}

// add stores a reference to object and returns its 1-based slot.
func (t *refTable) add(object uint64, frame int) uint32 {
	t.created++

	e := refEntry{object: object, frame: frame, valid: true}

	if len(t.freeList) > 0 {
		slot := t.freeList[len(t.freeList)-1]
		t.freeList = t.freeList[:len(t.freeList)-1]
		t.entries[slot-1] = e
		return slot
	}

	t.entries = append(t.entries, e)
	return uint32(len(t.entries))
}

// get returns the object id behind slot.
func (t *refTable) get(slot uint32) (uint64, bool) {
	if slot == 0 || int(slot) > len(t.entries) {
		return 0, false
	}
	e := t.entries[slot-1]
	if !e.valid {
		return 0, false
	}
	return e.object, true
}

// remove invalidates slot and recycles it.
func (t *refTable) remove(slot uint32) bool {
	if slot == 0 || int(slot) > len(t.entries) {
		return false
	}
	e := &t.entries[slot-1]
	if !e.valid {
		return false
	}

	e.valid = false
	e.object = 0
	t.deleted++
	t.freeList = append(t.freeList, slot)
	return true
}

// reclaimFrame invalidates every slot issued at or above frame and returns
// how many were reclaimed. Models the runtime freeing a call frame's local
// reference table on exit.
func (t *refTable) reclaimFrame(frame int) int {
	n := 0
	for i := range t.entries {
		e := &t.entries[i]
		if e.valid && e.frame >= frame {
			e.valid = false
			e.object = 0
			t.freeList = append(t.freeList, uint32(i+1))
			n++
		}
	}
	return n
}

// live counts valid slots.
func (t *refTable) live() int {
	n := 0
	for _, e := range t.entries {
		if e.valid {
			n++
		}
	}
	return n
}
