package vtexture

import "fmt"

// SlotState is the lifecycle state of a physical slot.
type SlotState uint8

const (
	// SlotFree holds no valid content and can be assigned to any tile.
	SlotFree SlotState = iota

	// SlotAllocated is in active use by a caller.
	SlotAllocated

	// SlotReclaimable is not in active use but its content is intact. It is
	// reused verbatim if its tile is requested again before the slot is
	// evicted for another tile.
	SlotReclaimable
)

// String returns the state name.
func (s SlotState) String() string {
	switch s {
	case SlotFree:
		return "Free"
	case SlotAllocated:
		return "Allocated"
	case SlotReclaimable:
		return "Reclaimable"
	default:
		return fmt.Sprintf("SlotState(%d)", uint8(s))
	}
}

// slot is one record of the arena. pos is the slot's index inside the stack
// matching its state, or -1 while allocated.
type slot struct {
	owner    TilePos
	hasOwner bool
	state    SlotState
	pos      int
}

// slotStack is a LIFO of slot IDs that can also drop an arbitrary member in
// O(1). The slot records track where each member sits.
type slotStack struct {
	ids []SlotID
}

func (st *slotStack) len() int { return len(st.ids) }

func (st *slotStack) push(slots []slot, id SlotID) {
	slots[id].pos = len(st.ids)
	st.ids = append(st.ids, id)
}

func (st *slotStack) pop(slots []slot) (SlotID, bool) {
	n := len(st.ids)
	if n == 0 {
		return NoSlot, false
	}
	id := st.ids[n-1]
	st.ids = st.ids[:n-1]
	slots[id].pos = -1
	return id, true
}

// remove swaps the top of the stack into id's place.
func (st *slotStack) remove(slots []slot, id SlotID) {
	i := slots[id].pos
	last := len(st.ids) - 1
	if i < 0 || i > last || st.ids[i] != id {
		panic(fmt.Sprintf("vtexture: slot %d is not in the expected pool", id))
	}
	if i != last {
		moved := st.ids[last]
		st.ids[i] = moved
		slots[moved].pos = i
	}
	st.ids = st.ids[:last]
	slots[id].pos = -1
}

// slotPool is a fixed arena of slot records plus the free and reclaimable
// stacks layered on top. Membership in a stack always mirrors the slot's
// state: Free slots are on the free stack, Reclaimable slots on the
// reclaimable stack, Allocated slots on neither.
type slotPool struct {
	slots       []slot
	free        slotStack
	reclaimable slotStack
}

// newSlotPool creates n Free slots. The free stack is filled so that slots
// are handed out in ascending ID order.
func newSlotPool(n int) *slotPool {
	p := &slotPool{
		slots: make([]slot, n),
		free:  slotStack{ids: make([]SlotID, 0, n)},
	}
	for i := n - 1; i >= 0; i-- {
		p.free.push(p.slots, SlotID(i))
	}
	return p
}

func (p *slotPool) capacity() int { return len(p.slots) }

func (p *slotPool) valid(id SlotID) bool {
	return int(id) < len(p.slots)
}

// state returns SlotFree for IDs outside the arena.
func (p *slotPool) state(id SlotID) SlotState {
	if !p.valid(id) {
		return SlotFree
	}
	return p.slots[id].state
}

func (p *slotPool) owner(id SlotID) (TilePos, bool) {
	if !p.valid(id) {
		return TilePos{}, false
	}
	s := &p.slots[id]
	return s.owner, s.hasOwner
}

// ownedBy reports whether id is currently owned by t.
func (p *slotPool) ownedBy(id SlotID, t TilePos) bool {
	owner, ok := p.owner(id)
	return ok && owner == t
}

// acquire marks id Allocated, pulling it out of whichever stack holds it.
func (p *slotPool) acquire(id SlotID) {
	switch p.slots[id].state {
	case SlotFree:
		p.free.remove(p.slots, id)
	case SlotReclaimable:
		p.reclaimable.remove(p.slots, id)
	}
	p.slots[id].state = SlotAllocated
}

// take pops a slot for a new owner, preferring slots with no content. The
// second result is the evicted owner when a reclaimable slot was reused.
func (p *slotPool) take(t TilePos) (id SlotID, evicted TilePos, didEvict bool, ok bool) {
	id, ok = p.free.pop(p.slots)
	if !ok {
		id, ok = p.reclaimable.pop(p.slots)
		if !ok {
			return NoSlot, TilePos{}, false, false
		}
		evicted, didEvict = p.slots[id].owner, p.slots[id].hasOwner
	}
	s := &p.slots[id]
	s.owner = t
	s.hasOwner = true
	s.state = SlotAllocated
	return id, evicted, didEvict, true
}

// releaseReusable keeps the owner and moves the slot to the reclaimable stack.
func (p *slotPool) releaseReusable(id SlotID) {
	p.slots[id].state = SlotReclaimable
	p.reclaimable.push(p.slots, id)
}

// releaseInvalidate clears the owner and moves the slot to the free stack.
func (p *slotPool) releaseInvalidate(id SlotID) {
	s := &p.slots[id]
	s.owner = TilePos{}
	s.hasOwner = false
	s.state = SlotFree
	p.free.push(p.slots, id)
}

// counts returns the number of slots in each state.
func (p *slotPool) counts() (free, allocated, reclaimable int) {
	free = p.free.len()
	reclaimable = p.reclaimable.len()
	allocated = len(p.slots) - free - reclaimable
	return free, allocated, reclaimable
}
