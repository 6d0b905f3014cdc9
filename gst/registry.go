package gst

// registry stores one entry per inserted string: the original bytes
// plus the terminal sentinel appended by AddString. IDs are assigned
// in insertion order starting at 1; a rolled-back insertion rewinds
// next, so its id is issued again to the next insertion.
type registry struct {
	strings  map[int][]byte
	next     int
	sentinel byte
	max      int
}

func newRegistry(sentinel byte, max int) *registry {
	return &registry{
		strings:  make(map[int][]byte),
		next:     0,
		sentinel: sentinel,
		max:      max,
	}
}

func (r *registry) containsSentinel(b []byte) bool {
	for _, c := range b {
		if c == r.sentinel {
			return true
		}
	}
	return false
}

// append assigns the next id and stores bytes+sentinel. The caller
// must have already rejected inputs containing the sentinel and
// capacity overflow; append itself never fails.
func (r *registry) append(bytes []byte) int {
	r.next++
	id := r.next
	stored := make([]byte, len(bytes)+1)
	copy(stored, bytes)
	stored[len(bytes)] = r.sentinel
	r.strings[id] = stored
	return id
}

// rollback undoes the most recent append, restoring next so the same
// id is reissued on the next successful insertion.
func (r *registry) rollback(id int) {
	delete(r.strings, id)
	if id == r.next {
		r.next--
	}
}

func (r *registry) view(id int) []byte {
	return r.strings[id]
}

func (r *registry) charAt(id int, i int) byte {
	return r.strings[id][i]
}

func (r *registry) length(id int) int {
	return len(r.strings[id])
}

func (r *registry) count() int {
	return r.next
}

func (r *registry) atCapacity() bool {
	return r.next >= r.max
}
