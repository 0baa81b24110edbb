package shape

// Deferred widens shapes that may still be under construction, as happens
// when a recursive type refers to itself through a pointer. Composite shapes
// get a placeholder that Resolve fills with a nullable copy of the target
// once every shape is complete. The zero value is ready to use.
type Deferred struct {
	slots []deferredSlot
	owned map[*Shape]bool
}

type deferredSlot struct {
	target *Shape
	slot   *Shape
}

// Nullable returns s widened to accept the absent value. Leaves are widened
// at once; lists and records get a placeholder.
func (d *Deferred) Nullable(s *Shape) *Shape {
	if d.owned[s] {
		return s
	}

	if s == nil || s.IsLeaf() || s.Nullable {
		return Nullable(s)
	}

	if d.owned == nil {
		d.owned = make(map[*Shape]bool)
	}

	slot := &Shape{}
	d.owned[slot] = true
	d.slots = append(d.slots, deferredSlot{target: s, slot: slot})

	return slot
}

// Resolve fills every placeholder handed out since the last call. A filled
// placeholder shares fields and element with its target.
func (d *Deferred) Resolve() {
	for _, f := range d.slots {
		*f.slot = *f.target
		f.slot.Nullable = true
	}

	d.slots = nil
	d.owned = nil
}
