// Package branches implements the per-junction outgoing-direction set used
// by the MT-M2 walkers: a fixed 4-slot array of the walkable directions out of a
// cell, with a rotating cursor seeded from a walker id so that walkers
// sharing a junction tend to fan out across different exits (spec §4.2).
//
// Branches is deliberately a plain array rather than a heap-allocated list —
// see the Design Notes in SPEC_FULL.md — so constructing one at every
// junction a walker visits costs no allocation.
package branches

import (
	"github.com/arcwalk/mazewalk/cellstore"
	"github.com/arcwalk/mazewalk/geometry"
)

// Branches holds, for one cell, the set of directions a walker may still
// take out of it.
type Branches struct {
	slots [4]geometry.Direction // fixed N,E,S,W layout; Uninitialized if not walkable or already spent
	index int                   // rotating cursor into slots
	count int                   // number of non-Uninitialized slots
}

// New constructs the Branches for cell p, seeding the rotation cursor from
// tid so that distinct walkers (even from the same team) tend to pick
// different exits out of a shared junction.
func New(g geometry.Grid, p geometry.Position, tid int) *Branches {
	b := &Branches{index: tid & 3}
	for i, d := range geometry.Directions() {
		if geometry.CanMove(g, p, d) {
			b.slots[i] = d
			b.count++
		} else {
			b.slots[i] = geometry.Uninitialized
		}
	}
	return b
}

// Count returns the number of directions still available.
func (b *Branches) Count() int { return b.count }

// Remove clears the first slot holding d, if any, decrementing Count.
func (b *Branches) Remove(d geometry.Direction) {
	for i, s := range b.slots {
		if s == d {
			b.slots[i] = geometry.Uninitialized
			b.count--
			return
		}
	}
}

// Next advances the rotating cursor (wrapping) and returns the next
// non-Uninitialized direction without consuming it. Returns Uninitialized
// if no direction remains. It neither reads nor sets the DEAD_*/OCCUPIED_*
// bits; the MT-M2 corridor step uses it to read the single exit left.
func (b *Branches) Next() geometry.Direction {
	for i := 0; i < 4; i++ {
		b.index = (b.index + 1) & 3
		if d := b.slots[b.index]; d != geometry.Uninitialized {
			return d
		}
	}
	return geometry.Uninitialized
}

// NextMT advances the cursor up to four times looking for an unoccupied,
// non-dead direction out of cell at, consulting and updating store's
// DEAD_*/OCCUPIED_* bits (spec §4.2). On success it claims the branch by
// setting the corresponding OCCUPIED_* bit and leaves the cursor pointing
// at the returned slot. If every live direction is occupied, it falls back
// to the first non-dead candidate without claiming it (another walker is
// already there, but nothing unoccupied remains). Returns Uninitialized if
// no direction is live at all.
func (b *Branches) NextMT(store *cellstore.Store, at geometry.Position) geometry.Direction {
	fallbackSlot := -1
	var fallback geometry.Direction = geometry.Uninitialized

	for pass := 0; pass < 4; pass++ {
		b.index = (b.index + 1) & 3
		d := b.slots[b.index]
		if d == geometry.Uninitialized {
			continue
		}
		if store.Has(at, cellstore.DeadBit(d)) {
			b.slots[b.index] = geometry.Uninitialized
			b.count--
			if b.count == 0 {
				return geometry.Uninitialized
			}
			continue
		}
		if fallbackSlot == -1 {
			fallbackSlot = b.index
			fallback = d
		}
		if store.Has(at, cellstore.OccupiedBit(d)) {
			continue
		}
		store.Set(at, cellstore.OccupiedBit(d))
		return d
	}

	if fallbackSlot != -1 {
		b.index = fallbackSlot
		return fallback
	}
	return geometry.Uninitialized
}

// PopCurrentThread reads the direction at the current cursor slot; if it is
// not Uninitialized, it marks that direction DEAD_* on at, clears the slot,
// decrements Count, and returns the direction that was retired. Returns
// Uninitialized if the current slot was already empty.
func (b *Branches) PopCurrentThread(store *cellstore.Store, at geometry.Position) geometry.Direction {
	d := b.slots[b.index]
	if d == geometry.Uninitialized {
		return geometry.Uninitialized
	}
	store.Set(at, cellstore.DeadBit(d))
	b.slots[b.index] = geometry.Uninitialized
	b.count--
	return d
}
