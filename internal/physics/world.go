package physics

import (
	"log/slog"

	"collide3d/internal/logx"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// BodyID identifies a body within its World.
type BodyID int

// Body is a collision volume placed in the world. Local is the canonical
// shape in body space; the world-space copy is derived from it and only
// refreshed when the transform changes.
type Body struct {
	ID   BodyID
	Name string

	// Static bodies are never tested against each other by AllPairs.
	Static bool
	// Velocity is used as the tie-break movement of the pair.
	Velocity rl.Vector3

	local     Volume
	transform rl.Matrix
	world     Volume
	dirty     bool
}

// Local returns the body-space volume.
func (b *Body) Local() Volume { return b.local }

// Transform returns the body's world transform.
func (b *Body) Transform() rl.Matrix { return b.transform }

// WorldVolume returns the world-space volume as of the last refresh.
func (b *Body) WorldVolume() Volume { return b.world }

// CollisionPair represents two bodies to test. A is the smaller ID.
type CollisionPair struct {
	A, B BodyID
}

// MakePair creates a consistent collision pair (smaller ID first).
func MakePair(a, b BodyID) CollisionPair {
	if a > b {
		return CollisionPair{A: b, B: a}
	}
	return CollisionPair{A: a, B: b}
}

// Contact is the result of one overlapping pair. HitPoints is only valid
// until the next Step.
type Contact struct {
	A, B           *Body
	Normal         rl.Vector3
	Penetration    float32
	HasPenetration bool
	HitPoints      []rl.Vector3
}

// ContactHandler receives contact events from World.Step.
type ContactHandler interface {
	OnContactEnter(c *Contact)
	OnContactStay(c *Contact)
	OnContactExit(a, b *Body)
}

// World runs the narrow phase over caller-chosen pairs of bodies and
// tracks which pairs touch from one step to the next.
type World struct {
	log      *slog.Logger
	collider *Collider
	resp     *CollisionResponse
	handler  ContactHandler

	bodies []*Body
	nextID BodyID

	// Contact tracking for callbacks
	activeContacts  map[CollisionPair]bool // contacts from last step
	currentContacts map[CollisionPair]bool // contacts this step

	contacts  []Contact
	hitPoints []rl.Vector3
}

// NewWorld creates an empty world. A nil logger uses the package logger.
func NewWorld(tol Tolerances, logger *slog.Logger) *World {
	if logger == nil {
		logger = logx.For("physics")
	}
	return &World{
		log:             logger,
		collider:        NewCollider(tol, logger),
		resp:            NewCollisionResponse(),
		activeContacts:  make(map[CollisionPair]bool),
		currentContacts: make(map[CollisionPair]bool),
	}
}

// Collider returns the world's scratch context. It is only safe to use
// from the goroutine driving Step.
func (w *World) Collider() *Collider { return w.collider }

// SetHandler installs the contact event handler; nil disables events.
func (w *World) SetHandler(h ContactHandler) { w.handler = h }

// AddBody adds a body with the given body-space volume and transform. The
// world keeps its own copy of local.
func (w *World) AddBody(name string, local Volume, transform rl.Matrix) *Body {
	local = local.Clone()
	local.Update()
	b := &Body{
		ID:        w.nextID,
		Name:      name,
		local:     local,
		transform: transform,
		world:     local.Clone(),
		dirty:     true,
	}
	w.nextID++
	w.bodies = append(w.bodies, b)
	w.refresh(b)
	return b
}

// RemoveBody removes a body and ends every contact it was part of.
func (w *World) RemoveBody(id BodyID) {
	for i, b := range w.bodies {
		if b.ID != id {
			continue
		}
		for pair := range w.activeContacts {
			if pair.A != id && pair.B != id {
				continue
			}
			delete(w.activeContacts, pair)
			if w.handler != nil {
				w.handler.OnContactExit(w.Body(pair.A), w.Body(pair.B))
			}
		}
		w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
		return
	}
}

// Body returns the body with the given ID, or nil.
func (w *World) Body(id BodyID) *Body {
	for _, b := range w.bodies {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// Bodies returns the live bodies in insertion order.
func (w *World) Bodies() []*Body { return w.bodies }

// SetTransform moves a body. Its world volume is refreshed lazily by the
// next Step or Raycast.
func (w *World) SetTransform(id BodyID, m rl.Matrix) bool {
	b := w.Body(id)
	if b == nil {
		return false
	}
	b.transform = m
	b.dirty = true
	return true
}

func (w *World) refresh(b *Body) {
	if !b.dirty {
		return
	}
	if !TransformVolume(b.world, b.local, b.transform) {
		w.log.Warn("Physics: cannot transform body volume", "body", b.Name, "kind", b.local.Kind().String())
	}
	b.dirty = false
}

func (w *World) refreshAll() {
	for _, b := range w.bodies {
		w.refresh(b)
	}
}

// AllPairs returns every pair of live bodies except static/static ones. It
// is a convenience for small scenes, not a broad phase.
func (w *World) AllPairs() []CollisionPair {
	pairs := make([]CollisionPair, 0, len(w.bodies)*(len(w.bodies)-1)/2)
	for i, a := range w.bodies {
		for _, b := range w.bodies[i+1:] {
			if a.Static && b.Static {
				continue
			}
			pairs = append(pairs, MakePair(a.ID, b.ID))
		}
	}
	return pairs
}

// Step tests each pair and dispatches enter, stay and exit events. It
// returns the contacts found; the slice is reused by the next Step.
func (w *World) Step(pairs []CollisionPair) []Contact {
	w.refreshAll()

	// Reset current step contacts
	clear(w.currentContacts)
	w.contacts = w.contacts[:0]
	w.hitPoints = w.hitPoints[:0]

	for _, pair := range pairs {
		a, b := w.Body(pair.A), w.Body(pair.B)
		if a == nil || b == nil || a == b {
			continue
		}
		movement := rl.Vector3Subtract(a.Velocity, b.Velocity)
		if !w.collider.Collide(a.world, b.world, movement, w.resp) {
			continue
		}

		start := len(w.hitPoints)
		w.hitPoints = append(w.hitPoints, w.resp.HitPoints()...)
		w.contacts = append(w.contacts, Contact{
			A:              a,
			B:              b,
			Normal:         w.resp.Normal,
			Penetration:    w.resp.Penetration,
			HasPenetration: w.resp.HasPenetration,
		})
		w.contacts[len(w.contacts)-1].HitPoints = w.hitPoints[start:len(w.hitPoints):len(w.hitPoints)]
		w.currentContacts[MakePair(a.ID, b.ID)] = true
	}

	// appends may have moved the backing array
	offset := 0
	for i := range w.contacts {
		n := len(w.contacts[i].HitPoints)
		w.contacts[i].HitPoints = w.hitPoints[offset : offset+n : offset+n]
		offset += n
	}

	w.dispatchContactCallbacks()
	w.log.Debug("Physics: step", "bodies", len(w.bodies), "pairs", len(pairs), "contacts", len(w.contacts))
	return w.contacts
}

// dispatchContactCallbacks sends enter, stay and exit events to the handler
func (w *World) dispatchContactCallbacks() {
	if w.handler != nil {
		for i := range w.contacts {
			c := &w.contacts[i]
			if w.activeContacts[MakePair(c.A.ID, c.B.ID)] {
				w.handler.OnContactStay(c)
			} else {
				w.handler.OnContactEnter(c)
			}
		}
		for pair := range w.activeContacts {
			if !w.currentContacts[pair] {
				w.handler.OnContactExit(w.Body(pair.A), w.Body(pair.B))
			}
		}
	}

	// Swap buffers
	w.activeContacts, w.currentContacts = w.currentContacts, w.activeContacts
}

// Touching reports whether the pair was in contact after the last Step.
func (w *World) Touching(a, b BodyID) bool {
	return w.activeContacts[MakePair(a, b)]
}

// Raycast casts against every body's world volume.
func (w *World) Raycast(origin, direction rl.Vector3, maxDistance float32) (*Body, RaycastHit, bool) {
	w.refreshAll()
	volumes := make([]Volume, len(w.bodies))
	for i, b := range w.bodies {
		volumes[i] = b.world
	}
	hit, ok := Raycast(w.collider, volumes, origin, direction, maxDistance)
	if !ok {
		return nil, RaycastHit{}, false
	}
	return w.bodies[hit.Index], hit, true
}
