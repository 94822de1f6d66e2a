// Package ref provides named reference slots for values that are bound
// late in a run: circuit files, circuits, backend handles, credentials.
// A slot distinguishes "never set" and "set to the empty sentinel" from
// a real value, and both of the former read as empty.
package ref

// Ref is a single-owner, mutable slot holding a value and a display name.
type Ref[T comparable] struct {
	val  T
	name string
	set  bool
}

// New returns a bound reference. Most slots start life unset; use the
// zero value of Ref for those.
func New[T comparable](val T, name string) *Ref[T] {
	r := &Ref[T]{}
	r.Set(val, name)
	return r
}

// Set binds the slot to val under the given display name.
func (r *Ref[T]) Set(val T, name string) {
	r.val = val
	r.name = name
	r.set = true
}

// Get returns the current value. For an unset slot this is the zero value.
func (r *Ref[T]) Get() T {
	return r.val
}

// Name returns the display name bound with the value.
func (r *Ref[T]) Name() string {
	return r.name
}

// IsEmpty reports whether the slot is unset or holds the zero value
// (empty string, nil pointer).
func (r *Ref[T]) IsEmpty() bool {
	if !r.set {
		return true
	}
	var zero T
	return r.val == zero
}

// Clear returns the slot to its unset state.
func (r *Ref[T]) Clear() {
	var zero T
	r.val = zero
	r.name = ""
	r.set = false
}
