package storage

// Releaser is implemented by values that must be torn down when the container
// holding them is destroyed. Release is called at most once per stored value.
//
// For non-pointer element types Release must have a value receiver to be
// found.
type Releaser interface {
	Release()
}

// Destroy runs v's Release method if it has one.
func Destroy[T any](v T) {
	if r, ok := any(v).(Releaser); ok {
		r.Release()
	}
}
