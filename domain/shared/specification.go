package shared

// Specification encapsulates a business rule used to select entities.
// Specifications are evaluated in memory by the backend fake's store.
type Specification[T any] interface {
	IsSatisfiedBy(entity T) bool
}

// SpecFunc adapts a plain predicate to Specification
type SpecFunc[T any] func(entity T) bool

// IsSatisfiedBy calls f
func (f SpecFunc[T]) IsSatisfiedBy(entity T) bool {
	return f(entity)
}

// AndSpecification is satisfied when every member is. An empty And is
// always satisfied.
type AndSpecification[T any] struct {
	Specs []Specification[T]
}

func (spec AndSpecification[T]) IsSatisfiedBy(entity T) bool {
	for _, s := range spec.Specs {
		if !s.IsSatisfiedBy(entity) {
			return false
		}
	}
	return true
}

// And combines specifications, skipping nil members
func And[T any](specs ...Specification[T]) Specification[T] {
	kept := make([]Specification[T], 0, len(specs))
	for _, s := range specs {
		if s != nil {
			kept = append(kept, s)
		}
	}
	return AndSpecification[T]{Specs: kept}
}

// NotSpecification negates a specification
type NotSpecification[T any] struct {
	Spec Specification[T]
}

func (spec NotSpecification[T]) IsSatisfiedBy(entity T) bool {
	return !spec.Spec.IsSatisfiedBy(entity)
}

// Not creates a NotSpecification
func Not[T any](inner Specification[T]) Specification[T] {
	return NotSpecification[T]{Spec: inner}
}

// Filter returns the entities satisfying spec, preserving order.
func Filter[T any](entities []T, spec Specification[T]) []T {
	out := make([]T, 0, len(entities))
	for _, e := range entities {
		if spec == nil || spec.IsSatisfiedBy(e) {
			out = append(out, e)
		}
	}
	return out
}
