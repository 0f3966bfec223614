// Package component declares the data attached to entities. Each component
// type gets one package-level handle that systems use to reach its storage.
package component

import (
	"errors"
	"fmt"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

type ComponentID uint32

var nextComponentID atomic.Uint32

// ComponentKind identifies the storage for components of type T.
type ComponentKind[T any] struct {
	id ComponentID
}

func NewComponentKind[T any]() ComponentKind[T] {
	return ComponentKind[T]{id: ComponentID(nextComponentID.Add(1))}
}

func (k ComponentKind[T]) ID() ComponentID { return k.id }
func (k ComponentKind[T]) Valid() bool     { return k.id != 0 }

func (k ComponentKind[T]) String() string {
	var zero T
	return fmt.Sprintf("%T#%d", zero, k.id)
}

// ComponentHandle is what component files export.
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}
