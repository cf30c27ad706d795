// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/ava-labs/dexfarm/consts"
)

// TypeParser maps type IDs and names to constructors of [T]. Each
// constructor must return a fresh value whose GetTypeID is stable.
type TypeParser[T Typed] struct {
	nameToIndex    map[string]uint8
	indexToName    map[uint8]string
	indexToFactory map[uint8]func() T
}

func NewTypeParser[T Typed]() *TypeParser[T] {
	return &TypeParser[T]{
		nameToIndex:    map[string]uint8{},
		indexToName:    map[uint8]string{},
		indexToFactory: map[uint8]func() T{},
	}
}

func (p *TypeParser[T]) Register(name string, f func() T) error {
	if len(p.indexToFactory) > int(consts.MaxUint8) {
		return ErrTooManyItems
	}
	index := f().GetTypeID()
	if _, ok := p.nameToIndex[name]; ok {
		return ErrDuplicateItem
	}
	if _, ok := p.indexToFactory[index]; ok {
		return ErrDuplicateItem
	}
	p.nameToIndex[name] = index
	p.indexToName[index] = name
	p.indexToFactory[index] = f
	return nil
}

func (p *TypeParser[T]) LookupName(name string) (T, bool) {
	index, ok := p.nameToIndex[name]
	if !ok {
		var zero T
		return zero, false
	}
	return p.indexToFactory[index](), true
}

func (p *TypeParser[T]) LookupIndex(index uint8) (T, bool) {
	f, ok := p.indexToFactory[index]
	if !ok {
		var zero T
		return zero, false
	}
	return f(), true
}

// Name returns the registered name of [index], or "" if there is none.
func (p *TypeParser[T]) Name(index uint8) string {
	return p.indexToName[index]
}

// Names returns every registered name in sorted order.
func (p *TypeParser[T]) Names() []string {
	names := maps.Keys(p.nameToIndex)
	slices.Sort(names)
	return names
}
