// Package kv holds the opaque key-value backends that stand in for browser
// local storage. Values are raw JSON documents; callers own encoding.
package kv

import (
	"context"
	"errors"
)

// ErrClosed is returned by backends used after Close.
var ErrClosed = errors.New("kv: store closed")

// Store is the get/set contract every backend satisfies.
type Store interface {
	// Read returns the stored payload and whether the key exists.
	Read(ctx context.Context, key string) ([]byte, bool, error)
	Write(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Prefixed namespaces keys before they reach the wrapped backend.
type Prefixed struct {
	Store
	prefix string
}

// WithPrefix wraps store so that every key is stored as prefix+key.
func WithPrefix(store Store, prefix string) Store {
	if prefix == "" {
		return store
	}
	return &Prefixed{Store: store, prefix: prefix}
}

func (p *Prefixed) Read(ctx context.Context, key string) ([]byte, bool, error) {
	return p.Store.Read(ctx, p.prefix+key)
}

func (p *Prefixed) Write(ctx context.Context, key string, value []byte) error {
	return p.Store.Write(ctx, p.prefix+key, value)
}

func (p *Prefixed) Delete(ctx context.Context, key string) error {
	return p.Store.Delete(ctx, p.prefix+key)
}
