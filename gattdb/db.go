// Package gattdb holds the attribute databases a connection resolves
// handles against.
package gattdb

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/rigado/attmon"
)

// DB is a handle-ordered attribute database.
type DB struct {
	attrs []*attmon.Attribute
}

func New(attrs ...attmon.Attribute) *DB {
	db := &DB{}
	for _, a := range attrs {
		db.Add(a)
	}
	return db
}

func (db *DB) idx(h uint16) int {
	return sort.Search(len(db.attrs), func(i int) bool { return db.attrs[i].Handle >= h })
}

// Add inserts a or replaces the attribute already at its handle.
func (db *DB) Add(a attmon.Attribute) {
	i := db.idx(a.Handle)
	if i < len(db.attrs) && db.attrs[i].Handle == a.Handle {
		db.attrs[i] = &a
		return
	}
	db.attrs = append(db.attrs, nil)
	copy(db.attrs[i+1:], db.attrs[i:])
	db.attrs[i] = &a
}

// Attribute returns the attribute at handle h, nil if there is none.
func (db *DB) Attribute(h uint16) *attmon.Attribute {
	if db == nil {
		return nil
	}
	i := db.idx(h)
	if i < len(db.attrs) && db.attrs[i].Handle == h {
		return db.attrs[i]
	}
	return nil
}

func (db *DB) IsEmpty() bool { return db == nil || len(db.attrs) == 0 }

func (db *DB) Len() int { return len(db.attrs) }

// Load populates the database from c. Attributes already present are
// replaced by the stored ones at the same handle.
func (db *DB) Load(c attmon.GattCache, path string) error {
	attrs, err := c.Load(path)
	if err != nil {
		return errors.Wrapf(err, "can't load attributes from %s", path)
	}
	for _, a := range attrs {
		db.Add(a)
	}
	return nil
}
