package store

import "time"

// Meta is embedded by every persisted entity. ID and CreatedAt are assigned
// by Collection.Add and never change afterwards.
type Meta struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

func (m *Meta) meta() *Meta { return m }

// entity is satisfied by pointers to structs embedding Meta.
type entity[T any] interface {
	*T
	meta() *Meta
}
