// Package store persists the media catalog in an embedded SQLite database
// laid out as an NMJ jukebox schema. Entities are declared as ordered field
// lists (see tables.go); a generic record mapper turns those declarations
// into DDL and parameterized DML so no table needs per-entity SQL.
package store
