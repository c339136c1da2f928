// Package model holds the records exchanged with the Journal Quest API.
// The client treats them as caches of server state; none of them are
// authoritative.
package model
