// Package taxonomy defines the term hierarchy consumed by the menu pipeline
// and the Store contract implemented by term store clients.
package taxonomy
