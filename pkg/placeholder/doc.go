// Package placeholder owns the single host injection slot the menu is written
// into.
//
// A Controller moves through three states. It starts Unacquired, becomes
// Acquired the first time the host hands out the slot, and becomes Disposed
// only when the host invokes the disposal callback it was given. Acquisition
// is serialized, so repeated or bursty host notifications never create a
// second slot. Rendering resolves the term tree, renders the menu, and writes
// the result only if the slot is still Acquired at write time.
package placeholder
