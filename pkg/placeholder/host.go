package placeholder

// DefaultSlot is the slot name requested when Config.Slot is empty.
const DefaultSlot = "Top"

// Handle is the mutable content reference the host returns for an acquired
// slot. SetContent is the markup sink.
type Handle interface {
	Content() string
	SetContent(markup string)
}

// CreateOptions carries the callbacks registered with the host on creation.
type CreateOptions struct {
	// OnDispose is invoked by the host when it tears the slot down. Hosts must
	// not call it synchronously from within TryCreate.
	OnDispose func()
}

// Host exposes named injection slots and notifies subscribers when slot
// availability changes.
type Host interface {
	// TryCreate returns a handle for slot, or false when the host does not
	// currently expose it.
	TryCreate(slot string, options CreateOptions) (Handle, bool)
	// Subscribe registers fn for availability-change notifications and
	// returns a function that removes it.
	Subscribe(fn func()) (unsubscribe func())
}
