package inventory

// Backpack is the party's shared, ordered, unbounded item list.
type Backpack struct {
	items []*Item
}

// NewBackpack creates an empty Backpack.
func NewBackpack() *Backpack {
	return &Backpack{}
}

// Add appends it to the backpack and returns it.
//
// Precondition: it must not be nil and must not be a canonical empty slot item.
func (b *Backpack) Add(it *Item) *Item {
	if it.IsNone() {
		return it
	}
	b.items = append(b.items, it)
	return it
}

// AddDef creates a new instance of def and appends it.
func (b *Backpack) AddDef(def *ItemDef) *Item {
	return b.Add(NewItem(def))
}

// Items returns a copy of the backpack contents in insertion order.
func (b *Backpack) Items() []*Item {
	out := make([]*Item, len(b.items))
	copy(out, b.items)
	return out
}

// Len returns the number of items carried.
func (b *Backpack) Len() int { return len(b.items) }

// At returns the item at index i, or (nil, false) when out of range.
func (b *Backpack) At(i int) (*Item, bool) {
	if i < 0 || i >= len(b.items) {
		return nil, false
	}
	return b.items[i], true
}

// RemoveAt removes and returns the item at index i.
//
// Postcondition: ok is false and the backpack is unchanged when i is out of range.
func (b *Backpack) RemoveAt(i int) (*Item, bool) {
	it, ok := b.At(i)
	if !ok {
		return nil, false
	}
	b.items = append(b.items[:i], b.items[i+1:]...)
	return it, true
}

// IndexOf returns the index of the first item with definition id, or -1.
func (b *Backpack) IndexOf(defID string) int {
	for i, it := range b.items {
		if it.Def.ID == defID {
			return i
		}
	}
	return -1
}

// IndexOfTag returns the index of the first item carrying questTag, or -1.
func (b *Backpack) IndexOfTag(questTag string) int {
	if questTag == "" {
		return -1
	}
	for i, it := range b.items {
		if it.Def.QuestTag == questTag {
			return i
		}
	}
	return -1
}

// Clear empties the backpack.
func (b *Backpack) Clear() { b.items = nil }
