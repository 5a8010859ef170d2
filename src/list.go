package aocscript

import (
	"fmt"
	"strings"

	"github.com/google/btree"
)

const listTreeDegree = 16

// listItem is a sorted-list element. seq keeps equal values in insertion
// order so the tree never treats two appends as the same key.
type listItem struct {
	value Value
	seq   uint64
}

// Less implements btree.Item
func (a listItem) Less(than btree.Item) bool {
	b := than.(listItem)
	if c := a.value.Compare(b.value); c != 0 {
		return c < 0
	}
	return a.seq < b.seq
}

// List is a declared, homogeneously typed sequence of values. An unsorted
// list keeps insertion order; a sorted list keeps its elements ordered by
// Value.Compare after every mutation.
type List struct {
	name   string
	elem   ValueKind
	sorted bool

	// unsorted storage
	items []Value

	// sorted storage; snapshot caches an in-order copy for indexing
	tree     *btree.BTree
	seq      uint64
	snapshot []Value
}

// NewList creates an empty list of the given element kind
func NewList(name string, elem ValueKind, sorted bool) *List {
	l := &List{name: name, elem: elem, sorted: sorted}
	if sorted {
		l.tree = btree.New(listTreeDegree)
	}
	return l
}

// Name returns the declared identifier
func (l *List) Name() string { return l.name }

// ElemKind returns the declared element type
func (l *List) ElemKind() ValueKind { return l.elem }

// Sorted reports whether the list keeps its elements ordered
func (l *List) Sorted() bool { return l.sorted }

// Len returns the number of elements
func (l *List) Len() int {
	if l.sorted {
		return l.tree.Len()
	}
	return len(l.items)
}

func (l *List) checkKind(v Value) error {
	if v.Kind() != l.elem {
		return fmt.Errorf("cannot store %s value %s in %s list %s", v.Kind(), v.Format(), l.elem, l.name)
	}
	return nil
}

func (l *List) checkIndex(index int) error {
	if index < 0 || index >= l.Len() {
		return fmt.Errorf("index %d out of range for list %s of size %d", index, l.name, l.Len())
	}
	return nil
}

// Append adds v at the end, or at its ordered position for a sorted list.
// The list is left unchanged when v has the wrong kind.
func (l *List) Append(v Value) error {
	if err := l.checkKind(v); err != nil {
		return err
	}
	if !l.sorted {
		l.items = append(l.items, v)
		return nil
	}
	l.insertSorted(v)
	return nil
}

func (l *List) insertSorted(v Value) {
	l.seq++
	l.tree.ReplaceOrInsert(listItem{value: v, seq: l.seq})
	l.snapshot = nil
}

// Get returns the element at index
func (l *List) Get(index int) (Value, error) {
	if err := l.checkIndex(index); err != nil {
		return Value{}, err
	}
	if !l.sorted {
		return l.items[index], nil
	}
	return l.ordered()[index], nil
}

// Set replaces the element at index. A sorted list is re-ordered afterwards,
// so the new value may end up at a different index.
func (l *List) Set(index int, v Value) error {
	if err := l.checkKind(v); err != nil {
		return err
	}
	if err := l.checkIndex(index); err != nil {
		return err
	}
	if !l.sorted {
		l.items[index] = v
		return nil
	}

	var target btree.Item
	i := 0
	l.tree.Ascend(func(item btree.Item) bool {
		if i == index {
			target = item
			return false
		}
		i++
		return true
	})
	l.tree.Delete(target)
	l.insertSorted(v)
	return nil
}

// ordered returns the sorted elements, rebuilding the cache when stale
func (l *List) ordered() []Value {
	if l.snapshot != nil {
		return l.snapshot
	}
	values := make([]Value, 0, l.tree.Len())
	l.tree.Ascend(func(item btree.Item) bool {
		values = append(values, item.(listItem).value)
		return true
	})
	l.snapshot = values
	return values
}

// Values returns a copy of the elements in list order
func (l *List) Values() []Value {
	if l.sorted {
		return append([]Value(nil), l.ordered()...)
	}
	return append([]Value(nil), l.items...)
}

// String renders the list as [a, b, c] using print formatting
func (l *List) String() string {
	values := l.Values()
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.Format()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Describe returns the declaration form of the list
func (l *List) Describe() string {
	order := "unsorted"
	if l.sorted {
		order = "sorted"
	}
	return fmt.Sprintf("%s %s list %s", order, l.elem, l.name)
}
