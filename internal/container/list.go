package container

import (
	"errors"
	"fmt"
	"strings"
)

var ErrIndexOutOfBounds = errors.New("container: index out of bounds")

type listNode[T any] struct {
	value T
	next  *listNode[T]
}

// List is a singly linked sequence with Python-style negative indexing:
// index -1 addresses the last element. The tail pointer is a cache for
// O(1) access to the end and is reassigned whenever the tail changes.
type List[T any] struct {
	head   *listNode[T]
	tail   *listNode[T]
	length int
}

// NewList creates an empty list.
func NewList[T any]() *List[T] {
	return &List[T]{}
}

// Len returns the number of elements.
func (l *List[T]) Len() int {
	return l.length
}

// Set inserts a new node at index, shifting the rest toward the tail.
// Valid indices are 0..=length (length appends); negative indices count
// from the end.
func (l *List[T]) Set(index int, value T) error {
	idx, err := l.resolve(index, l.length)
	if err != nil {
		return err
	}

	n := &listNode[T]{value: value}

	switch {
	case idx == 0:
		n.next = l.head
		l.head = n
		if l.tail == nil {
			l.tail = n
		}
	case idx == l.length:
		l.tail.next = n
		l.tail = n
	default:
		prev := l.head
		for i := 0; i < idx-1; i++ {
			prev = prev.next
		}
		n.next = prev.next
		prev.next = n
	}

	l.length++
	return nil
}

// Get returns the element at index. Valid indices are 0..length-1;
// negative indices count from the end.
func (l *List[T]) Get(index int) (T, error) {
	var zero T

	idx, err := l.resolve(index, l.length-1)
	if err != nil {
		return zero, err
	}

	if idx == l.length-1 {
		return l.tail.value, nil
	}

	n := l.head
	for i := 0; i < idx; i++ {
		n = n.next
	}
	return n.value, nil
}

// Remove unlinks the node at index. Removing past the end is a silent
// no-op; negative indices count from the end.
func (l *List[T]) Remove(index int) {
	if index < 0 {
		index = l.length + index
		if index < 0 {
			return
		}
	}
	if index >= l.length {
		return
	}

	if index == 0 {
		l.head = l.head.next
		if l.head == nil {
			l.tail = nil
		}
		l.length--
		return
	}

	prev := l.head
	for i := 0; i < index-1; i++ {
		prev = prev.next
	}
	prev.next = prev.next.next
	if prev.next == nil {
		l.tail = prev
	}
	l.length--
}

// String renders the list as "v1->v2->...->vn".
func (l *List[T]) String() string {
	var sb strings.Builder
	for n := l.head; n != nil; n = n.next {
		if n != l.head {
			sb.WriteString("->")
		}
		fmt.Fprint(&sb, n.value)
	}
	return sb.String()
}

// resolve normalizes a possibly-negative index and bounds-checks it
// against the given upper limit (inclusive).
func (l *List[T]) resolve(index, limit int) (int, error) {
	if index < 0 {
		index = l.length + index
	}
	if index < 0 || index > limit {
		return 0, ErrIndexOutOfBounds
	}
	return index, nil
}
