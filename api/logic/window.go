/* window.go
 * Contains the window policies that bound and order a provider result list before it is rendered
 * Authors: Zachary Bower
 */

package logic

import "fmt"

// Unbounded can be passed as n to take every item
const Unbounded = -1

// PolicyKind names a windowing rule
type PolicyKind string

const (
	// Top takes the first n items in provider order. Standings arrive rank-ordered
	Top PolicyKind = "top"
	// Latest walks back from the end of an oldest-to-newest list, yielding newest first
	Latest PolicyKind = "latest"
	// Soonest takes the first n items of a soonest-first list
	Soonest PolicyKind = "soonest"
)

// Policy pairs a windowing rule with its size
type Policy struct {
	Kind PolicyKind
	N    int
}

// String implements fmt.Stringer
func (p Policy) String() string {
	if p.N < 0 {
		return fmt.Sprintf("%s(all)", p.Kind)
	}
	return fmt.Sprintf("%s(%d)", p.Kind, p.N)
}

// size clamps n to the length of the list. A negative n means the whole list
func size(n int, length int) int {
	if n < 0 || n > length {
		return length
	}
	return n
}

// TopN returns the first n items of items in their original order
// Preconditions: items is in provider order
// Postconditions: Returns min(n, len(items)) items, or every item when n is Unbounded
func TopN[T any](items []T, n int) []T {
	k := size(n, len(items))
	out := make([]T, k)
	copy(out, items[:k])
	return out
}

// LatestN returns up to n items from the tail of items, newest first
// Preconditions: items is ordered oldest to newest
// Postconditions: Returns min(n, len(items)) items in reverse order, starting from the last element
func LatestN[T any](items []T, n int) []T {
	k := size(n, len(items))
	out := make([]T, 0, k)
	for i := len(items) - 1; i >= len(items)-k; i-- {
		out = append(out, items[i])
	}
	return out
}

// SoonestN returns the first n items of a soonest-first list
func SoonestN[T any](items []T, n int) []T {
	return TopN(items, n)
}

// Select applies a policy to items. An unrecognised policy kind is a programming error and returns an error
func Select[T any](items []T, p Policy) ([]T, error) {
	switch p.Kind {
	case Top:
		return TopN(items, p.N), nil
	case Latest:
		return LatestN(items, p.N), nil
	case Soonest:
		return SoonestN(items, p.N), nil
	default:
		return nil, fmt.Errorf("unknown window policy %q", p.Kind)
	}
}
