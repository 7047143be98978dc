package container

import (
	"math/rand"
	"slices"
	"strings"
	"testing"
)

// auditAVL walks the whole tree checking stored heights and the balance
// invariant at every node.
func auditAVL[T any](t *testing.T, o *OrderedSet[T]) {
	t.Helper()

	var walk func(n *node[T]) int
	walk = func(n *node[T]) int {
		if n == nil {
			return 0
		}
		lh := walk(n.left)
		rh := walk(n.right)

		want := 1 + max(lh, rh)
		if n.height != want {
			t.Fatalf("stale height at %v: stored %d, want %d", n.key, n.height, want)
		}
		if lh-rh > 1 || rh-lh > 1 {
			t.Fatalf("balance violated at %v: left %d, right %d", n.key, lh, rh)
		}
		return want
	}
	walk(o.root)
}

func TestOrderedSetScenario(t *testing.T) {
	o := NewOrderedSet[int]()
	for _, v := range []int{5, 3, 7} {
		if !o.Add(v) {
			t.Fatalf("Add(%d) should insert", v)
		}
	}

	if got := o.Values(); !slices.Equal(got, []int{3, 5, 7}) {
		t.Errorf("Values = %v, want [3 5 7]", got)
	}

	if v, ok := o.Ceiling(4); !ok || v != 5 {
		t.Errorf("Ceiling(4) = (%d, %v), want (5, true)", v, ok)
	}
	if v, ok := o.Floor(4); !ok || v != 3 {
		t.Errorf("Floor(4) = (%d, %v), want (3, true)", v, ok)
	}
	if _, ok := o.Ceiling(8); ok {
		t.Error("Ceiling(8) should be absent")
	}
	if _, ok := o.Floor(2); ok {
		t.Error("Floor(2) should be absent")
	}
	if v, ok := o.Floor(7); !ok || v != 7 {
		t.Errorf("Floor(7) = (%d, %v), want exact match", v, ok)
	}
}

func TestOrderedSetDuplicate(t *testing.T) {
	o := NewOrderedSet[int]()

	if !o.Add(1) {
		t.Fatal("first Add should insert")
	}
	if o.Add(1) {
		t.Error("Add of an equal key should be a no-op returning false")
	}
	if o.Len() != 1 {
		t.Errorf("Len = %d, want 1", o.Len())
	}
}

func TestOrderedSetMinMax(t *testing.T) {
	o := NewOrderedSet[int]()

	if _, ok := o.Min(); ok {
		t.Error("Min on empty set should miss")
	}
	if _, ok := o.Max(); ok {
		t.Error("Max on empty set should miss")
	}

	for _, v := range []int{10, 2, 8, 4, 6} {
		o.Add(v)
	}
	if v, _ := o.Min(); v != 2 {
		t.Errorf("Min = %d, want 2", v)
	}
	if v, _ := o.Max(); v != 10 {
		t.Errorf("Max = %d, want 10", v)
	}
}

func TestOrderedSetDelete(t *testing.T) {
	o := NewOrderedSet[int]()
	for i := 1; i <= 10; i++ {
		o.Add(i)
	}

	if o.Delete(99) {
		t.Error("Delete of missing key should return false")
	}

	// leaf, one-child, and two-child deletions
	for _, v := range []int{10, 9, 5, 1} {
		if !o.Delete(v) {
			t.Fatalf("Delete(%d) should succeed", v)
		}
		auditAVL(t, o)
	}

	if got := o.Values(); !slices.Equal(got, []int{2, 3, 4, 6, 7, 8}) {
		t.Errorf("Values after deletes = %v", got)
	}
	if o.Len() != 6 {
		t.Errorf("Len = %d, want 6", o.Len())
	}
}

func TestOrderedSetRange(t *testing.T) {
	o := NewOrderedSet[int]()
	for i := 0; i < 100; i += 10 {
		o.Add(i)
	}

	if got := o.Range(25, 65); !slices.Equal(got, []int{30, 40, 50, 60}) {
		t.Errorf("Range(25, 65) = %v", got)
	}
	if got := o.Range(30, 30); !slices.Equal(got, []int{30}) {
		t.Errorf("inclusive bounds: Range(30, 30) = %v", got)
	}
	if got := o.Range(91, 200); len(got) != 0 {
		t.Errorf("Range past max = %v, want empty", got)
	}
	if got := o.Range(200, 100); len(got) != 0 {
		t.Errorf("inverted Range = %v, want empty", got)
	}
}

func TestOrderedSetInvariantRandomized(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	o := NewOrderedSet[int]()
	reference := map[int]struct{}{}

	for i := 0; i < 3000; i++ {
		v := r.Intn(500)
		if r.Intn(3) == 0 {
			_, present := reference[v]
			if got := o.Delete(v); got != present {
				t.Fatalf("Delete(%d) = %v, reference says %v", v, got, present)
			}
			delete(reference, v)
		} else {
			_, present := reference[v]
			if got := o.Add(v); got == present {
				t.Fatalf("Add(%d) = %v, reference says %v", v, got, !present)
			}
			reference[v] = struct{}{}
		}

		if i%100 == 0 {
			auditAVL(t, o)
		}
	}

	auditAVL(t, o)

	if o.Len() != len(reference) {
		t.Fatalf("Len = %d, reference %d", o.Len(), len(reference))
	}

	values := o.Values()
	for i := 1; i < len(values); i++ {
		if values[i-1] >= values[i] {
			t.Fatalf("in-order walk not strictly ascending at %d: %d >= %d",
				i, values[i-1], values[i])
		}
	}
	for _, v := range values {
		if _, ok := reference[v]; !ok {
			t.Fatalf("tree holds %d, reference does not", v)
		}
	}
}

func TestOrderedSetCustomComparator(t *testing.T) {
	// descending order
	o := NewOrderedSetFunc[string](func(a, b string) int {
		return strings.Compare(b, a)
	})

	for _, v := range []string{"b", "a", "c"} {
		o.Add(v)
	}

	if got := o.Values(); !slices.Equal(got, []string{"c", "b", "a"}) {
		t.Errorf("Values under descending order = %v", got)
	}
	if v, _ := o.Min(); v != "c" {
		t.Errorf("Min under descending order = %q, want c", v)
	}
}
