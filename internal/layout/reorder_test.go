package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ident(s string) string { return s }

func TestOrdering_Reorder(t *testing.T) {
	o := NewOrdering([]string{"a", "b", "c", "d"}, ident)

	assert.True(t, o.Reorder("a", 2))
	assert.Equal(t, []string{"b", "c", "a", "d"}, o.Items())

	assert.True(t, o.Reorder("d", 0))
	assert.Equal(t, []string{"d", "b", "c", "a"}, o.Items())
}

func TestOrdering_ReorderNoops(t *testing.T) {
	o := NewOrdering([]string{"a", "b", "c"}, ident)

	assert.False(t, o.Reorder("missing", 0))
	assert.False(t, o.Reorder("b", 1), "dropping onto itself")
	assert.False(t, o.Reorder("b", 3))
	assert.False(t, o.Reorder("b", -1))
	assert.Equal(t, []string{"a", "b", "c"}, o.Items())
}

func TestOrdering_ResetDiscardsReordering(t *testing.T) {
	source := []string{"a", "b", "c"}
	o := NewOrdering(source, ident)
	o.Reorder("c", 0)

	o.Reset(append(source, "d"))
	assert.Equal(t, []string{"a", "b", "c", "d"}, o.Items())
}

func TestOrdering_ItemsIsACopy(t *testing.T) {
	o := NewOrdering([]string{"a", "b"}, ident)
	items := o.Items()
	items[0] = "z"
	assert.Equal(t, []string{"a", "b"}, o.Items())
}
