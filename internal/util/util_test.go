package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_MakeTextList(t *testing.T) {
	testCases := []struct {
		name   string
		items  []string
		quoted bool
		expect string
	}{
		{name: "empty", expect: ""},
		{name: "one", items: []string{"he"}, expect: "he"},
		{name: "two", items: []string{"he", "she"}, expect: "he and she"},
		{name: "three quoted", items: []string{"a", "b", "c"}, quoted: true, expect: `"a", "b", and "c"`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual := MakeTextList(tc.items, tc.quoted)

			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_OrderedSet(t *testing.T) {
	assert := assert.New(t)

	s := OrderedSetOf("c", "a", "c", "b")

	assert.Equal([]string{"c", "a", "b"}, s.Elements())
	assert.Equal(3, s.Len())
	assert.True(s.Has("a"))
	assert.False(s.Has("d"))
	assert.Equal(1, s.IndexOf("a"))
	assert.Equal(-1, s.IndexOf("d"))
	assert.False(s.Add("a"))
	assert.True(s.Add("d"))
	assert.Equal("{c, a, b, d}", s.String())

	var nilSet *OrderedSet[string]
	assert.Equal(0, nilSet.Len())
	assert.False(nilSet.Has("a"))
}

func Test_Stack(t *testing.T) {
	assert := assert.New(t)

	s := Stack[int]{Of: []int{1}}
	s.Push(2)
	s.Push(3)

	assert.Equal(3, s.Peek())
	assert.Equal(3, s.Pop())
	assert.Equal(2, s.Pop())
	assert.Equal(1, s.Len())
	assert.False(s.Empty())
	assert.Equal(1, s.Pop())
	assert.True(s.Empty())
}

func Test_KeySet(t *testing.T) {
	assert := assert.New(t)

	s := KeySetOf([]string{"b", "a"})
	s.Add("c")

	assert.True(s.All([]string{"a", "c"}))
	assert.False(s.All([]string{"a", "d"}))
	assert.True(s.All(nil))
	assert.Equal("{a, b, c}", s.StringOrdered())
	assert.True(s.Equal(KeySetOf([]string{"c", "b", "a"})))

	cp := s.Copy()
	cp.Remove("a")
	assert.True(s.Has("a"))
	assert.False(cp.Has("a"))
}

func Test_SortBy(t *testing.T) {
	assert := assert.New(t)

	in := []int{3, 1, 2}
	out := SortBy(in, func(l, r int) bool { return l < r })

	assert.Equal([]int{1, 2, 3}, out)
	assert.Equal([]int{3, 1, 2}, in)
}
