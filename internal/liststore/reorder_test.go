package liststore

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveOffsets(t *testing.T) {
	base := []string{"A", "B", "C", "D"}
	cases := []struct {
		name string
		from []int
		to   int
		want []string
		ok   bool
	}{
		{"forward", []int{0}, 3, []string{"B", "C", "A", "D"}, true},
		{"to end", []int{0}, 4, []string{"B", "C", "D", "A"}, true},
		{"backward", []int{3}, 0, []string{"D", "A", "B", "C"}, true},
		{"block", []int{2, 0}, 4, []string{"B", "D", "A", "C"}, true},
		{"duplicated source", []int{1, 1}, 0, []string{"B", "A", "C", "D"}, true},
		{"in place", []int{1}, 2, []string{"A", "B", "C", "D"}, true},
		{"bad source", []int{4}, 0, nil, false},
		{"negative source", []int{-1}, 0, nil, false},
		{"bad destination", []int{0}, 5, nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := moveOffsets(base, tc.from, tc.to)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMove(t *testing.T) {
	ctx := context.Background()
	s, repo, _ := newStore(t, "Home", tasks("A", "B", "C", "D")...)

	require.True(t, s.Move(ctx, []int{0}, 3))
	assert.Equal(t, []string{"B", "C", "A", "D"}, texts(s.Snapshot()))
	assertDense(t, s.Snapshot())

	assert.False(t, s.Move(ctx, []int{1}, 1))
	assert.False(t, s.Move(ctx, []int{1}, 2))
	assert.False(t, s.Move(ctx, []int{7}, 0))
	assert.False(t, s.Move(ctx, nil, 0))
	assert.Equal(t, 1, repo.saveCount())

	for _, it := range s.Snapshot().Items() {
		assert.Equal(t, t0, it.UpdatedAt)
	}
}

func TestReorder_PartialList(t *testing.T) {
	ctx := context.Background()
	s, repo, _ := newStore(t, "Home", tasks("A", "B", "C", "D")...)
	ids := s.Snapshot().IDs()
	a, b, c, d := ids[0], ids[1], ids[2], ids[3]

	require.True(t, s.Reorder(ctx, []uuid.UUID{c, b}))
	assert.Equal(t, []uuid.UUID{c, b, a, d}, s.Snapshot().IDs())
	assertDense(t, s.Snapshot())

	assert.False(t, s.Reorder(ctx, []uuid.UUID{c, c, uuid.New(), b}))
	assert.False(t, s.Reorder(ctx, nil))
	assert.Equal(t, 1, repo.saveCount())

	require.True(t, s.Reorder(ctx, []uuid.UUID{d, d, a}))
	assert.Equal(t, []uuid.UUID{d, a, c, b}, s.Snapshot().IDs())
}
