package liststore

import (
	"context"
	"math"
	"testing"

	"github.com/dmitrijs2005/listkeeper/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	ctx := context.Background()
	s, repo, clk := newStore(t, "Home", tasks("A", "B")...)

	_, ok := s.Add(ctx, "   ")
	assert.False(t, ok)
	assert.Zero(t, repo.saveCount())

	id, ok := s.Add(ctx, "  C ")
	require.True(t, ok)
	assert.Equal(t, 1, repo.saveCount())

	it, found := s.Snapshot().Item(id)
	require.True(t, found)
	assert.Equal(t, "C", it.Payload.Text)
	assert.Equal(t, 2, it.SortIndex)
	assert.Equal(t, clk.Now(), it.CreatedAt)
}

func TestAdd_EmptyList(t *testing.T) {
	s, _, _ := newStore[models.TaskPayload](t, "Home")
	id, ok := s.Add(context.Background(), "first")
	require.True(t, ok)
	it, _ := s.Snapshot().Item(id)
	assert.Equal(t, 0, it.SortIndex)
}

func TestAddPayload_Shopping(t *testing.T) {
	s, _, _ := newStore[models.ShoppingPayload](t, "Market")
	_, ok := s.AddPayload(context.Background(), models.ShoppingPayload{Name: " Milk ", Quantity: 2, Unit: "l", Price: 1.1})
	require.True(t, ok)
	it, _ := s.Snapshot().At(0)
	assert.Equal(t, models.ShoppingPayload{Name: "Milk", Quantity: 2, Unit: "l", Price: 1.1}, it.Payload)
}

func TestUnknownIDOperationsAreNoops(t *testing.T) {
	ctx := context.Background()
	s, repo, _ := newStore(t, "Home", tasks("A", "B")...)
	var c counter
	s.Subscribe(c.observer())
	before := s.Snapshot()
	missing := uuid.New()

	assert.False(t, s.Toggle(ctx, missing))
	assert.False(t, s.Delete(ctx, missing))
	assert.False(t, s.EditText(ctx, missing, "X"))
	assert.False(t, s.UpdatePayload(ctx, missing, models.TaskPayload{Text: "X"}))

	assert.Zero(t, repo.saveCount())
	assert.Zero(t, c.changes)
	assert.True(t, before.Equal(s.Snapshot()))
}

func TestToggle(t *testing.T) {
	ctx := context.Background()
	s, repo, clk := newStore(t, "Home", tasks("A", "B")...)
	id := s.Snapshot().IDs()[1]

	require.True(t, s.Toggle(ctx, id))
	it, _ := s.Snapshot().Item(id)
	assert.True(t, it.Payload.Done)
	assert.Equal(t, clk.Now(), it.UpdatedAt)
	assert.Equal(t, 1, s.Snapshot().CompletedCount())

	require.True(t, s.Toggle(ctx, id))
	it, _ = s.Snapshot().Item(id)
	assert.False(t, it.Payload.Done)
	assert.Equal(t, 2, repo.saveCount())
}

func TestRename(t *testing.T) {
	ctx := context.Background()
	s, repo, _ := newStore(t, "Home", tasks("A")...)

	assert.False(t, s.Rename(ctx, " "))
	assert.False(t, s.Rename(ctx, " Home "))
	assert.Zero(t, repo.saveCount())

	assert.True(t, s.Rename(ctx, " Work "))
	assert.Equal(t, "Work", s.Snapshot().Title())
	assert.Equal(t, 1, repo.saveCount())
}

func TestEditText(t *testing.T) {
	ctx := context.Background()
	s, repo, _ := newStore(t, "Home", tasks("A", "B")...)
	id := s.Snapshot().IDs()[0]

	assert.False(t, s.EditText(ctx, id, ""))
	assert.False(t, s.EditText(ctx, id, "A "))
	assert.Zero(t, repo.saveCount())

	require.True(t, s.EditText(ctx, id, "Apples"))
	assert.Equal(t, []string{"Apples", "B"}, texts(s.Snapshot()))
}

func TestUpdatePayload(t *testing.T) {
	ctx := context.Background()
	s, repo, _ := newStore(t, "Market", models.ShoppingPayload{Name: "Tea", ActualQuantity: 1})
	id := s.Snapshot().IDs()[0]

	assert.False(t, s.UpdatePayload(ctx, id, models.ShoppingPayload{Name: "Tea", ActualQuantity: 5}))
	assert.False(t, s.UpdatePayload(ctx, id, models.ShoppingPayload{Name: " "}))
	assert.Zero(t, repo.saveCount())

	require.True(t, s.UpdatePayload(ctx, id, models.ShoppingPayload{Name: "Tea", Price: 4, Category: "drinks"}))
	it, _ := s.Snapshot().Item(id)
	assert.Equal(t, models.ShoppingPayload{Name: "Tea", Price: 4, Category: "drinks", ActualQuantity: 1}, it.Payload)
}

func TestDelete_Reindexes(t *testing.T) {
	ctx := context.Background()
	s, repo, _ := newStore(t, "Home", tasks("A", "B", "C")...)
	id := s.Snapshot().IDs()[1]

	require.True(t, s.Delete(ctx, id))
	assert.Equal(t, []string{"A", "C"}, texts(s.Snapshot()))
	assertDense(t, s.Snapshot())
	assert.Equal(t, 1, repo.saveCount())
}

func TestSetNotes(t *testing.T) {
	ctx := context.Background()
	s, repo, _ := newStore(t, "Home", tasks("A")...)

	assert.False(t, s.SetNotes(ctx, "  "))
	require.True(t, s.SetNotes(ctx, " bring keys "))
	assert.Equal(t, "bring keys", s.Snapshot().Notes())
	assert.False(t, s.SetNotes(ctx, "bring keys"))
	assert.Equal(t, 1, repo.saveCount())
}

func TestSetBudget(t *testing.T) {
	ctx := context.Background()
	s, repo, _ := newStore(t, "Home", tasks("A")...)

	assert.False(t, s.SetBudget(ctx, -1, "EUR"))
	assert.False(t, s.SetBudget(ctx, math.NaN(), "EUR"))
	assert.False(t, s.SetBudget(ctx, math.Inf(1), "EUR"))
	assert.Zero(t, repo.saveCount())
	require.True(t, s.SetBudget(ctx, 50, "eur"))
	assert.Equal(t, "EUR", s.Snapshot().Currency())

	assert.False(t, s.SetBudget(ctx, 50, ""))
	require.True(t, s.SetBudget(ctx, 75, ""))
	assert.Equal(t, 75.0, s.Snapshot().Budget())
	assert.Equal(t, "EUR", s.Snapshot().Currency())
	assert.Equal(t, 2, repo.saveCount())
}
