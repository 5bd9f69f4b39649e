package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"larder/internal/domain"
)

func testArea(t *testing.T, areas *AreaStore, name string) *domain.StorageArea {
	t.Helper()
	area, err := areas.Create(context.Background(), name, "box", "slate")
	require.NoError(t, err)
	return area
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestItemStoreCreateOrMerge_Creates(t *testing.T) {
	d := openTestDB(t)
	areas := NewAreaStore(d)
	items := NewItemStore(d)
	ctx := context.Background()

	area := testArea(t, areas, "Fridge")

	item, err := items.CreateOrMerge(ctx, area.ID, "Milk", 2, datePtr(2024, time.June, 1))
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, area.ID, item.StorageAreaID)
	assert.Equal(t, "Milk", item.Name)
	assert.Equal(t, 2, item.Quantity)
	assert.False(t, item.IsOpened)
	assert.Nil(t, item.OpenedAt)
	require.NotNil(t, item.ExpiryDate)
	assert.Equal(t, "2024-06-01", item.ExpiryDate.Format(domain.DateLayout))
}

func TestItemStoreCreateOrMerge_MergesCaseInsensitive(t *testing.T) {
	d := openTestDB(t)
	areas := NewAreaStore(d)
	items := NewItemStore(d)
	ctx := context.Background()

	area := testArea(t, areas, "Fridge")

	first, err := items.CreateOrMerge(ctx, area.ID, "Milk", 2, datePtr(2024, time.June, 1))
	require.NoError(t, err)

	merged, err := items.CreateOrMerge(ctx, area.ID, "milk", 3, datePtr(2024, time.June, 1))
	require.NoError(t, err)

	assert.Equal(t, first.ID, merged.ID)
	assert.Equal(t, 5, merged.Quantity)
	assert.Equal(t, "Milk", merged.Name, "first occurrence's casing is kept")
	assert.True(t, first.CreatedAt.Equal(merged.CreatedAt))

	list, err := items.ListByArea(ctx, area.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestItemStoreCreateOrMerge_BothAbsentExpiriesMatch(t *testing.T) {
	d := openTestDB(t)
	areas := NewAreaStore(d)
	items := NewItemStore(d)
	ctx := context.Background()

	area := testArea(t, areas, "Pantry")

	first, err := items.CreateOrMerge(ctx, area.ID, "Rice", 1, nil)
	require.NoError(t, err)
	merged, err := items.CreateOrMerge(ctx, area.ID, "Rice", 1, nil)
	require.NoError(t, err)

	assert.Equal(t, first.ID, merged.ID)
	assert.Equal(t, 2, merged.Quantity)
}

func TestItemStoreCreateOrMerge_DifferentExpiryDoesNotMerge(t *testing.T) {
	d := openTestDB(t)
	areas := NewAreaStore(d)
	items := NewItemStore(d)
	ctx := context.Background()

	area := testArea(t, areas, "Fridge")

	first, err := items.CreateOrMerge(ctx, area.ID, "Milk", 1, datePtr(2024, time.June, 1))
	require.NoError(t, err)
	second, err := items.CreateOrMerge(ctx, area.ID, "Milk", 1, nil)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)

	list, err := items.ListByArea(ctx, area.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestItemStoreCreateOrMerge_DifferentAreaDoesNotMerge(t *testing.T) {
	d := openTestDB(t)
	areas := NewAreaStore(d)
	items := NewItemStore(d)
	ctx := context.Background()

	fridge := testArea(t, areas, "Fridge")
	freezer := testArea(t, areas, "Freezer")

	first, err := items.CreateOrMerge(ctx, fridge.ID, "Peas", 1, nil)
	require.NoError(t, err)
	second, err := items.CreateOrMerge(ctx, freezer.ID, "Peas", 1, nil)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestItemStoreCreateOrMerge_OpenedItemsAreNotMergeTargets(t *testing.T) {
	d := openTestDB(t)
	areas := NewAreaStore(d)
	items := NewItemStore(d)
	ctx := context.Background()

	area := testArea(t, areas, "Fridge")

	opened, err := items.CreateOrMerge(ctx, area.ID, "Juice", 1, nil)
	require.NoError(t, err)
	_, err = items.Open(ctx, opened.ID, 1, time.Now().UTC())
	require.NoError(t, err)

	fresh, err := items.CreateOrMerge(ctx, area.ID, "Juice", 1, nil)
	require.NoError(t, err)
	assert.NotEqual(t, opened.ID, fresh.ID)
	assert.False(t, fresh.IsOpened)
}

func TestItemStoreSetQuantity(t *testing.T) {
	d := openTestDB(t)
	areas := NewAreaStore(d)
	items := NewItemStore(d)
	ctx := context.Background()

	area := testArea(t, areas, "Fridge")
	item, err := items.CreateOrMerge(ctx, area.ID, "Eggs", 6, nil)
	require.NoError(t, err)

	require.NoError(t, items.SetQuantity(ctx, item.ID, 12))

	updated, err := items.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, updated.Quantity)
}

func TestItemStoreSetQuantity_NotFound(t *testing.T) {
	items := NewItemStore(openTestDB(t))

	err := items.SetQuantity(context.Background(), "missing", 3)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestItemStoreOpen_FullQuantityMutatesInPlace(t *testing.T) {
	d := openTestDB(t)
	areas := NewAreaStore(d)
	items := NewItemStore(d)
	ctx := context.Background()

	area := testArea(t, areas, "Fridge")
	item, err := items.CreateOrMerge(ctx, area.ID, "Yogurt", 4, nil)
	require.NoError(t, err)

	now := time.Now().UTC()
	result, err := items.Open(ctx, item.ID, 4, now)
	require.NoError(t, err)
	require.Len(t, result, 1)

	opened := result[0]
	assert.Equal(t, item.ID, opened.ID, "no new record on full open")
	assert.Equal(t, 4, opened.Quantity)
	assert.True(t, opened.IsOpened)
	require.NotNil(t, opened.OpenedAt)

	list, err := items.ListByArea(ctx, area.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestItemStoreOpen_OverOpenAlsoMutatesInPlace(t *testing.T) {
	d := openTestDB(t)
	areas := NewAreaStore(d)
	items := NewItemStore(d)
	ctx := context.Background()

	area := testArea(t, areas, "Fridge")
	item, err := items.CreateOrMerge(ctx, area.ID, "Yogurt", 2, nil)
	require.NoError(t, err)

	result, err := items.Open(ctx, item.ID, 10, time.Now().UTC())
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, 2, result[0].Quantity, "quantity is unchanged by a full open")
	assert.True(t, result[0].IsOpened)
}

func TestItemStoreOpen_PartialSplitsConservingQuantity(t *testing.T) {
	d := openTestDB(t)
	areas := NewAreaStore(d)
	items := NewItemStore(d)
	ctx := context.Background()

	area := testArea(t, areas, "Fridge")
	item, err := items.CreateOrMerge(ctx, area.ID, "Eggs", 12, nil)
	require.NoError(t, err)

	now := time.Now().UTC()
	result, err := items.Open(ctx, item.ID, 4, now)
	require.NoError(t, err)
	require.Len(t, result, 2)

	remaining, opened := result[0], result[1]
	assert.Equal(t, item.ID, remaining.ID)
	assert.Equal(t, 8, remaining.Quantity)
	assert.False(t, remaining.IsOpened)
	assert.Nil(t, remaining.OpenedAt)

	assert.NotEqual(t, item.ID, opened.ID)
	assert.Equal(t, 4, opened.Quantity)
	assert.True(t, opened.IsOpened)
	require.NotNil(t, opened.OpenedAt)
	assert.Equal(t, item.Name, opened.Name)
	assert.Equal(t, item.StorageAreaID, opened.StorageAreaID)
	assert.True(t, item.CreatedAt.Equal(opened.CreatedAt), "split keeps the original created_at")

	assert.Equal(t, 12, remaining.Quantity+opened.Quantity)
}

func TestItemStoreOpen_HalvesRemainingShelfLife(t *testing.T) {
	d := openTestDB(t)
	areas := NewAreaStore(d)
	items := NewItemStore(d)
	ctx := context.Background()

	area := testArea(t, areas, "Fridge")
	now := time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)

	item, err := items.CreateOrMerge(ctx, area.ID, "Ham", 2, datePtr(2024, time.May, 20))
	require.NoError(t, err)

	result, err := items.Open(ctx, item.ID, 1, now)
	require.NoError(t, err)
	require.Len(t, result, 2)

	remaining, opened := result[0], result[1]
	require.NotNil(t, remaining.ExpiryDate)
	assert.Equal(t, "2024-05-20", remaining.ExpiryDate.Format(domain.DateLayout), "unopened remainder keeps its expiry")
	require.NotNil(t, opened.ExpiryDate)
	assert.Equal(t, "2024-05-15", opened.ExpiryDate.Format(domain.DateLayout), "opened units expire in half the days")
}

func TestItemStoreOpen_ExpiryTomorrowOrPastUnchanged(t *testing.T) {
	d := openTestDB(t)
	areas := NewAreaStore(d)
	items := NewItemStore(d)
	ctx := context.Background()

	area := testArea(t, areas, "Fridge")
	now := time.Date(2024, time.May, 10, 8, 0, 0, 0, time.UTC)

	for _, expiry := range []string{"2024-05-11", "2024-05-01"} {
		exp, err := time.ParseInLocation(domain.DateLayout, expiry, time.UTC)
		require.NoError(t, err)

		item, err := items.CreateOrMerge(ctx, area.ID, "Leftovers "+expiry, 1, &exp)
		require.NoError(t, err)

		result, err := items.Open(ctx, item.ID, 1, now)
		require.NoError(t, err)
		require.Len(t, result, 1)
		require.NotNil(t, result[0].ExpiryDate)
		assert.Equal(t, expiry, result[0].ExpiryDate.Format(domain.DateLayout))
	}
}

func TestItemStoreOpen_NotFound(t *testing.T) {
	items := NewItemStore(openTestDB(t))

	_, err := items.Open(context.Background(), "missing", 1, time.Now().UTC())
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestItemStoreDelete(t *testing.T) {
	d := openTestDB(t)
	areas := NewAreaStore(d)
	items := NewItemStore(d)
	ctx := context.Background()

	area := testArea(t, areas, "Fridge")
	item, err := items.CreateOrMerge(ctx, area.ID, "Milk", 1, nil)
	require.NoError(t, err)

	require.NoError(t, items.Delete(ctx, item.ID))

	_, err = items.GetByID(ctx, item.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestItemStoreDelete_NotFound(t *testing.T) {
	items := NewItemStore(openTestDB(t))

	err := items.Delete(context.Background(), "missing")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestItemStoreDeleteByArea(t *testing.T) {
	d := openTestDB(t)
	areas := NewAreaStore(d)
	items := NewItemStore(d)
	ctx := context.Background()

	area := testArea(t, areas, "Freezer")
	_, err := items.CreateOrMerge(ctx, area.ID, "Ice cream", 1, nil)
	require.NoError(t, err)
	_, err = items.CreateOrMerge(ctx, area.ID, "Frozen peas", 2, nil)
	require.NoError(t, err)

	require.NoError(t, items.DeleteByArea(ctx, area.ID))

	list, err := items.ListByArea(ctx, area.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
