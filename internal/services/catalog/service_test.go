package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/megahubnet/portal/internal/model"
)

func TestFindReturnsItem(t *testing.T) {
	svc := NewDefault()

	item, err := svc.Find("frame-neon")
	require.NoError(t, err)
	assert.Equal(t, "Neon Frame", item.DisplayName)
	assert.Equal(t, 500, item.Price)
	assert.Equal(t, model.SlotFrame, item.Slot)
}

func TestFindUnknownItem(t *testing.T) {
	svc := NewDefault()

	_, err := svc.Find("frame-diamond")
	assert.ErrorIs(t, err, model.ErrUnknownItem)
}

func TestAllPreservesOrder(t *testing.T) {
	svc := NewDefault()

	items := svc.All()
	require.Len(t, items, 5)
	assert.Equal(t, model.ItemID("frame-neon"), items[0].ID)
	assert.Equal(t, model.ItemID("frame-gold"), items[1].ID)
}

func TestBySlot(t *testing.T) {
	svc := NewDefault()

	glows := svc.BySlot(model.SlotGlow)
	require.Len(t, glows, 2)
	for _, item := range glows {
		assert.Equal(t, model.SlotGlow, item.Slot)
	}

	badges := svc.BySlot(model.SlotBadge)
	assert.Len(t, badges, 1)
}

func TestDefaultItemsHavePositivePrices(t *testing.T) {
	for _, item := range DefaultItems() {
		assert.Positive(t, item.Price, "item %s", item.ID)
		assert.NotEmpty(t, item.DisplayName)
	}
}
