package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/troopledger/troopledger/internal/importer"
	"github.com/troopledger/troopledger/internal/model"
)

func TestAllocateVirtualBooth(t *testing.T) {
	set := newTestSet(t)
	importer.ImportSmartCookieTransfers(set, []importer.TransferRecord{
		{ID: "T-1", Type: "VBD", From: testTroop, To: "Alice",
			OrderNumber: "100055", Date: "2026-01-18",
			Quantities: map[string]int{"TREFOILS": 3}, Amount: 15.0},
	})

	dataset := runDataset(t, set, nil)

	alice := dataset.Participants["Alice"]
	require.Len(t, alice.Allocations, 1)
	alloc := alice.Allocations[0]
	assert.Equal(t, model.ChannelVirtualBooth, alloc.Channel)
	assert.Equal(t, "100055", alloc.OrderNumber, "virtual-booth credits keep the site order number")
	assert.Equal(t, 3, alloc.Varieties[model.Trefoils])
	assert.Equal(t, 15.0, alloc.Amount)
	assert.Equal(t, 3, alice.Totals.Credited)
}

func TestAllocateDirectShipOmitsOrderNumbers(t *testing.T) {
	set := newTestSet(t)
	importer.ImportSmartCookieTransfers(set, []importer.TransferRecord{
		{ID: "T-1", Type: "DSD", From: testTroop, Date: "2026-01-22",
			Quantities: map[string]int{"THIN_MINTS": 10},
			Shares: []importer.ShareRecord{
				{Girl: "Alice", Quantities: map[string]int{"THIN_MINTS": 7}, Amount: 35},
				{Girl: "Bea", Quantities: map[string]int{"THIN_MINTS": 3}, Amount: 15},
			}},
	})

	dataset := runDataset(t, set, nil)
	require.Empty(t, dataset.Warnings)

	for _, name := range []string{"Alice", "Bea"} {
		p := dataset.Participants[name]
		require.Len(t, p.Allocations, 1, "participant %s", name)
		alloc := p.Allocations[0]
		assert.Equal(t, model.ChannelDirectShip, alloc.Channel)
		// The source reports direct-ship volume in aggregate; inventing an
		// order number here would be fabrication.
		assert.Empty(t, alloc.OrderNumber)
		assert.NotEmpty(t, alloc.Note)
	}
}

func TestAllocateBoothSaleCopiesShareContext(t *testing.T) {
	set := newTestSet(t)
	importer.ImportSmartCookieTransfers(set, []importer.TransferRecord{
		{ID: "T-1", Type: "SBD", From: testTroop, Date: "2026-01-20",
			Quantities: map[string]int{"SAMOAS": 6, "THIN_MINTS": 2}, Donation: 1,
			Shares: []importer.ShareRecord{
				{Girl: "Alice", Quantities: map[string]int{"SAMOAS": 4, "THIN_MINTS": 2}, Donation: 1,
					Amount: 34, Store: "Safeway on 5th", BoothDate: "2026-01-20", TimeWindow: "10:00-12:00"},
				{Girl: "Bea", Quantities: map[string]int{"SAMOAS": 2},
					Amount: 10, Store: "Safeway on 5th", BoothDate: "2026-01-20", TimeWindow: "10:00-12:00"},
			}},
	})

	dataset := runDataset(t, set, nil)
	require.Empty(t, dataset.Warnings, "a conserving divider payload is clean")

	alice := dataset.Participants["Alice"]
	require.Len(t, alice.Allocations, 1)
	alloc := alice.Allocations[0]
	assert.Equal(t, model.ChannelBoothSale, alloc.Channel)
	assert.Equal(t, "Safeway on 5th", alloc.Store)
	assert.Equal(t, "2026-01-20", alloc.BoothDate)
	assert.Equal(t, "10:00-12:00", alloc.TimeWindow)
	assert.Equal(t, 1, alloc.Donation)
}

func TestAllocateConservationViolationWarns(t *testing.T) {
	set := newTestSet(t)
	importer.ImportSmartCookieTransfers(set, []importer.TransferRecord{
		{ID: "T-1", Type: "SBD", From: testTroop, Date: "2026-01-20",
			Quantities: map[string]int{"SAMOAS": 6},
			Shares: []importer.ShareRecord{
				// Shares sum to 5, the transfer says 6.
				{Girl: "Alice", Quantities: map[string]int{"SAMOAS": 3}},
				{Girl: "Bea", Quantities: map[string]int{"SAMOAS": 2}},
			}},
	})

	dataset := runDataset(t, set, nil)

	require.Len(t, dataset.Warnings, 1)
	assert.Equal(t, model.WarningInternal, dataset.Warnings[0].Type)
	assert.Equal(t, "T-1", dataset.Warnings[0].Context["transferId"])
}

func TestAllocateDividerWithoutSharesFallsBackToRecipient(t *testing.T) {
	set := newTestSet(t)
	importer.ImportSmartCookieTransfers(set, []importer.TransferRecord{
		{ID: "T-1", Type: "DSD", From: testTroop, To: "Alice",
			Date: "2026-01-22", Quantities: map[string]int{"THIN_MINTS": 4}, Amount: 20},
	})

	dataset := runDataset(t, set, nil)
	require.Empty(t, dataset.Warnings)

	alice := dataset.Participants["Alice"]
	require.Len(t, alice.Allocations, 1)
	assert.Equal(t, 4, alice.Allocations[0].Varieties[model.ThinMints])
	assert.Empty(t, alice.Allocations[0].OrderNumber)
}

func TestAllocateDividerWithNoTargetWarns(t *testing.T) {
	set := newTestSet(t)
	importer.ImportSmartCookieTransfers(set, []importer.TransferRecord{
		{ID: "T-1", Type: "SBD", From: testTroop,
			Date: "2026-01-20", Quantities: map[string]int{"SAMOAS": 6}},
	})

	dataset := runDataset(t, set, nil)

	require.Len(t, dataset.Warnings, 1)
	assert.Equal(t, model.WarningInternal, dataset.Warnings[0].Type)
}

func TestAllocationsDoNotTouchInventory(t *testing.T) {
	set := newTestSet(t)
	importer.ImportSmartCookieTransfers(set, []importer.TransferRecord{
		{ID: "T-1", Type: "SBD", From: testTroop, Date: "2026-01-20",
			Quantities: map[string]int{"SAMOAS": 6},
			Shares: []importer.ShareRecord{
				{Girl: "Alice", Quantities: map[string]int{"SAMOAS": 6}},
			}},
	})

	dataset := runDataset(t, set, nil)

	alice := dataset.Participants["Alice"]
	assert.Equal(t, 0, alice.PickedUp[model.Samoas], "booth credit is sales credit, not stock")
	assert.Equal(t, 0, alice.NetInventory[model.Samoas])
	assert.Equal(t, 6, alice.Totals.Credited)
}
