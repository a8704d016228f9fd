package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlotsCatalog(t *testing.T) {
	keys := make([]SlotKey, 0, len(Slots))
	for _, s := range Slots {
		keys = append(keys, s.Key)
	}

	assert.Equal(t, []SlotKey{
		SlotProfilePhoto,
		SlotAadharCard,
		SlotPanCard,
		SlotTenthMarksheet,
		SlotTwelfthMarksheet,
		SlotCompetitiveMarksheet,
	}, keys)
}

func TestLookupSlot(t *testing.T) {
	s, ok := LookupSlot(SlotPanCard)
	assert.True(t, ok)
	assert.Equal(t, "PAN Card", s.Label)

	_, ok = LookupSlot("drivingLicence")
	assert.False(t, ok)
}
