package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayOfIsStableAcrossOneLocalDay(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)

	morning := time.Date(2025, 10, 4, 1, 0, 0, 0, loc)
	evening := time.Date(2025, 10, 4, 23, 30, 0, 0, loc)
	assert.True(t, dayOf(morning).Equal(dayOf(evening)),
		"same local day must map to one key even when the UTC days differ")

	nextMorning := time.Date(2025, 10, 5, 0, 30, 0, 0, loc)
	assert.False(t, dayOf(evening).Equal(dayOf(nextMorning)))
}
