package consts_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/autonomy-cases/consts"
)

func TestRegionKey(t *testing.T) {
	mapping := map[string]string{
		"E12000001": "north_east",
		"E12000002": "north_west",
		"E12000003": "yorkshire_and_the_humber",
		"E12000004": "east_midlands",
		"E12000005": "west_midlands",
		"E12000006": "east_of_england",
		"E12000007": "london",
		"E12000008": "south_east",
		"E12000009": "south_west",
	}

	for key, value := range mapping {
		actual, _ := consts.RegionKey(key)
		assert.Equal(t, value, actual, "wrong key")
	}

	_, err := consts.RegionKey("W92000004")
	assert.Error(t, err, "wales is not an english region")
}

func TestIsAreaType(t *testing.T) {
	assert.True(t, consts.IsAreaType("Nation"))
	assert.True(t, consts.IsAreaType("Region"))
	assert.True(t, consts.IsAreaType("Upper tier local authority"))
	assert.False(t, consts.IsAreaType("Lower tier local authority"))
	assert.False(t, consts.IsAreaType("nation"))
}
