package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	sanFrancisco = Point{Latitude: 37.7749, Longitude: -122.4194}
	losAngeles   = Point{Latitude: 34.0522, Longitude: -118.2437}
	newYork      = Point{Latitude: 40.7128, Longitude: -74.0060}
)

func TestDistanceIdentity(t *testing.T) {
	assert.Equal(t, 0.0, Distance(sanFrancisco, sanFrancisco))
	assert.Equal(t, 0.0, Distance(newYork, newYork))
}

func TestDistanceSymmetry(t *testing.T) {
	pairs := [][2]Point{
		{sanFrancisco, losAngeles},
		{sanFrancisco, newYork},
		{losAngeles, newYork},
		{{Latitude: -33.8688, Longitude: 151.2093}, {Latitude: 51.5074, Longitude: -0.1278}},
	}
	for _, pair := range pairs {
		ab := Distance(pair[0], pair[1])
		ba := Distance(pair[1], pair[0])
		assert.InEpsilon(t, ab, ba, 1e-9)
	}
}

func TestDistanceKnownValues(t *testing.T) {
	// Great-circle SF to LA is about 347 miles
	assert.InDelta(t, 347, Distance(sanFrancisco, losAngeles), 2)
	// SF to NY is about 2570 miles
	assert.InDelta(t, 2570, Distance(sanFrancisco, newYork), 10)
}

func TestDistanceShortRange(t *testing.T) {
	// One degree of latitude is about 69 miles
	a := Point{Latitude: 40, Longitude: -100}
	b := Point{Latitude: 41, Longitude: -100}
	assert.InDelta(t, 69, Distance(a, b), 1)
}

func TestDistanceNonNegative(t *testing.T) {
	points := []Point{sanFrancisco, losAngeles, newYork, {Latitude: 0, Longitude: 0}, {Latitude: -90, Longitude: 180}}
	for _, a := range points {
		for _, b := range points {
			assert.False(t, math.Signbit(Distance(a, b)))
		}
	}
}
