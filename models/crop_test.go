package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCropName(t *testing.T) {
	want := []string{
		"Rice", "Maize", "Jute", "Cotton", "Coconut", "Papaya", "Orange", "Apple",
		"Muskmelon", "Watermelon", "Grapes", "Mango", "Banana", "Pomegranate", "Lentil",
		"Blackgram", "Mungbean", "Mothbeans", "Pigeonpeas", "Kidneybeans", "Chickpea", "Coffee",
	}
	for i, name := range want {
		assert.Equal(t, name, CropName(i+1))
	}
	for _, idx := range []int{-1, 0, CropClassCount + 1, 100} {
		assert.Equal(t, UnknownCrop, CropName(idx), "index %d", idx)
	}
}

func TestCropIndex(t *testing.T) {
	idx, ok := CropIndex("rice")
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	idx, ok = CropIndex(" KidneyBeans ")
	assert.True(t, ok)
	assert.Equal(t, 20, idx)

	for i := 1; i <= CropClassCount; i++ {
		idx, ok := CropIndex(CropName(i))
		assert.True(t, ok)
		assert.Equal(t, i, idx)
	}

	_, ok = CropIndex("wheat")
	assert.False(t, ok)
}

func TestLookupCropProfile(t *testing.T) {
	p, ok := LookupCropProfile("Cotton")
	assert.True(t, ok)
	assert.Equal(t, CropProfile{Temp: "21–30°C", Rainfall: "75–150mm", Soil: "Black Soil"}, p)

	_, ok = LookupCropProfile("cotton")
	assert.False(t, ok)
}

func TestInputsVector(t *testing.T) {
	in := Inputs{N: 1, P: 2, K: 3, Temp: 4, Humidity: 5, Ph: 6, Rainfall: 7}
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6, 7}, in.Vector())
	assert.Len(t, FeatureNames, len(in.Vector()))
}
