package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseUnitFor(t *testing.T) {
	cases := []struct {
		name string
		want BaseUnit
	}{
		{"Feeds", BaseUnitWeight},
		{"feed", BaseUnitWeight},
		{"FEEDS 50KG", BaseUnitWeight},
		{"  Feeds  ", BaseUnitWeight},
		{"Vitamins", BaseUnitCount},
		{"Equipment", BaseUnitCount},
		{"Feed Supplements", BaseUnitCount},
	}
	for _, tc := range cases {
		pc := ProductCategory{CategoryName: tc.name}
		assert.Equal(t, tc.want, pc.BaseUnitFor(), tc.name)
	}
}
