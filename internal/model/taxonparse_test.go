package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirri-tools/strainsync/internal/errors"
)

func TestParseTaxon(t *testing.T) {
	tax, err := ParseTaxon("Aspergillus niger subsp. awamori var. phoenicis")
	require.NoError(t, err)
	assert.Equal(t, "Aspergillus", tax.Genus)
	assert.Equal(t, "niger", tax.Species)
	assert.Equal(t, "awamori", tax.Ranks[RankSubspecies].Name)
	assert.Equal(t, "phoenicis", tax.Ranks[RankVariety].Name)
}

func TestParseTaxon_GenusOnly(t *testing.T) {
	tax, err := ParseTaxon("Aspergillus")
	require.NoError(t, err)
	assert.Equal(t, "Aspergillus", tax.Genus)
	assert.Empty(t, tax.Species)
}

func TestParseTaxon_PlaceholderSpecies(t *testing.T) {
	tax, err := ParseTaxon("Genus sp.")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPlaceholderSpecies))
	require.NotNil(t, tax, "genus survives for the lenient path")
	assert.Equal(t, "Genus", tax.Genus)
	assert.Empty(t, tax.Species)
}

func TestParseTaxon_BadRankToken(t *testing.T) {
	_, err := ParseTaxon("Genus species foo bar")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrPlaceholderSpecies))
}

func TestParseTaxon_DanglingToken(t *testing.T) {
	_, err := ParseTaxon("Genus species subsp.")
	assert.Error(t, err)
}

func TestParseTaxon_Empty(t *testing.T) {
	_, err := ParseTaxon("   ")
	assert.Error(t, err)
}
