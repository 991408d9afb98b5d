package models_test

import (
	"testing"

	"tenders-ai/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptionBlocks(t *testing.T) {
	description := "Uvodni odstavek razpisa.\n" +
		"### Upravičeni stroški\n" +
		"* Nakup opreme\n" +
		"* Stroški svetovanja\n" +
		"Zaključni odstavek."

	blocks := models.DescriptionBlocks(description)
	require.Len(t, blocks, 4)

	assert.Equal(t, models.BlockParagraph, blocks[0].Kind)
	assert.Equal(t, "Uvodni odstavek razpisa.", blocks[0].Text)

	assert.Equal(t, models.BlockSubheading, blocks[1].Kind)
	assert.Equal(t, "Upravičeni stroški", blocks[1].Text)

	assert.Equal(t, models.BlockBulletList, blocks[2].Kind)
	assert.Equal(t, []string{"Nakup opreme", "Stroški svetovanja"}, blocks[2].Items)

	assert.Equal(t, models.BlockParagraph, blocks[3].Kind)
}

func TestDescriptionBlocksBulletRunEndsAtBlankLine(t *testing.T) {
	blocks := models.DescriptionBlocks("* ena\n* dve\n\n* tri")
	require.Len(t, blocks, 2)
	assert.Equal(t, []string{"ena", "dve"}, blocks[0].Items)
	assert.Equal(t, []string{"tri"}, blocks[1].Items)
}

func TestDescriptionBlocksEmpty(t *testing.T) {
	assert.Empty(t, models.DescriptionBlocks(""))
	assert.Empty(t, models.DescriptionBlocks("\n\n"))
}
