package models

import "strings"

type DescriptionBlockKind string

const (
	BlockParagraph  DescriptionBlockKind = "paragraph"
	BlockSubheading DescriptionBlockKind = "subheading"
	BlockBulletList DescriptionBlockKind = "bullets"
)

// DescriptionBlock is one rendered unit of a tender's full description.
// Bullet runs are folded into a single block carrying all items.
type DescriptionBlock struct {
	Kind  DescriptionBlockKind
	Text  string
	Items []string
}

// DescriptionBlocks parses the light markup convention used by catalog
// descriptions: lines starting "* " form an enclosing bulleted list, lines
// starting "### " are subheadings, every other non-blank line is a paragraph.
func DescriptionBlocks(description string) []DescriptionBlock {
	var blocks []DescriptionBlock
	var bullets []string

	flush := func() {
		if len(bullets) > 0 {
			blocks = append(blocks, DescriptionBlock{Kind: BlockBulletList, Items: bullets})
			bullets = nil
		}
	}

	for _, line := range strings.Split(description, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			flush()
		case strings.HasPrefix(trimmed, "* "):
			bullets = append(bullets, strings.TrimPrefix(trimmed, "* "))
		case strings.HasPrefix(trimmed, "### "):
			flush()
			blocks = append(blocks, DescriptionBlock{Kind: BlockSubheading, Text: strings.TrimPrefix(trimmed, "### ")})
		default:
			flush()
			blocks = append(blocks, DescriptionBlock{Kind: BlockParagraph, Text: trimmed})
		}
	}
	flush()

	return blocks
}
