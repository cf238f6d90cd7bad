package blocks

// Reconcile carries tags from the blocks of the previous parse over to the
// blocks of a new parse and returns next.
//
// The rules, in priority order:
//   - newTag, when non-nil, goes to the last block of next; that block is
//     then left alone.
//   - With no tagged block in prev there is nothing to carry.
//   - When the block count is unchanged, tags move by position.
//   - When blocks were added, each tagged previous block is looked up by
//     pattern identity, then by identical corpus text. A tag whose block
//     cannot be found is dropped.
//   - When blocks were removed, each new block takes the tag of a tagged
//     previous block with the same pattern identity.
//
// A new block receives at most one carried tag and a previous tag is
// carried at most once.
func Reconcile(prev, next []Block, newTag Tag) []Block {
	resolved := -1
	if newTag != nil && len(next) > 0 {
		resolved = len(next) - 1
		next[resolved].Info().Tag = newTag
	}

	if !HasTags(prev) {
		return next
	}

	switch {
	case len(prev) == len(next):
		for i, old := range prev {
			if i == resolved || old.Info().Tag == nil {
				continue
			}
			next[i].Info().Tag = old.Info().Tag
		}

	case len(next) > len(prev):
		claimed := make([]bool, len(next))
		if resolved >= 0 {
			claimed[resolved] = true
		}

		for _, old := range prev {
			tag := old.Info().Tag
			if tag == nil {
				continue
			}

			idx := indexOf(next, claimed, func(b Block) bool { return b.Key() == old.Key() })
			if idx < 0 {
				corpus := old.Info().CorpusText()
				idx = indexOf(next, claimed, func(b Block) bool { return b.Info().CorpusText() == corpus })
			}
			if idx < 0 {
				continue
			}

			next[idx].Info().Tag = tag
			claimed[idx] = true
		}

	default:
		consumed := make([]bool, len(prev))
		for i, b := range next {
			if i == resolved {
				continue
			}
			for j, old := range prev {
				if consumed[j] || old.Info().Tag == nil || old.Key() != b.Key() {
					continue
				}
				b.Info().Tag = old.Info().Tag
				consumed[j] = true
				break
			}
		}
	}

	return next
}

func indexOf(bs []Block, skip []bool, match func(Block) bool) int {
	for i, b := range bs {
		if !skip[i] && match(b) {
			return i
		}
	}
	return -1
}
