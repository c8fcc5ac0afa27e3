package prompt

import (
	"sort"
	"strings"
	"sync"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// initAlgo fills fzf's character classes and bonus table. FuzzyMatchV2
// misclassifies every character until it has run.
var initAlgo sync.Once

// FuzzyMatch scores text against pattern with fzf's V2 algorithm, ignoring
// case. A score of zero means no match. Positions are rune offsets of the
// matched characters in text.
func FuzzyMatch(text, pattern string, slab *util.Slab) (int, []int) {
	if pattern == "" {
		return 0, nil
	}
	initAlgo.Do(func() {
		algo.Init("default")
	})

	chars := util.ToChars([]byte(text))
	lowered := []rune(strings.ToLower(pattern))
	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, lowered, true, slab)
	if result.Start < 0 || result.Score <= 0 {
		return 0, nil
	}

	var pos []int
	if positions != nil {
		pos = append(pos, *positions...)
		sort.Ints(pos)
	}
	return result.Score, pos
}

// FuzzyFilter returns the choices matching query, best match first. Ties
// keep their original order. An empty query returns every choice unchanged.
func FuzzyFilter(query string, choices []Choice) []Choice {
	query = strings.TrimSpace(query)
	if query == "" {
		return choices
	}

	type scored struct {
		choice Choice
		score  int
	}

	slab := util.MakeSlab(100*1024, 2048)
	matches := make([]scored, 0, len(choices))
	for _, c := range choices {
		score, _ := FuzzyMatch(c.filterText(), query, slab)
		if score > 0 {
			matches = append(matches, scored{choice: c, score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	result := make([]Choice, len(matches))
	for i, m := range matches {
		result[i] = m.choice
	}
	return result
}
