package rules

import (
	"fmt"

	"carioca/internal/deck"
)

// NumRounds is how many contract rounds one game runs.
const NumRounds = 8

// Requirement is one shape the initial down of a round must include.
type Requirement struct {
	Kind    GroupKind
	Count   int
	MinSize int
}

// contracts is the fixed per-round requirement table: trios growing in
// size and count, capped by the final full-run round.
var contracts = [NumRounds + 1][]Requirement{
	1: {{Kind: Trio, Count: 1, MinSize: 3}},
	2: {{Kind: Trio, Count: 2, MinSize: 3}},
	3: {{Kind: Trio, Count: 1, MinSize: 4}},
	4: {{Kind: Trio, Count: 2, MinSize: 4}},
	5: {{Kind: Trio, Count: 1, MinSize: 5}},
	6: {{Kind: Trio, Count: 2, MinSize: 5}},
	7: {{Kind: Trio, Count: 1, MinSize: 6}},
	8: {{Kind: Escala, Count: 1, MinSize: 11}},
}

// ContractForRound returns the requirements of a round.
func ContractForRound(round int) ([]Requirement, error) {
	if round < 1 || round > NumRounds {
		return nil, fmt.Errorf("no contract for round %d", round)
	}
	return contracts[round], nil
}

// ContractDescription renders a round's contract for players ("2 trios of
// 4+").
func ContractDescription(round int) string {
	reqs, err := ContractForRound(round)
	if err != nil {
		return ""
	}
	desc := ""
	for i, r := range reqs {
		if i > 0 {
			desc += " and "
		}
		plural := ""
		if r.Count > 1 {
			plural = "s"
		}
		desc += fmt.Sprintf("%d %s%s of %d+", r.Count, r.Kind, plural, r.MinSize)
	}
	return desc
}

// ValidateContract checks that the supplied groups satisfy a round's
// contract exactly: every requirement met, no undersized group, and no
// group left over. On success the groups are returned as canonical melds
// in requirement order.
func ValidateContract(groups [][]deck.Card, round int) ([]Meld, error) {
	reqs, err := ContractForRound(round)
	if err != nil {
		return nil, err
	}

	// expand requirements to one slot per expected group
	type slot struct {
		kind    GroupKind
		minSize int
	}
	var slots []slot
	for _, r := range reqs {
		for i := 0; i < r.Count; i++ {
			slots = append(slots, slot{kind: r.Kind, minSize: r.MinSize})
		}
	}

	if len(groups) > len(slots) {
		return nil, fmt.Errorf("round %d contract needs %s, got %d group(s)",
			round, ContractDescription(round), len(groups))
	}

	melds := make([]Meld, len(slots))
	usedGroup := make([]bool, len(groups))

	// small backtracking match: group counts are at most 3
	var match func(slotIdx int) bool
	match = func(slotIdx int) bool {
		if slotIdx == len(slots) {
			return true
		}
		s := slots[slotIdx]
		for g := range groups {
			if usedGroup[g] || len(groups[g]) < s.minSize {
				continue
			}
			var meld Meld
			var ok bool
			if s.kind == Trio {
				ok = IsTrio(groups[g])
				meld = Meld{Kind: Trio, Cards: append([]deck.Card(nil), groups[g]...)}
			} else {
				var layout []deck.Card
				layout, ok = EscalaLayout(groups[g])
				meld = Meld{Kind: Escala, Cards: layout}
			}
			if !ok {
				continue
			}
			usedGroup[g] = true
			melds[slotIdx] = meld
			if match(slotIdx + 1) {
				return true
			}
			usedGroup[g] = false
		}
		return false
	}

	if !match(0) {
		missing := countMissing(groups, slots[0].kind, slots[0].minSize, len(slots))
		plural := ""
		if missing > 1 {
			plural = "s"
		}
		return nil, fmt.Errorf("missing %d %s%s of size %d+ for round %d",
			missing, slots[0].kind, plural, slots[0].minSize, round)
	}
	return melds, nil
}

func countMissing(groups [][]deck.Card, kind GroupKind, minSize, want int) int {
	have := 0
	for _, g := range groups {
		if len(g) < minSize {
			continue
		}
		if kind == Trio && IsTrio(g) {
			have++
		} else if kind == Escala && IsEscala(g) {
			have++
		}
	}
	if have >= want {
		return 1
	}
	return want - have
}

// ValidateAdditionalDown checks groups laid after the initial contract:
// each only needs to stand alone as a trio or escala.
func ValidateAdditionalDown(groups [][]deck.Card) ([]Meld, error) {
	melds := make([]Meld, 0, len(groups))
	for i, g := range groups {
		meld, ok := NewMeld(g)
		if !ok {
			return nil, fmt.Errorf("group %d is neither a trio nor an escala", i+1)
		}
		melds = append(melds, meld)
	}
	return melds, nil
}
