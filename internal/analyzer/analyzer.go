// Package analyzer searches a hand for meld combinations. It backs both
// the "organize my hand" affordances shown to players and the bot's
// decisions about when to lay down.
package analyzer

import (
	"sort"

	"carioca/internal/deck"
	"carioca/internal/rules"
)

// CandidateGroups are the potential melds visible in a hand, including
// joker-assisted completions. Groups may overlap; disjoint selection is
// the contract search's job.
type CandidateGroups struct {
	Trios   [][]deck.Card
	Escalas [][]deck.Card
}

// FindPotentialContractGroups scans a hand for maximal same-value
// clusters and same-suit runs usable toward the round's contract.
func FindPotentialContractGroups(hand []deck.Card, round int) CandidateGroups {
	var out CandidateGroups
	naturals, jokers := splitHand(hand)

	byValue := make(map[int][]deck.Card)
	for _, c := range naturals {
		byValue[c.Value] = append(byValue[c.Value], c)
	}
	for value := 1; value <= 13; value++ {
		cluster := byValue[value]
		if len(cluster) == 0 {
			continue
		}
		group := append([]deck.Card(nil), cluster...)
		// pad with jokers up to the 2:1 allowance
		for _, j := range jokers {
			if len(cluster) < 2*(countJokers(group)+1) {
				break
			}
			group = append(group, j)
		}
		if rules.IsTrio(group) {
			out.Trios = append(out.Trios, group)
		}
	}

	bySuit := make(map[deck.Suit][]deck.Card)
	for _, c := range naturals {
		bySuit[c.Suit] = append(bySuit[c.Suit], c)
	}
	for _, suit := range []deck.Suit{deck.Hearts, deck.Diamonds, deck.Clubs, deck.Spades} {
		for _, run := range runsInSuit(bySuit[suit], jokers) {
			out.Escalas = append(out.Escalas, run)
		}
	}
	return out
}

// CanDoInitialDown searches for a disjoint selection of groups that
// satisfies the round's contract while keeping at least one card in hand
// to discard with.
func CanDoInitialDown(hand []deck.Card, round int) ([][]deck.Card, bool) {
	reqs, err := rules.ContractForRound(round)
	if err != nil {
		return nil, false
	}

	var slots []rules.Requirement
	for _, r := range reqs {
		for i := 0; i < r.Count; i++ {
			slots = append(slots, rules.Requirement{Kind: r.Kind, Count: 1, MinSize: r.MinSize})
		}
	}

	groups, ok := searchSlots(hand, slots)
	if !ok {
		return nil, false
	}
	if _, err := rules.ValidateContract(groups, round); err != nil {
		return nil, false
	}
	return groups, true
}

// CanDoAdditionalDown finds disjoint freestanding melds of at least
// minGroupSize, again leaving a card to discard with.
func CanDoAdditionalDown(hand []deck.Card, minGroupSize int) ([][]deck.Card, bool) {
	if minGroupSize < rules.MinMeldSize {
		minGroupSize = rules.MinMeldSize
	}

	remaining := append([]deck.Card(nil), hand...)
	var groups [][]deck.Card
	for {
		group, ok := bestSingleGroup(remaining, minGroupSize)
		if !ok {
			break
		}
		if len(remaining)-len(group) < 1 {
			// a down must leave a discard behind
			break
		}
		groups = append(groups, group)
		remaining = removeCards(remaining, group)
	}
	return groups, len(groups) > 0
}

// SortCards returns the hand in stable suit-then-value order with jokers
// at the back.
func SortCards(hand []deck.Card) []deck.Card {
	sorted := append([]deck.Card(nil), hand...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.IsJoker() != b.IsJoker() {
			return !a.IsJoker()
		}
		if a.Suit != b.Suit {
			return a.Suit < b.Suit
		}
		return a.Value < b.Value
	})
	return sorted
}

// OrganizeHandAuto orders a hand so candidate groups for the round's
// contract sit together at the front, the leftovers sorted behind them.
func OrganizeHandAuto(hand []deck.Card, round int) []deck.Card {
	candidates := FindPotentialContractGroups(hand, round)

	used := make(map[string]bool)
	organized := make([]deck.Card, 0, len(hand))
	appendGroup := func(group []deck.Card) {
		for _, c := range group {
			if !used[c.ID] {
				used[c.ID] = true
				organized = append(organized, c)
			}
		}
	}
	for _, g := range candidates.Trios {
		appendGroup(g)
	}
	for _, g := range candidates.Escalas {
		appendGroup(g)
	}

	var rest []deck.Card
	for _, c := range hand {
		if !used[c.ID] {
			rest = append(rest, c)
		}
	}
	return append(organized, SortCards(rest)...)
}

// searchSlots backtracks over contract slots, committing one concrete
// group per slot from the cards still unused.
func searchSlots(hand []deck.Card, slots []rules.Requirement) ([][]deck.Card, bool) {
	var chosen [][]deck.Card
	var walk func(remaining []deck.Card, idx int) bool
	walk = func(remaining []deck.Card, idx int) bool {
		if idx == len(slots) {
			return len(remaining) >= 1
		}
		slot := slots[idx]
		for _, group := range slotCandidates(remaining, slot) {
			chosen = append(chosen, group)
			if walk(removeCards(remaining, group), idx+1) {
				return true
			}
			chosen = chosen[:len(chosen)-1]
		}
		return false
	}
	if !walk(hand, 0) {
		return nil, false
	}
	return chosen, true
}

// slotCandidates enumerates minimal concrete groups satisfying one slot.
// Groups are kept at the slot's size floor so later slots and the final
// discard see as many cards as possible.
func slotCandidates(remaining []deck.Card, slot rules.Requirement) [][]deck.Card {
	naturals, jokers := splitHand(remaining)
	var candidates [][]deck.Card

	if slot.Kind == rules.Trio {
		byValue := make(map[int][]deck.Card)
		for _, c := range naturals {
			byValue[c.Value] = append(byValue[c.Value], c)
		}
		for value := 13; value >= 1; value-- {
			cluster := byValue[value]
			if len(cluster) == 0 {
				continue
			}
			take := len(cluster)
			if take > slot.MinSize {
				take = slot.MinSize
			}
			need := slot.MinSize - take
			if need > len(jokers) || take < 2*need {
				continue
			}
			group := append([]deck.Card(nil), cluster[:take]...)
			group = append(group, jokers[:need]...)
			if rules.IsTrio(group) {
				candidates = append(candidates, group)
			}
		}
		return candidates
	}

	bySuit := make(map[deck.Suit][]deck.Card)
	for _, c := range naturals {
		bySuit[c.Suit] = append(bySuit[c.Suit], c)
	}
	for _, cards := range bySuit {
		for _, run := range runsInSuit(cards, jokers) {
			if len(run) >= slot.MinSize && !containsGroup(candidates, run) {
				candidates = append(candidates, run)
			}
		}
	}
	return candidates
}

// bestSingleGroup returns the largest freestanding meld available in the
// cards, if any.
func bestSingleGroup(cards []deck.Card, minSize int) ([]deck.Card, bool) {
	naturals, jokers := splitHand(cards)

	var best []deck.Card
	consider := func(group []deck.Card) {
		if len(group) >= minSize && len(group) > len(best) {
			if _, ok := rules.NewMeld(group); ok {
				best = group
			}
		}
	}

	byValue := make(map[int][]deck.Card)
	for _, c := range naturals {
		byValue[c.Value] = append(byValue[c.Value], c)
	}
	for _, cluster := range byValue {
		group := append([]deck.Card(nil), cluster...)
		for _, j := range jokers {
			if len(cluster) < 2*(countJokers(group)+1) {
				break
			}
			group = append(group, j)
		}
		consider(group)
		if len(cluster) >= minSize {
			consider(append([]deck.Card(nil), cluster...))
		}
	}

	bySuit := make(map[deck.Suit][]deck.Card)
	for _, c := range naturals {
		bySuit[c.Suit] = append(bySuit[c.Suit], c)
	}
	for _, suited := range bySuit {
		for _, run := range runsInSuit(suited, jokers) {
			consider(run)
		}
	}

	if best == nil {
		return nil, false
	}
	return best, true
}

// runsInSuit finds joker-completed run windows over one suit's cards.
// Windows are emitted longest-first per starting value.
func runsInSuit(suited []deck.Card, jokers []deck.Card) [][]deck.Card {
	byValue := make(map[int]deck.Card)
	for _, c := range suited {
		if _, dup := byValue[c.Value]; !dup {
			byValue[c.Value] = c
		}
	}
	if len(byValue) < 2 {
		return nil
	}

	var runs [][]deck.Card
	for start := 1; start <= 13; start++ {
		for length := 13; length >= rules.MinMeldSize; length-- {
			group := make([]deck.Card, 0, length)
			missing := 0
			for i := 0; i < length; i++ {
				pos := (start+i-1)%13 + 1
				if c, ok := byValue[pos]; ok {
					group = append(group, c)
				} else {
					missing++
				}
			}
			if missing > len(jokers) || len(group) < 2*missing {
				continue
			}
			group = append(group, jokers[:missing]...)
			if rules.IsEscala(group) {
				runs = append(runs, group)
				break // longest window for this start is enough
			}
		}
	}
	return runs
}

func splitHand(cards []deck.Card) (naturals, jokers []deck.Card) {
	for _, c := range cards {
		if c.IsJoker() {
			jokers = append(jokers, c)
		} else {
			naturals = append(naturals, c)
		}
	}
	return naturals, jokers
}

func removeCards(cards, toRemove []deck.Card) []deck.Card {
	drop := make(map[string]bool, len(toRemove))
	for _, c := range toRemove {
		drop[c.ID] = true
	}
	kept := make([]deck.Card, 0, len(cards))
	for _, c := range cards {
		if !drop[c.ID] {
			kept = append(kept, c)
		}
	}
	return kept
}

func countJokers(cards []deck.Card) int {
	n := 0
	for _, c := range cards {
		if c.IsJoker() {
			n++
		}
	}
	return n
}

func containsGroup(groups [][]deck.Card, group []deck.Card) bool {
	for _, g := range groups {
		if len(g) != len(group) {
			continue
		}
		same := true
		for i := range g {
			if g[i].ID != group[i].ID {
				same = false
				break
			}
		}
		if same {
			return true
		}
	}
	return false
}
