package game

import (
	"time"

	"carioca/internal/deck"
	"carioca/internal/rules"
)

// Snapshot is the full decoded session state handed to the HTTP and
// storage collaborators. Hands and the deck are included verbatim; any
// per-viewer redaction is the transport layer's concern.
type Snapshot struct {
	ID                 string      `json:"id"`
	HostID             string      `json:"hostId"`
	Status             Status      `json:"status"`
	Players            []*Player   `json:"players"`
	Round              int         `json:"round"`
	Contract           string      `json:"contract,omitempty"`
	TurnIndex          int         `json:"turnIndex"`
	Direction          Direction   `json:"direction"`
	Deck               []deck.Card `json:"deck"`
	DiscardPile        []deck.Card `json:"discardPile"`
	PendingBuys        []string    `json:"pendingBuys,omitempty"`
	PendingDiscardBuys []string    `json:"pendingDiscardBuys,omitempty"`
	ReshuffleCount     int         `json:"reshuffleCount"`
	RoundComplete      bool        `json:"roundComplete"`
	LastAction         string      `json:"lastAction,omitempty"`
	TouchedAt          time.Time   `json:"touchedAt"`
}

// Snapshot captures the session for polling clients and persistence.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		ID:                 s.ID,
		HostID:             s.HostID,
		Status:             s.Status,
		Players:            s.Players,
		Round:              s.Round,
		TurnIndex:          s.TurnIndex,
		Direction:          s.Direction,
		DiscardPile:        append([]deck.Card(nil), s.DiscardPile...),
		PendingBuys:        append([]string(nil), s.PendingBuys...),
		PendingDiscardBuys: append([]string(nil), s.PendingDiscardBuys...),
		ReshuffleCount:     s.ReshuffleCount,
		RoundComplete:      s.RoundComplete,
		LastAction:         s.LastAction,
		TouchedAt:          s.TouchedAt,
	}
	if s.Deck != nil {
		snap.Deck = s.Deck.Cards()
	}
	if s.Status == StatusPlaying {
		snap.Contract = rules.ContractDescription(s.Round)
	}
	return snap
}
