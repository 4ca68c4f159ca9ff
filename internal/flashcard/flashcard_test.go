package flashcard_test

import (
	"testing"

	"github.com/examdesk/examdesk/internal/flashcard"
)

func TestSplitSoundMeaning(t *testing.T) {
	cases := []struct {
		cell        string
		wantPron    string
		wantMeaning string
	}{
		{"iksplein  to make clear", "iksplein", "to make clear"},
		{"iksplein\tto make clear", "iksplein", "to make clear"},
		{"sound (noun) what you hear", "sound", "(noun) what you hear"},
		{"wurd meaning", "wurd", "meaning"},
		{"alone", "alone", ""},
		{"", "", ""},
		{"  padded   with spaces  ", "padded", "with spaces"},
	}
	for _, c := range cases {
		pron, meaning := flashcard.SplitSoundMeaning(c.cell)
		if pron != c.wantPron || meaning != c.wantMeaning {
			t.Errorf("SplitSoundMeaning(%q) = %q, %q; want %q, %q",
				c.cell, pron, meaning, c.wantPron, c.wantMeaning)
		}
	}
}

func deck(n int) []flashcard.Card {
	cards := make([]flashcard.Card, n)
	for i := range cards {
		cards[i] = flashcard.Card{ID: i + 1}
	}
	return cards
}

func TestPageWholeDeck(t *testing.T) {
	p := flashcard.Page(deck(250), 0)
	if len(p.Cards) != 250 || p.Total != 250 || p.TotalBlocks != 3 {
		t.Fatalf("page = %+v, want all 250 cards in 3 blocks", p)
	}
	if p.Block != 0 || p.BlockRange != "" {
		t.Errorf("whole-deck page carries block fields: %+v", p)
	}
}

func TestPageBlocks(t *testing.T) {
	cards := deck(250)

	first := flashcard.Page(cards, 1)
	if len(first.Cards) != 100 || first.BlockRange != "1-100" {
		t.Fatalf("block 1 = %+v, want cards 1-100", first)
	}
	if first.Cards[0].ID != 1 || first.Cards[99].ID != 100 {
		t.Errorf("block 1 card ids = %d..%d, want 1..100", first.Cards[0].ID, first.Cards[99].ID)
	}

	last := flashcard.Page(cards, 3)
	if len(last.Cards) != 50 || last.BlockRange != "201-250" {
		t.Fatalf("block 3 = %+v, want cards 201-250", last)
	}
	if last.TotalBlocks != 3 {
		t.Errorf("total blocks = %d, want 3", last.TotalBlocks)
	}
}
