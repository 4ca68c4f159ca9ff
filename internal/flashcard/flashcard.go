// Package flashcard serves a study deck loaded from a spreadsheet with
// "word" and "sound_meaning" columns, where the second column packs
// pronunciation and meaning into one loosely-delimited cell.
package flashcard

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/examdesk/examdesk/internal/xlsx"
)

// Card is one flashcard; ID is the 1-based spreadsheet row order.
type Card struct {
	ID            int    `json:"id"`
	Word          string `json:"word"`
	Pronunciation string `json:"pronunciation"`
	Meaning       string `json:"meaning"`
}

// BlockSize is the number of cards per study block.
const BlockSize = 100

var (
	wideGapRe     = regexp.MustCompile(`\s{2,}|\t+`)
	pronBoundryRe = regexp.MustCompile(`^([^\s()]+(?:[/\d]+)?(?:\s+[^\s()]+(?:[/\d]+)?)*)\s+([(].*|.+)`)
	threeSpacesRe = regexp.MustCompile(`^(.+?)(\s{3,}|\t+)(.+)`)
)

// SplitSoundMeaning separates "pronunciation   meaning" cells. The
// delimiters vary wildly across real decks, so four passes are tried
// in order: a 2+ space/tab gap, a pronunciation-boundary pattern, a
// 3+ space gap, and finally a single-space split. Whatever survives
// unsplit becomes the pronunciation.
func SplitSoundMeaning(cell string) (pronunciation, meaning string) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return "", ""
	}

	if loc := wideGapRe.FindStringIndex(cell); loc != nil {
		return strings.TrimSpace(cell[:loc[0]]), strings.TrimSpace(cell[loc[1]:])
	}
	if m := pronBoundryRe.FindStringSubmatch(cell); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	if m := threeSpacesRe.FindStringSubmatch(cell); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[3])
	}
	if fields := strings.SplitN(cell, " ", 2); len(fields) == 2 {
		return fields[0], strings.TrimSpace(fields[1])
	}
	return cell, ""
}

// LoadFile reads a deck spreadsheet. The workbook must contain "word"
// and "sound_meaning" columns (matched case-insensitively).
func LoadFile(path string) ([]Card, error) {
	table, err := xlsx.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return fromTable(table)
}

func fromTable(table *xlsx.Table) ([]Card, error) {
	wordCol, smCol := "", ""
	for _, col := range table.Columns {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "word":
			wordCol = col
		case "sound_meaning":
			smCol = col
		}
	}
	if wordCol == "" || smCol == "" {
		return nil, fmt.Errorf("deck must contain 'word' and 'sound_meaning' columns")
	}

	cards := make([]Card, 0, len(table.Rows))
	for i, row := range table.Rows {
		word := strings.TrimSpace(row[wordCol])
		pron, meaning := SplitSoundMeaning(row[smCol])
		cards = append(cards, Card{
			ID:            i + 1,
			Word:          word,
			Pronunciation: pron,
			Meaning:       meaning,
		})
	}
	return cards, nil
}

// Deck loads cards on first use and serves them for the process
// lifetime; the source file is static.
type Deck struct {
	path string

	once  sync.Once
	cards []Card
	err   error
}

func NewDeck(path string) *Deck {
	return &Deck{path: path}
}

// Cards returns the full deck.
func (d *Deck) Cards() ([]Card, error) {
	d.once.Do(func() {
		d.cards, d.err = LoadFile(d.path)
	})
	return d.cards, d.err
}

// Card returns one card by its 1-based ID.
func (d *Deck) Card(id int) (Card, error) {
	cards, err := d.Cards()
	if err != nil {
		return Card{}, err
	}
	if id < 1 || id > len(cards) {
		return Card{}, fmt.Errorf("flashcard %d not found", id)
	}
	return cards[id-1], nil
}

// BlockPage is one pagination window over the deck.
type BlockPage struct {
	Cards       []Card `json:"flashcards"`
	Total       int    `json:"total"`
	Block       int    `json:"block,omitempty"`
	TotalBlocks int    `json:"total_blocks"`
	BlockRange  string `json:"block_range,omitempty"`
}

// Page slices the deck into BlockSize-card blocks. block 0 returns the
// whole deck.
func Page(cards []Card, block int) BlockPage {
	total := len(cards)
	totalBlocks := (total + BlockSize - 1) / BlockSize

	if block < 1 {
		return BlockPage{Cards: cards, Total: total, TotalBlocks: totalBlocks}
	}

	start := (block - 1) * BlockSize
	if start > total {
		start = total
	}
	end := start + BlockSize
	if end > total {
		end = total
	}
	return BlockPage{
		Cards:       cards[start:end],
		Total:       end - start,
		Block:       block,
		TotalBlocks: totalBlocks,
		BlockRange:  fmt.Sprintf("%d-%d", start+1, end),
	}
}
