// Package catalog loads, filters and paginates the game catalog served by the
// NovaPlay web endpoints.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Mode values used by the catalog data.
const (
	ModeAll   = "all"
	ModeSolo  = "solo"
	ModeMulti = "multiplayer"
)

var (
	// ErrEmptyCatalog is returned by a source that answered with no games.
	ErrEmptyCatalog = errors.New("catalog is empty")
	// ErrStatus is wrapped with the HTTP status when a source answers non-OK.
	ErrStatus = errors.New("unexpected status")
)

// Game is one catalog record.
type Game struct {
	Title        string `json:"title"`
	Link         string `json:"link"`
	Image        string `json:"image"`
	Mode         string `json:"mode"`
	HasModal     bool   `json:"hasModal,omitempty"`
	ModalID      string `json:"modalId,omitempty"`
	ModalTitle   string `json:"modalTitle,omitempty"`
	ModalContent string `json:"modalContent,omitempty"`
}

// ModeLabel returns the badge text shown for the game.
func (g Game) ModeLabel() string {
	if g.Mode == ModeSolo {
		return "Solo"
	}
	return "Multi"
}

// ModeClass returns the badge class: solo or multiplayer. Any mode other than
// solo is shown as multiplayer.
func (g Game) ModeClass() string {
	if g.Mode == ModeSolo {
		return ModeSolo
	}
	return ModeMulti
}

// envelope is the object form of the catalog payload.
type envelope struct {
	Games json.RawMessage `json:"games"`
	Items json.RawMessage `json:"items"`
}

// record is one catalog entry with its fields kept raw, so a field of the
// wrong type degrades to text instead of rejecting the entry.
type record struct {
	Title        json.RawMessage `json:"title"`
	Link         json.RawMessage `json:"link"`
	Image        json.RawMessage `json:"image"`
	Mode         json.RawMessage `json:"mode"`
	HasModal     json.RawMessage `json:"hasModal"`
	ModalID      json.RawMessage `json:"modalId"`
	ModalTitle   json.RawMessage `json:"modalTitle"`
	ModalContent json.RawMessage `json:"modalContent"`
}

// SkippedRecord is a catalog entry that could not be read as a game.
type SkippedRecord struct {
	Index int
	Err   error
}

// RecordError lists the entries Decode skipped. It is returned together with
// the games that did decode.
type RecordError struct {
	Skipped []SkippedRecord
}

func (e *RecordError) Error() string {
	if len(e.Skipped) == 1 {
		s := e.Skipped[0]
		return fmt.Sprintf("skipped catalog record %d: %v", s.Index, s.Err)
	}
	return fmt.Sprintf("skipped %d catalog records", len(e.Skipped))
}

// Decode parses a catalog payload. The payload is either an array of games or
// an object holding the array under "games" or, when that is missing or falsy,
// "items". Any other valid JSON shape decodes to an empty list.
//
// Entries that are not objects are skipped and reported in a *RecordError
// returned alongside the remaining games.
func Decode(data []byte) ([]Game, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	switch firstByte(raw) {
	case '[':
		return decodeList(raw)
	case '{':
		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, fmt.Errorf("decode catalog object: %w", err)
		}
		if truthy(env.Games) {
			return decodeList(env.Games)
		}
		if truthy(env.Items) {
			return decodeList(env.Items)
		}
	}
	return nil, nil
}

func decodeList(raw json.RawMessage) ([]Game, error) {
	if firstByte(raw) != '[' {
		return nil, nil
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode games: %w", err)
	}

	games := make([]Game, 0, len(entries))
	var skipped []SkippedRecord
	for i, entry := range entries {
		g, err := decodeGame(entry)
		if err != nil {
			skipped = append(skipped, SkippedRecord{Index: i, Err: err})
			continue
		}
		games = append(games, g)
	}
	if len(games) == 0 {
		games = nil
	}
	if skipped != nil {
		return games, &RecordError{Skipped: skipped}
	}
	return games, nil
}

func decodeGame(entry json.RawMessage) (Game, error) {
	if firstByte(entry) != '{' {
		return Game{}, errNotObject
	}
	var r record
	if err := json.Unmarshal(entry, &r); err != nil {
		return Game{}, err
	}
	return Game{
		Title:        text(r.Title),
		Link:         text(r.Link),
		Image:        text(r.Image),
		Mode:         text(r.Mode),
		HasModal:     truthy(r.HasModal),
		ModalID:      text(r.ModalID),
		ModalTitle:   text(r.ModalTitle),
		ModalContent: text(r.ModalContent),
	}, nil
}

var errNotObject = errors.New("record is not an object")

// text reads a string field. Numbers and booleans keep their literal form;
// null, missing, objects and arrays read as empty.
func text(raw json.RawMessage) string {
	switch c := firstByte(raw); {
	case c == '"':
		var s string
		if json.Unmarshal(raw, &s) == nil {
			return s
		}
	case c == 't' || c == 'f' || c == '-' || (c >= '0' && c <= '9'):
		return strings.TrimSpace(string(raw))
	}
	return ""
}

// truthy follows JavaScript truthiness: missing, null, false, 0 and "" are
// false; everything else, empty arrays and objects included, is true.
func truthy(raw json.RawMessage) bool {
	switch c := firstByte(raw); {
	case c == 0 || c == 'n' || c == 'f':
		return false
	case c == '"':
		var s string
		return json.Unmarshal(raw, &s) == nil && s != ""
	case c == '-' || (c >= '0' && c <= '9'):
		// Out of range literals still parse to ±Inf or 0.
		f, _ := strconv.ParseFloat(strings.TrimSpace(string(raw)), 64)
		return f != 0
	}
	return true
}

func firstByte(raw json.RawMessage) byte {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b
	}
	return 0
}
