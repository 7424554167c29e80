package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pixil98/go-championship/internal/tournament"
	"github.com/pixil98/go-errors"
)

// PlayerRecord is a player as saved in a tournament file.
type PlayerRecord struct {
	Name       string             `json:"name"`
	Address    tournament.Address `json:"address"`
	Matricules []string           `json:"matricules"`
	Points     int                `json:"points"`
	BadMoves   int                `json:"badMoves"`
	MatchCount int                `json:"matchCount"`
}

func (r *PlayerRecord) Validate() error {
	el := errors.NewErrorList()

	if r.Name == "" {
		el.Add(fmt.Errorf("name must be set"))
	}
	if r.Address.Host == "" {
		el.Add(fmt.Errorf("address host must be set"))
	}
	if r.Address.Port <= 0 {
		el.Add(fmt.Errorf("address port must be a positive integer"))
	}

	return el.Err()
}

// TournamentFile is the saved state of a championship.
type TournamentFile struct {
	Players []PlayerRecord           `json:"players"`
	Results []tournament.MatchResult `json:"results"`
}

func (f *TournamentFile) Validate() error {
	el := errors.NewErrorList()

	seen := map[tournament.Address]bool{}
	for i, p := range f.Players {
		if err := p.Validate(); err != nil {
			el.Add(fmt.Errorf("player %d: %w", i, err))
		}
		if seen[p.Address] {
			el.Add(fmt.Errorf("player %d: duplicate address %s", i, p.Address))
		}
		seen[p.Address] = true
	}

	for i, r := range f.Results {
		if len(r.Players) == 0 {
			el.Add(fmt.Errorf("result %d: players must be set", i))
		}
		if r.Winner != nil && (*r.Winner < 0 || *r.Winner >= len(r.Players)) {
			el.Add(fmt.Errorf("result %d: winner %d is not one of the players", i, *r.Winner))
		}
	}

	return el.Err()
}

// NewTournamentFile captures the roster and match history of a snapshot.
func NewTournamentFile(s tournament.Snapshot) *TournamentFile {
	f := &TournamentFile{
		Players: make([]PlayerRecord, 0, len(s.Players)),
		Results: append([]tournament.MatchResult{}, s.Results...),
	}
	for _, p := range s.Players {
		f.Players = append(f.Players, PlayerRecord{
			Name:       p.Name,
			Address:    p.Address,
			Matricules: p.Matricules,
			Points:     p.Points,
			BadMoves:   p.BadMoves,
			MatchCount: p.MatchCount,
		})
	}
	return f
}

// Restore registers every saved player, then replays the saved results, in file order.
func (f *TournamentFile) Restore(store *tournament.Store) {
	ts := make([]tournament.Transition, 0, len(f.Players)+len(f.Results))
	for _, p := range f.Players {
		ts = append(ts, tournament.AddPlayer(p.Name, p.Address, p.Matricules, p.Points, p.BadMoves, p.MatchCount))
	}
	for _, r := range f.Results {
		ts = append(ts, tournament.AppendResult(r))
	}
	store.Update(tournament.Chain(ts...))
}

// LoadTournament reads and validates a tournament file.
func LoadTournament(path string) (*TournamentFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}

	// Ignoring close error - file is read-only, error is not actionable
	defer func() { _ = file.Close() }()

	jsonData, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var tf TournamentFile
	err = json.Unmarshal(jsonData, &tf)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling tournament: %w", err)
	}

	err = tf.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}

	return &tf, nil
}

// SaveTournament writes f to path, replacing any previous file.
func SaveTournament(path string, f *TournamentFile) error {
	jsonData, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling json: %w", err)
	}

	return atomicWrite(path, jsonData, 0644)
}

// atomicWrite writes data to a temp file then renames it to the target path.
// This prevents partial or empty files if the process is interrupted.
func atomicWrite(path string, data []byte, perm os.FileMode) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		if removeErr := os.Remove(tmp); removeErr != nil {
			slog.Warn("failed to remove temp file after rename failure", "path", tmp, "error", removeErr)
		}
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
