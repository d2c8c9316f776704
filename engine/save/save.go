// Package save implements JSON serialization and deserialization of the
// full game state, including any active combat session, so a game saved
// mid-encounter resumes exactly where it stopped.
package save

import (
	"encoding/json"
	"fmt"

	"github.com/nathoo/embercore/engine/state"
	"github.com/nathoo/embercore/types"
)

// FormatVersion guards against loading saves from incompatible builds.
const FormatVersion = 1

// SaveData is the JSON-serializable save format. Field-named, not
// positional: the file is meant to be readable and diffable.
type SaveData struct {
	Format  int              `json:"format"`
	Game    string           `json:"game"`
	Version string           `json:"version"`
	State   *types.GameState `json:"state"`
}

// Save serializes game state to indented JSON bytes.
func Save(s *types.GameState, game types.GameDef) ([]byte, error) {
	data := SaveData{
		Format:  FormatVersion,
		Game:    game.Title,
		Version: game.Version,
		State:   s,
	}
	return json.MarshalIndent(data, "", "  ")
}

// Load deserializes JSON bytes into SaveData. A malformed or incompatible
// save is the one truly fatal error class in the game: it is rejected
// here rather than half-applied.
func Load(data []byte) (*SaveData, error) {
	var sd SaveData
	if err := json.Unmarshal(data, &sd); err != nil {
		return nil, fmt.Errorf("corrupted save: %w", err)
	}
	if sd.Format != FormatVersion {
		return nil, fmt.Errorf("save format %d not supported (want %d)", sd.Format, FormatVersion)
	}
	if sd.State == nil {
		return nil, fmt.Errorf("corrupted save: missing state")
	}
	// A non-positive threshold would make level-up loops spin forever.
	if sd.State.Player.ExperienceToNext <= 0 {
		return nil, fmt.Errorf("corrupted save: experience threshold must be positive")
	}
	state.Normalize(sd.State)
	return &sd, nil
}

// Apply replaces the contents of dst with the loaded state.
func Apply(dst *types.GameState, sd *SaveData) {
	*dst = *sd.State
}
