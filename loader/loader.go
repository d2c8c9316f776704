// Package loader builds the initial game state from a game directory:
// a game.yaml manifest (metadata, starting player) plus one or more Lua
// world files declaring rooms, items, enemies, NPCs, recipes, and quests.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	lua "github.com/yuin/gopher-lua"
	"gopkg.in/yaml.v3"

	"github.com/nathoo/embercore/engine/state"
	"github.com/nathoo/embercore/types"
)

// Manifest is the game.yaml schema.
type Manifest struct {
	Title   string `yaml:"title"`
	Author  string `yaml:"author"`
	Version string `yaml:"version"`
	Start   string `yaml:"start"`
	Intro   string `yaml:"intro"`
	Player  struct {
		Name         string   `yaml:"name"`
		MaxHealth    int      `yaml:"max_health"`
		Strength     int      `yaml:"strength"`
		Dexterity    int      `yaml:"dexterity"`
		Intelligence int      `yaml:"intelligence"`
		Constitution int      `yaml:"constitution"`
		Gold         int      `yaml:"gold"`
		KnownRecipes []string `yaml:"known_recipes"`
		Inventory    []string `yaml:"inventory"`
	} `yaml:"player"`
}

// Load reads a game directory and returns the game definition and a fully
// populated, validated state store.
func Load(dir string) (types.GameDef, *types.GameState, error) {
	manifest, err := loadManifest(filepath.Join(dir, "game.yaml"))
	if err != nil {
		return types.GameDef{}, nil, err
	}

	coll, err := runLuaFiles(dir)
	if err != nil {
		return types.GameDef{}, nil, err
	}

	s, err := compile(manifest, coll)
	if err != nil {
		return types.GameDef{}, nil, err
	}

	game := types.GameDef{
		Title:   manifest.Title,
		Author:  manifest.Author,
		Version: manifest.Version,
		Start:   manifest.Start,
		Intro:   manifest.Intro,
	}

	if err := Validate(game, s); err != nil {
		return types.GameDef{}, nil, err
	}

	state.Normalize(s)
	return game, s, nil
}

func loadManifest(path string) (Manifest, error) {
	var m Manifest
	data, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("reading manifest: %w", err)
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("parsing manifest: %w", err)
	}
	if m.Title == "" {
		return m, fmt.Errorf("manifest: title is required")
	}
	if m.Start == "" {
		return m, fmt.Errorf("manifest: start room is required")
	}
	return m, nil
}

// runLuaFiles executes every .lua file in the directory (sorted, so load
// order is deterministic) against a collector.
func runLuaFiles(dir string) (*collector, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading game directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".lua" {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .lua world files in %s", dir)
	}
	sort.Strings(files)

	coll := &collector{}
	L := lua.NewState()
	defer L.Close()
	// World files must stay deterministic; strip the reseed hook so
	// content cannot tie itself to wall-clock entropy.
	if mathTbl, ok := L.GetGlobal("math").(*lua.LTable); ok {
		mathTbl.RawSetString("randomseed", lua.LNil)
	}
	registerAPI(L, coll)

	for _, file := range files {
		if err := L.DoFile(file); err != nil {
			return nil, fmt.Errorf("loading %s: %w", filepath.Base(file), err)
		}
	}
	return coll, nil
}
