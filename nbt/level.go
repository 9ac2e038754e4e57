// SPDX-License-Identifier: GPL-3.0-or-later

package nbt

import "errors"

// ErrNotLevelData indicates a document without the Data compound that
// every level.dat generation wraps its metadata in.
var ErrNotLevelData = errors.New("nbt: document has no Data compound")

// LevelInfo is the world metadata a save browser shows for one world.
type LevelInfo struct {
	// Name is the world name, from LevelName.
	Name string

	// Seed is the world-generation seed when HasSeed is true.
	Seed int64

	// HasSeed reports whether any format generation yielded a seed.
	HasSeed bool

	// LastPlayed is the last-played timestamp in Unix milliseconds,
	// or zero when absent.
	LastPlayed int64

	// GameType is the default game mode (0 survival, 1 creative,
	// 2 adventure, 3 spectator), or zero when absent.
	GameType int64

	// Version is the human-readable game version that last saved the
	// world, e.g. "1.20.4", or empty when absent (pre-1.9 saves).
	Version string

	// Hardcore reports whether the world is a hardcore world.
	Hardcore bool

	// AllowCommands reports whether cheats are enabled.
	AllowCommands bool
}

// ReadLevelInfo parses a raw level.dat file and extracts [LevelInfo].
//
// Only the Data compound itself is mandatory; every field inside it is
// optional because each one appeared in a different save-format
// generation, and several vary their integer width across generations.
// The worldPath argument is the world directory, used for the on-disk
// step of [ReadSeed]; pass an empty string to skip it.
func ReadLevelInfo(data []byte, worldPath string) (*LevelInfo, error) {
	root, err := Parse(data)
	if err != nil {
		return nil, err
	}
	inner, found := root.GetCompound("Data")
	if !found {
		return nil, ErrNotLevelData
	}

	info := &LevelInfo{}
	info.Name, _ = inner.GetString("LevelName")
	info.Seed, info.HasSeed = ReadSeed(inner, worldPath)
	if value, found := inner.Get("LastPlayed"); found {
		info.LastPlayed, _ = Int64Value(value)
	}
	if value, found := inner.Get("GameType"); found {
		info.GameType, _ = Int64Value(value)
	}
	if version, found := inner.GetCompound("Version"); found {
		info.Version, _ = version.GetString("Name")
	}
	if value, found := inner.Get("hardcore"); found {
		info.Hardcore, _ = BoolValue(value)
	}
	if value, found := inner.Get("allowCommands"); found {
		info.AllowCommands, _ = BoolValue(value)
	}
	return info, nil
}
