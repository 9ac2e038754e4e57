// SPDX-License-Identifier: GPL-3.0-or-later

package nbt

import (
	"os"
	"path/filepath"
)

// worldGenSettingsPath is where current-format saves keep the
// generation settings document, relative to the world directory.
var worldGenSettingsPath = filepath.Join("data", "minecraft", "world_gen_settings.dat")

// ReadSeed resolves the world-generation seed from a level.dat Data
// compound, following the format generations in order:
//
//  1. a root-level RandomSeed key (legacy saves);
//  2. a WorldGenSettings.seed or worldGenSettings.seed nested key
//     (transitional saves);
//  3. a separate world_gen_settings.dat document under worldPath whose
//     root holds a data.seed key (current saves).
//
// An earlier step that produces a seed wins and later steps are not
// attempted, which in particular avoids touching the disk for older
// saves. The second result is false when no step produces a seed;
// unreadable or corrupt world_gen_settings.dat files count as absent,
// since seed display is best-effort.
func ReadSeed(data *Compound, worldPath string) (int64, bool) {
	if value, found := data.Get("RandomSeed"); found {
		if seed, ok := Int64Value(value); ok {
			return seed, true
		}
	}

	for _, key := range []string{"WorldGenSettings", "worldGenSettings"} {
		settings, found := data.GetCompound(key)
		if !found {
			continue
		}
		if value, found := settings.Get("seed"); found {
			if seed, ok := Int64Value(value); ok {
				return seed, true
			}
		}
	}

	if worldPath == "" {
		return 0, false
	}
	raw, err := os.ReadFile(filepath.Join(worldPath, worldGenSettingsPath))
	if err != nil {
		return 0, false
	}
	root, err := Parse(raw)
	if err != nil {
		return 0, false
	}
	inner, found := root.GetCompound("data")
	if !found {
		return 0, false
	}
	value, found := inner.Get("seed")
	if !found {
		return 0, false
	}
	return Int64Value(value)
}
