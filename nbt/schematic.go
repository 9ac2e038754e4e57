// SPDX-License-Identifier: GPL-3.0-or-later

package nbt

import "errors"

// ErrNotSchematic indicates a document without the Metadata compound
// that every Litematica schematic carries.
var ErrNotSchematic = errors.New("nbt: document has no Metadata compound")

// SchematicSize is the bounding box of a schematic in blocks.
type SchematicSize struct {
	X int64
	Y int64
	Z int64
}

// SchematicInfo is the metadata a schematic browser shows for one
// Litematica file.
type SchematicInfo struct {
	// Name is the schematic name.
	Name string

	// Author is the schematic author.
	Author string

	// Description is the free-form description.
	Description string

	// Version is the Litematica data-format version.
	Version int64

	// RegionCount is the number of sub-regions.
	RegionCount int64

	// TotalBlocks is the number of non-air blocks.
	TotalBlocks int64

	// TotalVolume is the bounding-box volume in blocks.
	TotalVolume int64

	// TimeCreated is the creation timestamp in Unix milliseconds.
	TimeCreated int64

	// TimeModified is the modification timestamp in Unix milliseconds.
	TimeModified int64

	// EnclosingSize is the bounding box in blocks.
	EnclosingSize SchematicSize
}

// ReadSchematicInfo parses a raw Litematica file and extracts
// [SchematicInfo] (.litematic files use the ordinary NBT envelope with
// a schematic-specific schema of keys).
//
// Only the Metadata compound itself is mandatory; individual fields
// default to zero values when absent or mistyped, since schematic
// listings are best-effort.
func ReadSchematicInfo(data []byte) (*SchematicInfo, error) {
	root, err := Parse(data)
	if err != nil {
		return nil, err
	}
	meta, found := root.GetCompound("Metadata")
	if !found {
		return nil, ErrNotSchematic
	}

	info := &SchematicInfo{}
	info.Name, _ = meta.GetString("Name")
	info.Author, _ = meta.GetString("Author")
	info.Description, _ = meta.GetString("Description")
	if value, found := root.Get("Version"); found {
		info.Version, _ = Int64Value(value)
	}
	if value, found := meta.Get("RegionCount"); found {
		info.RegionCount, _ = Int64Value(value)
	}
	if value, found := meta.Get("TotalBlocks"); found {
		info.TotalBlocks, _ = Int64Value(value)
	}
	if value, found := meta.Get("TotalVolume"); found {
		info.TotalVolume, _ = Int64Value(value)
	}
	if value, found := meta.Get("TimeCreated"); found {
		info.TimeCreated, _ = Int64Value(value)
	}
	if value, found := meta.Get("TimeModified"); found {
		info.TimeModified, _ = Int64Value(value)
	}
	if size, found := meta.GetCompound("EnclosingSize"); found {
		if value, found := size.Get("x"); found {
			info.EnclosingSize.X, _ = Int64Value(value)
		}
		if value, found := size.Get("y"); found {
			info.EnclosingSize.Y, _ = Int64Value(value)
		}
		if value, found := size.Get("z"); found {
			info.EnclosingSize.Z, _ = Int64Value(value)
		}
	}
	return info, nil
}
