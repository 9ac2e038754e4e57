// SPDX-License-Identifier: GPL-3.0-or-later

package nbt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ReadLevelInfo extracts every known field from a fully populated Data
// compound.
func TestReadLevelInfo(t *testing.T) {
	version := NewCompound()
	version.Set("Name", String("1.20.4"))
	version.Set("Id", Int(3700))

	data := NewCompound()
	data.Set("LevelName", String("My World"))
	data.Set("RandomSeed", Long(123456789))
	data.Set("LastPlayed", Long(1714000000000))
	data.Set("GameType", Int(1))
	data.Set("hardcore", Byte(1))
	data.Set("allowCommands", Byte(1))
	data.Set("Version", version)

	root := NewCompound()
	root.Set("Data", data)
	raw, err := EncodeGzip(root)
	require.NoError(t, err)

	info, err := ReadLevelInfo(raw, "")

	require.NoError(t, err)
	assert.Equal(t, "My World", info.Name)
	assert.True(t, info.HasSeed)
	assert.Equal(t, int64(123456789), info.Seed)
	assert.Equal(t, int64(1714000000000), info.LastPlayed)
	assert.Equal(t, int64(1), info.GameType)
	assert.Equal(t, "1.20.4", info.Version)
	assert.True(t, info.Hardcore)
	assert.True(t, info.AllowCommands)
}

// A minimal level.dat buffer yields the level name and seed end to end.
func TestReadLevelInfoEndToEnd(t *testing.T) {
	raw := []byte{
		// root: TAG_Compound, empty name
		0x0a, 0x00, 0x00,
		// TAG_Compound "Data"
		0x0a, 0x00, 0x04, 'D', 'a', 't', 'a',
		// TAG_String "LevelName" = "World"
		0x08, 0x00, 0x09, 'L', 'e', 'v', 'e', 'l', 'N', 'a', 'm', 'e',
		0x00, 0x05, 'W', 'o', 'r', 'l', 'd',
		// TAG_Long "RandomSeed" = 123
		0x04, 0x00, 0x0a, 'R', 'a', 'n', 'd', 'o', 'm', 'S', 'e', 'e', 'd',
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x7b,
		// end of "Data"
		0x00,
		// end of root
		0x00,
	}

	info, err := ReadLevelInfo(raw, "")

	require.NoError(t, err)
	assert.Equal(t, "World", info.Name)
	require.True(t, info.HasSeed)
	assert.Equal(t, int64(123), info.Seed)
}

// Fields missing from older format generations default to zero values.
func TestReadLevelInfoSparse(t *testing.T) {
	data := NewCompound()
	data.Set("LevelName", String("Old World"))
	root := NewCompound()
	root.Set("Data", data)
	raw, err := Encode(root)
	require.NoError(t, err)

	info, err := ReadLevelInfo(raw, "")

	require.NoError(t, err)
	assert.Equal(t, "Old World", info.Name)
	assert.False(t, info.HasSeed)
	assert.Zero(t, info.LastPlayed)
	assert.Zero(t, info.GameType)
	assert.Empty(t, info.Version)
	assert.False(t, info.Hardcore)
	assert.False(t, info.AllowCommands)
}

// Width-varying fields coerce from whatever integer kind the save stored.
func TestReadLevelInfoWidthVariance(t *testing.T) {
	data := NewCompound()
	data.Set("LevelName", String("W"))
	data.Set("LastPlayed", Int(1000))
	data.Set("GameType", Byte(2))
	data.Set("hardcore", Int(1))
	root := NewCompound()
	root.Set("Data", data)
	raw, err := Encode(root)
	require.NoError(t, err)

	info, err := ReadLevelInfo(raw, "")

	require.NoError(t, err)
	assert.Equal(t, int64(1000), info.LastPlayed)
	assert.Equal(t, int64(2), info.GameType)
	assert.True(t, info.Hardcore)
}

// A document without the Data compound is not a level.dat.
func TestReadLevelInfoNotLevelData(t *testing.T) {
	root := NewCompound()
	root.Set("Metadata", NewCompound())
	raw, err := Encode(root)
	require.NoError(t, err)

	_, err = ReadLevelInfo(raw, "")

	require.ErrorIs(t, err, ErrNotLevelData)
}

// A corrupt buffer propagates the decode error.
func TestReadLevelInfoCorrupt(t *testing.T) {
	_, err := ReadLevelInfo([]byte{0x0a, 0x00}, "")

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
}
