// SPDX-License-Identifier: GPL-3.0-or-later

package mcwire

import (
	"encoding/json"
	"strings"
)

// ServerStatusResponse is the decoded JSON document carried by a status
// response packet.
//
// Servers disagree wildly about which fields they populate: vanilla
// servers omit modinfo, Forge servers add it, some server software
// omits the player sample, and the description may be either a bare
// string or a rich-text object. All fields beyond version and players
// are therefore optional, and unknown fields are ignored.
type ServerStatusResponse struct {
	// Version describes the server software and protocol.
	Version StatusVersion `json:"version"`

	// Players describes player capacity and occupancy.
	Players StatusPlayers `json:"players"`

	// Description is the server's message of the day.
	Description DescriptionNode `json:"description"`

	// Favicon is a data URI with a base64-encoded PNG, or empty.
	Favicon string `json:"favicon"`

	// ModInfo is present on Forge servers and absent elsewhere.
	ModInfo *StatusModInfo `json:"modinfo,omitempty"`
}

// StatusVersion describes the server version in a status response.
type StatusVersion struct {
	// Name is the human-readable version, e.g. "1.20.4".
	Name string `json:"name"`

	// Protocol is the numeric protocol version.
	Protocol int `json:"protocol"`
}

// StatusPlayers describes player occupancy in a status response.
type StatusPlayers struct {
	// Max is the advertised player capacity.
	Max int `json:"max"`

	// Online is the current player count.
	Online int `json:"online"`

	// Sample is an optional subset of online players.
	Sample []StatusPlayerSample `json:"sample,omitempty"`
}

// StatusPlayerSample is one entry in the player sample.
type StatusPlayerSample struct {
	// Name is the player name.
	Name string `json:"name"`

	// ID is the player UUID as a string.
	ID string `json:"id"`
}

// StatusModInfo describes the mod loader of a modded server.
type StatusModInfo struct {
	// Type identifies the loader, e.g. "FML".
	Type string `json:"type"`

	// ModList enumerates the installed mods.
	ModList []StatusMod `json:"modList"`
}

// StatusMod is one entry in a server's mod list.
type StatusMod struct {
	// ID is the mod identifier.
	ID string `json:"modid"`

	// Version is the mod version.
	Version string `json:"version"`
}

// DescriptionNode is one node of a server description.
//
// On the wire a description node is either a bare JSON string or an
// object with a "text" field and an optional "extra" array of child
// nodes, recursively. Formatting keys such as "color" and "bold" may
// appear alongside "text"; we ignore them since the launcher-facing
// representation is plain text.
type DescriptionNode struct {
	// Text is this node's own text.
	Text string

	// Extra holds the child nodes, in display order.
	Extra []DescriptionNode
}

var _ json.Unmarshaler = &DescriptionNode{}

// UnmarshalJSON implements [json.Unmarshaler] accepting both the bare
// string form and the object form.
func (n *DescriptionNode) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		n.Text = text
		n.Extra = nil
		return nil
	}
	var node struct {
		Text  string            `json:"text"`
		Extra []DescriptionNode `json:"extra"`
	}
	if err := json.Unmarshal(data, &node); err != nil {
		return err
	}
	n.Text = node.Text
	n.Extra = node.Extra
	return nil
}

// Plain flattens the node tree into a single plain-text string by
// concatenating each node's text followed by its children depth-first,
// with legacy section-sign formatting codes stripped.
func (n DescriptionNode) Plain() string {
	var sb strings.Builder
	n.appendPlain(&sb)
	return sb.String()
}

func (n DescriptionNode) appendPlain(sb *strings.Builder) {
	appendStripped(sb, n.Text)
	for _, child := range n.Extra {
		child.appendPlain(sb)
	}
}

// sectionSign introduces a two-character legacy formatting code.
const sectionSign = '§'

// appendStripped appends text to sb dropping each section sign together
// with the single formatting rune that follows it.
func appendStripped(sb *strings.Builder, text string) {
	if !strings.ContainsRune(text, sectionSign) {
		sb.WriteString(text)
		return
	}
	skip := false
	for _, r := range text {
		if skip {
			skip = false
			continue
		}
		if r == sectionSign {
			skip = true
			continue
		}
		sb.WriteRune(r)
	}
}
