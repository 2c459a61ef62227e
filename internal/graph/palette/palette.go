// Package palette assigns a stable visual identity to each consultant group.
// Assignment is a pure hash of the group key against a fixed ordered palette;
// there is no registry and no cache, so the same group renders with the same
// color across independent requests, processes and restarts.
package palette

import "unicode/utf16"

// Entry is one palette slot.
type Entry struct {
	Name   string `json:"name"`
	Fill   string `json:"fill"`
	Border string `json:"border"`
	Text   string `json:"text"`
}

// Default is the fixed ordered palette. Once the number of groups exceeds the
// palette size, groups legitimately share a color.
var Default = []Entry{
	{Name: "indigo", Fill: "#E8EAF6", Border: "#3F51B5", Text: "#1A237E"},
	{Name: "teal", Fill: "#E0F2F1", Border: "#00897B", Text: "#004D40"},
	{Name: "amber", Fill: "#FFF8E1", Border: "#FFB300", Text: "#FF6F00"},
	{Name: "rose", Fill: "#FCE4EC", Border: "#D81B60", Text: "#880E4F"},
	{Name: "sky", Fill: "#E1F5FE", Border: "#039BE5", Text: "#01579B"},
	{Name: "lime", Fill: "#F9FBE7", Border: "#C0CA33", Text: "#827717"},
	{Name: "violet", Fill: "#F3E5F5", Border: "#8E24AA", Text: "#4A148C"},
	{Name: "orange", Fill: "#FBE9E7", Border: "#F4511E", Text: "#BF360C"},
	{Name: "green", Fill: "#E8F5E9", Border: "#43A047", Text: "#1B5E20"},
	{Name: "slate", Fill: "#ECEFF1", Border: "#546E7A", Text: "#263238"},
	{Name: "cyan", Fill: "#E0F7FA", Border: "#00ACC1", Text: "#006064"},
	{Name: "brown", Fill: "#EFEBE9", Border: "#6D4C41", Text: "#3E2723"},
}

// Hash accumulates h = h*31 + codeUnit over the UTF-16 code units of s in
// 32-bit signed arithmetic. Matches the wire contract consumers rely on, so
// the index a group hashes to is stable across implementations.
func Hash(s string) int32 {
	var h int32
	for _, unit := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(unit)
	}
	return h
}

// IndexFor maps a group key into the default palette. Empty keys map to slot
// zero.
func IndexFor(groupKey string) int {
	if groupKey == "" {
		return 0
	}
	h := Hash(groupKey)
	if h < 0 {
		// Avoid the abs(MinInt32) overflow.
		if h == -1<<31 {
			return 0
		}
		h = -h
	}
	return int(h) % len(Default)
}

// ColorFor returns the palette entry for a group key. Total and deterministic.
func ColorFor(groupKey string) Entry {
	return Default[IndexFor(groupKey)]
}
