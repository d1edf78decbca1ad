package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/bunchhieng/linkvault/internal/model"
)

// EncodeSnapshot renders snap as pretty-printed JSON. Nil collections are
// written as empty arrays.
func EncodeSnapshot(snap Snapshot) (string, error) {
	snap = normalizeSnapshot(snap)
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	return string(data), nil
}

// DecodeSnapshot parses export text. The top level must be a JSON object;
// missing links or tags decode as empty collections and unknown fields are
// ignored. Links without an id or tag list and tags without an id are
// repaired. Any other problem is reported as model.ErrMalformedImport.
func DecodeSnapshot(text string) (Snapshot, error) {
	trimmed := bytes.TrimSpace([]byte(text))
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Snapshot{}, fmt.Errorf("%w: expected a JSON object", model.ErrMalformedImport)
	}

	var snap Snapshot
	if err := json.Unmarshal(trimmed, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", model.ErrMalformedImport, err)
	}
	for i, link := range snap.Links {
		if link == nil {
			return Snapshot{}, fmt.Errorf("%w: link %d is null", model.ErrMalformedImport, i)
		}
	}
	return normalizeSnapshot(snap), nil
}

func normalizeSnapshot(snap Snapshot) Snapshot {
	if snap.Links == nil {
		snap.Links = []*model.Link{}
	}
	if snap.Tags == nil {
		snap.Tags = []model.Tag{}
	}
	for _, link := range snap.Links {
		repairLink(link)
	}
	for i := range snap.Tags {
		repairTag(&snap.Tags[i])
	}
	return snap
}

// repairLink fills in a missing id or tag list and reports whether it
// changed anything.
func repairLink(link *model.Link) bool {
	repaired := false
	if link.ID == "" {
		link.ID = model.GenerateID()
		repaired = true
	}
	if link.Tags == nil {
		link.Tags = []string{}
		repaired = true
	}
	return repaired
}

func repairTag(tag *model.Tag) bool {
	if tag.ID != "" {
		return false
	}
	tag.ID = model.GenerateID()
	return true
}
