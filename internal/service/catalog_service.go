package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"drive-file-copy/internal/drive"
	"drive-file-copy/internal/event"
	"drive-file-copy/internal/model"
)

// The remote service accepts "root" as an alias for the drive root, so the
// synthetic record doubles as a usable folder id.
const (
	RootFolderID   = "root"
	RootFolderName = "My Drive (root)"
)

// CatalogService rebuilds the navigable folder catalog from the flat,
// parent-id-linked folder listing. Catalogs are rebuilt from scratch on
// every call; there is no incremental update.
type CatalogService struct {
	drive drive.API
	bus   event.Bus
}

func NewCatalogService(api drive.API, bus event.Bus) *CatalogService {
	return &CatalogService{drive: api, bus: bus}
}

func (s *CatalogService) BuildFolderCatalog(ctx context.Context) ([]model.PathEntry, error) {
	records, err := s.drive.ListFolders(ctx)
	if err != nil {
		return nil, err
	}

	entries := BuildPaths(records)

	if s.bus != nil {
		s.bus.Publish(event.Event{
			ID:        uuid.NewString(),
			Type:      event.TypeCatalogBuilt,
			Payload:   map[string]any{"folders": len(entries)},
			Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		})
	}

	return entries, nil
}

// BuildPaths turns flat folder records into the ordered catalog of
// (full path label, folder id) pairs.
//
// Only the first parent of a record places it in the tree; additional
// parents are legacy multi-parent references that would otherwise turn the
// catalog into a DAG. Traversal is depth-first under a synthetic root with a
// visited set, so duplicate parent references and parent cycles cannot emit
// a node twice or recurse forever. Folders whose declared parent is missing
// from the fetched set (shared-drive roots and the like) attach directly
// under the synthetic root. The final ordering and the ordinal suffixes for
// colliding labels come from one deterministic sort, so the same input
// always yields the same catalog.
func BuildPaths(records []model.FolderRecord) []model.PathEntry {
	index := make(map[string]model.FolderRecord, len(records)+1)
	for _, r := range records {
		index[r.ID] = r
	}
	index[RootFolderID] = model.FolderRecord{ID: RootFolderID, Name: RootFolderName}

	children := make(map[string][]model.FolderRecord)
	for _, r := range records {
		if len(r.Parents) == 0 {
			continue
		}
		first := r.Parents[0]
		children[first] = append(children[first], r)
	}
	for _, kids := range children {
		sort.SliceStable(kids, func(i, j int) bool {
			ni, nj := strings.ToLower(kids[i].Name), strings.ToLower(kids[j].Name)
			if ni != nj {
				return ni < nj
			}
			return kids[i].ID < kids[j].ID
		})
	}

	visited := make(map[string]bool, len(records)+1)
	entries := make([]model.PathEntry, 0, len(records)+1)

	// Explicit work stack instead of call recursion: nesting depth is
	// whatever the remote service hands us.
	type frame struct {
		id    string
		label string
	}
	walk := func(startID string, startLabel string) {
		stack := []frame{{id: startID, label: startLabel}}
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if visited[top.id] {
				continue
			}
			visited[top.id] = true
			entries = append(entries, model.PathEntry{Label: top.label, FolderID: top.id})

			kids := children[top.id]
			// Reverse push so the lexicographically first child pops first.
			for i := len(kids) - 1; i >= 0; i-- {
				kid := kids[i]
				if visited[kid.ID] {
					continue
				}
				stack = append(stack, frame{id: kid.ID, label: top.label + "/" + kid.Name})
			}
		}
	}

	walk(RootFolderID, RootFolderName)

	// Orphans: declared parent absent from the fetched set, or no parent at
	// all. They surface directly under the root, with their subtrees.
	for _, r := range records {
		if visited[r.ID] {
			continue
		}
		if len(r.Parents) > 0 {
			if _, known := index[r.Parents[0]]; known {
				continue
			}
		}
		walk(r.ID, RootFolderName+"/"+r.Name)
	}

	return dedupeLabels(entries)
}

// dedupeLabels sorts the catalog by (lowercased label, folder id) and gives
// repeated labels ordinal suffixes in that order, which makes suffix
// assignment repeatable across runs.
func dedupeLabels(entries []model.PathEntry) []model.PathEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		li, lj := strings.ToLower(entries[i].Label), strings.ToLower(entries[j].Label)
		if li != lj {
			return li < lj
		}
		return entries[i].FolderID < entries[j].FolderID
	})

	seen := make(map[string]int, len(entries))
	out := make([]model.PathEntry, 0, len(entries))
	for _, e := range entries {
		seen[e.Label]++
		if n := seen[e.Label]; n > 1 {
			e.Label = fmt.Sprintf("%s (%d)", e.Label, n)
		}
		out = append(out, e)
	}

	return out
}
