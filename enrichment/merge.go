// Package enrichment builds the gene set index used for enrichment analysis from public
// snapshots and the signed in user's own gene sets.
package enrichment

import (
	"strconv"

	"github.com/jrsteele09/go-tribe-client/internal/utils"
	"github.com/jrsteele09/go-tribe-client/tribe"
)

// UserDatabase is the database name given to the user's own gene sets.
const UserDatabase = "My Gene Sets"

// Source is a named group of gene sets.
type Source struct {
	Database string
	Genesets []tribe.Geneset
}

// Proc describes one gene set in the index.
type Proc struct {
	Name  string `json:"name"`
	Dbase string `json:"dbase"`
	URL   string `json:"url"`
	Size  int    `json:"size"`
}

type Index struct {
	Procs map[string]Proc `json:"procs"`
	// Genes maps a gene id to the ids of the gene sets containing it, sorted.
	Genes   map[string][]string `json:"genes"`
	BgTotal int                 `json:"bgtotal"`
}

// Merge indexes the gene sets of every source in order. Gene sets without a tip
// version are skipped. A gene set id seen twice keeps its last description.
func Merge(sources ...Source) Index {
	procs := map[string]Proc{}
	members := map[string]map[string]struct{}{}
	all := map[string]struct{}{}

	for _, src := range sources {
		for _, gs := range src.Genesets {
			if gs.Tip == nil {
				continue
			}

			id := strconv.Itoa(gs.ID)
			genes := map[string]struct{}{}
			for _, g := range gs.Tip.Genes {
				genes[string(g)] = struct{}{}
			}

			procs[id] = Proc{Name: gs.Title, Dbase: src.Database, URL: gs.URL, Size: len(genes)}
			for g := range genes {
				all[g] = struct{}{}
				if members[g] == nil {
					members[g] = map[string]struct{}{}
				}
				members[g][id] = struct{}{}
			}
		}
	}

	index := Index{Procs: procs, Genes: make(map[string][]string, len(members)), BgTotal: len(all)}
	for g, ids := range members {
		index.Genes[g] = utils.SortedKeys(ids)
	}
	return index
}
