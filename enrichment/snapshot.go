package enrichment

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	errs "github.com/jrsteele09/go-tribe-client/internal/errors"
	"github.com/jrsteele09/go-tribe-client/internal/utils"
	"github.com/jrsteele09/go-tribe-client/tribe"
	"gopkg.in/yaml.v3"
)

const snapshotSuffix = "_genesets"

// snapshotExtensions are tried in order; the first existing file wins.
var snapshotExtensions = []string{".json", ".yaml", ".yml"}

// Snapshot maps a public database name to the gene sets it contributes.
type Snapshot map[string][]tribe.Geneset

// Snapshots reads per-organism public gene set snapshots from a folder.
type Snapshots struct {
	folder string
}

func NewSnapshots(folder string) *Snapshots {
	return &Snapshots{folder: folder}
}

// FileName is the snapshot base name for organism, e.g. Homo_sapiens_genesets.
func FileName(organism string) string {
	return strings.ReplaceAll(organism, " ", "_") + snapshotSuffix
}

// Load reads the snapshot for organism.
func (s *Snapshots) Load(organism string) (Snapshot, error) {
	if s.folder == "" {
		return nil, errs.ErrSnapshotFolderUnset
	}

	name := FileName(organism)
	if organism == "" || filepath.Base(name) != name || strings.Contains(name, "..") {
		return nil, fmt.Errorf("%w: %q", errs.ErrInvalidOrganism, organism)
	}

	for _, ext := range snapshotExtensions {
		path := filepath.Join(s.folder, name+ext)
		data, err := os.ReadFile(path)
		if err != nil {
			if errs.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, errs.Wrapf(err, "[enrichment Load] read %s", path)
		}

		snapshot := Snapshot{}
		if err := yaml.Unmarshal(data, &snapshot); err != nil {
			return nil, errs.Wrapf(err, "[enrichment Load] decode %s", path)
		}
		return snapshot, nil
	}
	return nil, fmt.Errorf("%w: %s", errs.ErrSnapshotNotFound, organism)
}

// Sources orders the snapshot's databases by name.
func (s Snapshot) Sources() []Source {
	sources := make([]Source, 0, len(s))
	for _, database := range utils.SortedKeys(s) {
		sources = append(sources, Source{Database: database, Genesets: s[database]})
	}
	return sources
}
