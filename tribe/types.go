package tribe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Filters are appended to a request as query parameters.
type Filters map[string]string

// GeneID is a gene identifier in the configured cross-reference namespace.
// Tribe sends numeric ids for Entrez and strings for symbol based databases.
type GeneID string

func (g *GeneID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.HasPrefix(data, []byte(`"`)) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*g = GeneID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*g = GeneID(strings.TrimSpace(n.String()))
	return nil
}

func (g *GeneID) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("gene id must be a scalar, got %v", value.Tag)
	}
	*g = GeneID(strings.TrimSpace(value.Value))
	return nil
}

// User is the remote Tribe account that owns an access token.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// Geneset is a named, versioned collection of genes hosted by Tribe.
type Geneset struct {
	ID       int    `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	Slug     string `json:"slug,omitempty" yaml:"slug"`
	Abstract string `json:"abstract,omitempty" yaml:"abstract"`
	Public   bool   `json:"public" yaml:"public"`
	URL      string `json:"url,omitempty" yaml:"url"`
	// Tip is the latest version. Nil when the gene set has none or it was not requested.
	Tip *Version `json:"tip" yaml:"tip"`
}

// Version is an immutable snapshot of a gene set's genes.
type Version struct {
	VersionHash string       `json:"ver_hash,omitempty" yaml:"ver_hash"`
	Description string       `json:"description,omitempty" yaml:"description"`
	Genes       []GeneID     `json:"genes,omitempty" yaml:"genes"`
	Annotations []Annotation `json:"annotations,omitempty" yaml:"-"`
	// GeneList is derived client side from the annotations, see WithGeneNames.
	GeneList []string `json:"gene_list,omitempty" yaml:"-"`
}

type Annotation struct {
	Gene      Gene  `json:"gene"`
	PubmedIDs []int `json:"pubmed_ids,omitempty"`
}

type Gene struct {
	ID           int    `json:"id,omitempty"`
	StandardName string `json:"standard_name"`
	Entrezid     int    `json:"entrezid,omitempty"`
}

// WithGeneNames fills GeneList on every version from its annotations' standard names.
func WithGeneNames(versions []Version) []Version {
	for i := range versions {
		names := make([]string, 0, len(versions[i].Annotations))
		for _, a := range versions[i].Annotations {
			names = append(names, a.Gene.StandardName)
		}
		versions[i].GeneList = names
	}
	return versions
}

// GenesetPayload describes a gene set to create on Tribe.
type GenesetPayload struct {
	Organism string `json:"organism"`
	Title    string `json:"title"`
	Abstract string `json:"abstract,omitempty"`
	// Annotations maps a gene id to the publication ids supporting it.
	Annotations map[string][]int `json:"annotations,omitempty"`
	CrossRefDB  string           `json:"xrdb,omitempty"`
}

// Validate checks the fields Tribe requires.
func (p GenesetPayload) Validate() error {
	if p.Organism == "" {
		return errMissingField("organism")
	}
	if p.Title == "" {
		return errMissingField("title")
	}
	return nil
}
