package weightconfig

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/riskibarqy/wrestling-roster/internal/domain/member"
	"github.com/riskibarqy/wrestling-roster/internal/domain/weightclass"
)

//go:embed default_weights.json
var defaultWeights []byte

// document mirrors one record of the weight-category resource. Both keys are
// required.
type document struct {
	Gender  *string    `json:"Gender" yaml:"Gender"`
	Weights *[]float64 `json:"Weights" yaml:"Weights"`
}

// Format selects the decoder for a resource.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the decoder from the file extension. Anything that is
// not .yaml or .yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Default builds the table from the resource compiled into the binary.
func Default() (*weightclass.Table, error) {
	return Parse(defaultWeights, FormatJSON)
}

// LoadFile reads and parses the resource at path. An empty path falls back to
// the embedded default.
func LoadFile(path string) (*weightclass.Table, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, crerr.Wrapf(err, "read weight categories %q", path)
	}

	table, err := Parse(raw, FormatFromPath(path))
	if err != nil {
		return nil, crerr.Wrapf(err, "weight categories %q", path)
	}
	return table, nil
}

func Parse(raw []byte, format Format) (*weightclass.Table, error) {
	var docs []document
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(raw, &docs); err != nil {
			return nil, crerr.Wrap(err, "decode yaml")
		}
	case FormatJSON:
		if err := sonic.Unmarshal(raw, &docs); err != nil {
			return nil, crerr.Wrap(err, "decode json")
		}
	default:
		return nil, crerr.Newf("unsupported format %q", format)
	}

	entries := make([]weightclass.Entry, 0, len(docs))
	for i, doc := range docs {
		if doc.Gender == nil {
			return nil, crerr.Newf("entry %d: Gender is required", i)
		}
		if doc.Weights == nil {
			return nil, crerr.Newf("entry %d: Weights is required", i)
		}
		gender, err := member.ParseGender(strings.TrimSpace(*doc.Gender))
		if err != nil {
			return nil, crerr.Wrapf(err, "entry %d", i)
		}
		entries = append(entries, weightclass.Entry{Gender: gender, Weights: *doc.Weights})
	}

	table, err := weightclass.NewTable(entries)
	if err != nil {
		return nil, crerr.Wrap(err, "build weight table")
	}
	return table, nil
}
