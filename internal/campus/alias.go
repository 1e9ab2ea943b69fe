package campus

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

// aliasFile is the on-disk shape of the curated colloquialism table:
//
//	aliases:
//	  culc: "062"
//	  crc: "104"
type aliasFile struct {
	Aliases map[string]string `yaml:"aliases"`
}

// LoadAliases reads the curated alias table. Phrases are case-folded here so
// the registry only ever sees normalized keys; duplicate phrases pointing at
// different facilities are a config error.
func LoadAliases(path string) (map[string]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var af aliasFile
	if err := yaml.Unmarshal(b, &af); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	out := make(map[string]string, len(af.Aliases))
	for phrase, cid := range af.Aliases {
		p := fold(phrase)
		target := strings.TrimSpace(cid)
		if p == "" || target == "" {
			return nil, fmt.Errorf("%s: alias %q -> %q has an empty side", path, phrase, cid)
		}
		if prev, ok := out[p]; ok && prev != target {
			return nil, fmt.Errorf("%s: alias %q maps to both %q and %q", path, phrase, prev, target)
		}
		out[p] = target
	}
	return out, nil
}
