// Package ocdid loads and checks Open Civic Data division identifiers.
//
// The canonical identifier lists are the country-*.csv files of the
// opencivicdata/ocd-division-ids repository. The set is loaded from a local
// CSV (either user-supplied or previously placed in the XDG cache); the
// rule engine itself never touches the network.
package ocdid

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/adrg/xdg"

	"github.com/civictools/cdflint/internal/errors"
)

// ExternalIdentifierType is the ExternalIdentifier Type value that carries
// an OCD-ID. The casing is exact; "OCD-ID" and friends are defects.
const ExternalIdentifierType = "ocd-id"

var (
	ocdPattern = regexp.MustCompile(
		`^ocd-division/(?:country|region):[a-z]{2}(?:/[\w-]+:[\w.~-]+)*$`)
	ocdRootPattern = regexp.MustCompile(
		`^ocd-division/(?:country:[a-z]{2}|region:eu)$`)
)

// IsWellFormed reports whether the identifier matches the OCD-ID grammar.
// Membership in the published division list is a separate question,
// answered by Set.Contains.
func IsWellFormed(id string) bool {
	return ocdPattern.MatchString(id)
}

// IsCountryOrRegion reports whether the identifier names a whole country
// or region division.
func IsCountryOrRegion(id string) bool {
	return ocdRootPattern.MatchString(id)
}

// Set is the loaded collection of known division identifiers.
type Set struct {
	ids map[string]struct{}
}

// Contains reports whether the identifier appears in the published list.
// A nil Set contains nothing.
func (s *Set) Contains(id string) bool {
	if s == nil {
		return false
	}
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of loaded identifiers.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// CachePath returns where the division list for a country is cached,
// e.g. $XDG_CACHE_HOME/cdflint/country-us.csv.
func CachePath(country string) string {
	return filepath.Join(xdg.CacheHome, "cdflint", "country-"+country+".csv")
}

// LoadCSV reads a division list in the upstream CSV layout, where the
// identifier is the first column (header row "id,..." optional).
func LoadCSV(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening OCD-ID file %s", path)
	}
	defer f.Close()
	return load(f)
}

func load(r io.Reader) (*Set, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	set := &Set{ids: make(map[string]struct{})}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "reading OCD-ID file")
		}
		if len(record) == 0 || record[0] == "" || record[0] == "id" {
			continue
		}
		set.ids[record[0]] = struct{}{}
	}
	return set, nil
}
