package dataprocessing

import (
	"strings"

	"glreport/pkg/contracts/domain"
)

// Clean returns a copy of ds with surrounding whitespace removed from every
// text value. Values of other kinds are copied unchanged and ds is not
// modified.
func Clean(ds *domain.Dataset) *domain.Dataset {
	out := ds.Clone()
	for _, rec := range out.Records {
		for col, v := range rec {
			if v.Kind != domain.KindText {
				continue
			}
			v.Text = strings.TrimSpace(v.Text)
			rec[col] = v
		}
	}
	return out
}
