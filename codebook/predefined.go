package codebook

import "github.com/forestrie/go-markerbook/codeword"

// PredefinedParams describes one of the standard dictionaries. The byte
// tables themselves are not shipped here; NewPredefined reads them from a
// caller supplied flat buffer.
type PredefinedParams struct {
	MarkerSize        int
	Count             int
	MaxCorrectionBits int
}

// Standard dictionaries. Several share one backing table and differ only in
// how many leading markers they use and in their error budget.
var predefined = map[string]PredefinedParams{
	"ARUCO_ORIGINAL": {5, 1024, 1},
	"4X4_50":         {4, 50, 1},
	"4X4_100":        {4, 100, 1},
	"4X4_250":        {4, 250, 1},
	"4X4_1000":       {4, 1000, 0},
	"5X5_50":         {5, 50, 3},
	"5X5_100":        {5, 100, 3},
	"5X5_250":        {5, 250, 2},
	"5X5_1000":       {5, 1000, 2},
	"6X6_50":         {6, 50, 6},
	"6X6_100":        {6, 100, 5},
	"6X6_250":        {6, 250, 5},
	"6X6_1000":       {6, 1000, 4},
	"7X7_50":         {7, 50, 9},
	"7X7_100":        {7, 100, 8},
	"7X7_250":        {7, 250, 8},
	"7X7_1000":       {7, 1000, 6},
}

// LookupPredefined returns the parameters of a standard dictionary.
func LookupPredefined(name string) (PredefinedParams, bool) {
	p, ok := predefined[name]
	return p, ok
}

// NewPredefined builds the named standard dictionary from table, the flat
// layout of the backing byte table. The table may hold more markers than the
// dictionary uses; only the leading Count markers are read.
func NewPredefined(name string, table []byte) (*Codebook, error) {
	p, ok := predefined[name]
	if !ok {
		return nil, ErrUnknownName
	}
	need := codeword.FlatBytes(p.MarkerSize, p.Count)
	if len(table) < need {
		return nil, ErrTableTooShort
	}
	return New(table[:need], p.MarkerSize, p.Count, p.MaxCorrectionBits)
}
