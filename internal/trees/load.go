package trees

import (
	"encoding/csv"
	"errors"
	"io"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// DefaultSampleSize bounds the number of trees drawn.
const DefaultSampleSize = 1000

// columnAliases maps canonical columns to accepted header spellings
// (case-insensitive), in order of precedence.
var columnAliases = map[string][]string{
	ColTreeID:    {"tree_id", "id"},
	ColLatitude:  {"latitude", "lat"},
	ColLongitude: {"longitude", "lon", "lng", "long"},
	ColHealth:    {"health"},
	ColSpecies:   {"spc_common", "species"},
	ColDiameter:  {"tree_dbh", "dbh", "diameter"},
	ColBorough:   {"borough", "boroname", "boro_name"},
}

// Options controls sampling.
type Options struct {
	SampleSize int
	// Rand draws the sample. Nil uses an unseeded source.
	Rand *rand.Rand
}

// NewRand returns a random source for seed; zero yields an unseeded source.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Result is the outcome of loading a tree file.
type Result struct {
	Sample    SampleSet
	TotalRows int
	ValidRows int
}

// LoadFile opens path and samples it.
func LoadFile(path string, opts Options) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, eris.Wrap(err, "trees: open csv")
	}
	defer f.Close() //nolint:errcheck
	return Load(f, opts)
}

// Load streams CSV rows from r, validates them, and draws a uniform sample
// of at most opts.SampleSize valid records.
func Load(r io.Reader, opts Options) (Result, error) {
	log := zap.L().With(zap.String("component", "trees.loader"))

	size := opts.SampleSize
	if size <= 0 {
		size = DefaultSampleSize
	}
	rng := opts.Rand
	if rng == nil {
		rng = NewRand(0)
	}

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Result{}, eris.New("trees: empty csv")
	}
	if err != nil {
		return Result{}, eris.Wrap(err, "trees: read header")
	}
	idx := resolveColumns(header)
	for _, col := range []string{ColLatitude, ColLongitude, ColHealth} {
		if _, ok := idx[col]; !ok {
			return Result{}, eris.Errorf("trees: column %q not found", col)
		}
	}

	res := Result{}
	s := newSampler(size, rng)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Result{}, eris.Wrapf(err, "trees: read row %d", res.TotalRows+1)
		}
		res.TotalRows++
		row := make(Row, len(idx))
		for col, i := range idx {
			if i < len(rec) {
				row[col] = rec[i]
			}
		}
		record, ok := FromRow(res.TotalRows, row)
		if !ok {
			continue
		}
		res.ValidRows++
		s.offer(record)
	}
	res.Sample = s.result()

	log.Info("tree data loaded",
		zap.Int("rows", res.TotalRows),
		zap.Int("valid", res.ValidRows),
		zap.Int("sampled", len(res.Sample)))
	return res, nil
}

func resolveColumns(header []string) map[string]int {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		lh := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := pos[lh]; !dup {
			pos[lh] = i
		}
	}
	idx := map[string]int{}
	for col, aliases := range columnAliases {
		for _, a := range aliases {
			if i, ok := pos[a]; ok {
				idx[col] = i
				break
			}
		}
	}
	return idx
}
