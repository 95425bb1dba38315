package engine

import (
	"context"
	"fmt"

	"github.com/szuwgh/edgarsent/pkg/analysis"
	"github.com/szuwgh/edgarsent/pkg/filing"
)

// Row is one scored document. TermFreq, Presence and Length always come from
// the same pass over the same file.
type Row struct {
	Name string
	Meta filing.Metadata
	analysis.Vector
}

// Corpus holds the term-frequency matrix, presence matrix and length vector of
// a run as rows indexed by collection slot. Row i of every matrix is the same
// document.
type Corpus struct {
	k    int
	rows []Row
	n    int
}

// NewCorpus pre-sizes room for capacity documents of width k.
func NewCorpus(k, capacity int) *Corpus {
	return &Corpus{k: k, rows: make([]Row, capacity)}
}

// Add stores r in the next free slot and returns the slot.
func (c *Corpus) Add(r Row) int {
	if len(r.TermFreq) != c.k || len(r.Presence) != c.k {
		panic(fmt.Sprintf("corpus: vector width %d/%d, want %d", len(r.TermFreq), len(r.Presence), c.k))
	}
	slot := c.n
	if slot < len(c.rows) {
		c.rows[slot] = r
	} else {
		c.rows = append(c.rows, r)
	}
	c.n++
	return slot
}

// Len is N, the number of documents collected.
func (c *Corpus) Len() int {
	return c.n
}

// K is the vector width.
func (c *Corpus) K() int {
	return c.k
}

func (c *Corpus) Row(i int) *Row {
	if i >= c.n {
		panic(fmt.Sprintf("corpus: row %d out of range [0,%d)", i, c.n))
	}
	return &c.rows[i]
}

// Score runs a over paths and collects every scored document into a corpus,
// in the order results arrive.
func (d *Driver) Score(ctx context.Context, a *analysis.Analyzer, paths []string) (*Corpus, Summary, error) {
	c := NewCorpus(a.K(), len(paths))
	s, err := d.Run(ctx, paths,
		func(text string) interface{} {
			return a.Analyze(text)
		},
		func(r Result) {
			if r.Status != Scored {
				return
			}
			v := r.Payload.(analysis.Vector)
			d.metrics.DocumentLength.Observe(float64(v.Length))
			c.Add(Row{Name: r.Name, Meta: r.Meta, Vector: v})
		})
	return c, s, err
}

// ProfileRow is the category profile of one document.
type ProfileRow struct {
	Name string
	Meta filing.Metadata
	analysis.Profile
}

// Profile runs the category profile over paths.
func (d *Driver) Profile(ctx context.Context, a *analysis.Analyzer, paths []string) ([]ProfileRow, Summary, error) {
	rows := make([]ProfileRow, len(paths))
	n := 0
	s, err := d.Run(ctx, paths,
		func(text string) interface{} {
			return a.Profile(text)
		},
		func(r Result) {
			if r.Status != Scored {
				return
			}
			p := r.Payload.(analysis.Profile)
			d.metrics.DocumentLength.Observe(float64(p.Words))
			rows[n] = ProfileRow{Name: r.Name, Meta: r.Meta, Profile: p}
			n++
		})
	return rows[:n], s, err
}
