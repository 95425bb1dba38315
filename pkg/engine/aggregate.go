package engine

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Scores are the corpus-level results, aligned with corpus rows.
type Scores struct {
	// DF counts the documents containing each term.
	DF  []float64
	IDF []float64
	// TFIDF is the sum over terms of length-normalized tf times idf.
	TFIDF []float64
	// TermWeight is the share of recognized tokens that are indexed terms.
	TermWeight []float64
}

// Aggregate computes document frequencies over the whole corpus, then the
// tf-idf score and term weight of every row. Rows of length 0 score 0.
func Aggregate(c *Corpus) Scores {
	n, k := c.Len(), c.K()
	s := Scores{
		DF:         make([]float64, k),
		TFIDF:      make([]float64, n),
		TermWeight: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		for j, p := range c.Row(i).Presence {
			s.DF[j] += float64(p)
		}
	}
	s.IDF = IDF(s.DF, n)

	tf := make([]float64, k)
	for i := 0; i < n; i++ {
		row := c.Row(i)
		if row.Length == 0 {
			continue
		}
		length := float64(row.Length)
		for j, v := range row.TermFreq {
			tf[j] = float64(v)
		}
		s.TermWeight[i] = floats.Sum(tf) / length
		for j := range tf {
			tf[j] /= length
		}
		s.TFIDF[i] = floats.Dot(tf, s.IDF)
	}
	return s
}

// IDF is ln(n / (df + 1)) per term. The +1 keeps terms absent from the corpus
// finite; a term present in every document gets ln(n/(n+1)) < 0.
func IDF(df []float64, n int) []float64 {
	idf := make([]float64, len(df))
	if n == 0 {
		return idf
	}
	for j, d := range df {
		idf[j] = math.Log(float64(n) / (d + 1))
	}
	return idf
}
