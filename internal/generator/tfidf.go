package generator

import (
	"math"
	"regexp"
	"strings"
)

var tokenRe = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

func tokenize(text string) []string {
	return tokenRe.FindAllString(strings.ToLower(text), -1)
}

// TFIDF scores text against one document per domain. Term weights use smoothed idf,
// ln((1+n)/(1+df))+1, and every vector is L2 normalized, so a score is a cosine.
type TFIDF struct {
	names []string
	vocab map[string]int
	idf   []float64
	docs  []map[int]float64
}

func NewTFIDF(domains []Domain) *TFIDF {
	t := &TFIDF{vocab: map[string]int{}}
	counts := make([]map[int]float64, 0, len(domains))
	df := map[int]int{}
	for _, d := range domains {
		t.names = append(t.names, d.Name)
		tf := map[int]float64{}
		for _, tok := range tokenize(strings.Join(d.Keywords, " ")) {
			idx, ok := t.vocab[tok]
			if !ok {
				idx = len(t.vocab)
				t.vocab[tok] = idx
			}
			if tf[idx] == 0 {
				df[idx]++
			}
			tf[idx]++
		}
		counts = append(counts, tf)
	}

	n := float64(len(domains))
	t.idf = make([]float64, len(t.vocab))
	for idx := range t.idf {
		t.idf[idx] = math.Log((1+n)/(1+float64(df[idx]))) + 1
	}
	for _, tf := range counts {
		t.docs = append(t.docs, t.weigh(tf))
	}
	return t
}

func (t *TFIDF) weigh(tf map[int]float64) map[int]float64 {
	var norm float64
	for idx, c := range tf {
		w := c * t.idf[idx]
		tf[idx] = w
		norm += w * w
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return tf
	}
	for idx := range tf {
		tf[idx] /= norm
	}
	return tf
}

// Detect returns the best matching domain and its cosine score. Ties go to the domain
// listed first. A text that shares no term with any domain gives "" and 0.
func (t *TFIDF) Detect(text string) (string, float64) {
	tf := map[int]float64{}
	for _, tok := range tokenize(text) {
		if idx, ok := t.vocab[tok]; ok {
			tf[idx]++
		}
	}
	if len(tf) == 0 {
		return "", 0
	}
	q := t.weigh(tf)

	best, bestScore := -1, 0.0
	for i, doc := range t.docs {
		var score float64
		for idx, w := range q {
			score += w * doc[idx]
		}
		if best < 0 || score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 || bestScore == 0 {
		return "", 0
	}
	return t.names[best], bestScore
}
