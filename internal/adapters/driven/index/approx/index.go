package approx

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/hbollon/go-edlib"

	"github.com/custodia-labs/sifter/internal/core/domain"
	"github.com/custodia-labs/sifter/internal/core/ports/driven"
	"github.com/custodia-labs/sifter/internal/logger"
)

// Ensure Index implements the interface.
var _ driven.FuzzyIndex = (*Index)(nil)

const (
	// DefaultThreshold is the highest field score that still matches.
	DefaultThreshold = 0.4

	// minScore is the floor for any match that is not whole-field equality.
	minScore = 0.001

	// maxFuzziness is the largest edit distance bleve's fuzzy query accepts.
	maxFuzziness = 2

	analyzerName = "sifter"
)

// epsilon replaces a zero field score so the weight exponent still applies.
var epsilon = math.Nextafter(1, 2) - 1

// Index is a fuzzy index over an in-memory bleve index. It is safe for
// concurrent use.
type Index struct {
	mu        sync.RWMutex
	threshold float64
	engine    bleve.Index
	analyzer  analysis.Analyzer
	entries   []entry   // collection order; the bleve document ID is the position
	weights   []float64 // normalised, parallel to fields
}

type entry struct {
	id     string
	fields []field // parallel to Index.weights
}

type field struct {
	folded string // "" when blank
	norm   float64
}

// New creates an empty index. Thresholds outside (0, 1] use DefaultThreshold.
func New(threshold float64) *Index {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Index{threshold: threshold}
}

// Rebuild replaces the indexed collection. On an engine failure the previous
// collection stays in place.
func (i *Index) Rebuild(records []domain.Record, fields []string, weights domain.FieldWeights) {
	total := 0.0
	for _, f := range fields {
		total += weights.Weight(f)
	}
	normalised := make([]float64, len(fields))
	for n, f := range fields {
		normalised[n] = weights.Weight(f) / total
	}

	im, err := newMapping(len(fields))
	if err != nil {
		logger.Warn("approx: building mapping: %v", err)
		return
	}
	engine, err := bleve.NewMemOnly(im)
	if err != nil {
		logger.Warn("approx: creating index: %v", err)
		return
	}

	entries := make([]entry, len(records))
	batch := engine.NewBatch()
	for n, rec := range records {
		e := entry{id: rec.ID, fields: make([]field, len(fields))}
		doc := make(map[string]any, len(fields))
		for k, name := range fields {
			value := rec.Field(name)
			if strings.TrimSpace(value) == "" {
				continue
			}
			e.fields[k] = field{folded: fold(value), norm: norm(value)}
			doc[fieldKey(k)] = value
		}
		entries[n] = e
		if err := batch.Index(strconv.Itoa(n), doc); err != nil {
			engine.Close()
			logger.Warn("approx: indexing %s: %v", rec.ID, err)
			return
		}
	}
	if err := engine.Batch(batch); err != nil {
		engine.Close()
		logger.Warn("approx: writing batch: %v", err)
		return
	}

	i.mu.Lock()
	old := i.engine
	i.engine = engine
	i.analyzer = im.AnalyzerNamed(analyzerName)
	i.entries = entries
	i.weights = normalised
	i.mu.Unlock()

	if old != nil {
		old.Close()
	}
	logger.Debug("approx: indexed %d records over %d fields", len(records), len(fields))
}

// Len returns the number of indexed records.
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.entries)
}

// Close releases the bleve index.
func (i *Index) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.engine == nil {
		return nil
	}
	err := i.engine.Close()
	i.engine = nil
	i.entries = nil
	return err
}

// Search returns the records matching pattern, best score first and in
// collection order for equal scores.
func (i *Index) Search(pattern string) []driven.FuzzyHit {
	if strings.TrimSpace(pattern) == "" {
		return nil
	}

	i.mu.RLock()
	defer i.mu.RUnlock()

	if i.engine == nil || len(i.entries) == 0 || len(i.weights) == 0 {
		return nil
	}
	terms := i.terms(pattern)
	if len(terms) == 0 {
		return nil
	}

	req := bleve.NewSearchRequestOptions(i.query(terms), len(i.entries), 0, false)
	req.IncludeLocations = true
	res, err := i.engine.Search(req)
	if err != nil {
		logger.Warn("approx: search %q: %v", pattern, err)
		return nil
	}

	folded := fold(pattern)
	type scored struct {
		pos int
		hit driven.FuzzyHit
	}
	hits := make([]scored, 0, len(res.Hits))
	for _, dm := range res.Hits {
		pos, err := strconv.Atoi(dm.ID)
		if err != nil || pos < 0 || pos >= len(i.entries) {
			continue
		}
		e := i.entries[pos]
		total, matched := 1.0, false
		for k, f := range e.fields {
			if f.folded == "" {
				continue
			}
			score, ok := i.scoreField(folded, terms, f.folded, dm.Locations[fieldKey(k)])
			if !ok {
				continue
			}
			matched = true
			if score == 0 {
				score = epsilon
			}
			total *= math.Pow(score, i.weights[k]*f.norm)
		}
		if matched {
			hits = append(hits, scored{pos: pos, hit: driven.FuzzyHit{RecordID: e.id, Score: total}})
		}
	}

	sort.Slice(hits, func(a, b int) bool {
		if hits[a].hit.Score != hits[b].hit.Score {
			return hits[a].hit.Score < hits[b].hit.Score
		}
		return hits[a].pos < hits[b].pos
	})

	out := make([]driven.FuzzyHit, len(hits))
	for n, h := range hits {
		out[n] = h.hit
	}
	return out
}

// terms analyses pattern the way field values were analysed.
func (i *Index) terms(pattern string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, tok := range i.analyzer.Analyze([]byte(pattern)) {
		t := string(tok.Term)
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// query requires every term to match some field, either within the allowed
// edit distance or as a substring of an indexed term.
func (i *Index) query(terms []string) query.Query {
	all := make([]query.Query, 0, len(terms))
	for _, t := range terms {
		var anyField []query.Query
		for k, w := range i.weights {
			anyField = append(anyField, i.fuzzy(t, fieldKey(k), w))
			if q := substring(t, fieldKey(k), w); q != nil {
				anyField = append(anyField, q)
			}
		}
		all = append(all, bleve.NewDisjunctionQuery(anyField...))
	}
	return bleve.NewConjunctionQuery(all...)
}

// fuzzy matches whole terms within threshold × len(term) edits, capped at
// what bleve supports.
func (i *Index) fuzzy(term, field string, boost float64) query.Query {
	edits := min(maxFuzziness, int(i.threshold*float64(utf8.RuneCountInString(term))))
	if edits == 0 {
		q := bleve.NewTermQuery(term)
		q.SetField(field)
		q.SetBoost(boost)
		return q
	}
	q := bleve.NewFuzzyQuery(term)
	q.SetField(field)
	q.SetFuzziness(edits)
	q.SetBoost(boost)
	return q
}

// substring matches indexed terms containing term.
func substring(term, field string, boost float64) query.Query {
	if strings.ContainsAny(term, "*?") {
		return nil
	}
	q := bleve.NewWildcardQuery("*" + term + "*")
	q.SetField(field)
	q.SetBoost(boost)
	return q
}

// scoreField scores one folded field value from the indexed terms bleve
// matched in it. Each pattern term takes its best matched term; unmatched
// terms count as 1. The field score is the mean.
func (i *Index) scoreField(pattern string, terms []string, text string, matched search.TermLocationMap) (float64, bool) {
	if text == pattern {
		return 0, true
	}
	if len(matched) == 0 {
		return 1, false
	}
	sum := 0.0
	for _, t := range terms {
		best := 1.0
		for u := range matched {
			if s, ok := i.termScore(t, u); ok && s < best {
				best = s
			}
		}
		sum += best
	}
	score := sum / float64(len(terms))
	if score > i.threshold {
		return 1, false
	}
	return math.Max(minScore, score), true
}

// termScore is 0 when indexed contains term, otherwise the edit distance
// divided by the term length.
func (i *Index) termScore(term, indexed string) (float64, bool) {
	if strings.Contains(indexed, term) {
		return 0, true
	}
	s := float64(edlib.LevenshteinDistance(term, indexed)) / float64(utf8.RuneCountInString(term))
	return s, s <= i.threshold
}

func newMapping(fields int) (*mapping.IndexMappingImpl, error) {
	im := bleve.NewIndexMapping()
	err := im.AddCustomAnalyzer(analyzerName, map[string]any{
		"type":          custom.Name,
		"tokenizer":     unicode.Name,
		"token_filters": []string{lowercase.Name},
	})
	if err != nil {
		return nil, err
	}

	doc := bleve.NewDocumentMapping()
	doc.Dynamic = false
	for k := 0; k < fields; k++ {
		fm := bleve.NewTextFieldMapping()
		fm.Analyzer = analyzerName
		fm.Store = false
		fm.IncludeInAll = false
		doc.AddFieldMappingsAt(fieldKey(k), fm)
	}
	im.DefaultMapping = doc
	im.DefaultAnalyzer = analyzerName
	return im, nil
}

// fieldKey names the k-th field inside bleve, keeping record field names
// with dots or spaces out of bleve's path syntax.
func fieldKey(k int) string {
	return "f" + strconv.Itoa(k)
}

// norm is 1/√tokens rounded to three decimals, tokens being runs of
// non-space characters.
func norm(value string) float64 {
	tokens := len(strings.FieldsFunc(value, func(r rune) bool { return r == ' ' }))
	if tokens == 0 {
		tokens = 1
	}
	return math.Round(1000/math.Sqrt(float64(tokens))) / 1000
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
