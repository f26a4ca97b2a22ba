// Package aggregate groups entry samples by their max key and reports per-key means.
package aggregate

import (
	"errors"
	"fmt"
	"slices"

	"golang.org/x/exp/maps"

	"github.com/archer884/roll-report/internal/entry"
	"github.com/archer884/roll-report/internal/model"
)

// Aggregator holds every value seen so far, bucketed by max. A key exists
// only once at least one value has been appended to it.
type Aggregator struct {
	values map[int32][]int32
}

func New() *Aggregator {
	return &Aggregator{values: make(map[int32][]int32)}
}

// Add appends e's values under e.Max. An entry without values creates no key.
func (a *Aggregator) Add(e model.Entry) {
	if len(e.Values) == 0 {
		return
	}
	a.values[e.Max] = append(a.values[e.Max], e.Values...)
}

// Merge appends the values of other after the receiver's own, key by key.
func (a *Aggregator) Merge(other *Aggregator) {
	if other == nil {
		return
	}
	for _, key := range sortedKeys(other.values) {
		a.values[key] = append(a.values[key], other.values[key]...)
	}
}

func (a *Aggregator) Len() int {
	return len(a.values)
}

func (a *Aggregator) Values(key int32) []int32 {
	return slices.Clone(a.values[key])
}

// Groups returns one row per key in ascending key order. Sums are taken in
// 64 bits so that many large 32-bit samples cannot overflow.
func (a *Aggregator) Groups() []model.Group {
	keys := sortedKeys(a.values)
	groups := make([]model.Group, 0, len(keys))
	for _, key := range keys {
		values := a.values[key]
		var sum int64
		for _, value := range values {
			sum += int64(value)
		}
		groups = append(groups, model.Group{
			Max:   key,
			Count: len(values),
			Sum:   sum,
			Mean:  float64(sum) / float64(len(values)),
		})
	}
	return groups
}

func Build(path string, lines int, agg *Aggregator) model.Report {
	report := model.Report{
		Path:   path,
		Lines:  lines,
		Groups: []model.Group{},
	}
	if agg != nil {
		report.Groups = agg.Groups()
	}
	return report
}

// FromFile runs a full pass over path. Nothing is returned unless every
// line parses.
func FromFile(path string) (model.Report, error) {
	agg := New()
	lines, err := entry.ReadFile(path, func(e model.Entry) error {
		agg.Add(e)
		return nil
	})
	if err != nil {
		var ioErr *entry.IOError
		if errors.As(err, &ioErr) {
			return model.Report{}, err
		}
		return model.Report{}, fmt.Errorf("%s: %w", path, err)
	}
	return Build(path, lines, agg), nil
}

func sortedKeys(values map[int32][]int32) []int32 {
	keys := maps.Keys(values)
	slices.Sort(keys)
	return keys
}
