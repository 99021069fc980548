package expand

import (
	"sort"

	"enumrange/internal/enumspec"
)

// Classifiers synthesizes the membership functions declared by range_check
// annotations. One classifier may be shared by several disjoint ranges; its
// interval set is the union of every range that named it. The result is
// independent of declaration order: classifiers are sorted by name and
// intervals by their start bound.
func Classifiers(spec *enumspec.EnumSpec) []enumspec.ClassifierSpec {
	byName := make(map[string][]enumspec.Interval)
	for i := range spec.Variants {
		variant := &spec.Variants[i]
		if variant.Kind != enumspec.VariantRanged {
			continue
		}
		for _, name := range variant.RangeCheck {
			byName[name] = append(byName[name], enumspec.Interval{
				Start: variant.Start,
				End:   variant.End,
			})
		}
	}
	if len(byName) == 0 {
		return nil
	}

	out := make([]enumspec.ClassifierSpec, 0, len(byName))
	for name, intervals := range byName {
		sort.Slice(intervals, func(i, j int) bool {
			return intervals[i].Start < intervals[j].Start
		})
		out = append(out, enumspec.ClassifierSpec{Name: name, Intervals: intervals})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}
