package recommend

import (
	"cmp"
	"slices"

	"github.com/samber/lo"

	"github.com/sergeyb2024/telemetry/pkg/model"
)

// Rank returns a copy of recs ordered by confidence, highest first.
// Equal confidences keep their original order.
func Rank(recs []model.Recommendation) []model.Recommendation {
	ret := slices.Clone(recs)
	slices.SortStableFunc(ret, func(a, b model.Recommendation) int {
		return cmp.Compare(b.Confidence, a.Confidence)
	})
	return ret
}

// ByModule groups the recommendations by the module that produced them.
func ByModule(recs []model.Recommendation) map[string][]model.Recommendation {
	return lo.GroupBy(recs, func(r model.Recommendation) string {
		return r.Module
	})
}
