package core

import "sort"

// RankParticipations orders the evaluated participations of a notice by
// evaluation score, best first. Ties on score are broken by earliest
// submission time; equal timestamps fall back to participation ID so the
// ordering is fully deterministic. Unevaluated participations are excluded
// from ranking and reported separately.
func RankParticipations(participations []*Participation) *RankingResult {
	ranked := make([]*Participation, 0, len(participations))
	unevaluatedIDs := make([]string, 0)

	for _, p := range participations {
		if p.IsEvaluated && p.EvaluationScore != nil {
			ranked = append(ranked, p)
		} else {
			unevaluatedIDs = append(unevaluatedIDs, p.ID)
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		si, sj := *ranked[i].EvaluationScore, *ranked[j].EvaluationScore
		if si != sj {
			return si > sj
		}
		if !ranked[i].SubmittedAt.Equal(ranked[j].SubmittedAt) {
			return ranked[i].SubmittedAt.Before(ranked[j].SubmittedAt)
		}
		return ranked[i].ID < ranked[j].ID
	})

	result := &RankingResult{
		Ranks:          make(map[string]int, len(ranked)),
		Ranked:         ranked,
		UnevaluatedIDs: unevaluatedIDs,
	}
	for i, p := range ranked {
		result.Ranks[p.ID] = i + 1
	}
	return result
}
