package usecase

import "morphseg/internal/domain"

// SelectModel picks the model whose output becomes canonical: more accepted
// splits wins, then the larger score sum, then the prefix model.
func SelectModel(prefix, suffix domain.CorpusTally) domain.Model {
	if suffix.SplitCount > prefix.SplitCount {
		return domain.ModelSuffix
	}
	if suffix.SplitCount < prefix.SplitCount {
		return domain.ModelPrefix
	}
	if suffix.ScoreSum > prefix.ScoreSum {
		return domain.ModelSuffix
	}
	return domain.ModelPrefix
}
