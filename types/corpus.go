package types

import "time"

// RunStatus records how the most recent crawl run ended.
type RunStatus string

const (
	RunSuccess RunStatus = "success"
	RunFailed  RunStatus = "failed"
	RunUnknown RunStatus = "unknown"
)

// Corpus is the persisted aggregate state: an ordered, bounded list of items
// plus run metadata. It is read once at the start of a run and replaced
// wholesale at the end, never patched in place.
type Corpus struct {
	LastUpdated *time.Time `json:"lastUpdated"`
	RunStatus   RunStatus  `json:"runStatus"`
	TotalItems  int        `json:"totalItems"`
	Items       []*Item    `json:"items"`
}

// EmptyCorpus returns the state assumed before the first successful run.
func EmptyCorpus() *Corpus {
	return &Corpus{
		RunStatus: RunUnknown,
		Items:     []*Item{},
	}
}
