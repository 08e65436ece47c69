package browser

import (
	"github.com/matst80/slask-catalog/pkg/types"
)

const NoResultsMessage = "No result found"

// View is what a renderer needs for one render cycle. Version increases with
// every state change of the owning session so stale snapshots can be dropped.
type View struct {
	SessionId    string           `json:"sid"`
	Version      uint64           `json:"version"`
	Items        []types.Product  `json:"items"`
	PageIndex    int              `json:"page"`
	PageSize     int              `json:"pageSize"`
	TotalPages   int              `json:"totalPages"`
	TotalItems   int              `json:"totalHits"`
	CanGoPrev    bool             `json:"canGoPrev"`
	CanGoNext    bool             `json:"canGoNext"`
	Loading      bool             `json:"loading"`
	Error        *string          `json:"error"`
	EmptyMessage string           `json:"emptyMessage,omitempty"`
	Categories   []string         `json:"categories"`
	Query        types.QueryState `json:"query"`
}

func (v View) Failed() bool {
	return v.Error != nil
}
