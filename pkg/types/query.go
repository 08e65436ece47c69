package types

// QueryState is the user-controlled input of a browsing session.
// DebouncedSearchText trails RawSearchText and only changes through the debouncer.
type QueryState struct {
	RawSearchText       string  `json:"rawSearchText"`
	DebouncedSearchText string  `json:"searchText"`
	Category            string  `json:"category,omitempty"`
	Sort                SortKey `json:"sort,omitempty"`
	PageIndex           int     `json:"page"`
}
