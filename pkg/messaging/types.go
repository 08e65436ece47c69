package messaging

type ChangeTopic string

const (
	SearchTopic ChangeTopic = "catalog_search"
)

const GlobalPrefix = "global"
