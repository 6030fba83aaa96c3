package event

type Type string

const (
	TypeCopyStarted   Type = "copy.started"
	TypeCopyProgress  Type = "copy.progress"
	TypeCopyItemError Type = "copy.item_error"
	TypeCopyCompleted Type = "copy.completed"
	TypeCatalogBuilt  Type = "catalog.built"
)

type Event struct {
	ID        string `json:"id"`
	Type      Type   `json:"type"`
	Payload   any    `json:"payload"`
	Timestamp string `json:"timestamp"`
}

type Bus interface {
	Publish(e Event)
	Subscribe() (<-chan Event, func()) // Returns channel and unsubscribe function
}
