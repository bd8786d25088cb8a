package events

import "time"

// Operation вид изменения вместимости
type Operation string

const (
	OperationCreated     Operation = "created"
	OperationUpdated     Operation = "updated"
	OperationDeleted     Operation = "deleted"
	OperationBulkCreated Operation = "bulk_created"
)

// CapacityChanged событие об изменении слотов локации
type CapacityChanged struct {
	LocationID string    `json:"locationId"`
	Operation  Operation `json:"operation"`
	CapacityID string    `json:"capacityId,omitempty"`
	Source     string    `json:"source"`
	OccurredAt time.Time `json:"occurredAt"`
}

// RoutingKey возвращает ключ маршрутизации события
func (e CapacityChanged) RoutingKey() string {
	return RoutingKeyPrefix + string(e.Operation)
}

// RoutingKeyPrefix общий префикс ключей событий вместимости
const RoutingKeyPrefix = "capacity.changed."
