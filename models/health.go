package models

type HealthItemName string

const (
	StorageHealthItemName HealthItemName = "storage"
)

type HealthItemStatus struct {
	Name    HealthItemName
	Backend StorageBackend
	Status  bool
}

type HealthStatus struct {
	Statuses []HealthItemStatus
}

func (l HealthStatus) IsHealthy() bool {
	for _, status := range l.Statuses {
		if !status.Status {
			return false
		}
	}
	return true
}
