package persistence

import (
	"fmt"
	"time"
)

// slotSchema maps a row of favorite_slots.
type slotSchema struct {
	Key       string    `db:"key"`
	IDs       []byte    `db:"ids"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (s *slotSchema) toDomain() ([]string, error) {
	var ids []string
	if len(s.IDs) > 0 {
		if err := json.Unmarshal(s.IDs, &ids); err != nil {
			return nil, fmt.Errorf("json.Unmarshal: %w", err)
		}
	}
	return ids, nil
}

func newSlotSchema(key string, ids []string) (*slotSchema, error) {
	if ids == nil {
		ids = []string{}
	}

	b, err := json.Marshal(ids)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return &slotSchema{
		Key:       key,
		IDs:       b,
		UpdatedAt: time.Now(),
	}, nil
}
