package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringSlice is a custom type for storing string arrays in JSON
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("unsupported StringSlice source %T", value)
	}
}

// Generation records one successful call to the generator
type Generation struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	RequestID   string      `gorm:"index" json:"request_id"`
	Niche       string      `gorm:"index;not null" json:"niche"`
	ContentType string      `json:"content_type"`
	TemplateIDs StringSlice `gorm:"type:json" json:"template_ids"`
	CreatedAt   time.Time   `gorm:"autoCreateTime;index" json:"created_at"`
}
