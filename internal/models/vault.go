package models

import "time"

// MediaType classifies a vault item payload.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// VaultItem is a private media record in the vault collection, keyed by ID.
// Data holds the raw media payload; it can be large.
type VaultItem struct {
	ID        string    `json:"id"`
	Type      MediaType `json:"type"`
	Name      string    `json:"name"`
	Data      []byte    `json:"data"`
	CreatedAt time.Time `json:"createdAt"`
}
