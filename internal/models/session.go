package models

import "time"

// SessionMeta is stored as meta.json next to the results table.
type SessionMeta struct {
	Name       string            `json:"name"`
	SourceURL  string            `json:"source_url"`
	CreatedAt  time.Time         `json:"created_at"`
	ItemCount  int               `json:"item_count"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// MatchRow is one product row of a saved search: Micro Center fields first, then Amazon fields.
type MatchRow struct {
	MCSKU       string
	MCTitle     string
	MCRetail    string
	MCCost      string
	Avg14       string
	Attributes  string
	Notes       string
	Rank        int
	ASIN        string
	AmazonTitle string
	AmazonPrice string
	SellThrough string
	AmazonURL   string
	ImageURL    string
}

// Session is a persisted unit of work: matched products plus metadata.
type Session struct {
	ID   string
	Meta SessionMeta
	Rows []MatchRow
}
