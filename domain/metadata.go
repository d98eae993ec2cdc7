package domain

import (
	"encoding/json"

	"github.com/bidhaus/goapi/base/ctx"
)

// Placeholder values used when a metadata document is missing fields or
// cannot be fetched at all.
const (
	DefaultMetadataName     = "Untitled"
	DefaultMetadataCategory = "Uncategorized"
)

// AuctionMetadata is the off-chain JSON document describing the auctioned
// asset, resolved from the proposal's content-addressable uri.
type AuctionMetadata struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	ThumbnailUri string   `json:"thumbnail,omitempty"`
	ImageUris    []string `json:"images"`
}

// PlaceholderMetadata returns the documented defaults used when resolution fails.
func PlaceholderMetadata() *AuctionMetadata {
	return &AuctionMetadata{
		Name:      DefaultMetadataName,
		Category:  DefaultMetadataCategory,
		ImageUris: []string{},
	}
}

// ApplyDefaults fills absent fields with their documented defaults.
func (m *AuctionMetadata) ApplyDefaults() {
	if m.Name == "" {
		m.Name = DefaultMetadataName
	}
	if m.Category == "" {
		m.Category = DefaultMetadataCategory
	}
	if m.ImageUris == nil {
		m.ImageUris = []string{}
	}
}

// ParseAuctionMetadata decodes a raw metadata document and applies defaults.
func ParseAuctionMetadata(raw json.RawMessage) (*AuctionMetadata, error) {
	var m AuctionMetadata
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, ErrInvalidJsonFormat
	}
	m.ApplyDefaults()
	return &m, nil
}

// MetadataReaderRepository fetches the raw bytes behind one uri scheme.
type MetadataReaderRepository interface {
	Get(ctx.Ctx, string) ([]byte, error)
}

type MetadataUseCase interface {
	GetFromUri(ctx.Ctx, string) (*AuctionMetadata, error)
}
