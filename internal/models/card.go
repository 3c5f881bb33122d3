package models

import (
	"github.com/mkotov/card-wallet/internal/barcode"
	"github.com/mkotov/card-wallet/internal/brand"
)

// Card represents one loyalty/membership card. JSON field names double as
// the persisted document attribute names, so they must not change.
type Card struct {
	ID            string         `json:"id"`
	StoreName     string         `json:"storeName"`
	CardNumber    string         `json:"cardNumber"`
	BarcodeFormat barcode.Format `json:"barcodeFormat"`
	LogoURL       string         `json:"logoUrl,omitempty"`
	BrandColor    brand.Brand    `json:"brandColor"`
	IsFavorite    bool           `json:"isFavorite"`
	CreatedAt     int64          `json:"createdAt"`  // epoch millis, immutable
	LastUsedAt    *int64         `json:"lastUsedAt"` // epoch millis, nil until first detail-view
}

// CreateCardInput carries the caller-supplied fields for card creation.
// BarcodeFormat is optional; when absent or invalid it is inferred from
// the card number.
type CreateCardInput struct {
	StoreName     string         `json:"storeName"`
	CardNumber    string         `json:"cardNumber"`
	BarcodeFormat barcode.Format `json:"barcodeFormat,omitempty"`
}

// CardPatch is a partial update. Nil fields are left untouched. Format and
// brand color are never re-derived on update, even when the name or number
// changes; callers wanting recomputation must request it explicitly.
type CardPatch struct {
	StoreName     *string         `json:"storeName"`
	CardNumber    *string         `json:"cardNumber"`
	BarcodeFormat *barcode.Format `json:"barcodeFormat"`
	LogoURL       *string         `json:"logoUrl"`
	IsFavorite    *bool           `json:"isFavorite"`
}

// ExportRecord is the export document shape: only the user-meaningful
// fields survive an export. Identifiers and timestamps are deliberately
// omitted so a re-import never restores them.
type ExportRecord struct {
	StoreName     string         `json:"storeName"`
	CardNumber    string         `json:"cardNumber"`
	BarcodeFormat barcode.Format `json:"barcodeFormat"`
	IsFavorite    bool           `json:"isFavorite"`
}
