package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/mkotov/card-wallet/internal/barcode"
	"github.com/mkotov/card-wallet/internal/models"
)

func exportRecords(cards []models.Card) []models.ExportRecord {
	records := make([]models.ExportRecord, 0, len(cards))
	for _, c := range cards {
		records = append(records, models.ExportRecord{
			StoreName:     c.StoreName,
			CardNumber:    c.CardNumber,
			BarcodeFormat: c.BarcodeFormat,
			IsFavorite:    c.IsFavorite,
		})
	}
	return records
}

// ExportJSON serializes the sorted view as a JSON array of export
// records. Identifiers, timestamps and logo URLs never leave the device
// through an export.
func (s *Store) ExportJSON() ([]byte, error) {
	data, err := json.MarshalIndent(exportRecords(s.List()), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}
	return data, nil
}

// ImportJSON parses a JSON export document and re-creates its records
// through Create, so ids, timestamps and brand data are derived afresh
// and a missing format tag is re-inferred. Records without a store name
// or card number are skipped silently. Input that is not a JSON array at
// all fails wholesale with ErrInvalidFormat and imports nothing.
func (s *Store) ImportJSON(ctx context.Context, data []byte) (int, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return 0, fmt.Errorf("%w: not a JSON array", ErrInvalidFormat)
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	count := 0
	for _, msg := range raw {
		var rec models.ExportRecord
		if err := json.Unmarshal(msg, &rec); err != nil {
			continue
		}
		imported, err := s.importRecord(ctx, rec)
		if err != nil {
			return count, err
		}
		if imported {
			count++
		}
	}
	s.log.Infof("Imported %d cards", count)
	return count, nil
}

// ExportXML serializes the sorted view as an XML document with the same
// content contract as the JSON export.
func (s *Store) ExportXML() ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("cards")
	for _, r := range exportRecords(s.List()) {
		card := root.CreateElement("card")
		card.CreateElement("storeName").SetText(r.StoreName)
		card.CreateElement("cardNumber").SetText(r.CardNumber)
		card.CreateElement("barcodeFormat").SetText(string(r.BarcodeFormat))
		card.CreateElement("isFavorite").SetText(strconv.FormatBool(r.IsFavorite))
	}
	doc.Indent(2)
	data, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}
	return data, nil
}

// ImportXML parses an XML export document with the same semantics as
// ImportJSON: per-record skipping for missing fields, wholesale
// ErrInvalidFormat when the document has no <cards> sequence.
func (s *Store) ImportXML(ctx context.Context, data []byte) (int, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	root := doc.SelectElement("cards")
	if root == nil {
		return 0, fmt.Errorf("%w: missing cards element", ErrInvalidFormat)
	}

	count := 0
	for _, el := range root.SelectElements("card") {
		rec := models.ExportRecord{
			StoreName:     childText(el, "storeName"),
			CardNumber:    childText(el, "cardNumber"),
			BarcodeFormat: barcode.Format(childText(el, "barcodeFormat")),
		}
		if fav := childText(el, "isFavorite"); fav != "" {
			rec.IsFavorite, _ = strconv.ParseBool(fav)
		}
		imported, err := s.importRecord(ctx, rec)
		if err != nil {
			return count, err
		}
		if imported {
			count++
		}
	}
	s.log.Infof("Imported %d cards", count)
	return count, nil
}

func childText(el *etree.Element, name string) string {
	child := el.SelectElement(name)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}

// importRecord re-creates one export record. Records missing required
// fields report imported=false without an error; only persistence
// failures propagate.
func (s *Store) importRecord(ctx context.Context, rec models.ExportRecord) (bool, error) {
	if strings.TrimSpace(rec.StoreName) == "" || strings.TrimSpace(rec.CardNumber) == "" {
		return false, nil
	}
	card, err := s.Create(ctx, models.CreateCardInput{
		StoreName:     rec.StoreName,
		CardNumber:    rec.CardNumber,
		BarcodeFormat: rec.BarcodeFormat,
	})
	if err != nil {
		return false, err
	}
	if rec.IsFavorite {
		if _, err := s.ToggleFavorite(card.ID); err != nil {
			return true, err
		}
	}
	return true, nil
}
