// Package domain defines typed identifiers and small shared value types.
//
// IDs are distinct string types so the compiler rejects cross-entity
// assignment (a LocationID can never be passed where a ZoneID is expected).
// Catalog ids are human-assigned keys ("zone_high", "loc_h_1"); generated
// entity ids are UUIDs produced by the services.
package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "evsops/pkg/domain-errors"
)

type (
	UserID      string
	ZoneID      string
	LocationID  string
	FormID      string
	ItemID      string
	ReportID    string
	CDRID       string
	InvoiceID   string
	StatementID string
	TaskID      string
)

// NewUserID and friends mint fresh ids for service-created entities.
func NewUserID() UserID           { return UserID(uuid.NewString()) }
func NewReportID() ReportID       { return ReportID(uuid.NewString()) }
func NewCDRID() CDRID             { return CDRID(uuid.NewString()) }
func NewInvoiceID() InvoiceID     { return InvoiceID(uuid.NewString()) }
func NewStatementID() StatementID { return StatementID(uuid.NewString()) }
func NewTaskID() TaskID           { return TaskID(uuid.NewString()) }

func parseID(raw, what string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, what+" id is required")
	}
	return raw, nil
}

// Parse helpers validate ids arriving at trust boundaries. They reject empty
// values only; existence checks belong to the catalog and the stores.
func ParseUserID(raw string) (UserID, error) {
	s, err := parseID(raw, "user")
	return UserID(s), err
}

func ParseZoneID(raw string) (ZoneID, error) {
	s, err := parseID(raw, "zone")
	return ZoneID(s), err
}

func ParseLocationID(raw string) (LocationID, error) {
	s, err := parseID(raw, "location")
	return LocationID(s), err
}

func ParseReportID(raw string) (ReportID, error) {
	s, err := parseID(raw, "report")
	return ReportID(s), err
}

func ParseCDRID(raw string) (CDRID, error) {
	s, err := parseID(raw, "cdr")
	return CDRID(s), err
}

func ParseInvoiceID(raw string) (InvoiceID, error) {
	s, err := parseID(raw, "invoice")
	return InvoiceID(s), err
}

func ParseStatementID(raw string) (StatementID, error) {
	s, err := parseID(raw, "statement")
	return StatementID(s), err
}

func ParseTaskID(raw string) (TaskID, error) {
	s, err := parseID(raw, "task")
	return TaskID(s), err
}
