package repository

import (
	"fmt"
	"strings"
	"testing"
)

func TestScanHistorySchemaQualifiesTable(t *testing.T) {
	stmt := fmt.Sprintf(ScanHistorySchema, "commander")

	if !strings.Contains(stmt, "CREATE TABLE IF NOT EXISTS commander.scan_history") {
		t.Fatalf("schema does not create the qualified table: %s", stmt)
	}
	if strings.Contains(stmt, "%!") {
		t.Fatalf("schema has unconsumed format verbs: %s", stmt)
	}
	if n := strings.Count(ScanHistorySchema, "%s"); n != 1 {
		t.Errorf("schema should take exactly the database name, got %d verbs", n)
	}
}

func TestScanHistorySchemaColumnsMatchInserts(t *testing.T) {
	// Store and StoreBatch write these six columns in this order.
	for _, col := range []string{"ts ", "ticker ", "strategy ", "score ", "signal ", "missing_count "} {
		if !strings.Contains(ScanHistorySchema, col) {
			t.Errorf("schema missing column %q", strings.TrimSpace(col))
		}
	}
}
