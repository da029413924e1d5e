package db

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var createTableRe = regexp.MustCompile(`(?s)CREATE TABLE (\w+) \((.*?)\n\);`)

// parseSchema pulls table -> column names out of the embedded migration so
// column drift between the DDL and the repositories is caught without a
// database.
func parseSchema(t *testing.T) map[string]map[string]bool {
	t.Helper()

	raw, err := migrationFiles.ReadFile("migrations/0001_init.up.sql")
	require.NoError(t, err)

	tables := map[string]map[string]bool{}
	for _, m := range createTableRe.FindAllStringSubmatch(string(raw), -1) {
		cols := map[string]bool{}
		for _, line := range strings.Split(m[2], "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			first := strings.Fields(line)[0]
			// Constraint lines (CHECK, PRIMARY KEY) start with keywords;
			// column names are lowercase identifiers.
			if first != strings.ToLower(first) {
				continue
			}
			cols[first] = true
		}
		tables[m[1]] = cols
	}
	return tables
}

func TestSchemaCoversRepositoryColumns(t *testing.T) {
	// Every column the pgx repositories select, insert, or update must exist
	// in the migrated schema.
	required := map[string][]string{
		"users": {
			"id", "username", "full_name", "role", "permissions",
			"password_hash", "created_at",
		},
		"rooms": {
			"id", "room_number", "room_type", "capacity", "price_per_night",
			"description", "cleaning", "created_at",
		},
		"guests": {
			"id", "full_name", "phone", "id_type", "id_number", "passport_id",
			"birth_date", "nation", "region", "street", "created_at",
		},
		"bookings": {
			"id", "room_id", "check_in_date", "check_out_date", "status",
			"total_price", "checked_in_at", "checked_out_at", "created_at",
		},
		"booking_guests": {"booking_id", "guest_id"},
		"expenses": {
			"id", "title", "category", "amount", "expense_date",
			"description", "created_at",
		},
		"room_transfers": {
			"id", "booking_id", "from_room_id", "to_room_id", "new_booking_id",
			"state", "detail", "created_at", "updated_at",
		},
		"guest_documents": {"id", "guest_id", "file_path", "thumb_path", "created_at"},
	}

	schema := parseSchema(t)
	for table, columns := range required {
		t.Run(table, func(t *testing.T) {
			got, ok := schema[table]
			require.True(t, ok, "table %s missing from migration", table)
			for _, col := range columns {
				assert.True(t, got[col], "table %s is missing column %q", table, col)
			}
		})
	}
}
