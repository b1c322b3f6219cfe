package google

import (
	"fmt"
	"strings"

	ports "household/internal/sheets"
)

// findRowByID returns the 1-based sheet row whose ID column equals id,
// or -1 when absent. The header row never matches.
func findRowByID(values [][]interface{}, id string) int {
	id = strings.TrimSpace(id)
	if id == "" {
		return -1
	}
	for i, row := range values {
		if i == 0 && isHeader(row) {
			continue
		}
		if strings.TrimSpace(safeGet(toStrings(row), ports.IDColumn)) == id {
			return i + 1
		}
	}
	return -1
}

// rowIDs collects the non-empty ID column of every data row.
func rowIDs(values [][]interface{}) []string {
	ids := make([]string, 0, len(values))
	for i, row := range values {
		if i == 0 && isHeader(row) {
			continue
		}
		if id := safeGet(toStrings(row), ports.IDColumn); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func isHeader(row []interface{}) bool {
	cols := toStrings(row)
	return strings.EqualFold(safeGet(cols, 0), ports.Header[0]) &&
		strings.EqualFold(safeGet(cols, ports.IDColumn), ports.Header[ports.IDColumn])
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func toInterfaces(in []string) []interface{} {
	out := make([]interface{}, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}

func safeGet(arr []string, idx int) string {
	if idx < 0 || idx >= len(arr) {
		return ""
	}
	return arr[idx]
}
