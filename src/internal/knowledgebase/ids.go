// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package knowledgebase

import (
	"slices"
	"strconv"
	"strings"
)

// splitID separates an entity ID into its non-numeric prefix and trailing
// number, e.g. "DFT-1002" becomes ("DFT-", 1002, true).
func splitID(id string) (string, int, bool) {
	i := len(id)
	for i > 0 && id[i-1] >= '0' && id[i-1] <= '9' {
		i--
	}
	if i == len(id) {
		return id, 0, false
	}
	n, err := strconv.Atoi(id[i:])
	if err != nil {
		return id, 0, false
	}
	return id[:i], n, true
}

// CompareIDs orders entity IDs naturally: by prefix, then by numeric suffix,
// so that T2 sorts before T10. IDs without a numeric suffix sort after those
// with one under the same prefix.
func CompareIDs(a, b string) int {
	pa, na, oka := splitID(a)
	pb, nb, okb := splitID(b)
	if c := strings.Compare(pa, pb); c != 0 {
		return c
	}
	switch {
	case oka && okb:
		if na != nb {
			if na < nb {
				return -1
			}
			return 1
		}
	case oka:
		return -1
	case okb:
		return 1
	}
	return strings.Compare(a, b)
}

// SortIDs sorts ids in place in natural order.
func SortIDs(ids []string) { slices.SortFunc(ids, CompareIDs) }
