// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package knowledgebase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortIDs(t *testing.T) {
	ids := []string{"T10", "W1", "T2", "DFT-1002", "T", "DFT-1001", "T1001"}
	SortIDs(ids)
	assert.Equal(t, []string{"DFT-1001", "DFT-1002", "T2", "T10", "T1001", "T", "W1"}, ids)
}

func TestCompareIDs(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"T1001", "T1001", 0},
		{"T9", "T10", -1},
		{"M1001", "T1001", -1},
		{"W2", "W1", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CompareIDs(tt.a, tt.b), "%s vs %s", tt.a, tt.b)
	}
}
