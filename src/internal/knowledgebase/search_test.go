// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package knowledgebase_test

import (
	"testing"

	"github.com/CKE-Proto/solve-it-mcp/src/internal/knowledgebase"
	"github.com/CKE-Proto/solve-it-mcp/src/internal/toolerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matchIDs(matches []knowledgebase.Match) []string {
	ids := []string{}
	for _, m := range matches {
		ids = append(ids, m.ID)
	}
	return ids
}

func TestSearch(t *testing.T) {
	snap := openFixture(t).Current()

	tests := []struct {
		name      string
		keywords  string
		itemTypes []string
		want      []string
	}{
		{"unquoted is conjunctive", "log analysis", nil, []string{"T1001", "T1002", "W1002"}},
		{"double quoted phrase", `"log analysis"`, nil, []string{"T1001", "T1002"}},
		{"single quoted phrase", `'log analysis'`, nil, []string{"T1001", "T1002"}},
		{"case insensitive", "LOG", nil, []string{"T1001", "T1002", "W1002", "M1002"}},
		{"restricted types", "log", []string{"weaknesses", "mitigations"}, []string{"W1002", "M1002"}},
		{"singular type accepted", "log", []string{"Mitigation"}, []string{"M1002"}},
		{"no hits", "quantum", nil, []string{}},
		{"tokens may come from name and description", "imaging storage", nil, []string{"T1001"}},
		{"unbalanced quote is a token", `"log`, nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := snap.Search(tt.keywords, tt.itemTypes)
			require.NoError(t, err)
			assert.Equal(t, tt.want, matchIDs(got))
		})
	}
}

func TestSearchPhraseIsSubsetOfTokens(t *testing.T) {
	snap := openFixture(t).Current()

	quoted, err := snap.Search(`"log analysis"`, nil)
	require.NoError(t, err)
	unquoted, err := snap.Search("log analysis", nil)
	require.NoError(t, err)

	assert.Subset(t, matchIDs(unquoted), matchIDs(quoted))
	for _, m := range quoted {
		assert.NotEmpty(t, m.ItemType)
		assert.NotEmpty(t, m.Name)
	}
}

func TestSearchValidation(t *testing.T) {
	snap := openFixture(t).Current()

	tests := []struct {
		name      string
		keywords  string
		itemTypes []string
		contains  string
	}{
		{"empty", "", nil, "keywords"},
		{"whitespace", "  \t ", nil, "keywords"},
		{"empty phrase", `""`, nil, "quoted phrase"},
		{"unknown type", "log", []string{"techniques", "tactics"}, `"tactics"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := snap.Search(tt.keywords, tt.itemTypes)
			require.Error(t, err)
			assert.Equal(t, toolerr.KindValidation, toolerr.KindOf(err))
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}
