// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package knowledgebase

// Entity type names used in errors, anomalies and search results.
const (
	EntityTechnique  = "technique"
	EntityWeakness   = "weakness"
	EntityMitigation = "mitigation"
	EntityObjective  = "objective"
)

// Technique is a documented investigative method.
//
// Weaknesses is read from disk in declaration order with dangling references
// removed. Objective is filled in from the active mapping when the record is
// returned from a [Snapshot].
type Technique struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Objective         string   `json:"objective,omitempty"`
	Synonyms          []string `json:"synonyms,omitempty"`
	Details           string   `json:"details,omitempty"`
	Subtechniques     []string `json:"subtechniques,omitempty"`
	Examples          []string `json:"examples,omitempty"`
	Weaknesses        []string `json:"weaknesses"`
	CASEInputClasses  []string `json:"CASE_input_classes,omitempty"`
	CASEOutputClasses []string `json:"CASE_output_classes,omitempty"`
	References        []string `json:"references,omitempty"`
}

// Weakness is a documented limitation of one or more techniques.
//
// The error category fields hold the SOLVE-IT classification markers exactly as
// they appear in the source data; a non-empty value means the weakness belongs
// to that category.
type Weakness struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Incomplete  string   `json:"INCOMP,omitempty"`
	InaccEx     string   `json:"INAC-EX,omitempty"`
	InaccAs     string   `json:"INAC-AS,omitempty"`
	InaccAlt    string   `json:"INAC-ALT,omitempty"`
	InaccCor    string   `json:"INAC-COR,omitempty"`
	Misinterp   string   `json:"MISINT,omitempty"`
	Mitigations []string `json:"mitigations"`
	Techniques  []string `json:"techniques"`
	References  []string `json:"references,omitempty"`
}

// Mitigation is a documented remedy for one or more weaknesses.
type Mitigation struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Technique   string   `json:"technique,omitempty"`
	Weaknesses  []string `json:"weaknesses"`
	References  []string `json:"references,omitempty"`
}

// Brief is the id and name pair returned by the bulk listing operations.
type Brief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Objective is a named grouping of techniques owned by an [ObjectiveMapping].
type Objective struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Techniques  []string `json:"techniques"`
}

// ObjectiveSummary is one row of the objective listing.
type ObjectiveSummary struct {
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	TechniqueCount int    `json:"technique_count"`
}

// Match is a single search hit.
type Match struct {
	ItemType    string `json:"item_type"`
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Counts summarises the size of a snapshot.
type Counts struct {
	Techniques  int `json:"techniques"`
	Weaknesses  int `json:"weaknesses"`
	Mitigations int `json:"mitigations"`
	Objectives  int `json:"objectives"`
}

func cloneStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
