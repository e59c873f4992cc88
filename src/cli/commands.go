// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/CKE-Proto/solve-it-mcp/src/internal/helper/markdown"
	"github.com/CKE-Proto/solve-it-mcp/src/internal/knowledgebase"
	"github.com/CKE-Proto/solve-it-mcp/src/internal/toolerr"
	"github.com/spf13/cobra"
)

func newDescribeCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "Describe the knowledge base and its statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kb, err := opts.open()
			if err != nil {
				return err
			}
			desc := knowledgebase.Describe(kb.Current())

			return opts.print(cmd.OutOrStdout(), desc, func(w io.Writer) error {
				if _, err := fmt.Fprintf(w, "## %s\n\n%s\n\n", desc.DatabaseName, desc.Description); err != nil {
					return err
				}
				stats := desc.Statistics
				rows := [][]string{
					{"Techniques", strconv.Itoa(stats.Techniques)},
					{"Weaknesses", strconv.Itoa(stats.Weaknesses)},
					{"Mitigations", strconv.Itoa(stats.Mitigations)},
					{"Objectives", strconv.Itoa(stats.Objectives)},
					{"Current mapping", stats.CurrentMapping},
					{"Data path", stats.DataPath},
					{"Loaded at", stats.LoadedAt},
					{"Anomalies", strconv.Itoa(knowledgebase.AnomalyTotal(stats.Anomalies))},
				}
				return markdown.WriteTable(w, []string{"Item", "Value"}, rows)
			})
		},
	}
}

func newSearchCommand(opts *options) *cobra.Command {
	var itemTypes []string

	cmd := &cobra.Command{
		Use:   "search KEYWORDS...",
		Short: "Search techniques, weaknesses and mitigations",
		Long: `Search matches every keyword, case-insensitively, against names and
descriptions. Wrap a phrase in double quotes to match it as a whole.`,
		Example: `  solve-it search disk imaging
  solve-it search '"log rotation"' --type weaknesses`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kb, err := opts.open()
			if err != nil {
				return err
			}
			matches, err := kb.Current().Search(strings.Join(args, " "), itemTypes)
			if err != nil {
				return err
			}

			return opts.print(cmd.OutOrStdout(), matches, func(w io.Writer) error {
				if len(matches) == 0 {
					_, err := fmt.Fprintln(w, "No matches.")
					return err
				}
				rows := make([][]string, 0, len(matches))
				for _, m := range matches {
					rows = append(rows, []string{m.ItemType, m.ID, m.Name})
				}
				return markdown.WriteTable(w, []string{"Type", "ID", "Name"}, rows)
			})
		},
	}
	cmd.Flags().StringSliceVarP(&itemTypes, "type", "t", nil, "restrict to techniques, weaknesses or mitigations (repeatable)")
	return cmd
}

func newShowCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a technique, weakness or mitigation with its relationships",
		Example: `  solve-it show T1002
  solve-it show W1001 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kb, err := opts.open()
			if err != nil {
				return err
			}
			snap := kb.Current()
			id := strings.TrimSpace(args[0])
			w := cmd.OutOrStdout()

			switch {
			case strings.HasPrefix(id, "T"):
				return opts.showTechnique(w, snap, id)
			case strings.HasPrefix(id, "W"):
				return opts.showWeakness(w, snap, id)
			case strings.HasPrefix(id, "M"):
				return opts.showMitigation(w, snap, id)
			default:
				return toolerr.Invalid("id", "must start with T, W or M, got %q", id)
			}
		},
	}
}

// entityDetail is the JSON form of show: the record plus its resolved neighbours.
type entityDetail struct {
	Record      any                        `json:"record"`
	Techniques  []knowledgebase.Technique  `json:"techniques,omitempty"`
	Weaknesses  []knowledgebase.Weakness   `json:"weaknesses,omitempty"`
	Mitigations []knowledgebase.Mitigation `json:"mitigations,omitempty"`
}

func (o *options) showTechnique(w io.Writer, snap *knowledgebase.Snapshot, id string) error {
	t, err := snap.Technique(id)
	if err != nil {
		return err
	}
	weaknesses, err := snap.WeaknessesForTechnique(id)
	if err != nil {
		return err
	}

	detail := entityDetail{Record: t, Weaknesses: weaknesses}
	return o.print(w, detail, func(w io.Writer) error {
		if err := writeFields(w, t.ID, t.Name, [][]string{
			{"Objective", t.Objective},
			{"Description", t.Description},
			{"Synonyms", strings.Join(t.Synonyms, ", ")},
			{"Details", t.Details},
		}); err != nil {
			return err
		}
		return section(w, "Weaknesses", []string{"ID", "Name"}, weaknessRows(weaknesses))
	})
}

func (o *options) showWeakness(w io.Writer, snap *knowledgebase.Snapshot, id string) error {
	wk, err := snap.Weakness(id)
	if err != nil {
		return err
	}
	mitigations, err := snap.MitigationsForWeakness(id)
	if err != nil {
		return err
	}
	techniques, err := snap.TechniquesForWeakness(id)
	if err != nil {
		return err
	}

	detail := entityDetail{Record: wk, Techniques: techniques, Mitigations: mitigations}
	return o.print(w, detail, func(w io.Writer) error {
		if err := writeFields(w, wk.ID, wk.Name, [][]string{
			{"Description", wk.Description},
			{"Error categories", strings.Join(errorCategories(wk), ", ")},
		}); err != nil {
			return err
		}
		if err := section(w, "Mitigations", []string{"ID", "Name"}, mitigationRows(mitigations)); err != nil {
			return err
		}
		return section(w, "Techniques", []string{"ID", "Name"}, techniqueRows(techniques))
	})
}

func (o *options) showMitigation(w io.Writer, snap *knowledgebase.Snapshot, id string) error {
	m, err := snap.Mitigation(id)
	if err != nil {
		return err
	}
	weaknesses, err := snap.WeaknessesForMitigation(id)
	if err != nil {
		return err
	}
	techniques, err := snap.TechniquesForMitigation(id)
	if err != nil {
		return err
	}

	detail := entityDetail{Record: m, Techniques: techniques, Weaknesses: weaknesses}
	return o.print(w, detail, func(w io.Writer) error {
		if err := writeFields(w, m.ID, m.Name, [][]string{
			{"Description", m.Description},
			{"Technique", m.Technique},
		}); err != nil {
			return err
		}
		if err := section(w, "Weaknesses", []string{"ID", "Name"}, weaknessRows(weaknesses)); err != nil {
			return err
		}
		return section(w, "Techniques", []string{"ID", "Name"}, techniqueRows(techniques))
	})
}

// writeFields prints the entity heading and a field table, skipping empty values.
func writeFields(w io.Writer, id, name string, fields [][]string) error {
	if _, err := fmt.Fprintf(w, "## %s: %s\n\n", id, name); err != nil {
		return err
	}
	rows := slices.DeleteFunc(fields, func(f []string) bool { return f[1] == "" })
	return markdown.WriteTable(w, []string{"Field", "Value"}, rows)
}

// errorCategories lists the SOLVE-IT error categories flagged on a weakness.
func errorCategories(w knowledgebase.Weakness) []string {
	var out []string
	for _, c := range []struct{ name, value string }{
		{"INCOMP", w.Incomplete},
		{"INAC-EX", w.InaccEx},
		{"INAC-AS", w.InaccAs},
		{"INAC-ALT", w.InaccAlt},
		{"INAC-COR", w.InaccCor},
		{"MISINT", w.Misinterp},
	} {
		if strings.TrimSpace(c.value) != "" {
			out = append(out, c.name)
		}
	}
	return out
}

func techniqueRows(ts []knowledgebase.Technique) [][]string {
	rows := make([][]string, 0, len(ts))
	for _, t := range ts {
		rows = append(rows, []string{t.ID, t.Name})
	}
	return rows
}

func weaknessRows(ws []knowledgebase.Weakness) [][]string {
	rows := make([][]string, 0, len(ws))
	for _, w := range ws {
		rows = append(rows, []string{w.ID, w.Name})
	}
	return rows
}

func mitigationRows(ms []knowledgebase.Mitigation) [][]string {
	rows := make([][]string, 0, len(ms))
	for _, m := range ms {
		rows = append(rows, []string{m.ID, m.Name})
	}
	return rows
}

func newObjectivesCommand(opts *options) *cobra.Command {
	var mapping string

	cmd := &cobra.Command{
		Use:   "objectives [NAME]",
		Short: "List objectives, or the techniques of one objective",
		Example: `  solve-it objectives
  solve-it objectives "Acquire data"
  solve-it objectives --mapping carrier.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kb, err := opts.open()
			if err != nil {
				return err
			}
			snap := kb.Current()
			if mapping != "" {
				if snap, err = kb.LoadObjectiveMapping(mapping); err != nil {
					return err
				}
			}

			w := cmd.OutOrStdout()
			if len(args) == 1 {
				techniques, err := snap.TechniquesForObjective(args[0])
				if err != nil {
					return err
				}
				return opts.print(w, techniques, func(w io.Writer) error {
					return section(w, args[0], []string{"ID", "Name"}, techniqueRows(techniques))
				})
			}

			objectives := snap.Objectives()
			return opts.print(w, objectives, func(w io.Writer) error {
				rows := make([][]string, 0, len(objectives))
				for _, obj := range objectives {
					rows = append(rows, []string{obj.Name, strconv.Itoa(obj.TechniqueCount), obj.Description})
				}
				if _, err := fmt.Fprintf(w, "Mapping: %s\n\n", snap.MappingName()); err != nil {
					return err
				}
				return markdown.WriteTable(w, []string{"Objective", "Techniques", "Description"}, rows)
			})
		},
	}
	cmd.Flags().StringVarP(&mapping, "mapping", "m", "", "objective mapping file to use instead of the default")
	return cmd
}

// mappingList is the JSON form of the mappings command.
type mappingList struct {
	CurrentMapping string   `json:"current_mapping"`
	Mappings       []string `json:"mappings"`
}

func newMappingsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "mappings",
		Short: "List the objective mapping files in the data directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kb, err := opts.open()
			if err != nil {
				return err
			}
			names, err := kb.ListAvailableMappings()
			if err != nil {
				return err
			}
			list := mappingList{CurrentMapping: kb.Current().MappingName(), Mappings: names}

			return opts.print(cmd.OutOrStdout(), list, func(w io.Writer) error {
				rows := make([][]string, 0, len(names))
				for _, name := range names {
					active := ""
					if name == list.CurrentMapping {
						active = "yes"
					}
					rows = append(rows, []string{name, active})
				}
				return markdown.WriteTable(w, []string{"Mapping", "Active"}, rows)
			})
		},
	}
}

func newAnomaliesCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "anomalies",
		Short: "Report dangling references dropped while loading",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kb, err := opts.open()
			if err != nil {
				return err
			}
			report := kb.Current().Anomalies()
			if report == nil {
				report = []knowledgebase.Anomaly{}
			}

			return opts.print(cmd.OutOrStdout(), report, func(w io.Writer) error {
				if len(report) == 0 {
					_, err := fmt.Fprintln(w, "No anomalies.")
					return err
				}
				rows := make([][]string, 0, len(report))
				for _, a := range report {
					rows = append(rows, []string{string(a.Kind), a.Source, a.Reference, a.Detail})
				}
				return markdown.WriteTable(w, []string{"Kind", "Source", "Reference", "Detail"}, rows)
			})
		},
	}
}
