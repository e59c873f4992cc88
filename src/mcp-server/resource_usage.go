// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/CKE-Proto/solve-it-mcp/src/internal/helper/markdown"
	"github.com/CKE-Proto/solve-it-mcp/src/internal/knowledgebase"
	"github.com/CKE-Proto/solve-it-mcp/src/internal/security"
)

// ResourceUsageData represents the server status report: process resources,
// shared limiter state and the published knowledge base snapshot.
type ResourceUsageData struct {
	Timestamp     string                   `json:"timestamp"`
	SystemInfo    map[string]any           `json:"system_info"`
	MemoryUsage   map[string]any           `json:"memory_usage"`
	Limits        security.Usage           `json:"limits"`
	KnowledgeBase knowledgebase.Statistics `json:"knowledge_base"`
}

// CollectResourceUsage gathers current resource usage statistics.
//
// Parameters:
//   - gateway: The shared gateway whose limiter state is reported
//   - snap: The currently published snapshot
func CollectResourceUsage(gateway *security.Gateway, snap *knowledgebase.Snapshot) *ResourceUsageData {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return &ResourceUsageData{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		SystemInfo: map[string]any{
			"go_version":    runtime.Version(),
			"go_os":         runtime.GOOS,
			"go_arch":       runtime.GOARCH,
			"num_cpu":       runtime.NumCPU(),
			"num_goroutine": runtime.NumGoroutine(),
		},
		MemoryUsage: map[string]any{
			"heap_alloc_mb": float64(memStats.HeapAlloc) / (1024 * 1024),
			"heap_sys_mb":   float64(memStats.HeapSys) / (1024 * 1024),
			"heap_objects":  memStats.HeapObjects,
			"num_gc":        memStats.NumGC,
		},
		Limits:        gateway.Usage(),
		KnowledgeBase: snap.Stats(),
	}
}

// FormatResourceUsageAsMarkdown formats the report as markdown tables.
func FormatResourceUsageAsMarkdown(data *ResourceUsageData) (string, error) {
	var buf strings.Builder
	buf.WriteString("# Server Status Report\n\n")
	fmt.Fprintf(&buf, "Generated: %s\n\n", data.Timestamp)

	sections := []struct {
		title string
		rows  [][]string
	}{
		{"System", metricRows(data.SystemInfo, []string{
			"Go Version", "go_version",
			"OS", "go_os",
			"Architecture", "go_arch",
			"CPUs", "num_cpu",
			"Goroutines", "num_goroutine",
		})},
		{"Memory", metricRows(data.MemoryUsage, []string{
			"Heap Allocated", "heap_alloc_mb",
			"Heap System", "heap_sys_mb",
			"Heap Objects", "heap_objects",
			"GC Cycles", "num_gc",
		})},
		{"Limits", [][]string{
			{"Calls In Window", fmt.Sprintf("%d / %d", data.Limits.Calls, data.Limits.CallLimit)},
			{"Output Bytes In Window", fmt.Sprintf("%d / %d", data.Limits.OutputBytes, data.Limits.OutputByteLimit)},
		}},
		{"Knowledge Base", [][]string{
			{"Techniques", strconv.Itoa(data.KnowledgeBase.Techniques)},
			{"Weaknesses", strconv.Itoa(data.KnowledgeBase.Weaknesses)},
			{"Mitigations", strconv.Itoa(data.KnowledgeBase.Mitigations)},
			{"Objectives", strconv.Itoa(data.KnowledgeBase.Objectives)},
			{"Current Mapping", data.KnowledgeBase.CurrentMapping},
			{"Loaded At", data.KnowledgeBase.LoadedAt},
			{"Anomalies", strconv.Itoa(knowledgebase.AnomalyTotal(data.KnowledgeBase.Anomalies))},
		}},
	}

	for _, section := range sections {
		fmt.Fprintf(&buf, "## %s\n\n", section.title)
		if err := markdown.WriteTable(&buf, []string{"Metric", "Value"}, section.rows); err != nil {
			return "", err
		}
		buf.WriteString("\n")
	}
	return buf.String(), nil
}

// metricRows builds label/value rows from data. fieldPairs alternates display
// label and map key; missing keys are skipped.
func metricRows(data map[string]any, fieldPairs []string) [][]string {
	var rows [][]string
	for i := 0; i+1 < len(fieldPairs); i += 2 {
		label, key := fieldPairs[i], fieldPairs[i+1]
		if value, ok := data[key]; ok {
			rows = append(rows, []string{label, formatValueForMarkdown(value, key)})
		}
	}
	return rows
}

// formatValueForMarkdown formats a value for markdown display
func formatValueForMarkdown(value any, key string) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		if strings.HasSuffix(key, "_mb") {
			return fmt.Sprintf("%.2f MB", v)
		}
		return fmt.Sprintf("%.2f", v)
	default:
		return fmt.Sprint(v)
	}
}
