// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger_test

import (
	"io"
	"testing"

	"github.com/CKE-Proto/solve-it-mcp/src/logger"
)

func BenchmarkMCPLogger(b *testing.B) {
	log := logger.NewMCPLogger(io.Discard, false)
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			log.Info("tool invocation", "tool", "search", "duration_ms", 3)
		}
	})
}

func BenchmarkMCPLoggerSilent(b *testing.B) {
	log := logger.NewMCPLogger(io.Discard, true)
	b.ReportAllocs()
	for b.Loop() {
		log.Info("tool invocation", "tool", "search")
	}
}
