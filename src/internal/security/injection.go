// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package security

import (
	"context"

	"github.com/mdombrov-33/go-promptguard/detector"
)

// promptGuard runs pattern and statistical detectors only; no LLM judge is
// configured, so a check stays well under a millisecond.
var promptGuard = detector.New(
	detector.WithThreshold(0.7),
	detector.WithAllDetectors(),
	detector.WithMaxInputLength(4096),
)

// DetectInjection reports whether text looks like a prompt injection attempt.
func DetectInjection(ctx context.Context, text string) bool {
	if len(text) == 0 {
		return false
	}
	return !promptGuard.Detect(ctx, text).Safe
}
