// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package toolerr defines the tagged error kinds shared by the knowledge base,
// the security gateway and the MCP tool dispatcher.
//
// Every error that can cross the dispatcher boundary is a [*Error] carrying a
// [Kind] and a caller-safe message. Internal details travel in the Cause field,
// which is logged but never rendered into a tool result.
//
// Example:
//
//	if _, err := snap.Technique("T9999"); err != nil {
//	    if toolerr.Is(err, toolerr.KindNotFound) {
//	        // surface as "not found" to the caller
//	    }
//	}
package toolerr
