// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package knowledgebase

import (
	"os"
	"path/filepath"

	"github.com/CKE-Proto/solve-it-mcp/src/internal/toolerr"
	"github.com/CKE-Proto/solve-it-mcp/src/logger"
)

// Entity directory names under the data root.
const (
	TechniquesDir  = "techniques"
	WeaknessesDir  = "weaknesses"
	MitigationsDir = "mitigations"
)

// DefaultMapping is the objective mapping activated at startup.
const DefaultMapping = "solve-it.json"

// PathCandidates lists the data root candidates in resolution order.
//
// An explicit override comes first, then locations next to the executable,
// then locations under the working directory. Empty inputs are skipped.
func PathCandidates(override, exeDir, workDir string) []string {
	var candidates []string
	if override != "" {
		candidates = append(candidates, override)
	}
	if exeDir != "" {
		candidates = append(candidates,
			filepath.Join(exeDir, "solve-it-main", "data"),
			filepath.Join(exeDir, "..", "solve-it-main", "data"),
		)
	}
	if workDir != "" {
		candidates = append(candidates,
			filepath.Join(workDir, "solve-it-main", "data"),
			filepath.Join(workDir, "data"),
		)
	}
	return candidates
}

// ResolveDataPath returns the first candidate directory that exists, as an
// absolute path. A candidate whose data/ child contains the techniques
// directory is normalised to that child, so pointing at a SOLVE-IT checkout
// works as well as pointing at its data directory.
//
// When no candidate exists the error is a [toolerr.KindDataNotFound] naming
// the last path tried.
func ResolveDataPath(override, exeDir, workDir string, log logger.Logger) (string, error) {
	candidates := PathCandidates(override, exeDir, workDir)
	if len(candidates) == 0 {
		return "", toolerr.DataNotFound("", "SOLVE-IT data directory")
	}

	for i, candidate := range candidates {
		if !isDir(candidate) {
			if i == 0 && override != "" {
				log.Warn("data path override does not exist, trying defaults", "path", override)
			}
			continue
		}
		if nested := filepath.Join(candidate, "data"); isDir(filepath.Join(nested, TechniquesDir)) {
			candidate = nested
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			abs = filepath.Clean(candidate)
		}
		log.Debug("resolved data path", "path", abs)
		return abs, nil
	}

	return "", toolerr.DataNotFound(candidates[len(candidates)-1], "SOLVE-IT data directory")
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
