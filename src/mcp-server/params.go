// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"regexp"
	"strings"

	"github.com/CKE-Proto/solve-it-mcp/src/internal/toolerr"
)

// entityIDPattern accepts the classic T1001 form as well as prefixed forms
// such as DFT-1001. Anything else is rejected before a lookup happens.
var entityIDPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]{0,63}$`)

func validateEntityID(field, id string) error {
	switch {
	case strings.TrimSpace(id) == "":
		return toolerr.Invalid(field, "must not be empty")
	case !entityIDPattern.MatchString(id):
		return toolerr.Invalid(field, "%q is not a valid knowledge base ID", id)
	}
	return nil
}

// noParams is used by tools that take no arguments.
type noParams struct{}

func (noParams) Validate() error { return nil }

type searchParams struct {
	Keywords  string   `json:"keywords"`
	ItemTypes []string `json:"item_types,omitempty"`
}

func (p searchParams) Validate() error {
	if strings.TrimSpace(p.Keywords) == "" {
		return toolerr.Invalid("keywords", "must not be empty")
	}
	return nil
}

type techniqueParams struct {
	TechniqueID string `json:"technique_id"`
}

func (p techniqueParams) Validate() error { return validateEntityID("technique_id", p.TechniqueID) }

type weaknessParams struct {
	WeaknessID string `json:"weakness_id"`
}

func (p weaknessParams) Validate() error { return validateEntityID("weakness_id", p.WeaknessID) }

type mitigationParams struct {
	MitigationID string `json:"mitigation_id"`
}

func (p mitigationParams) Validate() error { return validateEntityID("mitigation_id", p.MitigationID) }

type objectiveParams struct {
	ObjectiveName string `json:"objective_name"`
}

func (p objectiveParams) Validate() error {
	if strings.TrimSpace(p.ObjectiveName) == "" {
		return toolerr.Invalid("objective_name", "must not be empty")
	}
	return nil
}

// mappingParams only checks presence; the knowledge base decides whether the
// file is loadable and reports that as a mapping load error.
type mappingParams struct {
	Filename string `json:"filename"`
}

func (p mappingParams) Validate() error {
	if strings.TrimSpace(p.Filename) == "" {
		return toolerr.Invalid("filename", "must not be empty")
	}
	return nil
}
