package verb

import (
	"encoding/json"
	"fmt"

	"github.com/heartmarshall/konjug-backend/internal/domain"
)

// applyPatch returns current with changes merged onto its JSON form.
// A JSON null in changes clears the field.
func applyPatch(current *domain.Verb, changes map[string]any) (*domain.Verb, error) {
	raw, err := json.Marshal(current)
	if err != nil {
		return nil, fmt.Errorf("marshal stored verb: %w", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal stored verb: %w", err)
	}

	mergeInto(doc, changes)

	raw, err = json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal merged verb: %w", err)
	}

	var merged domain.Verb
	if err := json.Unmarshal(raw, &merged); err != nil {
		return nil, domain.NewValidationError("body", err.Error())
	}
	merged.CreatedAt = current.CreatedAt
	return &merged, nil
}

// mergeInto merges src into dst recursively. Nested objects merge key by key;
// arrays and scalars replace.
func mergeInto(dst, src map[string]any) {
	for k, sv := range src {
		if sv == nil {
			delete(dst, k)
			continue
		}
		srcObj, srcIsObj := sv.(map[string]any)
		dstObj, dstIsObj := dst[k].(map[string]any)
		if srcIsObj && dstIsObj {
			mergeInto(dstObj, srcObj)
			continue
		}
		dst[k] = sv
	}
}
