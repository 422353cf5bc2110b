package verb

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/konjug-backend/internal/domain"
)

// Create validates and stores a new verb document.
// Returns ErrAlreadyExists if the identity, display name or url is taken.
func (s *Service) Create(ctx context.Context, v domain.Verb) (*domain.Verb, error) {
	normalizeVerb(&v)
	if err := validateVerb(&v); err != nil {
		return nil, err
	}

	created, err := s.verbs.Create(ctx, &v)
	if err != nil {
		return nil, fmt.Errorf("verb.Create: %w", err)
	}

	s.invalidate(ctx, "create")
	s.log.InfoContext(ctx, "verb created", slog.String("verb_id", created.ID))
	return created, nil
}

// Patch merges patch onto the stored document with identity id and saves it.
// Objects merge key by key, any other value replaces what is stored. The
// identity cannot be changed.
func (s *Service) Patch(ctx context.Context, id string, patch json.RawMessage) (*domain.Verb, error) {
	id = domain.NormalizeVerbID(id)
	if id == "" {
		return nil, domain.NewValidationError("verbId", "required")
	}

	var changes map[string]any
	if err := json.Unmarshal(patch, &changes); err != nil || changes == nil {
		return nil, domain.NewValidationError("body", "must be a JSON object")
	}
	if rawID, ok := changes["_id"]; ok {
		if sid, isStr := rawID.(string); !isStr || domain.NormalizeVerbID(sid) != id {
			return nil, domain.NewValidationError("_id", "cannot be changed")
		}
		delete(changes, "_id")
	}
	if err := validatePatchNulls(changes); err != nil {
		return nil, err
	}

	var updated *domain.Verb
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.verbs.GetForUpdate(txCtx, id)
		if err != nil {
			return err
		}

		merged, err := applyPatch(current, changes)
		if err != nil {
			return err
		}
		merged.ID = id

		normalizeVerb(merged)
		if err := validateVerb(merged); err != nil {
			return err
		}

		updated, err = s.verbs.Update(txCtx, merged)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("verb.Patch: %w", err)
	}

	s.invalidate(ctx, "patch")
	s.log.InfoContext(ctx, "verb updated", slog.String("verb_id", id))
	return updated, nil
}

// Delete removes the verb with the given identity and returns it.
func (s *Service) Delete(ctx context.Context, id string) (*domain.Verb, error) {
	id = domain.NormalizeVerbID(id)
	if id == "" {
		return nil, domain.NewValidationError("verbId", "required")
	}

	deleted, err := s.verbs.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("verb.Delete: %w", err)
	}

	s.invalidate(ctx, "delete")
	s.log.InfoContext(ctx, "verb deleted", slog.String("verb_id", id))
	return deleted, nil
}

// SetDescription sets one language of a verb's descriptions.
func (s *Service) SetDescription(ctx context.Context, input DescriptionInput) (*domain.Verb, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	v, err := s.verbs.SetDescription(ctx, input.Verb, input.Language, input.Text)
	if err != nil {
		return nil, fmt.Errorf("verb.SetDescription: %w", err)
	}

	s.log.InfoContext(ctx, "verb description set",
		slog.String("verb_id", v.ID),
		slog.String("lang", string(input.Language)),
	)
	return v, nil
}
