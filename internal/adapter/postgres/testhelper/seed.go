package testhelper

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/konjug-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// VerbFixture returns a minimal valid verb document. When name is empty a unique
// name is generated. The fixture carries one present-tense and one participle entry.
func VerbFixture(name, level string) domain.Verb {
	if name == "" {
		name = "testverb-" + uniqueSuffix()
	}
	return domain.Verb{
		ID:   domain.NormalizeVerbID(name),
		URL:  "/verb/" + name,
		Verb: name,
		Data: domain.VerbData{
			Properties: domain.Properties{
				Level:        level,
				VerbHTML:     "<b>" + name + "</b>",
				Auxiliary:    "haben",
				Translations: domain.Translations{EN: "to " + name},
			},
			Tenses: domain.Tenses{
				domain.MoodIndicative: {
					domain.TensePrasens: {{Person: "ich", Conjugation: name, ConjugationHTML: name}},
				},
				domain.MoodInfinitive: {
					domain.TensePartizipII: {{Conjugation: "ge" + name, ConjugationHTML: "ge" + name}},
				},
			},
		},
	}
}

// SeinFixture returns the verb "sein" with a single indicative präsens entry.
func SeinFixture() domain.Verb {
	return domain.Verb{
		ID:   "sein",
		URL:  "/verb/sein",
		Verb: "sein",
		Data: domain.VerbData{
			Properties: domain.Properties{
				Level:       "A1",
				IsIrregular: true,
				Auxiliary:   "sein",
				Translations: domain.Translations{
					EN: "to be", ES: "ser", FR: "être", DE: "sein",
				},
			},
			Tenses: domain.Tenses{
				domain.MoodIndicative: {
					domain.TensePrasens: {{Person: "ich", Conjugation: "bin", ConjugationHTML: "bin"}},
				},
			},
		},
	}
}

// SeedVerb inserts v as-is and returns it with timestamps filled in.
func SeedVerb(t *testing.T, pool *pgxpool.Pool, v domain.Verb) domain.Verb {
	t.Helper()
	ctx := context.Background()

	data, err := json.Marshal(v.Data)
	if err != nil {
		t.Fatalf("testhelper: SeedVerb marshal data: %v", err)
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	_, err = pool.Exec(ctx,
		`INSERT INTO verbs (id, url, verb, data, created_at, updated_at)
		 VALUES ($1, $2, $3, $4::jsonb, $5, $5)`,
		v.ID, v.URL, v.Verb, string(data), now,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedVerb insert %s: %v", v.ID, err)
	}

	v.CreatedAt = now
	v.UpdatedAt = now
	return v
}

// SeedUser inserts a user with a unique email and the given password hash.
func SeedUser(t *testing.T, pool *pgxpool.Pool, passwordHash string) domain.User {
	t.Helper()

	user := domain.User{
		ID:           uuid.New(),
		Email:        "testuser-" + uniqueSuffix() + "@example.com",
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, email, password_hash, is_verified, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Email, user.PasswordHash, user.IsVerified, user.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}
