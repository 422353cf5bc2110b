package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/konjug-backend/internal/adapter/cache"
	"github.com/heartmarshall/konjug-backend/internal/adapter/postgres"
	verbrepo "github.com/heartmarshall/konjug-backend/internal/adapter/postgres/verb"
	"github.com/heartmarshall/konjug-backend/internal/domain"
	"github.com/heartmarshall/konjug-backend/internal/service/verb"
)

type importOptions struct {
	batchSize int
	dryRun    bool
}

func newImportCmd(root *rootOptions) *cobra.Command {
	opts := &importOptions{}

	cmd := &cobra.Command{
		Use:   "import <file.json>...",
		Short: "Upsert verb documents from JSON files",
		Long: `Import reads verb documents from one or more JSON files. Each file holds
either an array of documents or a single document. Every document is
validated before anything is written; one invalid document aborts the run.

Existing verbs with the same _id are replaced.

Example:
  verbctl import seed/verbs.json
  verbctl import seed/*.json --batch-size 500
  verbctl import seed/verbs.json --dry-run`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			verbs, err := readVerbFiles(args)
			if err != nil {
				return err
			}

			e, err := root.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			svc := verb.NewService(
				e.log,
				verbrepo.New(e.pool),
				postgres.NewTxManager(e.pool),
				cache.NewSearchCache(e.cfg.Verbs.SearchCacheTTL, e.cfg.Verbs.CacheCleanupPeriod),
				e.cfg.Verbs,
			)

			res, err := svc.Import(cmd.Context(), verb.ImportInput{
				Verbs:     verbs,
				BatchSize: opts.batchSize,
				DryRun:    opts.dryRun,
			})
			if err != nil {
				return reportImportError(cmd.ErrOrStderr(), err)
			}

			printImportResult(cmd.OutOrStdout(), res)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.batchSize, "batch-size", 0, "documents per upsert batch (default: verbs.import_batch_size)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "validate documents without writing to the database")
	return cmd
}

// readVerbFiles decodes every file in order and concatenates the documents.
func readVerbFiles(paths []string) ([]domain.Verb, error) {
	var all []domain.Verb
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		verbs, err := decodeVerbs(data)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		all = append(all, verbs...)
	}
	return all, nil
}

// decodeVerbs accepts a JSON array of documents or a single document.
func decodeVerbs(data []byte) ([]domain.Verb, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("empty file")
	}

	if trimmed[0] == '[' {
		var verbs []domain.Verb
		if err := json.Unmarshal(trimmed, &verbs); err != nil {
			return nil, err
		}
		return verbs, nil
	}

	var v domain.Verb
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return nil, err
	}
	return []domain.Verb{v}, nil
}

func printImportResult(w io.Writer, res *verb.ImportResult) {
	if res.DryRun {
		fmt.Fprintf(w, "dry run: %d documents valid, nothing written\n", res.Total)
		return
	}
	fmt.Fprintf(w, "imported %d documents in %d batches (%d inserted, %d updated)\n",
		res.Total, res.Batches, res.Inserted, res.Updated)
}

// reportImportError lists each invalid document field before returning err.
func reportImportError(w io.Writer, err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		for _, fe := range ve.Errors {
			fmt.Fprintf(w, "  %s: %s\n", fe.Field, fe.Message)
		}
	}
	return err
}
