package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cognicore/tweetlens/internal/logger"
	"github.com/cognicore/tweetlens/pkg/tweetlens/corpus"
	"github.com/cognicore/tweetlens/pkg/tweetlens/store/sqlstore"
)

type importOptions struct {
	driver string
	dsn    string
}

func newImportCmd(a *app) *cobra.Command {
	var opts importOptions
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Copy a JSON or JSONL tweet export into a tweet archive",
		Long: `import upserts every tweet of FILE into a SQLite or PostgreSQL archive.
Tweets already archived under the same id are replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.finish(a.runImport(cmd, args[0], opts))
		},
	}
	cmd.Flags().StringVar(&opts.driver, "driver", sqlstore.DriverSQLite, "archive driver: sqlite or postgres")
	cmd.Flags().StringVar(&opts.dsn, "db", "", "archive DSN (defaults to corpus.dsn)")
	return cmd
}

func (a *app) runImport(cmd *cobra.Command, path string, opts importOptions) error {
	ctx := cmd.Context()
	log := logger.WithComponent("import")

	dsn := opts.dsn
	if dsn == "" {
		dsn = a.cfg.Corpus.DSN
	}

	format := a.cfg.Corpus.Format
	if a.cfg.Corpus.IsDatabase() {
		format = ""
	}
	src, err := corpus.Open(path, format, log)
	if err != nil {
		return err
	}
	tweets, err := src.Tweets(ctx)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	st, err := openArchive(ctx, opts.driver, dsn)
	if err != nil {
		return err
	}
	defer st.Close()

	n, err := st.UpsertTweets(ctx, tweets)
	if err != nil {
		return fmt.Errorf("import tweets: %w", err)
	}
	total, err := st.Count(ctx)
	if err != nil {
		return err
	}
	a.metrics.SetCorpusSize(int(total))
	log.Info("tweets imported", "file", path, "upserted", n, "archived", total)
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d tweets (%d archived)\n", n, total)
	return nil
}
