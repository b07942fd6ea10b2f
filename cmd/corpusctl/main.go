// Command corpusctl checks corpus files and loads them into Postgres.
//
//	corpusctl validate -file protocols.yaml
//	corpusctl import -file protocols.yaml
//	corpusctl export > builtin.yaml
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/config"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/corpus"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/knowledgebase"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/repository"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/pkg/database"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/pkg/logger"
	"go.uber.org/zap"
)

const usage = `usage: corpusctl <command> [flags]

commands:
  validate -file PATH   decode a corpus file and check it loads
  import -file PATH     validate a corpus file and replace the database corpus
  export                write the builtin corpus as YAML to stdout
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	log, err := logger.New(config.LogConfig{Level: "info", Format: "console", OutputPath: "stderr"})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "validate":
		err = validateCmd(args, log)
	case "import":
		err = importCmd(args, log)
	case "export":
		err = exportCmd()
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Error(cmd+" failed", zap.Error(err))
		os.Exit(1)
	}
}

var errNoFile = errors.New("-file is required")

func fileFlag(name string, args []string) (string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	path := fs.String("file", "", "corpus file (.yaml, .yml or .json)")
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if *path == "" {
		return "", errNoFile
	}
	return *path, nil
}

func loadAndCheck(path string, log *zap.Logger) (*corpus.Corpus, error) {
	c, err := corpus.LoadFile(path)
	if err != nil {
		return nil, err
	}
	store, err := knowledgebase.New(c.Protocols, c.RedFlags, log)
	if err != nil {
		return nil, err
	}
	st := store.Stats()
	log.Info("corpus valid",
		zap.String("file", path),
		zap.Int("protocols", st.Protocols),
		zap.Int("red_flags", st.RedFlags),
	)
	return c, nil
}

func validateCmd(args []string, log *zap.Logger) error {
	path, err := fileFlag("validate", args)
	if err != nil {
		return err
	}
	_, err = loadAndCheck(path, log)
	return err
}

func importCmd(args []string, log *zap.Logger) error {
	path, err := fileFlag("import", args)
	if err != nil {
		return err
	}
	c, err := loadAndCheck(path, log)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if !cfg.Database.Enabled {
		return fmt.Errorf("import requires DB_ENABLED=true")
	}

	db, err := database.Connect(cfg.Database, log)
	if err != nil {
		return err
	}
	defer database.Close(db) //nolint:errcheck

	if err := database.Migrate(db, log); err != nil {
		return err
	}
	if err := repository.NewCorpusRepository(db).ReplaceCorpus(context.Background(), c.Protocols, c.RedFlags); err != nil {
		return err
	}

	log.Info("corpus imported",
		zap.Int("protocols", len(c.Protocols)),
		zap.Int("red_flags", len(c.RedFlags)),
	)
	return nil
}

func exportCmd() error {
	c, err := corpus.Builtin().Load(context.Background())
	if err != nil {
		return err
	}
	out, err := corpus.Encode(c)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}
