package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/acorg/seqdb/internal/persist"
	"github.com/acorg/seqdb/internal/seqdb"
)

// ingestFieldCount is the number of tab-separated columns of an ingest
// batch file, in this order,
// one record per line: name, virus_type, lineage, lab, date, lab_id,
// passage, reassortant, sequence, gene. Blank fields are allowed except
// name and sequence.
const ingestFieldCount = 10

func newIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <file>",
		Short: "Ingest a tab-separated batch of sequences into the store",
		Long: `Reads a line-oriented ingest batch file and calls AddSequence per
record. Each line has 10 tab-separated fields:

  name  virus_type  lineage  lab  date  lab_id  passage  reassortant  sequence  gene

Blank lines and lines starting with '#' are skipped. After ingest, every
virus_type seen is reconciled (indel detection, lineage/clade
classification) and the store is written back to the configured path.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(cmd, args[0])
		},
	}
	return cmd
}

func runIngest(cmd *cobra.Command, file string) error {
	path, err := storePath(cmd)
	if err != nil {
		return err
	}

	store, err := openOrCreateStore(path)
	if err != nil {
		return err
	}

	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("opening ingest file %s: %w", file, err)
	}
	defer f.Close()

	virusTypes := make(map[string]bool)
	n := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != ingestFieldCount {
			logger.Warn("skipping malformed ingest line", zap.Int("fields", len(fields)))
			continue
		}
		if fields[0] == "" || fields[8] == "" {
			logger.Warn("skipping ingest line with blank name or sequence")
			continue
		}
		store.AddSequence(fields[0], fields[1], fields[2], fields[3], fields[4],
			fields[5], fields[6], fields[7], fields[8], fields[9])
		if fields[1] != "" {
			virusTypes[fields[1]] = true
		}
		n++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading ingest file %s: %w", file, err)
	}

	for vt := range virusTypes {
		store.Reconcile(vt)
	}
	store.Cleanup()
	store.BuildHiNameIndex()

	if err := persist.Save(path, store); err != nil {
		return fmt.Errorf("saving store: %w", err)
	}

	fmt.Printf("Ingested %d records into %s (%d entries)\n", n, path, store.Len())
	return nil
}

func openOrCreateStore(path string) (*seqdb.Store, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return seqdb.New(logger), nil
		}
		return nil, fmt.Errorf("checking store %s: %w", path, err)
	}
	store, err := persist.Load(path, logger)
	if err != nil {
		return nil, fmt.Errorf("loading store %s: %w", path, err)
	}
	return store, nil
}
