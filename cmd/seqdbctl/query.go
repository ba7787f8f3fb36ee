package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/acorg/seqdb/internal/persist"
)

func newQueryCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Look up an entry by name and print its sequence variants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, name)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "entry name to look up (required)")
	cmd.MarkFlagRequired("name")

	return cmd
}

func runQuery(cmd *cobra.Command, name string) error {
	path, err := storePath(cmd)
	if err != nil {
		return err
	}

	store, err := persist.Load(path, logger)
	if err != nil {
		return fmt.Errorf("loading store %s: %w", path, err)
	}

	entry, ok := store.FindByName(name)
	if !ok {
		return fmt.Errorf("no entry named %q in %s", name, path)
	}

	fmt.Printf("%s\n", entry.Name)
	fmt.Printf("  virus_type: %s\n", entry.VirusType)
	if entry.Lineage != "" {
		fmt.Printf("  lineage:    %s\n", entry.Lineage)
	}
	fmt.Printf("  dates:      %s\n", strings.Join(entry.Dates, ", "))

	for i, s := range entry.Seqs {
		fmt.Printf("  seq[%d] %s\n", i, entry.SeqID(i))
		fmt.Printf("    gene:      %s\n", s.Gene)
		fmt.Printf("    passages:  %s\n", strings.Join(s.Passages, ", "))
		if len(s.Clades) > 0 {
			fmt.Printf("    clades:    %s\n", strings.Join(s.Clades, ", "))
		}
		if len(s.HiNames) > 0 {
			fmt.Printf("    hi_names:  %s\n", strings.Join(s.HiNames, ", "))
		}
		aa, err := s.AminoAcidsView(s.Aligned(), 0, 0)
		if err != nil {
			fmt.Printf("    aa:        (unaligned) %s\n", s.AminoAcids)
			continue
		}
		fmt.Printf("    aa:        %s\n", aa)
	}

	return nil
}
