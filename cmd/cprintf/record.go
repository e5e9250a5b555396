package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shogo82148/cprintf/internal/corpus"
)

func (a *app) recordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record -o OUT FILE...",
		Short: "Snapshot the outputs of corpus files",
		Long: `Record formats every case of the given corpus files and writes them, with
the produced outputs as the expected ones, to a msgpack snapshot.`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.runRecord,
	}
	cmd.Flags().StringP("output", "o", "", "snapshot file to write")
	cmd.Flags().IntP("jobs", "j", 0, "files to run in parallel")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func (a *app) runRecord(cmd *cobra.Command, files []string) error {
	out, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	results, err := a.runFiles(cmd, files)
	if err != nil {
		return err
	}

	var cases []corpus.Case
	changed := 0
	for i, res := range results {
		for _, r := range res {
			if r.Err != nil {
				return fmt.Errorf("%s: %s: %w", files[i], r.Case.Name, r.Err)
			}
			if !r.Passed() {
				changed++
				a.logger.Debug("expectation changed", "file", files[i], "case", r.Case.Name)
			}
			c := r.Case
			c.Want = r.Got
			c.WantLen = nil
			if r.Len != len(r.Got) {
				n := r.Len
				c.WantLen = &n
			}
			cases = append(cases, c)
		}
	}

	if err := corpus.SaveFile(out, cases); err != nil {
		return err
	}
	a.logger.Info("recorded snapshot", "path", out, "cases", len(cases), "changed", changed)
	return nil
}
