package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/shogo82148/cprintf/internal/corpus"
)

func (a *app) checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check FILE...",
		Short: "Run corpus files and report mismatches",
		Long: `Check formats every case of the given corpus files (.toml or .msgpack) and
compares the output with the expected one. It exits with a non-zero status
if any case fails.`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.runCheck,
	}
	cmd.Flags().IntP("jobs", "j", 0, "files to check in parallel (default: configuration, then one per CPU)")
	cmd.Flags().BoolP("quiet", "q", false, "report failures only")
	return cmd
}

// runFiles loads and runs the corpus files in parallel. The results are in
// the order of the files.
func (a *app) runFiles(cmd *cobra.Command, files []string) ([][]corpus.Result, error) {
	jobs := a.cfg.Workers()
	if cmd.Flags().Changed("jobs") {
		n, err := cmd.Flags().GetInt("jobs")
		if err != nil {
			return nil, err
		}
		if n > 0 {
			jobs = n
		}
	}

	results := make([][]corpus.Result, len(files))
	g, gctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			cases, err := corpus.Load(path)
			if err != nil {
				return err
			}
			res := make([]corpus.Result, len(cases))
			for j, c := range cases {
				res[j] = c.Run()
			}
			results[i] = res
			a.logger.Debug("ran corpus", "file", path, "cases", len(cases))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (a *app) runCheck(cmd *cobra.Command, files []string) error {
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return err
	}
	results, err := a.runFiles(cmd, files)
	if err != nil {
		return err
	}

	passed, failed := 0, 0
	for i, res := range results {
		for _, r := range res {
			if r.Passed() {
				passed++
				if !quiet {
					fmt.Fprintf(a.stdout, "%s %s: %s\n", a.pass.Sprint("PASS"), files[i], r.Case.Name)
				}
				continue
			}
			failed++
			fmt.Fprintf(a.stdout, "%s %s: %s\n", a.fail.Sprint("FAIL"), files[i], r.Case.Name)
			a.describe(r)
		}
	}

	summary := fmt.Sprintf("%d passed, %d failed", passed, failed)
	if failed > 0 {
		fmt.Fprintln(a.stdout, a.fail.Sprint(summary))
		return errSilent
	}
	fmt.Fprintln(a.stdout, a.pass.Sprint(summary))
	return nil
}

// describe writes the details of a failed case.
func (a *app) describe(r corpus.Result) {
	c := r.Case
	fmt.Fprintf(a.stdout, "    %s %q\n", a.dim.Sprint("format:"), c.Format)
	if r.Err != nil {
		fmt.Fprintf(a.stdout, "    %s %v\n", a.dim.Sprint("error: "), r.Err)
		return
	}
	wantLen := len(c.Want)
	if c.WantLen != nil {
		wantLen = *c.WantLen
	}
	fmt.Fprintf(a.stdout, "    %s %q (%d)\n", a.dim.Sprint("want:  "), c.Want, wantLen)
	fmt.Fprintf(a.stdout, "    %s %q (%d)\n", a.dim.Sprint("got:   "), r.Got, r.Len)
}
