package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/stringnet/sim"
)

func newRunCmd(c *cli) *cobra.Command {
	var (
		resume string
		keep   int
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one simulation and record per-bin estimator averages",
		Example: `  stringnet run --lx 16 --ly 16 --tuning 0.8 --kind walk --bins 20
  stringnet run --config run.yaml --checkpoint-dir ./ckpt --resume 0b6f...`,
		Args: cobra.NoArgs,
	}
	apply := configFlags(cmd.Flags())
	cmd.Flags().StringVar(&resume, "resume", "", "continue this run id from its latest checkpoint")
	cmd.Flags().IntVar(&keep, "keep-checkpoints", 0, "checkpoints kept per run (0 keeps all)")

	cmd.RunE = func(cmd *cobra.Command, _ []string) (err error) {
		apply(cmd.Flags(), &c.cfg)
		if err := c.cfg.Validate(); err != nil {
			return err
		}
		env, err := c.openEnv(cmd.Context())
		defer func() { err = errors.Join(err, env.close()) }()
		if err != nil {
			return err
		}

		opts := env.options(keep)
		if resume != "" {
			opts = append(opts, sim.WithResume(resume))
		}
		rep, err := sim.Run(cmd.Context(), c.cfg, opts...)
		if err != nil {
			return err
		}
		printReport(cmd.OutOrStdout(), rep)

		return nil
	}

	return cmd
}

func printReport(w io.Writer, rep sim.Report) {
	fmt.Fprintf(w, "run:        %s\n", rep.RunID)
	fmt.Fprintf(w, "tuning:     %g\n", rep.Tuning)
	fmt.Fprintf(w, "bins:       %d (from %d)\n", rep.Bins, rep.FirstBin)
	fmt.Fprintf(w, "proposed:   %d\n", rep.Stats.Proposed)
	fmt.Fprintf(w, "acceptance: %.4f\n", rep.Stats.AcceptanceRate())
	if rep.Lattice != nil {
		fmt.Fprintf(w, "filled:     %d/%d\n", rep.Lattice.FilledLinks(), rep.Lattice.MaxLinks())
	}
	fmt.Fprintf(w, "winding:    horizontal %d vertical %d\n", rep.Winding.Horizontal, rep.Winding.Vertical)
}
