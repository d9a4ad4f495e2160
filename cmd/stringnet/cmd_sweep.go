package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/stringnet/sim"
)

func newSweepCmd(c *cli) *cobra.Command {
	var (
		tunings  []float64
		parallel int
		keep     int
	)
	cmd := &cobra.Command{
		Use:     "sweep",
		Short:   "Run the same simulation for several tunings in parallel",
		Example: `  stringnet sweep --lx 8 --ly 8 --tunings 0.25,0.5,1,2 --parallel 4`,
		Args:    cobra.NoArgs,
	}
	apply := configFlags(cmd.Flags())
	cmd.Flags().Float64SliceVar(&tunings, "tunings", nil, "tuning values, comma separated")
	cmd.Flags().IntVar(&parallel, "parallel", 0, "concurrent runs (0 means GOMAXPROCS)")
	cmd.Flags().IntVar(&keep, "keep-checkpoints", 1, "checkpoints kept per run (0 keeps all)")
	_ = cmd.MarkFlagRequired("tunings")

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

		reps, err := sim.Sweep(cmd.Context(), c.cfg, tunings, parallel, env.options(keep)...)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "TUNING\tRUN\tPROPOSED\tACCEPTANCE\tFILLED\tWINDING")
		for _, r := range reps {
			fmt.Fprintf(tw, "%g\t%s\t%d\t%.4f\t%d\t(%d,%d)\n",
				r.Tuning, r.RunID, r.Stats.Proposed, r.Stats.AcceptanceRate(),
				r.Lattice.FilledLinks(), r.Winding.Horizontal, r.Winding.Vertical)
		}

		return tw.Flush()
	}

	return cmd
}
