package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/stringnet/cluster"
	"github.com/katalvlaran/stringnet/fault"
	"github.com/katalvlaran/stringnet/lattice"
	"github.com/katalvlaran/stringnet/update"
	"github.com/katalvlaran/stringnet/winding"
)

// sample builds the configured initial lattice and applies n updates to it.
func (c *cli) sample(n int) (lat *lattice.Lattice, err error) {
	defer fault.Recover(&err)

	if err := c.cfg.Validate(); err != nil {
		return nil, err
	}
	lat, err = lattice.Build(lattice.Initial(c.cfg.Initial), c.cfg.Lx, c.cfg.Ly)
	if err != nil {
		return nil, err
	}
	kind, _ := update.ParseKind(c.cfg.UpdateKind)
	u, err := update.New(lat,
		update.WithKind(kind),
		update.WithTuning(c.cfg.Tuning),
		update.WithSeed(c.cfg.Seed),
		update.WithLogger(c.logger),
	)
	if err != nil {
		return nil, err
	}
	u.UpdateN(n)

	return lat, nil
}

func newClusterCmd(c *cli) *cobra.Command {
	var (
		n     int
		x, y  int
		trace bool
	)
	cmd := &cobra.Command{
		Use:   "cluster",
		Short: "Grow the cluster through one site and label every cluster",
		Long: `cluster builds the configured initial lattice, applies --sample updates,
then grows the cluster containing (--x, --y) one traversal step at a time.
With --trace every step is logged at debug level.`,
		Args: cobra.NoArgs,
	}
	apply := configFlags(cmd.Flags())
	cmd.Flags().IntVar(&n, "sample", 0, "updates applied before clustering")
	cmd.Flags().IntVar(&x, "x", 0, "seed site x")
	cmd.Flags().IntVar(&y, "y", 0, "seed site y")
	cmd.Flags().BoolVar(&trace, "trace", false, "log every traversal step")

	cmd.RunE = func(cmd *cobra.Command, _ []string) (err error) {
		apply(cmd.Flags(), &c.cfg)
		lat, err := c.sample(n)
		if err != nil {
			return err
		}
		defer fault.Recover(&err)

		var opts []cluster.Option
		if trace {
			opts = append(opts, cluster.WithOnStep(func(s cluster.Status, t *cluster.Traversal) {
				c.logger.Debug("step",
					slog.String("status", s.String()),
					slog.Int("x", t.Current.Location.X),
					slog.Int("y", t.Current.Location.Y),
					slog.Int("depth", len(t.WalkList)),
					slog.Int("members", len(t.Members)))
			}))
		}
		seed := lat.Bound(lattice.Point{X: x, Y: y}).Location
		members := cluster.Find(lat, seed, opts...)
		labels := cluster.Label(lat)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "seed:     (%d,%d)\n", seed.X, seed.Y)
		fmt.Fprintf(out, "members:  %d\n", len(members))
		fmt.Fprintf(out, "clusters: %d\n", labels.Count())
		fmt.Fprintf(out, "mean:     %.3f\n", labels.MeanSize())
		fmt.Fprintf(out, "largest:  %d\n", labels.Largest())

		return nil
	}

	return cmd
}

func newWindingCmd(c *cli) *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "winding",
		Short: "Print the winding numbers through every row and column cut",
		Args:  cobra.NoArgs,
	}
	apply := configFlags(cmd.Flags())
	cmd.Flags().IntVar(&n, "sample", 0, "updates applied before measuring")

	cmd.RunE = func(cmd *cobra.Command, _ []string) (err error) {
		apply(cmd.Flags(), &c.cfg)
		lat, err := c.sample(n)
		if err != nil {
			return err
		}
		defer fault.Recover(&err)

		out := cmd.OutOrStdout()
		size := lat.Size()
		for col := 0; col < size.X; col++ {
			fmt.Fprintf(out, "column %d: %d\n", col, winding.Vertical(lat, col))
		}
		for row := 0; row < size.Y; row++ {
			fmt.Fprintf(out, "row %d: %d\n", row, winding.Horizontal(lat, row))
		}
		w := winding.Compute(lat)
		fmt.Fprintf(out, "horizontal: %d vertical: %d consistent: %t\n",
			w.Horizontal, w.Vertical, winding.Consistent(lat))

		return nil
	}

	return cmd
}
