// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/katalvlaran/lvmcmc/mcmc"
	"github.com/katalvlaran/lvmcmc/param"
	"github.com/katalvlaran/lvmcmc/summary"
)

// report prints the physical-chain digest and per-chain acceptance rates.
func report(w io.Writer, m *mcmc.MetropolisHastings, list *param.List, burnIn, thin int, level float64) error {
	phys := m.PhysicalChain()
	if burnIn >= phys.Len() {
		burnIn = 0
	}
	view, err := summary.NewView(phys, burnIn, thin)
	if err != nil {
		return err
	}
	rows, err := summary.Summarize(view, list, level)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "parameter\tmean\tstd\t%.0f%% interval\tgaussian\n", level*100)
	for _, r := range rows {
		name := r.Name
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(tw, "%s\t%.6g\t%.6g\t[%.6g, %.6g]\t[%.6g, %.6g]\n",
			name, r.Mean, r.StdDev, r.Lower, r.Upper, r.GaussLower, r.GaussUpper)
	}
	if err = tw.Flush(); err != nil {
		return err
	}

	if best, ok := view.Best(); ok {
		fmt.Fprintf(w, "\nbest NLL %.6g at step %d\n", best.NLL, best.Step)
	}
	fmt.Fprintf(w, "samples %d (burn-in %d, thin %d)\n\n", view.Len(), burnIn, thin)
	for i, c := range m.Chains() {
		fmt.Fprintf(w, "chain %d beta=%g acceptance=%.3f\n", i, c.Beta(), summary.AcceptanceRate(c))
	}

	return nil
}
