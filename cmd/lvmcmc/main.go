// SPDX-License-Identifier: MIT

// Command lvmcmc runs a Metropolis-Hastings sampler configured from YAML on
// one of the built-in objectives and prints a summary of the physical chain.
//
//	lvmcmc run --config run.yaml [--steps N] [--seed S] [--log-level debug]
//	lvmcmc version
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
