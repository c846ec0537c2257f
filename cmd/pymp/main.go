// Command pymp inspects and exercises parallel-region configuration.
//
//	pymp env            print the configuration resolved from PYMP_*/OMP_*
//	pymp bench          compare static and dynamic scheduling on a toy load
package main

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/classner/pymp"
	"github.com/classner/pymp/shared"
)

func main() {
	root := &cobra.Command{
		Use:           "pymp",
		Short:         "OpenMP-style parallel regions for Go",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(envCmd(), benchCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "pymp:", err)
		os.Exit(1)
	}
}

func envCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "env",
		Short: "Print the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				cfg *pymp.Config
				err error
			)
			if configFile != "" {
				cfg, err = pymp.FromFile(configFile)
			} else {
				cfg, err = pymp.FromEnv()
			}
			if err != nil {
				return err
			}

			fmt.Printf("nested:       %v\n", cfg.Nested)
			if cfg.ThreadLimit > 0 {
				fmt.Printf("thread_limit: %d\n", cfg.ThreadLimit)
			} else {
				fmt.Printf("thread_limit: none\n")
			}
			fmt.Printf("num_threads:  %v\n", cfg.NumThreads)
			return nil
		},
	}
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "load configuration from a YAML file instead of the environment")
	return cmd
}

func benchCmd() *cobra.Command {
	var (
		threads int
		iters   int
		chunk   int
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare static and dynamic scheduling on a toy workload",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := &pymp.Config{NumThreads: []int{threads}}
			results := shared.NewBuffer[float64](iters)

			start := time.Now()
			err := pymp.Run(threads, func(p *pymp.Parallel) error {
				for _, i := range p.Range(iters) {
					results.Set(work(i), i)
				}
				return nil
			}, pymp.WithConfig(cfg), pymp.WithName("bench-static"))
			if err != nil {
				return err
			}
			staticTook := time.Since(start)

			start = time.Now()
			err = pymp.Run(threads, func(p *pymp.Parallel) error {
				for i := range p.XrangeChunked(0, iters, 1, chunk) {
					results.Set(work(i), i)
				}
				return nil
			}, pymp.WithConfig(cfg), pymp.WithName("bench-dynamic"))
			if err != nil {
				return err
			}
			dynamicTook := time.Since(start)

			fmt.Printf("threads: %d, iterations: %d, chunk: %d\n", threads, iters, chunk)
			fmt.Printf("static:  %v\n", staticTook)
			fmt.Printf("dynamic: %v\n", dynamicTook)
			return nil
		},
	}
	cmd.Flags().IntVarP(&threads, "threads", "t", 4, "worker count to request")
	cmd.Flags().IntVarP(&iters, "iterations", "n", 1<<20, "iteration domain size")
	cmd.Flags().IntVar(&chunk, "chunk", 64, "dynamic scheduling chunk size")
	return cmd
}

// work is a deliberately uneven per-index load.
func work(i int) float64 {
	v := float64(i)
	for k := 0; k < i%64; k++ {
		v = math.Sqrt(v + float64(k))
	}
	return v
}
