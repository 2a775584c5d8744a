package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tutu-network/splitqueue/internal/demo"
	"github.com/tutu-network/splitqueue/internal/queue"
)

func init() {
	benchCmd.Flags().IntVar(&benchWorkers, "workers", 4, "Number of worker goroutines")
	benchCmd.Flags().IntVar(&benchTasks, "tasks", 100, "Number of synthetic tasks to submit")
	benchCmd.Flags().IntVar(&benchQuanta, "quanta", 5, "Number of quanta each task runs")
	benchCmd.Flags().DurationVar(&benchQuantum, "quantum", 20*time.Millisecond, "Simulated duration of one quantum")
	benchCmd.Flags().BoolVar(&benchAbsolute, "absolute", false, "Use absolute-priority selection instead of time-balanced")
	rootCmd.AddCommand(benchCmd)
}

var (
	benchWorkers  int
	benchTasks    int
	benchQuanta   int
	benchQuantum  time.Duration
	benchAbsolute bool
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run a synthetic workload against an in-process queue",
	Long:  `Submits synthetic tasks to a queue and a worker pool, and reports per-level dispatch counts once every task has retired.`,
	RunE:  runBench,
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg := queue.DefaultConfig()
	cfg.LevelAbsolutePriority = benchAbsolute
	q := queue.New(cfg)

	pool := demo.NewPool(q, benchWorkers)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pool.Run(ctx)

	for i := 0; i < benchTasks; i++ {
		if err := pool.Submit(benchQuanta, benchQuantum.Nanoseconds()); err != nil {
			return err
		}
	}

	for pool.Retired() < benchTasks {
		time.Sleep(10 * time.Millisecond)
	}
	cancel()
	pool.Wait()

	fmt.Printf("retired: %d\n", pool.Retired())
	fmt.Printf("selected per level: %v\n", q.SelectedLevelCounters())
	fmt.Printf("scheduled nanos per level: %v\n", q.LevelScheduledTime())
	return nil
}
