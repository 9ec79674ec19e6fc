// Command alethecheck is a thin CLI driver over pkg/parser and
// pkg/checker: it reads an SMT-LIB problem and an Alethe proof, checks
// the proof's arithmetic steps against the problem, and reports the
// first rejection (if any). It is an external collaborator, out of the
// checker core's scope (spec.md §1).
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ashgrove/alethecheck/pkg/bench"
	"github.com/ashgrove/alethecheck/pkg/checker"
	"github.com/ashgrove/alethecheck/pkg/parser"
	"github.com/ashgrove/alethecheck/pkg/proof"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:   "alethecheck [flags] problem.smt2 proof.alethe",
	Short: "Check an Alethe proof against its SMT-LIB problem.",
	Long: `alethecheck parses an SMT-LIB problem and an Alethe proof and checks
every step whose rule is a supported linear-arithmetic rule
(la_rw_eq, la_disequality, la_generic). Steps using any other rule are
reported as unsupported rather than accepted or rejected.`,
	Args: cobra.ExactArgs(2),
	Run:  run,
}

func init() {
	rootCmd.Flags().String("logic", "", "set the logic ahead of parsing, forcing integer-vs-real promotion (a set-logic in the problem takes precedence)")
	rootCmd.Flags().Bool("bench", false, "print timing metrics for parsing and checking")
	rootCmd.Flags().BoolP("verbose", "v", false, "increase logging verbosity")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) {
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		log.SetLevel(log.DebugLevel)
	}

	problemPath, proofPath := args[0], args[1]

	problemText, err := os.ReadFile(problemPath)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	proofText, err := os.ReadFile(proofPath)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	results := bench.NewResults()
	runID := bench.RunID{File: proofPath, Run: 0}

	parseStart := time.Now()

	problemParser, err := parser.New(string(problemText))
	if err != nil {
		fmt.Println(err)
		os.Exit(3)
	}

	if logicName, _ := cmd.Flags().GetString("logic"); logicName != "" {
		if err := problemParser.ForceLogic(logicName); err != nil {
			fmt.Println(err)
			os.Exit(3)
		}
	}

	premises, err := problemParser.ParseProblem()
	if err != nil {
		fmt.Println(err)
		os.Exit(3)
	}

	proofParser, err := parser.NewWithState(string(proofText), problemParser.State())
	if err != nil {
		fmt.Println(err)
		os.Exit(3)
	}

	commands, err := proofParser.ParseProof()
	if err != nil {
		fmt.Println(err)
		os.Exit(3)
	}

	parseElapsed := time.Since(parseStart)

	pr := &proof.Proof{Premises: premises, Commands: commands}

	checkStart := time.Now()
	c := checker.New(problemParser.State().Pool)
	verdicts, checkErr := c.CheckProof(pr)
	checkElapsed := time.Since(checkStart)

	results.RecordRun(runID, parseElapsed, checkElapsed)

	accepted, unsupported := 0, 0
	for _, v := range verdicts {
		switch v.Outcome {
		case checker.Accepted:
			accepted++
		case checker.Unsupported:
			unsupported++
		}
	}

	fmt.Printf("%s: %d accepted, %d unsupported\n", proofPath, accepted, unsupported)

	if bVal, _ := cmd.Flags().GetBool("bench"); bVal {
		printBenchTable(results)
	}

	if checkErr != nil {
		var rejected *checker.RejectedError
		if errors.As(checkErr, &rejected) {
			fmt.Printf("%s: step %q rejected (rule %q)\n", rejected.Verdict.Pos, rejected.Verdict.Index, rejected.Verdict.Rule)
		} else {
			fmt.Println(checkErr)
		}

		os.Exit(1)
	}
}

// printBenchTable renders the accumulated metrics as a plain-text
// table, sized to the terminal when stdout is one.
func printBenchTable(results *bench.Results) {
	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}

	rule := fmt.Sprintf("%-40s %s", "phase", "mean ± stddev")
	fmt.Println(rule)
	fmt.Println(dashes(width))
	fmt.Printf("%-40s %s\n", "parsing", results.Parsing)
	fmt.Printf("%-40s %s\n", "checking", results.Checking)
	fmt.Printf("%-40s %s\n", "total", results.Total)
}

func dashes(n int) string {
	if n > 120 {
		n = 120
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = '-'
	}
	return string(b)
}
