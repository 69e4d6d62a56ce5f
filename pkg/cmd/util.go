package cmd

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/consensys/go-grover/pkg/boolexpr"
	"github.com/consensys/go-grover/pkg/compiler"
	"github.com/consensys/go-grover/pkg/grover"
	"github.com/consensys/go-grover/pkg/util/source"
	"github.com/spf13/cobra"
)

// Get an expected flag, or exit if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected string flag, or exit if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected int flag, or exit if an error arises.
func GetInt(cmd *cobra.Command, flag string) int {
	r, err := cmd.Flags().GetInt(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected uint flag, or exit if an error arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Assemble a compilation configuration from the persistent flags.
func readCompileConfig(cmd *cobra.Command) grover.CompileConfig {
	var (
		config = grover.DefaultCompileConfig()
		err    error
	)
	//
	if config.Mode, err = compiler.ParseMode(GetString(cmd, "mode")); err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	if config.Strategy, err = compiler.ParseStrategy(GetString(cmd, "strategy")); err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	config.Optimize = GetFlag(cmd, "optimize")
	config.AncillaBudget = int(GetUint(cmd, "budget"))
	config.Hub = GetInt(cmd, "hub")
	//
	return config
}

// Determine the formula to compile, either from the positional argument or
// (when --random is given) by generating a k-SAT instance.
func readFormula(cmd *cobra.Command, args []string) string {
	random := GetString(cmd, "random")
	//
	if random == "" {
		if len(args) != 1 {
			fmt.Println("expected exactly one formula argument")
			os.Exit(2)
		}
		//
		return args[0]
	} else if len(args) != 0 {
		fmt.Println("cannot combine --random with a formula argument")
		os.Exit(2)
	}
	//
	var clauses, size, symbols int
	//
	if n, err := fmt.Sscanf(random, "%d,%d,%d", &clauses, &size, &symbols); n != 3 || err != nil {
		fmt.Println("malformed --random, expected \"clauses,size,symbols\"")
		os.Exit(2)
	}
	//
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	//
	formula, err := boolexpr.RandomKSat(clauses, size, symbols, rnd)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	fmt.Printf("formula: %s\n", formula)
	//
	return formula
}

// Compile a formula, reporting any errors and exiting on failure.
func compileFormula(formula string, config grover.CompileConfig) *grover.Artifact {
	artifact, err := grover.Compile(formula, config)
	//
	if err == nil {
		return artifact
	}
	// Handle error
	var parseErrors *grover.ParseErrors
	//
	if errors.As(err, &parseErrors) {
		for _, e := range parseErrors.Errors {
			printSyntaxError(&e)
		}
	} else {
		fmt.Println(err)
	}
	//
	os.Exit(2)
	// unreachable
	return nil
}

// Print a syntax error with appropriate highlighting.
func printSyntaxError(err *source.SyntaxError) {
	span := err.Span()
	line := err.FirstEnclosingLine()
	// Print error + line number
	fmt.Printf("%s:%d: %s\n", err.SourceFile().Filename(), line.Number(), err.Message())
	// Print line
	fmt.Println(line.String())
	// Print indent (todo: account for tabs)
	fmt.Print(strings.Repeat(" ", span.Start()-line.Start()))
	// Print highlight
	fmt.Println(strings.Repeat("^", max(1, span.Length())))
}
