package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/spf13/cobra"

	"github.com/lifecomm/commission-calculator/internal/calculation"
	"github.com/lifecomm/commission-calculator/internal/config"
	"github.com/lifecomm/commission-calculator/internal/domain"
	"github.com/lifecomm/commission-calculator/internal/master"
	"github.com/lifecomm/commission-calculator/internal/output"
	"github.com/lifecomm/commission-calculator/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const defaultMasterPath = "data/product_master.csv"

var rootCmd = &cobra.Command{
	Use:   "comcalc",
	Short: "Monthly agent commission calculator",
	Long:  "Calculates monthly sales commissions for life-insurance agents from contract entries and the product-rate master",
}

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [input-file]",
		Short: "Run one commission calculation from a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			masterPath, _ := cmd.Flags().GetString("master")
			format, _ := cmd.Flags().GetString("format")
			outPath, _ := cmd.Flags().GetString("output")
			dateOverride, _ := cmd.Flags().GetString("date")

			table, err := master.Load(masterPath)
			if err != nil {
				return err
			}

			scenario, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}

			now := time.Now()
			if dateOverride != "" {
				now, err = time.Parse("2006-01", dateOverride)
				if err != nil {
					return fmt.Errorf("invalid --date %q, want YYYY-MM: %w", dateOverride, err)
				}
			}

			session := domain.NewSessionFromEntries(scenario.Entries)
			result := calculation.NewEngine().Calculate(session, scenario.PolicyInputs, now, table)

			w := os.Stdout
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("failed to create output file %s: %w", outPath, err)
				}
				defer f.Close()
				w = f
			}
			return output.NewReportGenerator().Generate(result, format, w)
		},
	}
	cmd.Flags().String("master", defaultMasterPath, "path to the product-rate master CSV")
	cmd.Flags().String("format", "console", "output format: console, json, or csv")
	cmd.Flags().String("output", "", "write the report to a file instead of stdout")
	cmd.Flags().String("date", "", "calculation month as YYYY-MM (defaults to the current month)")
	return cmd
}

func masterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "master",
		Short: "Inspect the product-rate master",
	}

	validate := &cobra.Command{
		Use:   "validate [master-file]",
		Short: "Check that a master file loads cleanly",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultMasterPath
			if len(args) == 1 {
				path = args[0]
			}
			table, err := master.Load(path)
			if err != nil {
				return err
			}
			fmt.Printf("%s: %d rows, %d products, %d strategic\n",
				path, table.Len(), len(table.Products()), len(table.StrategicProducts()))
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show [master-file]",
		Short: "List products, types and payyear options",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultMasterPath
			if len(args) == 1 {
				path = args[0]
			}
			table, err := master.Load(path)
			if err != nil {
				return err
			}
			for _, product := range table.Products() {
				tag := ""
				if table.IsStrategic(product) {
					tag = " [전략건강]"
				}
				fmt.Printf("%s%s\n", product, tag)
				for _, typ := range table.Types(product) {
					fmt.Printf("  %s: %v\n", typ, table.PayYears(product, typ))
				}
			}
			return nil
		},
	}

	cmd.AddCommand(validate, show)
	return cmd
}

func tuiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Interactive calculation session",
		RunE: func(cmd *cobra.Command, args []string) error {
			masterPath, _ := cmd.Flags().GetString("master")
			inputPath, _ := cmd.Flags().GetString("input")

			table, err := master.Load(masterPath)
			if err != nil {
				return err
			}

			var scenario *domain.Scenario
			if inputPath != "" {
				scenario, err = config.NewInputParser().LoadFromFile(inputPath)
				if err != nil {
					return err
				}
			}
			return tui.Run(table, scenario)
		},
	}
	cmd.Flags().String("master", defaultMasterPath, "path to the product-rate master CSV")
	cmd.Flags().String("input", "", "scenario file to pre-load")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "comcalc %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

func main() {
	rootCmd.AddCommand(calculateCmd(), masterCmd(), tuiCmd(), versionCmd())
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
