package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/config"
	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/database"
	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/platform"
	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/report"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gridctl",
		Short:         "Microgrid estimates administration",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringP("config-file", "C", "", "Path to a YAML, TOML or JSON configuration file")
	root.AddCommand(newMigrateCmd(), newReportCmd())
	return root
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config-file")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	platform.SetupLogging(cfg.LogLevel, true)
	return cfg, nil
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database tables when missing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.Store != config.StorePostgres {
				return fmt.Errorf("migrate needs STORE=%s, got %s", config.StorePostgres, cfg.Store)
			}
			spinner, _ := pterm.DefaultSpinner.Start("Applying schema")
			db, err := database.Connect(cfg.DBDSN)
			if err != nil {
				spinner.Fail(err.Error())
				return err
			}
			defer db.Close()
			if err := database.Migrate(db); err != nil {
				spinner.Fail(err.Error())
				return err
			}
			spinner.Success("Schema up to date")
			return nil
		},
	}
}

type reportOptions struct {
	microgridID int64
	format      string
	outDir      string
	publish     bool
}

func newReportCmd() *cobra.Command {
	opts := &reportOptions{}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarise a microgrid's records and estimates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd, opts)
		},
	}
	cmd.Flags().Int64VarP(&opts.microgridID, "microgrid", "m", 0, "Microgrid id")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, json, pdf")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "Directory for json/pdf output (default: current directory)")
	cmd.Flags().BoolVar(&opts.publish, "publish", false, "Also hand the summary to the configured sinks")
	_ = cmd.MarkFlagRequired("microgrid")
	return cmd
}

func runReport(cmd *cobra.Command, opts *reportOptions) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	svcs, closeStore, err := platform.Services(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	sum, err := svcs.Reports.Build(cmd.Context(), opts.microgridID)
	if err != nil {
		return err
	}

	switch opts.format {
	case "text":
		printSummary(sum)
	case "json", "pdf":
		path, err := writeReport(sum, opts.format, opts.outDir)
		if err != nil {
			return err
		}
		pterm.Success.Printfln("Report written to %s", path)
	default:
		return fmt.Errorf("unknown format %q", opts.format)
	}

	if opts.publish {
		if err := svcs.Reports.Publish(cmd.Context(), sum); err != nil {
			pterm.Warning.Printfln("Some sinks failed: %v", err)
		} else {
			pterm.Info.Printfln("Report %s published", sum.ID)
		}
	}
	return nil
}

func printSummary(sum *report.Summary) {
	var buf bytes.Buffer
	_ = report.RenderText(&buf, sum)
	pterm.DefaultBox.WithTitle(fmt.Sprintf("Microgrid %d", sum.MicrogridID)).Println(buf.String())
	if sum.Deficit(1.0) {
		pterm.Warning.Println("Generation is below consumption")
	}
}

func writeReport(sum *report.Summary, format, dir string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("microgrid-%d-%s.%s", sum.MicrogridID, sum.LastPeriod, format))

	var data []byte
	switch format {
	case "json":
		raw, err := report.JSON(sum)
		if err != nil {
			return "", err
		}
		data = raw
	case "pdf":
		var buf bytes.Buffer
		if err := report.WritePDF(&buf, sum); err != nil {
			return "", err
		}
		data = buf.Bytes()
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
