// integrity-check audits the workshop database: every part's quantity must
// equal the sum of its stock movements, and every order's active income must
// match its status and total. It exits 1 when a violation is found and 2 on
// operational errors.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"workshop/cmd"
	"workshop/internal/adapters/out/postgres/integrity"

	_ "github.com/lib/pq"
	"github.com/spf13/pflag"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var errViolations = errors.New("integrity violations found")

func main() {
	err := run(os.Args[1:], os.Stdout)
	switch {
	case err == nil:
	case errors.Is(err, errViolations):
		os.Exit(1)
	case errors.Is(err, pflag.ErrHelp):
	default:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
}

func run(args []string, out io.Writer) error {
	var (
		dsn     string
		format  string
		timeout time.Duration
	)
	flagSet := pflag.NewFlagSet("integrity-check", pflag.ContinueOnError)
	flagSet.StringVar(&dsn, "dsn", "", "database connection string (default: built from DB_* environment)")
	flagSet.StringVarP(&format, "format", "f", "text", "output format: text or json")
	flagSet.DurationVar(&timeout, "timeout", time.Minute, "give up after this long")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if format != "text" && format != "json" {
		return fmt.Errorf("unknown format %q", format)
	}

	if dsn == "" {
		cfg, err := cmd.LoadConfig()
		if err != nil {
			return err
		}
		dsn = cfg.DSN()
	}

	db, err := gorm.Open(postgresdriver.New(postgresdriver.Config{DriverName: "postgres", DSN: dsn}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	report, err := integrity.NewChecker(db).Run(ctx)
	if err != nil {
		return err
	}

	if err = render(out, format, report); err != nil {
		return err
	}
	if !report.OK() {
		return errViolations
	}
	return nil
}

func render(out io.Writer, format string, report integrity.Report) error {
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Fprintf(out, "checked %d parts and %d orders\n", report.PartsChecked, report.OrdersChecked)
	for _, v := range report.Violations {
		fmt.Fprintf(out, "%-16s %s  %s\n", v.Rule, v.EntityID, v.Detail)
	}
	if report.OK() {
		fmt.Fprintln(out, "OK")
	} else {
		fmt.Fprintf(out, "%d violations\n", len(report.Violations))
	}
	return nil
}
