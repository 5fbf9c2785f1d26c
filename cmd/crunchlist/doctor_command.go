package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"crunchlist/internal/logging"
	"crunchlist/internal/preflight"
	"crunchlist/internal/store"
)

type doctorReport struct {
	Checks   []preflight.Result    `json:"checks"`
	Database *store.DatabaseHealth `json:"database,omitempty"`
	Error    string                `json:"error,omitempty"`
}

func (r doctorReport) healthy() bool {
	for _, c := range r.Checks {
		if !c.Passed {
			return false
		}
	}
	if r.Error != "" || r.Database == nil {
		return false
	}
	db := r.Database
	return db.DatabaseReadable && db.TableExists && db.CatalogReadable && db.IntegrityCheck
}

var errDoctorFailed = errors.New("one or more checks failed")

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check directories and catalog database health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			report := doctorReport{Checks: preflight.RunAll(cfg)}
			if st, openErr := store.Open(cfg, store.WithLogger(logger)); openErr != nil {
				report.Error = openErr.Error()
			} else {
				health, healthErr := st.CheckHealth(commandRunContext(cmd))
				report.Database = &health
				if healthErr != nil {
					report.Error = healthErr.Error()
				}
				if closeErr := st.Close(); closeErr != nil {
					logger.Warn("close catalog failed", logging.Error(closeErr))
				}
			}

			if ctx.JSONMode() {
				if err := writeJSON(cmd, report); err != nil {
					return err
				}
			} else {
				writeDoctorReport(cmd, report)
			}
			if !report.healthy() {
				return errDoctorFailed
			}
			return nil
		},
	}
}

func writeDoctorReport(cmd *cobra.Command, report doctorReport) {
	out := cmd.OutOrStdout()
	colorize := isTerminal(out)
	line := func(name string, level checkLevel, detail string) {
		fmt.Fprintln(out, formatCheck(name, level, detail, colorize))
	}

	fmt.Fprintln(out, formatHeading("Directories", colorize))
	for _, check := range report.Checks {
		line(check.Name, levelFor(check.Passed), check.Detail)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, formatHeading("Catalog database", colorize))
	if report.Database == nil {
		line("Database", checkFail, report.Error)
		return
	}
	db := report.Database
	line("Path", checkInfo, db.DBPath)
	line("Readable", levelFor(db.DatabaseReadable), yesNo(db.DatabaseReadable))
	line("Schema version", checkInfo, db.SchemaVersion)
	line("kv table present", levelFor(db.TableExists), yesNo(db.TableExists))
	catalogLevel := levelFor(db.CatalogReadable)
	if !db.CatalogReadable {
		// Reads fall back to an empty catalog, so this is recoverable.
		catalogLevel = checkWarn
	}
	line("Catalog readable", catalogLevel, yesNo(db.CatalogReadable))
	line("Integrity check", levelFor(db.IntegrityCheck), yesNo(db.IntegrityCheck))
	line("Entries", checkInfo, fmt.Sprint(db.TotalEntries))
	if report.Error != "" {
		line("Error", checkFail, report.Error)
	}
}
