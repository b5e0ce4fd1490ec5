package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/terraincognita07/bloom/internal/db"
	"github.com/terraincognita07/bloom/internal/services"
	"gorm.io/gorm"
)

const (
	ExportFormatCSV  = "csv"
	ExportFormatJSON = "json"
)

// RunExportCommand writes one user's entries in the requested format.
func RunExportCommand(out io.Writer, database *gorm.DB, email string, format string, rawFrom string, rawTo string) error {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != ExportFormatCSV && format != ExportFormatJSON {
		return fmt.Errorf("unsupported export format %q", format)
	}
	exportRange, err := services.ParseExportRange(rawFrom, rawTo)
	if err != nil {
		return err
	}

	repositories := db.NewRepositories(database)
	user, err := findUserByEmail(repositories, email)
	if err != nil {
		return err
	}
	exportService := services.NewExportService(repositories.Entries)

	if format == ExportFormatJSON {
		return exportService.WriteJSON(out, user.ID, exportRange, time.Now().UTC())
	}
	return exportService.WriteCSV(out, user.ID, exportRange)
}
