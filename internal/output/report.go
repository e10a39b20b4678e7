package output

import (
	"github.com/fincalc/projection-engine/internal/domain"
)

// GenerateReport writes report in the named format to dir and returns the files written.
// The pseudo-format "all" writes the console report and the detailed CSV.
func GenerateReport(report *domain.ProjectionReport, format, dir string) ([]string, error) {
	var formatters []Formatter
	if NormalizeFormatName(format) == "all" {
		formatters = []Formatter{ConsoleFormatter{}, CSVDetailedExporter{}}
	} else if f := GetFormatterByName(format); f != nil {
		formatters = []Formatter{f}
	} else {
		return nil, unsupported(format)
	}

	files := make([]string, 0, len(formatters))
	for _, f := range formatters {
		name, err := WriteFormatted(f, report, dir, Extension(f))
		if err != nil {
			return files, err
		}
		files = append(files, name)
	}
	return files, nil
}
