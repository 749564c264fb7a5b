package formatter

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/gnolang/qcheck/runner"
)

const tabWidth = 8

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	validStyle   = color.New(color.FgGreen, color.Bold)
	ruleStyle    = color.New(color.FgYellow, color.Bold)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	lineStyle    = color.New(color.FgHiBlue, color.Bold)
	messageStyle = color.New(color.FgRed, color.Bold)
	noteStyle    = color.New(color.FgGreen, color.Bold)
)

// reportFormatter is the interface that wraps the ReportTemplate method.
type reportFormatter interface {
	ReportTemplate() string
}

func getReportFormatter(report runner.Report) reportFormatter {
	if report.Result.IsValid {
		return &ValidReportFormatter{}
	}
	return &InvalidReportFormatter{}
}

// GenerateFormattedReport formats reports into a human-readable string.
func GenerateFormattedReport(reports []runner.Report) string {
	var builder strings.Builder
	for _, report := range reports {
		builder.WriteString(buildReport(report, getReportFormatter(report)))
	}
	return builder.String()
}

/***** Report Formatter Builder *****/

type ReportData struct {
	Source        string
	Line          int
	Column        int
	Query         string
	Rule          string
	Message       string
	Detail        string
	ProcessedText string
}

func buildReport(report runner.Report, formatter reportFormatter) string {
	data := ReportData{
		Source:        report.Source,
		Line:          report.Line,
		Column:        byteOffsetToColumn(report.Query, report.Result.Position),
		Query:         report.Query,
		Rule:          report.Result.Rule,
		Message:       report.Result.ErrorMessage,
		Detail:        report.Result.Detail,
		ProcessedText: report.Result.ProcessedText,
	}

	funcMap := template.FuncMap{
		"header":    header,
		"location":  location,
		"snippet":   querySnippet,
		"pointer":   pointerAndMessage,
		"note":      note,
		"processed": processed,
	}

	tmpl := template.Must(template.New("report").Funcs(funcMap).Parse(formatter.ReportTemplate()))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Sprintf("Error formatting report: %v", err)
	}
	return buf.String()
}

// utils functions used in the text templates

func header(valid bool, rule string) string {
	if valid {
		return validStyle.Sprint("valid")
	}
	return errorStyle.Sprint("error: ") + ruleStyle.Sprint(rule)
}

func location(source string, line int, column int) string {
	loc := fmt.Sprintf("%s:%d", source, line)
	if column > 0 {
		loc += fmt.Sprintf(":%d", column)
	}
	return lineStyle.Sprint(" --> ") + fileStyle.Sprint(loc)
}

func querySnippet(query string) string {
	return lineStyle.Sprint("  |\n") + lineStyle.Sprint("  | ") + expandTabs(query)
}

func pointerAndMessage(query string, column int, message string) string {
	endString := lineStyle.Sprint("  | ")
	if column > 0 {
		endString += strings.Repeat(" ", calculateVisualColumn(query, column))
		endString += messageStyle.Sprint("^ ")
	}
	return endString + messageStyle.Sprint(message)
}

func note(detail string) string {
	if detail == "" {
		return ""
	}
	return lineStyle.Sprint("  = ") + noteStyle.Sprint("note: ") + detail
}

func processed(text string) string {
	var endString strings.Builder
	endString.WriteString(noteStyle.Sprint("Processed Text:"))
	endString.WriteString("\n")
	endString.WriteString(text)
	if !strings.HasSuffix(text, "\n") {
		endString.WriteString("\n")
	}
	return endString.String()
}

// byteOffsetToColumn converts a byte offset into a 1-based rune column.
// It returns 0 when the offset is unknown or outside the query.
func byteOffsetToColumn(query string, offset int) int {
	if offset < 0 || offset > len(query) {
		return 0
	}
	return utf8.RuneCountInString(query[:offset]) + 1
}

// calculateVisualColumn returns the number of cells before the given 1-based
// rune column, taking tab characters into account.
func calculateVisualColumn(line string, column int) int {
	visualColumn := 0
	i := 0
	for _, ch := range line {
		i++
		if i >= column {
			break
		}
		if ch == '\t' {
			visualColumn += tabWidth - (visualColumn % tabWidth)
		} else {
			visualColumn++
		}
	}
	return visualColumn
}

// expandTabs replaces tab characters with spaces, considering a tab width of 8
func expandTabs(line string) string {
	var expanded strings.Builder
	column := 0
	for _, ch := range line {
		if ch == '\t' {
			spaceCount := tabWidth - (column % tabWidth)
			expanded.WriteString(strings.Repeat(" ", spaceCount))
			column += spaceCount
		} else {
			expanded.WriteRune(ch)
			column++
		}
	}
	return expanded.String()
}
