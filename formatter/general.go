package formatter

type InvalidReportFormatter struct{}

func (f *InvalidReportFormatter) ReportTemplate() string {
	return `{{header false .Rule}}
{{location .Source .Line .Column}}
{{snippet .Query}}
{{pointer .Query .Column .Message}}
{{- if .Detail }}
{{note .Detail}}
{{- end }}

`
}

type ValidReportFormatter struct{}

func (f *ValidReportFormatter) ReportTemplate() string {
	return `{{header true ""}}
{{location .Source .Line 0}}
{{snippet .Query}}
{{processed .ProcessedText}}
`
}
