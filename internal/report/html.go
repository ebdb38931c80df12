// Package report renders evaluation results into human-readable documents.
package report

import (
	"fmt"
	"html/template"
	"strings"

	"rubrica/internal/score"
)

const studentTemplate = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>Evaluation - {{.Student}}</title>
<style>
body { font-family: Arial, sans-serif; margin: 20px; background: #f5f5f5; }
.container { max-width: 900px; margin: 0 auto; background: white; padding: 20px; border-radius: 10px; }
h1 { color: #333; border-bottom: 3px solid #4CAF50; padding-bottom: 10px; }
.grade { font-size: 48px; font-weight: bold; text-align: center; color: {{.StatusColor}}; }
.status { font-size: 24px; text-align: center; padding: 10px; border-radius: 5px; background: {{.StatusBackground}}; }
table { width: 100%; border-collapse: collapse; margin: 20px 0; }
th, td { padding: 10px; border: 1px solid #ddd; text-align: left; }
th { background: #4CAF50; color: white; }
tr:nth-child(even) { background: #f9f9f9; }
.failure { color: #b00020; }
.summary { font-style: italic; text-align: center; }
.narrative { background: #f1f8ff; padding: 15px; border-radius: 5px; white-space: pre-wrap; }
</style>
</head>
<body>
<div class="container">
<h1>Project Evaluation</h1>
<p><strong>Student:</strong> {{.Student}}</p>
{{if .Result.Partner}}<p><strong>Partner:</strong> {{.Result.Partner}}</p>{{end}}
<p><strong>Repository:</strong> <a href="{{.Result.Repo.URL}}">{{.Result.Repo.URL}}</a></p>
{{if .Result.Repo.Commit}}<p><strong>Commit:</strong> {{.Result.Repo.Commit}}</p>{{end}}
<p><strong>Rubric:</strong> {{.Result.Rubric}}</p>
<p><strong>Date:</strong> {{.Date}}</p>
<div class="grade">{{printf "%.1f" .Result.Grade}} / 7.0</div>
<div class="status">{{.Result.Status}}</div>
{{if .Result.Failure}}<p class="failure">{{.Result.Failure}}</p>{{end}}
{{if .Result.Summary}}<p class="summary">{{.Result.Summary}}</p>{{end}}
<h2>Criteria</h2>
<table>
<tr><th>Criterion</th><th>Weight</th><th>Level</th><th>Justification</th></tr>
{{range .Result.Criteria}}
<tr><td>{{.Name}}</td><td>{{printf "%.0f%%" (pct .Weight)}}</td><td>{{printf "%.1f" .Level}}</td><td>{{.Justification}}</td></tr>
{{end}}
</table>
{{if .Result.Adjustments}}
<h2>Adjustments</h2>
<table>
<tr><th>Delta</th><th>Reason</th></tr>
{{range .Result.Adjustments}}
<tr><td>{{printf "%+.1f" .Delta}}</td><td>{{.Reason}}</td></tr>
{{end}}
</table>
{{end}}
{{if .Result.Strengths}}
<h2>Strengths</h2>
<ul>
{{range .Result.Strengths}}<li>{{.}}</li>
{{end}}</ul>
{{end}}
{{if .Result.Improvements}}
<h2>Areas for Improvement</h2>
<ul>
{{range .Result.Improvements}}<li>{{.}}</li>
{{end}}</ul>
{{end}}
{{if .Result.Recommendations}}
<h2>Recommendations</h2>
<ul>
{{range .Result.Recommendations}}<li>{{.}}</li>
{{end}}</ul>
{{end}}
{{if .Result.Narrative}}
<h2>Feedback</h2>
<div class="narrative">{{.Result.Narrative}}</div>
{{end}}
</div>
</body>
</html>
`

var studentPage = template.Must(template.New("student").Funcs(template.FuncMap{
	"pct": func(weight float64) float64 { return weight * 100 },
}).Parse(studentTemplate))

type studentView struct {
	Result score.EvaluationResult
}

func (v studentView) Student() string {
	if v.Result.Student != "" {
		return v.Result.Student
	}
	return "(unknown)"
}

func (v studentView) Date() string {
	return v.Result.EvaluatedAt.Format("2006-01-02 15:04")
}

func (v studentView) StatusColor() template.CSS {
	if v.Result.Passed && !v.Result.Failed {
		return "green"
	}
	return "red"
}

func (v studentView) StatusBackground() template.CSS {
	if v.Result.Passed && !v.Result.Failed {
		return "#d4edda"
	}
	return "#f8d7da"
}

// RenderHTML renders the per-student HTML report.
func RenderHTML(result score.EvaluationResult) (string, error) {
	var builder strings.Builder
	if err := studentPage.Execute(&builder, studentView{Result: result}); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return builder.String(), nil
}
