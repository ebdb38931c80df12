package runner

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Student is one roster entry: a student (optionally working in a pair)
// and the repository to grade.
type Student struct {
	Name    string
	Partner string
	RepoURL string
}

// LoadRoster reads a batch roster CSV. The header row is required and must
// contain "student" and "repository" columns ("partner" is optional, extra
// columns are ignored). Rows missing a student or repository are skipped and
// reported as warnings rather than failing the batch.
func LoadRoster(path string) ([]Student, []string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open roster: %w", err)
	}
	defer file.Close()
	return parseRoster(file)
}

func parseRoster(r io.Reader) ([]Student, []string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read roster header: %w", err)
	}
	columns := map[string]int{}
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	studentCol, ok := columns["student"]
	if !ok {
		return nil, nil, fmt.Errorf("roster is missing a %q column", "student")
	}
	repoCol, ok := columns["repository"]
	if !ok {
		return nil, nil, fmt.Errorf("roster is missing a %q column", "repository")
	}
	partnerCol, hasPartner := columns["partner"]

	var students []Student
	var warnings []string
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		student := Student{
			Name:    field(record, studentCol),
			RepoURL: field(record, repoCol),
		}
		if hasPartner {
			student.Partner = field(record, partnerCol)
		}
		if student.Name == "" || student.RepoURL == "" {
			warnings = append(warnings, fmt.Sprintf("line %d: missing student or repository, skipped", line))
			continue
		}
		students = append(students, student)
	}
	return students, warnings, nil
}

func field(record []string, index int) string {
	if index < 0 || index >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[index])
}
