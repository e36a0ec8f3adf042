package convert

import (
	"fmt"
	"strings"

	"vereteno/internal/psl"
)

type IssueLevel string

const (
	LevelError   IssueLevel = "error"
	LevelWarning IssueLevel = "warning"
)

// коды проблем структурной валидации
const (
	CodeNoModels           = "no_models"
	CodeFKFieldName        = "fk_field_name"
	CodeReservedWord       = "reserved_word"
	CodeRelationFKConflict = "relation_fk_conflict"
)

// SchemaIssue — одно структурное замечание по схеме.
// Warning — автоисправимо нормализатором, Error — чинить в исходнике.
type SchemaIssue struct {
	Level   IssueLevel `json:"level"`
	Code    string     `json:"code"`
	Model   string     `json:"model,omitempty"`
	Field   string     `json:"field,omitempty"`
	Message string     `json:"message"`
}

// ValidateSchema проверяет схему (сырую или нормализованную) на соблюдение
// соглашений об именовании и минимальные структурные требования.
// Пустой результат — замечаний нет.
func (c *Converter) ValidateSchema(schema *psl.Schema) []SchemaIssue {
	var issues []SchemaIssue

	if len(schema.Models) == 0 {
		issues = append(issues, SchemaIssue{
			Level:   LevelError,
			Code:    CodeNoModels,
			Message: "a schema must contain at least one model.",
		})
		return issues
	}

	for _, m := range schema.Models {
		if c.names.IsReserved(m.Name) {
			issues = append(issues, SchemaIssue{
				Level:   LevelWarning,
				Code:    CodeReservedWord,
				Model:   m.Name,
				Message: fmt.Sprintf("model name %q is a reserved word (auto-corrected on conversion)", m.Name),
			})
		}
		for i := range m.Fields {
			f := &m.Fields[i]
			if c.names.IsReserved(f.Name) {
				issues = append(issues, SchemaIssue{
					Level:   LevelWarning,
					Code:    CodeReservedWord,
					Model:   m.Name,
					Field:   f.Name,
					Message: fmt.Sprintf("field name %q is a reserved word (auto-corrected on conversion)", f.Name),
				})
			}

			holder, conflict := isFKHolder(m, f)
			if conflict {
				issues = append(issues, SchemaIssue{
					Level:   LevelError,
					Code:    CodeRelationFKConflict,
					Model:   m.Name,
					Field:   f.Name,
					Message: fmt.Sprintf("multiple relations claim column %q as their foreign key", f.Name),
				})
			}
			if holder && !fkNameOK(c, f.Name) {
				issues = append(issues, SchemaIssue{
					Level:   LevelError,
					Code:    CodeFKFieldName,
					Model:   m.Name,
					Field:   f.Name,
					Message: fmt.Sprintf("foreign key field %q must be camelCase and end with %q", f.Name, "Id"),
				})
			}
		}
	}
	return issues
}

// fkNameOK: fk-колонка должна быть camelCase и оканчиваться на Id
func fkNameOK(c *Converter, name string) bool {
	return strings.HasSuffix(name, "Id") && c.names.FieldName(name) == name
}
