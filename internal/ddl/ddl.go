// Package ddl — демонстрационный потребитель дескрипторов: генерирует
// postgres-DDL текстом. К базе не подключается и ничего не исполняет.
package ddl

import (
	"fmt"
	"strings"

	"vereteno/internal/convert"
	"vereteno/internal/names"
)

// safeTable: имя таблицы — множественное число в нижнем регистре,
// зарезервированные имена прячем за префиксом
func safeTable(n *names.Service, entity string) string {
	t := strings.ToLower(n.Plural(entity))
	if n.IsReserved(t) {
		t = "e_" + t
	}
	return t
}

func sqlIdent(s string) string { return `"` + strings.ToLower(s) + `"` }

func columnType(fd *convert.FieldDescriptor) (string, bool) {
	switch fd.DataType {
	case convert.DataTypeID:
		if fd.Properties["idType"] == "AUTO_INCREMENT" {
			return "bigserial", true
		}
		return "text", true
	case convert.DataTypeSingleLineText, convert.DataTypeOptionSet:
		return "text", true
	case convert.DataTypeWholeNumber:
		return "bigint", true
	case convert.DataTypeDecimalNumber:
		return "numeric", true
	case convert.DataTypeBoolean:
		return "boolean", true
	case convert.DataTypeDateTime, convert.DataTypeCreatedAt, convert.DataTypeUpdatedAt:
		return "timestamp with time zone", true
	case convert.DataTypeJSON, convert.DataTypeMultiSelectOptionSet:
		return "jsonb", true
	default:
		return "", false
	}
}

// GenerateDDL возвращает карту ключ -> SQL: сначала таблицы и уникальные
// индексы, затем внешние ключи отдельной фазой (таблицы уже существуют).
// DDL идемпотентен (create ... if not exists).
func GenerateDDL(entities []convert.EntityDescriptor, n *names.Service) (map[string]string, error) {
	out := make(map[string]string, 2)

	// id сущности -> имя таблицы, для FK второй фазы
	tableByID := make(map[string]string, len(entities))
	for i := range entities {
		tableByID[entities[i].ID] = safeTable(n, entities[i].Name)
	}

	type fkStmt struct {
		tbl, idxName, col, refTbl string
	}
	var fks []fkStmt

	var phaseA strings.Builder
	for i := range entities {
		e := &entities[i]
		tbl := safeTable(n, e.Name)

		var cols []string
		for j := range e.Fields {
			f := &e.Fields[j]

			if f.DataType == convert.DataTypeLookup {
				// физическую колонку получает только одиночная владеющая
				// сторона; списки живут на другой стороне связи
				multi, _ := f.Properties["allowMultipleSelection"].(bool)
				if multi {
					continue
				}
				refID, _ := f.Properties["relatedEntityId"].(string)
				refTbl, ok := tableByID[refID]
				if !ok {
					return nil, fmt.Errorf("%s.%s: unknown related entity %q", e.Name, f.Name, refID)
				}
				col := strings.ToLower(f.Name) + "_id"
				null := "null"
				if f.Required {
					null = "not null"
				}
				cols = append(cols, fmt.Sprintf("%s text %s", sqlIdent(col), null))
				fks = append(fks, fkStmt{
					tbl:     tbl,
					idxName: strings.ToLower(e.Name + "_" + f.Name + "_fk"),
					col:     col,
					refTbl:  refTbl,
				})
				continue
			}

			typ, ok := columnType(f)
			if !ok {
				return nil, fmt.Errorf("%s.%s: no column mapping for %s", e.Name, f.Name, f.DataType)
			}
			null := "null"
			if f.Required {
				null = "not null"
			}
			if f.DataType == convert.DataTypeID {
				cols = append(cols, fmt.Sprintf("%s %s primary key", sqlIdent(f.Name), typ))
				continue
			}
			cols = append(cols, fmt.Sprintf("%s %s %s", sqlIdent(f.Name), typ, null))
		}

		fmt.Fprintf(&phaseA, "create table if not exists %s (\n  %s\n);\n",
			sqlIdent(tbl), strings.Join(cols, ",\n  "))

		for j := range e.Fields {
			f := &e.Fields[j]
			if f.Unique && f.DataType != convert.DataTypeID && f.DataType != convert.DataTypeLookup {
				fmt.Fprintf(&phaseA, "create unique index if not exists %s_%s_uq on %s(%s);\n",
					strings.ToLower(e.Name), strings.ToLower(f.Name), sqlIdent(tbl), sqlIdent(f.Name))
			}
		}
	}
	out["000_tables"] = phaseA.String()

	var phaseB strings.Builder
	for _, fk := range fks {
		fmt.Fprintf(&phaseB,
			"alter table %s add constraint %s foreign key (%s) references %s(id);\n",
			sqlIdent(fk.tbl), fk.idxName, sqlIdent(fk.col), sqlIdent(fk.refTbl))
	}
	if phaseB.Len() > 0 {
		out["200_foreign_keys"] = phaseB.String()
	}
	return out, nil
}
