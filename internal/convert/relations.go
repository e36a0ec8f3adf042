package convert

import (
	"fmt"

	"vereteno/internal/psl"
)

// relationOwners возвращает поля модели, чей @relation(fields: [...])
// называет колонку col владельческой стороной
func relationOwners(m *psl.Model, col string) []*psl.Field {
	var out []*psl.Field
	for i := range m.Fields {
		f := &m.Fields[i]
		rel := f.Attr(attrRelation)
		if rel == nil {
			continue
		}
		fieldsArg := rel.Arg(relArgFields)
		if fieldsArg == nil {
			continue
		}
		for _, name := range fieldsArg.StringArgs() {
			if name == col {
				out = append(out, f)
				break
			}
		}
	}
	return out
}

// isFKHolder: поле является колонкой хранения внешнего ключа, если РОВНО одно
// соседнее поле владеет им через @relation(fields: [...]). Такие колонки не
// становятся самостоятельными полями сущности.
// conflict=true, когда на колонку претендуют несколько связей — это
// противоречие схемы; поле при этом холдером не считается.
func isFKHolder(m *psl.Model, f *psl.Field) (holder, conflict bool) {
	owners := relationOwners(m, f.Name)
	for _, o := range owners {
		if o.Name == f.Name {
			// поле не может владеть само собой
			return false, false
		}
	}
	switch len(owners) {
	case 0:
		return false, false
	case 1:
		return true, false
	default:
		return false, true
	}
}

// isBackReference: поле ссылается на модель, но либо без @relation, либо с
// @relation без владельческих колонок — это «многие»/обратная сторона связи.
// Прямо такие поля не эмитим: их пара целиком строится с владеющей стороны.
func (c *Converter) isBackReference(schema *psl.Schema, f *psl.Field) bool {
	if c.findModel(schema, f.Type) == nil {
		return false
	}
	rel := f.Attr(attrRelation)
	if rel == nil {
		return true
	}
	return rel.Arg(relArgFields) == nil
}

// relationName достаёт имя связи из @relation: позиционная строка или name:
func relationName(f *psl.Field) string {
	rel := f.Attr(attrRelation)
	if rel == nil {
		return ""
	}
	if a := rel.Arg("name"); a != nil && a.Value.Kind == psl.ValString {
		return a.Value.Str
	}
	if a := rel.Arg(""); a != nil && a.Value.Kind == psl.ValString {
		return a.Value.Str
	}
	return ""
}

// findRemoteRelatedModelAndField находит удалённую модель и парное поле для
// Lookup-поля f модели m. Ровно одно совпадение обязательно; ноль или
// несколько — фатальная ошибка с именами обеих моделей.
func (c *Converter) findRemoteRelatedModelAndField(schema *psl.Schema, m *psl.Model, f *psl.Field) (*psl.Model, *psl.Field, error) {
	remote := c.findModel(schema, f.Type)
	if remote == nil {
		return nil, nil, fmt.Errorf("model %q: field %q references unknown model %q", m.Name, f.Name, f.Type)
	}

	var candidates []*psl.Field
	if relName := relationName(f); relName != "" {
		// именованная связь: ищем поле с @relation того же имени
		for i := range remote.Fields {
			rf := &remote.Fields[i]
			if rf == f {
				continue // self-relation: собственное поле не пара
			}
			if relationName(rf) == relName {
				candidates = append(candidates, rf)
			}
		}
	} else {
		// неявная обратная ссылка: единственное поле без @relation,
		// типизированное текущей моделью
		for i := range remote.Fields {
			rf := &remote.Fields[i]
			if rf == f {
				continue
			}
			if rf.HasAttr(attrRelation) {
				continue
			}
			if c.findModel(schema, rf.Type) == m {
				candidates = append(candidates, rf)
			}
		}
	}

	switch len(candidates) {
	case 1:
		return remote, candidates[0], nil
	case 0:
		return nil, nil, fmt.Errorf("no related field found between %q and %q", m.Name, remote.Name)
	default:
		return nil, nil, fmt.Errorf("multiple related field candidates between %q and %q", m.Name, remote.Name)
	}
}
