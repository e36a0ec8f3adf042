package convert

import (
	"strings"
	"unicode"

	"vereteno/internal/psl"
)

// Normalize прогоняет четыре прохода нормализации имён. Порядок фиксирован
// и является требованием корректности: поздние проходы рассчитывают на
// каноничные формы ранних. Каждый проход — чистая трансформация
// (вход не мутируется), проходы не падают и идемпотентны.
func (c *Converter) Normalize(schema *psl.Schema) *psl.Schema {
	passes := []func(*psl.Schema) *psl.Schema{
		c.renameModels,
		c.renameFields,
		c.renameFieldTypes,
		c.normalizeIDFields,
	}
	out := schema
	for _, pass := range passes {
		out = pass(out)
	}
	return out
}

// renameModels — проход 1: имя модели невалидно, если оно во множественном
// числе, содержит "_", начинается не с заглавной или зарезервировано.
// Невалидное имя получает @@map(оригинал) и переписывается в PascalCase
// единственного числа.
func (c *Converter) renameModels(schema *psl.Schema) *psl.Schema {
	out := schema.Clone()
	for _, m := range out.Models {
		if !c.modelNameInvalid(m.Name) {
			continue
		}
		attachModelMap(m, m.Name)
		if canon := c.names.ModelName(m.Name); canon != m.Name {
			m.Name = canon
		}
	}
	return out
}

func (c *Converter) modelNameInvalid(name string) bool {
	return c.names.IsPlural(name) ||
		strings.Contains(name, "_") ||
		!startsUpper(name) ||
		c.names.IsReserved(name)
}

func (c *Converter) fieldNameInvalid(name string) bool {
	return strings.Contains(name, "_") || c.names.IsReserved(name)
}

// renameFields — проход 2: поля без @id с "_" или зарезервированным именем
// получают @map(оригинал) и camelCase. Enum-поля и fk-колонки пропускаем:
// их имена уже скоординированы со связью/значениями и должны остаться.
func (c *Converter) renameFields(schema *psl.Schema) *psl.Schema {
	out := schema.Clone()
	for _, m := range out.Models {
		for i := range m.Fields {
			f := &m.Fields[i]
			if f.HasAttr(attrID) {
				continue // первичные ключи нормализует проход 4
			}
			if !c.fieldNameInvalid(f.Name) {
				continue
			}
			if out.Enum(f.Type) != nil {
				continue
			}
			if holder, _ := isFKHolder(m, f); holder {
				continue
			}
			attachFieldMap(f, f.Name)
			if canon := c.names.FieldName(f.Name); canon != f.Name {
				f.Name = canon
			}
		}
	}
	return out
}

// renameFieldTypes — проход 3: ссылки на модели приводим к каноничному
// имени модели. Маппинг не нужен — меняется только тег типа в памяти,
// а не имя колонки.
func (c *Converter) renameFieldTypes(schema *psl.Schema) *psl.Schema {
	out := schema.Clone()
	for _, m := range out.Models {
		for i := range m.Fields {
			f := &m.Fields[i]
			if psl.IsScalar(f.Type) || out.Enum(f.Type) != nil {
				continue
			}
			if remote := c.findModel(out, f.Type); remote != nil {
				f.Type = remote.Name
			}
		}
	}
	return out
}

// normalizeIDFields — проход 4: поле "id" без @id уступает имя будущему
// первичному ключу и становится "<model>Id" с @map("id"); поле с @id под
// другим именем получает @map(оригинал) и становится "id".
func (c *Converter) normalizeIDFields(schema *psl.Schema) *psl.Schema {
	out := schema.Clone()
	for _, m := range out.Models {
		for i := range m.Fields {
			f := &m.Fields[i]
			switch {
			case !f.HasAttr(attrID) && f.Name == idFieldName:
				attachFieldMap(f, idFieldName)
				f.Name = c.names.FieldName(m.Name) + "Id"
			case f.HasAttr(attrID) && f.Name != idFieldName:
				attachFieldMap(f, f.Name)
				f.Name = idFieldName
			}
		}
	}
	return out
}

// attachFieldMap вешает @map(original), если маппинга ещё нет —
// повторный прогон нормализации не должен дублировать атрибуты
func attachFieldMap(f *psl.Field, original string) {
	if f.HasAttr(attrMap) {
		return
	}
	f.Attrs = append(f.Attrs, mapAttr(original, false))
}

func attachModelMap(m *psl.Model, original string) {
	if m.Attr(attrMap) != nil {
		return
	}
	m.Attrs = append(m.Attrs, mapAttr(original, true))
}

func mapAttr(original string, block bool) psl.Attribute {
	return psl.Attribute{
		Name:  attrMap,
		Block: block,
		Args:  []psl.Arg{{Value: psl.Value{Kind: psl.ValString, Str: original}}},
	}
}

func startsUpper(s string) bool {
	if s == "" {
		return false
	}
	return unicode.IsUpper(rune(s[0]))
}
