package convert

import (
	"fmt"
	"strings"

	"vereteno/internal/psl"
)

// buildEntities обходит нормализованную схему и собирает по дескриптору
// сущности на модель в порядке объявления. Id сущностей назначаются ДО
// обработки полей: Lookup-поля других сущностей ссылаются на них.
func (c *Converter) buildEntities(schema *psl.Schema) ([]EntityDescriptor, error) {
	entities := make([]EntityDescriptor, 0, len(schema.Models))
	index := make(map[string]int, len(schema.Models)) // имя модели -> позиция
	for _, m := range schema.Models {
		index[m.Name] = len(entities)
		entities = append(entities, EntityDescriptor{
			ID:                c.newID(),
			Name:              m.Name,
			DisplayName:       c.names.DisplayName(m.Name),
			PluralDisplayName: c.names.PluralDisplayName(m.Name),
			CustomAttributes:  renderCustomAttrs(modelAttrPtrs(m)),
			Fields:            []FieldDescriptor{},
		})
	}

	for _, m := range schema.Models {
		for i := range m.Fields {
			f := &m.Fields[i]

			if holder, conflict := isFKHolder(m, f); holder {
				c.logf("skip %s.%s: foreign key storage column", m.Name, f.Name)
				continue
			} else if conflict {
				// противоречие схемы: колонкой владеют несколько связей.
				// Не валим конвертацию — конфликт отдаёт валидатор.
				c.logf("conflict: multiple relations claim column %s.%s", m.Name, f.Name)
			}
			if c.isBackReference(schema, f) {
				// обратная сторона связи строится с владеющей стороны
				continue
			}

			dt, err := c.Classify(schema, f)
			if err != nil {
				return nil, fmt.Errorf("model %q: %w", m.Name, err)
			}
			fd, err := c.buildField(schema, m, f, dt, entities, index)
			if err != nil {
				return nil, err
			}
			entities[index[m.Name]].Fields = append(entities[index[m.Name]].Fields, *fd)

			if dt == DataTypeLookup {
				// парное поле на удалённой сущности — целиком отсюда
				if err := c.attachRemoteLookup(schema, m, f, entities, index); err != nil {
					return nil, err
				}
			}
		}
	}
	return entities, nil
}

// buildField собирает дескриптор одного поля: общая форма плюс
// категорийный payload в Properties
func (c *Converter) buildField(schema *psl.Schema, m *psl.Model, f *psl.Field, dt DataType, entities []EntityDescriptor, index map[string]int) (*FieldDescriptor, error) {
	fd := &FieldDescriptor{
		Name:             f.Name,
		DisplayName:      c.names.DisplayName(f.Name),
		DataType:         dt,
		Required:         !f.Optional,
		Unique:           f.HasAttr(attrUnique),
		CustomAttributes: renderCustomAttrs(fieldAttrPtrs(f)),
		Properties:       map[string]any{},
	}

	switch dt {
	case DataTypeSingleLineText:
		fd.Properties["maxLength"] = 256
	case DataTypeWholeNumber:
		fd.Properties["minimumValue"] = 0
		fd.Properties["maximumValue"] = 99999999999
	case DataTypeDecimalNumber:
		fd.Properties["minimumValue"] = 0
		fd.Properties["maximumValue"] = 99999999999
		fd.Properties["precision"] = 8
	case DataTypeDateTime:
		fd.Properties["timeZone"] = "localTime"
		fd.Properties["dateOnly"] = false
	case DataTypeID:
		fd.Properties["idType"] = idTypeFor(f)
	case DataTypeOptionSet, DataTypeMultiSelectOptionSet:
		opts, err := enumOptions(schema, f)
		if err != nil {
			return nil, fmt.Errorf("model %q: %w", m.Name, err)
		}
		fd.Properties["options"] = opts
	case DataTypeLookup:
		remote, remoteField, err := c.findRemoteRelatedModelAndField(schema, m, f)
		if err != nil {
			return nil, err
		}
		ri, ok := index[remote.Name]
		if !ok {
			return nil, fmt.Errorf("entity %q not found for field %s.%s", remote.Name, m.Name, f.Name)
		}
		fd.RelatedFieldName = remoteField.Name
		fd.RelatedFieldDisplayName = c.names.DisplayName(remoteField.Name)
		fd.RelatedFieldAllowMultipleSelection = remoteField.Array
		fd.Properties["relatedEntityId"] = entities[ri].ID
		fd.Properties["allowMultipleSelection"] = f.Array
		fd.Properties["fkHolder"] = nil
	}
	// Boolean, Json, CreatedAt, UpdatedAt — только общие свойства
	return fd, nil
}

// attachRemoteLookup дописывает удалённой сущности Lookup-дескриптор
// обратной стороны связи
func (c *Converter) attachRemoteLookup(schema *psl.Schema, m *psl.Model, f *psl.Field, entities []EntityDescriptor, index map[string]int) error {
	remote, remoteField, err := c.findRemoteRelatedModelAndField(schema, m, f)
	if err != nil {
		return err
	}
	ri, ok := index[remote.Name]
	if !ok {
		return fmt.Errorf("entity %q not found for field %s.%s", remote.Name, m.Name, f.Name)
	}
	mi := index[m.Name]
	fd := FieldDescriptor{
		Name:                               remoteField.Name,
		DisplayName:                        c.names.DisplayName(remoteField.Name),
		DataType:                           DataTypeLookup,
		Required:                           !remoteField.Optional,
		Unique:                             remoteField.HasAttr(attrUnique),
		CustomAttributes:                   renderCustomAttrs(fieldAttrPtrs(remoteField)),
		RelatedFieldName:                   f.Name,
		RelatedFieldDisplayName:            c.names.DisplayName(f.Name),
		RelatedFieldAllowMultipleSelection: f.Array,
		Properties: map[string]any{
			"relatedEntityId":        entities[mi].ID,
			"allowMultipleSelection": remoteField.Array,
			"fkHolder":               nil,
		},
	}
	entities[ri].Fields = append(entities[ri].Fields, fd)
	return nil
}

// idTypeFor выводит генератор id: из функции в @default, иначе из
// скалярного тега поля; нераспознанное — CUID
func idTypeFor(f *psl.Field) string {
	if fn, ok := defaultFn(f); ok {
		switch fn {
		case fnAutoincrement:
			return idTypeAutoIncr
		case fnUUID:
			return idTypeUUID
		case fnCUID:
			return idTypeCUID
		default:
			return idTypeCUID
		}
	}
	switch f.Type {
	case "Int":
		return idTypeAutoIncr
	case "String":
		return idTypeCUID
	default:
		return idTypeCUID
	}
}

// enumOptions собирает options для OptionSet/MultiSelectOptionSet.
// Отсутствующий enum — фатально.
func enumOptions(schema *psl.Schema, f *psl.Field) ([]OptionSetOption, error) {
	e := schema.Enum(f.Type)
	if e == nil {
		return nil, fmt.Errorf("field %q: enum %q not found", f.Name, f.Type)
	}
	opts := make([]OptionSetOption, 0, len(e.Values))
	for _, v := range e.Values {
		opts = append(opts, OptionSetOption{Label: v, Value: v})
	}
	return opts, nil
}

// renderCustomAttrs сериализует «оставшиеся» атрибуты: всё, что конвертер
// не потребил сам. Пустые рендеры отбрасываются.
func renderCustomAttrs(attrs []*psl.Attribute) string {
	var parts []string
	for _, a := range attrs {
		if _, internal := internalAttrs[a.Name]; internal {
			continue
		}
		if r := psl.RenderAttribute(a); r != "" {
			parts = append(parts, r)
		}
	}
	return strings.Join(parts, " ")
}

func fieldAttrPtrs(f *psl.Field) []*psl.Attribute {
	out := make([]*psl.Attribute, 0, len(f.Attrs))
	for i := range f.Attrs {
		out = append(out, &f.Attrs[i])
	}
	return out
}

func modelAttrPtrs(m *psl.Model) []*psl.Attribute {
	out := make([]*psl.Attribute, 0, len(m.Attrs))
	for i := range m.Attrs {
		out = append(out, &m.Attrs[i])
	}
	return out
}
