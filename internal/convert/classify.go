package convert

import (
	"fmt"

	"vereteno/internal/psl"
)

var scalarDataTypes = map[string]DataType{
	"String":   DataTypeSingleLineText,
	"Int":      DataTypeWholeNumber,
	"Float":    DataTypeDecimalNumber,
	"Boolean":  DataTypeBoolean,
	"DateTime": DataTypeDateTime,
	"Json":     DataTypeJSON,
}

// Classify определяет категорию поля. Чистая функция, тотальная: либо ровно
// одна категория, либо ошибка "unsupported data type".
//
// Предикаты проверяются по порядку, побеждает первый — порядок и есть
// контракт приоритета. Сигналы пересекаются: DateTime с @default(now())
// структурно и DateTime, и CreatedAt, выигрывает более специфичный.
func (c *Converter) Classify(schema *psl.Schema, f *psl.Field) (DataType, error) {
	switch {
	case f.HasAttr(attrID):
		return DataTypeID, nil
	case f.HasAttr(attrRelation):
		return DataTypeLookup, nil
	case c.findModel(schema, f.Type) != nil:
		// неаннотированная ссылка на модель (в т.ч. обратная list-сторона)
		return DataTypeLookup, nil
	case schema.Enum(f.Type) != nil && !f.Array:
		return DataTypeOptionSet, nil
	case schema.Enum(f.Type) != nil && f.Array:
		return DataTypeMultiSelectOptionSet, nil
	case hasDefaultNow(f):
		// tie-break: поле с голым @default(now()) без @updatedAt — CreatedAt,
		// потому что CreatedAt проверяется раньше UpdatedAt
		return DataTypeCreatedAt, nil
	case f.HasAttr(attrUpdatedAt):
		return DataTypeUpdatedAt, nil
	}
	if dt, ok := scalarDataTypes[f.Type]; ok {
		return dt, nil
	}
	return "", fmt.Errorf("field %q: unsupported data type %q", f.Name, f.Type)
}

// hasDefaultNow — есть ли @default(now())
func hasDefaultNow(f *psl.Field) bool {
	def := f.Attr(attrDefault)
	if def == nil || len(def.Args) == 0 {
		return false
	}
	v := def.Args[0].Value
	return v.Kind == psl.ValFunc && v.Fn != nil && v.Fn.Name == fnNow
}

// defaultFn возвращает имя функции из @default(fn()), если она там есть
func defaultFn(f *psl.Field) (string, bool) {
	def := f.Attr(attrDefault)
	if def == nil || len(def.Args) == 0 {
		return "", false
	}
	v := def.Args[0].Value
	if v.Kind == psl.ValFunc && v.Fn != nil {
		return v.Fn.Name, true
	}
	return "", false
}

// findModel ищет модель по имени типа: точное совпадение либо совпадение
// по каноничной форме (до прохода переименования типов ссылка может быть
// ещё в «сыром» виде)
func (c *Converter) findModel(schema *psl.Schema, typ string) *psl.Model {
	if psl.IsScalar(typ) || schema.Enum(typ) != nil {
		return nil
	}
	if m := schema.Model(typ); m != nil {
		return m
	}
	canon := c.names.ModelName(typ)
	for _, m := range schema.Models {
		if m.Name == canon {
			return m
		}
	}
	return nil
}
