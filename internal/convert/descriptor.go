package convert

// DataType — семантическая категория поля. Ровно одна на поле.
type DataType string

const (
	DataTypeID                   DataType = "Id"
	DataTypeLookup               DataType = "Lookup"
	DataTypeOptionSet            DataType = "OptionSet"
	DataTypeMultiSelectOptionSet DataType = "MultiSelectOptionSet"
	DataTypeCreatedAt            DataType = "CreatedAt"
	DataTypeUpdatedAt            DataType = "UpdatedAt"
	DataTypeSingleLineText       DataType = "SingleLineText"
	DataTypeWholeNumber          DataType = "WholeNumber"
	DataTypeDecimalNumber        DataType = "DecimalNumber"
	DataTypeBoolean              DataType = "Boolean"
	DataTypeDateTime             DataType = "DateTime"
	DataTypeJSON                 DataType = "Json"
)

// EntityDescriptor — выходное описание сущности для persistence-слоя
type EntityDescriptor struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	DisplayName       string            `json:"displayName"`
	PluralDisplayName string            `json:"pluralDisplayName"`
	CustomAttributes  string            `json:"customAttributes,omitempty"`
	Fields            []FieldDescriptor `json:"fields"`
}

// FieldDescriptor — выходное описание поля. Related*-поля заполняются
// только для Lookup.
type FieldDescriptor struct {
	Name             string         `json:"name"`
	DisplayName      string         `json:"displayName"`
	DataType         DataType       `json:"dataType"`
	Required         bool           `json:"required"`
	Unique           bool           `json:"unique"`
	CustomAttributes string         `json:"customAttributes,omitempty"`
	Properties       map[string]any `json:"properties"`

	RelatedFieldName                   string `json:"relatedFieldName,omitempty"`
	RelatedFieldDisplayName            string `json:"relatedFieldDisplayName,omitempty"`
	RelatedFieldAllowMultipleSelection bool   `json:"relatedFieldAllowMultipleSelection,omitempty"`
}

// OptionSetOption — одна опция enum-поля
type OptionSetOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// имена атрибутов, которые конвертер интерпретирует сам
const (
	attrID        = "id"
	attrDefault   = "default"
	attrUnique    = "unique"
	attrRelation  = "relation"
	attrUpdatedAt = "updatedAt"
	attrMap       = "map"

	relArgFields     = "fields"
	relArgReferences = "references"

	fnNow = "now"

	idFieldName = "id"
)

// idType-генераторы для Id-полей
const (
	idTypeCUID     = "CUID"
	idTypeUUID     = "UUID"
	idTypeAutoIncr = "AUTO_INCREMENT"

	fnAutoincrement = "autoincrement"
	fnUUID          = "uuid"
	fnCUID          = "cuid"
)

// атрибуты, потреблённые конвертером — в customAttributes не попадают.
// @map/@@map остаются: маппинг на исходное имя хранения нужен потребителю.
var internalAttrs = map[string]struct{}{
	attrID: {}, attrDefault: {}, attrUnique: {}, attrRelation: {}, attrUpdatedAt: {},
}
