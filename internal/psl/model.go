package psl

// Schema — корень дерева деклараций: модели и enum'ы в порядке объявления.
// Порядок моделей важен — он задаёт порядок сущностей на выходе конвертера.
type Schema struct {
	Models []*Model
	Enums  []*Enum
}

// Model описывает объявленный тип записи
type Model struct {
	Name   string
	Fields []Field
	Attrs  []Attribute // блочные @@-атрибуты
}

// Field описывает поле модели
type Field struct {
	Name     string
	Type     string // скалярный тег, имя модели или имя enum'а
	Optional bool   // суффикс "?"
	Array    bool   // суффикс "[]"
	Attrs    []Attribute
}

// Enum — закрытый набор строковых значений
type Enum struct {
	Name   string
	Values []string
}

// Attribute — метаданные модели или поля (@id, @default(...), @@map(...) и т.д.)
type Attribute struct {
	Name  string
	Block bool // true для блочных @@-атрибутов
	Args  []Arg
}

// Arg — аргумент атрибута: позиционный (Key == "") или key: value
type Arg struct {
	Key   string
	Value Value
}

type ValueKind int

const (
	ValString ValueKind = iota
	ValNumber
	ValBool
	ValIdent
	ValFunc
	ValList
)

// Value — значение аргумента. Str хранит лексему для String/Number/Bool/Ident.
type Value struct {
	Kind ValueKind
	Str  string
	Fn   *FnCall
	List []Value
}

// FnCall — маркер вызова функции в аргументе (now(), cuid(), autoincrement())
type FnCall struct {
	Name string
	Args []Arg
}

// встроенные скалярные теги
var scalarTypes = map[string]struct{}{
	"String": {}, "Int": {}, "Float": {}, "Boolean": {}, "DateTime": {}, "Json": {},
}

func IsScalar(typ string) bool { _, ok := scalarTypes[typ]; return ok }

// Model ищет модель по точному имени
func (s *Schema) Model(name string) *Model {
	for _, m := range s.Models {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Enum ищет enum по точному имени
func (s *Schema) Enum(name string) *Enum {
	for _, e := range s.Enums {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// Field ищет поле по имени
func (m *Model) Field(name string) *Field {
	for i := range m.Fields {
		if m.Fields[i].Name == name {
			return &m.Fields[i]
		}
	}
	return nil
}

// Attr возвращает первый атрибут с данным именем
func (f *Field) Attr(name string) *Attribute {
	for i := range f.Attrs {
		if f.Attrs[i].Name == name {
			return &f.Attrs[i]
		}
	}
	return nil
}

func (f *Field) HasAttr(name string) bool { return f.Attr(name) != nil }

// Attr возвращает первый блочный атрибут модели с данным именем
func (m *Model) Attr(name string) *Attribute {
	for i := range m.Attrs {
		if m.Attrs[i].Name == name {
			return &m.Attrs[i]
		}
	}
	return nil
}

// Arg возвращает аргумент по ключу ("" — первый позиционный)
func (a *Attribute) Arg(key string) *Arg {
	for i := range a.Args {
		if a.Args[i].Key == key {
			return &a.Args[i]
		}
	}
	return nil
}

// StringArgs разворачивает значение аргумента в список строк:
// одиночный ident/string → [x], список → все элементы.
func (a *Arg) StringArgs() []string {
	switch a.Value.Kind {
	case ValList:
		out := make([]string, 0, len(a.Value.List))
		for _, v := range a.Value.List {
			out = append(out, v.Str)
		}
		return out
	case ValString, ValIdent:
		return []string{a.Value.Str}
	}
	return nil
}

// Clone делает глубокую копию схемы — проходы нормализации работают
// функционально и не трогают исходное дерево.
func (s *Schema) Clone() *Schema {
	out := &Schema{}
	for _, m := range s.Models {
		cm := &Model{Name: m.Name, Attrs: cloneAttrs(m.Attrs)}
		for _, f := range m.Fields {
			cf := f
			cf.Attrs = cloneAttrs(f.Attrs)
			cm.Fields = append(cm.Fields, cf)
		}
		out.Models = append(out.Models, cm)
	}
	for _, e := range s.Enums {
		ce := &Enum{Name: e.Name, Values: append([]string(nil), e.Values...)}
		out.Enums = append(out.Enums, ce)
	}
	return out
}

func cloneAttrs(attrs []Attribute) []Attribute {
	if attrs == nil {
		return nil
	}
	out := make([]Attribute, len(attrs))
	for i, a := range attrs {
		out[i] = Attribute{Name: a.Name, Block: a.Block, Args: cloneArgs(a.Args)}
	}
	return out
}

func cloneArgs(args []Arg) []Arg {
	if args == nil {
		return nil
	}
	out := make([]Arg, len(args))
	for i, a := range args {
		out[i] = Arg{Key: a.Key, Value: cloneValue(a.Value)}
	}
	return out
}

func cloneValue(v Value) Value {
	cv := Value{Kind: v.Kind, Str: v.Str}
	if v.Fn != nil {
		cv.Fn = &FnCall{Name: v.Fn.Name, Args: cloneArgs(v.Fn.Args)}
	}
	if v.List != nil {
		cv.List = make([]Value, len(v.List))
		for i, it := range v.List {
			cv.List[i] = cloneValue(it)
		}
	}
	return cv
}
