package psl

import (
	"fmt"
	"strings"
)

// Print рендерит дерево обратно в текст схемы.
// Модели идут первыми, затем enum'ы; внутри блоков порядок объявления.
func Print(s *Schema) string {
	var sb strings.Builder
	for i, m := range s.Models {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "model %s {\n", m.Name)
		for _, f := range m.Fields {
			sb.WriteString("  ")
			sb.WriteString(printField(&f))
			sb.WriteString("\n")
		}
		for _, a := range m.Attrs {
			if r := RenderAttribute(&a); r != "" {
				sb.WriteString("  " + r + "\n")
			}
		}
		sb.WriteString("}\n")
	}
	for _, e := range s.Enums {
		if len(s.Models) > 0 || sb.Len() > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "enum %s {\n", e.Name)
		for _, v := range e.Values {
			sb.WriteString("  " + v + "\n")
		}
		sb.WriteString("}\n")
	}
	return sb.String()
}

func printField(f *Field) string {
	typ := f.Type
	if f.Array {
		typ += "[]"
	}
	if f.Optional {
		typ += "?"
	}
	parts := []string{f.Name, typ}
	for _, a := range f.Attrs {
		if r := RenderAttribute(&a); r != "" {
			parts = append(parts, r)
		}
	}
	return strings.Join(parts, " ")
}

// RenderAttribute рендерит атрибут в текстовую форму: @ для полей, @@ для
// блочных. Пустой default-вызов схлопывается в "" — такой атрибут опускается.
func RenderAttribute(a *Attribute) string {
	if a.Name == "default" && len(a.Args) == 0 {
		return ""
	}
	sigil := "@"
	if a.Block {
		sigil = "@@"
	}
	if len(a.Args) == 0 {
		return sigil + a.Name
	}
	return sigil + a.Name + "(" + renderArgs(a.Args) + ")"
}

func renderArgs(args []Arg) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		v := renderValue(arg.Value)
		if arg.Key != "" {
			v = arg.Key + ": " + v
		}
		parts = append(parts, v)
	}
	return strings.Join(parts, ", ")
}

func renderValue(v Value) string {
	switch v.Kind {
	case ValString:
		return `"` + v.Str + `"`
	case ValList:
		parts := make([]string, 0, len(v.List))
		for _, it := range v.List {
			parts = append(parts, renderValue(it))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case ValFunc:
		if v.Fn == nil {
			return ""
		}
		return v.Fn.Name + "(" + renderArgs(v.Fn.Args) + ")"
	default:
		return v.Str
	}
}
