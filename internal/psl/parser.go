package psl

import (
	"bufio"
	"fmt"
	"regexp"
	"strings"
)

var (
	modelRe = regexp.MustCompile(`^model\s+([A-Za-z_]\w*)\s*\{$`)
	enumRe  = regexp.MustCompile(`^enum\s+([A-Za-z_]\w*)\s*\{$`)
	fieldRe = regexp.MustCompile(`^([A-Za-z_]\w*)\s+([A-Za-z_]\w*(?:\[\])?\??)\s*(.*)$`)
	identRe = regexp.MustCompile(`^[A-Za-z_]\w*$`)
	numRe   = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
)

// Parse разбирает текст схемы в дерево деклараций.
// Грамматика строчная: model/enum-блоки, поля с @-атрибутами, @@-атрибуты блока.
func Parse(text string) (*Schema, error) {
	schema := &Schema{}
	var curModel *Model
	var curEnum *Enum
	lineNo := 0

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(stripComment(scanner.Text()))
		if line == "" {
			continue
		}

		// model <Name> {
		if m := modelRe.FindStringSubmatch(line); m != nil {
			if curModel != nil || curEnum != nil {
				return nil, fmt.Errorf("line %d: nested declaration %q", lineNo, line)
			}
			curModel = &Model{Name: m[1]}
			continue
		}
		// enum <Name> {
		if m := enumRe.FindStringSubmatch(line); m != nil {
			if curModel != nil || curEnum != nil {
				return nil, fmt.Errorf("line %d: nested declaration %q", lineNo, line)
			}
			curEnum = &Enum{Name: m[1]}
			continue
		}
		// закрытие блока
		if line == "}" {
			switch {
			case curModel != nil:
				schema.Models = append(schema.Models, curModel)
				curModel = nil
			case curEnum != nil:
				schema.Enums = append(schema.Enums, curEnum)
				curEnum = nil
			default:
				return nil, fmt.Errorf("line %d: unexpected %q", lineNo, "}")
			}
			continue
		}

		if curEnum != nil {
			if !identRe.MatchString(line) {
				return nil, fmt.Errorf("line %d: bad enum value %q", lineNo, line)
			}
			curEnum.Values = append(curEnum.Values, line)
			continue
		}

		if curModel == nil {
			// всё вне блоков (generator/datasource и пр.) игнорируем
			continue
		}

		// @@-атрибут модели
		if strings.HasPrefix(line, "@@") {
			attr, err := parseAttribute(line[1:], true)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			curModel.Attrs = append(curModel.Attrs, *attr)
			continue
		}

		// поле: name Type[...]? @attr ...
		m := fieldRe.FindStringSubmatch(line)
		if m == nil {
			return nil, fmt.Errorf("line %d: cannot parse field %q", lineNo, line)
		}
		f := Field{Name: m[1]}
		typ := m[2]
		if strings.HasSuffix(typ, "?") {
			f.Optional = true
			typ = strings.TrimSuffix(typ, "?")
		}
		if strings.HasSuffix(typ, "[]") {
			f.Array = true
			typ = strings.TrimSuffix(typ, "[]")
		}
		f.Type = typ

		for _, tok := range splitAttrTokens(strings.TrimSpace(m[3])) {
			if !strings.HasPrefix(tok, "@") {
				return nil, fmt.Errorf("line %d: expected attribute, got %q", lineNo, tok)
			}
			attr, err := parseAttribute(tok, false)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			f.Attrs = append(f.Attrs, *attr)
		}
		curModel.Fields = append(curModel.Fields, f)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if curModel != nil {
		return nil, fmt.Errorf("unterminated model %q", curModel.Name)
	}
	if curEnum != nil {
		return nil, fmt.Errorf("unterminated enum %q", curEnum.Name)
	}
	return schema, nil
}

// stripComment срезает //-комментарий вне кавычек
func stripComment(s string) string {
	inStr := false
	for i := 0; i < len(s)-1; i++ {
		switch s[i] {
		case '"':
			inStr = !inStr
		case '/':
			if !inStr && s[i+1] == '/' {
				return s[:i]
			}
		}
	}
	return s
}

// splitAttrTokens делит хвост строки поля на @-токены — пробел является
// разделителем только вне кавычек и вне ()/[] любой вложенности
func splitAttrTokens(s string) []string {
	var out []string
	var buf []rune
	inStr := false
	depth := 0

	flush := func() {
		if len(buf) > 0 {
			out = append(out, string(buf))
			buf = buf[:0]
		}
	}

	for _, r := range s {
		switch r {
		case '"':
			inStr = !inStr
			buf = append(buf, r)
		case '(', '[':
			if !inStr {
				depth++
			}
			buf = append(buf, r)
		case ')', ']':
			if !inStr && depth > 0 {
				depth--
			}
			buf = append(buf, r)
		default:
			if (r == ' ' || r == '\t') && !inStr && depth == 0 {
				flush()
				continue
			}
			buf = append(buf, r)
		}
	}
	flush()
	return out
}

// splitTopLevel делит строку по sep на верхнем уровне вложенности
func splitTopLevel(s string, sep rune) []string {
	var out []string
	var buf []rune
	inStr := false
	depth := 0
	for _, r := range s {
		switch {
		case r == '"':
			inStr = !inStr
			buf = append(buf, r)
		case (r == '(' || r == '[') && !inStr:
			depth++
			buf = append(buf, r)
		case (r == ')' || r == ']') && !inStr:
			depth--
			buf = append(buf, r)
		case r == sep && !inStr && depth == 0:
			out = append(out, string(buf))
			buf = buf[:0]
		default:
			buf = append(buf, r)
		}
	}
	out = append(out, string(buf))
	return out
}

// parseAttribute разбирает "@name" / "@name(args)" (block=true для @@)
func parseAttribute(tok string, block bool) (*Attribute, error) {
	body := strings.TrimPrefix(tok, "@")
	attr := &Attribute{Block: block}

	open := strings.IndexByte(body, '(')
	if open < 0 {
		if !identRe.MatchString(body) {
			return nil, fmt.Errorf("bad attribute %q", tok)
		}
		attr.Name = body
		return attr, nil
	}
	if !strings.HasSuffix(body, ")") {
		return nil, fmt.Errorf("unbalanced parens in %q", tok)
	}
	attr.Name = body[:open]
	if !identRe.MatchString(attr.Name) {
		return nil, fmt.Errorf("bad attribute name %q", attr.Name)
	}
	args, err := parseArgs(body[open+1 : len(body)-1])
	if err != nil {
		return nil, fmt.Errorf("attribute %s: %w", attr.Name, err)
	}
	attr.Args = args
	return attr, nil
}

func parseArgs(s string) ([]Arg, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var out []Arg
	for _, part := range splitTopLevel(s, ',') {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		arg := Arg{}
		// key: value — двоеточие верхнего уровня
		if kv := splitTopLevel(part, ':'); len(kv) == 2 && identRe.MatchString(strings.TrimSpace(kv[0])) {
			arg.Key = strings.TrimSpace(kv[0])
			part = strings.TrimSpace(kv[1])
		}
		v, err := parseValue(part)
		if err != nil {
			return nil, err
		}
		arg.Value = v
		out = append(out, arg)
	}
	return out, nil
}

func parseValue(s string) (Value, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return Value{}, fmt.Errorf("empty value")
	case s[0] == '"':
		if len(s) < 2 || s[len(s)-1] != '"' {
			return Value{}, fmt.Errorf("unterminated string %q", s)
		}
		return Value{Kind: ValString, Str: s[1 : len(s)-1]}, nil
	case s[0] == '[':
		if s[len(s)-1] != ']' {
			return Value{}, fmt.Errorf("unterminated list %q", s)
		}
		inner := strings.TrimSpace(s[1 : len(s)-1])
		v := Value{Kind: ValList}
		if inner == "" {
			return v, nil
		}
		for _, part := range splitTopLevel(inner, ',') {
			item, err := parseValue(part)
			if err != nil {
				return Value{}, err
			}
			v.List = append(v.List, item)
		}
		return v, nil
	case s == "true" || s == "false":
		return Value{Kind: ValBool, Str: s}, nil
	case numRe.MatchString(s):
		return Value{Kind: ValNumber, Str: s}, nil
	}
	// вызов функции: name(args)
	if open := strings.IndexByte(s, '('); open > 0 && strings.HasSuffix(s, ")") {
		name := s[:open]
		if !identRe.MatchString(name) {
			return Value{}, fmt.Errorf("bad function name %q", name)
		}
		args, err := parseArgs(s[open+1 : len(s)-1])
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: ValFunc, Fn: &FnCall{Name: name, Args: args}}, nil
	}
	if identRe.MatchString(s) {
		return Value{Kind: ValIdent, Str: s}, nil
	}
	return Value{}, fmt.Errorf("cannot parse value %q", s)
}
