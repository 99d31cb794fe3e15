// Package prettyprinter renders a compiled scope as multi-line declarations.
package prettyprinter

import (
	"bytes"
	"strings"

	"github.com/julianjensen/inference/internal/symbols"
	"github.com/julianjensen/inference/internal/typesystem"
)

// DeclPrinter writes declaration-file style text. Top-level functions and
// variables get a `declare` prefix; members end in `;`.
type DeclPrinter struct {
	buf       bytes.Buffer
	indent    int
	lineWidth int // max line width (0 = unlimited)
	column    int // current column position
}

func NewDeclPrinter() *DeclPrinter {
	return &DeclPrinter{indent: 0, lineWidth: 100, column: 0}
}

func NewDeclPrinterWithWidth(width int) *DeclPrinter {
	return &DeclPrinter{indent: 0, lineWidth: width, column: 0}
}

func (p *DeclPrinter) SetLineWidth(width int) {
	p.lineWidth = width
}

func (p *DeclPrinter) String() string {
	return p.buf.String()
}

func (p *DeclPrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
	p.column = p.indent * 4
}

func (p *DeclPrinter) write(s string) {
	p.buf.WriteString(s)
	if idx := strings.LastIndex(s, "\n"); idx != -1 {
		p.column = len(s) - idx - 1
	} else {
		p.column += len(s)
	}
}

func (p *DeclPrinter) writeln() {
	p.buf.WriteString("\n")
	p.column = 0
}

// line writes one indented line.
func (p *DeclPrinter) line(s string) {
	p.writeIndent()
	p.write(s)
	p.writeln()
}

// PrintScope prints every entry bound in scope, skipping untouched built-ins,
// and lists unresolved forward references in a trailing comment.
func (p *DeclPrinter) PrintScope(scope *symbols.SymbolTable) {
	p.PrintNames(scope, scope.Names())
}

// PrintNames prints the named entries of scope in the given order. Names that
// are unbound or repeated are skipped.
func (p *DeclPrinter) PrintNames(scope *symbols.SymbolTable, names []string) {
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		t, ok := scope.Find(name, true)
		if !ok || scope.Tree().IsBuiltin(t) {
			continue
		}
		if _, undef := t.(*typesystem.Undef); undef {
			continue
		}
		p.PrintEntry(name, t)
	}
	if unresolved := Unresolved(scope); len(unresolved) > 0 {
		p.line("// unresolved: " + strings.Join(unresolved, ", "))
	}
}

// Unresolved returns the names of the forward-reference placeholders still
// bound in scope.
func Unresolved(scope *symbols.SymbolTable) []string {
	var out []string
	for name, t := range scope.All() {
		if _, ok := t.(*typesystem.Undef); ok {
			out = append(out, name)
		}
	}
	return out
}

// PrintEntry prints one top-level binding.
func (p *DeclPrinter) PrintEntry(name string, t typesystem.Type) {
	switch v := t.(type) {
	case *typesystem.Identifier:
		p.line("declare var " + v.Stringify(name) + ";")
	case *typesystem.CallableType:
		for _, o := range v.Overloads(name) {
			p.line("declare function " + o + ";")
		}
	default:
		p.printBinding(name, t)
	}
}

// printMember prints one member line (or block) of a container.
func (p *DeclPrinter) printMember(name string, t typesystem.Type) {
	switch v := t.(type) {
	case *typesystem.Identifier:
		p.line(v.Stringify(name) + ";")
	case *typesystem.CallableType:
		for _, o := range v.Overloads(name) {
			p.line(o + ";")
		}
	default:
		p.printBinding(name, t)
	}
}

func (p *DeclPrinter) printBinding(name string, t typesystem.Type) {
	if obj, ok := t.(*typesystem.ObjectType); ok {
		if obj.Name() == name && !obj.IsType(typesystem.VariantTypeLiteral) {
			p.writeIndent()
			p.printContainer(obj.Header(name), obj)
			p.writeln()
			return
		}
		if obj.IsType(typesystem.VariantTypeLiteral) {
			p.writeIndent()
			p.printContainer("type "+name+" =", obj)
			p.write(";")
			p.writeln()
			return
		}
	}
	p.printAlias(name, t)
}

// printContainer writes header and a braced member block, leaving the
// cursor after the closing brace.
func (p *DeclPrinter) printContainer(header string, obj *typesystem.ObjectType) {
	_, _, mapped := obj.Mapped()
	idx, indexed := obj.Index()
	if header != "" {
		p.write(header + " ")
	}
	if !mapped && !indexed && obj.NumMembers() == 0 {
		p.write("{}")
		return
	}
	p.write("{")
	p.writeln()
	p.indent++
	if param, value, ok := obj.Mapped(); ok {
		p.line(typesystem.RenderMapped(param, value) + ";")
	}
	obj.EachMember(func(name string, t typesystem.Type) bool {
		p.printMember(name, t)
		return true
	})
	if indexed {
		p.line(idx.String() + ";")
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

// printAlias writes `type name = T;`. Unions too wide for the line are
// split one constituent per line.
func (p *DeclPrinter) printAlias(name string, t typesystem.Type) {
	p.writeIndent()
	head := "type " + name + " ="
	text := typesystem.TypeText(t)
	list, isList := t.(*typesystem.ListType)
	if p.lineWidth > 0 && p.column+len(head)+len(text)+2 > p.lineWidth && isList &&
		list.IsType(typesystem.VariantUnion) && list.Len() > 1 {
		p.write(head)
		p.writeln()
		p.indent++
		types := list.Types()
		for i, c := range types {
			p.writeIndent()
			p.write("| " + typesystem.TypeText(c))
			if i == len(types)-1 {
				p.write(";")
			}
			p.writeln()
		}
		p.indent--
		return
	}
	p.write(head + " " + text + ";")
	p.writeln()
}
