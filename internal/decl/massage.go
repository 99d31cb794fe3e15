package decl

import (
	"slices"

	"github.com/julianjensen/inference/internal/config"
	"github.com/julianjensen/inference/internal/diagnostics"
	"github.com/julianjensen/inference/internal/logger"
)

// memberFlags maps a member decl kind onto the name/flags pair the analyzer
// dispatches on. An empty name leaves the declaration's own name in place.
var memberFlags = map[string]struct{ name, flags string }{
	config.KindConstruct:    {config.NewMemberName, config.FlagSignature},
	config.KindCall:         {config.CallMemberName, config.FlagSignature},
	config.KindIndex:        {config.IndexMemberName, config.FlagSignature},
	config.KindMethodSig:    {"", config.FlagMethod},
	config.KindMethodDecl:   {"", config.FlagMethod},
	config.KindPropertySig:  {"", config.FlagProperty},
	config.KindPropertyDecl: {"", config.FlagProperty},
	config.KindConstructor:  {config.NewMemberName, config.FlagSignature},
	config.KindTypeParam:    {"", config.FlagTypeParameter},
}

// Kinds returns the distinct decl kinds of d in first-seen order.
func Kinds(d *Declaration) []string {
	var kinds []string
	for _, v := range d.Decls {
		if v == nil || v.Kind == "" || slices.Contains(kinds, v.Kind) {
			continue
		}
		kinds = append(kinds, v.Kind)
	}
	return kinds
}

// effectiveKinds drops VariableDeclaration when another kind is present,
// since `declare var X: XConstructor` commonly accompanies `interface X`.
func effectiveKinds(d *Declaration) []string {
	kinds := Kinds(d)
	if len(kinds) < 2 {
		return kinds
	}
	return slices.DeleteFunc(kinds, func(k string) bool { return k == config.KindVariable })
}

// GetKind derives the kind of d: its own kind, else the first decl kind
// other than a tolerated VariableDeclaration.
func GetKind(d *Declaration) string {
	if d.Kind != "" {
		return d.Kind
	}
	if kinds := effectiveKinds(d); len(kinds) > 0 {
		return kinds[0]
	}
	return ""
}

// Massage normalizes defs in place: it fills kind and flags on every
// declaration and member, and fails on conflicting decl kinds.
func Massage(defs []*Declaration) error {
	return massage(defs, true)
}

// MassageLenient is Massage that logs conflicting kinds and keeps the first.
func MassageLenient(defs []*Declaration) error {
	return massage(defs, false)
}

func massage(defs []*Declaration, strict bool) error {
	for _, d := range defs {
		if err := massageOne(d, strict); err != nil {
			return err
		}
	}
	return nil
}

func massageOne(d *Declaration, strict bool) error {
	if d == nil {
		return nil
	}
	if kinds := effectiveKinds(d); len(kinds) > 1 {
		if strict {
			return diagnostics.NewConsistencyError(d.Name, kinds, d)
		}
		logger.Warn("conflicting declaration kinds, keeping first", "name", d.Name, "kinds", kinds)
	}
	if d.Kind == "" {
		d.Kind = GetKind(d)
	}
	if d.Flags == "" {
		if mf, ok := memberFlags[d.Kind]; ok {
			d.Flags = mf.flags
			if mf.name != "" && (d.Name == "" || mf.flags == config.FlagSignature) {
				d.Name = mf.name
			}
		}
	}
	for _, v := range d.Decls {
		if v == nil {
			continue
		}
		if err := massage(v.Members, strict); err != nil {
			return err
		}
		if err := massageType(v.Type, strict); err != nil {
			return err
		}
		for _, p := range v.Parameters {
			if p == nil {
				continue
			}
			if err := massageType(p.Type, strict); err != nil {
				return err
			}
		}
	}
	return nil
}

func massageType(r *TypeRecord, strict bool) error {
	if r == nil {
		return nil
	}
	if err := massage(r.Members, strict); err != nil {
		return err
	}
	for _, list := range [][]*TypeRecord{r.TypeArguments, r.Types} {
		for _, t := range list {
			if err := massageType(t, strict); err != nil {
				return err
			}
		}
	}
	return massageType(r.ValueType, strict)
}
