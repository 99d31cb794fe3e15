package ext

import (
	"strings"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/protoparse"
	"gitlab.com/tozd/go/errors"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/julianjensen/inference/internal/config"
	"github.com/julianjensen/inference/internal/decl"
	"github.com/julianjensen/inference/internal/logger"
)

// ParseProtoFiles parses names (relative to one of importPaths) with their
// imports.
func ParseProtoFiles(importPaths []string, names ...string) ([]*desc.FileDescriptor, error) {
	if len(names) == 0 {
		return nil, errors.New("no proto files given")
	}
	parser := protoparse.Parser{ImportPaths: importPaths}
	fds, err := parser.ParseFiles(names...)
	if err != nil {
		return nil, errors.Errorf("failed to parse proto: %w", err)
	}
	return fds, nil
}

// InspectProto turns the messages, enums and services of files into
// declarations. Messages become interfaces whose fields are all optional,
// enums become aliases of number, and services become interfaces whose
// methods take the request message and return a Promise of the response.
// Nested types are named Outer_Inner.
func InspectProto(files ...*desc.FileDescriptor) ([]*decl.Declaration, error) {
	var out []*decl.Declaration
	for _, fd := range files {
		if fd == nil {
			return nil, errors.New("inspect: nil file descriptor")
		}
		for _, e := range fd.GetEnumTypes() {
			out = append(out, alias(protoName(e.GetFullyQualifiedName(), fd), decl.Name(config.NumberTypeName)))
		}
		for _, m := range fd.GetMessageTypes() {
			out = append(out, messageDecls(m, fd)...)
		}
		for _, s := range fd.GetServices() {
			out = append(out, serviceDecl(s, fd))
		}
		logger.Debug("inspected proto file", "file", fd.GetName(), "declarations", len(out))
	}
	return out, nil
}

// messageDecls returns m followed by its nested enums and messages. Map
// entry messages are folded into the field that uses them.
func messageDecls(m *desc.MessageDescriptor, fd *desc.FileDescriptor) []*decl.Declaration {
	if m.IsMapEntry() {
		return nil
	}
	var members []*decl.Declaration
	for _, f := range m.GetFields() {
		members = append(members, property(f.GetJSONName(), fieldRecord(f, fd), true))
	}
	out := []*decl.Declaration{iface(protoName(m.GetFullyQualifiedName(), fd), nil, members)}
	for _, e := range m.GetNestedEnumTypes() {
		out = append(out, alias(protoName(e.GetFullyQualifiedName(), fd), decl.Name(config.NumberTypeName)))
	}
	for _, nested := range m.GetNestedMessageTypes() {
		out = append(out, messageDecls(nested, fd)...)
	}
	return out
}

func serviceDecl(s *desc.ServiceDescriptor, fd *desc.FileDescriptor) *decl.Declaration {
	var members []*decl.Declaration
	for _, m := range s.GetMethods() {
		resp := decl.Ref(protoName(m.GetOutputType().GetFullyQualifiedName(), fd))
		if m.IsServerStreaming() {
			resp = decl.ArrayOf(resp)
		}
		req := decl.Ref(protoName(m.GetInputType().GetFullyQualifiedName(), fd))
		if m.IsClientStreaming() {
			req = decl.ArrayOf(req)
		}
		members = append(members, &decl.Declaration{Name: m.GetName(), Decls: []*decl.Decl{{
			Kind:       config.KindMethodSig,
			Parameters: []*decl.ParamRecord{{Name: "request", Type: req}},
			Type:       decl.Ref(config.PromiseTypeName, resp),
		}}})
	}
	return iface(s.GetName(), nil, members)
}

// fieldRecord maps one field, including repeated and map fields.
func fieldRecord(f *desc.FieldDescriptor, fd *desc.FileDescriptor) *decl.TypeRecord {
	if f.IsMap() {
		return &decl.TypeRecord{
			Type: config.RecordTypeLiteral,
			Members: []*decl.Declaration{index(
				scalarRecord(f.GetMapKeyType(), fd),
				scalarRecord(f.GetMapValueType(), fd),
			)},
		}
	}
	rec := scalarRecord(f, fd)
	if f.IsRepeated() {
		return decl.ArrayOf(rec)
	}
	return rec
}

func scalarRecord(f *desc.FieldDescriptor, fd *desc.FileDescriptor) *decl.TypeRecord {
	switch f.GetType() {
	case descriptorpb.FieldDescriptorProto_TYPE_BOOL:
		return decl.Name(config.BooleanTypeName)
	case descriptorpb.FieldDescriptorProto_TYPE_STRING, descriptorpb.FieldDescriptorProto_TYPE_BYTES:
		return decl.Name(config.StringTypeName)
	case descriptorpb.FieldDescriptorProto_TYPE_ENUM:
		return decl.Ref(protoName(f.GetEnumType().GetFullyQualifiedName(), fd))
	case descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, descriptorpb.FieldDescriptorProto_TYPE_GROUP:
		return decl.Ref(protoName(f.GetMessageType().GetFullyQualifiedName(), fd))
	default:
		return decl.Name(config.NumberTypeName)
	}
}

// protoName strips fd's package from a fully-qualified name and joins the
// remaining parts with "_". Types from other packages keep their package,
// dotted.
func protoName(fqn string, fd *desc.FileDescriptor) string {
	if pkg := fd.GetPackage(); pkg != "" {
		rest, ok := strings.CutPrefix(fqn, pkg+".")
		if !ok {
			return fqn
		}
		fqn = rest
	}
	return strings.ReplaceAll(fqn, ".", "_")
}
