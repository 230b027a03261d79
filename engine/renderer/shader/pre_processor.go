package shader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/lenticular/engine/camera"
	"github.com/Carmen-Shannon/lenticular/engine/model"
	"github.com/Carmen-Shannon/lenticular/engine/renderer/material"
)

// directivePrefix marks a pre-processor line. Directives live in comments so the raw source is still valid WGSL
// shaped text for editors.
//
//	//@lens:include <struct>
//	//@lens:group <group> <binding> <uniform|read|read_write> <var_name> <struct>
const directivePrefix = "//@lens:"

// StructKey names a WGSL struct the engine owns and can inject into shader source.
type StructKey string

const (
	StructCamera      StructKey = "camera"
	StructVertex      StructKey = "vertex"
	StructModelData   StructKey = "model_data"
	StructBlendParams StructKey = "blend_params"
)

// Declaration is a buffer binding generated by a group directive. The scene uses it to find which group and binding
// each engine struct was placed at.
type Declaration struct {
	Group   int
	Binding int
	VarName string
	Struct  StructKey
	Line    int
}

type structEntry struct {
	source   string
	typeName string
}

var addressSpaces = map[string]string{
	"uniform":    "var<uniform>",
	"read":       "var<storage, read>",
	"read_write": "var<storage, read_write>",
}

type preProcessor struct {
	structs      map[StructKey]structEntry
	declarations []Declaration
}

// PreProcessor expands //@lens: directives in WGSL source.
type PreProcessor interface {
	// Process replaces include directives with the struct source and group directives with binding declarations.
	// Each struct is injected at most once even when included repeatedly.
	//
	// Parameters:
	//   - source: WGSL with directives
	//
	// Returns:
	//   - string: plain WGSL
	//   - error: a malformed directive or an unknown struct
	Process(source string) (string, error)

	// Declarations returns the group directives seen by the last Process call, in source order.
	Declarations() []Declaration
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor knowing the engine's GPU structs.
func NewPreProcessor() PreProcessor {
	return &preProcessor{
		structs: map[StructKey]structEntry{
			StructCamera:      {source: camera.GPUCameraUniformSource, typeName: "CameraUniform"},
			StructVertex:      {source: model.GPUVertexSource, typeName: "VertexInput"},
			StructModelData:   {source: model.GPUModelDataSource, typeName: "ModelData"},
			StructBlendParams: {source: material.GPUBlendParamsSource, typeName: "BlendParams"},
		},
	}
}

func (p *preProcessor) Process(source string) (string, error) {
	p.declarations = nil
	included := make(map[StructKey]bool)

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		lineNum := i + 1
		rest, ok := strings.CutPrefix(strings.TrimSpace(line), directivePrefix)
		if !ok {
			out = append(out, line)
			continue
		}

		args := strings.Fields(rest)
		if len(args) == 0 {
			return "", fmt.Errorf("line %d: empty directive", lineNum)
		}
		switch args[0] {
		case "include":
			if len(args) != 2 {
				return "", fmt.Errorf("line %d: include takes one struct name", lineNum)
			}
			key := StructKey(args[1])
			entry, ok := p.structs[key]
			if !ok {
				return "", fmt.Errorf("line %d: unknown struct %q", lineNum, args[1])
			}
			if !included[key] {
				included[key] = true
				out = append(out, strings.TrimRight(entry.source, "\n"))
			}
		case "group":
			decl, text, err := p.groupDirective(args[1:], lineNum)
			if err != nil {
				return "", err
			}
			out = append(out, text)
			p.declarations = append(p.declarations, decl)
		default:
			return "", fmt.Errorf("line %d: unknown directive %q", lineNum, args[0])
		}
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) groupDirective(args []string, lineNum int) (Declaration, string, error) {
	if len(args) != 5 {
		return Declaration{}, "", fmt.Errorf("line %d: group takes group, binding, address space, name and struct", lineNum)
	}
	group, err := strconv.Atoi(args[0])
	if err != nil || group < 0 {
		return Declaration{}, "", fmt.Errorf("line %d: invalid group %q", lineNum, args[0])
	}
	binding, err := strconv.Atoi(args[1])
	if err != nil || binding < 0 {
		return Declaration{}, "", fmt.Errorf("line %d: invalid binding %q", lineNum, args[1])
	}
	space, ok := addressSpaces[args[2]]
	if !ok {
		return Declaration{}, "", fmt.Errorf("line %d: unknown address space %q", lineNum, args[2])
	}
	key := StructKey(args[4])
	entry, ok := p.structs[key]
	if !ok {
		return Declaration{}, "", fmt.Errorf("line %d: unknown struct %q", lineNum, args[4])
	}

	decl := Declaration{Group: group, Binding: binding, VarName: args[3], Struct: key, Line: lineNum}
	text := fmt.Sprintf("@group(%d) @binding(%d) %s %s: %s;", group, binding, space, args[3], entry.typeName)
	return decl, text, nil
}

func (p *preProcessor) Declarations() []Declaration {
	return p.declarations
}
