package main

import (
	"fmt"
	"strings"
	"text/template"
)

// funcMap provides helper functions available to the templates.
var funcMap = template.FuncMap{
	"quote": func(s string) string { return fmt.Sprintf("%q", s) },
}

// templates holds the parsed code generation templates.
var templates = template.Must(template.New("").Funcs(funcMap).Parse(catalogTmpl))

// renderTemplate executes a named template into the builder.
func renderTemplate(b *strings.Builder, name string, data any) {
	if err := templates.ExecuteTemplate(b, name, data); err != nil {
		panic(fmt.Sprintf("template %s: %v", name, err))
	}
}

// catalogData holds pre-computed data for the catalog template.
type catalogData struct {
	Namespace   string
	Actions     []RawActionDef
	Implemented []string
}

// catalogTmpl renders the whole actions_gen.go file. Indentation is
// left to goimports; the template only controls line breaks.
const catalogTmpl = `{{define "catalog"}}// Code generated by onvif-gen. DO NOT EDIT.

package devicemgmt

// actionNamespace is the Device Management WSDL namespace.
const actionNamespace = {{quote .Namespace}}

// Action identifies one Device Management operation.
type Action uint16

const (
// ActionUnknown is the zero value and names no operation.
ActionUnknown Action = iota
{{- range .Actions}}
Action{{.Name}}
{{- end}}
)

// String returns the action's operation name.
func (a Action) String() string {
switch a {
{{- range .Actions}}
case Action{{.Name}}:
return {{quote .Name}}
{{- end}}
default:
return "Unknown"
}
}

// URI returns the full action URI carried in the request headers.
func (a Action) URI() string {
return actionNamespace + "/" + a.String()
}

// Implemented reports whether the action has a dispatch implementation.
func (a Action) Implemented() bool {
{{- if .Implemented}}
switch a {
case {{range $i, $name := .Implemented}}{{if $i}},
{{end}}Action{{$name}}{{end}}:
return true
default:
return false
}
{{- else}}
return false
{{- end}}
}

// Known reports whether the value names a cataloged operation.
func (a Action) Known() bool {
return a != ActionUnknown && int(a) <= len(allActions)
}

// ParseAction resolves an operation name to its Action.
func ParseAction(name string) (Action, bool) {
a, ok := actionsByName[name]
return a, ok
}

// Actions returns every cataloged action in catalog order.
func Actions() []Action {
out := make([]Action, len(allActions))
copy(out, allActions)
return out
}

// allActions lists the catalog in declaration order.
var allActions = []Action{
{{- range .Actions}}
Action{{.Name}},
{{- end}}
}

// actionsByName resolves operation names to catalog entries.
var actionsByName = make(map[string]Action, len(allActions))

func init() {
for _, a := range allActions {
actionsByName[a.String()] = a
}
}
{{end}}`
