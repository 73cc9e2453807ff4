package display

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/arthur-debert/dotdeploy/pkg/types"
	"github.com/beevik/etree"
	"gopkg.in/yaml.v3"
)

// JSONRenderer provides JSON output for machine consumption
type JSONRenderer struct {
	encoder *json.Encoder
}

// NewJSONRenderer creates a new JSON renderer
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return &JSONRenderer{encoder: encoder}
}

func (r *JSONRenderer) RenderReport(rep Report) error   { return r.encoder.Encode(rep) }
func (r *JSONRenderer) RenderPlan(p PlanDocument) error { return r.encoder.Encode(p) }
func (r *JSONRenderer) RenderError(err error) error     { return r.encoder.Encode(NewErrorDocument(err)) }
func (r *JSONRenderer) RenderMessage(msg string) error {
	return r.encoder.Encode(map[string]string{"message": msg})
}

// YAMLRenderer provides YAML output
type YAMLRenderer struct {
	writer io.Writer
}

// NewYAMLRenderer creates a new YAML renderer
func NewYAMLRenderer(w io.Writer) *YAMLRenderer {
	return &YAMLRenderer{writer: w}
}

func (r *YAMLRenderer) encode(v interface{}) error {
	enc := yaml.NewEncoder(r.writer)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func (r *YAMLRenderer) RenderReport(rep Report) error   { return r.encode(rep) }
func (r *YAMLRenderer) RenderPlan(p PlanDocument) error { return r.encode(p) }
func (r *YAMLRenderer) RenderError(err error) error     { return r.encode(NewErrorDocument(err)) }
func (r *YAMLRenderer) RenderMessage(msg string) error {
	return r.encode(map[string]string{"message": msg})
}

// XMLRenderer writes report documents built with etree
type XMLRenderer struct {
	writer io.Writer
}

// NewXMLRenderer creates a new XML renderer
func NewXMLRenderer(w io.Writer) *XMLRenderer {
	return &XMLRenderer{writer: w}
}

func newDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	return doc
}

func (r *XMLRenderer) write(doc *etree.Document) error {
	doc.Indent(2)
	_, err := doc.WriteTo(r.writer)
	return err
}

// RenderReport writes <report> with one <group> per profile group
func (r *XMLRenderer) RenderReport(rep Report) error {
	doc := newDocument()
	root := doc.CreateElement("report")
	root.CreateAttr("command", rep.Command)
	if rep.RunID != "" {
		root.CreateAttr("run-id", rep.RunID)
	}
	root.CreateAttr("profile", rep.Profile)
	root.CreateAttr("dry-run", strconv.FormatBool(rep.DryRun))
	root.CreateAttr("strict", strconv.FormatBool(rep.Strict))
	root.CreateAttr("success", strconv.FormatBool(rep.Success))

	counts := root.CreateElement("counts")
	for _, st := range types.Statuses {
		c := counts.CreateElement("count")
		c.CreateAttr("status", string(st))
		c.SetText(strconv.Itoa(rep.Counts[string(st)]))
	}

	for _, g := range rep.Groups {
		ge := root.CreateElement("group")
		ge.CreateAttr("name", g.Name)
		ge.CreateAttr("status", g.Status)
		for _, o := range g.Outcomes {
			oe := ge.CreateElement("outcome")
			oe.CreateAttr("entry", o.Entry)
			oe.CreateAttr("kind", o.Kind)
			oe.CreateAttr("status", o.Status)
			oe.CreateElement("source").SetText(o.Source)
			oe.CreateElement("dest").SetText(o.Dest)
			if o.Message != "" {
				oe.CreateElement("message").SetText(o.Message)
			}
			if o.Backup != "" {
				oe.CreateElement("backup").SetText(o.Backup)
			}
			if o.Error != "" {
				oe.CreateElement("error").SetText(o.Error)
			}
		}
	}
	return r.write(doc)
}

// RenderPlan writes <plan> with one <action> per planned action
func (r *XMLRenderer) RenderPlan(p PlanDocument) error {
	doc := newDocument()
	root := doc.CreateElement("plan")
	root.CreateAttr("profile", p.Profile)
	root.CreateAttr("count", strconv.Itoa(p.Count))
	root.CreateAttr("default-policy", string(p.Policy))
	for _, a := range p.Actions {
		ae := root.CreateElement("action")
		ae.CreateAttr("group", a.Group)
		ae.CreateAttr("entry", a.Entry)
		ae.CreateAttr("kind", string(a.Kind))
		if a.Policy.IsSet() {
			ae.CreateAttr("policy", string(a.Policy))
		}
		ae.CreateElement("source").SetText(a.Source)
		ae.CreateElement("dest").SetText(a.Dest)
	}
	return r.write(doc)
}

// RenderError writes <error code="..."> with its details
func (r *XMLRenderer) RenderError(err error) error {
	e := NewErrorDocument(err)
	doc := newDocument()
	root := doc.CreateElement("error")
	root.CreateAttr("code", e.Code)
	root.CreateElement("message").SetText(e.Error)
	for _, k := range sortedKeys(e.Details) {
		d := root.CreateElement("detail")
		d.CreateAttr("key", k)
		d.SetText(e.Details[k])
	}
	return r.write(doc)
}

// RenderMessage writes <message>
func (r *XMLRenderer) RenderMessage(msg string) error {
	doc := newDocument()
	doc.CreateElement("message").SetText(msg)
	if err := r.write(doc); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return nil
}
