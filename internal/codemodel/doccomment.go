package codemodel

import (
	"encoding/xml"
	"strings"
)

// DocComment is a parsed documentation comment.
type DocComment struct {
	node
	summary    string
	returns    string
	parameters *List[*ParameterComment]
}

func (d *DocComment) Summary() string                      { return d.summary }
func (d *DocComment) Returns() string                      { return d.returns }
func (d *DocComment) Parameters() *List[*ParameterComment] { return d.parameters }
func (d *DocComment) DisplayString() string                { return d.summary }
func (d *DocComment) Shape() string                        { return ShapeDocComment }

// ParameterComment documents one parameter.
type ParameterComment struct {
	node
	name        string
	description string
}

func (p *ParameterComment) Name() string          { return p.name }
func (p *ParameterComment) Description() string   { return p.description }
func (p *ParameterComment) DisplayString() string { return p.description }
func (p *ParameterComment) Shape() string         { return ShapeParameterComment }

// xmlDoc is the structure of XML documentation text.
type xmlDoc struct {
	Summary string     `xml:"summary"`
	Returns string     `xml:"returns"`
	Params  []xmlParam `xml:"param"`
}

type xmlParam struct {
	Name string `xml:"name,attr"`
	Text string `xml:",chardata"`
}

// docComment parses doc text into a node. Text that is not XML documentation
// is read as plain prose whose first paragraph is the summary. Empty text
// yields nil.
func (m *Model) docComment(text string, parent Item) *DocComment {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	d := &DocComment{}
	m.attach(&d.node, d, parent)

	var comments []*ParameterComment
	if doc, ok := parseXMLDoc(text); ok {
		d.summary = collapse(doc.Summary)
		d.returns = collapse(doc.Returns)
		for _, p := range doc.Params {
			pc := &ParameterComment{name: p.Name, description: collapse(p.Text)}
			m.attach(&pc.node, pc, d)
			comments = append(comments, pc)
		}
	} else {
		d.summary = collapse(firstParagraph(text))
	}
	d.parameters = newList("ParameterComment", comments)
	return d
}

func parseXMLDoc(text string) (xmlDoc, bool) {
	var doc xmlDoc
	if !strings.HasPrefix(text, "<") {
		return doc, false
	}
	if err := xml.Unmarshal([]byte("<doc>"+text+"</doc>"), &doc); err != nil {
		return doc, false
	}
	return doc, true
}

func firstParagraph(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if i := strings.Index(text, "\n\n"); i >= 0 {
		return text[:i]
	}
	return text
}

// collapse joins the lines of s with single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
