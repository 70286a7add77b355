package render

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
	"github.com/gomutex/godocx/wml/ctypes"
	"github.com/gomutex/godocx/wml/stypes"

	"github.com/zapponejosh/synaxaire-program/internal/program"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

var docxHeaders = []string{"Date", "Heure", "Evènement", "Synaxaire"}

const (
	docxHeaderShade = "D9D9D9"
	docxShade       = "F2F2F2"
)

// DocxSink renders a program as a Word document.
type DocxSink struct{}

func (DocxSink) ContentType() string { return docxContentType }

func (DocxSink) Extension() string { return "docx" }

// Render writes the title, the two verses and the day table into a new
// document built from the library's default template.
func (s DocxSink) Render(p Program) ([]byte, error) {
	if len(p.Days) == 0 {
		return nil, &program.RenderError{Format: "docx", Err: errors.New("program has no days")}
	}

	doc, err := godocx.NewDocument()
	if err != nil {
		return nil, &program.RenderError{Format: "docx", Err: fmt.Errorf("open template: %w", err)}
	}
	defer doc.Close()

	title, err := doc.AddHeading(p.Title(), 0)
	if err != nil {
		return nil, &program.RenderError{Format: "docx", Err: err}
	}
	title.Justification(stypes.JustificationCenter)

	if p.FrenchVerse != "" {
		para := doc.AddEmptyParagraph()
		para.Justification(stypes.JustificationCenter)
		addLines(para, splitLines(p.FrenchVerse), true)
	}
	if p.ArabicVerse != "" {
		para := doc.AddEmptyParagraph()
		para.Justification(stypes.JustificationCenter)
		addLines(para, splitLines(p.ArabicVerse), true)
		rightToLeft(para)
	}

	writeTable(doc, p)

	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		return nil, &program.RenderError{Format: "docx", Err: fmt.Errorf("write package: %w", err)}
	}
	return buf.Bytes(), nil
}

func writeTable(doc *docx.RootDoc, p Program) {
	table := doc.AddTable()
	table.Style("TableGrid")

	header := table.AddRow()
	for _, h := range docxHeaders {
		para := header.AddCell().AddEmptyPara()
		addLines(para, []string{h}, true)
		shade(para, docxHeaderShade)
	}

	for i, d := range p.Days {
		cells := [][]string{
			dateLines(d),
			splitLines(d.ScheduleTime),
			splitLines(d.ScheduleEvent),
			synaxaireLines(d.Commemorations),
		}

		row := table.AddRow()
		for _, lines := range cells {
			para := row.AddCell().AddEmptyPara()
			addLines(para, lines, false)
			if i%2 == 1 {
				shade(para, docxShade)
			}
		}
	}
}

// addLines writes lines into para as runs separated by line breaks.
func addLines(para *docx.Paragraph, lines []string, bold bool) {
	for i, line := range lines {
		run := para.AddText(line)
		if bold {
			run.Bold(true)
		}
		if i < len(lines)-1 {
			run.AddBreak(nil)
		}
	}
}

// rightToLeft marks the paragraph and its runs as right-to-left text.
func rightToLeft(para *docx.Paragraph) {
	ct := para.GetCT()
	if ct.Property == nil {
		ct.Property = ctypes.DefaultParaProperty()
	}
	ct.Property.Bidi = &ctypes.OnOff{}

	for _, child := range ct.Children {
		if child.Run == nil {
			continue
		}
		if child.Run.Property == nil {
			child.Run.Property = &ctypes.RunProperty{}
		}
		child.Run.Property.RightToLeft = &ctypes.OnOff{}
		if child.Run.Property.Bold != nil {
			child.Run.Property.BoldCS = &ctypes.OnOff{}
		}
	}
}

func shade(para *docx.Paragraph, fill string) {
	ct := para.GetCT()
	if ct.Property == nil {
		ct.Property = ctypes.DefaultParaProperty()
	}
	color := "auto"
	ct.Property.Shading = &ctypes.Shading{
		Val:   stypes.ShdClear,
		Color: &color,
		Fill:  &fill,
	}
}
