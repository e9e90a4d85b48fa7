package style

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/tuilad01/excelext/internal/log"
	"github.com/tuilad01/excelext/internal/xlsx"
)

// Instruction describes the value and styling of one cell. Every optional
// field acts when it is present, whatever its value: Bold set to false
// still applies bold.
type Instruction struct {
	Address string `json:"address" yaml:"address"`
	Value   any    `json:"value,omitempty" yaml:"value,omitempty"`
	// Type is the xlsx value type used for Value. Empty means string.
	Type string `json:"type,omitempty" yaml:"type,omitempty"`

	Header    *bool    `json:"header,omitempty" yaml:"header,omitempty"`
	Body      *bool    `json:"body,omitempty" yaml:"body,omitempty"`
	Bold      *bool    `json:"bold,omitempty" yaml:"bold,omitempty"`
	Italic    *bool    `json:"italic,omitempty" yaml:"italic,omitempty"`
	Underline *bool    `json:"underline,omitempty" yaml:"underline,omitempty"`
	Border    *bool    `json:"border,omitempty" yaml:"border,omitempty"`
	FontSize  *float64 `json:"font_size,omitempty" yaml:"font_size,omitempty"`
	Width     *float64 `json:"width,omitempty" yaml:"width,omitempty"`

	BackgroundHex   string      `json:"background_hex,omitempty" yaml:"background_hex,omitempty"`
	BackgroundRGB   *RGB        `json:"background_rgb,omitempty" yaml:"background_rgb,omitempty"`
	BackgroundColor color.Color `json:"-" yaml:"-"`

	MergeRange   *Range `json:"-" yaml:"-"`
	MergeAddress string `json:"merge_address,omitempty" yaml:"merge_address,omitempty"`
}

func (in *Instruction) background() Background {
	return Background{Hex: in.BackgroundHex, RGB: in.BackgroundRGB, Color: in.BackgroundColor}
}

func (in *Instruction) styleOptions() StyleOptions {
	return StyleOptions{Background: in.background(), FontSize: in.FontSize, Width: in.Width}
}

// RenderCells applies instructions in order. It stops at the first failing
// instruction; earlier instructions stay applied.
func RenderCells(s *Sheet, instructions []Instruction) error {
	logger := log.Named("style")
	for i := range instructions {
		in := &instructions[i]
		if strings.TrimSpace(in.Address) == "" {
			return fmt.Errorf("instruction %d: %w: address is required", i, xlsx.ErrInvalidArgument)
		}
		logger.Debugw("render", "index", i, "sheet", s.Name(), "address", in.Address)

		if err := render(s, in); err != nil {
			return fmt.Errorf("instruction %d (%s): %w", i, in.Address, err)
		}
	}
	return nil
}

func render(s *Sheet, in *Instruction) error {
	r := s.Range(in.Address).SetValue(in.Value, in.Type)

	if in.Header != nil {
		r.StyleHeader(in.styleOptions())
	}
	if in.Body != nil {
		r.StyleBody(in.styleOptions())
	}
	if in.Bold != nil {
		r.SetBold()
	}
	if in.Italic != nil {
		r.SetItalic()
	}
	if in.Underline != nil {
		r.SetUnderline()
	}
	if in.FontSize != nil {
		r.SetFontSize(*in.FontSize)
	}
	if in.Border != nil {
		r.SetBorder()
	}
	r.SetBackground(in.background())

	switch {
	case in.MergeRange != nil:
		r.MergeTo(in.MergeRange)
	case in.MergeAddress != "":
		r.MergeToAddress(in.MergeAddress)
	}

	if in.Width != nil {
		r.SetWidth(*in.Width)
	}
	return r.Err()
}

// RenderFile opens path (creating the workbook and sheet when create is set),
// renders instructions and saves atomically. Nothing is written when an
// instruction fails.
func RenderFile(path, sheet string, create bool, instructions []Instruction) (*xlsx.WriteResult, error) {
	f, err := xlsx.OpenOrCreate(path, create)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if create && sheet != "" && !xlsx.SheetExists(f, sheet) {
		if sheet, err = xlsx.EnsureSheet(f, sheet); err != nil {
			return nil, err
		}
	}
	s, err := NewSheet(f, sheet)
	if err != nil {
		return nil, err
	}

	if err := RenderCells(s, instructions); err != nil {
		return nil, err
	}
	if err := xlsx.SaveFileAtomic(f, path); err != nil {
		return nil, err
	}

	log.Named("style").Infow("rendered", "file", path, "sheet", s.Name(), "instructions", len(instructions))
	return &xlsx.WriteResult{
		Success: true,
		File:    path,
		Sheet:   s.Name(),
		Applied: len(instructions),
	}, nil
}
