package style

// StyleOptions are the optional parts of a header or body style.
type StyleOptions struct {
	Background Background
	FontSize   *float64
	Width      *float64
}

// StyleHeader applies bold, border and the optional parts of opts.
func (r *Range) StyleHeader(opts StyleOptions) *Range {
	return r.SetBold().StyleBody(opts)
}

// StyleBody applies border and the optional parts of opts.
func (r *Range) StyleBody(opts StyleOptions) *Range {
	r.SetBorder().SetBackground(opts.Background)
	if opts.FontSize != nil {
		r.SetFontSize(*opts.FontSize)
	}
	if opts.Width != nil {
		r.SetWidth(*opts.Width)
	}
	return r
}
