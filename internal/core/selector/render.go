package selector

// Renderer turns records into display text. Either function may be nil,
// in which case the config's display field is shown.
type Renderer[T any] struct {
	// Candidate returns the dropdown lines for a record. The first line is
	// the headline; further lines are secondary details.
	Candidate func(T) []string

	// Selected returns the text placed in the input once a record is chosen.
	Selected func(T) string
}

// CandidateLines renders a record as dropdown lines.
func CandidateLines[T any](cfg Config[T], r Renderer[T], rec T) []string {
	if r.Candidate != nil {
		if lines := r.Candidate(rec); len(lines) > 0 {
			return lines
		}
	}
	return []string{cfg.DisplayValue(rec)}
}

// SelectedText renders the text shown for a chosen record.
func SelectedText[T any](cfg Config[T], r Renderer[T], rec T) string {
	if r.Selected != nil {
		return r.Selected(rec)
	}
	return cfg.DisplayValue(rec)
}

// Strategy bundles everything that specialises the selector for one entity
// type. Specialisations never add states or change filtering.
type Strategy[T any] struct {
	Label       string
	Placeholder string
	Config      Config[T]
	Renderer    Renderer[T]
}

// CandidateLines renders rec with the strategy's renderer.
func (s Strategy[T]) CandidateLines(rec T) []string {
	return CandidateLines(s.Config, s.Renderer, rec)
}

// SelectedText renders the chosen rec with the strategy's renderer.
func (s Strategy[T]) SelectedText(rec T) string {
	return SelectedText(s.Config, s.Renderer, rec)
}

// Filter applies the strategy's config to records.
func (s Strategy[T]) Filter(records []T, query string) []T {
	return Filter(records, query, s.Config)
}

// Props builds reducer props for records under this strategy.
func (s Strategy[T]) Props(records []T) Props[T] {
	return Props[T]{Records: records, Config: s.Config, Renderer: s.Renderer}
}

// WithMinQueryLength returns a copy of s with a different minimum query
// length. Negative values are ignored.
func (s Strategy[T]) WithMinQueryLength(n int) Strategy[T] {
	if n >= 0 {
		s.Config.MinQueryLength = n
	}
	return s
}
