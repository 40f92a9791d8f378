package pipeline

// Problem is a judge flagged during a run along with why.
type Problem struct {
	Judge   string   `json:"judge"`
	Reasons []string `json:"reasons"`
}

// ProblemLog accumulates problematic judges in first-seen order.
type ProblemLog struct {
	order   []string
	reasons map[string][]string
}

// Add flags judge with reason. Repeated judges keep their first position.
func (p *ProblemLog) Add(judge, reason string) {
	if p.reasons == nil {
		p.reasons = make(map[string][]string)
	}
	if _, ok := p.reasons[judge]; !ok {
		p.order = append(p.order, judge)
		p.reasons[judge] = nil
	}
	if reason != "" {
		p.reasons[judge] = append(p.reasons[judge], reason)
	}
}

// Len reports the number of distinct problematic judges.
func (p *ProblemLog) Len() int {
	return len(p.order)
}

// Judges returns the problematic judge names in first-seen order.
func (p *ProblemLog) Judges() []string {
	return append([]string(nil), p.order...)
}

// Problems returns every flagged judge with its reasons.
func (p *ProblemLog) Problems() []Problem {
	out := make([]Problem, 0, len(p.order))
	for _, judge := range p.order {
		out = append(out, Problem{
			Judge:   judge,
			Reasons: append([]string(nil), p.reasons[judge]...),
		})
	}
	return out
}
