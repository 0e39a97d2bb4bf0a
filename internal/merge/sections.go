package merge

// Sections is an ordered set of custom regions keyed by name. Setting a name
// that already exists replaces its body but keeps its original position.
type Sections struct {
	order  []string
	bodies map[string]string
}

func NewSections() *Sections {
	return &Sections{bodies: make(map[string]string)}
}

// Set stores body under name and reports whether an earlier body was replaced.
func (s *Sections) Set(name, body string) bool {
	if s.bodies == nil {
		s.bodies = make(map[string]string)
	}
	_, replaced := s.bodies[name]
	if !replaced {
		s.order = append(s.order, name)
	}
	s.bodies[name] = body
	return replaced
}

func (s *Sections) Body(name string) (string, bool) {
	if s == nil {
		return "", false
	}
	body, ok := s.bodies[name]
	return body, ok
}

// Names returns section names in first-appearance order.
func (s *Sections) Names() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.order...)
}

func (s *Sections) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}
