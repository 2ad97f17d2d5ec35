package keys

// Binding associates a trigger key with a named command. Bindings are
// registered once at startup and never change afterwards.
type Binding struct {
	Trigger Key
	Command string
}

// MatchTrigger resolves a finalized combination against the registered
// bindings. Pressed events are scanned in temporal order and the first
// one whose key is a registered trigger decides the match; when the same
// key is bound more than once the first-registered binding wins.
// Combinations that press no trigger key simply do not match.
func MatchTrigger(c Combination, bindings []Binding) (string, bool) {
	for _, e := range c {
		if e.State != Pressed {
			continue
		}
		for _, b := range bindings {
			if b.Trigger == e.Key {
				return b.Command, true
			}
		}
	}
	return "", false
}
