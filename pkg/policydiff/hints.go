package policydiff

import "github.com/ministryofjustice/create-and-vary-a-licence-api-sub003/pkg/policy"

type hintEntry struct {
	replacements []string
	mode         policy.HintMode
}

// hintIndex merges hint tables by previous code. Tables from successive
// versions may each name the same code; their replacements are concatenated
// and the first explicit mode wins.
type hintIndex map[string]*hintEntry

func indexHints(hints []policy.ChangeHint) hintIndex {
	idx := make(hintIndex, len(hints))
	for _, h := range hints {
		e, ok := idx[h.PreviousCode]
		if !ok {
			e = &hintEntry{}
			idx[h.PreviousCode] = e
		}
		e.replacements = append(e.replacements, h.Replacements...)
		if e.mode == policy.HintUnspecified {
			e.mode = h.Mode
		}
	}
	return idx
}

// resolve follows the hints for code until it reaches codes present in
// current. A replacement missing from current is followed through its own
// hint entry, so chains across several versions collapse to their live
// endpoints. Results are deduplicated and keep hint order. The mode is the
// first explicit one met along the way.
func (idx hintIndex) resolve(code string, current policy.Slice) ([]string, policy.HintMode) {
	var (
		out     []string
		mode    policy.HintMode
		emitted = make(map[string]bool)
		visited = map[string]bool{code: true}
	)

	var walk func(string)
	walk = func(from string) {
		e, ok := idx[from]
		if !ok {
			return
		}
		if mode == policy.HintUnspecified {
			mode = e.mode
		}
		for _, r := range e.replacements {
			if current.Has(r) {
				if !emitted[r] {
					emitted[r] = true
					out = append(out, r)
				}
				continue
			}
			if visited[r] {
				continue
			}
			visited[r] = true
			walk(r)
		}
	}
	walk(code)

	return out, mode
}
