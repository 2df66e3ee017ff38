package policy

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Masterminds/semver/v3"
)

var (
	ErrVersionNotFound   = errors.New("policy version not found")
	ErrConditionNotFound = errors.New("condition not found")
	ErrInvalidVersion    = errors.New("invalid policy version")
	ErrDuplicateVersion  = errors.New("duplicate policy version")
	ErrDuplicateCode     = errors.New("duplicate condition code")
)

// Slice is the condition pool of one kind within one policy version.
type Slice struct {
	Version    string
	Kind       ConditionKind
	conditions []ConditionTemplate
	index      map[string]int
}

// NewSlice indexes conditions by code. Later duplicates are ignored; use
// NewCatalogue for validated construction.
func NewSlice(version string, kind ConditionKind, conditions []ConditionTemplate) Slice {
	s := Slice{
		Version:    version,
		Kind:       kind,
		conditions: conditions,
		index:      make(map[string]int, len(conditions)),
	}
	for i, c := range conditions {
		if _, ok := s.index[c.Code]; !ok {
			s.index[c.Code] = i
		}
	}
	return s
}

// Lookup returns the template with the given code.
func (s Slice) Lookup(code string) (ConditionTemplate, bool) {
	i, ok := s.index[code]
	if !ok {
		return ConditionTemplate{}, false
	}
	return s.conditions[i], true
}

// Has reports whether code exists in the slice.
func (s Slice) Has(code string) bool {
	_, ok := s.index[code]
	return ok
}

// Conditions returns the templates in catalogue order.
func (s Slice) Conditions() []ConditionTemplate {
	return s.conditions
}

type entry struct {
	policy *Policy
	semver *semver.Version
	slices map[ConditionKind]Slice
}

// Catalogue is an immutable set of policy versions. It is safe for
// concurrent use without locking once constructed.
type Catalogue struct {
	entries map[string]*entry
	order   []string // ascending
}

// NewCatalogue validates and indexes the given policies.
func NewCatalogue(policies ...*Policy) (*Catalogue, error) {
	c := &Catalogue{entries: make(map[string]*entry, len(policies))}
	canonical := make(map[string]string, len(policies))

	for _, p := range policies {
		if p == nil {
			continue
		}
		sv, err := ParseVersion(p.Version)
		if err != nil {
			return nil, err
		}
		if prev, ok := canonical[sv.String()]; ok {
			return nil, fmt.Errorf("%w: %q and %q", ErrDuplicateVersion, prev, p.Version)
		}
		canonical[sv.String()] = p.Version

		e := &entry{policy: p, semver: sv, slices: make(map[ConditionKind]Slice, len(Kinds))}
		for _, k := range Kinds {
			templates := p.Templates(k)
			seen := make(map[string]bool, len(templates))
			for _, t := range templates {
				if seen[t.Code] {
					return nil, fmt.Errorf("%w: %s %s in version %s", ErrDuplicateCode, k, t.Code, p.Version)
				}
				seen[t.Code] = true
			}
			e.slices[k] = NewSlice(p.Version, k, templates)
		}
		c.entries[p.Version] = e
		c.order = append(c.order, p.Version)
	}

	sort.Slice(c.order, func(i, j int) bool {
		return c.entries[c.order[i]].semver.LessThan(c.entries[c.order[j]].semver)
	})

	return c, nil
}

// Versions returns every version in ascending order.
func (c *Catalogue) Versions() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Current returns the newest policy, or nil for an empty catalogue.
func (c *Catalogue) Current() *Policy {
	if len(c.order) == 0 {
		return nil
	}
	return c.entries[c.order[len(c.order)-1]].policy
}

// Policy returns the policy for an exact version string, falling back to a
// semantically equal version ("2.1" matches "2.1.0").
func (c *Catalogue) Policy(version string) (*Policy, error) {
	e, err := c.lookup(version)
	if err != nil {
		return nil, err
	}
	return e.policy, nil
}

// Slice returns the pool of kind k for version.
func (c *Catalogue) Slice(version string, k ConditionKind) (Slice, error) {
	e, err := c.lookup(version)
	if err != nil {
		return Slice{}, err
	}
	return e.slices[k], nil
}

// Condition looks up a template by kind, version and code.
func (c *Catalogue) Condition(k ConditionKind, version, code string) (ConditionTemplate, error) {
	s, err := c.Slice(version, k)
	if err != nil {
		return ConditionTemplate{}, err
	}
	t, ok := s.Lookup(code)
	if !ok {
		return ConditionTemplate{}, fmt.Errorf("%w: %s %s in version %s", ErrConditionNotFound, k, code, version)
	}
	return t, nil
}

// IsUpgrade reports whether to is strictly newer than from.
func (c *Catalogue) IsUpgrade(from, to string) (bool, error) {
	ef, err := c.lookup(from)
	if err != nil {
		return false, err
	}
	et, err := c.lookup(to)
	if err != nil {
		return false, err
	}
	return et.semver.GreaterThan(ef.semver), nil
}

// HintsBetween collects the change hints of every version newer than from
// and no newer than to, oldest first.
func (c *Catalogue) HintsBetween(from, to string) ([]ChangeHint, error) {
	ef, err := c.lookup(from)
	if err != nil {
		return nil, err
	}
	et, err := c.lookup(to)
	if err != nil {
		return nil, err
	}

	var hints []ChangeHint
	for _, v := range c.order {
		e := c.entries[v]
		if e.semver.GreaterThan(ef.semver) && !e.semver.GreaterThan(et.semver) {
			hints = append(hints, e.policy.ChangeHints...)
		}
	}
	return hints, nil
}

func (c *Catalogue) lookup(version string) (*entry, error) {
	if e, ok := c.entries[version]; ok {
		return e, nil
	}
	sv, err := semver.NewVersion(version)
	if err == nil {
		for _, e := range c.entries {
			if e.semver.Equal(sv) {
				return e, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrVersionNotFound, version)
}
