package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/ministryofjustice/create-and-vary-a-licence-api-sub003/pkg/policy"
	"github.com/ministryofjustice/create-and-vary-a-licence-api-sub003/pkg/policydiff"
	"github.com/ministryofjustice/create-and-vary-a-licence-api-sub003/pkg/policyloader"
	"github.com/ministryofjustice/create-and-vary-a-licence-api-sub003/pkg/readiness"
	"github.com/ministryofjustice/create-and-vary-a-licence-api-sub003/pkg/render"
)

// Policy engine attributes.
var (
	AttrOperation      = attribute.Key("licence.policy.operation")
	AttrPolicyVersion  = attribute.Key("licence.policy.version")
	AttrTargetVersion  = attribute.Key("licence.policy.target_version")
	AttrConditionKind  = attribute.Key("licence.condition.kind")
	AttrConditionCode  = attribute.Key("licence.condition.code")
	AttrChangeType     = attribute.Key("licence.condition.change_type")
	AttrLicenceKind    = attribute.Key("licence.kind")
	AttrConditionCount = attribute.Key("licence.condition.count")
)

// Operation names used for spans and the operation attribute.
const (
	OpRender    = "policy.render"
	OpReadiness = "policy.readiness"
	OpDiff      = "policy.diff"
	OpLoad      = "policy.load"
)

// Instruments wraps the policy engine entry points with spans and metrics.
type Instruments struct {
	p *Provider

	diffCounter     metric.Int64Counter
	notReadyCounter metric.Int64Counter
}

// NewInstruments registers the engine-specific counters on p's meter.
func NewInstruments(p *Provider) (*Instruments, error) {
	m := p.Meter()

	diffs, err := m.Int64Counter("licence.policy.diff.changes",
		metric.WithDescription("Condition changes reported by policy diffs"),
		metric.WithUnit("{change}"),
	)
	if err != nil {
		return nil, err
	}

	notReady, err := m.Int64Counter("licence.policy.readiness.incomplete",
		metric.WithDescription("Conditions found missing required data"),
		metric.WithUnit("{condition}"),
	)
	if err != nil {
		return nil, err
	}

	return &Instruments{p: p, diffCounter: diffs, notReadyCounter: notReady}, nil
}

// Render renders one condition from the catalogue.
func (i *Instruments) Render(ctx context.Context, cat *policy.Catalogue, kind policy.ConditionKind, version, code string, values []policy.FieldValue) (string, error) {
	_, done := i.p.TrackOperation(ctx, OpRender,
		AttrConditionKind.String(string(kind)),
		AttrPolicyVersion.String(version),
	)
	text, err := render.FromCatalogue(cat, kind, version, code, values)
	done(err)
	return text, err
}

// CheckLicence evaluates readiness for every instance on a licence.
func (i *Instruments) CheckLicence(ctx context.Context, cat *policy.Catalogue, instances []readiness.Instance) (map[string]bool, error) {
	ctx, done := i.p.TrackOperation(ctx, OpReadiness,
		AttrConditionCount.Int(len(instances)),
	)
	ready, err := readiness.CheckLicence(cat, instances)
	done(err)
	if err != nil {
		return nil, err
	}

	incomplete := 0
	for _, ok := range ready {
		if !ok {
			incomplete++
		}
	}
	if incomplete > 0 {
		i.notReadyCounter.Add(ctx, int64(incomplete))
	}
	return ready, nil
}

// CompareLicence diffs a licence against target and counts each change by type.
func (i *Instruments) CompareLicence(ctx context.Context, cat *policy.Catalogue, lic policydiff.Licence, target string) ([]policydiff.ConditionDiff, error) {
	ctx, done := i.p.TrackOperation(ctx, OpDiff,
		AttrLicenceKind.String(string(lic.Kind)),
		AttrPolicyVersion.String(lic.Version),
		AttrTargetVersion.String(target),
	)
	diffs, err := policydiff.CompareLicence(cat, lic, target)
	done(err)
	if err != nil {
		return nil, err
	}

	for _, d := range diffs {
		i.diffCounter.Add(ctx, 1, metric.WithAttributes(
			AttrChangeType.String(string(d.ChangeType)),
			AttrConditionKind.String(string(d.Kind)),
		))
	}
	return diffs, nil
}

// Load runs a full catalogue load.
func (i *Instruments) Load(ctx context.Context, l *policyloader.Loader) (*policy.Catalogue, error) {
	ctx, done := i.p.TrackOperation(ctx, OpLoad)
	cat, err := l.LoadAll(ctx)
	done(err)
	return cat, err
}
