package licensegate

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// fakeProvider serves canned license lists and records every Describe call.
type fakeProvider struct {
	licenses map[string][]License
	errs     map[string]error
	calls    []string
}

func (p *fakeProvider) Describe(_ context.Context, ref DependencyRef) ([]License, error) {
	id := ref.ConflictID()
	p.calls = append(p.calls, id)
	if err, ok := p.errs[id]; ok {
		return nil, err
	}
	return p.licenses[id], nil
}

func dep(group, artifact, version string) DependencyRef {
	return DependencyRef{GroupID: group, ArtifactID: artifact, Version: version}
}

func Test_DriverValidateFailFast(t *testing.T) {
	a := dep("com.example", "a", "1.0")
	b := dep("com.example", "b", "1.0")

	provider := &fakeProvider{
		licenses: map[string][]License{
			a.ConflictID(): {{Name: "GPL-3.0"}},
			b.ConflictID(): {{Name: "GPL-3.0"}},
		},
	}
	policy := mustPolicy(t, PolicyConfig{BannedLicenses: []string{"GPL.*"}, FailFast: true})

	result, err := NewDriver(provider, policy).Validate(context.Background(), []DependencyRef{a, b})
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}

	if !result.Aborted {
		t.Error("expected the run to abort at the first violation")
	}
	if !result.Failed() {
		t.Error("expected the run to fail")
	}
	if len(result.Verdicts) != 1 {
		t.Fatalf("expected exactly one verdict, got %d", len(result.Verdicts))
	}
	if got := result.Verdicts[0].Dependency; got != a {
		t.Errorf("expected the first failing dependency to be recorded, got %v", got)
	}
	if diff := cmp.Diff([]string{a.ConflictID()}, provider.calls); diff != "" {
		t.Errorf("provider was invoked past the first failure (-want +got):\n%s", diff)
	}
}

func Test_DriverValidateCollectAll(t *testing.T) {
	a := dep("com.example", "a", "1.0")
	b := dep("com.example", "b", "1.0")
	c := dep("com.example", "c", "1.0")

	provider := &fakeProvider{
		licenses: map[string][]License{
			a.ConflictID(): {{Name: "GPL-3.0"}},
			b.ConflictID(): {{Name: "MIT"}},
			c.ConflictID(): {{Name: "GPL-2.0"}},
		},
	}
	policy := mustPolicy(t, PolicyConfig{AllowedLicenses: []string{"MIT"}, BannedLicenses: []string{"GPL.*"}})

	result, err := NewDriver(provider, policy).Validate(context.Background(), []DependencyRef{a, b, c})
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}

	if result.Aborted {
		t.Error("expected the run to evaluate the whole set")
	}
	if !result.Failed() {
		t.Error("expected the run to fail overall")
	}
	if len(result.Verdicts) != 3 {
		t.Fatalf("expected three verdicts, got %d", len(result.Verdicts))
	}

	failed := result.FailedVerdicts()
	if len(failed) != 2 {
		t.Fatalf("expected two failing verdicts, got %d", len(failed))
	}
	if failed[0].Dependency != a || failed[1].Dependency != c {
		t.Errorf("unexpected failing dependencies: %v, %v", failed[0].Dependency, failed[1].Dependency)
	}
}

func Test_DriverValidateResolutionErrorAborts(t *testing.T) {
	a := dep("com.example", "a", "1.0")
	b := dep("com.example", "b", "1.0")

	provider := &fakeProvider{
		licenses: map[string][]License{},
		errs: map[string]error{
			a.ConflictID(): &ResolutionError{Ref: a, Err: errors.New("connection refused")},
		},
	}
	// even without fail-fast a resolution failure is fatal
	policy := mustPolicy(t, PolicyConfig{AllowedLicenses: []string{"MIT"}, FailFast: false})

	result, err := NewDriver(provider, policy).Validate(context.Background(), []DependencyRef{a, b})
	if err == nil {
		t.Fatal("expected a resolution error")
	}
	if result != nil {
		t.Errorf("expected no result on resolution failure, got %+v", result)
	}

	var resolution *ResolutionError
	if !errors.As(err, &resolution) {
		t.Fatalf("expected a *ResolutionError, got %T", err)
	}
	if resolution.Ref != a {
		t.Errorf("resolution error ref = %v, want %v", resolution.Ref, a)
	}
	if len(provider.calls) != 1 {
		t.Errorf("expected the run to stop after the failed fetch, got calls %v", provider.calls)
	}
}

func Test_DriverValidateWrapsPlainProviderErrors(t *testing.T) {
	a := dep("com.example", "a", "1.0")
	provider := &fakeProvider{
		errs: map[string]error{a.ConflictID(): fmt.Errorf("disk on fire")},
	}
	policy := mustPolicy(t, PolicyConfig{})

	_, err := NewDriver(provider, policy).Validate(context.Background(), []DependencyRef{a})
	var resolution *ResolutionError
	if !errors.As(err, &resolution) {
		t.Fatalf("expected the plain error to be wrapped in *ResolutionError, got %T", err)
	}
}

func Test_DriverValidatePassingRun(t *testing.T) {
	a := dep("com.example", "a", "1.0")
	b := dep("com.example", "b", "1.0")

	provider := &fakeProvider{
		licenses: map[string][]License{
			a.ConflictID(): {{Name: "MIT"}},
			b.ConflictID(): nil,
		},
	}
	policy := mustPolicy(t, PolicyConfig{
		AllowedLicenses:   []string{"MIT"},
		AllowedUnlicensed: []string{`com\.example:b:.*`},
		FailFast:          true,
	})

	result, err := NewDriver(provider, policy).Validate(context.Background(), []DependencyRef{a, b})
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if result.Failed() {
		t.Errorf("expected a passing run, got %+v", result.Verdicts)
	}
	if result.Aborted {
		t.Error("expected a completed run")
	}
	if result.Err() != nil {
		t.Errorf("expected no aggregate error, got %v", result.Err())
	}
}

func Test_DriverValidateCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	provider := &fakeProvider{}
	policy := mustPolicy(t, PolicyConfig{})

	_, err := NewDriver(provider, policy).Validate(ctx, []DependencyRef{dep("com.example", "a", "1.0")})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(provider.calls) != 0 {
		t.Errorf("expected no provider calls after cancellation, got %v", provider.calls)
	}
}
