package di

import (
	stderrors "errors"
	"testing"

	wkerrors "github.com/skillsenselab/wirekit/errors"
)

// ── Longest-constructor selection ──

type axle struct{}
type wheel struct{}

type cart struct {
	a    *axle
	w    *wheel
	from string
}

func newEmptyCart() *cart { return &cart{from: "zero"} }

func newFullCart(a *axle, w *wheel) *cart {
	return &cart{a: a, w: w, from: "full"}
}

func TestLongestConstructorWins(t *testing.T) {
	MustRegisterConstructor(newEmptyCart)
	MustRegisterConstructor(newFullCart)

	c := New()
	got := MustResolve[*cart](c)
	if got.from != "full" {
		t.Errorf("expected the arity-2 constructor, got %q", got.from)
	}
	if got.a == nil || got.w == nil {
		t.Error("expected both parameters resolved before construction")
	}
}

type bolt struct{}
type nut struct{}

type clamp struct{ how string }

func newClampA(b *bolt, n *nut) *clamp { return &clamp{how: "a"} }
func newClampB(n *nut, b *bolt) *clamp { return &clamp{how: "b"} }

func TestAmbiguousConstructorFails(t *testing.T) {
	MustRegisterConstructor(newClampA)
	MustRegisterConstructor(newClampB)

	c := New()
	_, err := c.Resolve(KeyOf[*clamp]())
	if err == nil {
		t.Fatal("expected error for tied constructor arity")
	}
	if !wkerrors.IsCode(err, wkerrors.ErrCodeAmbiguousConstructor) {
		t.Errorf("expected ambiguous-constructor error, got %v", err)
	}
}

// ── End-to-end object graph ──

// Non-zero-size so each allocation has a distinct address; pointers to
// zero-size values all share the runtime's zerobase and compare equal.
type partA struct{ _ byte }
type partC struct{ _ byte }

type assembly struct {
	a *partA
	c *partC
}

func newAssembly(a *partA, c *partC) *assembly {
	return &assembly{a: a, c: c}
}

func TestEndToEndGraphBuild(t *testing.T) {
	MustRegisterConstructor(newAssembly)

	c := New()
	got := MustResolve[*assembly](c)
	if got.a == nil || got.c == nil {
		t.Fatal("expected freshly constructed dependencies")
	}

	// Dependencies are transient: a second graph gets fresh parts.
	again := MustResolve[*assembly](c)
	if got.a == again.a {
		t.Error("expected distinct dependency instances across builds")
	}
}

// ── Constructor result shapes and error propagation ──

type flaky struct{}

var errFlaky = stderrors.New("flaky init")

func newFlaky() (*flaky, error) { return nil, errFlaky }

func TestConstructorErrorPropagatesUnwrapped(t *testing.T) {
	MustRegisterConstructor(newFlaky)

	c := New()
	_, err := c.Resolve(KeyOf[*flaky]())
	if err != errFlaky {
		t.Errorf("expected the constructor error itself, got %v", err)
	}
}

type wired struct{ c *Container }

func newWired(c *Container) *wired { return &wired{c: c} }

func TestContainerParameterIsInjected(t *testing.T) {
	MustRegisterConstructor(newWired)

	c := New()
	got := MustResolve[*wired](c)
	if got.c != c {
		t.Error("expected the resolving container to be injected")
	}
}

// ── Self-reference guard ──

type node struct {
	next *node
}

func newNode(next *node) *node { return &node{next: next} }

func TestSelfReferenceGuardBreaksRecursion(t *testing.T) {
	MustRegisterConstructor(newNode)

	c := New()
	got := MustResolve[*node](c)
	if got.next == nil {
		t.Fatal("expected a bare instance for the self-referential parameter")
	}
	if got.next.next != nil {
		t.Error("expected the bare instance to stop the recursion")
	}
}

// ── Synthesized-factory cache ──

type stamped struct{}

var stampedBuilds int

func newStamped() *stamped {
	stampedBuilds++
	return &stamped{}
}

func TestSynthesizedFactoryIsSharedAcrossContainers(t *testing.T) {
	MustRegisterConstructor(newStamped)

	c1 := New()
	c2 := New()
	MustResolve[*stamped](c1)
	MustResolve[*stamped](c2)

	if stampedBuilds != 2 {
		t.Errorf("expected one build per resolve, got %d", stampedBuilds)
	}
	if _, ok := synthesizedFactories.Load(KeyOf[*stamped]()); !ok {
		t.Error("expected the synthesized factory in the process-global cache")
	}
}

// ── Candidate registration validation ──

func TestRegisterConstructorRejectsNonFunction(t *testing.T) {
	if err := RegisterConstructor(42); err == nil {
		t.Error("expected error for non-function candidate")
	}
}

func TestRegisterConstructorRejectsBadResults(t *testing.T) {
	if err := RegisterConstructor(func() {}); err == nil {
		t.Error("expected error for constructor with no results")
	}
	if err := RegisterConstructor(func() error { return nil }); err == nil {
		t.Error("expected error for constructor producing only an error")
	}
	if err := RegisterConstructor(func() (*widget, int) { return nil, 0 }); err == nil {
		t.Error("expected error for non-error second result")
	}
	if err := RegisterConstructor(func(xs ...int) *widget { return nil }); err == nil {
		t.Error("expected error for variadic constructor")
	}
}

func TestMustRegisterConstructorPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for invalid candidate")
		}
	}()
	MustRegisterConstructor("not a function")
}

// ── Parameterless fallback ──

type plain struct{ n int }

func TestStructWithoutCandidatesUsesZeroValue(t *testing.T) {
	c := New()
	got := MustResolve[*plain](c)
	if got == nil || got.n != 0 {
		t.Errorf("expected zero-value instance, got %#v", got)
	}
}

func TestValueStructResolves(t *testing.T) {
	c := New()
	v, err := c.Resolve(KeyOf[plain]())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if _, ok := v.(plain); !ok {
		t.Errorf("expected a plain value, got %T", v)
	}
}
