package registry

import (
	"testing"

	"github.com/vovakirdan/tui-match3/internal/core"
)

type stubGame struct {
	id     string
	closed *int
}

func (g stubGame) ID() string                           { return g.id }
func (g stubGame) Title() string                        { return "Stub " + g.id }
func (g stubGame) Reset(core.RuntimeConfig)             {}
func (g stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g stubGame) Render(*core.Screen)                  {}
func (g stubGame) State() core.GameState                { return core.GameState{} }
func (g stubGame) Close()                               { *g.closed++ }

func TestRegisterAndCreate(t *testing.T) {
	closed := 0
	Register("zz_stub", func() Game { return stubGame{id: "zz_stub", closed: &closed} })

	if !Exists("zz_stub") {
		t.Fatal("Exists() = false after Register")
	}
	if closed != 1 {
		t.Errorf("title probe closed %d times, want 1", closed)
	}

	g, err := Create("zz_stub")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "zz_stub" {
		t.Errorf("Create() ID = %q", g.ID())
	}

	var found bool
	for _, info := range List() {
		if info.ID == "zz_stub" {
			found = info.Title == "Stub zz_stub"
		}
	}
	if !found {
		t.Error("List() is missing the stub or its title")
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no-such-game"); err == nil {
		t.Error("Create() of unknown id succeeded")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	closed := 0
	f := func() Game { return stubGame{id: "zz_dup", closed: &closed} }
	Register("zz_dup", f)

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register did not panic")
		}
	}()
	Register("zz_dup", f)
}
