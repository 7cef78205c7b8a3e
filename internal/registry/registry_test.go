package registry

import (
	"testing"

	"github.com/vovakirdan/carrot-jump/internal/core"
)

type stubGame struct {
	services Services
}

func (g *stubGame) ID() string                           { return "stub" }
func (g *stubGame) Title() string                        { return "Stub Game" }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub", func(s Services) Game { return &stubGame{services: s} })

	if !Exists("stub") {
		t.Fatal("registered game should exist")
	}

	found := false
	for _, info := range List() {
		if info.ID == "stub" {
			found = true
			if info.Title != "Stub Game" {
				t.Errorf("Title = %q", info.Title)
			}
		}
	}
	if !found {
		t.Error("List() should include the stub game")
	}

	g, err := Create("stub", Services{Difficulty: "hard", ConfigPath: "/tmp/x.yaml"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	sg := g.(*stubGame)
	if sg.services.Difficulty != "hard" || sg.services.ConfigPath != "/tmp/x.yaml" {
		t.Errorf("services not passed through: %+v", sg.services)
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no-such-game", Services{}); err == nil {
		t.Error("Create() of an unknown game should fail")
	}
	if Exists("no-such-game") {
		t.Error("Exists() of an unknown game should be false")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("dup", func(Services) Game { return &stubGame{} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("dup", func(Services) Game { return &stubGame{} })
}

func TestListSorted(t *testing.T) {
	Register("zz-last", func(Services) Game { return &stubGame{} })
	Register("aa-first", func(Services) Game { return &stubGame{} })

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID > list[i].ID {
			t.Fatalf("List() not sorted: %v", list)
		}
	}
}
