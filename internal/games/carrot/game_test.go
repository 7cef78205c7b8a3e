package carrot

import (
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/carrot-jump/internal/audio"
	"github.com/vovakirdan/carrot-jump/internal/config"
	"github.com/vovakirdan/carrot-jump/internal/core"
	"github.com/vovakirdan/carrot-jump/internal/registry"
)

func oneLife(cfg *config.CarrotConfig) {
	cfg.Progression.InitialLives = 1
}

func TestGameIdentity(t *testing.T) {
	tg := newTestGame(t, nil)
	if tg.ID() != "carrot" || tg.Title() != "Carrot Jump" {
		t.Errorf("ID/Title = %q/%q", tg.ID(), tg.Title())
	}
	if !registry.Exists(GameID) {
		t.Error("game should register itself")
	}
}

func TestSplashIsIdle(t *testing.T) {
	tg := newTestGame(t, nil)
	tg.steps(120)

	if tg.Phase() != PhaseSplash {
		t.Fatalf("Phase() = %v, expected splash", tg.Phase())
	}
	if tg.spawner.Count() != 0 {
		t.Errorf("%d objects spawned on the splash screen", tg.spawner.Count())
	}
	if tg.player.Y != 318 {
		t.Errorf("player moved on the splash screen: y=%v", tg.player.Y)
	}
	if tg.Generation() != 0 {
		t.Errorf("Generation() = %d before any run", tg.Generation())
	}
}

func TestActivateStartsRun(t *testing.T) {
	tg := newTestGame(t, nil)
	var starts int
	tg.Subscribe(EventGameStart, func(e Event) {
		starts++
		if e.State.Lives != 5 || e.State.Score != 0 || e.State.ScrollSpeed != 2 {
			t.Errorf("start state = %+v", e.State)
		}
	})

	tg.start(t)
	if starts != 1 || tg.Generation() != 1 {
		t.Errorf("starts=%d generation=%d", starts, tg.Generation())
	}

	tg.steps(10)
	if tg.spawner.Count() == 0 {
		t.Error("a platform should spawn once playing")
	}
}

func TestActivateJumpsWithDebounce(t *testing.T) {
	tg := newTestGame(t, nil)
	tg.start(t)

	tg.clock.Advance(10 * time.Millisecond)
	if tg.Activate() {
		t.Error("press within the debounce window should be dropped")
	}

	tg.clock.Advance(50 * time.Millisecond)
	if !tg.Activate() {
		t.Fatal("first jump should succeed")
	}
	if tg.player.VelocityY != -10 || !tg.player.IsJumping {
		t.Errorf("after jump: %+v", tg.player)
	}

	tg.clock.Advance(50 * time.Millisecond)
	if !tg.Activate() {
		t.Fatal("double jump should succeed")
	}
	tg.clock.Advance(50 * time.Millisecond)
	if tg.Activate() {
		t.Error("third jump should fail")
	}

	if n := tg.sound.count(audio.EffectJump); n != 2 {
		t.Errorf("jump sound played %d times, expected 2", n)
	}
}

func TestStepAppliesInputFrame(t *testing.T) {
	tg := newTestGame(t, nil)
	tg.machine.state.HighScore = 5
	in := core.NewInputFrame()
	in.Set(core.ActionActivate)

	tg.clock.Advance(tg.cfg.FrameTime())
	res := tg.Step(in)
	if tg.Phase() != PhasePlaying || res.State.GameOver {
		t.Fatalf("Phase() = %v after activate frame", tg.Phase())
	}

	reset := core.NewInputFrame()
	reset.Set(core.ActionResetHighScore)
	tg.clock.Advance(tg.cfg.FrameTime())
	tg.Step(reset)
	if tg.State().HighScore != 0 || tg.store.high != 0 {
		t.Errorf("high score not reset: state=%d store=%d", tg.State().HighScore, tg.store.high)
	}
}

func TestObstacleHitWithLivesLeft(t *testing.T) {
	tg := newTestGame(t, nil)
	var hits int
	tg.Subscribe(EventObstacleHit, func(Event) { hits++ })
	tg.start(t)
	tg.steps(5)

	tg.player.X = 104 // Off-centre so the respawn is visible
	tg.hitOnce()

	st := tg.machine.State()
	if st.Lives != 4 || hits != 1 {
		t.Fatalf("lives=%d hits=%d", st.Lives, hits)
	}
	if tg.Phase() != PhaseHitRecovery || !tg.player.Invulnerable {
		t.Errorf("Phase() = %v, invulnerable=%v", tg.Phase(), tg.player.Invulnerable)
	}
	if tg.player.X != 100 || tg.player.Y != 318 || tg.player.VelocityY != 0 {
		t.Errorf("player not reset: %+v", tg.player)
	}
	if st.ScreenShake != 500*time.Millisecond {
		t.Errorf("ScreenShake = %v", st.ScreenShake)
	}
	if len(tg.particles) != 10 {
		t.Errorf("%d particles, expected 10", len(tg.particles))
	}
	if tg.sound.count(audio.EffectHit) != 1 {
		t.Error("hit sound not played")
	}
	expectHearts(t, tg.lives.Hearts(), HeartFull, HeartFull, HeartFull, HeartFull, HeartFlashing)

	// Spikes pass through an invulnerable player
	tg.placeObstacle()
	tg.step()
	tg.spawner.obstacles = tg.spawner.obstacles[:0]
	if tg.machine.State().Lives != 4 {
		t.Errorf("invulnerable player lost a life")
	}

	tg.clock.Advance(time.Second)
	tg.step()
	expectHearts(t, tg.lives.Hearts(), HeartFull, HeartFull, HeartFull, HeartFull, HeartEmpty)
	if !tg.player.Invulnerable {
		t.Error("invulnerability ended early")
	}

	tg.clock.Advance(time.Second)
	tg.step()
	if tg.player.Invulnerable || tg.Phase() != PhasePlaying {
		t.Errorf("invulnerability should end after 2s, phase %v", tg.Phase())
	}
}

func TestInvulnerabilityKeyedByHit(t *testing.T) {
	tg := newTestGame(t, nil)
	tg.start(t)
	tg.hitOnce()

	tg.clock.Advance(time.Second)
	tg.handleHit(tg.clock.Now())
	if tg.machine.State().Lives != 3 {
		t.Fatalf("lives = %d", tg.machine.State().Lives)
	}

	// The first hit's expiry is due, but a newer hit owns the flag
	tg.clock.Advance(time.Second)
	tg.step()
	if !tg.player.Invulnerable {
		t.Error("a stale expiry cleared the second hit's invulnerability")
	}

	tg.clock.Advance(time.Second)
	tg.step()
	if tg.player.Invulnerable {
		t.Error("invulnerability should end 2s after the latest hit")
	}
}

func TestPickupCollection(t *testing.T) {
	tg := newTestGame(t, nil)
	var collected int
	tg.Subscribe(EventPickupCollected, func(Event) { collected++ })
	tg.start(t)

	tg.placePickup()
	tg.step()

	st := tg.machine.State()
	if st.Score != 100 || collected != 1 || tg.LastRun().Pickups != 1 {
		t.Errorf("score=%d collected=%d", st.Score, collected)
	}
	if st.ScrollSpeed != 2.25 {
		t.Errorf("ScrollSpeed = %v, expected 2.25", st.ScrollSpeed)
	}
	if tg.spawner.Score() != 100 {
		t.Errorf("spawner score = %d", tg.spawner.Score())
	}
	if len(tg.spawner.pickups) != 0 {
		t.Error("collected pickup should be removed")
	}
	if tg.sound.count(audio.EffectCarrot) != 1 {
		t.Error("carrot sound not played")
	}
	if len(tg.store.saves) != 1 || tg.store.saves[0] != 1 {
		t.Errorf("saves = %v, expected [1]", tg.store.saves)
	}
	if tg.State().Score != 1 {
		t.Errorf("State().Score = %d, expected 1 unit", tg.State().Score)
	}
}

func TestLastLifeStartsDeath(t *testing.T) {
	tg := newTestGame(t, oneLife)
	var deaths int
	tg.Subscribe(EventDeath, func(Event) { deaths++ })
	tg.start(t)
	tg.steps(3)

	tg.hitOnce()

	st := tg.machine.State()
	if tg.Phase() != PhaseDeathAnimating {
		t.Fatalf("Phase() = %v, expected death-animating", tg.Phase())
	}
	if tg.player.VelocityY != -10 {
		t.Errorf("VelocityY = %v, expected the jump force", tg.player.VelocityY)
	}
	if !st.DeathAnimation.Active || st.DeathAnimation.FinalY != 318 || st.Lives != 0 {
		t.Errorf("state = %+v", st)
	}
	if tg.player.Invulnerable {
		t.Error("dying player should not be invulnerable")
	}
	if deaths != 1 || tg.sound.count(audio.EffectDeath) != 1 {
		t.Errorf("deaths=%d death sounds=%d", deaths, tg.sound.count(audio.EffectDeath))
	}

	tg.clock.Advance(100 * time.Millisecond)
	if tg.Activate() {
		t.Error("input should be ignored during the death animation")
	}
}

func TestGameOverFiresOnce(t *testing.T) {
	tg := newTestGame(t, oneLife)
	var overs []Event
	tg.Subscribe(EventGameOver, func(e Event) { overs = append(overs, e) })
	tg.start(t)
	tg.hitOnce()

	deathStart := tg.machine.State().DeathAnimation.StartTime
	tg.steps(200)
	before := tg.spawner.nextID
	tg.steps(60)

	if len(overs) != 1 {
		t.Fatalf("GameOver fired %d times, expected once", len(overs))
	}
	elapsed := overs[0].State.GameOverStartTime.Sub(deathStart)
	if elapsed < time.Second || elapsed >= time.Second+tg.cfg.FrameTime() {
		t.Errorf("game over after %v, expected on the first tick past 1s", elapsed)
	}
	if tg.Phase() != PhaseGameOver {
		t.Errorf("Phase() = %v", tg.Phase())
	}
	if tg.player.Y != 318 || math.Abs(tg.player.Rotation-math.Pi/2) > 1e-9 {
		t.Errorf("final pose y=%v rotation=%v", tg.player.Y, tg.player.Rotation)
	}
	if tg.sound.count(audio.EffectGameOver) != 1 {
		t.Error("game over sound should play once")
	}
	if tg.spawner.nextID != before {
		t.Error("objects spawned after game over")
	}
	if tg.machine.State().ScrollSpeed != 0 {
		t.Errorf("ScrollSpeed = %v, expected decay to 0", tg.machine.State().ScrollSpeed)
	}
	if !tg.Snapshot().RestartReady {
		t.Error("restart should be ready 2s after game over")
	}
}

func TestDeathAnimationKeepsWorldMoving(t *testing.T) {
	tg := newTestGame(t, oneLife)
	tg.start(t)
	tg.hitOnce()
	tg.spawner.Clear()

	tg.step()

	if tg.Phase() != PhaseDeathAnimating {
		t.Fatalf("Phase() = %v, expected death-animating", tg.Phase())
	}
	if n := len(tg.spawner.Platforms()); n != 1 {
		t.Errorf("%d platforms spawned during the death animation, expected 1", n)
	}
	if st := tg.machine.State(); st.ScrollSpeed != 2 {
		t.Errorf("ScrollSpeed = %v, expected 2 until game over", st.ScrollSpeed)
	}
}

func TestNewFromServicesTickRate(t *testing.T) {
	tests := []struct {
		name     string
		rate     int
		expected int
	}{
		{"override", 30, 30},
		{"zero keeps config", 0, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewFromServices(registry.Services{
				ConfigPath: filepath.Join(t.TempDir(), "missing.yaml"),
				TickRate:   tt.rate,
				Logger:     quietLogger(),
			})
			if fps := g.Config().Canvas.FPS; fps != tt.expected {
				t.Errorf("FPS = %d, expected %d", fps, tt.expected)
			}
			if ft := g.Config().FrameTime(); ft != time.Second/time.Duration(tt.expected) {
				t.Errorf("FrameTime() = %v", ft)
			}
		})
	}
}

func TestRestartEligibility(t *testing.T) {
	tg := newTestGame(t, oneLife)
	tg.start(t)
	tg.hitOnce()
	tg.steps(65)

	if tg.Phase() != PhaseGameOver {
		t.Fatalf("Phase() = %v, expected game over", tg.Phase())
	}
	over := tg.machine.State().GameOverStartTime

	var ready int
	tg.Subscribe(EventRestartReady, func(Event) { ready++ })

	tg.clock.Set(over.Add(1950 * time.Millisecond))
	if tg.Activate() {
		t.Error("restart before 2000ms should be refused")
	}

	tg.clock.Set(over.Add(2000 * time.Millisecond))
	if !tg.Activate() {
		t.Fatal("restart at 2000ms should succeed")
	}
	if tg.Phase() != PhasePlaying || tg.Generation() != 2 {
		t.Errorf("Phase() = %v generation=%d", tg.Phase(), tg.Generation())
	}
	if tg.scheduler.Pending() != 0 {
		t.Errorf("%d stale tasks survived the restart", tg.scheduler.Pending())
	}

	st := tg.machine.State()
	if st.Lives != 1 || st.Score != 0 || st.GameOver || st.DeathAnimation.Active || st.ScrollSpeed != 2 {
		t.Errorf("state after restart = %+v", st)
	}
	if tg.player.Rotation != 0 || tg.player.Y != 318 {
		t.Errorf("player after restart = %+v", tg.player)
	}

	tg.steps(200)
	if ready != 0 {
		t.Error("the previous run's restart task fired in the new run")
	}
}

func TestResetReturnsToSplash(t *testing.T) {
	tg := newTestGame(t, nil)
	var starts int
	tg.Subscribe(EventGameStart, func(Event) { starts++ })
	tg.start(t)
	tg.placePickup()
	tg.step()
	tg.hitOnce()

	tg.Reset(core.DefaultConfig())

	if tg.Phase() != PhaseSplash || tg.spawner.Count() != 0 || tg.scheduler.Pending() != 0 {
		t.Errorf("phase=%v objects=%d tasks=%d", tg.Phase(), tg.spawner.Count(), tg.scheduler.Pending())
	}
	if tg.State().HighScore != 1 {
		t.Errorf("Reset lost the high score: %d", tg.State().HighScore)
	}
	if tg.player.Invulnerable {
		t.Error("Reset should clear invulnerability")
	}

	tg.clock.Advance(time.Second)
	tg.start(t)
	if starts != 2 {
		t.Errorf("subscribers lost across Reset: %d starts", starts)
	}
}

func TestLastRun(t *testing.T) {
	tg := newTestGame(t, oneLife)
	tg.Game.diffLabel = "hard"
	tg.start(t)
	begin := tg.clock.Now()

	for range 3 {
		tg.placePickup()
		tg.step()
	}
	tg.hitOnce()
	tg.steps(70)

	run := tg.LastRun()
	if run.Score != 300 || run.Units != 3 || run.Pickups != 3 || run.Difficulty != "hard" {
		t.Errorf("LastRun() = %+v", run)
	}
	over := tg.machine.State().GameOverStartTime
	if run.Duration != over.Sub(begin) {
		t.Errorf("Duration = %v, expected %v", run.Duration, over.Sub(begin))
	}
}

func TestOnFrameReceivesSnapshots(t *testing.T) {
	tg := newTestGame(t, nil)
	var frames []Snapshot
	tg.OnFrame(func(s Snapshot) { frames = append(frames, s) })

	tg.steps(2)
	tg.start(t)
	tg.steps(3)

	if len(frames) != 5 {
		t.Fatalf("got %d frames, expected 5", len(frames))
	}
	if frames[0].Phase != PhaseSplash || frames[4].Phase != PhasePlaying {
		t.Errorf("phases %v .. %v", frames[0].Phase, frames[4].Phase)
	}
	if frames[4].Tick != 5 || frames[4].Generation != 1 {
		t.Errorf("last frame tick=%d generation=%d", frames[4].Tick, frames[4].Generation)
	}

	// Snapshots are copies
	if len(frames[4].Platforms) > 0 {
		frames[4].Platforms[0].X = -999
		if tg.spawner.platforms[0].X == -999 {
			t.Error("snapshot shares memory with the spawner")
		}
	}
}

func TestPlayerVisibleBlinks(t *testing.T) {
	snap := Snapshot{Config: config.DefaultCarrotConfig()}
	snap.Now = time.UnixMilli(1000)
	if !snap.PlayerVisible() {
		t.Error("vulnerable player is always visible")
	}

	snap.Player.Invulnerable = true
	visible := 0
	for ms := int64(0); ms < 1000; ms += 50 {
		snap.Now = time.UnixMilli(ms)
		if snap.PlayerVisible() {
			visible++
		}
	}
	if visible != 10 {
		t.Errorf("visible in %d of 20 samples, expected 10", visible)
	}
}

func TestRender(t *testing.T) {
	tg := newTestGame(t, oneLife)
	screen := core.NewScreen(80, 24)

	tg.Render(screen)
	if !strings.Contains(screen.String(), "CARROT JUMP") {
		t.Errorf("splash screen missing title:\n%s", screen.String())
	}

	tg.start(t)
	tg.step()
	screen.Clear()
	tg.Render(screen)
	out := screen.String()
	if !strings.ContainsRune(out, PlayerChar) || !strings.ContainsRune(out, HeartFullChar) {
		t.Errorf("playing frame missing player or hearts:\n%s", out)
	}

	tg.hitOnce()
	tg.steps(70)
	screen.Clear()
	tg.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Errorf("game over screen missing banner:\n%s", screen.String())
	}

	// Tiny screens must not panic
	tg.Render(core.NewScreen(3, 2))
}
