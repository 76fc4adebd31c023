package animation

import "testing"

func newTestManager() *Manager {
	m := NewManager()
	m.Initialize()
	return m
}

// TestManager_InitializeIdempotent verifies double initialization succeeds
// and leaves exactly one empty pair of registries.
func TestManager_InitializeIdempotent(t *testing.T) {
	m := NewManager()
	m.Initialize()
	m.Initialize()

	if len(m.ClipNames()) != 0 {
		t.Errorf("ClipNames() = %v, want empty", m.ClipNames())
	}
	if m.ActivePlayerCount() != 0 {
		t.Errorf("ActivePlayerCount() = %d, want 0", m.ActivePlayerCount())
	}

	m.CreateClip("x")
	m.Initialize()
	if len(m.ClipNames()) != 1 {
		t.Errorf("re-Initialize cleared the clip registry: %v", m.ClipNames())
	}
}

// TestManager_ClipRegistry exercises create/add/get/remove.
func TestManager_ClipRegistry(t *testing.T) {
	m := newTestManager()

	clip := m.CreateClip("walk")
	if clip == nil {
		t.Fatal("CreateClip returned nil")
	}
	if m.GetClip("walk") != clip {
		t.Error("GetClip does not return the created clip")
	}
	if m.GetClip("missing") != nil {
		t.Error("GetClip for unknown name should be nil")
	}

	other := NewClip("run")
	m.AddClip(other)
	names := m.ClipNames()
	if len(names) != 2 || names[0] != "run" || names[1] != "walk" {
		t.Errorf("ClipNames() = %v, want [run walk]", names)
	}

	m.RemoveClip("walk")
	if m.GetClip("walk") != nil {
		t.Error("clip still registered after RemoveClip")
	}

	// Nil adds are ignored.
	m.AddClip(nil)
	if len(m.ClipNames()) != 1 {
		t.Errorf("ClipNames() = %v after nil AddClip, want [run]", m.ClipNames())
	}
}

// TestManager_PlayClip verifies player creation, reuse and the looping flag
// overwrite.
func TestManager_PlayClip(t *testing.T) {
	m := newTestManager()
	clip := m.CreateClip("bounce")
	clip.AddCurve("Ball", PositionX, linearCurve([2]float64{0, 0}, [2]float64{4, 4}))

	m.PlayClip("bounce", false)
	if !m.IsPlaying("bounce") {
		t.Fatal("IsPlaying = false after PlayClip")
	}
	if m.ActivePlayerCount() != 1 {
		t.Errorf("ActivePlayerCount() = %d, want 1", m.ActivePlayerCount())
	}

	// Re-playing reuses the player and keeps its cursor.
	player := m.Player("bounce")
	player.SetTime(2)
	m.PlayClip("bounce", true)
	if m.Player("bounce") != player {
		t.Error("PlayClip created a new player for an active clip")
	}
	if player.Time() != 2 {
		t.Errorf("player time = %v, want 2 (resume, not restart)", player.Time())
	}
	if !player.IsLooping() {
		t.Error("looping flag was not overwritten by the second PlayClip")
	}

	// Missing clip is a no-op.
	m.PlayClip("ghost", false)
	if m.ActivePlayerCount() != 1 {
		t.Errorf("ActivePlayerCount() = %d after playing missing clip, want 1", m.ActivePlayerCount())
	}
}

// TestManager_StopVsPause verifies StopClip removes the player while
// PauseClip keeps it registered.
func TestManager_StopVsPause(t *testing.T) {
	m := newTestManager()
	clip := m.CreateClip("spin")
	clip.AddCurve("Top", RotationY, linearCurve([2]float64{0, 0}, [2]float64{4, 360}))

	m.PlayClip("spin", true)
	m.PauseClip("spin")
	if m.IsPlaying("spin") {
		t.Error("IsPlaying = true after pause")
	}
	if m.ActivePlayerCount() != 1 {
		t.Errorf("ActivePlayerCount() = %d after pause, want 1 (player stays registered)", m.ActivePlayerCount())
	}

	m.StopClip("spin")
	if m.ActivePlayerCount() != 0 {
		t.Errorf("ActivePlayerCount() = %d after stop, want 0", m.ActivePlayerCount())
	}
	if m.Player("spin") != nil {
		t.Error("Player() should be nil after StopClip")
	}
}

// TestManager_Retirement verifies one-shot players self-retire on the Update
// pass that completes them.
func TestManager_Retirement(t *testing.T) {
	m := newTestManager()
	clip := m.CreateClip("X")
	clip.AddCurve("Ball", PositionX, linearCurve([2]float64{0, 0}, [2]float64{1, 1}))

	m.PlayClip("X", false)
	m.Update(1.5, newFakeScene("Ball"))

	if m.IsPlaying("X") {
		t.Error("IsPlaying = true after the clip completed")
	}
	if m.ActivePlayerCount() != 0 {
		t.Errorf("ActivePlayerCount() = %d, want 0", m.ActivePlayerCount())
	}
}

// TestManager_LoopingPlayerSurvivesUpdate verifies looping players are not
// retired.
func TestManager_LoopingPlayerSurvivesUpdate(t *testing.T) {
	m := newTestManager()
	clip := m.CreateClip("loop")
	clip.AddCurve("Ball", PositionX, linearCurve([2]float64{0, 0}, [2]float64{1, 1}))

	m.PlayClip("loop", true)
	for i := 0; i < 10; i++ {
		m.Update(0.4, newFakeScene("Ball"))
	}

	if !m.IsPlaying("loop") {
		t.Error("looping player was retired")
	}
}

// TestManager_UpdateGuards verifies Update no-ops when uninitialized or
// without a scene.
func TestManager_UpdateGuards(t *testing.T) {
	m := NewManager()
	clip := NewClip("x")
	clip.AddCurve("Ball", PositionX, linearCurve([2]float64{0, 0}, [2]float64{4, 4}))
	m.AddClip(clip)
	m.PlayClip("x", false)

	// Uninitialized: players keep their cursor.
	m.Update(1, newFakeScene("Ball"))
	if p := m.Player("x"); p != nil && p.Time() != 0 {
		t.Errorf("uninitialized Update advanced time to %v", p.Time())
	}

	m.Initialize()
	m.Update(1, nil)
	if p := m.Player("x"); p != nil && p.Time() != 0 {
		t.Errorf("nil-scene Update advanced time to %v", p.Time())
	}
}

// TestManager_RemoveClipStopsPlayer verifies RemoveClip also retires the
// clip's active player.
func TestManager_RemoveClipStopsPlayer(t *testing.T) {
	m := newTestManager()
	clip := m.CreateClip("gone")
	clip.AddCurve("Ball", PositionX, linearCurve([2]float64{0, 0}, [2]float64{4, 4}))

	m.PlayClip("gone", true)
	m.RemoveClip("gone")

	if m.ActivePlayerCount() != 0 {
		t.Errorf("ActivePlayerCount() = %d, want 0", m.ActivePlayerCount())
	}
	if m.GetClip("gone") != nil {
		t.Error("clip still registered")
	}
}

// TestManager_StopAll verifies StopAll clears every active player.
func TestManager_StopAll(t *testing.T) {
	m := newTestManager()
	for _, name := range []string{"a", "b", "c"} {
		clip := m.CreateClip(name)
		clip.AddCurve("Ball", PositionX, linearCurve([2]float64{0, 0}, [2]float64{4, 4}))
		m.PlayClip(name, true)
	}

	if m.ActivePlayerCount() != 3 {
		t.Fatalf("ActivePlayerCount() = %d, want 3", m.ActivePlayerCount())
	}

	m.StopAll()
	if m.ActivePlayerCount() != 0 {
		t.Errorf("ActivePlayerCount() = %d after StopAll, want 0", m.ActivePlayerCount())
	}
}

// TestManager_Shutdown verifies Shutdown clears both registries and returns
// to the uninitialized state.
func TestManager_Shutdown(t *testing.T) {
	m := newTestManager()
	clip := m.CreateClip("x")
	clip.AddCurve("Ball", PositionX, linearCurve([2]float64{0, 0}, [2]float64{4, 4}))
	m.PlayClip("x", true)

	m.Shutdown()

	if len(m.ClipNames()) != 0 || m.ActivePlayerCount() != 0 {
		t.Error("registries not cleared by Shutdown")
	}

	// Update after shutdown is a guarded no-op.
	m.Update(1, newFakeScene("Ball"))

	// Re-initialization starts fresh.
	m.Initialize()
	if len(m.ClipNames()) != 0 {
		t.Errorf("ClipNames() = %v after re-init, want empty", m.ClipNames())
	}
}
