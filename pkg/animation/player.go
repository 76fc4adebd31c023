package animation

import (
	"log"
	"math"
)

// PlaybackState is the player's state machine position.
//
// Transitions: Stopped -> Playing; Playing -> Paused or Stopped;
// Paused -> Playing or Stopped.
type PlaybackState int

const (
	Stopped PlaybackState = iota
	Playing
	Paused
)

// String returns the state name (used for logs).
func (s PlaybackState) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// Player is a stateful cursor that advances time through one clip and pushes
// evaluated transforms into the scene. Players never mutate their clip; a
// clip may safely be shared by several players at once.
type Player struct {
	clip        *Clip
	state       PlaybackState
	currentTime float64
	speed       float64
	looping     bool
}

// NewPlayer creates an unbound player in the Stopped state with speed 1.
func NewPlayer() *Player {
	return &Player{
		state: Stopped,
		speed: 1.0,
	}
}

// SetClip binds the player to a clip. A playing player is stopped first
// (resetting time to 0), rebound, and resumed so clip swaps do not interrupt
// a running playback.
func (p *Player) SetClip(clip *Clip) {
	wasPlaying := p.IsPlaying()
	p.Stop()

	p.clip = clip

	if wasPlaying && p.clip != nil {
		p.Play()
	}
}

// Clip returns the bound clip, or nil.
func (p *Player) Clip() *Clip { return p.clip }

// Play transitions to Playing without resetting time, which resumes a paused
// playback. Without a bound clip the call is a logged no-op.
func (p *Player) Play() {
	if p.clip == nil {
		log.Printf("[AnimationPlayer] Play: no clip set")
		return
	}
	p.state = Playing
}

// Pause transitions to Paused, only from Playing.
func (p *Player) Pause() {
	if p.state == Playing {
		p.state = Paused
	}
}

// Stop unconditionally transitions to Stopped and resets time to 0.
func (p *Player) Stop() {
	p.state = Stopped
	p.currentTime = 0
}

// Restart stops and immediately plays from the beginning.
func (p *Player) Restart() {
	p.Stop()
	p.Play()
}

// State returns the current playback state.
func (p *Player) State() PlaybackState { return p.state }

// IsPlaying reports whether the player is in the Playing state.
func (p *Player) IsPlaying() bool { return p.state == Playing }

// IsPaused reports whether the player is in the Paused state.
func (p *Player) IsPaused() bool { return p.state == Paused }

// IsStopped reports whether the player is in the Stopped state.
func (p *Player) IsStopped() bool { return p.state == Stopped }

// SetTime seeks the playback cursor. When looping and the clip duration is
// positive the time wraps into [0, duration); otherwise it clamps to
// [0, duration]. Without a bound clip the call is ignored.
func (p *Player) SetTime(time float64) {
	if p.clip == nil {
		return
	}

	duration := p.clip.Duration()
	if p.looping {
		if duration > 0 {
			time = math.Mod(time, duration)
			if time < 0 {
				time += duration
			}
		}
		p.currentTime = time
		return
	}

	p.currentTime = math.Max(0, math.Min(time, duration))
}

// Time returns the playback cursor in seconds.
func (p *Player) Time() float64 { return p.currentTime }

// NormalizedTime returns the cursor as a fraction of the clip duration in
// [0, 1], or 0 without a clip or with a non-positive duration.
func (p *Player) NormalizedTime() float64 {
	if p.clip == nil || p.clip.Duration() <= 0 {
		return 0
	}
	return p.currentTime / p.clip.Duration()
}

// SetSpeed sets the playback speed multiplier (negative plays backwards).
func (p *Player) SetSpeed(speed float64) { p.speed = speed }

// Speed returns the playback speed multiplier.
func (p *Player) Speed() float64 { return p.speed }

// SetLooping toggles looping playback.
func (p *Player) SetLooping(looping bool) { p.looping = looping }

// IsLooping reports whether the player loops.
func (p *Player) IsLooping() bool { return p.looping }

// Update advances the playback cursor by deltaTime*speed and applies the
// evaluated transforms to the scene. It is a no-op unless the player is
// Playing with a bound clip and a non-nil scene.
//
// When the cursor reaches the clip end a looping player wraps via fmod; a
// non-looping player holds the cursor at the duration and transitions to
// Stopped. The final frame is still applied, so one-shot clips land exactly
// on their end pose.
func (p *Player) Update(deltaTime float64, scene Scene) {
	if p.clip == nil || p.state != Playing || scene == nil {
		return
	}

	p.currentTime += deltaTime * p.speed

	duration := p.clip.Duration()
	if p.currentTime >= duration {
		if p.looping && duration > 0 {
			p.currentTime = math.Mod(p.currentTime, duration)
		} else {
			// Natural completion: hold the end time. Deliberately not Stop(),
			// which would snap the cursor back to 0 before the end pose is
			// applied.
			p.currentTime = duration
			p.state = Stopped
		}
	}

	p.apply(scene)
}

// apply pushes evaluated position/rotation/scale into every animated object
// the scene can resolve. A property is only written when at least one of its
// component curves exists, so externally-set values on un-animated properties
// survive playback.
func (p *Player) apply(scene Scene) {
	for _, name := range p.clip.AnimatedObjects() {
		obj, ok := scene.FindObjectByName(name)
		if !ok {
			// Object not present in this scene; skip silently.
			continue
		}

		if p.clip.HasCurve(name, PositionX) || p.clip.HasCurve(name, PositionY) || p.clip.HasCurve(name, PositionZ) {
			obj.SetPosition(p.clip.EvaluatePosition(name, p.currentTime))
		}
		if p.clip.HasCurve(name, RotationX) || p.clip.HasCurve(name, RotationY) || p.clip.HasCurve(name, RotationZ) {
			obj.SetRotation(p.clip.EvaluateRotation(name, p.currentTime))
		}
		if p.clip.HasCurve(name, ScaleX) || p.clip.HasCurve(name, ScaleY) || p.clip.HasCurve(name, ScaleZ) {
			obj.SetScale(p.clip.EvaluateScale(name, p.currentTime))
		}
	}
}
