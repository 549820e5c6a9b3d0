package system

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"github.com/younwookim/legion/internal/domain/entity"
	"github.com/younwookim/legion/internal/infrastructure/config"
)

// Arena edges past which a fighter is knocked out
const (
	outOfBoundsSide = 36
	outOfBoundsTop  = 40
)

// Sudden death starting state
const (
	suddenDeathPercent = 300
	suddenDeathMinutes = 1
)

// Camera scroll margins and speed, in world units
const (
	cameraMargin = 16
	cameraSpeed  = 2
)

// spawnPoints are the starting offsets of fighters 1..4 from the initial
// view origin
var spawnPoints = [...]Location{{16, 16}, {112, 16}, {80, 16}, {48, 16}}

// EventKind classifies match events
type EventKind int

const (
	EventHit EventKind = iota
	EventKO
	EventRespawn
	EventSuddenDeath
	EventBossHit
	EventFinished
)

func (k EventKind) String() string {
	switch k {
	case EventHit:
		return "hit"
	case EventKO:
		return "ko"
	case EventRespawn:
		return "respawn"
	case EventSuddenDeath:
		return "sudden-death"
	case EventBossHit:
		return "boss-hit"
	case EventFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Event reports something that happened during a tick. Fighter and Other
// are fighter indices, -1 when not applicable.
type Event struct {
	Kind    EventKind
	Fighter int
	Other   int
	Amount  int
}

// Match is one battle: the stage, its fighters and bosses, and every system
// acting on them. All simulation state hangs off the match.
type Match struct {
	stage *entity.Stage
	rules *config.RulesConfig
	cfg   *config.MatchConfig
	rng   *rand.Rand
	seed  int64

	terrain *Terrain
	physics *PhysicsSystem
	combat  *CombatSystem
	items   *ItemSystem
	bosses  *BossSystem
	clock   *Clock

	fighters    []*entity.Fighter
	controllers []Controller
	lead        int

	matchType   entity.MatchType
	camX, camY  int
	asyncClock  bool
	suddenDeath bool
	finished    bool
	result      *entity.MatchResult
	ticks       int

	// OnEvent receives match events as they happen
	OnEvent func(Event)
}

// NewMatch sets up a match on a stage. The seed drives every random
// decision, so equal seeds and inputs replay identically.
func NewMatch(stage *entity.Stage, rules *config.RulesConfig, cfg *config.MatchConfig, seed int64) (*Match, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid match: %w", err)
	}

	rng := rand.New(rand.NewSource(seed))
	terrain := NewTerrain(&rules.Physics, stage)
	combat := NewCombatSystem(rules, terrain, rng, cfg.Level())

	m := &Match{
		stage:     stage,
		rules:     rules,
		cfg:       cfg,
		rng:       rng,
		seed:      seed,
		terrain:   terrain,
		physics:   NewPhysicsSystem(rules, terrain, rng),
		combat:    combat,
		items:     NewItemSystem(rules, terrain, rng, combat),
		clock:     NewClock(&rules.Clock, cfg, seed+1),
		matchType: cfg.MatchType(),
	}

	m.camX = max(0, (stage.PixelWidth()-rules.Display.ViewWidth)/2)
	m.camY = 0

	for i, fc := range cfg.Fighters {
		character, _ := entity.CharacterByName(fc.Character)
		kind, _ := fc.ControllerKind()
		f := entity.NewFighter(entity.EntityID(i+1), character, entity.Team(fc.Team), kind)
		f.MoveSpeed = rules.Physics.WalkSpeed
		f.Lives = cfg.Lives
		if m.matchType == entity.MatchTimed {
			f.Lives = 1
		}
		sp := spawnPoints[i]
		f.X, f.Y = m.camX+sp.X, m.camY+sp.Y
		m.fighters = append(m.fighters, f)
		m.controllers = append(m.controllers, newController(kind))
	}
	m.pickLead()

	if cfg.Bosses > 0 {
		m.bosses = NewBossSystem(terrain, rng, cfg.Level(), cfg.Bosses, m.camX)
		m.bosses.OnBossHit = func(h *entity.Boss, dmg int) {
			m.emit(Event{Kind: EventBossHit, Fighter: m.lead, Other: int(h.Kind), Amount: dmg})
		}
	}

	combat.OnHit = func(defender, attacker *entity.Fighter, dmg int) {
		m.emit(Event{Kind: EventHit, Fighter: indexOf(defender), Other: indexOf(attacker), Amount: dmg})
	}
	return m, nil
}

func newController(kind entity.ControllerKind) Controller {
	switch kind {
	case entity.ControlAI:
		return NewAIController()
	case entity.ControlRemote:
		return RemoteController{}
	default:
		return NewHumanController()
	}
}

func indexOf(f *entity.Fighter) int {
	if f == nil {
		return -1
	}
	return int(f.ID) - 1
}

// pickLead makes the first human fighter the one the camera follows
func (m *Match) pickLead() {
	m.lead = 0
	for i, f := range m.fighters {
		if f.Controller == entity.ControlHuman {
			m.lead = i
			return
		}
	}
}

func (m *Match) emit(e Event) {
	if m.OnEvent != nil {
		m.OnEvent(e)
	}
}

// Stage returns the arena
func (m *Match) Stage() *entity.Stage { return m.stage }

// Rules returns the rule set the match runs under
func (m *Match) Rules() *config.RulesConfig { return m.rules }

// Config returns the match description
func (m *Match) Config() *config.MatchConfig { return m.cfg }

// Seed returns the seed the match was created with
func (m *Match) Seed() int64 { return m.seed }

// Terrain returns the terrain resolver
func (m *Match) Terrain() *Terrain { return m.terrain }

// Fighters returns the fighters in slot order
func (m *Match) Fighters() []*entity.Fighter { return m.fighters }

// Items returns the loose and held items
func (m *Match) Items() []*entity.Item { return m.items.Items() }

// Clock returns the match timer
func (m *Match) Clock() *Clock { return m.clock }

// Ticks returns the number of completed ticks
func (m *Match) Ticks() int { return m.ticks }

// SuddenDeath reports whether the match went to sudden death
func (m *Match) SuddenDeath() bool { return m.suddenDeath }

// Finished reports whether the match has a result
func (m *Match) Finished() bool { return m.finished }

// Result returns the outcome, or nil while the match is running
func (m *Match) Result() *entity.MatchResult { return m.result }

// Camera returns the top-left corner of the view
func (m *Match) Camera() (x, y int) { return m.camX, m.camY }

// CrowdPressure reports whether the background crowd is shaking
func (m *Match) CrowdPressure() bool { return m.cfg.CrowdPressure }

// Bosses returns the bosses of a boss fight, or nil
func (m *Match) Bosses() []*entity.Boss {
	if m.bosses == nil {
		return nil
	}
	return m.bosses.Bosses()
}

// Lead returns the fighter the camera follows
func (m *Match) Lead() *entity.Fighter {
	if len(m.fighters) == 0 {
		return nil
	}
	return m.fighters[m.lead]
}

// LeadIndex returns the slot of the lead fighter
func (m *Match) LeadIndex() int { return m.lead }

// Controller returns the controller of slot i
func (m *Match) Controller(i int) Controller { return m.controllers[i] }

// SetController replaces the controller of slot i and updates the fighter's
// controller kind to match
func (m *Match) SetController(i int, c Controller) {
	m.controllers[i] = c
	switch c.(type) {
	case *HumanController:
		m.fighters[i].Controller = entity.ControlHuman
	case *AIController:
		m.fighters[i].Controller = entity.ControlAI
	default:
		m.fighters[i].Controller = entity.ControlRemote
	}
	m.pickLead()
}

// Human returns the keyboard controller of slot i, or nil
func (m *Match) Human(i int) *HumanController {
	h, _ := m.controllers[i].(*HumanController)
	return h
}

// StartClock runs the match timer on its own goroutine until ctx is done.
// Without it the match steps the clock itself.
func (m *Match) StartClock(ctx context.Context) {
	m.asyncClock = true
	go m.clock.Run(ctx)
}

// Tick advances the match by one simulation step
func (m *Match) Tick() {
	if m.finished {
		return
	}

	if !m.asyncClock && m.ticks%m.rules.Clock.TicksPerStep == 0 {
		m.clock.Step()
	}
	spawns, running := m.clock.Drain()
	for _, kind := range spawns {
		m.items.Spawn(kind)
	}
	m.items.Update()
	m.updateCamera()

	if m.checkWinner(running) {
		m.ticks++
		return
	}

	m.controlFighters()

	lead := m.Lead()
	if m.bosses != nil {
		for _, h := range m.bosses.Bosses() {
			m.bosses.Update(h, lead)
		}
		m.bosses.ResolveHits(lead)
	} else {
		m.combat.ResolveFighters(m.fighters)
	}

	m.applyFightVariants()

	if m.bosses != nil {
		switch {
		case !lead.Alive():
			m.finish(entity.TeamNone, -1, true)
		case m.bosses.FightWon():
			m.finish(lead.Team, m.lead, false)
		}
	}
	m.ticks++
}

// checkWinner runs the timed, stock and sudden-death checks. It returns
// true when the rest of the tick is skipped.
func (m *Match) checkWinner(running bool) bool {
	if m.matchType == entity.MatchTimed && !running {
		if team, idx, ok := m.timedWinner(); ok {
			m.finish(team, idx, false)
			return true
		}
		m.startSuddenDeath()
		return true
	}
	if m.matchType == entity.MatchStock && m.bosses == nil && !m.suddenDeath {
		if team, idx, ok := m.lastSideStanding(); ok {
			m.finish(team, idx, false)
			return true
		}
	}
	if m.suddenDeath {
		if team, idx, ok := m.lastSideStanding(); ok {
			m.finish(team, idx, false)
			return true
		}
	}
	return false
}

// timedWinner finds the best kills-minus-deaths among the fighters still
// in the match. A tie between opposing fighters has no winner.
func (m *Match) timedWinner() (entity.Team, int, bool) {
	var best []*entity.Fighter
	for _, f := range m.fighters {
		if !f.Alive() {
			continue
		}
		switch {
		case len(best) == 0 || score(f) > score(best[0]):
			best = append(best[:0], f)
		case score(f) == score(best[0]):
			best = append(best, f)
		}
	}
	if len(best) == 0 {
		return entity.TeamNone, -1, true
	}
	for _, f := range best[1:] {
		if best[0].Opposes(f) {
			return entity.TeamNone, -1, false
		}
	}
	if len(best) == 1 {
		return best[0].Team, indexOf(best[0]), true
	}
	return best[0].Team, -1, true
}

func score(f *entity.Fighter) int {
	return f.Kills - f.Deaths
}

// startSuddenDeath knocks out everyone below the best score and sends the
// leaders back in at high damage with one life and a fresh minute.
func (m *Match) startSuddenDeath() {
	best := 0
	first := true
	for _, f := range m.fighters {
		if f.Alive() && (first || score(f) > best) {
			best = score(f)
			first = false
		}
	}
	for _, f := range m.fighters {
		if !f.Alive() {
			continue
		}
		if score(f) < best {
			f.Set(entity.StatusDead)
			f.Release()
			continue
		}
		f.Percent = suddenDeathPercent
		f.Lives = 1
		f.Set(entity.StatusOnStage)
		f.EntryTicks = 0
	}
	m.suddenDeath = true
	m.clock.Reset(suddenDeathMinutes)
	log.Printf("[Match] sudden death at tick %d", m.ticks)
	m.emit(Event{Kind: EventSuddenDeath, Fighter: -1, Other: -1})
}

// lastSideStanding reports the winning side once no two surviving fighters
// oppose each other
func (m *Match) lastSideStanding() (entity.Team, int, bool) {
	var first *entity.Fighter
	alive := 0
	for _, f := range m.fighters {
		if !f.Alive() {
			continue
		}
		alive++
		if first == nil {
			first = f
			continue
		}
		if first.Opposes(f) {
			return entity.TeamNone, -1, false
		}
	}
	if first == nil {
		return entity.TeamNone, -1, true
	}
	if alive == 1 {
		return first.Team, indexOf(first), true
	}
	return first.Team, -1, true
}

// controlFighters moves projectiles, knocks out fighters that left the
// arena, brings respawned fighters back in and runs every controller
func (m *Match) controlFighters() {
	cc := m.rules.Combat
	for i, f := range m.fighters {
		if !f.Alive() {
			continue
		}
		m.combat.UpdateProjectile(f, m.fighters)

		if f.Is(entity.StatusOnStage) {
			f.Set(entity.StatusInvincible)
			entry := false
			if ec, ok := m.controllers[i].(EntryController); ok {
				entry = ec.WantsEntry(f)
			}
			if entry || f.EntryTicks > cc.EntryTicks {
				f.Clear(entity.StatusOnStage | entity.StatusInvincible)
				f.JumpValue = 0
				f.EntryTicks = 0
				continue
			}
			f.EntryTicks++
			continue
		}

		if m.outOfBounds(f) {
			f.DeathTicks++
			if f.DeathTicks < cc.DeathTicks {
				continue
			}
			f.DeathTicks = 0
			m.knockOut(i, f)
			continue
		}

		f.ClearEnemyIfGone()
		m.controllers[i].Control(m, f)
	}
}

// outOfBounds reports whether f has left the arena
func (m *Match) outOfBounds(f *entity.Fighter) bool {
	return f.X < -outOfBoundsSide || f.X+f.Width > m.stage.PixelWidth()+outOfBoundsSide ||
		f.Y < -outOfBoundsTop || f.Y > m.stage.PixelHeight()
}

// knockOut credits the KO, takes a life and respawns or eliminates f
func (m *Match) knockOut(i int, f *entity.Fighter) {
	credit := f.LastHitBy
	if credit == nil || credit == f {
		credit = f.Enemy
	}
	if credit != nil && credit != f {
		credit.Kills++
	}
	f.Deaths++
	if m.matchType == entity.MatchStock {
		f.Lives--
	}
	if f.Item != nil {
		f.Item.Used = true
		f.Item = nil
	}
	m.emit(Event{Kind: EventKO, Fighter: i, Other: indexOf(credit)})

	f.LastHitBy = nil
	f.Percent = 0
	if f.Lives <= 0 || m.suddenDeath {
		f.Release()
		f.Set(entity.StatusDead)
		return
	}

	loc, ok := m.terrain.FindRespawn(m.camX, m.camY, m.fighters)
	if !ok {
		log.Printf("[Match] no respawn cell in view for fighter %d, using view origin", i+1)
		loc = Location{X: m.camX, Y: m.camY}
	}
	f.ResetForRespawn()
	PlaceAt(f, loc)
	m.emit(Event{Kind: EventRespawn, Fighter: i, Other: -1})
}

// updateCamera scrolls the view after the lead fighter, keeping it inside
// the stage
func (m *Match) updateCamera() {
	lead := m.Lead()
	if lead == nil || m.stage.Moving || lead.IsAny(entity.StatusOnStage|entity.StatusDead) {
		return
	}
	vw, vh := m.rules.Display.ViewWidth, m.rules.Display.ViewHeight
	maxX := max(0, m.stage.PixelWidth()-vw)
	maxY := max(0, m.stage.PixelHeight()-vh)

	sx, sy := lead.X-m.camX, lead.Y-m.camY
	if sx < cameraMargin && m.camX > 0 {
		m.camX -= cameraSpeed
	}
	if sx+lead.Width > vw-cameraMargin && m.camX < maxX {
		m.camX += cameraSpeed
	}
	if sy < cameraMargin && m.camY > 0 {
		m.camY -= cameraSpeed
	}
	if sy+lead.Height > vh-cameraMargin && m.camY < maxY {
		m.camY += cameraSpeed
	}
	m.camX = min(max(m.camX, 0), maxX)
	m.camY = min(max(m.camY, 0), maxY)
}

// applyFightVariants keeps the metal and cloaked handicaps on every fighter
// but the lead
func (m *Match) applyFightVariants() {
	for i, f := range m.fighters {
		if i == m.lead {
			continue
		}
		if m.cfg.MetalFight {
			f.Set(entity.StatusMetal)
		}
		if m.cfg.CloakedFight {
			f.Set(entity.StatusCloaked)
		}
	}
}

// beginTick drops the per-tick invulnerability and counts down item
// effects
func (m *Match) beginTick(f *entity.Fighter) {
	f.Clear(entity.StatusInvincible)
	m.physics.UpdateTimers(f)
}

// closestEnemy returns the nearest opponent that is in play
func (m *Match) closestEnemy(f *entity.Fighter) *entity.Fighter {
	var closest *entity.Fighter
	dist := -1
	for _, o := range m.fighters {
		if !o.Alive() || o.Is(entity.StatusOnStage) || !f.Opposes(o) {
			continue
		}
		if d := f.Distance2(o); dist < 0 || d < dist {
			closest, dist = o, d
		}
	}
	return closest
}

// fatiguedEnemy returns the opponent in play with the most damage
func (m *Match) fatiguedEnemy(f *entity.Fighter) *entity.Fighter {
	var most *entity.Fighter
	fatigue := 0
	for _, o := range m.fighters {
		if !o.Alive() || o.Is(entity.StatusOnStage) || !f.Opposes(o) {
			continue
		}
		if o.Percent > fatigue {
			most, fatigue = o, o.Percent
		}
	}
	return most
}

// lazy reports whether a human lead is sitting on a full stock, unhurt and
// idle
func (m *Match) lazy(lead *entity.Fighter) bool {
	if lead == nil || lead.Controller != entity.ControlHuman || m.matchType != entity.MatchStock {
		return false
	}
	if lead.Lives != m.cfg.Lives || lead.Percent >= lazyPercent {
		return false
	}
	switch lead.Loco {
	case entity.Running, entity.Falling:
		return false
	}
	return lead.JumpValue == 0 && !lead.IsAny(entity.StatusSmash|entity.StatusSpecial)
}

// finish records the result and stops the match
func (m *Match) finish(team entity.Team, winner int, bossesWon bool) {
	res := &entity.MatchResult{
		WinningTeam: team,
		Winner:      winner,
		SuddenDeath: m.suddenDeath,
		BossesWon:   bossesWon,
		Ticks:       m.ticks,
	}
	for i, f := range m.fighters {
		res.Tallies = append(res.Tallies, entity.FighterTally{
			Index:       i,
			Character:   f.Character,
			Team:        f.Team,
			Controller:  f.Controller,
			Kills:       f.Kills,
			Deaths:      f.Deaths,
			Percent:     f.Percent,
			DamageTaken: f.DamageTaken,
			Alive:       f.Alive(),
		})
	}
	m.result = res
	m.finished = true
	log.Printf("[Match] finished after %d ticks: team %d, fighter %d, sudden death %v, bosses won %v",
		m.ticks, team, winner, m.suddenDeath, bossesWon)
	m.emit(Event{Kind: EventFinished, Fighter: winner, Other: -1})
}
