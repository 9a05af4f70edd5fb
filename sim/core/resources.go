package core

import "time"

// ResourceConfig describes one resource's bounds and regen behavior.
// Regen is continuous (regenPerSecond applied smoothly) unless
// TickInterval is nonzero, in which case it regenerates in discrete
// steps every TickInterval (e.g. a resource that ticks once per
// second rather than continuously).
type ResourceConfig struct {
	Id           ResourceId
	Max          float64
	RegenPerSec  float64
	TickInterval time.Duration
	Starting     float64
}

// Resource is the live, mutable state of one resource pool.
type Resource struct {
	Id      ResourceId
	Current float64
	Max     float64
	RegenPerSec float64
	TickInterval time.Duration
	lastUpdate   time.Duration
}

func NewResource(cfg ResourceConfig) *Resource {
	return &Resource{
		Id:           cfg.Id,
		Current:      cfg.Starting,
		Max:          cfg.Max,
		RegenPerSec:  cfg.RegenPerSec,
		TickInterval: cfg.TickInterval,
	}
}

// AdvanceTo applies regen up to `now`: continuously for resources
// without a TickInterval, and for resources with one, RegenPerSec *
// TickInterval for every whole TickInterval elapsed since the last step.
func (r *Resource) AdvanceTo(now time.Duration) {
	if r.TickInterval > 0 {
		steps := (now - r.lastUpdate) / r.TickInterval
		if steps <= 0 {
			return
		}
		r.lastUpdate += steps * r.TickInterval
		r.Current = Clamp(r.Current+r.RegenPerSec*r.TickInterval.Seconds()*float64(steps), 0, r.Max)
		return
	}
	elapsed := now - r.lastUpdate
	if elapsed <= 0 {
		r.lastUpdate = now
		return
	}
	r.lastUpdate = now
	if r.RegenPerSec == 0 {
		return
	}
	r.Current = Clamp(r.Current+r.RegenPerSec*elapsed.Seconds(), 0, r.Max)
}

// Spend deducts amount, clamped at zero. Returns false if the unit
// does not have enough (callers of cast-ability checks use this to
// decide castability; it never goes negative).
func (r *Resource) Spend(amount float64) bool {
	if r.Current < amount {
		return false
	}
	r.Current -= amount
	return true
}

func (r *Resource) Gain(amount float64) {
	r.Current = Clamp(r.Current+amount, 0, r.Max)
}

func (r *Resource) Percent() float64 {
	if r.Max == 0 {
		return 0
	}
	return r.Current / r.Max * 100
}

func (r *Resource) Deficit() float64 { return r.Max - r.Current }

// TimeToMax estimates seconds until the resource is full at its
// current regen rate; returns 0 if already full or regen is 0.
func (r *Resource) TimeToMax() time.Duration {
	if r.Current >= r.Max || r.RegenPerSec <= 0 {
		return 0
	}
	secs := (r.Max - r.Current) / r.RegenPerSec
	return time.Duration(secs * float64(time.Second))
}

// Resources bundles a unit's primary resource plus any secondary
// resources (e.g. a class-specific combo counter), keyed by
// ResourceId.
type Resources struct {
	Primary    *Resource
	Secondary  map[ResourceId]*Resource
}

func NewResources(primary ResourceConfig, secondary []ResourceConfig) *Resources {
	r := &Resources{
		Primary:   NewResource(primary),
		Secondary: make(map[ResourceId]*Resource, len(secondary)),
	}
	for _, cfg := range secondary {
		r.Secondary[cfg.Id] = NewResource(cfg)
	}
	return r
}

func (r *Resources) Get(id ResourceId) *Resource {
	if r.Primary != nil && r.Primary.Id == id {
		return r.Primary
	}
	return r.Secondary[id]
}

// AdvanceTo regenerates every continuous-regen resource in the bundle
// up to now. The sim driver calls this before any castability check or
// rotation-context read so §3's resource model actually accrues rather
// than only ever draining.
func (r *Resources) AdvanceTo(now time.Duration) {
	if r.Primary != nil {
		r.Primary.AdvanceTo(now)
	}
	for _, res := range r.Secondary {
		res.AdvanceTo(now)
	}
}
