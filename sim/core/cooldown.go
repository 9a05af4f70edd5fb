package core

import "time"

// CooldownConfig is the immutable cooldown shape carried by a SpellDef:
// a base duration, and optionally a charge system with its own
// recharge duration.
type CooldownConfig struct {
	BaseDuration time.Duration
	MaxCharges   int32 // 0 or 1 means "no charge system", a single binary cooldown
	RechargeDuration time.Duration
}

// Cooldown is the live readiness state of one spell on one unit.
// Invariant: 0 <= charges <= max_charges; the recharge timer runs
// whenever charges < max_charges (spec.md §3).
type Cooldown struct {
	cfg CooldownConfig

	charges       int32
	nextChargeAt  time.Duration // time at which the next charge will be ready
	simpleReadyAt time.Duration // for non-charge cooldowns: time cooldown ends
}

func NewCooldown(cfg CooldownConfig) *Cooldown {
	maxCharges := cfg.MaxCharges
	if maxCharges < 1 {
		maxCharges = 1
	}
	return &Cooldown{
		cfg:     cfg,
		charges: maxCharges,
	}
}

func (c *Cooldown) maxCharges() int32 {
	if c.cfg.MaxCharges < 1 {
		return 1
	}
	return c.cfg.MaxCharges
}

// HasCharges reports whether the cooldown has a true multi-charge
// system (as opposed to a single binary on/off cooldown).
func (c *Cooldown) HasCharges() bool { return c.cfg.MaxCharges > 1 }

// Ready reports castability at time `now`.
func (c *Cooldown) Ready(now time.Duration) bool {
	if c.HasCharges() {
		return c.charges > 0
	}
	return now >= c.simpleReadyAt
}

func (c *Cooldown) Charges() int32 { return c.charges }

func (c *Cooldown) MaxChargesValue() int32 { return c.maxCharges() }

// Remaining is the time until the next use is possible (0 if ready
// now). For charge cooldowns with charges available, it is 0.
func (c *Cooldown) Remaining(now time.Duration) time.Duration {
	if c.HasCharges() {
		if c.charges > 0 {
			return 0
		}
		return MaxOf(c.nextChargeAt-now, 0)
	}
	return MaxOf(c.simpleReadyAt-now, 0)
}

// FullRechargeRemaining is the time until all charges are restored.
func (c *Cooldown) FullRechargeRemaining(now time.Duration) time.Duration {
	if !c.HasCharges() {
		return c.Remaining(now)
	}
	missing := c.maxCharges() - c.charges
	if missing <= 0 {
		return 0
	}
	firstChargeIn := c.Remaining(now)
	return firstChargeIn + c.cfg.RechargeDuration*time.Duration(missing-1)
}

// Use spends one charge (or starts the simple cooldown). The caller is
// responsible for checking Ready() first; Use does not check.
// scheduleRecharge is true only when this use starts the recharge
// timer (charges were full); otherwise a recharge is already pending.
func (c *Cooldown) Use(now time.Duration) (scheduleRecharge bool, rechargeAt time.Duration) {
	if c.HasCharges() {
		wasFull := c.charges == c.maxCharges()
		c.charges--
		if wasFull {
			c.nextChargeAt = now + c.cfg.RechargeDuration
		}
		return wasFull, c.nextChargeAt
	}
	c.simpleReadyAt = now + c.cfg.BaseDuration
	return false, 0
}

// RestoreCharge is called by the driver when a CooldownReady event for
// this spell's recharge fires. It increments charges by one (clamped
// to max) and, if charges remain below max, schedules the next
// recharge.
func (c *Cooldown) RestoreCharge(now time.Duration) (scheduleNext bool, nextAt time.Duration) {
	c.charges = Clamp(c.charges+1, 0, c.maxCharges())
	if c.charges < c.maxCharges() {
		c.nextChargeAt = now + c.cfg.RechargeDuration
		return true, c.nextChargeAt
	}
	return false, 0
}

// ReduceBy shortens the pending cooldown/recharge by amount, clamped so
// the result never goes below "ready now" (spec.md §7: "procs that
// raise cooldown below zero clamp to zero").
func (c *Cooldown) ReduceBy(now time.Duration, amount time.Duration) {
	if c.HasCharges() {
		c.nextChargeAt = MaxOf(c.nextChargeAt-amount, now)
		return
	}
	c.simpleReadyAt = MaxOf(c.simpleReadyAt-amount, now)
}

// GainCharge immediately grants one charge regardless of recharge
// timing (spec.md §4.5 GainCharge effect).
func (c *Cooldown) GainCharge() {
	c.charges = Clamp(c.charges+1, 0, c.maxCharges())
}

// Reset clears the cooldown to fully ready, used at sim init.
func (c *Cooldown) Reset() {
	c.charges = c.maxCharges()
	c.nextChargeAt = 0
	c.simpleReadyAt = 0
}
