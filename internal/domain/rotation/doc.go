// Package rotation is the live rotation engine: the game clock and substitution
// window countdowns, per-player court-time accounting, the automatic substitution
// planner, the manual substitution workflow and break/end-of-game transitions.
//
// A Machine has a single owner and performs no I/O. Time is always passed in by
// the caller; elapsed time is derived from wall-clock deltas so a process that was
// suspended for minutes catches up on the next call.
package rotation
