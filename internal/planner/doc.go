// Package planner is the lesson-plan composition and scheduling engine.
//
// A plan is a flat, ordered slice of domain.PlanItem in which the items of a
// stage always form one contiguous block. Every operation here takes a slice
// and returns a new one with Order renumbered 1..N by position; inputs are
// never mutated. The engine holds no state: callers keep the current
// sequence, the declared stage order and the lesson start time, and feed them
// back in on every call.
//
// The projection functions (GroupByStage, StageDisplayOrder,
// ComputeItemStartTimes, ComputeStageStartTimes, Project) are recomputed
// from scratch after each change.
//
// Sequences whose stage blocks are not contiguous are a caller error and
// produce unspecified results.
package planner
