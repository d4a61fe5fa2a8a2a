// Package harness provides a conformance testing framework for the
// state-stack engine.
//
// A scenario is a YAML file describing a small state graph: named
// states, each with a script of per-update instructions (none,
// push:<state>, switch:<state>, pop, quit), an initial state, and
// assertions over the resulting hook trace and shared data.
//
// The harness runs scenarios against the real engine - not a
// simulation of it - with a deterministic fake clock, a fixed run
// token, and a trace recorder attached as the machine observer. The
// recorded trace is the source of truth for hook ordering and can be
// compared against golden files in testdata/golden.
//
// A max-steps quota guards against runaway scripts: a scenario whose
// stack never drains fails instead of hanging the test run.
package harness
