// Package framework contains the low-level machinery for running a scripted
// verification scenario outside of the Go test runner.
//
// The general model is:
//
// 1. A scenario is a linear sequence of named stages. Each stage runs inside
// a Context, which is similar to Go's *testing.T: it accumulates failures,
// supports immediate abort via FailNow, and captures debug output.
//
// 2. Stages are order-dependent. Once any stage has failed, every remaining
// stage is skipped rather than executed, because a later stage could only
// operate on state that an earlier stage failed to establish. The scenario
// as a whole still runs to the end of its cleanup path.
//
// 3. The domain-specific code decides what each stage actually does; this
// package only knows how to sequence stages, record their results, and
// report them.
package framework
