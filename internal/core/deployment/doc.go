// Package deployment ties the functional core together: it derives the
// deterministic identity of a generated deployment and runs the full
// plan-then-render pipeline, producing the artifact bundle the shell persists
// and hands to the orchestrator.
//
// All functions are pure. Nothing here touches the filesystem or the
// orchestrator; that is the shell's job.
package deployment
