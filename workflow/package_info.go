// Package workflow implements the offline test-execution workflow:
//
//  1. Prepare: resolve a test instance in the catalog, download its
//     observation data, and write a test descriptor next to it.
//  2. Run: load the test implementation from the local registry, judge a
//     caller-supplied model, and persist the resulting score.
//  3. Upload: resolve the model's catalog identity, de-duplicate against
//     existing results, and register the score with the service.
//
// Each phase reads its input from the previous phase's files, so a run can
// be split across processes or machines (e.g. run on a cluster, upload from
// a workstation). The Workflow orchestrator chains all three for the
// one-shot case.
//
// Everything is synchronous and blocking. Failures abort immediately and
// propagate with the underlying cause; local files written by earlier phases
// stay on disk for a manual retry.
package workflow
