// Package validation defines the contracts between the offline workflow and
// user code: the Model capability that caller-supplied model objects must
// satisfy, the Test interface that validation test implementations provide,
// the Score produced by judging a model, and the registry that maps
// test-instance paths to test constructors.
package validation
