// Package batch defines run configurations and the sequential driver that
// executes the full simulation pipeline for each of them.
//
// A batch definition is a YAML document listing runs. Each run is rendered
// into a control file, handed to the external simulator, and its output
// analyzed, partitioned, tree-extracted, and filed into a results folder.
// Runs execute strictly in order; a failure in one run is captured in its
// result and the batch moves on. Only the batch definition itself failing
// to load stops anything before it starts.
//
// Concurrency is off the table by construction: the simulator reads its
// control file by a fixed name, so two in-flight runs would clobber each
// other's configuration.
package batch
