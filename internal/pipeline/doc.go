// Package pipeline runs the stages of one generation run in sequence.
//
// A run moves through fetch, extract, group, render, write and verify.
// Each stage is a Step that reads what earlier steps left on the
// *model.Run and fills in its own part. The first failing step stops the
// pipeline; its error is recorded on the run and returned.
package pipeline
