// Package dispatch turns a resolved association into commands and runs them.
//
// [Plan] expands the association's templates against the matched paths.
// ${file} stands for one path and ${files} for all of them. In batch mode a
// single command receives every path; with the iterate directive one command
// runs per path. [Executor] runs the planned commands one after another,
// printing the association's message before each, and stops at the first
// failure.
package dispatch
