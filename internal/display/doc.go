// Package display formats terminal output for intake commands: warnings,
// batch progress and the question and validation-error tables.
//
// # Progress Indicators
//
// Use ProgressIndicator when a command works through several files:
//
//	progress := display.NewProgressIndicator(os.Stdout, len(files), "answer files")
//	progress.Start()
//	for _, file := range files {
//	    progress.Step(file)
//	    // ... validate file ...
//	}
//	progress.Complete(failed)
//
// # Warnings
//
//	warning := display.WarnUnmatchedLabels(result.Unmatched, 3)
//	warning.Display(os.Stderr)
//
// # Tables
//
// WriteQuestionTable lists a question bank; WriteErrorTable lists an ErrorSet
// next to the question text of every failing question.
//
// Colour is used only when the writer is a terminal (go-isatty) and colour
// has not been disabled (fatih/color honours NO_COLOR). Writing to a buffer
// or file always produces plain text.
package display
