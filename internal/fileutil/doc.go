// Package fileutil expands command-line inputs into the list of files a
// command should process.
//
// Arguments may name files or directories. Directories are scanned for files
// with one of the requested extensions (case-insensitive); hidden directories
// and any names in ScanOptions.ExcludeDirs are skipped. Results are absolute,
// sorted and free of duplicates so batch commands behave the same on every
// run.
//
//	files, err := fileutil.ExpandPaths(args, fileutil.ScanOptions{
//	    Extensions: fileutil.AnswerExtensions,
//	    Recursive:  true,
//	})
package fileutil
