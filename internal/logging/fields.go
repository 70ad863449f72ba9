package logging

// Field names for structured logging.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Parse options.
	FieldSmart     = "smart"
	FieldFormat    = "format"
	FieldSourcePos = "sourcepos"
	FieldJobs      = "jobs"

	// Statistics.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesParsed     = "files_parsed"
	FieldFilesErrored    = "files_errored"
	FieldNodes           = "nodes"
	FieldReferences      = "references"
	FieldDifferences     = "differences"

	// Version.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
